package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/errors"
	"go.lsp.dev/jsonrpc2"
)

// RequestToFileParams maps the parameters from a jsonrpc2.Request into entity.FileParams.
func RequestToFileParams(req jsonrpc2.Request) (*entity.FileParams, error) {
	params := entity.FileParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if err := params.File.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.NoFileOnWireError, err)
	}
	return &params, nil
}

// RequestToFilesParams maps the parameters from a jsonrpc2.Request into entity.FilesParams.
func RequestToFilesParams(req jsonrpc2.Request) (*entity.FilesParams, error) {
	params := entity.FilesParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	for _, f := range params.Files {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", errors.NoFileOnWireError, err)
		}
	}
	return &params, nil
}

// RequestToPointParams maps the parameters from a jsonrpc2.Request into entity.PointParams.
func RequestToPointParams(req jsonrpc2.Request) (*entity.PointParams, error) {
	params := entity.PointParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if err := params.File.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.NoFileOnWireError, err)
	}
	if params.Offset == nil && params.Position == nil {
		return nil, wrapErrParse(fmt.Errorf("either offset or position is required"))
	}
	return &params, nil
}

// RequestToLinkPosParams maps the parameters from a jsonrpc2.Request into entity.LinkPosParams.
func RequestToLinkPosParams(req jsonrpc2.Request) (*entity.LinkPosParams, error) {
	params := entity.LinkPosParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if err := params.File.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.NoFileOnWireError, err)
	}
	return &params, nil
}

// RequestToApplyEditsParams maps the parameters from a jsonrpc2.Request into entity.ApplyEditsParams.
func RequestToApplyEditsParams(req jsonrpc2.Request) (*entity.ApplyEditsParams, error) {
	params := entity.ApplyEditsParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToUndoParams maps the parameters from a jsonrpc2.Request into entity.UndoParams.
func RequestToUndoParams(req jsonrpc2.Request) (*entity.UndoParams, error) {
	params := entity.UndoParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

func unmarshalParams(req jsonrpc2.Request, params interface{}) error {
	raw := bytes.TrimSpace(req.Params())
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errors.NoParamsOnWireError
	}
	if err := json.Unmarshal(raw, params); err != nil {
		return wrapErrParse(err)
	}
	return nil
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
}
