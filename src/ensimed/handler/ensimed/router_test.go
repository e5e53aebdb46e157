package ensimed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ensime/ensimed/src/ensimed/controller/ensimed/ensimedmock"
	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/factory"
	ensimederrors "github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestRouter(c *ensimedmock.MockController, stats tally.Scope) *jsonRPCRouter {
	return &jsonRPCRouter{
		ensimed: c,
		uuid:    factory.UUID(),
		logger:  zap.NewNop().Sugar(),
		stats:   stats,
	}
}

var (
	_fileParams  = map[string]interface{}{"file": map[string]string{"path": "/p/a.go"}}
	_pointParams = map[string]interface{}{"file": map[string]string{"path": "/p/a.go"}, "offset": 12}
)

func TestHandleReq(t *testing.T) {
	ctx := context.Background()
	m := newTestRouter(nil, tally.NoopScope)

	rec := &recordedReply{}
	request, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), "sampleMethod", []string{"val1", "val2"})
	err := m.HandleReq(ctx, newRecordingReplier(rec), request)
	assert.ErrorIs(t, err, jsonrpc2.ErrMethodNotFound)
}

func TestUUID(t *testing.T) {
	sampleUUID := factory.UUID()
	m := jsonRPCRouter{uuid: sampleUUID}
	assert.Equal(t, sampleUUID, m.UUID())
}

func TestMethods(t *testing.T) {
	offset := 12
	tests := []struct {
		name       string
		method     string
		params     interface{}
		setReturn  func(c *ensimedmock.MockControllerMockRecorder)
		wantResult interface{}
		// requiresParams is set for methods that reject a request without params.
		requiresParams bool
	}{
		{
			name:   "connection info",
			method: MethodConnectionInfo,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.ConnectionInfo(gomock.Any()).Return(&entity.ConnectionInfo{PID: 7, Ready: true}, nil)
			},
			wantResult: &entity.ConnectionInfo{PID: 7, Ready: true},
		},
		{
			name:   "typecheck file",
			method: MethodTypecheckFile,
			params: _fileParams,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.TypecheckFiles(gomock.Any(), []entity.SourceFileInfo{entity.DiskFile("/p/a.go")}).Return(nil)
			},
			requiresParams: true,
		},
		{
			name:   "typecheck files",
			method: MethodTypecheckFiles,
			params: map[string]interface{}{"files": []map[string]string{{"path": "/p/a.go"}, {"archive": "/p/lib.zip", "entry": "b.go"}}},
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.TypecheckFiles(gomock.Any(), []entity.SourceFileInfo{
					entity.DiskFile("/p/a.go"),
					entity.ArchiveEntry("/p/lib.zip", "b.go"),
				}).Return(nil)
			},
			requiresParams: true,
		},
		{
			name:   "typecheck all",
			method: MethodTypecheckAll,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.TypecheckAll(gomock.Any()).Return(nil)
			},
		},
		{
			name:   "unload file",
			method: MethodUnloadFile,
			params: _fileParams,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.UnloadFile(gomock.Any(), entity.DiskFile("/p/a.go")).Return(nil)
			},
			requiresParams: true,
		},
		{
			name:   "restart compiler",
			method: MethodRestartCompiler,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.RestartCompiler(gomock.Any()).Return(nil)
			},
		},
		{
			name:   "type at point",
			method: MethodTypeAtPoint,
			params: _pointParams,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.TypeAtPoint(gomock.Any(), &entity.PointParams{File: entity.DiskFile("/p/a.go"), Offset: &offset}).
					Return(&entity.TypeInfo{Name: "int"}, nil)
			},
			wantResult:     &entity.TypeInfo{Name: "int"},
			requiresParams: true,
		},
		{
			name:   "path to point",
			method: MethodPathToPoint,
			params: _pointParams,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.PathToPoint(gomock.Any(), gomock.Any()).Return([]entity.PathElement{{Kind: "File"}}, nil)
			},
			wantResult:     []entity.PathElement{{Kind: "File"}},
			requiresParams: true,
		},
		{
			name:   "scope for point",
			method: MethodScopeForPoint,
			params: _pointParams,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.ScopeForPoint(gomock.Any(), gomock.Any()).Return([]entity.ScopeEntry{{Name: "x"}}, nil)
			},
			wantResult:     []entity.ScopeEntry{{Name: "x"}},
			requiresParams: true,
		},
		{
			name:   "doc signature at point",
			method: MethodDocSignatureAtPoint,
			params: _pointParams,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.DocSignatureAtPoint(gomock.Any(), gomock.Any()).Return(&entity.SymbolInfo{Name: "x"}, nil)
			},
			wantResult:     &entity.SymbolInfo{Name: "x"},
			requiresParams: true,
		},
		{
			name:   "link pos",
			method: MethodLinkPos,
			params: map[string]interface{}{"file": map[string]string{"path": "/p/a.go"}, "fqn": "a.X"},
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.LinkPos(gomock.Any(), &entity.LinkPosParams{File: entity.DiskFile("/p/a.go"), FQN: "a.X"}).
					Return(&entity.OffsetPosition{File: "/p/a.go", Offset: 3}, nil)
			},
			wantResult:     &entity.OffsetPosition{File: "/p/a.go", Offset: 3},
			requiresParams: true,
		},
		{
			name:   "apply edits",
			method: MethodApplyEdits,
			params: map[string]interface{}{"summary": "rename", "edits": []entity.FileEdit{{File: "/p/a.go", From: 0, To: 1, Text: "y"}}},
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.ApplyEdits(gomock.Any(), &entity.ApplyEditsParams{
					Summary: "rename",
					Edits:   []entity.FileEdit{{File: "/p/a.go", From: 0, To: 1, Text: "y"}},
				}).Return(&entity.Undo{ID: 1, Summary: "rename"}, nil)
			},
			wantResult:     &entity.Undo{ID: 1, Summary: "rename"},
			requiresParams: true,
		},
		{
			name:   "peek undo",
			method: MethodPeekUndo,
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.PeekUndo(gomock.Any()).Return(&entity.Undo{ID: 4}, nil)
			},
			wantResult: &entity.Undo{ID: 4},
		},
		{
			name:   "exec undo",
			method: MethodExecUndo,
			params: map[string]int64{"id": 4},
			setReturn: func(c *ensimedmock.MockControllerMockRecorder) {
				c.ExecUndo(gomock.Any(), int64(4)).Return(&entity.UndoResult{ID: 4, Files: []string{"/p/a.go"}}, nil)
			},
			wantResult:     &entity.UndoResult{ID: 4, Files: []string{"/p/a.go"}},
			requiresParams: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			c := ensimedmock.NewMockController(ctrl)
			r := newTestRouter(c, tally.NoopScope)

			// Valid params.
			tt.setReturn(c.EXPECT())
			rec := &recordedReply{}
			req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), tt.method, tt.params)
			require.NoError(t, err)
			assert.NoError(t, r.HandleReq(ctx, newRecordingReplier(rec), req))
			if tt.wantResult != nil {
				assert.Equal(t, tt.wantResult, rec.result)
			}

			// Missing params.
			if tt.requiresParams {
				rec = &recordedReply{}
				req, err = jsonrpc2.NewCall(jsonrpc2.NewNumberID(6), tt.method, nil)
				require.NoError(t, err)
				assert.Error(t, r.HandleReq(ctx, newRecordingReplier(rec), req))

				var rpcErr *jsonrpc2.Error
				require.ErrorAs(t, rec.err, &rpcErr)
				assert.Equal(t, jsonrpc2.ParseError, rpcErr.Code)
			}
		})
	}
}

func TestMalformedParams(t *testing.T) {
	tests := []struct {
		name   string
		method string
		params interface{}
	}{
		{
			name:   "file without path or archive",
			method: MethodUnloadFile,
			params: map[string]interface{}{"file": map[string]string{}},
		},
		{
			name:   "point without offset or position",
			method: MethodTypeAtPoint,
			params: _fileParams,
		},
		{
			name:   "wrong shape",
			method: MethodExecUndo,
			params: []string{"not", "an", "object"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := newTestRouter(ensimedmock.NewMockController(ctrl), tally.NoopScope)

			rec := &recordedReply{}
			req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), tt.method, tt.params)
			require.NoError(t, err)
			assert.Error(t, r.HandleReq(context.Background(), newRecordingReplier(rec), req))

			var rpcErr *jsonrpc2.Error
			require.ErrorAs(t, rec.err, &rpcErr)
			assert.Equal(t, jsonrpc2.ParseError, rpcErr.Code)
		})
	}
}

func TestControllerErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     jsonrpc2.Code
		wantFailures int64
	}{
		{
			name:     "unknown undo is a user error",
			err:      fmt.Errorf("executing undo: %w", &ensimederrors.UndoNotFoundError{ID: 9}),
			wantCode: jsonrpc2.InvalidParams,
		},
		{
			name:     "missing source is a user error",
			err:      &ensimederrors.SourceNotFoundError{URI: "file:///p/a.go"},
			wantCode: jsonrpc2.InvalidParams,
		},
		{
			name:         "server failure",
			err:          errors.New("disk on fire"),
			wantCode:     jsonrpc2.InternalError,
			wantFailures: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			stats := tally.NewTestScope("", nil)
			c := ensimedmock.NewMockController(ctrl)
			c.EXPECT().ExecUndo(gomock.Any(), int64(9)).Return(nil, tt.err)
			r := newTestRouter(c, stats)

			rec := &recordedReply{}
			req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), MethodExecUndo, map[string]int64{"id": 9})
			require.NoError(t, err)
			assert.Error(t, r.HandleReq(context.Background(), newRecordingReplier(rec), req))

			var rpcErr *jsonrpc2.Error
			require.ErrorAs(t, rec.err, &rpcErr)
			assert.Equal(t, tt.wantCode, rpcErr.Code)
			assert.Contains(t, rpcErr.Message, tt.err.Error())

			var failures int64
			for _, counter := range stats.Snapshot().Counters() {
				if counter.Name() == "failures" {
					assert.Equal(t, MethodExecUndo, counter.Tags()["method"])
					failures += counter.Value()
				}
			}
			assert.Equal(t, tt.wantFailures, failures)
		})
	}
}

func TestSessionInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := ensimedmock.NewMockController(ctrl)
	r := newTestRouter(c, tally.NoopScope)

	c.EXPECT().TypecheckAll(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		id, ok := mapper.ContextToSessionUUID(ctx)
		assert.True(t, ok)
		assert.Equal(t, r.UUID(), id)
		return nil
	})

	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), MethodTypecheckAll, nil)
	require.NoError(t, err)
	assert.NoError(t, r.HandleReq(context.Background(), newMockReplier(), req))
}

func TestShutdownServer(t *testing.T) {
	t.Run("replies before shutting down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := ensimedmock.NewMockController(ctrl)
		r := newTestRouter(c, tally.NoopScope)

		replied := false
		reply := func(ctx context.Context, result interface{}, err error) error {
			replied = true
			return nil
		}
		c.EXPECT().ShutdownServer(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			assert.True(t, replied)
			return nil
		})

		req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), MethodShutdownServer, nil)
		require.NoError(t, err)
		assert.NoError(t, r.HandleReq(context.Background(), reply, req))
	})

	t.Run("reply failure skips shutdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newTestRouter(ensimedmock.NewMockController(ctrl), tally.NoopScope)

		reply := func(ctx context.Context, result interface{}, err error) error {
			return errors.New("connection closed")
		}
		req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), MethodShutdownServer, nil)
		require.NoError(t, err)
		assert.Error(t, r.HandleReq(context.Background(), reply, req))
	})
}
