package ensimed

import (
	"context"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"go.lsp.dev/jsonrpc2"
)

// TypecheckFile loads a single unit into the working set and reports its notes.
func (r *jsonRPCRouter) TypecheckFile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFileParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	err = r.ensimed.TypecheckFiles(ctx, []entity.SourceFileInfo{params.File})
	return r.replyResult(ctx, reply, req, nil, err)
}

// TypecheckFiles loads several units into the working set and reports their notes.
func (r *jsonRPCRouter) TypecheckFiles(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFilesParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	err = r.ensimed.TypecheckFiles(ctx, params.Files)
	return r.replyResult(ctx, reply, req, nil, err)
}

// TypecheckAll reloads every unit in the working set.
func (r *jsonRPCRouter) TypecheckAll(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.ensimed.TypecheckAll(ctx)
	return r.replyResult(ctx, reply, req, nil, err)
}

// UnloadFile drops a unit from the working set.
func (r *jsonRPCRouter) UnloadFile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFileParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	err = r.ensimed.UnloadFile(ctx, params.File)
	return r.replyResult(ctx, reply, req, nil, err)
}

// RestartCompiler discards compiler state and schedules a fresh typecheck.
func (r *jsonRPCRouter) RestartCompiler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.ensimed.RestartCompiler(ctx)
	return r.replyResult(ctx, reply, req, nil, err)
}
