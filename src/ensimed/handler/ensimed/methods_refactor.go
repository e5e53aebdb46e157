package ensimed

import (
	"context"

	"github.com/ensime/ensimed/src/ensimed/mapper"
	"go.lsp.dev/jsonrpc2"
)

// ApplyEdits writes a batch of edits to disk and returns the undo that reverses them.
func (r *jsonRPCRouter) ApplyEdits(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToApplyEditsParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.ApplyEdits(ctx, params)
	return r.replyResult(ctx, reply, req, result, err)
}

// PeekUndo returns the most recent undo, or null when there is none.
func (r *jsonRPCRouter) PeekUndo(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.ensimed.PeekUndo(ctx)
	return r.replyResult(ctx, reply, req, result, err)
}

// ExecUndo reverses the edits recorded under an undo id.
func (r *jsonRPCRouter) ExecUndo(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToUndoParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.ExecUndo(ctx, params.ID)
	return r.replyResult(ctx, reply, req, result, err)
}
