package ensimed

import (
	"context"

	"github.com/ensime/ensimed/src/ensimed/mapper"
	"go.lsp.dev/jsonrpc2"
)

// TypeAtPoint returns the type of the expression at a point.
func (r *jsonRPCRouter) TypeAtPoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPointParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.TypeAtPoint(ctx, params)
	return r.replyResult(ctx, reply, req, result, err)
}

// PathToPoint returns the chain of enclosing syntax nodes at a point.
func (r *jsonRPCRouter) PathToPoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPointParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.PathToPoint(ctx, params)
	return r.replyResult(ctx, reply, req, result, err)
}

// ScopeForPoint returns the names visible at a point.
func (r *jsonRPCRouter) ScopeForPoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPointParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.ScopeForPoint(ctx, params)
	return r.replyResult(ctx, reply, req, result, err)
}

// DocSignatureAtPoint returns the signature and documentation of the symbol at a point.
func (r *jsonRPCRouter) DocSignatureAtPoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPointParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.DocSignatureAtPoint(ctx, params)
	return r.replyResult(ctx, reply, req, result, err)
}

// LinkPos returns the declaration position of a fully qualified name.
func (r *jsonRPCRouter) LinkPos(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToLinkPosParams(req)
	if err != nil {
		return r.badParams(ctx, reply, err)
	}

	result, err := r.ensimed.LinkPos(ctx, params)
	return r.replyResult(ctx, reply, req, result, err)
}
