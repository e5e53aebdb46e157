package ensimed

import (
	"context"

	"go.lsp.dev/jsonrpc2"
)

// ConnectionInfo reports which server the client is talking to and whether it finished starting up.
func (r *jsonRPCRouter) ConnectionInfo(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.ensimed.ConnectionInfo(ctx)
	return r.replyResult(ctx, reply, req, result, err)
}

// ShutdownServer asks the whole process to exit.
func (r *jsonRPCRouter) ShutdownServer(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	// Reply first to ensure that a reply is sent before the controller initiates the shutdown.
	if err := reply(ctx, nil, nil); err != nil {
		return err
	}
	return r.ensimed.ShutdownServer(ctx)
}
