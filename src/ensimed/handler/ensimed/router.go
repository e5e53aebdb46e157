package ensimed

import (
	"context"

	controller "github.com/ensime/ensimed/src/ensimed/controller/ensimed"
	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

// Methods served over JSON-RPC.
const (
	MethodConnectionInfo      = "ensime/connectionInfo"
	MethodTypecheckFile       = "ensime/typecheckFile"
	MethodTypecheckFiles      = "ensime/typecheckFiles"
	MethodTypecheckAll        = "ensime/typecheckAll"
	MethodUnloadFile          = "ensime/unloadFile"
	MethodRestartCompiler     = "ensime/restartCompiler"
	MethodTypeAtPoint         = "ensime/typeAtPoint"
	MethodPathToPoint         = "ensime/pathToPoint"
	MethodScopeForPoint       = "ensime/scopeForPoint"
	MethodDocSignatureAtPoint = "ensime/docSignatureAtPoint"
	MethodLinkPos             = "ensime/linkPos"
	MethodApplyEdits          = "ensime/applyEdits"
	MethodPeekUndo            = "ensime/peekUndo"
	MethodExecUndo            = "ensime/execUndo"
	MethodShutdownServer      = "ensime/shutdownServer"
)

type jsonRPCRouter struct {
	ensimed controller.Controller
	uuid    uuid.UUID
	logger  *zap.SugaredLogger
	stats   tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	switch req.Method() {
	// Lifecycle related methods.
	case MethodConnectionInfo:
		return r.ConnectionInfo(ctx, reply, req)

	case MethodShutdownServer:
		return r.ShutdownServer(ctx, reply, req)

	// Typechecking related methods.
	case MethodTypecheckFile:
		return r.TypecheckFile(ctx, reply, req)

	case MethodTypecheckFiles:
		return r.TypecheckFiles(ctx, reply, req)

	case MethodTypecheckAll:
		return r.TypecheckAll(ctx, reply, req)

	case MethodUnloadFile:
		return r.UnloadFile(ctx, reply, req)

	case MethodRestartCompiler:
		return r.RestartCompiler(ctx, reply, req)

	// Code intel related methods.
	case MethodTypeAtPoint:
		return r.TypeAtPoint(ctx, reply, req)

	case MethodPathToPoint:
		return r.PathToPoint(ctx, reply, req)

	case MethodScopeForPoint:
		return r.ScopeForPoint(ctx, reply, req)

	case MethodDocSignatureAtPoint:
		return r.DocSignatureAtPoint(ctx, reply, req)

	case MethodLinkPos:
		return r.LinkPos(ctx, reply, req)

	// Refactoring related methods.
	case MethodApplyEdits:
		return r.ApplyEdits(ctx, reply, req)

	case MethodPeekUndo:
		return r.PeekUndo(ctx, reply, req)

	case MethodExecUndo:
		return r.ExecUndo(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}

// badParams replies to a request whose parameters could not be decoded.
func (r *jsonRPCRouter) badParams(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.ParseError, err.Error()))
}

// replyResult sends result back, mapping controller failures onto JSON-RPC error codes.
// Failures caused by the request itself are not counted as server errors.
func (r *jsonRPCRouter) replyResult(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request, result interface{}, err error) error {
	if err == nil {
		return reply(ctx, result, nil)
	}

	if errors.IsUserError(err) {
		r.logger.Debugw("rejected request", "method", req.Method(), "error", err)
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, err.Error()))
	}

	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("failures").Inc(1)
	r.logger.Errorw("request failed", "method", req.Method(), "error", err)
	return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InternalError, err.Error()))
}
