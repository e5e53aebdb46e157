package factory

import (
	"time"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// Session is a factory for a Session with a random UUID.
func Session() *entity.Session {
	return &entity.Session{
		UUID:        UUID(),
		RemoteAddr:  "127.0.0.1:50000",
		ConnectedAt: time.Unix(1700000000, 0),
	}
}
