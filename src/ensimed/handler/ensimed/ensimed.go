// Package ensimed implements the ensimed service's JSON-RPC handlers.
package ensimed

import (
	"context"
	"fmt"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/controller/coordinator"
	controller "github.com/ensime/ensimed/src/ensimed/controller/ensimed"
	"github.com/ensime/ensimed/src/ensimed/factory"
	"github.com/ensime/ensimed/src/ensimed/internal/clock"
	"github.com/ensime/ensimed/src/ensimed/internal/jsonrpcfx"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"github.com/ensime/ensimed/src/ensimed/repository/session"
	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handler tracks client connections and hands each one its request router.
type Handler = jsonrpcfx.ConnectionManager

// Params are inbound parameters to initialize the handler.
type Params struct {
	fx.In

	Controller  controller.Controller
	Coordinator coordinator.Coordinator
	Sessions    session.Repository
	JSONRPC     jsonrpcfx.JSONRPCModule
	Clock       clock.Clock
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
}

type jsonRPCConnectionManager struct {
	ctrl        controller.Controller
	coordinator coordinator.Coordinator
	sessions    session.Repository
	clock       clock.Clock
	logger      *zap.SugaredLogger
	stats       tally.Scope

	mu    sync.Mutex
	conns map[uuid.UUID]*jsonrpcfx.Connection
}

// New constructs a new ensimed Handler and registers it with the JSON-RPC server.
func New(p Params) (Handler, error) {
	c := &jsonRPCConnectionManager{
		ctrl:        p.Controller,
		coordinator: p.Coordinator,
		sessions:    p.Sessions,
		clock:       p.Clock,
		logger:      p.Logger,
		stats:       p.Stats.SubScope("json_rpc"),
		conns:       make(map[uuid.UUID]*jsonrpcfx.Connection),
	}
	if err := p.JSONRPC.RegisterConnectionManager(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConnection stores a session for the connection, subscribes it to events and returns a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn *jsonrpcfx.Connection) (jsonrpcfx.Router, error) {
	s := mapper.NewSession(factory.UUID(), conn.RemoteAddr(), c.clock.Now())
	s.Replayed = c.coordinator.Subscribe(conn)

	if err := c.sessions.Set(ctx, s); err != nil {
		c.coordinator.Unsubscribe(conn)
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	c.mu.Lock()
	c.conns[s.UUID] = conn
	c.mu.Unlock()

	if s.Replayed {
		c.logger.Debugw("replayed buffered events", zap.Stringer("uuid", s.UUID))
	}

	return &jsonRPCRouter{
		ensimed: c.ctrl,
		uuid:    s.UUID,
		logger:  c.logger.With(zap.Stringer("uuid", s.UUID)),
		stats:   c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	conn, ok := c.conns[id]
	delete(c.conns, id)
	c.mu.Unlock()

	if ok {
		c.coordinator.Unsubscribe(conn)
	}
	if err := c.sessions.Delete(ctx, id); err != nil {
		c.logger.Warnw("removing session", zap.Stringer("uuid", id), "error", err)
	}
}
