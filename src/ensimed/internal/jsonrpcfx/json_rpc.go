//go:generate mockgen -destination=jsonrpcfxmock/json_rpc_mock.go -package=jsonrpcfxmock . JSONRPCModule,Router,ConnectionManager

// Package jsonrpcfx owns the listening socket and the per-client JSON-RPC connections.
package jsonrpcfx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ensime/ensimed/src/ensimed/internal/discoveryfile"
	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _configKeyServer = "server"

// Module is an fx module to handle JSON-RPC connections.
var Module = fx.Provide(New)

// JSONRPCModule represents a module to manage JSON-RPC connections.
type JSONRPCModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
	// Addr returns the bound address once started.
	Addr() net.Addr
}

// Router serves as the interface through which handling of requests will be implemented.
type Router interface {
	HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, conn *Connection) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type serverConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	ExitOnDisconnect bool   `yaml:"exitOnDisconnect"`
}

type module struct {
	cfg serverConfig

	connectionMgr ConnectionManager
	discovery     discoveryfile.DiscoveryFile
	shutdowner    fx.Shutdowner
	logger        *zap.SugaredLogger
	stats         tally.Scope

	ln           net.Listener
	shuttingDown atomic.Bool
	acceptDone   chan struct{}
	handlers     sync.WaitGroup

	// Background context for connections, canceled on stop.
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	conns map[*Connection]struct{}
}

// Params define values to be used by the JSON-RPC module.
type Params struct {
	fx.In

	Config     config.Provider
	Lifecycle  fx.Lifecycle
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
	Discovery  discoveryfile.DiscoveryFile
	Shutdowner fx.Shutdowner
}

// New creates a new server accepting JSON-RPC connections on the configured host and port.
func New(p Params) (JSONRPCModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &module{
		discovery:  p.Discovery,
		shutdowner: p.Shutdowner,
		logger:     p.Logger.Named("jsonrpc"),
		stats:      p.Stats.SubScope("jsonrpc"),
		acceptDone: make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		conns:      make(map[*Connection]struct{}),
	}

	if err := m.processConfig(p.Config); err != nil {
		cancel()
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})

	return m, nil
}

// OnStart binds the listening socket, records the port in the discovery file, and begins accepting connections.
func (m *module) OnStart(ctx context.Context) error {
	if m.connectionMgr == nil {
		return errors.New("cannot serve connections, no connection manager set")
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port)))
	if err != nil {
		return fmt.Errorf("binding listener: %w", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	if err := m.discovery.WritePort(port); err != nil {
		return multierr.Append(err, ln.Close())
	}
	m.ln = ln

	m.logger.Infow("started JSON-RPC inbound", zap.Stringer("address", ln.Addr()))
	go m.accept()
	return nil
}

func (m *module) accept() {
	defer close(m.acceptDone)
	for {
		conn, err := m.ln.Accept()
		if err != nil {
			if m.shuttingDown.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			m.logger.Warnw("accepting connection", "error", err)
			continue
		}

		m.handlers.Add(1)
		go m.serve(conn)
	}
}

// serve runs one connection to completion.
func (m *module) serve(netConn net.Conn) {
	defer m.handlers.Done()

	conn := NewConnection(netConn, m.logger)
	if !m.track(conn) {
		conn.Close()
		return
	}
	defer m.untrack(conn)

	router, err := m.connectionMgr.NewConnection(m.ctx, conn)
	if err != nil {
		m.logger.Errorw("initializing connection", "remote", conn.RemoteAddr(), "error", err)
		conn.Close()
		return
	}

	m.stats.Counter("connections").Inc(1)
	m.logger.Infow("client connected", zap.Stringer("uuid", router.UUID()), "remote", conn.RemoteAddr())

	err = conn.Serve(m.ctx, router)

	m.connectionMgr.RemoveConnection(m.ctx, router.UUID())
	if err != nil {
		m.stats.Counter("connection_failures").Inc(1)
		m.logger.Warnw("client connection failed", zap.Stringer("uuid", router.UUID()), "error", err)
	} else {
		m.logger.Infow("client disconnected", zap.Stringer("uuid", router.UUID()))
	}

	if m.cfg.ExitOnDisconnect && !m.shuttingDown.Load() {
		m.logger.Info("exiting after client disconnect")
		if err := m.shutdowner.Shutdown(); err != nil {
			m.logger.Errorw("requesting shutdown", "error", err)
		}
	}
}

func (m *module) track(conn *Connection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shuttingDown.Load() {
		return false
	}
	m.conns[conn] = struct{}{}
	return true
}

func (m *module) untrack(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, conn)
}

// OnStop stops accepting, closes every live connection, and waits for their handlers until ctx is done.
func (m *module) OnStop(ctx context.Context) error {
	m.mu.Lock()
	m.shuttingDown.Store(true)
	live := make([]*Connection, 0, len(m.conns))
	for c := range m.conns {
		live = append(live, c)
	}
	m.mu.Unlock()

	var err error
	if m.ln != nil {
		err = multierr.Append(err, m.ln.Close())
		<-m.acceptDone
	}
	for _, c := range live {
		err = multierr.Append(err, c.Close())
	}
	m.cancel()

	finished := make(chan struct{})
	go func() {
		m.handlers.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-ctx.Done():
		err = multierr.Append(err, fmt.Errorf("waiting for connections: %w", ctx.Err()))
	}
	return err
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

func (m *module) Addr() net.Addr {
	if m.ln == nil {
		return nil
	}
	return m.ln.Addr()
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	if err := cfg.Get(_configKeyServer).Populate(&m.cfg); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyServer, err)
	}

	if m.cfg.Host == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyServer+".host")
	}
	if m.cfg.Port < 0 || m.cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d in config", m.cfg.Port)
	}

	return nil
}
