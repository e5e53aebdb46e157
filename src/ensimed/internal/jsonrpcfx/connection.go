package jsonrpcfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	_inboundQueueSize = 64

	// Messages waiting for a client that stopped reading; past this the connection is dropped.
	_maxOutboxSize = 4096
)

var (
	errConnectionClosed = errors.New("connection closed")
	errOutboxFull       = errors.New("client is not reading its messages")
)

// Connection serves a single client. A reader goroutine decodes framed messages into an inbound queue,
// a dispatcher hands them to the Router one at a time, and a writer serializes responses and pushed events.
// Any read or write failure terminates the connection.
type Connection struct {
	remoteAddr string
	stream     jsonrpc2.Stream
	logger     *zap.SugaredLogger

	inbound chan jsonrpc2.Message

	outMu      sync.Mutex
	outbox     []jsonrpc2.Message
	maxOutbox  int
	overflowed bool
	wake       chan struct{}

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewConnection wraps conn with Content-Length framing.
func NewConnection(conn net.Conn, logger *zap.SugaredLogger) *Connection {
	remote := ""
	if addr := conn.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	return &Connection{
		remoteAddr: remote,
		stream:     jsonrpc2.NewStream(conn),
		logger:     logger.With("remote", remote),
		inbound:    make(chan jsonrpc2.Message, _inboundQueueSize),
		maxOutbox:  _maxOutboxSize,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// RemoteAddr returns the address of the client.
func (c *Connection) RemoteAddr() string {
	return c.remoteAddr
}

// Deliver queues an event for the client without blocking.
func (c *Connection) Deliver(e entity.Event) {
	n, err := mapper.EventToNotification(e)
	if err != nil {
		c.logger.Errorw("encoding event", "kind", e.Kind, "error", err)
		return
	}
	if err := c.enqueue(n); err != nil {
		c.logger.Debugw("dropping event for closed connection", "kind", e.Kind)
	}
}

// Notify queues a notification for the client.
func (c *Connection) Notify(method string, params interface{}) error {
	n, err := jsonrpc2.NewNotification(method, params)
	if err != nil {
		return fmt.Errorf("encoding notification %q: %w", method, err)
	}
	return c.enqueue(n)
}

func (c *Connection) enqueue(msg jsonrpc2.Message) error {
	c.outMu.Lock()
	if c.closed() {
		c.outMu.Unlock()
		return errConnectionClosed
	}
	if pending := len(c.outbox); pending >= c.maxOutbox {
		c.overflowed = true
		c.outMu.Unlock()
		c.logger.Warnw("closing connection that stopped reading", "pending", pending)
		c.Close()
		return errOutboxFull
	}

	c.outbox = append(c.outbox, msg)
	select {
	case c.wake <- struct{}{}:
	default:
	}
	c.outMu.Unlock()
	return nil
}

// Serve runs the connection until the client disconnects, a read or write fails, or Close is called.
// It returns the failure that terminated the connection, or nil on a clean disconnect.
func (c *Connection) Serve(ctx context.Context, router Router) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer c.Close()
		return c.read(gctx)
	})
	g.Go(func() error {
		defer c.Close()
		return c.dispatch(gctx, router)
	})
	g.Go(func() error {
		defer c.Close()
		return c.write(gctx)
	})
	err := g.Wait()

	c.outMu.Lock()
	defer c.outMu.Unlock()
	if err == nil && c.overflowed {
		return errOutboxFull
	}
	return err
}

func (c *Connection) read(ctx context.Context) error {
	for {
		msg, _, err := c.stream.Read(ctx)
		if err != nil {
			if c.closed() || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}

		select {
		case c.inbound <- msg:
		case <-c.done:
			return nil
		}
	}
}

func (c *Connection) dispatch(ctx context.Context, router Router) error {
	for {
		select {
		case msg := <-c.inbound:
			c.handle(ctx, router, msg)
		case <-c.done:
			return nil
		}
	}
}

func (c *Connection) handle(ctx context.Context, router Router, msg jsonrpc2.Message) {
	switch m := msg.(type) {
	case *jsonrpc2.Call:
		if err := router.HandleReq(ctx, c.replier(m), m); err != nil {
			c.logger.Debugw("request failed", "method", m.Method(), "error", err)
		}
	case *jsonrpc2.Notification:
		if err := router.HandleReq(ctx, func(context.Context, interface{}, error) error { return nil }, m); err != nil {
			c.logger.Debugw("notification failed", "method", m.Method(), "error", err)
		}
	default:
		c.logger.Debugw("ignoring unexpected message", "type", fmt.Sprintf("%T", msg))
	}
}

// replier queues the response to call. It returns err so that routers can report the outcome of a request.
func (c *Connection) replier(call *jsonrpc2.Call) jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		resp, merr := jsonrpc2.NewResponse(call.ID(), result, err)
		if merr != nil {
			resp, _ = jsonrpc2.NewResponse(call.ID(), nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "encoding result: %v", merr))
		}
		if qerr := c.enqueue(resp); qerr != nil {
			return qerr
		}
		return err
	}
}

func (c *Connection) write(ctx context.Context) error {
	for {
		select {
		case <-c.wake:
		case <-c.done:
			return nil
		}

		c.outMu.Lock()
		pending := c.outbox
		c.outbox = nil
		c.outMu.Unlock()

		for _, msg := range pending {
			if _, err := c.stream.Write(ctx, msg); err != nil {
				if c.closed() {
					return nil
				}
				return fmt.Errorf("writing message: %w", err)
			}
		}
	}
}

func (c *Connection) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Done is closed once the connection terminated.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Close terminates the connection. It is safe to call more than once.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		c.outMu.Lock()
		close(c.done)
		c.outMu.Unlock()
		c.closeErr = c.stream.Close()
	})
	return c.closeErr
}
