//go:generate mockgen -destination=coordinatormock/coordinator_mock.go -package=coordinatormock . Coordinator

// Package coordinator owns readiness, the retypecheck debounce, the undo log, and event fan-out.
// Its state is confined to a single goroutine that runs one command at a time.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/clock"
	ensimederrors "github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/internal/oneshot"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyRetypecheck = "retypecheck"

	_defaultBaseDelay = time.Second
	_defaultCooldown  = 5 * time.Second
)

var errStopped = ensimederrors.New("coordinator stopped")

// Subscriber receives published events. Deliver is called from the coordinator's
// goroutine and must not block.
type Subscriber interface {
	Deliver(event entity.Event)
}

// Engine is the analysis engine as seen by the coordinator.
type Engine interface {
	// Bootstrap performs the initial load and publishes AnalyzerReady.
	Bootstrap(ctx context.Context) error
	ReloadAll(ctx context.Context) error
	ReverseEdits(ctx context.Context, undo entity.Undo) (entity.UndoResult, error)
}

// Indexer is the search index as seen by the coordinator.
type Indexer interface {
	// Start performs the initial index and publishes IndexerReady.
	Start(ctx context.Context) error
}

// Coordinator is the central actor of the server.
type Coordinator interface {
	// Start spawns the engine's bootstrap and the indexer, resets the undo log,
	// and returns the signal set once both reported readiness.
	Start(ctx context.Context, engine Engine, indexer Indexer) *oneshot.Signal
	// Subscribe registers sub. It returns true when sub was the first subscriber
	// and received every event buffered until then.
	Subscribe(sub Subscriber) bool
	Unsubscribe(sub Subscriber)
	Publish(event entity.Event)
	// Ready returns the signal set once both the analyzer and the indexer are ready.
	Ready() *oneshot.Signal

	// AskReTypecheck schedules a debounced reload of the whole working set.
	AskReTypecheck()

	AddUndo(summary string, edits []entity.FileEdit) entity.Undo
	PeekUndo() (entity.Undo, bool)
	// ExecUndo removes the undo and asks the engine to reverse it. It fails with UndoNotFoundError when id is unknown.
	ExecUndo(ctx context.Context, id int64) (entity.UndoResult, error)

	// Stop cancels the pending retypecheck and stops the coordinator, waiting for background work until ctx is done.
	Stop(ctx context.Context) error
}

// Params are inbound parameters to initialize a new coordinator.
type Params struct {
	fx.In

	Config    config.Provider
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Lifecycle fx.Lifecycle
}

type retypecheckConfig struct {
	BaseDelayMillis int64 `yaml:"baseDelayMillis"`
	CooldownMillis  int64 `yaml:"cooldownMillis"`
}

type state int

const (
	_stateWaiting state = iota
	_stateReady
)

type coordinator struct {
	clock     clock.Clock
	logger    *zap.SugaredLogger
	stats     tally.Scope
	baseDelay time.Duration
	cooldown  time.Duration

	commands chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// Background work spawned by the coordinator, canceled on Stop.
	background context.Context
	cancel     context.CancelFunc
	workers    sync.WaitGroup

	ready *oneshot.Signal

	// Owned by the coordinator goroutine.
	state       state
	buffer      []entity.Event
	subscribers []Subscriber

	indexerReady           bool
	analyzerReady          bool
	initializationComplete bool

	engine          Engine
	pending         clock.Timer
	generation      uint64
	earliestAllowed time.Time
	reloading       bool
	reloadQueued    bool

	undos  map[int64]entity.Undo
	order  []int64
	nextID int64
}

// New creates a coordinator in the Waiting state and starts its goroutine.
func New(p Params) (Coordinator, error) {
	cfg := retypecheckConfig{
		BaseDelayMillis: _defaultBaseDelay.Milliseconds(),
		CooldownMillis:  _defaultCooldown.Milliseconds(),
	}
	if err := p.Config.Get(_configKeyRetypecheck).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyRetypecheck, err)
	}

	c := newCoordinator(p.Clock, p.Logger, p.Stats,
		time.Duration(cfg.BaseDelayMillis)*time.Millisecond,
		time.Duration(cfg.CooldownMillis)*time.Millisecond,
	)
	p.Lifecycle.Append(fx.Hook{
		OnStop: c.Stop,
	})
	return c, nil
}

func newCoordinator(clk clock.Clock, logger *zap.SugaredLogger, stats tally.Scope, baseDelay, cooldown time.Duration) *coordinator {
	background, cancel := context.WithCancel(context.Background())
	c := &coordinator{
		clock:      clk,
		logger:     logger.Named("coordinator"),
		stats:      stats.SubScope("coordinator"),
		baseDelay:  baseDelay,
		cooldown:   cooldown,
		commands:   make(chan func()),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		background: background,
		cancel:     cancel,
		ready:      oneshot.New(),
		undos:      make(map[int64]entity.Undo),
	}
	go c.loop()
	return c
}

func (c *coordinator) loop() {
	defer close(c.done)
	for {
		select {
		case cmd := <-c.commands:
			cmd()
		case <-c.quit:
			return
		}
	}
}

// do runs f on the coordinator goroutine and waits for it. It returns false once the coordinator stopped.
func (c *coordinator) do(f func()) bool {
	finished := make(chan struct{})
	select {
	case c.commands <- func() { defer close(finished); f() }:
		<-finished
		return true
	case <-c.quit:
		return false
	}
}

// spawn runs f in the background until it returns.
func (c *coordinator) spawn(name string, f func(ctx context.Context) error) {
	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		if err := f(c.background); err != nil {
			c.logger.Errorw("background task failed", "task", name, "error", err)
		}
	}()
}

func (c *coordinator) Start(ctx context.Context, engine Engine, indexer Indexer) *oneshot.Signal {
	started := c.do(func() {
		c.engine = engine
		c.undos = make(map[int64]entity.Undo)
		c.order = nil
		c.nextID = 0

		c.spawn("indexer", indexer.Start)
		c.spawn("analyzer", engine.Bootstrap)
	})
	if started {
		c.logger.Info("coordinator started")
	}
	return c.ready
}

func (c *coordinator) Ready() *oneshot.Signal {
	return c.ready
}

func (c *coordinator) Subscribe(sub Subscriber) (replayed bool) {
	c.do(func() {
		c.subscribers = append(c.subscribers, sub)
		if c.state == _stateReady {
			return
		}

		for _, e := range c.buffer {
			sub.Deliver(e)
		}
		c.logger.Debugw("replayed buffered events", "events", len(c.buffer))
		c.buffer = nil
		c.state = _stateReady
		replayed = true
	})
	return replayed
}

func (c *coordinator) Unsubscribe(sub Subscriber) {
	c.do(func() {
		for i, s := range c.subscribers {
			if s == sub {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	})
}

func (c *coordinator) Publish(event entity.Event) {
	ok := c.do(func() {
		c.trackReadiness(event)
		c.stats.Counter("published").Inc(1)

		if c.state == _stateWaiting {
			c.buffer = append(c.buffer, event)
			return
		}
		for _, s := range c.subscribers {
			s.Deliver(event)
		}
	})
	if !ok {
		c.logger.Debugw("dropping event published after stop", "kind", event.Kind)
	}
}

func (c *coordinator) trackReadiness(event entity.Event) {
	if c.initializationComplete {
		return
	}
	switch event.Kind {
	case entity.EventAnalyzerReady:
		c.analyzerReady = true
	case entity.EventIndexerReady:
		c.indexerReady = true
	default:
		return
	}
	if c.analyzerReady && c.indexerReady {
		c.initializationComplete = true
		c.ready.Set()
		c.logger.Info("initialization complete")
	}
}

func (c *coordinator) AskReTypecheck() {
	c.do(func() {
		if c.pending != nil {
			c.pending.Stop()
		}

		delay := c.earliestAllowed.Sub(c.clock.Now())
		if delay < c.baseDelay {
			delay = c.baseDelay
		}

		c.generation++
		generation := c.generation
		c.pending = c.clock.AfterFunc(delay, func() {
			c.do(func() { c.fireRetypecheck(generation) })
		})
		c.logger.Debugw("retypecheck scheduled", "delay", delay)
	})
}

func (c *coordinator) fireRetypecheck(generation uint64) {
	// A timer stopped too late to prevent its callback is superseded by a newer one.
	if generation != c.generation {
		return
	}
	c.pending = nil
	c.earliestAllowed = c.clock.Now().Add(c.cooldown)

	if c.engine == nil {
		c.logger.Warn("retypecheck requested before start")
		return
	}
	c.stats.Counter("reloads").Inc(1)
	if c.reloading {
		// At most one reload runs; requests arriving meanwhile collapse into one follow-up.
		c.reloadQueued = true
		c.stats.Counter("reloads_coalesced").Inc(1)
		return
	}
	c.startReload()
}

func (c *coordinator) startReload() {
	c.reloading = true
	engine := c.engine
	c.spawn("reload", func(ctx context.Context) error {
		err := engine.ReloadAll(ctx)
		c.do(c.finishReload)
		return err
	})
}

func (c *coordinator) finishReload() {
	c.reloading = false
	if c.reloadQueued && c.engine != nil {
		c.reloadQueued = false
		c.startReload()
	}
}

func (c *coordinator) AddUndo(summary string, edits []entity.FileEdit) (undo entity.Undo) {
	c.do(func() {
		c.nextID++
		undo = entity.Undo{ID: c.nextID, Summary: summary, Edits: edits}
		c.undos[undo.ID] = undo
		c.order = append(c.order, undo.ID)
	})
	return undo
}

func (c *coordinator) PeekUndo() (undo entity.Undo, ok bool) {
	c.do(func() {
		if len(c.order) == 0 {
			return
		}
		undo, ok = c.undos[c.order[len(c.order)-1]]
	})
	return undo, ok
}

func (c *coordinator) ExecUndo(ctx context.Context, id int64) (entity.UndoResult, error) {
	var (
		undo   entity.Undo
		engine Engine
		found  bool
	)
	if !c.do(func() {
		engine = c.engine
		undo, found = c.undos[id]
		if !found {
			return
		}
		delete(c.undos, id)
		for i, existing := range c.order {
			if existing == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}) {
		return entity.UndoResult{}, errStopped
	}

	if !found {
		return entity.UndoResult{}, &ensimederrors.UndoNotFoundError{ID: id}
	}
	if engine == nil {
		return entity.UndoResult{}, fmt.Errorf("executing undo %d: coordinator not started", id)
	}
	return engine.ReverseEdits(ctx, undo)
}

func (c *coordinator) Stop(ctx context.Context) error {
	c.stopOnce.Do(func() {
		c.do(func() {
			if c.pending != nil {
				c.pending.Stop()
				c.pending = nil
			}
			c.generation++
			c.reloadQueued = false
		})
		c.cancel()
		close(c.quit)
	})

	finished := make(chan struct{})
	go func() {
		<-c.done
		c.workers.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stopping coordinator: %w", ctx.Err())
	}
}
