// Package watcher turns file-system changes below the project into retypecheck and index refresh requests.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ensime/ensimed/src/ensimed/controller/indexer"
	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/clock"
	"github.com/fsnotify/fsnotify"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey   = "watcher"
	_sourceExt = ".go"

	_outputDebounce = 200 * time.Millisecond
)

// Retypechecker schedules a reload of the working set.
type Retypechecker interface {
	AskReTypecheck()
}

// Params are inbound parameters to initialize a new watcher.
type Params struct {
	fx.In

	Project       entity.ProjectConfig
	Retypechecker Retypechecker
	Indexer       indexer.Controller
	Clock         clock.Clock
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
	Lifecycle     fx.Lifecycle
}

// Controller defines the methods that this controller provides.
type Controller interface {
	// Watch starts watching the source roots and target directories until Close is called.
	Watch() error
	Close() error
}

type controller struct {
	project       entity.ProjectConfig
	retypechecker Retypechecker
	indexer       indexer.Controller
	clock         clock.Clock
	logger        *zap.SugaredLogger
	stats         tally.Scope

	watcher *fsnotify.Watcher
	closer  chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	debounceMu     sync.Mutex
	debounceTimer  clock.Timer
	pendingOutputs map[string]struct{}
}

// New creates a watcher. Watching begins when the application starts.
func New(p Params) Controller {
	c := newController(p.Project, p.Retypechecker, p.Indexer, p.Clock, p.Logger, p.Stats)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error { return c.Watch() },
		OnStop:  func(context.Context) error { return c.Close() },
	})
	return c
}

func newController(project entity.ProjectConfig, r Retypechecker, idx indexer.Controller, clk clock.Clock, logger *zap.SugaredLogger, stats tally.Scope) *controller {
	return &controller{
		project:        project,
		retypechecker:  r,
		indexer:        idx,
		clock:          clk,
		logger:         logger.Named(_nameKey),
		stats:          stats.SubScope(_nameKey),
		closer:         make(chan struct{}),
		pendingOutputs: make(map[string]struct{}),
	}
}

func (c *controller) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file system watcher: %w", err)
	}
	c.watcher = watcher

	for _, root := range append(append([]string{}, c.project.SourceRoots...), c.project.TargetDirs...) {
		if err := c.addTree(root); err != nil {
			c.logger.Warnw("not watching directory", "dir", root, "error", err)
		}
	}

	c.wg.Add(1)
	go c.handleChanges()
	return nil
}

// addTree watches dir and every non-hidden directory below it.
func (c *controller) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return c.watcher.Add(path)
	})
}

func (c *controller) handleChanges() {
	defer c.wg.Done()
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			c.consumeEvent(event)
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warnw("file watcher failure", "error", err)
		case <-c.closer:
			return
		}
	}
}

func (c *controller) consumeEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if event.Has(fsnotify.Create) && c.watcher != nil && !strings.HasPrefix(filepath.Base(event.Name), ".") {
		if err := c.addTree(event.Name); err == nil {
			c.logger.Debugw("watching new directory", "dir", event.Name)
		}
	}

	switch {
	case c.underAny(event.Name, c.project.TargetDirs):
		c.stats.Counter("output_changes").Inc(1)
		c.scheduleOutputRefresh(event.Name)
	case c.underAny(event.Name, c.project.SourceRoots) && filepath.Ext(event.Name) == _sourceExt:
		c.stats.Counter("source_changes").Inc(1)
		c.retypechecker.AskReTypecheck()
	}
}

// scheduleOutputRefresh batches changed build outputs until no change arrived for a short while.
func (c *controller) scheduleOutputRefresh(path string) {
	c.debounceMu.Lock()
	defer c.debounceMu.Unlock()

	c.pendingOutputs[path] = struct{}{}
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = c.clock.AfterFunc(_outputDebounce, c.flushOutputs)
}

func (c *controller) flushOutputs() {
	c.debounceMu.Lock()
	paths := make([]string, 0, len(c.pendingOutputs))
	for p := range c.pendingOutputs {
		paths = append(paths, p)
	}
	c.pendingOutputs = make(map[string]struct{})
	c.debounceTimer = nil
	c.debounceMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	if err := c.indexer.Refresh(context.Background(), paths); err != nil {
		c.logger.Warnw("refreshing index", "paths", paths, "error", err)
	}
	c.retypechecker.AskReTypecheck()
}

func (c *controller) underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (c *controller) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closer)
		c.wg.Wait()

		c.debounceMu.Lock()
		if c.debounceTimer != nil {
			c.debounceTimer.Stop()
			c.debounceTimer = nil
		}
		c.debounceMu.Unlock()

		if c.watcher != nil {
			err = c.watcher.Close()
		}
	})
	return err
}
