//go:generate mockgen -destination=indexermock/indexer_mock.go -package=indexermock . Controller

// Package indexer keeps the catalog of compilation units and build outputs known to the project.
package indexer

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"github.com/klauspost/compress/zip"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	_nameKey   = "indexer"
	_sourceExt = ".go"
)

// Publisher receives the events produced by the indexer.
type Publisher interface {
	Publish(event entity.Event)
}

// Controller defines the methods that this controller provides.
type Controller interface {
	// Start catalogs the source roots, archives and target directories, then publishes IndexerReady.
	Start(ctx context.Context) error
	// Refresh re-examines paths below the target directories and publishes ClassfilesChanged.
	Refresh(ctx context.Context, paths []string) error
	// Contains reports whether path is cataloged.
	Contains(path string) bool
	Size() int
}

// Params are inbound parameters to initialize a new indexer.
type Params struct {
	fx.In

	Project   entity.ProjectConfig
	FS        fs.FS
	Publisher Publisher
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	project   entity.ProjectConfig
	fs        fs.FS
	publisher Publisher
	logger    *zap.SugaredLogger
	stats     tally.Scope

	mu      sync.RWMutex
	catalog map[string]struct{}
}

// New creates a new indexer.
func New(p Params) Controller {
	return &controller{
		project:   p.Project,
		fs:        p.FS,
		publisher: p.Publisher,
		logger:    p.Logger.Named(_nameKey),
		stats:     p.Stats.SubScope(_nameKey),
		catalog:   make(map[string]struct{}),
	}
}

func (c *controller) Start(ctx context.Context) error {
	var (
		mu    sync.Mutex
		found []string
	)
	collect := func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		found = append(found, paths...)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range c.project.SourceRoots {
		g.Go(func() error {
			paths, err := c.fs.WalkFiles(root, _sourceExt)
			if err != nil {
				c.logger.Warnw("skipping source root", "root", root, "error", err)
				return nil
			}
			collect(paths)
			return gctx.Err()
		})
	}
	for _, dir := range c.project.TargetDirs {
		g.Go(func() error {
			exists, err := c.fs.DirExists(dir)
			if err != nil || !exists {
				return nil
			}
			paths, err := c.fs.WalkFiles(dir)
			if err != nil {
				c.logger.Warnw("skipping target directory", "dir", dir, "error", err)
				return nil
			}
			collect(paths)
			return gctx.Err()
		})
	}
	for _, archive := range c.project.Archives {
		g.Go(func() error {
			entries, err := archiveEntries(archive)
			if err != nil {
				c.logger.Warnw("skipping archive", "archive", archive, "error", err)
				return nil
			}
			collect(entries)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("indexing project: %w", err)
	}

	c.mu.Lock()
	for _, p := range found {
		c.catalog[p] = struct{}{}
	}
	size := len(c.catalog)
	c.mu.Unlock()

	c.stats.Gauge("units").Update(float64(size))
	c.logger.Infow("index ready", "units", size)
	c.publisher.Publish(entity.IndexerReadyEvent())
	return nil
}

func (c *controller) Refresh(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	changed := make([]string, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		exists, err := c.fs.FileExists(p)
		if err != nil {
			c.logger.Warnw("refreshing build output", "path", p, "error", err)
			continue
		}

		c.mu.Lock()
		if exists {
			c.catalog[p] = struct{}{}
		} else {
			delete(c.catalog, p)
		}
		c.mu.Unlock()
		changed = append(changed, p)
	}
	sort.Strings(changed)

	c.stats.Counter("refreshed").Inc(int64(len(changed)))
	c.stats.Gauge("units").Update(float64(c.Size()))
	c.publisher.Publish(entity.ClassfilesChangedEvent(changed))
	return nil
}

func (c *controller) Contains(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.catalog[path]
	return ok
}

func (c *controller) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.catalog)
}

// archiveEntries lists the source entries of archive as "archive!/entry" paths.
func archiveEntries(archive string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("opening archive %q: %w", archive, err)
	}
	defer r.Close()

	var entries []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || path.Ext(f.Name) != _sourceExt {
			continue
		}
		entries = append(entries, entity.ArchiveEntry(archive, f.Name).Name())
	}
	return entries, nil
}
