//go:generate mockgen -destination=analyzermock/analyzer_mock.go -package=analyzermock . Controller

// Package analyzer drives the compiler over the working set and answers point queries.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/gateway/compiler"
	ensimederrors "github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/uber-go/tally"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _sourceExt = ".go"

// errPassAborted is returned by runPass when the compiler failed internally.
var errPassAborted = errors.New("compiler pass aborted")

// Publisher receives the events produced by the analyzer.
type Publisher interface {
	Publish(event entity.Event)
}

// UndoLog records reversible edit batches.
type UndoLog interface {
	AddUndo(summary string, edits []entity.FileEdit) entity.Undo
}

// Controller maintains the working set and runs typecheck passes over it.
// Passes run on the calling goroutine.
type Controller interface {
	// InternSource installs or replaces the handle of file in the working set. No compilation happens.
	InternSource(ctx context.Context, file entity.SourceFileInfo) (compiler.File, error)
	// RemoveSource drops file from the working set.
	RemoveSource(ctx context.Context, file entity.SourceFileInfo)
	// TypecheckAll interns files, then clears every published note and publishes the notes of a full pass.
	// Full passes never interleave their events.
	TypecheckAll(ctx context.Context, files []entity.SourceFileInfo) error
	// TypecheckForUnits interns files and runs a silent full pass, returning the units of files only.
	TypecheckForUnits(ctx context.Context, files []entity.SourceFileInfo) ([]compiler.Unit, error)

	PathToPoint(ctx context.Context, file entity.SourceFileInfo, offset int) ([]entity.PathElement, error)
	ScopeForPoint(ctx context.Context, file entity.SourceFileInfo, offset int) ([]entity.ScopeEntry, error)
	DocSignatureAtPoint(ctx context.Context, file entity.SourceFileInfo, offset int) (*entity.SymbolInfo, error)
	TypeAtPoint(ctx context.Context, file entity.SourceFileInfo, offset int) (*entity.TypeInfo, error)
	LinkPos(ctx context.Context, fqn string, file entity.SourceFileInfo) (*entity.OffsetPosition, error)

	// Bootstrap loads the project's sources, typechecks them, and publishes AnalyzerReady.
	Bootstrap(ctx context.Context) error
	// ReloadAll picks up sources added below the source roots, re-reads every disk-backed unit,
	// typechecks everything, and publishes FullTypeCheckComplete.
	ReloadAll(ctx context.Context) error
	// Restart drops the compiler's caches and publishes CompilerRestarted.
	Restart(ctx context.Context) error

	// ApplyEdits writes edits to disk and records the edits reversing them in the undo log.
	ApplyEdits(ctx context.Context, summary string, edits []entity.FileEdit) (entity.Undo, error)
	// ReverseEdits writes the edits of undo to disk.
	ReverseEdits(ctx context.Context, undo entity.Undo) (entity.UndoResult, error)
}

// Params are inbound parameters to initialize a new analyzer.
type Params struct {
	fx.In

	Project   entity.ProjectConfig
	Compiler  compiler.Compiler
	FS        fs.FS
	Publisher Publisher
	Undo      UndoLog
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Lifecycle fx.Lifecycle
}

type controller struct {
	project   entity.ProjectConfig
	compiler  compiler.Compiler
	fs        fs.FS
	publisher Publisher
	undo      UndoLog
	logger    *zap.SugaredLogger
	stats     tally.Scope

	workingSet *workingSet
	archives   *archiveCache

	// Held from the clear to the notes of a full pass.
	passMu sync.Mutex
}

// New creates a new analyzer controller.
func New(p Params) Controller {
	c := &controller{
		project:    p.Project,
		compiler:   p.Compiler,
		fs:         p.FS,
		publisher:  p.Publisher,
		undo:       p.Undo,
		logger:     p.Logger.Named("analyzer"),
		stats:      p.Stats.SubScope("analyzer"),
		workingSet: newWorkingSet(),
		archives:   newArchiveCache(),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.archives.close()
		},
	})
	return c
}

func (c *controller) InternSource(ctx context.Context, file entity.SourceFileInfo) (compiler.File, error) {
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ensimederrors.NoFileOnWireError, err)
	}

	content, err := c.contents(file)
	if err != nil {
		return nil, err
	}
	handle := c.compiler.NewFile(file.URI(), file.Name(), content)
	c.workingSet.put(file, handle)
	return handle, nil
}

func (c *controller) contents(file entity.SourceFileInfo) ([]byte, error) {
	switch {
	case file.Contents != nil:
		return []byte(*file.Contents), nil
	case file.IsArchiveEntry():
		return c.archives.read(file.Archive, file.Entry)
	}

	data, err := c.fs.ReadFile(file.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &ensimederrors.SourceNotFoundError{URI: string(file.URI())}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", file.Path, err)
	}
	return data, nil
}

func (c *controller) RemoveSource(ctx context.Context, file entity.SourceFileInfo) {
	if c.workingSet.remove(file.URI()) {
		c.logger.Debugw("removed source", "file", file.Name())
	}
}

func (c *controller) TypecheckAll(ctx context.Context, files []entity.SourceFileInfo) error {
	c.passMu.Lock()
	defer c.passMu.Unlock()

	for _, f := range files {
		if _, err := c.InternSource(ctx, f); err != nil {
			return err
		}
	}
	return c.publishFullPass(ctx)
}

// publishFullPass typechecks the working set and replaces every published note. Callers hold passMu.
func (c *controller) publishFullPass(ctx context.Context) error {
	c.publisher.Publish(entity.ClearAllNotesEvent())
	collector := &noteCollector{}
	if _, err := c.runPass(ctx, handles(c.workingSet.snapshot()), collector); err != nil {
		if errors.Is(err, errPassAborted) {
			return nil
		}
		return err
	}

	c.stats.Counter("notes").Inc(int64(len(collector.notes)))
	c.publisher.Publish(entity.NewNotesEvent(true, collector.notes))
	return nil
}

func (c *controller) TypecheckForUnits(ctx context.Context, files []entity.SourceFileInfo) ([]compiler.Unit, error) {
	for _, f := range files {
		if _, err := c.InternSource(ctx, f); err != nil {
			return nil, err
		}
	}

	units, err := c.runPass(ctx, handles(c.workingSet.snapshot()), compiler.Silent)
	if errors.Is(err, errPassAborted) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result []compiler.Unit
	seen := make(map[uri.URI]struct{}, len(files))
	for _, f := range files {
		u := f.URI()
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		if unit, ok := units[u]; ok {
			result = append(result, unit)
		}
	}
	return result, nil
}

// runPass runs the compiler over files. A panic inside the compiler is logged and reported as errPassAborted.
func (c *controller) runPass(ctx context.Context, files []compiler.File, listener compiler.Listener) (units map[uri.URI]compiler.Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.stats.Counter("compiler_failures").Inc(1)
			c.logger.Errorw("compiler failed during pass",
				"files", len(files),
				"error", &ensimederrors.CompilerFailureError{Cause: r},
				"stack", string(debug.Stack()),
			)
			units, err = nil, errPassAborted
		}
	}()

	c.stats.Counter("passes").Inc(1)
	return c.compiler.Run(ctx, files, listener)
}

func (c *controller) unitFor(ctx context.Context, file entity.SourceFileInfo) (compiler.Unit, error) {
	units, err := c.TypecheckForUnits(ctx, []entity.SourceFileInfo{file})
	if err != nil || len(units) == 0 {
		return nil, err
	}
	return units[0], nil
}

// query runs lookup on the unit of file. A panic inside the lookup is logged and reported as an empty result.
func query[T any](ctx context.Context, c *controller, name string, file entity.SourceFileInfo, lookup func(compiler.Unit) (T, error)) (result T, err error) {
	u, err := c.unitFor(ctx, file)
	if err != nil || u == nil {
		return result, err
	}

	defer func() {
		if r := recover(); r != nil {
			c.stats.Counter("compiler_failures").Inc(1)
			c.logger.Errorw("compiler failed during lookup",
				"query", name,
				"file", file.Name(),
				"error", &ensimederrors.CompilerFailureError{Cause: r},
				"stack", string(debug.Stack()),
			)
			var empty T
			result, err = empty, nil
		}
	}()
	return lookup(u)
}

func (c *controller) PathToPoint(ctx context.Context, file entity.SourceFileInfo, offset int) ([]entity.PathElement, error) {
	return query(ctx, c, "pathToPoint", file, func(u compiler.Unit) ([]entity.PathElement, error) {
		return u.PathToPoint(offset)
	})
}

func (c *controller) ScopeForPoint(ctx context.Context, file entity.SourceFileInfo, offset int) ([]entity.ScopeEntry, error) {
	return query(ctx, c, "scopeForPoint", file, func(u compiler.Unit) ([]entity.ScopeEntry, error) {
		return u.ScopeForPoint(offset)
	})
}

func (c *controller) DocSignatureAtPoint(ctx context.Context, file entity.SourceFileInfo, offset int) (*entity.SymbolInfo, error) {
	return query(ctx, c, "docSignatureAtPoint", file, func(u compiler.Unit) (*entity.SymbolInfo, error) {
		return u.DocSignatureAtPoint(offset)
	})
}

func (c *controller) TypeAtPoint(ctx context.Context, file entity.SourceFileInfo, offset int) (*entity.TypeInfo, error) {
	info, err := query(ctx, c, "typeAtPoint", file, func(u compiler.Unit) (*entity.TypeInfo, error) {
		return u.TypeAtPoint(offset)
	})
	if err != nil || info == nil {
		return info, err
	}

	if e, ok := c.workingSet.get(file.URI()); ok {
		if r, err := mapper.OffsetsToRange(e.handle.Content(), info.Start, info.End); err == nil {
			info.Range = r
		}
	}
	return info, nil
}

func (c *controller) LinkPos(ctx context.Context, fqn string, file entity.SourceFileInfo) (*entity.OffsetPosition, error) {
	return query(ctx, c, "linkPos", file, func(u compiler.Unit) (*entity.OffsetPosition, error) {
		return u.LinkPos(fqn)
	})
}

func (c *controller) Bootstrap(ctx context.Context) error {
	c.passMu.Lock()
	defer c.passMu.Unlock()

	added := c.internDiscovered(ctx)
	c.logger.Infow("loaded project sources", "files", added)

	err := c.publishFullPass(ctx)
	if err != nil {
		c.logger.Errorw("initial typecheck failed", "error", err)
	}
	c.publisher.Publish(entity.AnalyzerReadyEvent())
	return err
}

// discover lists the sources below the source roots and inside the archives.
// Roots and archives that cannot be read are logged and skipped.
func (c *controller) discover() []entity.SourceFileInfo {
	var files []entity.SourceFileInfo
	for _, root := range c.project.SourceRoots {
		paths, err := c.fs.WalkFiles(root, _sourceExt)
		if err != nil {
			c.logger.Warnw("skipping source root", "root", root, "error", err)
			continue
		}
		for _, p := range paths {
			files = append(files, entity.DiskFile(p))
		}
	}
	for _, archive := range c.project.Archives {
		entries, err := c.archives.entries(archive, _sourceExt)
		if err != nil {
			c.logger.Warnw("skipping archive", "archive", archive, "error", err)
			continue
		}
		for _, e := range entries {
			files = append(files, entity.ArchiveEntry(archive, e))
		}
	}
	return files
}

// internDiscovered interns the discovered sources missing from the working set and returns how many joined.
// Sources that cannot be read are logged and skipped.
func (c *controller) internDiscovered(ctx context.Context) int {
	added := 0
	for _, f := range c.discover() {
		if _, ok := c.workingSet.get(f.URI()); ok {
			continue
		}
		if _, err := c.InternSource(ctx, f); err != nil {
			c.logger.Warnw("skipping source", "file", f.Name(), "error", err)
			continue
		}
		added++
	}
	return added
}

func (c *controller) ReloadAll(ctx context.Context) error {
	c.passMu.Lock()
	defer c.passMu.Unlock()

	for _, e := range c.workingSet.snapshot() {
		if e.info.Contents != nil || e.info.IsArchiveEntry() {
			continue
		}
		if _, err := c.InternSource(ctx, e.info); err != nil {
			var notFound *ensimederrors.SourceNotFoundError
			if errors.As(err, &notFound) {
				c.workingSet.remove(e.info.URI())
				continue
			}
			c.logger.Warnw("keeping stale source", "file", e.info.Name(), "error", err)
		}
	}

	if added := c.internDiscovered(ctx); added > 0 {
		c.logger.Infow("picked up new sources", "files", added)
	}

	if err := c.publishFullPass(ctx); err != nil {
		return err
	}
	c.publisher.Publish(entity.FullTypeCheckCompleteEvent())
	return nil
}

func (c *controller) Restart(ctx context.Context) error {
	c.compiler.Reset()
	c.logger.Info("compiler restarted")
	c.publisher.Publish(entity.CompilerRestartedEvent())
	return nil
}

func (c *controller) ApplyEdits(ctx context.Context, summary string, edits []entity.FileEdit) (entity.Undo, error) {
	_, reverse, err := c.writeEdits(ctx, edits)
	if err != nil {
		return entity.Undo{}, err
	}
	return c.undo.AddUndo(summary, reverse), nil
}

func (c *controller) ReverseEdits(ctx context.Context, undo entity.Undo) (entity.UndoResult, error) {
	files, _, err := c.writeEdits(ctx, undo.Edits)
	if err != nil {
		return entity.UndoResult{}, err
	}
	return entity.UndoResult{ID: undo.ID, Files: files}, nil
}

// writeEdits applies edits to files on disk and returns the touched files with
// the edits that restore their previous contents. Every file is edited in memory
// before any is written.
func (c *controller) writeEdits(ctx context.Context, edits []entity.FileEdit) ([]string, []entity.FileEdit, error) {
	order, byFile := mapper.GroupEditsByFile(edits)

	type pending struct {
		path    string
		content []byte
	}
	var (
		writes  []pending
		reverse []entity.FileEdit
		files   []string
	)
	dmp := diffmatchpatch.New()
	for _, name := range order {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.project.Root, path)
		}

		before, err := c.fs.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %q: %w", path, err)
		}
		after, err := mapper.ApplyFileEdits(before, byFile[name])
		if err != nil {
			return nil, nil, err
		}

		writes = append(writes, pending{path: path, content: after})
		reverse = append(reverse, mapper.DiffsToFileEdits(path, dmp.DiffMain(string(after), string(before), false))...)
		files = append(files, path)
	}

	for _, w := range writes {
		if err := c.fs.WriteFile(w.path, w.content); err != nil {
			return nil, nil, fmt.Errorf("writing %q: %w", w.path, err)
		}
		// Units with unsaved contents keep them; disk-backed units see the new text.
		if e, ok := c.workingSet.get(uri.File(w.path)); ok && e.info.Contents == nil {
			c.workingSet.put(e.info, c.compiler.NewFile(e.handle.URI(), e.handle.Name(), w.content))
		}
	}
	return files, reverse, nil
}

// noteCollector gathers the notes of one reporting pass.
type noteCollector struct {
	notes []entity.Note
}

func (n *noteCollector) Report(d compiler.Diagnostic) {
	n.notes = append(n.notes, mapper.DiagnosticToNote(d))
}
