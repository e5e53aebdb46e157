package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/gateway/compiler"
	"github.com/ensime/ensimed/src/ensimed/gateway/compiler/compilermock"
	ensimederrors "github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"github.com/ensime/ensimed/src/ensimed/internal/fs/fsmock"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.lsp.dev/uri"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
}

func (p *recordingPublisher) Publish(e entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) kinds() []entity.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]entity.EventKind, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (p *recordingPublisher) last(kind entity.EventKind) (entity.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].Kind == kind {
			return p.events[i], true
		}
	}
	return entity.Event{}, false
}

type recordingUndoLog struct {
	undos []entity.Undo
}

func (l *recordingUndoLog) AddUndo(summary string, edits []entity.FileEdit) entity.Undo {
	u := entity.Undo{ID: int64(len(l.undos) + 1), Summary: summary, Edits: edits}
	l.undos = append(l.undos, u)
	return u
}

type testFile struct {
	u       uri.URI
	name    string
	content []byte
}

func (f testFile) URI() uri.URI    { return f.u }
func (f testFile) Name() string    { return f.name }
func (f testFile) Content() []byte { return f.content }

type fixture struct {
	ctrl      *controller
	publisher *recordingPublisher
	undo      *recordingUndoLog
	stats     tally.TestScope
	root      string
}

func newFixture(t *testing.T, c compiler.Compiler, project entity.ProjectConfig) *fixture {
	if project.Root == "" {
		project.Root = t.TempDir()
	}
	if c == nil {
		c = compiler.New(compiler.Params{Project: project, Logger: zap.NewNop().Sugar()})
	}

	f := &fixture{
		publisher: &recordingPublisher{},
		undo:      &recordingUndoLog{},
		stats:     tally.NewTestScope("", nil),
		root:      project.Root,
	}
	lc := fxtest.NewLifecycle(t)
	f.ctrl = New(Params{
		Project:   project,
		Compiler:  c,
		FS:        fs.New(),
		Publisher: f.publisher,
		Undo:      f.undo,
		Logger:    zap.NewNop().Sugar(),
		Stats:     f.stats,
		Lifecycle: lc,
	}).(*controller)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)
	return f
}

func (f *fixture) counter(name string) int64 {
	c, ok := f.stats.Snapshot().Counters()[name+"+"]
	if !ok {
		return 0
	}
	return c.Value()
}

func buffer(path, contents string) entity.SourceFileInfo {
	return entity.DiskFile(path).WithContents(contents)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestInternSourceLastWriteWins(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	path := filepath.Join(f.root, "a.go")

	_, err := f.ctrl.InternSource(ctx, buffer(path, "package a\n\nvar x int = \"s\"\n"))
	require.NoError(t, err)
	handle, err := f.ctrl.InternSource(ctx, buffer(path, "package a\n\nvar x int = 1\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, f.ctrl.workingSet.len())
	assert.Equal(t, "package a\n\nvar x int = 1\n", string(handle.Content()))
	assert.Empty(t, f.publisher.kinds(), "interning must not compile")

	require.NoError(t, f.ctrl.TypecheckAll(ctx, nil))
	notes, ok := f.publisher.last(entity.EventNewNotes)
	require.True(t, ok)
	assert.Empty(t, notes.Notes)

	// And the other way round, the latest content is the one reported on.
	_, err = f.ctrl.InternSource(ctx, buffer(path, "package a\n\nvar x int = \"s\"\n"))
	require.NoError(t, err)
	require.NoError(t, f.ctrl.TypecheckAll(ctx, nil))
	notes, ok = f.publisher.last(entity.EventNewNotes)
	require.True(t, ok)
	require.Len(t, notes.Notes, 1)
	assert.Equal(t, 3, notes.Notes[0].Line)
}

func TestTypecheckAllPublishesNotes(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	good := buffer(filepath.Join(f.root, "good.go"), "package a\n\nfunc Good() int { return 1 }\n")
	bad := buffer(filepath.Join(f.root, "bad.go"), "package a\n\nfunc bad() string { return Good() }\n\nfunc unused() {\n\tx := 1\n}\n")

	require.NoError(t, f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{good, bad}))

	assert.Equal(t, []entity.EventKind{entity.EventClearAllNotes, entity.EventNewNotes}, f.publisher.kinds())
	notes, _ := f.publisher.last(entity.EventNewNotes)
	assert.True(t, notes.IsFull)
	require.Len(t, notes.Notes, 2)

	severities := map[entity.Severity]int{}
	for _, n := range notes.Notes {
		assert.Equal(t, bad.Path, n.File)
		severities[n.Severity]++
	}
	assert.Equal(t, 1, severities[entity.SeverityError])
	assert.Equal(t, 1, severities[entity.SeverityWarning])
	assert.Equal(t, int64(2), f.counter("analyzer.notes"))
	assert.Equal(t, int64(1), f.counter("analyzer.passes"))
}

func TestTypecheckForUnitsIsScopedAndSilent(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	a := buffer(filepath.Join(f.root, "a.go"), "package a\n\nfunc A() int { return C() }\n")
	b := buffer(filepath.Join(f.root, "b.go"), "package a\n\nfunc B() string { return \"b\" }\n")
	c := buffer(filepath.Join(f.root, "c.go"), "package a\n\nfunc C() int { return \"not an int\" }\n")

	_, err := f.ctrl.InternSource(ctx, c)
	require.NoError(t, err)

	units, err := f.ctrl.TypecheckForUnits(ctx, []entity.SourceFileInfo{a, b})
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, a.URI(), units[0].URI())
	assert.Equal(t, b.URI(), units[1].URI())
	assert.Equal(t, 3, f.ctrl.workingSet.len())
	assert.Empty(t, f.publisher.kinds())
}

func TestCompilerPanicIsContained(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := compilermock.NewMockCompiler(ctrl)
	c.EXPECT().NewFile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(u uri.URI, name string, content []byte) compiler.File {
			return testFile{u: u, name: name, content: content}
		}).AnyTimes()
	c.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []compiler.File, compiler.Listener) (map[uri.URI]compiler.Unit, error) {
			panic("assertion failed: symbol owner")
		}).Times(2)

	f := newFixture(t, c, entity.ProjectConfig{})
	ctx := context.Background()
	file := buffer("/work/a.go", "package a")

	units, err := f.ctrl.TypecheckForUnits(ctx, []entity.SourceFileInfo{file})
	assert.NoError(t, err)
	assert.Empty(t, units)
	assert.Equal(t, 1, f.ctrl.workingSet.len())

	assert.NoError(t, f.ctrl.TypecheckAll(ctx, nil))
	assert.Equal(t, []entity.EventKind{entity.EventClearAllNotes}, f.publisher.kinds())
	assert.Equal(t, int64(2), f.counter("analyzer.compiler_failures"))

	e, ok := f.ctrl.workingSet.get(file.URI())
	require.True(t, ok)
	assert.Equal(t, "package a", string(e.handle.Content()))
}

func TestPassSeesWorkingSetAsOfItsStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := compilermock.NewMockCompiler(ctrl)
	c.EXPECT().NewFile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(u uri.URI, name string, content []byte) compiler.File {
			return testFile{u: u, name: name, content: content}
		}).AnyTimes()

	started := make(chan struct{})
	release := make(chan struct{})
	var passes [][]uri.URI
	record := func(files []compiler.File) {
		var uris []uri.URI
		for _, f := range files {
			uris = append(uris, f.URI())
		}
		passes = append(passes, uris)
	}
	gomock.InOrder(
		c.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, files []compiler.File, _ compiler.Listener) (map[uri.URI]compiler.Unit, error) {
				record(files)
				close(started)
				<-release
				return nil, nil
			}),
		c.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, files []compiler.File, _ compiler.Listener) (map[uri.URI]compiler.Unit, error) {
				record(files)
				return nil, nil
			}),
	)

	f := newFixture(t, c, entity.ProjectConfig{})
	ctx := context.Background()
	a := buffer("/work/a.go", "package a")
	b := buffer("/work/b.go", "package a")

	done := make(chan error)
	go func() {
		done <- f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{a})
	}()

	<-started
	_, err := f.ctrl.InternSource(ctx, b)
	require.NoError(t, err)
	close(release)
	require.NoError(t, <-done)

	require.NoError(t, f.ctrl.TypecheckAll(ctx, nil))
	require.Len(t, passes, 2)
	assert.Equal(t, []uri.URI{a.URI()}, passes[0])
	assert.Equal(t, []uri.URI{a.URI(), b.URI()}, passes[1])
}

func TestInternSourceErrors(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()

	_, err := f.ctrl.InternSource(ctx, entity.DiskFile(filepath.Join(f.root, "missing.go")))
	var notFound *ensimederrors.SourceNotFoundError
	assert.True(t, errors.As(err, &notFound))

	_, err = f.ctrl.InternSource(ctx, entity.SourceFileInfo{})
	assert.True(t, ensimederrors.IsBadRequest(err))

	err = f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{entity.DiskFile(filepath.Join(f.root, "missing.go"))})
	assert.True(t, ensimederrors.IsUserError(err))
	assert.Equal(t, 0, f.ctrl.workingSet.len())
}

func TestTypecheckAllInternFailureKeepsPublishedNotes(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	bad := buffer(filepath.Join(f.root, "bad.go"), "package a\n\nvar x int = \"s\"\n")
	require.NoError(t, f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{bad}))
	published := f.publisher.kinds()

	err := f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{
		buffer(filepath.Join(f.root, "other.go"), "package a\n"),
		entity.DiskFile(filepath.Join(f.root, "missing.go")),
	})
	assert.True(t, ensimederrors.IsUserError(err))
	assert.Equal(t, published, f.publisher.kinds())
}

func TestConcurrentFullPassesDoNotInterleave(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := compilermock.NewMockCompiler(ctrl)
	c.EXPECT().NewFile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(u uri.URI, name string, content []byte) compiler.File {
			return testFile{u: u, name: name, content: content}
		}).AnyTimes()

	a := buffer("/work/a.go", "package a")
	started := make(chan struct{})
	release := make(chan struct{})
	report := func(l compiler.Listener) {
		l.Report(compiler.Diagnostic{File: a.URI(), Name: a.Name(), Message: "boom", Kind: compiler.KindError})
	}
	gomock.InOrder(
		c.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ []compiler.File, l compiler.Listener) (map[uri.URI]compiler.Unit, error) {
				close(started)
				<-release
				report(l)
				return nil, nil
			}),
		c.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ []compiler.File, l compiler.Listener) (map[uri.URI]compiler.Unit, error) {
				report(l)
				return nil, nil
			}),
	)

	f := newFixture(t, c, entity.ProjectConfig{})
	ctx := context.Background()

	first := make(chan error)
	go func() { first <- f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{a}) }()
	<-started

	second := make(chan error)
	go func() { second <- f.ctrl.ReloadAll(ctx) }()
	assert.Never(t, func() bool { return len(f.publisher.kinds()) > 1 }, 100*time.Millisecond, 5*time.Millisecond)

	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	assert.Equal(t, []entity.EventKind{
		entity.EventClearAllNotes,
		entity.EventNewNotes,
		entity.EventClearAllNotes,
		entity.EventNewNotes,
		entity.EventFullTypeCheckComplete,
	}, f.publisher.kinds())
	notes, _ := f.publisher.last(entity.EventNewNotes)
	assert.Len(t, notes.Notes, 1)
}

// panickingUnit stands in for a unit whose lookups hit a compiler assertion.
type panickingUnit struct {
	u uri.URI
}

func (p panickingUnit) URI() uri.URI { return p.u }
func (p panickingUnit) PathToPoint(int) ([]entity.PathElement, error) {
	panic("assertion failed: no enclosing tree")
}
func (p panickingUnit) ScopeForPoint(int) ([]entity.ScopeEntry, error) {
	panic("assertion failed: no scope")
}
func (p panickingUnit) DocSignatureAtPoint(int) (*entity.SymbolInfo, error) {
	panic("assertion failed: no symbol")
}
func (p panickingUnit) TypeAtPoint(int) (*entity.TypeInfo, error) {
	panic("assertion failed: no type")
}
func (p panickingUnit) LinkPos(string) (*entity.OffsetPosition, error) {
	panic("assertion failed: no owner")
}

func TestQueryPanicIsContained(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := compilermock.NewMockCompiler(ctrl)
	c.EXPECT().NewFile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(u uri.URI, name string, content []byte) compiler.File {
			return testFile{u: u, name: name, content: content}
		}).AnyTimes()
	c.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, files []compiler.File, _ compiler.Listener) (map[uri.URI]compiler.Unit, error) {
			units := make(map[uri.URI]compiler.Unit, len(files))
			for _, file := range files {
				units[file.URI()] = panickingUnit{u: file.URI()}
			}
			return units, nil
		}).Times(5)

	f := newFixture(t, c, entity.ProjectConfig{})
	ctx := context.Background()
	file := buffer("/work/a.go", "package a")

	path, err := f.ctrl.PathToPoint(ctx, file, 0)
	assert.NoError(t, err)
	assert.Nil(t, path)

	scope, err := f.ctrl.ScopeForPoint(ctx, file, 0)
	assert.NoError(t, err)
	assert.Nil(t, scope)

	symbol, err := f.ctrl.DocSignatureAtPoint(ctx, file, 0)
	assert.NoError(t, err)
	assert.Nil(t, symbol)

	typ, err := f.ctrl.TypeAtPoint(ctx, file, 0)
	assert.NoError(t, err)
	assert.Nil(t, typ)

	pos, err := f.ctrl.LinkPos(ctx, "a.A", file)
	assert.NoError(t, err)
	assert.Nil(t, pos)

	assert.Equal(t, int64(5), f.counter("analyzer.compiler_failures"))
}

func writeArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(out)
	for name, contents := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, out.Close())
}

func TestArchiveEntries(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	archive := filepath.Join(f.root, "lib.zip")
	writeArchive(t, archive, map[string]string{
		"example.com/lib/lib.go": "package lib\n\nconst Answer = 42\n",
		"example.com/lib/README": "not source",
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ctrl.InternSource(ctx, entity.ArchiveEntry(archive, "example.com/lib/lib.go"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.ctrl.archives.size())
	assert.Equal(t, 1, f.ctrl.workingSet.len())

	_, err := f.ctrl.InternSource(ctx, entity.ArchiveEntry(archive, "example.com/lib/missing.go"))
	var notFound *ensimederrors.SourceNotFoundError
	assert.True(t, errors.As(err, &notFound))

	names, err := f.ctrl.archives.entries(archive, ".go")
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com/lib/lib.go"}, names)

	_, err = f.ctrl.InternSource(ctx, entity.ArchiveEntry(filepath.Join(f.root, "absent.zip"), "x.go"))
	assert.Error(t, err)
}

func TestQueries(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{ModulePath: "example.com/app"})
	ctx := context.Background()
	src := "package app\n\n// Answer is the answer.\nfunc Answer() int { return 42 }\n\nvar total = Answer()\n"
	file := buffer(filepath.Join(f.root, "app.go"), src)
	at := strings.Index(src, "Answer()\n") + 1

	info, err := f.ctrl.DocSignatureAtPoint(ctx, file, at)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Answer is the answer.", info.Doc)

	typ, err := f.ctrl.TypeAtPoint(ctx, file, strings.Index(src, "total"))
	require.NoError(t, err)
	require.NotNil(t, typ)
	assert.Equal(t, "int", typ.Name)
	require.NotNil(t, typ.Range)
	assert.Equal(t, uint32(5), typ.Range.Start.Line)

	path, err := f.ctrl.PathToPoint(ctx, file, at)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	scope, err := f.ctrl.ScopeForPoint(ctx, file, at)
	require.NoError(t, err)
	assert.NotEmpty(t, scope)

	pos, err := f.ctrl.LinkPos(ctx, "example.com/app.Answer", file)
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, 4, pos.Line)

	assert.Empty(t, f.publisher.kinds())

	_, err = f.ctrl.TypeAtPoint(ctx, entity.DiskFile(filepath.Join(f.root, "missing.go")), 0)
	assert.True(t, ensimederrors.IsUserError(err))
}

func TestReloadAll(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	kept := filepath.Join(f.root, "kept.go")
	deleted := filepath.Join(f.root, "deleted.go")
	writeFile(t, kept, "package a\n\nvar x int = 1\n")
	writeFile(t, deleted, "package a\n\nvar y int = 2\n")
	unsaved := buffer(filepath.Join(f.root, "unsaved.go"), "package a\n\nvar z int = 3\n")

	require.NoError(t, f.ctrl.TypecheckAll(ctx, []entity.SourceFileInfo{entity.DiskFile(kept), entity.DiskFile(deleted), unsaved}))

	writeFile(t, kept, "package a\n\nvar x int = \"changed on disk\"\n")
	require.NoError(t, os.Remove(deleted))

	require.NoError(t, f.ctrl.ReloadAll(ctx))
	kinds := f.publisher.kinds()
	assert.Equal(t, entity.EventFullTypeCheckComplete, kinds[len(kinds)-1])

	notes, _ := f.publisher.last(entity.EventNewNotes)
	require.Len(t, notes.Notes, 1)
	assert.Equal(t, kept, notes.Notes[0].File)
	assert.Equal(t, 2, f.ctrl.workingSet.len())
	_, ok := f.ctrl.workingSet.get(unsaved.URI())
	assert.True(t, ok)
}

func TestReloadAllPicksUpNewSources(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "main.go"), "package a\n\nvar total int = Helper()\n")

	f := newFixture(t, nil, entity.ProjectConfig{Root: root, SourceRoots: []string{src}})
	ctx := context.Background()
	require.NoError(t, f.ctrl.Bootstrap(ctx))
	notes, _ := f.publisher.last(entity.EventNewNotes)
	require.Len(t, notes.Notes, 1)

	writeFile(t, filepath.Join(src, "helper.go"), "package a\n\nfunc Helper() int { return 1 }\n")
	require.NoError(t, f.ctrl.ReloadAll(ctx))

	notes, _ = f.publisher.last(entity.EventNewNotes)
	assert.Empty(t, notes.Notes)
	assert.Equal(t, 2, f.ctrl.workingSet.len())
}

func TestRestart(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := compilermock.NewMockCompiler(ctrl)
	c.EXPECT().Reset()

	f := newFixture(t, c, entity.ProjectConfig{})
	require.NoError(t, f.ctrl.Restart(context.Background()))
	assert.Equal(t, []entity.EventKind{entity.EventCompilerRestarted}, f.publisher.kinds())
}

func TestRemoveSource(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	file := buffer(filepath.Join(f.root, "a.go"), "package a")

	_, err := f.ctrl.InternSource(ctx, file)
	require.NoError(t, err)
	f.ctrl.RemoveSource(ctx, file)
	assert.Equal(t, 0, f.ctrl.workingSet.len())

	// Removing twice is harmless.
	f.ctrl.RemoveSource(ctx, file)
}

func TestApplyEditsAndReverse(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	path := filepath.Join(f.root, "a.go")
	original := "package a\n\nvar x = 1\n\nfunc f() int { return x }\n"
	writeFile(t, path, original)
	_, err := f.ctrl.InternSource(ctx, entity.DiskFile(path))
	require.NoError(t, err)

	undo, err := f.ctrl.ApplyEdits(ctx, "rename x", []entity.FileEdit{
		{File: "a.go", From: 15, To: 16, Text: "count"},
		{File: "a.go", From: 44, To: 45, Text: "count"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), undo.ID)
	assert.Equal(t, "rename x", undo.Summary)
	assert.NotEmpty(t, undo.Edits)

	edited, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package a\n\nvar count = 1\n\nfunc f() int { return count }\n", string(edited))

	e, ok := f.ctrl.workingSet.get(uri.File(path))
	require.True(t, ok)
	assert.Equal(t, string(edited), string(e.handle.Content()))

	result, err := f.ctrl.ReverseEdits(ctx, undo)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, []string{path}, result.Files)

	restored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(restored))
}

func TestApplyEditsValidatesBeforeWriting(t *testing.T) {
	f := newFixture(t, nil, entity.ProjectConfig{})
	ctx := context.Background()
	first := filepath.Join(f.root, "first.go")
	writeFile(t, first, "package a\n")

	_, err := f.ctrl.ApplyEdits(ctx, "broken", []entity.FileEdit{
		{File: first, From: 0, To: 7, Text: "package"},
		{File: filepath.Join(f.root, "second.go"), From: 0, To: 1, Text: "x"},
	})
	assert.Error(t, err)
	assert.Empty(t, f.undo.undos)

	contents, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(contents))
}

func TestBootstrap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.go"), "package a\n\nfunc A() int { return 1 }\n")
	writeFile(t, filepath.Join(root, "src", ".hidden", "h.go"), "package hidden\n\nvar broken int = \"s\"\n")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "ignored")
	archive := filepath.Join(root, "deps.zip")
	writeArchive(t, archive, map[string]string{"example.com/dep/dep.go": "package dep\n\nconst D = 1\n"})

	f := newFixture(t, nil, entity.ProjectConfig{
		Root:        root,
		SourceRoots: []string{filepath.Join(root, "src"), filepath.Join(root, "missing")},
		Archives:    []string{archive, filepath.Join(root, "missing.zip")},
	})

	require.NoError(t, f.ctrl.Bootstrap(context.Background()))
	assert.Equal(t, []entity.EventKind{entity.EventClearAllNotes, entity.EventNewNotes, entity.EventAnalyzerReady}, f.publisher.kinds())
	assert.Equal(t, 2, f.ctrl.workingSet.len())

	notes, _ := f.publisher.last(entity.EventNewNotes)
	assert.Empty(t, notes.Notes)
}

func TestBootstrapSkipsVanishedSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsMock := fsmock.NewMockFS(ctrl)
	fsMock.EXPECT().WalkFiles("/work/src", ".go").Return([]string{"/work/src/a.go", "/work/src/gone.go"}, nil)
	fsMock.EXPECT().ReadFile("/work/src/a.go").Return([]byte("package a\n\nvar x int = \"s\"\n"), nil)
	fsMock.EXPECT().ReadFile("/work/src/gone.go").Return(nil, os.ErrNotExist)

	f := newFixture(t, nil, entity.ProjectConfig{Root: "/work", SourceRoots: []string{"/work/src"}})
	f.ctrl.fs = fsMock

	require.NoError(t, f.ctrl.Bootstrap(context.Background()))
	assert.Equal(t, []entity.EventKind{entity.EventClearAllNotes, entity.EventNewNotes, entity.EventAnalyzerReady}, f.publisher.kinds())
	assert.Equal(t, 1, f.ctrl.workingSet.len())

	notes, _ := f.publisher.last(entity.EventNewNotes)
	require.Len(t, notes.Notes, 1)
	assert.Equal(t, "/work/src/a.go", notes.Notes[0].File)
}
