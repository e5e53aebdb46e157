package compiler

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/tools/go/ast/astutil"
)

const _testSuffix = "_test"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Params define values to be used by New.
type Params struct {
	fx.In

	Project entity.ProjectConfig
	Logger  *zap.SugaredLogger
}

type goCompiler struct {
	root       string
	modulePath string
	logger     *zap.SugaredLogger

	mu       sync.Mutex
	imports  *token.FileSet
	fallback types.Importer
}

// New returns a Compiler backed by the Go front end in go/parser and go/types.
// Packages inside the working set are resolved from the working set; any other
// import is loaded from source and cached until Reset.
func New(p Params) Compiler {
	c := &goCompiler{
		root:       p.Project.Root,
		modulePath: p.Project.ModulePath,
		logger:     p.Logger.Named("compiler"),
	}
	c.Reset()
	return c
}

func (c *goCompiler) NewFile(u uri.URI, name string, content []byte) File {
	return &sourceFile{uri: u, name: name, content: content}
}

func (c *goCompiler) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Imported packages are cached with the FileSet they were parsed into.
	c.imports = token.NewFileSet()
	c.fallback = importer.ForCompiler(c.imports, "source", nil)
}

func (c *goCompiler) Run(ctx context.Context, files []File, listener Listener) (map[uri.URI]Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// token.FileSet only grows, so every pass parses into its own.
	p := &pass{
		fset:     token.NewFileSet(),
		imports:  c.imports,
		listener: listener,
		fallback: c.fallback,
		byPath:   make(map[string]*pkgGroup),
		byFile:   make(map[*token.File]*parsedFile),
		local:    make(map[*types.Package]struct{}),
	}

	var groups []*pkgGroup
	groupIndex := make(map[string]*pkgGroup)
	for _, f := range files {
		pf := p.parse(f)
		if pf.syntax.Name == nil || pf.syntax.Name.Name == "" {
			// Not Go source at all; the unit answers every query with nothing.
			p.files = append(p.files, pf)
			continue
		}

		dir := path.Dir(string(f.URI()))
		name := pf.syntax.Name.Name
		key := dir + "#" + name
		g, ok := groupIndex[key]
		if !ok {
			g = &pkgGroup{dir: dir, name: name, importPath: c.importPath(f, name)}
			groupIndex[key] = g
			groups = append(groups, g)
			if _, taken := p.byPath[g.importPath]; !taken && !strings.HasSuffix(name, _testSuffix) {
				p.byPath[g.importPath] = g
			}
		}
		pf.group = g
		g.files = append(g.files, pf)
		p.files = append(p.files, pf)
	}

	for _, g := range groups {
		if _, err := p.check(g); err != nil {
			c.logger.Debugw("package did not type-check cleanly", "package", g.importPath, "error", err)
		}
	}

	units := make(map[uri.URI]Unit, len(p.files))
	for _, pf := range p.files {
		units[pf.file.URI()] = &unit{pass: p, file: pf}
	}
	return units, nil
}

// importPath derives the import path of the package holding f.
// Disk files below the project root live under the module path; archive
// entries use their directory inside the archive.
func (c *goCompiler) importPath(f File, pkgName string) string {
	var importPath string
	u := string(f.URI())
	switch {
	case strings.HasPrefix(u, "zip:"):
		if i := strings.Index(u, "!/"); i >= 0 {
			importPath = path.Dir(u[i+2:])
		}
	case c.modulePath != "" && c.root != "":
		rel, err := filepath.Rel(c.root, filepath.Dir(f.URI().Filename()))
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			importPath = path.Join(c.modulePath, filepath.ToSlash(rel))
		}
	}
	if importPath == "" || importPath == "." {
		importPath = path.Dir(u)
	}
	if strings.HasSuffix(pkgName, _testSuffix) {
		importPath += _testSuffix
	}
	return importPath
}

type parsedFile struct {
	file    File
	syntax  *ast.File
	tokFile *token.File
	group   *pkgGroup
}

type pkgGroup struct {
	dir        string
	name       string
	importPath string
	files      []*parsedFile

	checking bool
	pkg      *types.Package
	info     *types.Info
	err      error
}

// pass holds the state of one Run. It is read-only once Run returns.
// Working-set positions live in fset; positions of imported packages live in imports.
type pass struct {
	fset     *token.FileSet
	imports  *token.FileSet
	listener Listener
	fallback types.Importer
	byPath   map[string]*pkgGroup
	byFile   map[*token.File]*parsedFile
	local    map[*types.Package]struct{}
	files    []*parsedFile
}

func (p *pass) parse(f File) *parsedFile {
	syntax, err := parser.ParseFile(p.fset, f.Name(), f.Content(), parser.ParseComments|parser.AllErrors)
	pf := &parsedFile{file: f, syntax: syntax}
	if syntax.FileStart.IsValid() {
		pf.tokFile = p.fset.File(syntax.FileStart)
		p.byFile[pf.tokFile] = pf
	}

	var list scanner.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			p.listener.Report(Diagnostic{
				File:    f.URI(),
				Name:    f.Name(),
				Message: e.Msg,
				Kind:    KindError,
				Point:   fromTokenPosition(e.Pos),
			})
		}
	} else if err != nil {
		p.listener.Report(Diagnostic{File: f.URI(), Name: f.Name(), Message: err.Error(), Kind: KindError})
	}
	return pf
}

func (p *pass) check(g *pkgGroup) (*types.Package, error) {
	if g.pkg != nil {
		return g.pkg, g.err
	}
	if g.checking {
		return nil, fmt.Errorf("import cycle through %q", g.importPath)
	}
	g.checking = true
	defer func() { g.checking = false }()

	syntax := make([]*ast.File, 0, len(g.files))
	for _, pf := range g.files {
		syntax = append(syntax, pf.syntax)
	}

	g.info = &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
	conf := types.Config{
		Importer:    passImporter{pass: p},
		FakeImportC: true,
		Error: func(err error) {
			var typeErr types.Error
			if errors.As(err, &typeErr) {
				p.reportTypeError(typeErr)
			}
		},
	}
	// Check keeps going after the first error and always returns a package.
	g.pkg, g.err = conf.Check(g.importPath, p.fset, syntax, g.info)
	if g.pkg != nil {
		p.local[g.pkg] = struct{}{}
	}
	return g.pkg, g.err
}

func (p *pass) reportTypeError(e types.Error) {
	pf := p.byFile[p.fset.File(e.Pos)]
	if pf == nil {
		return
	}
	kind := KindError
	if e.Soft {
		kind = KindMandatoryWarning
	}

	d := Diagnostic{
		File:    pf.file.URI(),
		Name:    pf.file.Name(),
		Message: e.Msg,
		Kind:    kind,
		Point:   fromTokenPosition(p.fset.Position(e.Pos)),
	}
	if nodes, _ := astutil.PathEnclosingInterval(pf.syntax, e.Pos, e.Pos); len(nodes) > 0 && nodes[0].Pos() == e.Pos {
		d.Start = fromTokenPosition(p.fset.Position(nodes[0].Pos()))
		d.End = fromTokenPosition(p.fset.Position(nodes[0].End()))
	}
	p.listener.Report(d)
}

// passImporter resolves working-set packages first and everything else from source.
type passImporter struct {
	pass *pass
}

func (i passImporter) Import(importPath string) (*types.Package, error) {
	return i.ImportFrom(importPath, "", 0)
}

func (i passImporter) ImportFrom(importPath, dir string, mode types.ImportMode) (*types.Package, error) {
	if g, ok := i.pass.byPath[importPath]; ok {
		pkg, err := i.pass.check(g)
		if pkg == nil {
			return nil, err
		}
		return pkg, nil
	}
	if from, ok := i.pass.fallback.(types.ImporterFrom); ok {
		return from.ImportFrom(importPath, dir, mode)
	}
	return i.pass.fallback.Import(importPath)
}

// packages returns every package the pass type-checked, sorted by import path.
func (p *pass) packages() []*pkgGroup {
	groups := make([]*pkgGroup, 0, len(p.byPath))
	for _, g := range p.byPath {
		if g.pkg != nil {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].importPath < groups[j].importPath })
	return groups
}

func fromTokenPosition(pos token.Position) Position {
	if !pos.IsValid() {
		return Position{}
	}
	return Position{Valid: true, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}
