package compiler

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"go.lsp.dev/uri"
	"golang.org/x/tools/go/ast/astutil"
)

type unit struct {
	pass *pass
	file *parsedFile
}

func (u *unit) URI() uri.URI { return u.file.file.URI() }

func (u *unit) PathToPoint(offset int) ([]entity.PathElement, error) {
	nodes, err := u.enclosing(offset)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}

	elements := make([]entity.PathElement, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		elements = append(elements, entity.PathElement{
			Kind:  strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast."),
			Start: u.offsetOf(n.Pos()),
			End:   u.offsetOf(n.End()),
		})
	}
	return elements, nil
}

func (u *unit) ScopeForPoint(offset int) ([]entity.ScopeEntry, error) {
	pos, err := u.pos(offset)
	if err != nil || !u.typed() {
		return nil, err
	}

	g := u.file.group
	scope := g.pkg.Scope().Innermost(pos)
	if scope == nil {
		scope = g.pkg.Scope()
	}

	qualifier := types.RelativeTo(g.pkg)
	seen := make(map[string]struct{})
	var entries []entity.ScopeEntry
	for s := scope; s != nil && s != types.Universe; s = s.Parent() {
		local := s != g.pkg.Scope() && s.Parent() != types.Universe
		for _, name := range s.Names() {
			obj := s.Lookup(name)
			if _, shadowed := seen[name]; shadowed {
				continue
			}
			// Locals are only visible after their declaration.
			if local && obj.Pos() >= pos {
				continue
			}
			seen[name] = struct{}{}
			entries = append(entries, entity.ScopeEntry{
				Name: name,
				Kind: objectKind(obj),
				Type: typeString(obj, qualifier),
			})
		}
	}
	return entries, nil
}

func (u *unit) DocSignatureAtPoint(offset int) (*entity.SymbolInfo, error) {
	ident, err := u.identAt(offset)
	if err != nil || ident == nil || !u.typed() {
		return nil, err
	}
	obj := u.file.group.info.ObjectOf(ident)
	if obj == nil {
		return nil, nil
	}

	qualifier := types.RelativeTo(u.file.group.pkg)
	return &entity.SymbolInfo{
		Name:      obj.Name(),
		FullName:  fullName(obj),
		Kind:      objectKind(obj),
		Type:      typeString(obj, qualifier),
		Signature: types.ObjectString(obj, qualifier),
		Doc:       u.pass.docFor(obj),
		DeclPos:   u.pass.position(obj),
	}, nil
}

func (u *unit) TypeAtPoint(offset int) (*entity.TypeInfo, error) {
	nodes, err := u.enclosing(offset)
	if err != nil || !u.typed() {
		return nil, err
	}

	info := u.file.group.info
	for _, n := range nodes {
		expr, ok := n.(ast.Expr)
		if !ok {
			continue
		}
		var t types.Type
		if tv, ok := info.Types[expr]; ok && tv.Type != nil {
			t = tv.Type
		} else if ident, ok := expr.(*ast.Ident); ok {
			if obj := info.ObjectOf(ident); obj != nil {
				t = obj.Type()
			}
		}
		if t == nil || t == types.Typ[types.Invalid] {
			continue
		}
		return &entity.TypeInfo{
			Name:     types.TypeString(t, func(*types.Package) string { return "" }),
			FullName: types.TypeString(t, nil),
			Start:    u.offsetOf(expr.Pos()),
			End:      u.offsetOf(expr.End()),
		}, nil
	}
	return nil, nil
}

// LinkPos accepts "path/to/pkg.Name", "path/to/pkg.Type.Member", or a name
// relative to the unit's own package.
func (u *unit) LinkPos(fqn string) (*entity.OffsetPosition, error) {
	if fqn == "" {
		return nil, fmt.Errorf("empty name")
	}
	if !u.typed() {
		return nil, nil
	}

	pkg, rest := u.resolvePackage(fqn)
	if pkg == nil {
		return nil, nil
	}
	name, member, _ := strings.Cut(rest, ".")
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, nil
	}
	if member != "" {
		found, _, _ := types.LookupFieldOrMethod(obj.Type(), true, pkg, member)
		if found == nil {
			return nil, nil
		}
		obj = found
	}
	return u.pass.position(obj), nil
}

func (u *unit) resolvePackage(fqn string) (*types.Package, string) {
	own := u.file.group.pkg
	slash := strings.LastIndex(fqn, "/")
	dot := strings.Index(fqn[slash+1:], ".")
	if dot < 0 {
		return own, fqn
	}
	pkgPath, rest := fqn[:slash+1+dot], fqn[slash+2+dot:]

	if g, ok := u.pass.byPath[pkgPath]; ok && g.pkg != nil {
		return g.pkg, rest
	}
	for _, imported := range own.Imports() {
		if imported.Path() == pkgPath {
			return imported, rest
		}
	}
	if slash < 0 && own.Scope().Lookup(pkgPath) != nil {
		// "Type.Member" inside the unit's own package.
		return own, fqn
	}
	return nil, ""
}

func (u *unit) typed() bool {
	return u.file.group != nil && u.file.group.pkg != nil && u.file.group.info != nil
}

func (u *unit) pos(offset int) (token.Pos, error) {
	tf := u.file.tokFile
	if tf == nil {
		return token.NoPos, nil
	}
	if offset < 0 || offset > tf.Size() {
		return token.NoPos, fmt.Errorf("offset %d out of range for %s (size %d)", offset, u.file.file.Name(), tf.Size())
	}
	return tf.Pos(offset), nil
}

func (u *unit) enclosing(offset int) ([]ast.Node, error) {
	pos, err := u.pos(offset)
	if err != nil || !pos.IsValid() {
		return nil, err
	}
	nodes, _ := astutil.PathEnclosingInterval(u.file.syntax, pos, pos)
	return nodes, nil
}

// identAt finds the identifier under or directly before the cursor.
func (u *unit) identAt(offset int) (*ast.Ident, error) {
	for _, o := range []int{offset, offset - 1} {
		if o < 0 {
			continue
		}
		nodes, err := u.enclosing(o)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			if ident, ok := nodes[0].(*ast.Ident); ok {
				return ident, nil
			}
		}
	}
	return nil, nil
}

func (u *unit) offsetOf(pos token.Pos) int {
	return u.pass.fset.PositionFor(pos, false).Offset
}

func (p *pass) position(obj types.Object) *entity.OffsetPosition {
	fset := p.fsetFor(obj)
	if fset == nil || !obj.Pos().IsValid() {
		return nil
	}
	position := fset.PositionFor(obj.Pos(), false)
	return &entity.OffsetPosition{
		File:   position.Filename,
		Offset: position.Offset,
		Line:   position.Line,
		Column: position.Column,
	}
}

// fsetFor returns the FileSet holding the declaration of obj, or nil for universe objects.
func (p *pass) fsetFor(obj types.Object) *token.FileSet {
	if obj.Pkg() == nil {
		return nil
	}
	if _, ok := p.local[obj.Pkg()]; ok {
		return p.fset
	}
	return p.imports
}

// docFor returns the doc comment of obj's declaration when it is in the working set.
func (p *pass) docFor(obj types.Object) string {
	if p.fsetFor(obj) != p.fset {
		return ""
	}
	pf := p.byFile[p.fset.File(obj.Pos())]
	if pf == nil {
		return ""
	}
	nodes, _ := astutil.PathEnclosingInterval(pf.syntax, obj.Pos(), obj.Pos())
	for _, n := range nodes {
		var doc *ast.CommentGroup
		switch decl := n.(type) {
		case *ast.FuncDecl:
			doc = decl.Doc
		case *ast.Field:
			doc = decl.Doc
		case *ast.TypeSpec:
			doc = decl.Doc
		case *ast.ValueSpec:
			doc = decl.Doc
		case *ast.GenDecl:
			doc = decl.Doc
		}
		if doc != nil {
			return strings.TrimSpace(doc.Text())
		}
	}
	return ""
}

func objectKind(obj types.Object) string {
	switch o := obj.(type) {
	case *types.Var:
		if o.IsField() {
			return "field"
		}
		return "var"
	case *types.Func:
		if sig, ok := o.Type().(*types.Signature); ok && sig.Recv() != nil {
			return "method"
		}
		return "func"
	case *types.TypeName:
		return "type"
	case *types.Const:
		return "const"
	case *types.PkgName:
		return "package"
	case *types.Label:
		return "label"
	case *types.Builtin:
		return "builtin"
	case *types.Nil:
		return "nil"
	}
	return "unknown"
}

func typeString(obj types.Object, qualifier types.Qualifier) string {
	if _, ok := obj.(*types.PkgName); ok {
		return ""
	}
	if obj.Type() == nil {
		return ""
	}
	return types.TypeString(obj.Type(), qualifier)
}

func fullName(obj types.Object) string {
	switch o := obj.(type) {
	case *types.PkgName:
		return o.Imported().Path()
	case *types.Func:
		return o.FullName()
	}
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}
