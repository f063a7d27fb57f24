// Package source indexes the doc comments of Go packages so handlers and
// models can be documented from the code that declares them.
//
// Types are indexed by their qualified name (github.com/acme/app/models.User),
// functions and methods by the name routes.HandlerName reports for them:
//
//	github.com/acme/app/users.Show
//	github.com/acme/app/users.(*Controller).Show
//	github.com/acme/app/users.Controller.Show
//
// An Index satisfies generator.ModelRegistry and generator.CommentSource.
package source

import (
	"context"
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"github.com/juju/errors"
	"golang.org/x/tools/go/packages"

	"github.com/vitalvas/routedoc/generator"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax

// Index holds doc comments by qualified name. It is safe for concurrent
// reads once built; Add must not run concurrently with lookups.
type Index struct {
	types map[string]string
	funcs map[string]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		types: make(map[string]string),
		funcs: make(map[string]string),
	}
}

// Load parses the packages matching patterns, relative to dir, and indexes
// their doc comments. Without patterns the package in dir is loaded.
func Load(ctx context.Context, dir string, patterns ...string) (*Index, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Fset:    token.NewFileSet(),
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Annotatef(err, "load packages %s", strings.Join(patterns, " "))
	}
	if len(pkgs) == 0 {
		return nil, errors.NotFoundf("packages matching %s", strings.Join(patterns, " "))
	}

	idx := NewIndex()
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Annotatef(pkg.Errors[0], "load package %s", pkg.PkgPath)
		}
		idx.Add(pkg.PkgPath, pkg.Syntax...)
	}
	return idx, nil
}

// Add indexes the declarations of files belonging to the package pkgPath.
// Files must have been parsed with comments.
func (idx *Index) Add(pkgPath string, files ...*ast.File) {
	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				idx.addTypes(pkgPath, d)
			case *ast.FuncDecl:
				idx.addFunc(pkgPath, d)
			}
		}
	}
}

func (idx *Index) addTypes(pkgPath string, d *ast.GenDecl) {
	if d.Tok != token.TYPE {
		return
	}
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		group := ts.Doc
		if group == nil && len(d.Specs) == 1 {
			group = d.Doc
		}
		idx.types[pkgPath+"."+ts.Name.Name] = group.Text()
	}
}

func (idx *Index) addFunc(pkgPath string, d *ast.FuncDecl) {
	text := d.Doc.Text()

	if d.Recv == nil || len(d.Recv.List) == 0 {
		idx.funcs[pkgPath+"."+d.Name.Name] = text
		return
	}

	recv, pointer := receiverName(d.Recv.List[0].Type)
	if recv == "" {
		return
	}

	ptrKey := pkgPath + ".(*" + recv + ")." + d.Name.Name
	if pointer {
		idx.funcs[ptrKey] = text
		return
	}

	idx.funcs[pkgPath+"."+recv+"."+d.Name.Name] = text
	// Value methods are in the method set of the pointer too.
	if _, ok := idx.funcs[ptrKey]; !ok {
		idx.funcs[ptrKey] = text
	}
}

// receiverName returns the base type name of a receiver expression and
// whether it is a pointer receiver.
func receiverName(expr ast.Expr) (string, bool) {
	pointer := false
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}

	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, pointer
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name, pointer
		}
	case *ast.IndexListExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name, pointer
		}
	}
	return "", pointer
}

// Lookup returns the model declared under the qualified type name.
func (idx *Index) Lookup(name string) (generator.ModelDeclaration, bool) {
	text, ok := idx.types[name]
	if !ok {
		return generator.ModelDeclaration{}, false
	}
	return generator.ModelDeclaration{Name: name, Comment: text}, true
}

// Comment returns the doc comment of a function or method.
func (idx *Index) Comment(handlerName string) (string, bool) {
	text, ok := idx.funcs[handlerName]
	return text, ok
}

// Types returns the indexed type names, sorted.
func (idx *Index) Types() []string {
	return sortedKeys(idx.types)
}

// Funcs returns the indexed function and method names, sorted.
func (idx *Index) Funcs() []string {
	return sortedKeys(idx.funcs)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	_ generator.ModelRegistry = (*Index)(nil)
	_ generator.CommentSource = (*Index)(nil)
)
