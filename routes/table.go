package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vitalvas/routedoc/rules"
)

// SkipRoute is used as a return value from WalkFuncs to indicate that the
// route should be left out. It is not returned as an error by any function.
var SkipRoute = errors.New("skip this route")

// WalkFunc is the type of the function called for each route visited by
// Walk.
type WalkFunc func(route *Route) error

// Descriptor is the read-only view of a route consumed by the generator.
type Descriptor struct {
	URI         string
	Methods     []string
	Handler     any
	HandlerName string
	Name        string
	Comment     string
	Rules       rules.Source
}

// Table is an ordered route table.
//
//	t := routes.New()
//	t.Get("/users/{user}", users.Show).Name("users.show")
//	t.Post("/users", users.Store).Rules(rules.FromStruct(CreateUser{}))
//
//	api := t.Group("/api/v1")
//	api.Get("/status", status.Handler)
type Table struct {
	prefix string
	root   *Table
	routes []*Route
}

// New returns an empty route table.
func New() *Table {
	t := &Table{}
	t.root = t
	return t
}

// Group returns a view of the table that prefixes every route it registers.
// Routes are stored in the parent table in registration order.
func (t *Table) Group(prefix string) *Table {
	return &Table{
		prefix: joinPath(t.prefix, prefix),
		root:   t.root,
	}
}

// Handle registers a route for path. handler is usually an http.Handler or
// a function, but any value is accepted; its name is derived with
// HandlerName.
func (t *Table) Handle(path string, handler any) *Route {
	r := &Route{
		path:        joinPath(t.prefix, path),
		handler:     handler,
		handlerName: HandlerName(handler),
	}
	t.root.routes = append(t.root.routes, r)
	return r
}

// HandleFunc registers a handler function for path.
func (t *Table) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *Route {
	return t.Handle(path, f)
}

// Get registers a GET route. HEAD is added implicitly.
func (t *Table) Get(path string, handler any) *Route {
	return t.Handle(path, handler).Methods(http.MethodGet, http.MethodHead)
}

// Post registers a POST route.
func (t *Table) Post(path string, handler any) *Route {
	return t.Handle(path, handler).Methods(http.MethodPost)
}

// Put registers a PUT route.
func (t *Table) Put(path string, handler any) *Route {
	return t.Handle(path, handler).Methods(http.MethodPut)
}

// Patch registers a PATCH route.
func (t *Table) Patch(path string, handler any) *Route {
	return t.Handle(path, handler).Methods(http.MethodPatch)
}

// Delete registers a DELETE route.
func (t *Table) Delete(path string, handler any) *Route {
	return t.Handle(path, handler).Methods(http.MethodDelete)
}

// Any registers a route for every documented method.
func (t *Table) Any(path string, handler any) *Route {
	return t.Handle(path, handler).Methods(
		http.MethodGet, http.MethodHead, http.MethodPost,
		http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	)
}

// Walk calls walkFn for each route in registration order. Returning
// SkipRoute moves on to the next route; any other error stops the walk.
func (t *Table) Walk(walkFn WalkFunc) error {
	for _, r := range t.root.routes {
		if t.prefix != "" && r.path != t.prefix && !strings.HasPrefix(r.path, strings.TrimSuffix(t.prefix, "/")+"/") {
			continue
		}
		err := walkFn(r)
		if errors.Is(err, SkipRoute) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Descriptors returns a snapshot of the routes in registration order.
func (t *Table) Descriptors() []Descriptor {
	var out []Descriptor
	_ = t.Walk(func(r *Route) error {
		out = append(out, r.Descriptor())
		return nil
	})
	return out
}

// Route is a single entry of a Table. Its setters return the route so
// calls can be chained.
type Route struct {
	path        string
	methods     []string
	handler     any
	handlerName string
	name        string
	comment     string
	rules       rules.Source
}

// Methods adds HTTP methods to the route. Methods are upper-cased and
// duplicates are dropped.
func (r *Route) Methods(methods ...string) *Route {
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || containsString(r.methods, m) {
			continue
		}
		r.methods = append(r.methods, m)
	}
	return r
}

// Name sets the route name.
func (r *Route) Name(name string) *Route {
	r.name = name
	return r
}

// Doc attaches a doc comment, taking precedence over the handler's
// comment in source.
func (r *Route) Doc(comment string) *Route {
	r.comment = comment
	return r
}

// Rules attaches the validation rules of the route's input.
func (r *Route) Rules(src rules.Source) *Route {
	r.rules = src
	return r
}

// Handler overrides the name derived from the route's handler.
func (r *Route) Handler(name string) *Route {
	r.handlerName = name
	return r
}

// GetName returns the route name, or "".
func (r *Route) GetName() string {
	return r.name
}

// GetPathTemplate returns the template the route was registered with.
func (r *Route) GetPathTemplate() string {
	return r.path
}

// GetMethods returns the route's methods.
func (r *Route) GetMethods() []string {
	return append([]string(nil), r.methods...)
}

// GetHandlerName returns the handler name used to look up comments and
// ignore lists.
func (r *Route) GetHandlerName() string {
	return r.handlerName
}

// Descriptor returns a snapshot of the route.
func (r *Route) Descriptor() Descriptor {
	return Descriptor{
		URI:         r.path,
		Methods:     r.GetMethods(),
		Handler:     r.handler,
		HandlerName: r.handlerName,
		Name:        r.name,
		Comment:     r.comment,
		Rules:       r.rules,
	}
}

func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
