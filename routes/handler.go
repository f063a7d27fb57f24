package routes

import (
	"net/http"
	"reflect"
	"runtime"
	"strings"
)

var httpHandlerType = reflect.TypeOf((*http.Handler)(nil)).Elem()

// HandlerName returns the fully qualified name of a handler, in the form
// go/ast based indexes use for functions and methods:
//
//	github.com/acme/app/users.Show              function
//	github.com/acme/app/users.(*Controller).Show method value
//	github.com/acme/app/users.(*Controller).ServeHTTP
//
// Strings are returned unchanged so manifests can name handlers directly.
// Closures get their compiler-generated names (users.Routes.func1).
func HandlerName(handler any) string {
	switch h := handler.(type) {
	case nil:
		return ""
	case string:
		return h
	}

	v := reflect.ValueOf(handler)
	t := v.Type()

	if t.Kind() == reflect.Func {
		fn := runtime.FuncForPC(v.Pointer())
		if fn == nil {
			return ""
		}
		return strings.TrimSuffix(fn.Name(), "-fm")
	}

	name := typeName(t)
	if t.Implements(httpHandlerType) {
		return name + ".ServeHTTP"
	}
	return name
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		elem := t.Elem()
		if elem.Name() == "" {
			return t.String()
		}
		return elem.PkgPath() + ".(*" + elem.Name() + ")"
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
