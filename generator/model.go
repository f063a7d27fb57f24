package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vitalvas/routedoc/docblock"
	"github.com/vitalvas/routedoc/swagger"
)

// ModelDeclaration is a data model found by a ModelRegistry.
type ModelDeclaration struct {
	Name    string
	Comment string
}

// ModelRegistry looks up model declarations by fully qualified name: the
// configured model namespace followed by the resource name.
type ModelRegistry interface {
	Lookup(name string) (ModelDeclaration, bool)
}

// MapRegistry is a ModelRegistry backed by a map of name to doc comment.
type MapRegistry map[string]string

// Lookup returns the declaration registered under name.
func (m MapRegistry) Lookup(name string) (ModelDeclaration, bool) {
	comment, ok := m[name]
	if !ok {
		return ModelDeclaration{}, false
	}
	return ModelDeclaration{Name: name, Comment: comment}, true
}

// ModelResolver turns model declarations into definition schemas.
type ModelResolver struct {
	Registry  ModelRegistry
	Namespace string
	Parser    CommentParser

	// Lenient skips properties with unmapped types instead of failing.
	Lenient bool
	Logger  logrus.FieldLogger
}

// Resolve returns the definition schema of a resource. The boolean is
// false when no model is declared for it.
//
// Properties come from "@property <type> <name>" tags. A property whose
// type has no Swagger equivalent yields *UnmappedTypeError unless the
// resolver is lenient; a comment the parser rejects yields
// *ModelCommentError.
func (r *ModelResolver) Resolve(resource string) (*swagger.Schema, bool, error) {
	if r.Registry == nil || resource == "" {
		return nil, false, nil
	}

	decl, ok := r.Registry.Lookup(r.Namespace + resource)
	if !ok {
		return nil, false, nil
	}

	schema := &swagger.Schema{
		Title:       resource,
		Description: resource + " model",
	}
	if strings.TrimSpace(decl.Comment) == "" {
		return schema, true, nil
	}

	parser := r.Parser
	if parser == nil {
		parser = docblock.Parser{}
	}
	comment, err := parser.Parse(decl.Comment)
	if err != nil {
		return nil, false, &ModelCommentError{Model: resource, Err: err}
	}

	schema.Properties = swagger.NewOrderedMap[*swagger.Schema]()
	for _, tag := range comment.TagsByName("property") {
		typeExpr, name, err := splitPropertyTag(tag.Body)
		if err != nil {
			return nil, false, &ModelCommentError{Model: resource, Err: err}
		}

		typ, ok := mapPropertyType(typeExpr)
		if !ok {
			unmapped := &UnmappedTypeError{Model: resource, Field: name, Type: typeExpr}
			if !r.Lenient {
				return nil, false, unmapped
			}
			if r.Logger != nil {
				r.Logger.WithFields(logrus.Fields{
					"model": resource,
					"field": name,
				}).Warnf("skipping property: %v", unmapped)
			}
			continue
		}
		schema.Properties.Set(name, &swagger.Schema{Type: typ})
	}
	return schema, true, nil
}

// splitPropertyTag reads "<type> $name [description]".
func splitPropertyTag(body string) (string, string, error) {
	fields := strings.Fields(body)
	if len(fields) < 2 {
		return "", "", fmt.Errorf("malformed @property %q: want \"<type> <name>\"", body)
	}
	name := strings.TrimPrefix(fields[1], "$")
	if name == "" {
		return "", "", fmt.Errorf("malformed @property %q: empty name", body)
	}
	return fields[0], name, nil
}

// propertyTypes maps primitive type keywords.
var propertyTypes = map[string]string{
	"array":       "array",
	"list":        "array",
	"bool":        "boolean",
	"boolean":     "boolean",
	"true":        "boolean",
	"false":       "boolean",
	"callable":    "object",
	"func":        "object",
	"closure":     "object",
	"float":       "number",
	"double":      "number",
	"float32":     "number",
	"float64":     "number",
	"int":         "number",
	"integer":     "number",
	"int8":        "number",
	"int16":       "number",
	"int32":       "number",
	"int64":       "number",
	"uint":        "number",
	"uint8":       "number",
	"uint16":      "number",
	"uint32":      "number",
	"uint64":      "number",
	"byte":        "number",
	"rune":        "number",
	"mixed":       "object",
	"any":         "object",
	"interface{}": "object",
	"null":        "object",
	"nil":         "object",
	"string":      "string",
	"object":      "object",
}

// unmappedTypes are keywords that look like class names but have no
// Swagger equivalent.
var unmappedTypes = map[string]bool{
	"resource": true,
	"void":     true,
	"iterable": true,
	"never":    true,
	"scalar":   true,
	"numeric":  true,
	"self":     true,
	"static":   true,
	"$this":    true,
}

var classNamePattern = regexp.MustCompile(`^\\?[A-Za-z_][A-Za-z0-9_]*(?:[\\./][A-Za-z_][A-Za-z0-9_]*)*$`)

// mapPropertyType maps a declared property type to a Swagger type.
func mapPropertyType(expr string) (string, bool) {
	expr = strings.TrimSpace(firstUnionMember(expr))
	expr = strings.TrimPrefix(expr, "?")
	if expr == "" {
		return "", false
	}

	lower := strings.ToLower(expr)
	if typ, ok := propertyTypes[lower]; ok {
		return typ, true
	}
	if unmappedTypes[lower] {
		return "", false
	}

	switch {
	case strings.HasSuffix(expr, "[]"), strings.HasPrefix(expr, "[]"):
		return "array", true
	case strings.HasPrefix(lower, "array<"), strings.HasPrefix(lower, "array{"), strings.HasPrefix(lower, "list<"):
		return "array", true
	case strings.HasPrefix(expr, "map["):
		return "object", true
	case strings.HasPrefix(lower, "func("):
		return "object", true
	case strings.HasPrefix(expr, "*"):
		if typ, ok := mapPropertyType(expr[1:]); ok {
			return typ, true
		}
		return "", false
	}

	// Name<T> is a typed collection.
	if i := strings.IndexByte(expr, '<'); i > 0 && strings.HasSuffix(expr, ">") && classNamePattern.MatchString(expr[:i]) {
		return "array", true
	}
	if classNamePattern.MatchString(expr) {
		return "object", true
	}
	return "", false
}

// firstUnionMember returns the first member of "a|b", ignoring bars nested
// in generic brackets.
func firstUnionMember(expr string) string {
	depth := 0
	for i, r := range expr {
		switch r {
		case '<', '{', '[', '(':
			depth++
		case '>', '}', ']', ')':
			depth--
		case '|':
			if depth == 0 {
				return expr[:i]
			}
		}
	}
	return expr
}
