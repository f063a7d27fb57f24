package generator

import (
	"regexp"

	"github.com/vitalvas/routedoc/routes"
	"github.com/vitalvas/routedoc/rules"
	"github.com/vitalvas/routedoc/swagger"
)

// ParameterGenerator produces the parameters of one operation. It has no
// side effects and may return nil.
type ParameterGenerator interface {
	Parameters() []*swagger.Parameter
}

// PathParameterGenerator infers path parameters from a route template that
// still carries its optional markers and patterns.
type PathParameterGenerator struct {
	URI string
}

// placeholderPattern is used when a template has unbalanced braces.
var placeholderPattern = regexp.MustCompile(`\{(\w+)(\?)?\}`)

// Parameters returns one string parameter per distinct placeholder, in
// declaration order. Placeholders marked optional are not required.
func (g PathParameterGenerator) Parameters() []*swagger.Parameter {
	vars, err := routes.ParseTemplate(g.URI)
	if err != nil {
		vars = nil
		for _, m := range placeholderPattern.FindAllStringSubmatch(g.URI, -1) {
			vars = append(vars, routes.Variable{Name: m[1], Optional: m[2] != ""})
		}
	}

	var params []*swagger.Parameter
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if v.Name == "" || seen[v.Name] {
			continue
		}
		seen[v.Name] = true

		p := &swagger.Parameter{
			In:       swagger.InPath,
			Name:     v.Name,
			Type:     "string",
			Format:   v.Format(),
			Required: !v.Optional,
		}
		if p.Format == "" {
			p.Pattern = v.Regexp()
		}
		params = append(params, p)
	}
	return params
}

// QueryParameterGenerator turns a rule set into query parameters, one per
// top-level field.
type QueryParameterGenerator struct {
	Rules rules.Set
}

// Parameters returns the query parameters with constraints inline.
func (g QueryParameterGenerator) Parameters() []*swagger.Parameter {
	tree := buildFieldTree(g.Rules)

	params := make([]*swagger.Parameter, 0, len(tree.names))
	for _, name := range tree.names {
		s := tree.fields[name]
		params = append(params, &swagger.Parameter{
			In:        swagger.InQuery,
			Name:      name,
			Type:      s.Type,
			Format:    s.Format,
			Required:  tree.required[name],
			Items:     s.Items,
			Enum:      s.Enum,
			Minimum:   s.Minimum,
			Maximum:   s.Maximum,
			MinLength: s.MinLength,
			MaxLength: s.MaxLength,
			MinItems:  s.MinItems,
			MaxItems:  s.MaxItems,
		})
	}
	return params
}

// BodyParameterGenerator turns a rule set into body parameters.
type BodyParameterGenerator struct {
	Rules rules.Set

	// Single wraps every field into one "body" parameter with an object
	// schema instead of one parameter per top-level field.
	Single bool
}

// Parameters returns the body parameters. Types and constraints live in
// each parameter's schema.
func (g BodyParameterGenerator) Parameters() []*swagger.Parameter {
	tree := buildFieldTree(g.Rules)
	if len(tree.names) == 0 {
		return nil
	}

	if g.Single {
		schema := &swagger.Schema{Type: "object", Properties: swagger.NewOrderedMap[*swagger.Schema]()}
		for _, name := range tree.names {
			schema.Properties.Set(name, tree.fields[name])
			if tree.required[name] {
				schema.Required = append(schema.Required, name)
			}
		}
		return []*swagger.Parameter{{
			In:       swagger.InBody,
			Name:     "body",
			Required: len(schema.Required) > 0,
			Schema:   schema,
		}}
	}

	params := make([]*swagger.Parameter, 0, len(tree.names))
	for _, name := range tree.names {
		params = append(params, &swagger.Parameter{
			In:       swagger.InBody,
			Name:     name,
			Required: tree.required[name],
			Schema:   tree.fields[name],
		})
	}
	return params
}

// appendParameters appends params to dst, dropping any whose name and
// location are already present.
func appendParameters(dst []*swagger.Parameter, params ...*swagger.Parameter) []*swagger.Parameter {
	for _, p := range params {
		dup := false
		for _, existing := range dst {
			if existing.Name == p.Name && existing.In == p.In {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, p)
		}
	}
	return dst
}
