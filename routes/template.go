package routes

import (
	"fmt"
	"strings"
)

// Variable is a placeholder of a route template: {name}, {name?} or
// {name:pattern}.
type Variable struct {
	Name     string
	Pattern  string
	Optional bool
}

// Format returns the Swagger format implied by the variable's pattern
// macro, or "".
func (v Variable) Format() string {
	if m, ok := macros[v.Pattern]; ok {
		return m.format
	}
	return ""
}

// ParseTemplate returns the placeholders of a route template in
// declaration order.
func ParseTemplate(tpl string) ([]Variable, error) {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return nil, err
	}

	vars := make([]Variable, 0, len(idxs)/2)
	for i := 0; i < len(idxs); i += 2 {
		vars = append(vars, parseVariable(tpl[idxs[i]+1:idxs[i+1]-1]))
	}
	return vars, nil
}

// StripTemplate removes optional markers and patterns from every
// placeholder: "/users/{id:uuid}/{tab?}" becomes "/users/{id}/{tab}". A
// template with unbalanced braces only loses its optional markers.
func StripTemplate(tpl string) string {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return strings.ReplaceAll(tpl, "?", "")
	}

	var b strings.Builder
	b.Grow(len(tpl))
	end := 0
	for i := 0; i < len(idxs); i += 2 {
		b.WriteString(tpl[end:idxs[i]])
		v := parseVariable(tpl[idxs[i]+1 : idxs[i+1]-1])
		b.WriteString("{" + v.Name + "}")
		end = idxs[i+1]
	}
	b.WriteString(tpl[end:])
	return b.String()
}

func parseVariable(inner string) Variable {
	name, pattern, _ := strings.Cut(inner, ":")
	name = strings.TrimSpace(name)
	v := Variable{Name: name, Pattern: pattern}
	if strings.HasSuffix(name, "?") {
		v.Name = strings.TrimSuffix(name, "?")
		v.Optional = true
	}
	return v
}

// braceIndices returns the first level curly brace indices from a string.
// It returns an error in case of unbalanced braces.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("routes: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("routes: unbalanced braces in %q", s)
	}
	return idxs, nil
}
