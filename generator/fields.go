package generator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vitalvas/routedoc/rules"
	"github.com/vitalvas/routedoc/swagger"
)

// typeTokens maps rule tokens that imply a data type.
var typeTokens = map[string]string{
	"integer":     "integer",
	"int":         "integer",
	"numeric":     "number",
	"number":      "number",
	"float":       "number",
	"decimal":     "number",
	"boolean":     "boolean",
	"bool":        "boolean",
	"string":      "string",
	"email":       "string",
	"url":         "string",
	"uri":         "string",
	"uuid":        "string",
	"uuid4":       "string",
	"date":        "string",
	"date_format": "string",
	"datetime":    "string",
	"ip":          "string",
	"ipv4":        "string",
	"ipv6":        "string",
	"hostname":    "string",
	"alpha":       "string",
	"alpha_num":   "string",
	"alpha_dash":  "string",
	"alphanum":    "string",
	"array":       "array",
	"slice":       "array",
	"list":        "array",
	"object":      "object",
	"map":         "object",
}

// stringFormats maps rule tokens to the format of string values.
var stringFormats = map[string]string{
	"email":       "email",
	"url":         "uri",
	"uri":         "uri",
	"uuid":        "uuid",
	"uuid4":       "uuid",
	"date":        "date",
	"date_format": "date-time",
	"datetime":    "date-time",
	"ip":          "ipv4",
	"ipv4":        "ipv4",
	"ipv6":        "ipv6",
	"hostname":    "hostname",
}

// tokenType returns the type of the first type-indicating token, or "".
func tokenType(tokens []rules.Token) string {
	for _, tok := range tokens {
		if typ, ok := typeTokens[tok.Name]; ok {
			return typ
		}
	}
	return ""
}

// fieldTree folds a rule set into one schema per top-level field.
type fieldTree struct {
	names    []string
	fields   map[string]*swagger.Schema
	required map[string]bool

	// tokens holds the rule last declared for each node.
	tokens map[*swagger.Schema][]rules.Token
}

func buildFieldTree(set rules.Set) *fieldTree {
	t := &fieldTree{
		fields:   make(map[string]*swagger.Schema),
		required: make(map[string]bool),
		tokens:   make(map[*swagger.Schema][]rules.Token),
	}

	for _, field := range set {
		path := slices.DeleteFunc(field.Path(), func(seg string) bool { return seg == "" })
		if len(path) == 0 || path[0] == "*" {
			continue
		}

		node, ok := t.fields[path[0]]
		if !ok {
			node = &swagger.Schema{}
			t.fields[path[0]] = node
			t.names = append(t.names, path[0])
		}

		var owner *swagger.Schema
		for _, seg := range path[1:] {
			if seg == "*" {
				node.Type = "array"
				if node.Items == nil {
					node.Items = &swagger.Schema{}
				}
				owner, node = nil, node.Items
				continue
			}
			node.Type = "object"
			owner, node = node, node.Property(seg)
		}

		if field.Required() {
			last := path[len(path)-1]
			switch {
			case len(path) == 1:
				t.required[path[0]] = true
			case owner != nil && !slices.Contains(owner.Required, last):
				owner.Required = append(owner.Required, last)
			}
		}

		if typ := tokenType(field.Tokens); typ != "" {
			node.Type = typ
		}
		t.tokens[node] = field.Tokens
	}

	for _, name := range t.names {
		t.finalize(t.fields[name])
	}
	return t
}

// finalize settles defaults and constraints once every rule has been read.
func (t *fieldTree) finalize(s *swagger.Schema) {
	if s.Type == "" {
		s.Type = "string"
	}

	if s.Type == "array" {
		if s.Items == nil {
			s.Items = &swagger.Schema{}
		}
		t.finalize(s.Items)
	} else {
		s.Items = nil
	}

	if s.Type == "object" {
		for _, name := range s.Properties.Keys() {
			prop, _ := s.Properties.Get(name)
			t.finalize(prop)
		}
	} else {
		s.Properties = nil
		s.Required = nil
	}

	applyConstraints(s, t.tokens[s])
}

func applyConstraints(s *swagger.Schema, tokens []rules.Token) {
	for _, tok := range tokens {
		switch tok.Name {
		case "in":
			s.Enum = splitEnum(tok.Param, ",")
		case "oneof":
			s.Enum = splitEnum(tok.Param, " ")
		case "min", "gte":
			setBound(s, tok.Param, true)
		case "max", "lte":
			setBound(s, tok.Param, false)
		case "between":
			lo, hi, _ := strings.Cut(tok.Param, ",")
			setBound(s, lo, true)
			setBound(s, hi, false)
		case "size", "len":
			setBound(s, tok.Param, true)
			setBound(s, tok.Param, false)
		}

		if format, ok := stringFormats[tok.Name]; ok && s.Type == "string" && s.Format == "" {
			s.Format = format
		}
	}
}

// setBound records a min or max constraint in the form that fits the
// schema type.
func setBound(s *swagger.Schema, param string, isMin bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
	if err != nil {
		return
	}
	n := int(v)

	switch s.Type {
	case "integer", "number":
		if isMin {
			s.Minimum = &v
		} else {
			s.Maximum = &v
		}
	case "string":
		if isMin {
			s.MinLength = &n
		} else {
			s.MaxLength = &n
		}
	case "array":
		if isMin {
			s.MinItems = &n
		} else {
			s.MaxItems = &n
		}
	}
}

func splitEnum(param, sep string) []string {
	var values []string
	for _, v := range strings.Split(param, sep) {
		v = strings.Trim(strings.TrimSpace(v), `"'`)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
