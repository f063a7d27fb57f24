// Package rules models per-field validation rule sets as declared by input
// validation layers, in two syntaxes:
//
//	pipe:  "required|string|max:255"      (Parse)
//	tag:   "required,max=255,oneof=a b"   (ParseTag, go-playground/validator style)
//
// Field names may use nested notation: "tags.*" is an element of the
// "tags" array, "address.city" a property of the "address" object and
// "items.*.sku" a property of each "items" element.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Token is a single constraint such as "required" or "max:255".
type Token struct {
	Name  string
	Param string
}

func (t Token) String() string {
	if t.Param == "" {
		return t.Name
	}
	return t.Name + ":" + t.Param
}

// ParseToken parses a pipe-syntax token ("max:255").
func ParseToken(s string) Token {
	name, param, _ := strings.Cut(strings.TrimSpace(s), ":")
	return Token{Name: strings.ToLower(strings.TrimSpace(name)), Param: param}
}

// Parse splits a pipe-syntax rule string into tokens.
func Parse(rule string) []Token {
	var tokens []Token
	for part := range strings.SplitSeq(rule, "|") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		tokens = append(tokens, ParseToken(part))
	}
	return tokens
}

// ParseTag splits a validator struct tag into tokens. "max=255" becomes
// Token{Name: "max", Param: "255"}.
func ParseTag(tag string) []Token {
	var tokens []Token
	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, param, _ := strings.Cut(part, "=")
		tokens = append(tokens, Token{Name: strings.ToLower(name), Param: param})
	}
	return tokens
}

// Field is the rule set of one field.
type Field struct {
	Name   string
	Tokens []Token
}

// Has reports whether the field carries a token with the given name.
func (f Field) Has(name string) bool {
	_, ok := f.Param(name)
	return ok
}

// Param returns the parameter of the first token with the given name.
func (f Field) Param(name string) (string, bool) {
	for _, tok := range f.Tokens {
		if tok.Name == name {
			return tok.Param, true
		}
	}
	return "", false
}

// Required reports whether the field carries the "required" token.
func (f Field) Required() bool {
	return f.Has("required")
}

// Path splits the field name on its nesting separator.
func (f Field) Path() []string {
	return strings.Split(f.Name, ".")
}

// Set is an ordered collection of field rules.
type Set []Field

// Source exposes the rule set of a validated request. Handlers, or the
// request types they bind, implement it to have their inputs documented.
type Source interface {
	Rules() Set
}

// SourceFunc adapts a function to Source.
type SourceFunc func() Set

// Rules calls f.
func (f SourceFunc) Rules() Set {
	return f()
}

// Rules returns s, so a Set can be used directly as a Source.
func (s Set) Rules() Set {
	return s
}

// With returns a copy of s with a pipe-syntax rule appended for name.
func (s Set) With(name, rule string) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	return append(out, Field{Name: name, Tokens: Parse(rule)})
}

// Lookup returns the first field with the given name.
func (s Set) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FromMap builds a Set from pipe-syntax rules. Go maps are unordered, so
// fields are sorted by name; nested entries therefore follow their parent.
func FromMap(m map[string]string) Set {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	set := make(Set, 0, len(names))
	for _, name := range names {
		set = append(set, Field{Name: name, Tokens: Parse(m[name])})
	}
	return set
}

// UnmarshalYAML decodes a mapping of field name to rule, keeping the
// declaration order. A rule is either a pipe-syntax string or a sequence
// of tokens.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("rules: expected mapping, got YAML node kind %d", node.Kind)
	}

	out := make(Set, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]

		switch value.Kind {
		case yaml.ScalarNode:
			out = append(out, Field{Name: name, Tokens: Parse(value.Value)})
		case yaml.SequenceNode:
			var parts []string
			if err := value.Decode(&parts); err != nil {
				return fmt.Errorf("rules: field %q: %w", name, err)
			}
			var tokens []Token
			for _, part := range parts {
				tokens = append(tokens, ParseToken(part))
			}
			out = append(out, Field{Name: name, Tokens: tokens})
		default:
			return fmt.Errorf("rules: field %q: unsupported YAML node kind %d", name, value.Kind)
		}
	}

	*s = out
	return nil
}
