package rules

import (
	"reflect"
	"strings"
	"time"
)

// FromStruct derives a rule set from the `validate` tags of a struct (or a
// pointer to one). Field names follow `json` tags. Each field gets a type
// token from its Go kind ahead of its tag tokens; nested structs and slices
// of structs are expanded with nested notation, and tokens after "dive"
// apply to slice elements.
//
//	type CreateUser struct {
//	    Name string   `json:"name" validate:"required,max=64"`
//	    Tags []string `json:"tags" validate:"dive,min=2"`
//	}
//
// yields name: [string required max:64], tags: [array], tags.*: [string min:2].
func FromStruct(v any) Set {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var set Set
	collectFields(&set, t, "", map[reflect.Type]bool{t: true})
	return set
}

var timeType = reflect.TypeOf(time.Time{})

func collectFields(set *Set, t reflect.Type, prefix string, visiting map[reflect.Type]bool) {
	for i := range t.NumField() {
		field := t.Field(i)

		jsonName := jsonFieldName(field.Tag.Get("json"))
		if jsonName == "-" {
			continue
		}

		// Embedded structs without an explicit json name are inlined, as
		// encoding/json does, even when the embedded type is unexported.
		if field.Anonymous && jsonName == "" {
			ft := derefType(field.Type)
			if ft.Kind() == reflect.Struct {
				if !visiting[ft] {
					visiting[ft] = true
					collectFields(set, ft, prefix, visiting)
					delete(visiting, ft)
				}
				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		name := jsonName
		if name == "" {
			name = field.Name
		}

		own, elem := splitDive(ParseTag(tag))
		addField(set, field.Type, prefix+name, own, elem, visiting)
	}
}

func addField(set *Set, ft reflect.Type, name string, own, elem []Token, visiting map[reflect.Type]bool) {
	ft = derefType(ft)

	*set = append(*set, Field{Name: name, Tokens: append([]Token{kindToken(ft)}, own...)})

	switch ft.Kind() {
	case reflect.Struct:
		if ft == timeType || visiting[ft] {
			return
		}
		visiting[ft] = true
		collectFields(set, ft, name+".", visiting)
		delete(visiting, ft)

	case reflect.Slice, reflect.Array:
		et := derefType(ft.Elem())
		if et.Kind() == reflect.Uint8 {
			return
		}
		if et.Kind() == reflect.Struct && et != timeType {
			if len(elem) > 0 {
				*set = append(*set, Field{Name: name + ".*", Tokens: append([]Token{kindToken(et)}, elem...)})
			}
			if !visiting[et] {
				visiting[et] = true
				collectFields(set, et, name+".*.", visiting)
				delete(visiting, et)
			}
			return
		}
		inner, deeper := splitDive(elem)
		addField(set, et, name+".*", inner, deeper, visiting)
	}
}

// splitDive separates the tokens before and after the first "dive".
func splitDive(tokens []Token) ([]Token, []Token) {
	for i, tok := range tokens {
		if tok.Name == "dive" {
			return tokens[:i], tokens[i+1:]
		}
	}
	return tokens, nil
}

func kindToken(t reflect.Type) Token {
	if t == timeType {
		return Token{Name: "date_format"}
	}
	switch t.Kind() {
	case reflect.Bool:
		return Token{Name: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Token{Name: "integer"}
	case reflect.Float32, reflect.Float64:
		return Token{Name: "numeric"}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return Token{Name: "string"}
		}
		return Token{Name: "array"}
	case reflect.Struct, reflect.Map, reflect.Interface:
		return Token{Name: "object"}
	}
	return Token{Name: "string"}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func jsonFieldName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
