package routes

// macro is a named placeholder pattern usable as {name:macro}.
type macro struct {
	pattern string
	format  string
}

var macros = map[string]macro{
	"uuid":     {pattern: `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`, format: "uuid"},
	"int":      {pattern: `[0-9]+`},
	"float":    {pattern: `[0-9]*\.?[0-9]+`},
	"slug":     {pattern: `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`},
	"alpha":    {pattern: `[a-zA-Z]+`},
	"alphanum": {pattern: `[a-zA-Z0-9]+`},
	"date":     {pattern: `[0-9]{4}-[0-9]{2}-[0-9]{2}`, format: "date"},
	"hex":      {pattern: `[0-9a-fA-F]+`},
	// RFC 1035/1123: labels 1-63 chars, total up to 253 chars.
	"domain": {pattern: `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`, format: "hostname"},
}

// ExpandMacro returns the regular expression behind a macro name. Names
// that are not macros are returned unchanged.
func ExpandMacro(name string) string {
	if m, ok := macros[name]; ok {
		return m.pattern
	}
	return name
}

// Regexp returns the anchored expression a variable value must match, or
// "" when the variable has no pattern.
func (v Variable) Regexp() string {
	if v.Pattern == "" {
		return ""
	}
	return "^" + ExpandMacro(v.Pattern) + "$"
}
