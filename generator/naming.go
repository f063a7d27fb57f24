package generator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GenericResource is the resource name of routes nothing better is known
// for.
const GenericResource = "Generic"

var firstPlaceholder = regexp.MustCompile(`\{(\w*)\}`)

// ResourceName derives the resource of a stripped route URI: its first
// placeholder name, singular and capitalized. Without placeholders the
// resource is Generic, or with guessTag the singular of the first segment
// left after removing routeFilter.
//
//	/users/{users}        User
//	/api/posts            Generic
//	/api/posts, guessTag  Api, or Post with routeFilter "/api"
func ResourceName(uri, routeFilter string, guessTag bool) string {
	if m := firstPlaceholder.FindStringSubmatch(uri); m != nil && m[1] != "" {
		return ucFirst(inflection.Singular(m[1]))
	}

	if !guessTag {
		return GenericResource
	}

	rest := uri
	if routeFilter != "" {
		rest = strings.Replace(uri, routeFilter, "", 1)
	}
	segments := strings.Split(rest, "/")
	if len(segments) < 2 || segments[1] == "" {
		return GenericResource
	}
	return ucFirst(inflection.Singular(segments[1]))
}

// ucFirst upper-cases the first letter and keeps the rest as is.
func ucFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}
