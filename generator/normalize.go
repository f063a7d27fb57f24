package generator

import (
	"slices"
	"strings"

	"github.com/vitalvas/routedoc/routes"
)

// Unit is one route and method to document.
type Unit struct {
	Descriptor routes.Descriptor

	// Method is the lowercase HTTP method.
	Method string

	// URI is the absolute document key: optional markers and patterns
	// removed.
	URI string

	// OriginalURI is the absolute route template as declared.
	OriginalURI string
}

// skipFunc is told why a descriptor produced no units.
type skipFunc func(desc routes.Descriptor, reason string)

// Normalize expands route descriptors into units, one per documented
// method, in route order. Routes whose stripped URI does not start with a
// non-empty routeFilter and routes whose handler is listed in
// ignoredHandlers are dropped, as are methods listed in ignoredMethods.
func Normalize(descs []routes.Descriptor, routeFilter string, ignoredHandlers, ignoredMethods []string) []Unit {
	return normalize(descs, routeFilter, ignoredHandlers, ignoredMethods, nil)
}

func normalize(descs []routes.Descriptor, routeFilter string, ignoredHandlers, ignoredMethods []string, skip skipFunc) []Unit {
	ignoredMethod := make(map[string]bool, len(ignoredMethods))
	for _, m := range ignoredMethods {
		ignoredMethod[strings.ToLower(m)] = true
	}

	var units []Unit
	for _, desc := range descs {
		original := desc.URI
		if !strings.HasPrefix(original, "/") {
			original = "/" + original
		}
		uri := routes.StripTemplate(original)

		if routeFilter != "" && !strings.HasPrefix(uri, routeFilter) {
			if skip != nil {
				skip(desc, "route filter")
			}
			continue
		}

		if desc.HandlerName != "" && slices.Contains(ignoredHandlers, desc.HandlerName) {
			if skip != nil {
				skip(desc, "ignored handler")
			}
			continue
		}

		seen := make(map[string]bool, len(desc.Methods))
		for _, m := range desc.Methods {
			method := strings.ToLower(strings.TrimSpace(m))
			if method == "" || seen[method] || ignoredMethod[method] {
				continue
			}
			seen[method] = true

			units = append(units, Unit{
				Descriptor:  desc,
				Method:      method,
				URI:         uri,
				OriginalURI: original,
			})
		}
	}
	return units
}
