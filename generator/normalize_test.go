package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/routedoc/routes"
)

func unitKeys(units []Unit) []string {
	keys := make([]string, 0, len(units))
	for _, u := range units {
		keys = append(keys, u.Method+" "+u.URI)
	}
	return keys
}

func TestNormalize(t *testing.T) {
	descs := []routes.Descriptor{
		{URI: "users", Methods: []string{"GET", "HEAD"}, HandlerName: "app.Users.Index"},
		{URI: "/users/{user?}", Methods: []string{"PUT", "PATCH", "put"}, HandlerName: "app.Users.Update"},
		{URI: "/users/{id:uuid}/posts", Methods: []string{"POST"}, HandlerName: "app.Posts.Store"},
		{URI: "/health", Methods: []string{"GET"}, HandlerName: "app.Health"},
		{URI: "/admin/users", Methods: []string{"DELETE"}, HandlerName: "app.Admin"},
	}

	t.Run("expands methods in order", func(t *testing.T) {
		units := Normalize(descs, "", nil, []string{"head"})
		assert.Equal(t, []string{
			"get /users",
			"put /users/{user}",
			"patch /users/{user}",
			"post /users/{id}/posts",
			"get /health",
			"delete /admin/users",
		}, unitKeys(units))
	})

	t.Run("keeps original uri", func(t *testing.T) {
		units := Normalize(descs, "", nil, nil)
		require.Len(t, units, 7)
		assert.Equal(t, "/users", units[0].OriginalURI)
		assert.Equal(t, "head", units[1].Method)

		var update Unit
		for _, u := range units {
			if u.Method == "put" {
				update = u
			}
		}
		assert.Equal(t, "/users/{user?}", update.OriginalURI)
		assert.Equal(t, "/users/{user}", update.URI)
		assert.Equal(t, "app.Users.Update", update.Descriptor.HandlerName)
	})

	t.Run("route filter", func(t *testing.T) {
		units := Normalize(descs, "/users", nil, []string{"head"})
		assert.Equal(t, []string{
			"get /users",
			"put /users/{user}",
			"patch /users/{user}",
			"post /users/{id}/posts",
		}, unitKeys(units))
	})

	t.Run("filter applies to stripped uri", func(t *testing.T) {
		units := Normalize([]routes.Descriptor{
			{URI: "/users/{id:uuid}", Methods: []string{"GET"}},
		}, "/users/{id}", nil, nil)
		assert.Len(t, units, 1)
	})

	t.Run("ignored handlers", func(t *testing.T) {
		units := Normalize(descs, "", []string{"app.Health", "app.Admin"}, []string{"head"})
		assert.Equal(t, []string{
			"get /users",
			"put /users/{user}",
			"patch /users/{user}",
			"post /users/{id}/posts",
		}, unitKeys(units))
	})

	t.Run("ignored methods are case insensitive", func(t *testing.T) {
		units := Normalize(descs, "", nil, []string{"HEAD", "Patch"})
		assert.NotContains(t, unitKeys(units), "patch /users/{user}")
		assert.NotContains(t, unitKeys(units), "head /users")
	})

	t.Run("skip reasons", func(t *testing.T) {
		var reasons []string
		normalize(descs, "/users", []string{"app.Posts.Store"}, nil, func(d routes.Descriptor, reason string) {
			reasons = append(reasons, d.URI+": "+reason)
		})
		assert.Equal(t, []string{
			"/users/{id:uuid}/posts: ignored handler",
			"/health: route filter",
			"/admin/users: route filter",
		}, reasons)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Normalize(nil, "", nil, nil))
	})
}
