package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/routedoc/rules"
	"github.com/vitalvas/routedoc/swagger"
)

func paramNames(params []*swagger.Parameter) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestPathParameterGenerator(t *testing.T) {
	t.Run("declared order", func(t *testing.T) {
		params := PathParameterGenerator{URI: "/users/{id}/posts/{postId}"}.Parameters()
		require.Len(t, params, 2)

		for i, name := range []string{"id", "postId"} {
			assert.Equal(t, name, params[i].Name)
			assert.Equal(t, swagger.InPath, params[i].In)
			assert.Equal(t, "string", params[i].Type)
			assert.True(t, params[i].Required)
		}
	})

	t.Run("duplicates suppressed", func(t *testing.T) {
		params := PathParameterGenerator{URI: "/users/{id}/friends/{id}"}.Parameters()
		assert.Equal(t, []string{"id"}, paramNames(params))
	})

	t.Run("optional", func(t *testing.T) {
		params := PathParameterGenerator{URI: "/posts/{post}/{page?}"}.Parameters()
		require.Len(t, params, 2)
		assert.True(t, params[0].Required)
		assert.False(t, params[1].Required)
	})

	t.Run("patterns", func(t *testing.T) {
		params := PathParameterGenerator{URI: "/users/{id:uuid}/codes/{code:[0-9]{3}}/{n:int}"}.Parameters()
		require.Len(t, params, 3)

		assert.Equal(t, "uuid", params[0].Format)
		assert.Empty(t, params[0].Pattern)
		assert.Equal(t, "^[0-9]{3}$", params[1].Pattern)
		assert.Equal(t, "^[0-9]+$", params[2].Pattern)
		assert.Equal(t, "string", params[2].Type)
	})

	t.Run("unbalanced template", func(t *testing.T) {
		params := PathParameterGenerator{URI: "/a/{id}/{b?}/{c"}.Parameters()
		assert.Equal(t, []string{"id", "b"}, paramNames(params))
		assert.False(t, params[1].Required)
	})

	t.Run("no placeholders", func(t *testing.T) {
		assert.Empty(t, PathParameterGenerator{URI: "/users"}.Parameters())
	})
}

func TestQueryParameterGenerator(t *testing.T) {
	t.Run("types and required", func(t *testing.T) {
		set := rules.Set{}.
			With("q", "required|string|max:64").
			With("page", "integer|min:1").
			With("ratio", "numeric|between:0,1").
			With("active", "boolean").
			With("sort", "in:name,created_at").
			With("plain", "nullable")

		params := QueryParameterGenerator{Rules: set}.Parameters()
		require.Len(t, params, 6)

		q := params[0]
		assert.Equal(t, swagger.InQuery, q.In)
		assert.Equal(t, "q", q.Name)
		assert.Equal(t, "string", q.Type)
		assert.True(t, q.Required)
		assert.Equal(t, intPtr(64), q.MaxLength)

		page := params[1]
		assert.Equal(t, "integer", page.Type)
		assert.False(t, page.Required)
		assert.Equal(t, floatPtr(1), page.Minimum)

		ratio := params[2]
		assert.Equal(t, "number", ratio.Type)
		assert.Equal(t, floatPtr(0), ratio.Minimum)
		assert.Equal(t, floatPtr(1), ratio.Maximum)

		assert.Equal(t, "boolean", params[3].Type)

		assert.Equal(t, "string", params[4].Type)
		assert.Equal(t, []string{"name", "created_at"}, params[4].Enum)

		assert.Equal(t, "string", params[5].Type)
	})

	t.Run("first type token wins", func(t *testing.T) {
		params := QueryParameterGenerator{Rules: rules.Set{}.With("email", "required|email|string")}.Parameters()
		require.Len(t, params, 1)
		assert.Equal(t, "string", params[0].Type)
		assert.Equal(t, "email", params[0].Format)
	})

	t.Run("nested array folds into parent", func(t *testing.T) {
		set := rules.Set{}.
			With("ids", "array|max:10").
			With("ids.*", "integer|in:1,2,3")

		params := QueryParameterGenerator{Rules: set}.Parameters()
		require.Len(t, params, 1)

		ids := params[0]
		assert.Equal(t, "ids", ids.Name)
		assert.Equal(t, "array", ids.Type)
		assert.Equal(t, intPtr(10), ids.MaxItems)
		require.NotNil(t, ids.Items)
		assert.Equal(t, "integer", ids.Items.Type)
		assert.Equal(t, []string{"1", "2", "3"}, ids.Items.Enum)
	})

	t.Run("array without items", func(t *testing.T) {
		params := QueryParameterGenerator{Rules: rules.Set{}.With("tags", "array")}.Parameters()
		require.NotNil(t, params[0].Items)
		assert.Equal(t, "string", params[0].Items.Type)
	})

	t.Run("nested object", func(t *testing.T) {
		set := rules.Set{}.
			With("filter.name", "string").
			With("filter.age", "integer")

		params := QueryParameterGenerator{Rules: set}.Parameters()
		require.Len(t, params, 1)
		assert.Equal(t, "filter", params[0].Name)
		assert.Equal(t, "object", params[0].Type)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, QueryParameterGenerator{}.Parameters())
	})
}

func TestBodyParameterGenerator(t *testing.T) {
	set := rules.Set{}.
		With("name", "required|string|max:255").
		With("email", "required|email").
		With("tags.*", "string|min:2").
		With("address.city", "required|string").
		With("address.zip", "string|size:5").
		With("items", "required|array|min:1").
		With("items.*.sku", "required|string").
		With("items.*.quantity", "integer|min:1").
		With("role", "in:admin,user")

	t.Run("one parameter per top-level field", func(t *testing.T) {
		params := BodyParameterGenerator{Rules: set}.Parameters()
		assert.Equal(t, []string{"name", "email", "tags", "address", "items", "role"}, paramNames(params))

		for _, p := range params {
			assert.Equal(t, swagger.InBody, p.In)
			assert.Empty(t, p.Type)
			require.NotNil(t, p.Schema)
		}

		name := params[0]
		assert.True(t, name.Required)
		assert.Equal(t, "string", name.DataType())
		assert.Equal(t, intPtr(255), name.Schema.MaxLength)

		email := params[1]
		assert.Equal(t, "email", email.Schema.Format)

		tags := params[2]
		assert.False(t, tags.Required)
		assert.Equal(t, "array", tags.DataType())
		assert.Equal(t, "string", tags.Schema.Items.Type)
		assert.Equal(t, intPtr(2), tags.Schema.Items.MinLength)

		address := params[3]
		assert.Equal(t, "object", address.DataType())
		assert.Equal(t, []string{"city", "zip"}, address.Schema.Properties.Keys())
		assert.Equal(t, []string{"city"}, address.Schema.Required)
		zip, _ := address.Schema.Properties.Get("zip")
		assert.Equal(t, intPtr(5), zip.MinLength)
		assert.Equal(t, intPtr(5), zip.MaxLength)

		items := params[4]
		assert.True(t, items.Required)
		assert.Equal(t, "array", items.DataType())
		assert.Equal(t, intPtr(1), items.Schema.MinItems)
		item := items.Schema.Items
		assert.Equal(t, "object", item.Type)
		assert.Equal(t, []string{"sku", "quantity"}, item.Properties.Keys())
		assert.Equal(t, []string{"sku"}, item.Required)
		qty, _ := item.Properties.Get("quantity")
		assert.Equal(t, "integer", qty.Type)
		assert.Equal(t, floatPtr(1), qty.Minimum)

		role := params[5]
		assert.Equal(t, []string{"admin", "user"}, role.Schema.Enum)
	})

	t.Run("single body", func(t *testing.T) {
		params := BodyParameterGenerator{Rules: set, Single: true}.Parameters()
		require.Len(t, params, 1)

		body := params[0]
		assert.Equal(t, "body", body.Name)
		assert.Equal(t, swagger.InBody, body.In)
		assert.True(t, body.Required)
		assert.Equal(t, "object", body.DataType())
		assert.Equal(t, []string{"name", "email", "tags", "address", "items", "role"}, body.Schema.Properties.Keys())
		assert.Equal(t, []string{"name", "email", "items"}, body.Schema.Required)
	})

	t.Run("last type wins", func(t *testing.T) {
		params := BodyParameterGenerator{Rules: rules.Set{}.
			With("meta", "string").
			With("meta.*", "integer").
			With("flag", "integer").
			With("flag", "boolean"),
		}.Parameters()
		require.Len(t, params, 2)

		assert.Equal(t, "array", params[0].DataType())
		assert.Equal(t, "integer", params[0].Schema.Items.Type)
		assert.Equal(t, "boolean", params[1].DataType())
	})

	t.Run("explicit type overrides structure", func(t *testing.T) {
		params := BodyParameterGenerator{Rules: rules.Set{}.
			With("payload.key", "string").
			With("payload", "string"),
		}.Parameters()
		require.Len(t, params, 1)
		assert.Equal(t, "string", params[0].DataType())
		assert.Nil(t, params[0].Schema.Properties)
	})

	t.Run("empty segments", func(t *testing.T) {
		params := BodyParameterGenerator{Rules: rules.Set{}.
			With("meta.", "required|string").
			With("a..b", "required|integer").
			With(".", "string"),
		}.Parameters()
		require.Len(t, params, 2)

		meta := params[0]
		assert.Equal(t, "meta", meta.Name)
		assert.True(t, meta.Required)
		assert.Equal(t, "string", meta.DataType())
		assert.Nil(t, meta.Schema.Properties)

		a := params[1]
		assert.Equal(t, "object", a.DataType())
		assert.Equal(t, []string{"b"}, a.Schema.Properties.Keys())
		assert.Equal(t, []string{"b"}, a.Schema.Required)
		assert.False(t, a.Schema.Properties.Has(""))
	})

	t.Run("struct rules", func(t *testing.T) {
		type createPost struct {
			Title string   `json:"title" validate:"required,max=120"`
			Tags  []string `json:"tags" validate:"dive,oneof=go php"`
		}

		params := BodyParameterGenerator{Rules: rules.FromStruct(createPost{})}.Parameters()
		require.Len(t, params, 2)
		assert.True(t, params[0].Required)
		assert.Equal(t, intPtr(120), params[0].Schema.MaxLength)
		assert.Equal(t, []string{"go", "php"}, params[1].Schema.Items.Enum)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, BodyParameterGenerator{}.Parameters())
		assert.Nil(t, BodyParameterGenerator{Single: true}.Parameters())
	})
}

func TestAppendParameters(t *testing.T) {
	dst := []*swagger.Parameter{{In: swagger.InPath, Name: "id"}}
	out := appendParameters(dst,
		&swagger.Parameter{In: swagger.InPath, Name: "id", Type: "integer"},
		&swagger.Parameter{In: swagger.InQuery, Name: "id"},
		&swagger.Parameter{In: swagger.InQuery, Name: "q"},
	)

	require.Len(t, out, 3)
	assert.Empty(t, out[0].Type)
	assert.Equal(t, swagger.InQuery, out[1].In)
	assert.Equal(t, "q", out[2].Name)
}
