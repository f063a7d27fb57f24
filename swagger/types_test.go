package swagger

import (
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *Document {
	doc := NewDocument(Info{Title: "Pets", Version: "1.0.0"})
	doc.Host = "api.example.com"
	doc.BasePath = "/"

	responses := NewOrderedMap[*Response]()
	responses.Set("200", &Response{Description: "OK"})

	doc.Path("/pets/{pet}").Set("get", &Operation{
		Summary:   "Show a pet",
		Responses: responses,
		Tags:      []string{"Pet"},
		Parameters: []*Parameter{
			{In: InPath, Name: "pet", Type: "string", Required: true},
		},
	})

	model := &Schema{Title: "Pet", Description: "Pet model"}
	model.Property("name").Type = "string"
	doc.AddDefinition("Pet", model)

	return doc
}

func TestDocument(t *testing.T) {
	t.Run("new document", func(t *testing.T) {
		doc := NewDocument(Info{Title: "T", Version: "1"})
		assert.Equal(t, "2.0", doc.Swagger)
		assert.Zero(t, doc.Paths.Len())
		assert.Nil(t, doc.Definitions)
	})

	t.Run("path created once", func(t *testing.T) {
		doc := NewDocument(Info{})
		a := doc.Path("/a")
		b := doc.Path("/a")
		assert.Same(t, a, b)
		assert.Equal(t, 1, doc.Paths.Len())
	})

	t.Run("definitions omitted when empty", func(t *testing.T) {
		data, err := json.Marshal(NewDocument(Info{Title: "T"}))
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.NotContains(t, raw, "definitions")
		assert.NotContains(t, raw, "schemes")
		assert.NotContains(t, raw, "consumes")
		assert.NotContains(t, raw, "produces")
		assert.Contains(t, raw, "paths")
	})

	t.Run("definition lookup", func(t *testing.T) {
		doc := sampleDocument()
		s, ok := doc.Definition("Pet")
		require.True(t, ok)
		assert.Equal(t, "Pet", s.Title)

		_, ok = doc.Definition("Missing")
		assert.False(t, ok)
	})
}

func TestParameterDataType(t *testing.T) {
	t.Run("inline type", func(t *testing.T) {
		p := &Parameter{In: InQuery, Type: "number"}
		assert.Equal(t, "number", p.DataType())
	})

	t.Run("body schema type", func(t *testing.T) {
		p := &Parameter{In: InBody, Schema: &Schema{Type: "array"}}
		assert.Equal(t, "array", p.DataType())
	})
}

func TestDocumentEncoding(t *testing.T) {
	t.Run("readable by kin-openapi", func(t *testing.T) {
		data, err := json.Marshal(sampleDocument())
		require.NoError(t, err)

		var doc openapi2.T
		require.NoError(t, json.Unmarshal(data, &doc))

		assert.Equal(t, "2.0", doc.Swagger)
		assert.Equal(t, "Pets", doc.Info.Title)
		assert.Equal(t, "api.example.com", doc.Host)
		require.Contains(t, doc.Paths, "/pets/{pet}")

		op := doc.Paths["/pets/{pet}"].Get
		require.NotNil(t, op)
		assert.Equal(t, "Show a pet", op.Summary)
		assert.Equal(t, []string{"Pet"}, op.Tags)
		require.Len(t, op.Parameters, 1)
		assert.Equal(t, "path", op.Parameters[0].In)
		assert.True(t, op.Parameters[0].Required)
		assert.Equal(t, "OK", op.Responses["200"].Description)

		require.Contains(t, doc.Definitions, "Pet")
		assert.Equal(t, "Pet", doc.Definitions["Pet"].Value.Title)
	})

	t.Run("yaml uses swagger field names", func(t *testing.T) {
		data, err := yaml.Marshal(sampleDocument())
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, yaml.Unmarshal(data, &raw))
		assert.Equal(t, "2.0", raw["swagger"])
		assert.Equal(t, "/", raw["basePath"])
		assert.Contains(t, raw, "definitions")
	})

	t.Run("json round trip keeps path order", func(t *testing.T) {
		doc := NewDocument(Info{Title: "T"})
		doc.Path("/zebra")
		doc.Path("/apple")

		data, err := json.Marshal(doc)
		require.NoError(t, err)

		var decoded Document
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, []string{"/zebra", "/apple"}, decoded.Paths.Keys())
	})
}
