package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMap(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		m := NewOrderedMap[int]()
		m.Set("b", 1)
		m.Set("a", 2)
		m.Set("c", 3)

		assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
		assert.Equal(t, 3, m.Len())
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		m := NewOrderedMap[int]()
		m.Set("b", 1)
		m.Set("a", 2)
		m.Set("b", 10)

		assert.Equal(t, []string{"b", "a"}, m.Keys())
		v, ok := m.Get("b")
		require.True(t, ok)
		assert.Equal(t, 10, v)
	})

	t.Run("set if absent", func(t *testing.T) {
		m := NewOrderedMap[string]()
		assert.True(t, m.SetIfAbsent("200", "custom"))
		assert.False(t, m.SetIfAbsent("200", "OK"))

		v, _ := m.Get("200")
		assert.Equal(t, "custom", v)
	})

	t.Run("nil map reads", func(t *testing.T) {
		var m *OrderedMap[int]
		assert.False(t, m.Has("a"))
		assert.Zero(t, m.Len())
		assert.Nil(t, m.Keys())
	})

	t.Run("zero value set", func(t *testing.T) {
		var m OrderedMap[int]
		m.Set("a", 1)
		assert.True(t, m.Has("a"))
	})
}

func TestOrderedMapJSON(t *testing.T) {
	t.Run("marshal in insertion order", func(t *testing.T) {
		m := NewOrderedMap[*Response]()
		m.Set("404", &Response{Description: "Not Found"})
		m.Set("200", &Response{Description: "OK"})

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"404":{"description":"Not Found"},"200":{"description":"OK"}}`, string(data))
	})

	t.Run("empty map", func(t *testing.T) {
		data, err := json.Marshal(NewOrderedMap[string]())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})

	t.Run("unmarshal keeps order", func(t *testing.T) {
		m := NewOrderedMap[string]()
		require.NoError(t, json.Unmarshal([]byte(`{"z":"1","a":"2","m":"3"}`), m))
		assert.Equal(t, []string{"z", "a", "m"}, m.Keys())
	})

	t.Run("unmarshal rejects arrays", func(t *testing.T) {
		m := NewOrderedMap[string]()
		assert.Error(t, json.Unmarshal([]byte(`["a"]`), m))
	})
}

func TestOrderedMapYAML(t *testing.T) {
	t.Run("marshal in insertion order", func(t *testing.T) {
		m := NewOrderedMap[string]()
		m.Set("zeta", "1")
		m.Set("alpha", "2")

		data, err := yaml.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, "zeta: \"1\"\nalpha: \"2\"\n", string(data))
	})

	t.Run("unmarshal keeps order", func(t *testing.T) {
		m := NewOrderedMap[string]()
		require.NoError(t, yaml.Unmarshal([]byte("zeta: a\nalpha: b\n"), m))
		assert.Equal(t, []string{"zeta", "alpha"}, m.Keys())
	})

	t.Run("unmarshal rejects scalars", func(t *testing.T) {
		m := NewOrderedMap[string]()
		assert.Error(t, yaml.Unmarshal([]byte("just a string"), m))
	})
}
