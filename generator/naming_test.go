package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		filter   string
		guessTag bool
		expected string
	}{
		{name: "placeholder", uri: "/users/{user}", expected: "User"},
		{name: "plural placeholder", uri: "/users/{users}/posts/{post}", expected: "User"},
		{name: "keeps rest of name", uri: "/orders/{orderItem}", expected: "OrderItem"},
		{name: "no placeholder", uri: "/users", expected: GenericResource},
		{name: "no placeholder with guess", uri: "/posts", guessTag: true, expected: "Post"},
		{name: "guess after filter", uri: "/api/posts", filter: "/api", guessTag: true, expected: "Post"},
		{name: "guess without filter", uri: "/api/posts", guessTag: true, expected: "Api"},
		{name: "guess root", uri: "/", guessTag: true, expected: GenericResource},
		{name: "guess filter only", uri: "/api", filter: "/api", guessTag: true, expected: GenericResource},
		{name: "placeholder wins over guess", uri: "/api/posts/{comment}", filter: "/api", guessTag: true, expected: "Comment"},
		{name: "empty placeholder", uri: "/x/{}", expected: GenericResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResourceName(tt.uri, tt.filter, tt.guessTag))
		})
	}
}

func TestUcFirst(t *testing.T) {
	assert.Equal(t, "User", ucFirst("user"))
	assert.Equal(t, "ÉtÉ", ucFirst("étÉ"))
	assert.Equal(t, "", ucFirst(""))
	assert.Equal(t, "1abc", ucFirst("1abc"))
}
