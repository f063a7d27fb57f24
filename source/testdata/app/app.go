// Package app is a fixture for the source index.
package app

import "net/http"

// User is a registered user.
//
// @property string $name
// @property int $age
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type (
	// Post is a blog post.
	//
	// @property string $title
	Post struct {
		Title string `json:"title"`
	}

	Comment struct {
		Body string `json:"body"`
	}
)

type Tag struct{}

// Users serves the user routes.
type Users struct{}

// Index lists users.
//
// @response 200 The users
func (u *Users) Index(w http.ResponseWriter, r *http.Request) {}

// Show returns one user.
func (u Users) Show(w http.ResponseWriter, r *http.Request) {}

// Health reports liveness.
//
// @deprecated
func Health(w http.ResponseWriter, r *http.Request) {}

// Status renders the status page.
type Status struct{}

// ServeHTTP writes the status.
func (s *Status) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

// Page is a generic result page.
type Page[T any] struct {
	Items []T `json:"items"`
}

// Len returns the number of items.
func (p Page[T]) Len() int { return len(p.Items) }

func undocumented() {}
