package routes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/routedoc/rules"
)

// ErrInvalidManifest is matched by errors reporting a malformed manifest.
var ErrInvalidManifest = errors.New("routes: invalid manifest")

// Manifest is a route table written down as YAML, for applications whose
// routes are not registered through a Table:
//
//	routes:
//	  - uri: /users/{user}
//	    methods: [GET, HEAD]
//	    handler: github.com/acme/app/users.Show
//	    comment: |
//	      Show a user.
//	      @response 404 User not found
//	  - uri: /users
//	    methods: [POST]
//	    handler: github.com/acme/app/users.Store
//	    rules:
//	      name: required|string|max:255
//	      email: required|email
type Manifest struct {
	Routes []ManifestRoute `yaml:"routes"`
}

// ManifestRoute is a single manifest entry.
type ManifestRoute struct {
	URI     string    `yaml:"uri"`
	Methods []string  `yaml:"methods"`
	Handler string    `yaml:"handler"`
	Name    string    `yaml:"name"`
	Comment string    `yaml:"comment"`
	Rules   rules.Set `yaml:"rules"`
}

// Table registers the manifest routes on a new Table.
func (m *Manifest) Table() (*Table, error) {
	t := New()
	for i, entry := range m.Routes {
		if entry.URI == "" {
			return nil, fmt.Errorf("%w: route %d: missing uri", ErrInvalidManifest, i)
		}
		if len(entry.Methods) == 0 {
			return nil, fmt.Errorf("%w: route %d (%s): missing methods", ErrInvalidManifest, i, entry.URI)
		}
		if _, err := ParseTemplate(entry.URI); err != nil {
			return nil, fmt.Errorf("%w: route %d: %v", ErrInvalidManifest, i, err)
		}

		r := t.Handle(entry.URI, entry.Handler).
			Methods(entry.Methods...).
			Name(entry.Name).
			Doc(entry.Comment)
		if len(entry.Rules) > 0 {
			r.Rules(entry.Rules)
		}
	}
	return t, nil
}

// ParseManifest decodes a manifest and returns its route descriptors.
func ParseManifest(r io.Reader) ([]Descriptor, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	t, err := m.Table()
	if err != nil {
		return nil, err
	}
	return t.Descriptors(), nil
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routes: read manifest: %w", err)
	}
	return ParseManifest(bytes.NewReader(data))
}
