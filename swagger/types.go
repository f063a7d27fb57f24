package swagger

// Version is the Swagger specification version written to every document.
const Version = "2.0"

// Document represents the root of a Swagger 2.0 document.
//
// See: https://swagger.io/specification/v2/#swagger-object
type Document struct {
	Swagger     string                 `json:"swagger" yaml:"swagger"`
	Info        Info                   `json:"info" yaml:"info"`
	Host        string                 `json:"host" yaml:"host"`
	BasePath    string                 `json:"basePath" yaml:"basePath"`
	Schemes     []string               `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Consumes    []string               `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces    []string               `json:"produces,omitempty" yaml:"produces,omitempty"`
	Paths       *OrderedMap[*PathItem] `json:"paths" yaml:"paths"`
	Definitions *OrderedMap[*Schema]   `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// NewDocument returns a document with an empty path set.
func NewDocument(info Info) *Document {
	return &Document{
		Swagger: Version,
		Info:    info,
		Paths:   NewOrderedMap[*PathItem](),
	}
}

// Path returns the path item stored under uri, creating it on first use.
func (d *Document) Path(uri string) *PathItem {
	if item, ok := d.Paths.Get(uri); ok {
		return item
	}
	item := NewPathItem()
	d.Paths.Set(uri, item)
	return item
}

// Definition returns the definition registered under name.
func (d *Document) Definition(name string) (*Schema, bool) {
	if d.Definitions == nil {
		return nil, false
	}
	return d.Definitions.Get(name)
}

// AddDefinition registers a schema under name. The definitions map is
// created lazily so documents without models omit the key.
func (d *Document) AddDefinition(name string, schema *Schema) {
	if d.Definitions == nil {
		d.Definitions = NewOrderedMap[*Schema]()
	}
	d.Definitions.Set(name, schema)
}

// Info provides metadata about the API.
//
// See: https://swagger.io/specification/v2/#info-object
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

// PathItem maps lowercase HTTP methods to operations, in the order the
// methods were first assigned.
//
// See: https://swagger.io/specification/v2/#path-item-object
type PathItem = OrderedMap[*Operation]

// NewPathItem returns an empty path item.
func NewPathItem() *PathItem {
	return NewOrderedMap[*Operation]()
}

// Operation describes a single API operation on a path.
//
// See: https://swagger.io/specification/v2/#operation-object
type Operation struct {
	Summary     string                 `json:"summary" yaml:"summary"`
	Description string                 `json:"description" yaml:"description"`
	Deprecated  bool                   `json:"deprecated" yaml:"deprecated"`
	Responses   *OrderedMap[*Response] `json:"responses" yaml:"responses"`
	Tags        []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []*Parameter           `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Parameter describes a single operation parameter. Non-body parameters
// carry their type and constraints inline; body parameters carry them in
// Schema.
//
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	In          string   `json:"in" yaml:"in"`
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Required    bool     `json:"required" yaml:"required"`
	Description string   `json:"description" yaml:"description"`
	Items       *Schema  `json:"items,omitempty" yaml:"items,omitempty"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength   *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinItems    *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Schema      *Schema  `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InBody   = "body"
	InHeader = "header"
)

// DataType returns the parameter type, reading it from the schema for body
// parameters.
func (p *Parameter) DataType() string {
	if p.Type == "" && p.Schema != nil {
		return p.Schema.Type
	}
	return p.Type
}

// Response describes a single response from an API operation.
// The description field is required.
//
// See: https://swagger.io/specification/v2/#response-object
type Response struct {
	Description string `json:"description" yaml:"description"`
}

// Schema is the subset of the Swagger 2.0 Schema Object produced by the
// generator: model definitions and request body shapes.
//
// See: https://swagger.io/specification/v2/#schema-object
type Schema struct {
	Type        string               `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string               `json:"format,omitempty" yaml:"format,omitempty"`
	Title       string               `json:"title,omitempty" yaml:"title,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Required    []string             `json:"required,omitempty" yaml:"required,omitempty"`
	Properties  *OrderedMap[*Schema] `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema              `json:"items,omitempty" yaml:"items,omitempty"`
	Enum        []string             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum     *float64             `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64             `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength   *int                 `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int                 `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinItems    *int                 `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int                 `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// Property returns the named property schema, creating the properties map
// and the property itself when absent.
func (s *Schema) Property(name string) *Schema {
	if s.Properties == nil {
		s.Properties = NewOrderedMap[*Schema]()
	}
	if prop, ok := s.Properties.Get(name); ok {
		return prop
	}
	prop := &Schema{}
	s.Properties.Set(name, prop)
	return prop
}
