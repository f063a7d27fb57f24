package generator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vitalvas/routedoc/config"
	"github.com/vitalvas/routedoc/docblock"
	"github.com/vitalvas/routedoc/routes"
	"github.com/vitalvas/routedoc/rules"
	"github.com/vitalvas/routedoc/swagger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The standard logrus logger is used by
// default.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.log = logger
		}
	}
}

// WithModels sets the registry model definitions are resolved from.
// Without one, documents carry no definitions.
func WithModels(registry ModelRegistry) Option {
	return func(g *Generator) {
		g.models = registry
	}
}

// WithComments sets where handler comments are looked up for routes that
// carry none.
func WithComments(source CommentSource) Option {
	return func(g *Generator) {
		g.comments = source
	}
}

// WithCommentParser replaces the doc comment parser.
func WithCommentParser(parser CommentParser) Option {
	return func(g *Generator) {
		if parser != nil {
			g.parser = parser
		}
	}
}

// WithRouteFilter overrides the configured route filter.
func WithRouteFilter(prefix string) Option {
	return func(g *Generator) {
		g.routeFilter = prefix
	}
}

// WithPreset overrides the configured preset.
func WithPreset(name string) Option {
	return func(g *Generator) {
		g.preset = name
	}
}

// WithLenientModels skips model properties of unmapped types, logging a
// warning, instead of failing the run.
func WithLenientModels() Option {
	return func(g *Generator) {
		g.lenient = true
	}
}

// WithSingleBody documents request bodies as one "body" parameter with an
// object schema instead of one body parameter per field.
func WithSingleBody() Option {
	return func(g *Generator) {
		g.singleBody = true
	}
}

// Generator builds Swagger documents from route tables. It is not
// modified by Generate and may be shared.
type Generator struct {
	cfg         *config.Config
	log         logrus.FieldLogger
	models      ModelRegistry
	comments    CommentSource
	parser      CommentParser
	routeFilter string
	preset      string
	lenient     bool
	singleBody  bool
}

// New creates a Generator. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}

	g := &Generator{
		cfg:         cfg,
		log:         logrus.StandardLogger(),
		parser:      docblock.Parser{},
		routeFilter: cfg.RouteFilter,
		preset:      cfg.Preset,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.preset == "" {
		g.preset = config.DefaultPreset
	}
	return g
}

// Generate documents the given routes. Every call starts from an empty
// document.
func (g *Generator) Generate(descs []routes.Descriptor) (*swagger.Document, error) {
	ignoredHandlers, ok := g.cfg.IgnoredControllers(g.preset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, g.preset)
	}

	r := &run{
		Generator: g,
		doc:       g.envelope(),
		resolved:  make(map[string]bool),
		resolver: &ModelResolver{
			Registry:  g.models,
			Namespace: g.cfg.ModelNamespace,
			Parser:    g.parser,
			Lenient:   g.lenient,
			Logger:    g.log,
		},
	}

	units := normalize(descs, g.routeFilter, ignoredHandlers, g.cfg.IgnoredMethods, func(desc routes.Descriptor, reason string) {
		g.log.WithFields(logrus.Fields{
			"uri":     desc.URI,
			"handler": desc.HandlerName,
		}).Debugf("skipping route: %s", reason)
	})

	for _, unit := range units {
		if err := r.assemble(unit); err != nil {
			return nil, &RouteError{Method: unit.Method, URI: unit.URI, Err: err}
		}
	}

	g.log.WithFields(logrus.Fields{
		"routes": len(descs),
		"paths":  r.doc.Paths.Len(),
	}).Debug("document generated")

	return r.doc, nil
}

// envelope seeds a document from the configuration.
func (g *Generator) envelope() *swagger.Document {
	doc := swagger.NewDocument(swagger.Info{
		Title:       g.cfg.Title,
		Description: g.cfg.Description,
		Version:     g.cfg.AppVersion,
	})
	doc.Host = g.cfg.Host
	doc.BasePath = g.cfg.BasePath

	if len(g.cfg.Schemes) > 0 {
		doc.Schemes = append([]string(nil), g.cfg.Schemes...)
	}
	if len(g.cfg.Consumes) > 0 {
		doc.Consumes = append([]string(nil), g.cfg.Consumes...)
	}
	if len(g.cfg.Produces) > 0 {
		doc.Produces = append([]string(nil), g.cfg.Produces...)
	}
	return doc
}

// run holds the state of one Generate call.
type run struct {
	*Generator

	doc      *swagger.Document
	resolver *ModelResolver

	// resolved records resource names already looked up, found or not.
	resolved map[string]bool
}

// assemble documents one route and method.
func (r *run) assemble(unit Unit) error {
	log := r.log.WithFields(logrus.Fields{
		"uri":    unit.URI,
		"method": unit.Method,
	})

	raw := unit.Descriptor.Comment
	if raw == "" && r.comments != nil {
		raw, _ = r.comments.Comment(unit.Descriptor.HandlerName)
	}

	meta, err := ExtractComment(r.parser, raw, r.cfg.ParseDocBlock)
	if err != nil {
		log.WithError(err).Warn("ignoring malformed handler comment")
		meta = CommentMetadata{}
	}

	resource := ResourceName(unit.URI, r.routeFilter, r.cfg.GuessTag)

	op := &swagger.Operation{
		Summary:     meta.Summary,
		Description: meta.Description,
		Deprecated:  meta.Deprecated,
		Responses:   r.responses(meta.Responses, unit.Method),
		Tags:        []string{resource},
	}

	if err := r.addModel(resource, log); err != nil {
		return err
	}

	params := PathParameterGenerator{URI: unit.OriginalURI}.Parameters()
	if src := ruleSource(unit.Descriptor); src != nil {
		if set := src.Rules(); len(set) > 0 {
			params = appendParameters(params, r.parameterGenerator(unit.Method, set).Parameters()...)
		}
	}
	if len(params) > 0 {
		op.Parameters = params
	}

	r.doc.Path(unit.URI).Set(unit.Method, op)
	log.Debug("route documented")
	return nil
}

// responses merges comment responses with the configured defaults. The
// first source to declare a status code wins.
func (r *run) responses(tags []ResponseTag, method string) *swagger.OrderedMap[*swagger.Response] {
	out := swagger.NewOrderedMap[*swagger.Response]()
	for _, tag := range tags {
		out.Set(tag.Code, &swagger.Response{Description: tag.Description})
	}

	merge := func(defaults config.Responses) {
		for _, code := range defaults.Codes() {
			out.SetIfAbsent(code, &swagger.Response{Description: defaults[code].Description})
		}
	}
	merge(r.cfg.BaseResponses)
	if isMutating(method) {
		merge(r.cfg.ModResponses)
	}
	return out
}

// addModel registers the definition of resource once per run.
func (r *run) addModel(resource string, log logrus.FieldLogger) error {
	if r.resolved[resource] {
		return nil
	}
	r.resolved[resource] = true

	schema, ok, err := r.resolver.Resolve(resource)
	if err != nil {
		return err
	}
	if !ok {
		log.WithField("model", r.cfg.ModelNamespace+resource).Debug("no model declared")
		return nil
	}
	r.doc.AddDefinition(resource, schema)
	return nil
}

func (r *run) parameterGenerator(method string, set rules.Set) ParameterGenerator {
	if hasBody(method) {
		return BodyParameterGenerator{Rules: set, Single: r.singleBody}
	}
	return QueryParameterGenerator{Rules: set}
}

// ruleSource returns the rules attached to a route, falling back to a
// handler that exposes its own.
func ruleSource(desc routes.Descriptor) rules.Source {
	if desc.Rules != nil {
		return desc.Rules
	}
	if src, ok := desc.Handler.(rules.Source); ok {
		return src
	}
	return nil
}

// hasBody reports whether rule-derived parameters of method go in the
// request body.
func hasBody(method string) bool {
	switch method {
	case "post", "put", "patch":
		return true
	}
	return false
}

// isMutating reports whether method receives the modified responses.
func isMutating(method string) bool {
	return hasBody(method) || method == "delete"
}
