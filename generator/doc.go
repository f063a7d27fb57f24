// Package generator builds Swagger 2.0 documents from a route table.
//
// Each route is expanded into one operation per documented method. The
// operation reconciles four sources of metadata:
//
//   - the route template, for path parameters;
//   - the handler doc comment, for summary, description, deprecation and
//     "@response <code> <description>" entries;
//   - the validation rules attached to the route or exposed by its handler,
//     for query parameters (GET, DELETE, ...) or body parameters (POST, PUT,
//     PATCH);
//   - the doc comment of the model named after the route's resource, whose
//     "@property <type> <name>" tags become a definition.
//
// Missing or malformed handler documentation never fails a run: the
// operation falls back to empty metadata and the configured responses.
// Model declarations are stricter; a property type with no Swagger
// equivalent aborts Generate unless WithLenientModels is set.
//
// Usage:
//
//	t := routes.New()
//	t.Get("/users/{user}", users.Show)
//	t.Post("/users", users.Store).Rules(rules.FromStruct(users.CreateRequest{}))
//
//	g := generator.New(cfg,
//	    generator.WithModels(generator.MapRegistry{
//	        "User": "@property string $name\n@property int $age",
//	    }),
//	)
//	doc, err := g.Generate(t.Descriptors())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := json.MarshalIndent(doc, "", "  ")
package generator
