// Package swagger holds the Swagger 2.0 document model produced by the
// generator, together with an HTTP handler that serves a built document.
//
// Maps that end up as JSON or YAML objects (paths, operations per path,
// responses, definitions, schema properties) are OrderedMap values, so the
// serialized document follows route enumeration order and two builds over
// the same input are byte-for-byte identical.
//
// Serve a document next to an application:
//
//	h := swagger.NewHandler(func() (*swagger.Document, error) {
//	    return gen.Generate(table.Descriptors())
//	}, &swagger.HandlerConfig{
//	    BasePath: "/docs",
//	    Middleware: []func(http.Handler) http.Handler{
//	        swagger.RequestIDMiddleware(swagger.RequestIDConfig{}),
//	        swagger.RecoveryMiddleware(logrus.StandardLogger()),
//	    },
//	})
//	http.Handle("/docs/", h)
//
// See: https://swagger.io/specification/v2/
package swagger
