package swagger

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// BuildFunc produces the document served by the handler.
type BuildFunc func() (*Document, error)

// HandlerConfig configures the endpoints registered by NewHandler.
type HandlerConfig struct {
	// BasePath is the prefix the endpoints are mounted under (default: "/docs").
	BasePath string

	// Title overrides the HTML page title (default: document info.title).
	Title string

	// JSONFilename is the path for the JSON document endpoint
	// (default: "swagger.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path, absolute paths
	// (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "swagger.yaml"). Set to "-" to disable.
	YAMLFilename string

	// DisableDocs disables the Swagger UI endpoint.
	DisableDocs bool

	// SwaggerUIConfig provides additional SwaggerUIBundle options, rendered
	// as JavaScript object properties alongside url and dom_id.
	SwaggerUIConfig map[string]any

	// Middleware wraps the whole handler, outermost first.
	Middleware []func(http.Handler) http.Handler
}

func (cfg HandlerConfig) basePath() string {
	if cfg.BasePath == "" {
		return "/docs"
	}
	return strings.TrimRight(cfg.BasePath, "/")
}

func (cfg HandlerConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "swagger.json"
	}
	return cfg.JSONFilename
}

func (cfg HandlerConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "swagger.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	if basePath == "" {
		return "/" + filename
	}
	return basePath + "/" + filename
}

// NewHandler returns an http.Handler serving the built document. Depending
// on config, the following paths are served:
//
//	<BasePath>/            - Swagger UI (unless DisableDocs)
//	<JSONFilename path>    - document as JSON (unless JSONFilename is "-")
//	<YAMLFilename path>    - document as YAML (unless YAMLFilename is "-")
//
// The document is built once, on the first request to each endpoint.
func NewHandler(build BuildFunc, cfg *HandlerConfig) http.Handler {
	if cfg == nil {
		cfg = &HandlerConfig{}
	}
	basePath := cfg.basePath()
	mux := http.NewServeMux()
	cache := &documentCache{build: build}

	var jsonPath, yamlPath string

	if file := cfg.jsonFilename(); file != "-" {
		jsonPath = resolvePath(basePath, file)
		mux.Handle(jsonPath, labelEndpoint(EndpointJSON, encodedHandler(cache, FormatJSON)))
	}

	if file := cfg.yamlFilename(); file != "-" {
		yamlPath = resolvePath(basePath, file)
		mux.Handle(yamlPath, labelEndpoint(EndpointYAML, encodedHandler(cache, FormatYAML)))
	}

	if !cfg.DisableDocs {
		specURL := jsonPath
		if specURL == "" {
			specURL = yamlPath
		}
		if specURL != "" {
			docs := labelEndpoint(EndpointDocs, docsHandler(cache, cfg, specURL))
			if basePath == "" {
				mux.Handle("/{$}", docs)
			} else {
				mux.Handle(basePath+"/{$}", docs)
				mux.Handle(basePath, docs)
			}
		}
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}
	return handler
}

// documentCache builds the document at most once.
type documentCache struct {
	build BuildFunc
	once  sync.Once
	doc   *Document
	err   error
}

func (c *documentCache) get() (*Document, error) {
	c.once.Do(func() {
		defer func() {
			if rv := recover(); rv != nil {
				c.err = fmt.Errorf("%v", rv)
			}
		}()
		c.doc, c.err = c.build()
	})
	return c.doc, c.err
}

func encodedHandler(cache *documentCache, format Format) http.Handler {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			doc, err := cache.get()
			if err != nil {
				buildErr = err
				return
			}
			data, buildErr = Marshal(doc, format)
		})
		if buildErr != nil {
			http.Error(w, "failed to build swagger document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

func docsHandler(cache *documentCache, cfg *HandlerConfig, specURL string) http.Handler {
	var (
		once sync.Once
		data []byte
	)
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			title := cfg.Title
			if title == "" {
				if doc, err := cache.get(); err == nil && doc != nil {
					title = doc.Info.Title
				}
			}
			data = []byte(swaggerUITemplate(title, specURL, cfg.SwaggerUIConfig))
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra string
	if len(config) > 0 {
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(config[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %s: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra)
}
