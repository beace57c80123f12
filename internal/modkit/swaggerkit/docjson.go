//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"exhume/internal/platform/config"

	docs "exhume/internal/services/api/docs"
)

// SpecMutator adjusts the parsed swagger document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a seam so tests can feed the handler arbitrary JSON
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register queues a mutator for the served spec.
// Modules call this from init so wiring follows imports
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON parses the generated spec, applies the standard touch ups
// and any registered mutators, then writes the result
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalizeVersion(spec)
		ensureServers(spec, "/api/v1")

		cfg := config.New().Prefix("EXHUME_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorSchema(spec)
		injectDefaultResponse(spec, "500", errorResponse(
			"Internal Server Error", 500, 1, "panic recovered",
		))
		injectDefaultResponse(spec, "400", errorResponse(
			"Bad Request", 400, 5, "conversation_uid must look like group-block, e.g. APD10021-3",
		))

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeVersion lifts swagger 2 documents to OAS3 and pins 3.1 back to
// 3.0.3, which is the newest version the bundled UI renders
func normalizeVersion(spec map[string]any) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
		return
	}
	v, ok := spec["openapi"].(string)
	switch {
	case !ok:
		spec["openapi"] = "3.0.3"
	case strings.HasPrefix(v, "3.1"):
		spec["openapi"] = "3.0.3"
	}
}

// ensureServers fills the OAS3 servers array when the generator left it out
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorSchema adds the error envelope model when the spec lacks one.
// The shape mirrors what the runtime actually writes
func ensureErrorSchema(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// errorResponse builds an OAS3 response node referencing ErrorResponse
func errorResponse(status string, statusCode, code int, example string) map[string]any {
	return map[string]any{
		"description": status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": statusCode,
					"status":      status,
					"code":        code,
					"error":       example,
					"request_id":  "9c4b12de77aa/abc-000001",
				},
			},
		},
	}
}

// injectDefaultResponse walks every operation and adds resp under code
// unless the operation already documents that code
func injectDefaultResponse(spec map[string]any, code string, resp map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[code]; !exists {
				responses[code] = resp
			}
		}
	}
}
