package handlers

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pb33f/libopenapi"

	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
)

// APIVersion is the version published in the API document
const APIVersion = "0.1.0"

// GenerateOpenAPISpec builds the OpenAPI 3 document of the resource routes
// from the catalog and validates it with libopenapi
func GenerateOpenAPISpec(c *catalog.Catalog, baseURL string) ([]byte, error) {
	schemas := map[string]any{
		"ErrorResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"success": map[string]any{"type": "boolean", "example": false},
				"code":    map[string]any{"type": "string", "example": "QUERY_NOT_FOUND"},
				"error":   map[string]any{"type": "string"},
			},
			"required": []string{"success", "code", "error"},
		},
		"HealthResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string", "example": "API health check successful"},
			},
		},
	}

	paths := map[string]any{
		"/": map[string]any{
			"get": map[string]any{
				"summary":     "Health check",
				"operationId": "v0_health_check",
				"tags":        []string{"health"},
				"responses": map[string]any{
					"200": jsonResponse("API is up", refSchema("HealthResponse")),
				},
			},
		},
	}

	for _, def := range c.Resources() {
		schema, ok := c.Schema(def.Name)
		if !ok {
			return nil, fmt.Errorf("query '%s' has no record schema", def.Name)
		}
		schemas[schema.Name()] = objectSchema(schema)

		paths["/v0/"+def.Name+"/"] = map[string]any{
			"get": map[string]any{
				"summary":     def.Summary,
				"description": def.Description,
				"operationId": def.OperationID(),
				"tags":        []string{string(def.Group)},
				"parameters":  queryParameters(def),
				"responses": map[string]any{
					"200": jsonResponse("Successful response", map[string]any{
						"type":  "array",
						"items": refSchema(schema.Name()),
					}),
					"500": jsonResponse("Store or schema failure", refSchema("ErrorResponse")),
				},
			},
		}
	}

	schemas["Counts"] = objectSchema(reflect.TypeFor[domain.Counts]())
	paths["/v0/counts/"] = map[string]any{
		"get": map[string]any{
			"summary":     "Get entity counts",
			"description": "Returns the number of hotels, flights, customers, paying customers and event attendees.",
			"operationId": "v0_get_counts",
			"tags":        []string{string(domain.GroupCount)},
			"responses": map[string]any{
				"200": jsonResponse("Successful response", refSchema("Counts")),
				"500": jsonResponse("Store or schema failure", refSchema("ErrorResponse")),
			},
		},
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "WanderData Travel Analytics API",
			"version":     APIVersion,
			"description": "Read-only analytics over hotels, flights, bookings, payments, customers and events.",
		},
		"servers": []map[string]any{
			{"url": baseURL},
		},
		"tags":       tags(c),
		"paths":      paths,
		"components": map[string]any{"schemas": schemas},
	}

	specJSON, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec: %w", err)
	}

	document, err := libopenapi.NewDocument(specJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create libopenapi document: %w", err)
	}
	if _, err := document.BuildV3Model(); err != nil {
		return nil, fmt.Errorf("failed to build v3 model (validation error): %w", err)
	}

	return specJSON, nil
}

// OpenAPIHandler serves a pre-generated document
func OpenAPIHandler(specJSON []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(specJSON)
	}
}

func tags(c *catalog.Catalog) []map[string]any {
	out := []map[string]any{{"name": "health"}}
	for _, g := range c.Groups() {
		out = append(out, map[string]any{"name": string(g)})
	}
	return out
}

func queryParameters(def *domain.QueryDefinition) []map[string]any {
	params := make([]map[string]any, 0, len(def.Params))
	for _, p := range def.Params {
		description := p.Description
		if len(p.Allowed) > 0 {
			description = strings.TrimSpace(fmt.Sprintf("%s Recognized values: %s.", description, strings.Join(p.Allowed, ", ")))
		}
		params = append(params, map[string]any{
			"name":        p.Name,
			"in":          "query",
			"required":    false,
			"description": description,
			"schema": map[string]any{
				"type":    "string",
				"default": p.Default,
			},
		})
	}
	return params
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func refSchema(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

// objectSchema describes a record struct through its json tags. Pointer
// fields are nullable.
func objectSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any, t.NumField())
	required := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		ft := f.Type
		prop := map[string]any{}
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
			prop["nullable"] = true
		} else {
			required = append(required, name)
		}
		prop["type"] = openAPIType(ft.Kind())
		if f.Tag.Get("col") == "date" {
			prop["format"] = "date"
		}
		properties[name] = prop
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func openAPIType(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return "string"
	}
}
