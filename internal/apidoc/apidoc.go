// Package apidoc holds the OpenAPI description of the HTTP API.
package apidoc

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var source []byte

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	return Parse(ctx, source)
}

// Parse reads an OpenAPI document given as JSON or YAML and validates it.
func Parse(ctx context.Context, content []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(content)
	if err != nil {
		var yamlData any
		if yamlErr := yaml.Unmarshal(content, &yamlData); yamlErr != nil {
			return nil, fmt.Errorf("failed to parse openapi document: %w", err)
		}
		jsonContent, jsonErr := json.Marshal(yamlData)
		if jsonErr != nil {
			return nil, fmt.Errorf("failed to convert yaml to json: %w", jsonErr)
		}
		doc, err = loader.LoadFromData(jsonContent)
		if err != nil {
			return nil, fmt.Errorf("failed to parse openapi document: %w", err)
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}
