package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReadDocument reads a JSON or YAML document into a generic map, picking the codec by extension
func ReadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ExtJSON:
		return ParseJSONDocument(data)
	case ExtYAML, ".yml":
		return ParseYAMLDocument(data)
	}
	return nil, fmt.Errorf("unsupported document type: %s", path)
}

// ParseJSONDocument decodes a JSON object
func ParseJSONDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parsing JSON: document is not an object")
	}
	return doc, nil
}

// ParseYAMLDocument decodes a YAML mapping
func ParseYAMLDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parsing YAML: document is empty")
	}
	return normalize(doc).(map[string]any), nil
}

// normalize converts any map[any]any left by the YAML decoder (non-string keys) into map[string]any
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	}
	return v
}
