package formbind

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes a YAML document into the plain snapshot shape:
// nested map[string]any and []any.
func ParseYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	return normalize(v), nil
}

// EncodeYAML renders a snapshot as YAML.
func EncodeYAML(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// LoadFile reads a YAML form file into a snapshot.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load form %q: %w", path, err)
	}
	v, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load form %q: %w", path, err)
	}
	return v, nil
}

// normalize rewrites any-keyed mappings to string keys so every decoder
// output fits the snapshot shape.
func normalize(v any) any {
	switch c := v.(type) {
	case map[string]any:
		for k, x := range c {
			c[k] = normalize(x)
		}
		return c
	case map[any]any:
		m := make(map[string]any, len(c))
		for k, x := range c {
			m[fmt.Sprint(k)] = normalize(x)
		}
		return m
	case []any:
		for i, x := range c {
			c[i] = normalize(x)
		}
		return c
	}
	return v
}
