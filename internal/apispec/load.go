// Package apispec loads the static OpenAPI description of the OpenProject
// API from disk.
package apispec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultFileName is the spec file looked up one directory above the binary.
const DefaultFileName = "spec.yml"

// DefaultPath resolves the default spec location: spec.yml in the parent
// directory of the running binary.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), DefaultFileName), nil
}

// Load reads and parses the OpenAPI document at path. When path is empty the
// default location is used. A missing file and a malformed document are both
// fatal to startup, so the errors name the resolved path.
// Returns the parsed document and the number of top-level path entries.
func Load(path string) (*openapi3.T, int, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, 0, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("spec file not found: %s", path)
		}
		return nil, 0, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid OpenAPI spec %s: %w", path, err)
	}

	return doc, len(doc.Paths), nil
}

// Parse parses an OpenAPI YAML or JSON document from bytes.
func Parse(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}
	return doc, nil
}
