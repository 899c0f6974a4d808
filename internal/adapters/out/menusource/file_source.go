package menusource

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads a menu document from disk on every fetch, so edits are
// picked up on the next refresh. YAML and JSON are both accepted.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// decodeDocument parses YAML, a superset of JSON, into a JSON-shaped tree:
// maps keyed by strings, lists as []any.
func decodeDocument(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode menu: document is not an object")
	}
	return doc, nil
}
