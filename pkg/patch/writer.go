package patch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Ext is the extension of a patch document file.
const Ext = ".yaml"

// Encode serializes a patch as a YAML document with an explicit document
// start marker.
func Encode(p *Patch) ([]byte, error) {
	body, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch %q: %w", p.Name, err)
	}
	return append([]byte("---\n"), body...), nil
}

// Writer writes patch documents under a fixed directory. The output path is
// derived from the normalized patch name only; an existing file of the same
// name is overwritten.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir, creating it if necessary.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Path returns the output path for a patch name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name+Ext)
}

// Write serializes one patch to its derived path and returns that path.
func (w *Writer) Write(p *Patch) (string, error) {
	data, err := Encode(p)
	if err != nil {
		return "", err
	}
	path := w.Path(p.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write patch file: %w", err)
	}
	return path, nil
}
