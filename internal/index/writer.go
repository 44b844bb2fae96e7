// Package index writes generated documents into the per-language output tree.
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists documents below <root>/<lang>/.
type Writer struct {
	dir string
}

// NewWriter returns a writer for one language.
func NewWriter(root, lang string) *Writer {
	return &Writer{dir: filepath.Join(root, lang)}
}

// Dir returns the language directory documents are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the file path of a document name such as "messages/1001".
func (w *Writer) Path(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(w.dir, filepath.FromSlash(name))
}

// Reset removes a previously generated document and, when present, the
// directory of the same name ("messages.json" and "messages/").
func (w *Writer) Reset(name string) error {
	name = strings.TrimSuffix(name, ".json")
	if err := os.RemoveAll(filepath.Join(w.dir, filepath.FromSlash(name))); err != nil {
		return fmt.Errorf("index: reset %s: %w", name, err)
	}
	if err := os.Remove(w.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("index: reset %s: %w", name, err)
	}
	return nil
}

// Encode renders v the way Write stores it: two-space indented JSON with a
// trailing newline and no HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores v under name, creating parent directories. The file is
// written to a temporary sibling first and renamed into place.
func (w *Writer) Write(name string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("index: encode %s: %w", name, err)
	}
	path := w.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("index: mkdir for %s: %w", name, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("index: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("index: write %s: %w", name, err)
	}
	return nil
}
