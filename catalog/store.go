package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// ErrNotFound is returned when catalog lookup fails.
var ErrNotFound = errors.New("not found in catalog")

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Load reads catalog from YAML (or JSON) document or from SQLite database,
// depending on file extension, and validates it. Any error here is fatal for
// assembly.
func Load(path string) (*Catalog, error) {
	var (
		cat *Catalog
		err error
	)
	if isDatabase(path) {
		cat, err = loadDatabase(path)
	} else {
		cat, err = loadDocument(path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load catalog '%s': %w", path, err)
	}
	if err := Validate(cat); err != nil {
		return nil, fmt.Errorf("catalog '%s' is invalid: %w", path, err)
	}
	return cat, nil
}

// Save writes catalog in the format selected by path extension.
func Save(cat *Catalog, path string) error {
	if isDatabase(path) {
		if err := saveDatabase(cat, path); err != nil {
			return fmt.Errorf("unable to save catalog '%s': %w", path, err)
		}
		return nil
	}

	buf := new(bytes.Buffer)
	if err := Encode(buf, cat); err != nil {
		return fmt.Errorf("unable to save catalog '%s': %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to save catalog '%s': %w", path, err)
	}
	return nil
}

func loadDocument(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads catalog document. Unknown fields are rejected.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cat := &Catalog{}
	if err := dec.Decode(cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	cat.link()
	return cat, nil
}

// Encode writes catalog document.
func Encode(w io.Writer, cat *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}
