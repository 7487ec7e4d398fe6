// Package modeldef loads declarative document-store model definitions.
//
// A definition is a YAML or JSON file describing one collection:
//
//	collection: users
//	fields:
//	  - name: email
//	    type: string
//	  - name: role
//	    type: string
//	    enum: [admin, member]
//
// Definitions are read as data. Script-based model files (.js, .ts) are
// recognized and rejected with UnsupportedFormatError.
package modeldef

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	dataExtensions   = []string{".yaml", ".yml", ".json"}
	scriptExtensions = []string{".js", ".ts"}

	validate = validator.New()
)

// ErrNotFound means no definition exists for the collection.
var ErrNotFound = errors.New("model definition not found")

// ErrInvalidName rejects collection names that would escape the model directory.
var ErrInvalidName = errors.New("invalid collection name")

type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported model definition format: %s (use .yaml, .yml or .json)", e.Path)
}

type Field struct {
	Name string   `yaml:"name" json:"name" validate:"required"`
	Type string   `yaml:"type" json:"type"`
	Enum []string `yaml:"enum,omitempty" json:"enum,omitempty"`
}

type Model struct {
	Collection string  `yaml:"collection" json:"collection"`
	Fields     []Field `yaml:"fields" json:"fields" validate:"required,min=1,dive"`
}

// Columns converts the definition into column metadata. _id is always a
// primary key and is added when the definition omits it.
func (m *Model) Columns() []types.Column {
	cols := make([]types.Column, 0, len(m.Fields)+1)
	hasID := false
	for _, f := range m.Fields {
		typ := strings.ToLower(f.Type)
		if typ == "" {
			typ = "mixed"
		}
		col := types.Column{Name: f.Name, Type: typ, PK: f.Name == "_id"}
		if len(f.Enum) > 0 {
			col.EnumValues = append([]string(nil), f.Enum...)
		}
		if col.PK {
			hasID = true
		}
		cols = append(cols, col)
	}
	if !hasID {
		cols = append([]types.Column{{Name: "_id", Type: "objectid", PK: true}}, cols...)
	}
	return cols
}

func (m *Model) Matches(collection string) bool {
	return m.Collection == "" || m.Collection == collection
}

type Loader struct {
	fs afero.Fs
}

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// LoadDir resolves <dir>/<collection>.<ext> and parses it.
func (l *Loader) LoadDir(dir, collection string) (*Model, error) {
	if collection == "" || strings.ContainsAny(collection, `/\`) || strings.Contains(collection, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, collection)
	}
	for _, ext := range dataExtensions {
		path := filepath.Join(dir, collection+ext)
		if ok, _ := afero.Exists(l.fs, path); ok {
			m, err := l.LoadFile(path)
			if err != nil {
				return nil, err
			}
			if m.Collection == "" {
				m.Collection = collection
			}
			return m, nil
		}
	}
	for _, ext := range scriptExtensions {
		path := filepath.Join(dir, collection+ext)
		if ok, _ := afero.Exists(l.fs, path); ok {
			return nil, &UnsupportedFormatError{Path: path}
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, collection, dir)
}

func (l *Loader) LoadFile(path string) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !contains(dataExtensions, ext) {
		return nil, &UnsupportedFormatError{Path: path}
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model definition %s: %w", path, err)
	}

	// JSON is a subset of YAML, one decoder serves both.
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model definition %s: %w", path, err)
	}
	if err := validate.Struct(m); err != nil {
		return nil, fmt.Errorf("invalid model definition %s: %w", path, err)
	}
	return &m, nil
}

// ListCollections names every collection defined in dir, sorted.
func (l *Loader) ListCollections(dir string) ([]string, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read model directory %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !contains(dataExtensions, ext) && !contains(scriptExtensions, ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
