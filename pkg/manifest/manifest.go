package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by [Manifest.Lookup] when a segment does not
	// name an object key.
	ErrNotFound = errors.New("manifest: no images found at path")

	// ErrInvalid is returned when the manifest root is not a JSON object.
	ErrInvalid = errors.New("manifest: invalid or missing image manifest")
)

// FileName is the conventional manifest file name inside the images root.
const FileName = "image-manifest.json"

// Manifest is a parsed image manifest.
type Manifest struct {
	root map[string]any
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalid
	}
	return &Manifest{root: root}, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Root returns the whole manifest.
func (m *Manifest) Root() map[string]any {
	if m == nil {
		return nil
	}
	return m.root
}

// Lookup returns the sub-tree addressed by segments. No segments returns the
// root. Arrays cannot be descended into.
func (m *Manifest) Lookup(segments []string) (any, error) {
	if m == nil || m.root == nil {
		return nil, ErrInvalid
	}
	var current any = m.root
	for _, seg := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(segments, "/"))
		}
		next, ok := obj[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(segments, "/"))
		}
		current = next
	}
	return current, nil
}

// MarshalJSON encodes the manifest root.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Root())
}

// Scan builds a manifest from fsys. Every top-level directory becomes a root
// key; top-level files and dotfiles anywhere are ignored.
func Scan(fsys fs.FS) (*Manifest, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	root := make(map[string]any)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := scanDir(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		root[e.Name()] = v
	}
	return &Manifest{root: root}, nil
}

func scanDir(fsys fs.FS, dir string) (any, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	files := []any{}
	var dirs []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			dirs = append(dirs, e.Name())
		case e.Type().IsRegular() && !strings.HasPrefix(e.Name(), "."):
			files = append(files, e.Name())
		}
	}
	if len(dirs) == 0 {
		return files, nil
	}

	out := make(map[string]any, len(dirs)+1)
	if len(files) > 0 {
		out[""] = files
	}
	sort.Strings(dirs)
	for _, d := range dirs {
		v, err := scanDir(fsys, path.Join(dir, d))
		if err != nil {
			return nil, err
		}
		out[d] = v
	}
	return out, nil
}

// Write stores the manifest as indented JSON at path.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m.Root(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
