package engine

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ThemeRegistry maps theme prefixes to their template loaders.
type ThemeRegistry map[string]*Theme

// Theme exposes the template listing capability for one installed theme.
type Theme struct {
	Prefix string
	Dir    string
}

// ListTemplates returns the relative paths of every template file under the
// theme directory, sorted lexically.
func (t *Theme) ListTemplates() ([]string, error) {
	var templates []string
	err := filepath.WalkDir(t.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(t.Dir, path)
		if err != nil {
			return err
		}
		templates = append(templates, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(templates)
	return templates, nil
}

// Names returns the registered theme prefixes in sorted order.
func (r ThemeRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterTemplates returns the templates whose names contain the filter
// substring, preserving input order. The match is case-sensitive and an
// empty filter keeps everything. The input slice is not modified.
func FilterTemplates(templates []string, filter string) []string {
	if filter == "" {
		return append([]string(nil), templates...)
	}
	var filtered []string
	for _, tmpl := range templates {
		if strings.Contains(tmpl, filter) {
			filtered = append(filtered, tmpl)
		}
	}
	return filtered
}
