// Package engine loads site definitions and exposes the surface the CLI
// needs from the render-engine library: rendering, route lists, theme
// registries, and collection entry creation.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultEntryTitle is the placeholder title CreateEntry writes when no
// title attribute is supplied. The CLI replaces it post hoc when the user
// provides a title, so the literal text must stay stable.
const defaultEntryTitle = "Untitled Entry"

// definition is the on-disk shape of a site definition document.
type definition struct {
	Sites map[string]siteDef `yaml:"sites"`
}

type siteDef struct {
	OutputPath     string                   `yaml:"output_path"`
	TemplatePath   string                   `yaml:"template_path"`
	StaticPaths    []string                 `yaml:"static_paths"`
	HighlightStyle string                   `yaml:"highlight_style"`
	Themes         map[string]string        `yaml:"themes"`
	Collections    map[string]collectionDef `yaml:"collections"`
}

type collectionDef struct {
	ContentPath string            `yaml:"content_path"`
	Metadata    map[string]string `yaml:"metadata"`
}

// Site is a loaded site definition. All paths are resolved relative to the
// directory containing the definition document.
type Site struct {
	name         string
	outputPath   string
	templatePath string
	staticPaths  []string
	style        string
	themes       ThemeRegistry
	routes       map[string]*Collection
}

// Collection is a named group of content entries sharing a content
// directory and a set of default front-matter attributes.
type Collection struct {
	Name        string
	ContentPath string
	metadata    map[string]string
}

// Load reads the site definition document at module (the extension may be
// omitted) and returns the site registered under the given name.
func Load(module, site string) (*Site, error) {
	path, err := resolveDefinitionPath(module)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site definition: %w", err)
	}

	var def definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parsing site definition %s: %w", path, err)
	}

	sd, ok := def.Sites[site]
	if !ok {
		return nil, fmt.Errorf("site %q is not defined in %s", site, path)
	}

	baseDir := filepath.Dir(path)
	s := &Site{
		name:         site,
		outputPath:   joinBase(baseDir, sd.OutputPath),
		templatePath: joinBase(baseDir, sd.TemplatePath),
		style:        sd.HighlightStyle,
		themes:       make(ThemeRegistry, len(sd.Themes)),
		routes:       make(map[string]*Collection, len(sd.Collections)),
	}
	if s.outputPath == "" {
		s.outputPath = filepath.Join(baseDir, "output")
	}

	for _, p := range sd.StaticPaths {
		if p != "" {
			s.staticPaths = append(s.staticPaths, joinBase(baseDir, p))
		}
	}

	for prefix, dir := range sd.Themes {
		s.themes[prefix] = &Theme{Prefix: prefix, Dir: joinBase(baseDir, dir)}
	}

	for route, cd := range sd.Collections {
		if cd.ContentPath == "" {
			return nil, fmt.Errorf("collection %q has no content_path", route)
		}
		s.routes[route] = &Collection{
			Name:        route,
			ContentPath: joinBase(baseDir, cd.ContentPath),
			metadata:    cd.Metadata,
		}
	}

	return s, nil
}

// resolveDefinitionPath locates the definition file for a module reference,
// trying the path as given and then with yaml extensions appended.
func resolveDefinitionPath(module string) (string, error) {
	candidates := []string{module}
	if filepath.Ext(module) == "" {
		candidates = append(candidates, module+".yaml", module+".yml")
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("no site definition found for module %q", module)
}

func joinBase(baseDir, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// Name returns the site's name from the definition document.
func (s *Site) Name() string { return s.name }

// OutputPath returns the directory the site renders into.
func (s *Site) OutputPath() string { return s.outputPath }

// TemplatePath returns the site's template directory, or "" if none is set.
func (s *Site) TemplatePath() string { return s.templatePath }

// StaticPaths returns the directories copied verbatim into the output.
func (s *Site) StaticPaths() []string { return s.staticPaths }

// RouteList returns the route name to collection mapping.
func (s *Site) RouteList() map[string]*Collection { return s.routes }

// Themes returns the prefix-keyed theme registry.
func (s *Site) Themes() ThemeRegistry { return s.themes }

// FindCollection looks up a collection by case-insensitive name match
// against the registered routes.
func (s *Site) FindCollection(name string) (*Collection, bool) {
	for _, coll := range s.routes {
		if strings.EqualFold(coll.Name, name) {
			return coll, true
		}
	}
	return nil, false
}

// ContentPaths returns every directory the site draws content from: each
// collection's content path, the static paths, and the template path.
// Empty entries are dropped.
func (s *Site) ContentPaths() []string {
	var paths []string
	routeNames := make([]string, 0, len(s.routes))
	for name := range s.routes {
		routeNames = append(routeNames, name)
	}
	sort.Strings(routeNames)
	for _, name := range routeNames {
		if p := s.routes[name].ContentPath; p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, s.staticPaths...)
	if s.templatePath != "" {
		paths = append(paths, s.templatePath)
	}
	return paths
}

// MetadataAttrs returns a copy of the collection's default front-matter
// attributes.
func (c *Collection) MetadataAttrs() map[string]string {
	attrs := make(map[string]string, len(c.metadata))
	for k, v := range c.metadata {
		attrs[k] = v
	}
	return attrs
}

// CreateEntry formats a new entry for the collection: a YAML front-matter
// block built from the given attributes followed by the content body.
// A placeholder title is added when the attributes carry none.
func (c *Collection) CreateEntry(content string, attrs map[string]any) (string, error) {
	merged := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	if _, ok := merged["title"]; !ok {
		merged["title"] = defaultEntryTitle
	}

	fm, err := yaml.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("formatting entry front-matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n")
	if content != "" {
		b.WriteString("\n")
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
