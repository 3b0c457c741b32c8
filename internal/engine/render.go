package engine

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"go.abhg.dev/goldmark/toc"
)

// pageTemplateName is the template file Render looks for in the site's
// template directory before falling back to the built-in shell.
const pageTemplateName = "page.html"

// defaultPageTemplate is the minimal page shell used when the site has no
// template directory or no page.html inside it.
const defaultPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Content}}
</body>
</html>
`

// pageData is the data passed to the page template for each rendered entry.
type pageData struct {
	Title    string
	Content  template.HTML
	Metadata map[string]any
}

// Render builds the site: every collection entry is converted from Markdown
// to HTML under the output path, and static paths are copied verbatim.
func (s *Site) Render() error {
	if err := os.MkdirAll(s.outputPath, 0o755); err != nil {
		return fmt.Errorf("creating output folder: %w", err)
	}

	md := s.markdown()
	tmpl, err := s.pageTemplate()
	if err != nil {
		return err
	}

	routeNames := make([]string, 0, len(s.routes))
	for name := range s.routes {
		routeNames = append(routeNames, name)
	}
	sort.Strings(routeNames)

	for _, route := range routeNames {
		if err := s.renderCollection(route, s.routes[route], md, tmpl); err != nil {
			return err
		}
	}

	for _, staticPath := range s.staticPaths {
		if err := copyTree(staticPath, s.outputPath); err != nil {
			return fmt.Errorf("copying static path %s: %w", staticPath, err)
		}
	}

	return nil
}

// renderCollection renders every markdown entry in the collection's content
// path into outputPath/<route>/.
func (s *Site) renderCollection(route string, coll *Collection, md goldmark.Markdown, tmpl *template.Template) error {
	entries, err := os.ReadDir(coll.ContentPath)
	if err != nil {
		return fmt.Errorf("reading content for collection %q: %w", coll.Name, err)
	}

	outDir := filepath.Join(s.outputPath, route)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output folder for %q: %w", route, err)
	}

	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}
		src := filepath.Join(coll.ContentPath, de.Name())
		raw, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("reading entry %s: %w", src, err)
		}

		metadata, body, err := ParseFrontmatter(raw)
		if err != nil {
			return fmt.Errorf("entry %s: %w", src, err)
		}

		var buf bytes.Buffer
		if err := md.Convert(body, &buf); err != nil {
			return fmt.Errorf("rendering entry %s: %w", src, err)
		}

		title := ""
		if v, ok := metadata["title"].(string); ok {
			title = v
		}

		var page bytes.Buffer
		data := pageData{Title: title, Content: template.HTML(buf.String()), Metadata: metadata}
		if err := tmpl.Execute(&page, data); err != nil {
			return fmt.Errorf("templating entry %s: %w", src, err)
		}

		dst := filepath.Join(outDir, strings.TrimSuffix(de.Name(), ".md")+".html")
		if err := os.WriteFile(dst, page.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dst, err)
		}
	}

	return nil
}

// markdown builds the goldmark instance used for entry rendering.
func (s *Site) markdown() goldmark.Markdown {
	style := s.style
	if _, ok := styles.Registry[style]; !ok {
		style = "github"
	}
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
			&toc.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// pageTemplate loads page.html from the template path, falling back to the
// built-in shell when the site has none.
func (s *Site) pageTemplate() (*template.Template, error) {
	if s.templatePath != "" {
		path := filepath.Join(s.templatePath, pageTemplateName)
		if _, err := os.Stat(path); err == nil {
			tmpl, err := template.ParseFiles(path)
			if err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", path, err)
			}
			return tmpl, nil
		}
	}
	return template.Must(template.New(pageTemplateName).Parse(defaultPageTemplate)), nil
}

// copyTree copies all files under src into dst, preserving structure.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
