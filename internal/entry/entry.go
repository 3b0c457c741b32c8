// Package entry assembles the text of a new collection entry from resolved
// command arguments.
package entry

import (
	"strings"
	"time"
)

// titlePlaceholder is the exact front-matter line the underlying formatter
// emits for an untitled entry. Build swaps it for the resolved title as a
// literal post-processing step; if the formatter's placeholder ever changes,
// this constant must change with it.
const titlePlaceholder = "title: Untitled Entry"

// Collection is the slice of the site collection surface the builder needs.
type Collection interface {
	MetadataAttrs() map[string]string
	CreateEntry(content string, attrs map[string]any) (string, error)
}

// Spec describes one new entry. It is built once per invocation from the
// resolved arguments and consumed immediately by Build.
type Spec struct {
	Content    string
	Attributes map[string]string
	Title      string
	Slug       string
	Date       time.Time
	HasDate    bool
}

// Build produces the final entry text: the collection's default metadata
// merged with the spec's attributes (spec values win on collision), handed
// to the collection's entry formatter, with the placeholder title replaced
// by the resolved title afterwards.
func Build(spec Spec, coll Collection) (string, error) {
	merged := make(map[string]any)
	for k, v := range coll.MetadataAttrs() {
		merged[k] = v
	}
	for k, v := range spec.Attributes {
		merged[k] = v
	}
	if spec.Slug != "" {
		merged["slug"] = spec.Slug
	}
	if spec.HasDate {
		merged["date"] = spec.Date
	}
	// Title stays out of the formatter context; it is substituted for the
	// placeholder below instead.
	delete(merged, "title")

	text, err := coll.CreateEntry(spec.Content, merged)
	if err != nil {
		return "", err
	}

	if spec.Title != "" {
		text = strings.Replace(text, titlePlaceholder, "title: "+spec.Title, 1)
	}
	return text, nil
}
