// Package resolve turns raw command-line values, persisted defaults, and
// computed fallbacks into validated command invocations. Resolution happens
// in a single pass over the fully collected raw arguments, so fallbacks may
// consult sibling options (the filename fallback reads title and slug).
package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/render-engine/render-engine-cli/internal/cliconfig"
	"github.com/render-engine/render-engine-cli/internal/entry"
)

// Resolver resolves option values using the fixed precedence: explicit
// command-line value, persisted default, computed fallback, hard failure.
// Every resolution that fills in a missing value is echoed to Out so
// non-interactive runs stay auditable.
type Resolver struct {
	Config *cliconfig.Config
	Out    io.Writer

	// Now supplies the current time for the --include-date fallback.
	// Overridable in tests; nil means time.Now.
	Now func() time.Time
}

// RawEntryArgs carries the new-entry options exactly as supplied on the
// command line, before any resolution.
type RawEntryArgs struct {
	ModuleSite  string
	Collection  string
	Content     string
	ContentFile string
	Title       string
	Slug        string
	Filename    string
	Editor      string
	IncludeDate bool
	Args        []string
}

// EntryInvocation is a fully resolved, validated new-entry command.
type EntryInvocation struct {
	Module     string
	SiteName   string
	Collection string
	Filename   string
	Editor     Editor
	Spec       entry.Spec
}

// ModuleSite resolves the module:site reference from the raw flag value or
// the persisted config, validating the format either way.
func (r *Resolver) ModuleSite(raw string) (module, site string, err error) {
	if raw != "" {
		return SplitModuleSite(raw)
	}
	if ms := r.Config.ModuleSite(); ms != "" {
		module, site, err = SplitModuleSite(ms)
		if err != nil {
			return "", "", fmt.Errorf("persisted module-site: %w", err)
		}
		r.echo("module-site", ms)
		return module, site, nil
	}
	return "", "", errors.New("module-site must be specified in the form module:site")
}

// Collection resolves the collection name from the raw flag value or the
// persisted config.
func (r *Resolver) Collection(raw string) (string, error) {
	if raw != "" {
		return raw, nil
	}
	if r.Config.Collection != "" {
		r.echo("collection", r.Config.Collection)
		return r.Config.Collection, nil
	}
	return "", errors.New("collection must be specified")
}

// EntryArgs resolves and validates a complete new-entry invocation from the
// raw arguments. stdin backs the interactive content capture triggered by
// `--content-file -`. No resolution failure leaves partial side effects:
// the first error aborts before anything touches the site.
func (r *Resolver) EntryArgs(raw RawEntryArgs, stdin io.Reader) (*EntryInvocation, error) {
	module, siteName, err := r.ModuleSite(raw.ModuleSite)
	if err != nil {
		return nil, err
	}

	collection, err := r.Collection(raw.Collection)
	if err != nil {
		return nil, err
	}

	attrs, err := SplitArgs(raw.Args)
	if err != nil {
		return nil, err
	}

	// The formatter chokes on a title in its context, so the title is kept
	// aside and substituted into the generated text afterwards. The flag
	// wins over a title supplied through --args.
	title := raw.Title
	if argTitle, ok := attrs["title"]; ok {
		delete(attrs, "title")
		if title == "" {
			title = argTitle
		}
	}

	slug := raw.Slug
	if err := validateNoWhitespace("slug", slug); err != nil {
		return nil, err
	}
	if slug == "" && title != "" {
		slug = Slugify(title)
		r.echo("slug", slug)
	}

	filename := raw.Filename
	if err := validateNoWhitespace("filename", filename); err != nil {
		return nil, err
	}
	if filename == "" {
		base := title
		if base == "" {
			base = slug
		}
		if base == "" {
			return nil, errors.New("one of filename, title, or slug must be provided")
		}
		filename = Slugify(base) + ".md"
		r.echo("filename", filename)
	}

	var date time.Time
	hasDate := false
	if ds, ok := attrs["date"]; ok {
		delete(attrs, "date")
		date, err = dateparse.ParseAny(ds)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", ds)
		}
		hasDate = true
	} else if raw.IncludeDate {
		date = r.now()
		hasDate = true
	}

	content, err := r.resolveContent(raw.Content, raw.ContentFile, stdin)
	if err != nil {
		return nil, err
	}

	return &EntryInvocation{
		Module:     module,
		SiteName:   siteName,
		Collection: collection,
		Filename:   filename,
		Editor:     ParseEditor(raw.Editor),
		Spec: entry.Spec{
			Content:    content,
			Attributes: attrs,
			Title:      title,
			Slug:       slug,
			Date:       date,
			HasDate:    hasDate,
		},
	}, nil
}

// resolveContent enforces the content/content-file mutual exclusion and
// loads the content text from whichever source was given.
func (r *Resolver) resolveContent(content, contentFile string, stdin io.Reader) (string, error) {
	if content != "" && contentFile != "" {
		return "", errors.New("at most one of --content and --content-file may be provided")
	}
	if contentFile == "" {
		return content, nil
	}
	if contentFile == "-" {
		fmt.Fprintln(r.Out, "Enter the entry content; finish with a line containing only '.'")
		return readContentLines(stdin)
	}

	info, err := os.Stat(contentFile)
	if err != nil {
		return "", fmt.Errorf("content file %s does not exist", contentFile)
	}
	if info.IsDir() {
		return "", fmt.Errorf("content file %s is a directory", contentFile)
	}
	data, err := os.ReadFile(contentFile)
	if err != nil {
		return "", fmt.Errorf("reading content file: %w", err)
	}
	return string(data), nil
}

// readContentLines captures lines from in until one containing only ".".
func readContentLines(in io.Reader) (string, error) {
	sc := bufio.NewScanner(in)
	var b strings.Builder
	for sc.Scan() {
		line := sc.Text()
		if line == "." {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading content from stdin: %w", err)
	}
	return b.String(), nil
}

func (r *Resolver) echo(option, value string) {
	fmt.Fprintf(r.Out, "Setting %s to %s\n", option, value)
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// validateNoWhitespace rejects values containing any whitespace rune.
func validateNoWhitespace(option, value string) error {
	if strings.ContainsFunc(value, unicode.IsSpace) {
		return fmt.Errorf("whitespace is not allowed in %s", option)
	}
	return nil
}
