package resolve

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/render-engine/render-engine-cli/internal/cliconfig"
)

var fixedTime = time.Date(2025, 5, 23, 10, 30, 0, 0, time.UTC)

func newTestResolver(cfg *cliconfig.Config) (*Resolver, *bytes.Buffer) {
	if cfg == nil {
		cfg = &cliconfig.Config{}
	}
	out := new(bytes.Buffer)
	return &Resolver{Config: cfg, Out: out, Now: func() time.Time { return fixedTime }}, out
}

func TestModuleSiteFromFlag(t *testing.T) {
	r, _ := newTestResolver(nil)
	module, site, err := r.ModuleSite("app:site")
	if err != nil {
		t.Fatalf("ModuleSite: %v", err)
	}
	if module != "app" || site != "site" {
		t.Errorf("got %q, %q; want app, site", module, site)
	}
}

func TestModuleSiteFromConfig(t *testing.T) {
	r, out := newTestResolver(&cliconfig.Config{Module: "app", Site: "production"})
	module, site, err := r.ModuleSite("")
	if err != nil {
		t.Fatalf("ModuleSite: %v", err)
	}
	if module != "app" || site != "production" {
		t.Errorf("got %q, %q; want app, production", module, site)
	}
	if !strings.Contains(out.String(), "Setting module-site to app:production") {
		t.Errorf("expected resolution echo, got %q", out.String())
	}
}

func TestModuleSiteMissing(t *testing.T) {
	r, _ := newTestResolver(nil)
	if _, _, err := r.ModuleSite(""); err == nil {
		t.Error("expected error when module-site is absent everywhere")
	}
}

func TestCollectionFallback(t *testing.T) {
	r, _ := newTestResolver(&cliconfig.Config{Collection: "blog"})
	got, err := r.Collection("")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if got != "blog" {
		t.Errorf("got %q, want blog", got)
	}

	r, _ = newTestResolver(nil)
	if _, err := r.Collection(""); err == nil {
		t.Error("expected error when collection is absent everywhere")
	}
}

// ---------------------------------------------------------------------------
// EntryArgs
// ---------------------------------------------------------------------------

func baseRaw() RawEntryArgs {
	return RawEntryArgs{
		ModuleSite: "app:site",
		Collection: "blog",
		Filename:   "test.md",
		Content:    "content",
	}
}

func TestEntryArgsFilenameFromTitle(t *testing.T) {
	raw := baseRaw()
	raw.Filename = ""
	raw.Title = "My Title"

	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, nil)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if inv.Filename != "my-title.md" {
		t.Errorf("filename = %q, want my-title.md", inv.Filename)
	}
	if strings.ContainsAny(inv.Filename, " \t") {
		t.Errorf("filename %q contains whitespace", inv.Filename)
	}
	if inv.Spec.Slug != "my-title" {
		t.Errorf("slug = %q, want my-title", inv.Spec.Slug)
	}
}

func TestEntryArgsFilenameFromSlug(t *testing.T) {
	raw := baseRaw()
	raw.Filename = ""
	raw.Slug = "custom-slug"

	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, nil)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if inv.Filename != "custom-slug.md" {
		t.Errorf("filename = %q, want custom-slug.md", inv.Filename)
	}
}

func TestEntryArgsFilenameRequired(t *testing.T) {
	raw := baseRaw()
	raw.Filename = ""

	r, _ := newTestResolver(nil)
	if _, err := r.EntryArgs(raw, nil); err == nil {
		t.Error("expected error when filename, title, and slug are all absent")
	}
}

func TestEntryArgsWhitespaceRejected(t *testing.T) {
	for _, field := range []string{"filename", "slug"} {
		raw := baseRaw()
		if field == "filename" {
			raw.Filename = "has space.md"
		} else {
			raw.Slug = "has space"
		}
		r, _ := newTestResolver(nil)
		if _, err := r.EntryArgs(raw, nil); err == nil {
			t.Errorf("expected whitespace error for %s", field)
		}
	}
}

func TestEntryArgsTitleFlagWinsOverArgs(t *testing.T) {
	raw := baseRaw()
	raw.Title = "Flag Title"
	raw.Args = []string{"title=Args Title"}

	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, nil)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if inv.Spec.Title != "Flag Title" {
		t.Errorf("title = %q, want Flag Title", inv.Spec.Title)
	}
	if _, ok := inv.Spec.Attributes["title"]; ok {
		t.Error("title must not remain in the attributes map")
	}
}

func TestEntryArgsDateFromArgs(t *testing.T) {
	raw := baseRaw()
	raw.Args = []string{"date=2025-05-23"}

	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, nil)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if !inv.Spec.HasDate {
		t.Fatal("expected HasDate to be set")
	}
	if inv.Spec.Date.Year() != 2025 || inv.Spec.Date.Month() != time.May || inv.Spec.Date.Day() != 23 {
		t.Errorf("date = %v, want 2025-05-23", inv.Spec.Date)
	}
	if _, ok := inv.Spec.Attributes["date"]; ok {
		t.Error("date must not remain in the attributes map")
	}
}

func TestEntryArgsInvalidDate(t *testing.T) {
	raw := baseRaw()
	raw.Args = []string{"date=not a date"}

	r, _ := newTestResolver(nil)
	if _, err := r.EntryArgs(raw, nil); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestEntryArgsIncludeDate(t *testing.T) {
	raw := baseRaw()
	raw.IncludeDate = true

	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, nil)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if !inv.Spec.HasDate || !inv.Spec.Date.Equal(fixedTime) {
		t.Errorf("date = %v (has=%v), want %v", inv.Spec.Date, inv.Spec.HasDate, fixedTime)
	}
}

func TestEntryArgsContentMutualExclusion(t *testing.T) {
	raw := baseRaw()
	raw.Content = "inline"
	raw.ContentFile = "somewhere.txt"

	r, _ := newTestResolver(nil)
	if _, err := r.EntryArgs(raw, nil); err == nil {
		t.Error("expected error when both --content and --content-file are given")
	}
}

func TestEntryArgsContentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.txt")
	if err := os.WriteFile(path, []byte("file content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	raw := baseRaw()
	raw.Content = ""
	raw.ContentFile = path

	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, nil)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if inv.Spec.Content != "file content\n" {
		t.Errorf("content = %q", inv.Spec.Content)
	}
}

func TestEntryArgsContentFileMissing(t *testing.T) {
	raw := baseRaw()
	raw.Content = ""
	raw.ContentFile = filepath.Join(t.TempDir(), "missing.txt")

	r, _ := newTestResolver(nil)
	if _, err := r.EntryArgs(raw, nil); err == nil {
		t.Error("expected error for missing content file")
	}
}

func TestEntryArgsContentFileDirectory(t *testing.T) {
	raw := baseRaw()
	raw.Content = ""
	raw.ContentFile = t.TempDir()

	r, _ := newTestResolver(nil)
	if _, err := r.EntryArgs(raw, nil); err == nil {
		t.Error("expected error for directory content file")
	}
}

func TestEntryArgsContentFromStdin(t *testing.T) {
	raw := baseRaw()
	raw.Content = ""
	raw.ContentFile = "-"

	stdin := strings.NewReader("line one\nline two\n.\nignored\n")
	r, _ := newTestResolver(nil)
	inv, err := r.EntryArgs(raw, stdin)
	if err != nil {
		t.Fatalf("EntryArgs: %v", err)
	}
	if inv.Spec.Content != "line one\nline two\n" {
		t.Errorf("content = %q", inv.Spec.Content)
	}
}

// ---------------------------------------------------------------------------
// Editor
// ---------------------------------------------------------------------------

func TestParseEditor(t *testing.T) {
	tests := []struct {
		raw  string
		mode EditorMode
	}{
		{"default", EditorDefault},
		{"DEFAULT", EditorDefault},
		{"", EditorDefault},
		{"none", EditorNone},
		{"None", EditorNone},
		{"vim", EditorExplicit},
		{"code", EditorExplicit},
	}
	for _, tc := range tests {
		got := ParseEditor(tc.raw)
		if got.Mode != tc.mode {
			t.Errorf("ParseEditor(%q).Mode = %v, want %v", tc.raw, got.Mode, tc.mode)
		}
	}
}

func TestEditorResolve(t *testing.T) {
	cfg := &cliconfig.Config{Editor: "vim"}

	if got := ParseEditor("default").Resolve(cfg); got != "vim" {
		t.Errorf("default: got %q, want vim", got)
	}
	if got := ParseEditor("none").Resolve(cfg); got != "" {
		t.Errorf("none: got %q, want empty", got)
	}
	if got := ParseEditor("emacs").Resolve(cfg); got != "emacs" {
		t.Errorf("explicit: got %q, want emacs", got)
	}
}
