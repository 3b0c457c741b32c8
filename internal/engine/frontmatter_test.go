package engine

import (
	"strings"
	"testing"
)

func TestParseFrontmatterYAML(t *testing.T) {
	raw := []byte("---\ntitle: Hello\ntags:\n  - go\n---\nbody text\n")

	metadata, body, err := ParseFrontmatter(raw)
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if metadata["title"] != "Hello" {
		t.Errorf("title = %v, want Hello", metadata["title"])
	}
	if string(body) != "body text\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatterTOML(t *testing.T) {
	raw := []byte("+++\ntitle = \"Hello\"\ndraft = true\n+++\nbody\n")

	metadata, body, err := ParseFrontmatter(raw)
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if metadata["title"] != "Hello" {
		t.Errorf("title = %v, want Hello", metadata["title"])
	}
	if metadata["draft"] != true {
		t.Errorf("draft = %v, want true", metadata["draft"])
	}
	if string(body) != "body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatterNone(t *testing.T) {
	raw := []byte("just some markdown\n")

	metadata, body, err := ParseFrontmatter(raw)
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if metadata != nil {
		t.Errorf("metadata = %v, want nil", metadata)
	}
	if string(body) != string(raw) {
		t.Errorf("body = %q, want input unchanged", body)
	}
}

func TestParseFrontmatterUnclosed(t *testing.T) {
	raw := []byte("---\ntitle: Hello\nno closing delimiter\n")

	if _, _, err := ParseFrontmatter(raw); err == nil {
		t.Error("expected error for unclosed front-matter block")
	} else if !strings.Contains(err.Error(), "delimiter") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseFrontmatterEmptyBlock(t *testing.T) {
	metadata, body, err := ParseFrontmatter([]byte("---\n---\nbody\n"))
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if metadata == nil || len(metadata) != 0 {
		t.Errorf("metadata = %v, want empty map", metadata)
	}
	if string(body) != "body\n" {
		t.Errorf("body = %q", body)
	}
}
