package resolve

import (
	"strings"

	"github.com/render-engine/render-engine-cli/internal/cliconfig"
)

// EditorMode classifies the --editor flag value.
type EditorMode int

const (
	// EditorDefault defers to the persisted editor (or $EDITOR).
	EditorDefault EditorMode = iota
	// EditorNone suppresses the editor launch entirely.
	EditorNone
	// EditorExplicit names an editor executable directly.
	EditorExplicit
)

// Editor is the resolved editor choice. The free-text flag value is
// classified exactly once here instead of being re-interpreted downstream.
type Editor struct {
	Mode    EditorMode
	Command string
}

// ParseEditor classifies the raw --editor value. "default" and "none" are
// matched case-insensitively; anything else is taken as an executable name.
func ParseEditor(raw string) Editor {
	switch strings.ToLower(raw) {
	case "", "default":
		return Editor{Mode: EditorDefault}
	case "none":
		return Editor{Mode: EditorNone}
	default:
		return Editor{Mode: EditorExplicit, Command: raw}
	}
}

// Resolve returns the editor executable to launch, or "" when no editor
// should run.
func (e Editor) Resolve(cfg *cliconfig.Config) string {
	switch e.Mode {
	case EditorNone:
		return ""
	case EditorExplicit:
		return e.Command
	default:
		return cfg.Editor
	}
}
