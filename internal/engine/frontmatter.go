package engine

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Front-matter delimiters.
var (
	yamlDelimiter = []byte("---")
	tomlDelimiter = []byte("+++")
)

// ParseFrontmatter detects and parses front-matter from raw entry bytes.
// YAML blocks use --- delimiters, TOML blocks use +++ delimiters.
// It returns the parsed metadata and the remaining body. When no delimiters
// are present the full input is returned as body with nil metadata.
func ParseFrontmatter(raw []byte) (metadata map[string]any, body []byte, err error) {
	trimmed := bytes.TrimLeft(raw, " \t\n\r")

	var delimiter []byte
	isYAML := true
	switch {
	case bytes.HasPrefix(trimmed, yamlDelimiter):
		delimiter = yamlDelimiter
	case bytes.HasPrefix(trimmed, tomlDelimiter):
		delimiter = tomlDelimiter
		isYAML = false
	default:
		return nil, raw, nil
	}

	rest := trimmed[len(delimiter):]
	nlIdx := bytes.IndexByte(rest, '\n')
	if nlIdx == -1 {
		// Opening delimiter with no closing one.
		return nil, raw, nil
	}
	rest = rest[nlIdx+1:]

	block, after, ok := bytes.Cut(rest, delimiter)
	if !ok {
		return nil, raw, fmt.Errorf("closing front-matter delimiter %q not found", string(delimiter))
	}

	if nlIdx = bytes.IndexByte(after, '\n'); nlIdx == -1 {
		body = nil
	} else {
		body = after[nlIdx+1:]
	}

	if len(bytes.TrimSpace(block)) == 0 {
		return make(map[string]any), body, nil
	}

	metadata = make(map[string]any)
	if isYAML {
		if err := yaml.Unmarshal(block, &metadata); err != nil {
			return nil, nil, fmt.Errorf("parsing YAML front-matter: %w", err)
		}
	} else {
		if err := toml.Unmarshal(block, &metadata); err != nil {
			return nil, nil, fmt.Errorf("parsing TOML front-matter: %w", err)
		}
	}

	return metadata, body, nil
}
