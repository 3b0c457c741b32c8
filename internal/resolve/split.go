package resolve

import (
	"fmt"
	"strings"
)

// SplitModuleSite splits a "module:site" reference into its two halves.
// The reference must contain exactly one colon separating two non-empty
// parts.
func SplitModuleSite(moduleSite string) (module, site string, err error) {
	if strings.Count(moduleSite, ":") != 1 {
		return "", "", fmt.Errorf("module-site must be in the form module:site (got %q)", moduleSite)
	}
	module, site, _ = strings.Cut(moduleSite, ":")
	if module == "" || site == "" {
		return "", "", fmt.Errorf("module-site must be in the form module:site (got %q)", moduleSite)
	}
	return module, site, nil
}

// SplitArgs parses repeated --args values into a key/value map. Each value
// is split at its first '=' or ':', both halves are trimmed, and redefining
// a key is an error.
func SplitArgs(args []string) (map[string]string, error) {
	attrs := make(map[string]string, len(args))
	for _, arg := range args {
		idx := strings.IndexAny(arg, "=:")
		if idx < 0 {
			return nil, fmt.Errorf("invalid argument %q: the key and value must be separated by an = or a :", arg)
		}
		key := strings.TrimSpace(arg[:idx])
		value := strings.TrimSpace(arg[idx+1:])
		if _, dup := attrs[key]; dup {
			return nil, fmt.Errorf("key %q is already defined", key)
		}
		attrs[key] = value
	}
	return attrs, nil
}
