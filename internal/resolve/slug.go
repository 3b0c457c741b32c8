package resolve

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// Slugify converts a title string into a URL-friendly slug. It lowercases
// the input, replaces spaces and underscores with hyphens, strips characters
// that are not letters, digits, or hyphens, collapses runs of hyphens, and
// trims leading/trailing hyphens. Unicode letters are preserved.
func Slugify(title string) string {
	s := norm.NFC.String(title)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var buf strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			buf.WriteRune(r)
		}
	}
	s = buf.String()

	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
