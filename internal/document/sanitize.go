package document

import (
	"regexp"
	"strings"
)

// maxNameLength caps sanitized names so every filesystem in common use
// accepts them.
const maxNameLength = 200

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	underscoreRuns   = regexp.MustCompile(`_+`)
)

// SanitizeName converts an arbitrary title into a name that is legal as a
// file or directory name on both Windows and Unix. Reserved characters and
// control characters become underscores, surrounding whitespace and dots are
// trimmed, runs of underscores collapse to a single one, and the result is
// capped at 200 characters.
func SanitizeName(title string) string {
	name := invalidNameChars.ReplaceAllString(title, "_")
	name = strings.TrimSpace(name)
	name = strings.Trim(name, ".")
	name = underscoreRuns.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}
	return name
}
