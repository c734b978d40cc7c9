package artifact

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Suffix is appended to every derived artifact name.
const Suffix = "_Career_Report.pdf"

const maxNameBytes = 200

// NameFor derives the artifact name for a student's display name.
// Spaces and characters outside letters, digits, '-', '_' and '.' become '_'.
func NameFor(studentName string) string {
	trimmed := strings.TrimSpace(studentName)
	var b strings.Builder
	for _, r := range trimmed {
		if allowedRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	base := b.String()
	// Collapse dot runs so the name can never contain "..".
	for strings.Contains(base, "..") {
		base = strings.ReplaceAll(base, "..", "_")
	}
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "Student"
	}
	for len(base)+len(Suffix) > maxNameBytes {
		_, size := utf8.DecodeLastRuneInString(base)
		base = base[:len(base)-size]
	}
	return base + Suffix
}

// ValidateName checks an artifact id against the naming rule.
func ValidateName(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(id) > maxNameBytes:
		return fmt.Errorf("%w: too long", ErrInvalidName)
	case !utf8.ValidString(id):
		return fmt.Errorf("%w: not utf-8", ErrInvalidName)
	case strings.Contains(id, ".."):
		return fmt.Errorf("%w: traversal", ErrInvalidName)
	case strings.HasPrefix(id, "."):
		return fmt.Errorf("%w: hidden name", ErrInvalidName)
	}
	for _, r := range id {
		if !allowedRune(r) {
			return fmt.Errorf("%w: character %q", ErrInvalidName, r)
		}
	}
	return nil
}

func allowedRune(r rune) bool {
	if r == '-' || r == '_' || r == '.' {
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
