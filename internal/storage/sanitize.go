package storage

import "strings"

// Sanitize removes characters that are invalid in filenames on common
// filesystems, strips trailing periods and trims surrounding whitespace.
// It never fails; the result may be empty. Sanitize is idempotent.
func Sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return -1
		}
		return r
	}, name)

	// Trimming whitespace can expose new trailing periods ("a. " -> "a."),
	// so repeat until stable.
	for {
		next := strings.TrimSpace(strings.TrimRight(cleaned, "."))
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}
