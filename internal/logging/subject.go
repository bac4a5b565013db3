package logging

import "strings"

// FormatSubject builds the kind/item subject string used in console output,
// e.g. "Videos · house_price.mp4".
func FormatSubject(kind, item string) string {
	kind = strings.TrimSpace(kind)
	item = strings.TrimSpace(item)
	parts := make([]string, 0, 2)
	if kind != "" {
		parts = append(parts, strings.ToUpper(kind[:1])+strings.ToLower(kind[1:]))
	}
	if item != "" {
		parts = append(parts, item)
	}
	return strings.Join(parts, " · ")
}
