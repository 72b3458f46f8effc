package forms

import "strings"

// ParseList turns a human-edited comma-separated string into the canonical
// list: segments are trimmed and empty segments dropped.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

// JoinList renders the canonical list back into an editable string.
// ParseList(JoinList(l)) == l for any list of non-empty trimmed strings.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// MatchesSearch reports whether any field contains term as a
// case-insensitive substring. An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
