package extraction

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[;,|/+\x{00B7}&]+`)

// SplitMulti splits a multi-valued cell on ; , | / + · & and returns the
// trimmed non-empty parts. The fullwidth ampersand counts as a separator.
func SplitMulti(raw string) []string {
	s := strings.ReplaceAll(raw, "＆", "&")
	var out []string
	for _, p := range separators.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// tokens lowercases raw and splits it, falling back to the whole text when
// splitting yields nothing.
func tokens(raw string) []string {
	s := strings.ToLower(raw)
	if parts := SplitMulti(s); len(parts) > 0 {
		return parts
	}
	return []string{s}
}

// splitSUT splits a system-under-test cell. A "SIR: grep, flex" part yields
// both the prefix and the items after the colon. Duplicates are dropped
// case-insensitively, keeping the first spelling.
func splitSUT(raw string) []string {
	s := strings.NewReplacer("\n", " ", "\r", " ").Replace(raw)

	var parts []string
	for _, p := range SplitMulti(s) {
		lhs, rhs, ok := strings.Cut(p, ":")
		if !ok {
			parts = append(parts, p)
			continue
		}
		if lhs = strings.TrimSpace(lhs); lhs != "" {
			parts = append(parts, lhs)
		}
		parts = append(parts, SplitMulti(rhs)...)
	}

	seen := make(map[string]bool, len(parts))
	var out []string
	for _, p := range parts {
		key := strings.ToLower(p)
		if !seen[key] {
			seen[key] = true
			out = append(out, p)
		}
	}
	return out
}
