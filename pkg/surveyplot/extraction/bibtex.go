package extraction

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var spaces = regexp.MustCompile(`\s+`)

// NormalizeAuthors rewrites an author cell as a BibTeX author list joined by
// " and ". It accepts lists already joined by "and", semicolon lists,
// "Last, First, Last, First" pairs and comma lists of full names.
func NormalizeAuthors(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, " and "):
		return spaces.ReplaceAllString(s, " ")
	case strings.Contains(s, ";"):
		var parts []string
		for _, p := range strings.Split(s, ";") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " and ")
	}

	fields := strings.Split(s, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) >= 4 && len(fields)%2 == 0 {
		var pairs []string
		for i := 0; i < len(fields); i += 2 {
			if last, first := fields[i], fields[i+1]; last != "" && first != "" {
				pairs = append(pairs, last+", "+first)
			}
		}
		if len(pairs) > 0 {
			return strings.Join(pairs, " and ")
		}
	}

	if strings.Count(s, ",") >= 3 {
		var parts []string
		for _, p := range splitNames(s) {
			if p = strings.Trim(strings.TrimSpace(p), ","); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 1 {
			return strings.Join(parts, " and ")
		}
	}
	return s
}

// splitNames splits at each comma that starts a new name: one where no
// lowercase letter appears before the next uppercase letter, as in
// "Smith J, Doe A" but not "Smith, john".
func splitNames(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && startsName(s[i+1:]) {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func startsName(rest string) bool {
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; {
		case c >= 'A' && c <= 'Z':
			return true
		case c >= 'a' && c <= 'z':
			return false
		}
	}
	return true
}

// Entry renders a paper as a BibTeX entry keyed by its ID. Papers with a
// book title are conference papers; the rest are journal articles.
func (p Paper) Entry() string {
	conference := p.BookTitle != ""
	kind := "article"
	if conference {
		kind = "inproceedings"
	}

	var fields []string
	if a := NormalizeAuthors(p.Authors); a != "" {
		fields = append(fields, fmt.Sprintf("  author = {%s}", a))
	}
	if p.Title != "" {
		fields = append(fields, fmt.Sprintf("  title  = {%s}", p.Title))
	}
	if p.Year != "" {
		fields = append(fields, fmt.Sprintf("  year   = {%s}", p.Year))
	}
	if conference {
		fields = append(fields, fmt.Sprintf("  booktitle = {%s}", p.BookTitle))
	} else if p.Journal != "" {
		fields = append(fields, fmt.Sprintf("  journal   = {%s}", p.Journal))
	}
	return fmt.Sprintf("@%s{%s,\n%s\n}\n", kind, p.ID(), strings.Join(fields, ",\n"))
}

// WriteBibTeX writes one entry per paper, whatever its type or method,
// separated by blank lines. It returns the number of entries written.
func WriteBibTeX(w io.Writer, papers []Paper) (int, error) {
	entries := make([]string, len(papers))
	for i, p := range papers {
		entries[i] = p.Entry()
	}
	if _, err := io.WriteString(w, strings.Join(entries, "\n")); err != nil {
		return 0, fmt.Errorf("write bibtex: %w", err)
	}
	return len(entries), nil
}
