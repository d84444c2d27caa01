package glints

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Splitter tries to separate a company name from the location glued to it.
// ok is false when the heuristic does not apply to text.
type Splitter func(text string) (company, location string, ok bool)

// DefaultSplitters returns the heuristics in the order they are tried.
func DefaultSplitters(knownLocations []string) []Splitter {
	return []Splitter{
		SplitOnLineBreak,
		SplitOnParenthesis,
		CaseChangeSplitter(knownLocations),
	}
}

// SplitCompanyLocation returns the result of the first splitter that matches,
// or the whole text as company and no location.
func SplitCompanyLocation(text string, splitters []Splitter) (company, location string) {
	text = strings.TrimSpace(text)
	for _, split := range splitters {
		if company, location, ok := split(text); ok {
			return company, location
		}
	}
	return text, ""
}

// SplitOnLineBreak handles text rendered on several lines: company first,
// the remaining lines make up the location.
func SplitOnLineBreak(text string) (string, string, bool) {
	lines := strings.Split(cleanLines(text), "\n")
	if len(lines) < 2 {
		return "", "", false
	}
	return lines[0], strings.Join(lines[1:], ", "), true
}

// SplitOnParenthesis cuts after the last top-level ")" that is immediately followed
// by more text: "Acme (PT XYZ)Jakarta, Indonesia".
func SplitOnParenthesis(text string) (string, string, bool) {
	depth := 0
	cut := -1
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			next, _ := utf8.DecodeRuneInString(text[i+1:])
			if unicode.IsLetter(next) || unicode.IsDigit(next) {
				cut = i + 1
			}
		}
	}
	if cut < 0 {
		return "", "", false
	}

	company := strings.TrimSpace(text[:cut])
	location := strings.TrimSpace(text[cut:])
	if company == "" || location == "" {
		return "", "", false
	}
	return company, location, true
}

// CaseChangeSplitter cuts at the rightmost lowercase→uppercase boundary whose remainder
// looks like a location ("AcmeCorpJakarta"). A bare case change is not enough:
// "SingleWordCompany" has two and neither leaves a place behind.
func CaseChangeSplitter(knownLocations []string) Splitter {
	known := make(map[string]bool, len(knownLocations))
	for _, place := range knownLocations {
		if f := foldText(place); f != "" {
			known[f] = true
		}
	}

	return func(text string) (string, string, bool) {
		rs := []rune(text)
		for i := len(rs) - 1; i > 0; i-- {
			if !unicode.IsLower(rs[i-1]) || !unicode.IsUpper(rs[i]) {
				continue
			}
			company := strings.TrimSpace(string(rs[:i]))
			location := strings.TrimSpace(string(rs[i:]))
			if company != "" && looksLikeLocation(location, known) {
				return company, location, true
			}
		}
		return "", "", false
	}
}

// looksLikeLocation accepts "Jakarta", "Remote", "Kota Bandung, Jawa Barat" or
// "Something, Indonesia": the whole text, its first word or its last comma-separated
// part must be a known place.
func looksLikeLocation(s string, known map[string]bool) bool {
	if known[foldText(s)] {
		return true
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) > 0 && known[foldText(words[0])] {
		return true
	}
	if i := strings.LastIndex(s, ","); i >= 0 {
		return known[foldText(s[i+1:])]
	}
	return false
}
