package resume

import (
	"strings"
	"unicode"
)

const (
	maxHeaderLen   = 60
	minHeaderLen   = 2
	minHeaderAlpha = 0.6
)

// Segment splits lines into labeled spans. The first header of each kind wins;
// a repeated header is kept as body text of the open section. Lines before the
// first header are returned as the preamble.
func Segment(lines Lines) ([]Span, Lines) {
	var (
		spans    []Span
		preamble Lines
		current  *Span
		seen     = map[SectionKind]bool{}
	)
	// a header with nothing under it is dropped and does not claim its kind
	closeCurrent := func() {
		if current == nil {
			return
		}
		current.Lines = trimBlankEdges(current.Lines)
		if len(current.Lines) > 0 {
			spans = append(spans, *current)
			seen[current.Kind] = true
		}
		current = nil
	}
	for _, line := range lines {
		if kind, ok := DetectHeader(line); ok && !seen[kind] {
			switch {
			case current == nil || current.Kind != kind:
				closeCurrent()
				current = &Span{Kind: kind, Header: strings.TrimSpace(line), Lines: Lines{}}
				continue
			case len(trimBlankEdges(current.Lines)) == 0:
				current.Header = strings.TrimSpace(line)
				continue
			}
		}
		if current == nil {
			preamble = append(preamble, line)
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	closeCurrent()
	return spans, preamble
}

// DetectHeader reports whether a line is a section header and which kind.
func DetectHeader(line string) (SectionKind, bool) {
	cleaned := cleanHeader(line)
	n := len([]rune(cleaned))
	if n < minHeaderLen || n > maxHeaderLen {
		return "", false
	}
	if alphaRatio(cleaned) < minHeaderAlpha {
		return "", false
	}
	for _, sk := range lexicon.Sections {
		for _, kw := range sk.Keywords {
			if strings.HasPrefix(cleaned, kw) {
				return sk.Kind, true
			}
		}
	}
	return "", false
}

func cleanHeader(line string) string {
	s := strings.TrimLeftFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	return strings.ToLower(strings.TrimSpace(s))
}

func alphaRatio(s string) float64 {
	var total, alpha int
	for _, r := range s {
		total++
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '&' {
			alpha++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(alpha) / float64(total)
}

func trimBlankEdges(lines Lines) Lines {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
