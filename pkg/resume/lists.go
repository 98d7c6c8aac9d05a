package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSkills     = 30
	maxLanguages  = 10
	maxSummaryLen = 800
	minTokenLen   = 2
	maxTokenLen   = 49
)

var (
	reLabelPrefix  = regexp.MustCompile(`^([^:]{1,30}):\s*`)
	reListSplit    = regexp.MustCompile(`[,;|•·●\t/]+`)
	reNumeric      = regexp.MustCompile(`^[\d.,\s%+\-]+$`)
	reYear         = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	reLanguageLine = regexp.MustCompile(`^(\pL+(?:\s\pL+)?)\s*[:\-–—(]\s*(.+?)\)?$`)
	reBareLanguage = regexp.MustCompile(`^\pL{3,20}$`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// ParseSkills tokenizes a skills section. A leading "Label:" on a line is
// dropped and kept as the category of the tokens that follow it.
func ParseSkills(lines Lines) ([]Skill, []Diagnostic) {
	out := []Skill{}
	var diags []Diagnostic
	for _, tok := range tokenizeList(lines, &diags, SectionSkills) {
		if len(out) >= maxSkills {
			diags = append(diags, Diagnostic{Section: SectionSkills, Line: tok.text, Reason: "skill limit reached"})
			continue
		}
		out = append(out, Skill{Name: tok.text, Category: tok.label})
	}
	return out, diags
}

// ParseInterests tokenizes an interests section like skills, without a cap.
func ParseInterests(lines Lines) ([]string, []Diagnostic) {
	out := []string{}
	var diags []Diagnostic
	for _, tok := range tokenizeList(lines, &diags, SectionInterests) {
		out = append(out, tok.text)
	}
	return out, diags
}

type listToken struct {
	text  string
	label string
}

func tokenizeList(lines Lines, diags *[]Diagnostic, section SectionKind) []listToken {
	var out []listToken
	seen := map[string]bool{}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		label := ""
		if m := reLabelPrefix.FindStringSubmatch(line); m != nil {
			label = strings.TrimSpace(m[1])
			line = line[len(m[0]):]
		}
		for _, part := range reListSplit.Split(line, -1) {
			tok := strings.Trim(part, " •-–*")
			n := utf8.RuneCountInString(tok)
			if tok == "" {
				continue
			}
			if n < minTokenLen || n > maxTokenLen || reNumeric.MatchString(tok) {
				*diags = append(*diags, Diagnostic{Section: section, Line: tok, Reason: "token rejected"})
				continue
			}
			key := strings.ToLower(tok)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, listToken{text: tok, label: label})
		}
	}
	return out
}

// ParseCertifications yields one entry per line. The first year on the line
// is the date and the text before it is the name.
func ParseCertifications(lines Lines) ([]Certification, []Diagnostic) {
	out := []Certification{}
	var diags []Diagnostic
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if b, ok := stripBullet(line); ok {
			line = b
		}
		c := Certification{Name: line}
		if loc := reYear.FindStringIndex(line); loc != nil {
			c.Date = line[loc[0]:loc[1]]
			c.Name = strings.TrimRight(strings.TrimSpace(line[:loc[0]]), " –—-,|(:")
		}
		if utf8.RuneCountInString(c.Name) <= 2 {
			diags = append(diags, Diagnostic{Section: SectionCertifications, Line: line, Reason: "name too short"})
			continue
		}
		out = append(out, c)
	}
	return out, diags
}

// ParseLanguages maps "<Language>: <level>" lines to proficiency buckets.
func ParseLanguages(lines Lines) ([]Language, []Diagnostic) {
	out := []Language{}
	var diags []Diagnostic
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if b, ok := stripBullet(line); ok {
			line = b
		}
		if len(out) >= maxLanguages {
			diags = append(diags, Diagnostic{Section: SectionLanguages, Line: line, Reason: "language limit reached"})
			continue
		}
		if m := reLanguageLine.FindStringSubmatch(line); m != nil {
			out = append(out, Language{Language: strings.TrimSpace(m[1]), Proficiency: ProficiencyOf(m[2])})
			continue
		}
		if reBareLanguage.MatchString(line) {
			out = append(out, Language{Language: line, Proficiency: "Fluent"})
			continue
		}
		diags = append(diags, Diagnostic{Section: SectionLanguages, Line: line, Reason: "no language pattern"})
	}
	return out, diags
}

// ProficiencyOf buckets a free-text level description. The first bucket with
// a matching keyword wins; unknown text is Intermediate.
func ProficiencyOf(text string) string {
	lower := strings.ToLower(text)
	for _, b := range lexicon.Proficiency {
		for _, kw := range b.Keywords {
			if strings.Contains(lower, kw) {
				return b.Level
			}
		}
	}
	return "Intermediate"
}

// ParseSummary collapses the section into one paragraph capped at 800 runes.
func ParseSummary(lines Lines) string {
	s := strings.TrimSpace(reWhitespace.ReplaceAllString(strings.Join(lines, " "), " "))
	if utf8.RuneCountInString(s) > maxSummaryLen {
		s = string([]rune(s)[:maxSummaryLen])
	}
	return s
}
