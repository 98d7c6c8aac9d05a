package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	degreeSeparators = []string{",", " an der ", " at ", " bei ", " @", " – ", " — ", "·", " | "}
	reGradeKeyword   = regexp.MustCompile(`(?i)\b(?:note|grade|gpa|ects|abschluss)`)
	reGradeValue     = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	reFieldLine      = regexp.MustCompile(`(?i)^(?:field of study|field|major|studiengang|fachrichtung|schwerpunkt)\s*[:\-–]\s*(.+)$`)
)

type educationBuilder struct {
	entry Education
	dated bool
}

// ParseEducation turns the body of an education section into entries.
func ParseEducation(lines Lines) ([]Education, []Diagnostic) {
	out := []Education{}
	var diags []Diagnostic
	var cur *educationBuilder
	flush := func() {
		if cur != nil {
			out = append(out, cur.entry)
			cur = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if dr, ok := FindDateRange(line); ok {
			head := trimSeparators(dr.Before)
			if head != "" || cur == nil || cur.dated {
				flush()
				cur = &educationBuilder{}
				cur.entry.Degree, cur.entry.Institution = SplitDegreeInstitution(head)
			}
			cur.dated = true
			cur.entry.StartDate = dr.Start
			cur.entry.EndDate = dr.End
			if after := trimSeparators(dr.After); after != "" && cur.entry.Institution == "" {
				cur.entry.Institution = after
			}
			continue
		}
		if cur != nil && reGradeKeyword.MatchString(line) {
			if g := reGradeValue.FindString(line); g != "" {
				cur.entry.Grade = g
				continue
			}
		}
		if m := reFieldLine.FindStringSubmatch(line); m != nil && cur != nil {
			cur.entry.Field = strings.TrimSpace(m[1])
			continue
		}
		_, isBullet := stripBullet(line)
		switch {
		case isBullet:
			diags = append(diags, Diagnostic{Section: SectionEducation, Line: line, Reason: "bullet ignored"})
		case cur == nil:
			cur = &educationBuilder{}
			cur.entry.Degree, cur.entry.Institution = SplitDegreeInstitution(line)
		case cur.entry.Degree == "" && cur.entry.Institution == "":
			cur.entry.Degree, cur.entry.Institution = SplitDegreeInstitution(line)
		case cur.dated && looksLikeEducationTitle(line):
			// header of the next entry whose dates follow on their own line
			flush()
			cur = &educationBuilder{}
			cur.entry.Degree, cur.entry.Institution = SplitDegreeInstitution(line)
		default:
			diags = append(diags, Diagnostic{Section: SectionEducation, Line: line, Reason: "unrecognized line"})
		}
	}
	flush()
	return out, diags
}

// SplitDegreeInstitution splits "Degree, Institution" headers. Institution
// vocabulary decides which side is the institution; without it the left side
// is the degree.
func SplitDegreeInstitution(text string) (degree, institution string) {
	a, b := splitPair(text, degreeSeparators)
	if b == "" {
		if hasInstitutionWord(a) {
			return "", a
		}
		return a, ""
	}
	switch {
	case hasInstitutionWord(b):
		return a, b
	case hasInstitutionWord(a):
		return b, a
	default:
		return a, b
	}
}

func looksLikeEducationTitle(line string) bool {
	if utf8.RuneCountInString(line) >= maxTitleLen || strings.HasSuffix(line, ".") {
		return false
	}
	if hasInstitutionWord(line) {
		return true
	}
	a, b := splitPair(line, degreeSeparators)
	return a != "" && b != ""
}

func hasInstitutionWord(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range lexicon.Institutions {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
