package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	roleSeparators = []string{",", " bei ", " at ", " @", " – ", " — ", "·", " | "}
	reLocationLine = regexp.MustCompile(`^\p{Lu}\p{Ll}.*,\s*\p{Lu}`)
	bulletGlyphs   = []string{"•", "●", "▪", "◦", "‣", "–", "-", "*"}
)

const (
	minDescriptionLen = 16
	maxLocationWords  = 6
	maxTitleLen       = 80
)

// experienceBuilder accumulates one entry while its section is being read.
type experienceBuilder struct {
	entry   Experience
	dated   bool
	details []string
}

func (b *experienceBuilder) finish() Experience {
	b.entry.Description = strings.Join(b.details, "\n")
	if b.entry.Current {
		b.entry.EndDate = ""
	}
	return b.entry
}

// ParseExperience turns the body of an experience section into entries.
// A line holding a date range opens an entry; text before the range is split
// into role and company, text after it becomes the location.
func ParseExperience(lines Lines) ([]Experience, []Diagnostic) {
	out := []Experience{}
	var diags []Diagnostic
	var cur *experienceBuilder
	afterBlank := false

	flush := func() {
		if cur != nil {
			out = append(out, cur.finish())
			cur = nil
		}
	}

	// pending is the last undated "Role, Company" looking line that the open
	// entry absorbed; a following bare date line claims it back as a header.
	var pending string
	var pendingLoc bool

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			afterBlank = true
			continue
		}
		blank := afterBlank
		afterBlank = false

		if dr, ok := FindDateRange(line); ok {
			head := trimSeparators(dr.Before)
			if head == "" && cur != nil && !cur.dated && len(cur.details) == 0 {
				cur.applyDates(dr)
				pending = ""
				continue
			}
			if head == "" && cur != nil && pending != "" {
				if pendingLoc {
					cur.entry.Location = ""
				} else {
					cur.details = cur.details[:len(cur.details)-1]
				}
				head = pending
			}
			pending = ""
			flush()
			cur = &experienceBuilder{}
			cur.entry.Role, cur.entry.Company = SplitTitleCompany(head)
			cur.applyDates(dr)
			continue
		}

		bullet, isBullet := stripBullet(line)
		pending = ""
		switch {
		case cur == nil && isBullet:
			diags = append(diags, Diagnostic{Section: SectionExperience, Line: line, Reason: "bullet before any entry"})
		case cur == nil:
			cur = &experienceBuilder{}
			cur.entry.Role, cur.entry.Company = SplitTitleCompany(line)
		case isBullet:
			cur.details = append(cur.details, bullet)
		case cur.entry.Role == "" && cur.entry.Company == "":
			cur.entry.Role, cur.entry.Company = SplitTitleCompany(line)
		case blank && cur.dated && (len(cur.details) > 0 || cur.entry.Location != "") && looksLikeEntryTitle(line):
			flush()
			cur = &experienceBuilder{}
			cur.entry.Role, cur.entry.Company = SplitTitleCompany(line)
		case cur.entry.Location == "" && isLocationLine(line):
			cur.entry.Location = line
			if cur.dated && looksLikeEntryTitle(line) {
				pending, pendingLoc = line, true
			}
		case utf8.RuneCountInString(line) >= minDescriptionLen:
			cur.details = append(cur.details, line)
			if cur.dated && looksLikeEntryTitle(line) {
				pending, pendingLoc = line, false
			}
		default:
			diags = append(diags, Diagnostic{Section: SectionExperience, Line: line, Reason: "short line ignored"})
		}
	}
	flush()
	return out, diags
}

func (b *experienceBuilder) applyDates(dr DateRange) {
	b.dated = true
	b.entry.StartDate = dr.Start
	b.entry.EndDate = dr.End
	b.entry.Current = dr.Current
	if loc := trimSeparators(dr.After); loc != "" && b.entry.Location == "" {
		b.entry.Location = loc
	}
}

// SplitTitleCompany splits "Role, Company" style headers. Separators are
// tried in priority order, comma first; the first one that leaves text on
// both sides wins. Otherwise the whole text is the role.
func SplitTitleCompany(text string) (role, company string) {
	return splitPair(text, roleSeparators)
}

func splitPair(text string, separators []string) (string, string) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	for _, sep := range separators {
		i := strings.Index(lower, sep)
		if i < 0 {
			continue
		}
		left := trimQuotes(text[:i])
		right := trimQuotes(text[i+len(sep):])
		if left != "" && right != "" {
			return left, right
		}
	}
	return trimQuotes(text), ""
}

func trimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), " \t\"'“”„‘’«»")
}

// trimSeparators removes punctuation left dangling around a matched date range.
func trimSeparators(s string) string {
	return strings.Trim(s, " \t,;|·–—-()[]")
}

func stripBullet(line string) (string, bool) {
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(line, g) {
			return strings.TrimSpace(strings.TrimPrefix(line, g)), true
		}
	}
	return line, false
}

func isLocationLine(line string) bool {
	return reLocationLine.MatchString(line) && len(strings.Fields(line)) <= maxLocationWords
}

// looksLikeEntryTitle reports a short "Role, Company" line without sentence
// punctuation.
func looksLikeEntryTitle(line string) bool {
	if utf8.RuneCountInString(line) >= maxTitleLen || strings.HasSuffix(line, ".") {
		return false
	}
	role, company := SplitTitleCompany(line)
	return role != "" && company != ""
}
