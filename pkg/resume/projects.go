package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reProjectURL = regexp.MustCompile(`https?://\S+|github\.com/\S+`)
	reURLLabel   = regexp.MustCompile(`(?i)^(?:url|link|repo|repository|demo|github)\s*:\s*`)
)

// ParseProjects reads a projects section. A short non-bullet line without a
// date range opens a project; later lines contribute its URL (first one
// wins) or extend its description.
func ParseProjects(lines Lines) ([]Project, []Diagnostic) {
	out := []Project{}
	var diags []Diagnostic
	var cur *Project
	var desc []string
	flush := func() {
		if cur != nil {
			cur.Description = strings.Join(desc, " ")
			out = append(out, *cur)
		}
		cur, desc = nil, nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// a line that is nothing but a link belongs to the open project
		if cur != nil {
			bare := reURLLabel.ReplaceAllString(line, "")
			if u := reProjectURL.FindString(bare); u != "" && u == bare {
				if cur.URL == "" {
					cur.URL = u
				}
				continue
			}
		}
		bullet, isBullet := stripBullet(line)
		if !isBullet && utf8.RuneCountInString(line) < maxTitleLen && !HasDateRange(line) {
			flush()
			cur = &Project{Name: line}
			continue
		}
		if cur == nil {
			diags = append(diags, Diagnostic{Section: SectionProjects, Line: line, Reason: "text before any project"})
			continue
		}
		if u := reProjectURL.FindString(bullet); u != "" && cur.URL == "" {
			cur.URL = u
			continue
		}
		desc = append(desc, bullet)
	}
	flush()
	return out, diags
}
