package resume

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reEmail    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	rePhone    = regexp.MustCompile(`\+?\(?\d[\d \t\-().]{6,20}\d`)
	reLinkedIn = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|linkedin/)([\w\-]+)`)
	reGitHub   = regexp.MustCompile(`(?i)github\.com/([\w\-]+)`)
	reWebsite  = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[\w\-]+\.(?:com|io|dev|co|net|org|de|at|ch)\b(?:/[\w\-./]*)?`)
	reCityPair = regexp.MustCompile(`\b[A-ZÄÖÜ][a-zäöüß]+(?:[ \t][A-ZÄÖÜ][a-zäöüß]+)*,[ \t]*[A-ZÄÖÜ][a-zäöüß]+(?:[ \t][A-ZÄÖÜ][a-zäöüß]+)*`)
	reYearRun  = regexp.MustCompile(`\d{4}`)
	reDateLike = regexp.MustCompile(`^(?:\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}\s*[-/.]\s*\d{4})$`)
	reCities   = buildCityPattern(lexicon.Cities)
)

const (
	nameScanLines = 5
	minPhoneDigit = 8
	maxPhoneDigit = 15
)

func buildCityPattern(cities []string) *regexp.Regexp {
	if len(cities) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b(?:` + alternation(cities) + `)\b`)
}

// ExtractPersonalInfo recovers contact details. Email, phone, handles and
// location are the first match in the whole text; name and title come from
// the preamble (lines before the first section header).
// Fields that cannot be recovered with confidence stay empty.
func ExtractPersonalInfo(preamble Lines, fullText string) (PersonalInfo, []Diagnostic) {
	var pi PersonalInfo
	var diags []Diagnostic

	pi.Email = reEmail.FindString(fullText)
	pi.Phone = findPhone(fullText)
	if m := reLinkedIn.FindStringSubmatch(fullText); m != nil {
		pi.LinkedIn = "linkedin.com/in/" + m[1]
	}
	pi.Website = findWebsite(fullText)
	pi.Location = findLocation(fullText)

	lines := preamble
	if len(lines) == 0 {
		lines = SplitLines(fullText)
	}
	pi.Name, pi.Title = findNameAndTitle(lines)
	if pi.Name == "" && len(lines) > 0 {
		diags = append(diags, Diagnostic{Line: firstNonBlank(lines), Reason: "no name candidate in leading lines"})
	}
	return pi, diags
}

func findPhone(text string) string {
	for _, cand := range rePhone.FindAllString(text, -1) {
		cand = strings.TrimSpace(cand)
		if reDateLike.MatchString(cand) {
			continue
		}
		digits := 0
		for _, r := range cand {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= minPhoneDigit && digits <= maxPhoneDigit {
			return cand
		}
	}
	return ""
}

func findWebsite(text string) string {
	if m := reGitHub.FindStringSubmatch(text); m != nil {
		return "github.com/" + m[1]
	}
	for _, loc := range reWebsite.FindAllStringIndex(text, -1) {
		// domain of an email address
		if loc[0] > 0 && text[loc[0]-1] == '@' {
			continue
		}
		url := text[loc[0]:loc[1]]
		lower := strings.ToLower(url)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		return strings.TrimRight(url, "./")
	}
	return ""
}

// findLocation prefers a "City, Region" pair anywhere in the text over a
// bare city name.
func findLocation(text string) string {
	if m := reCityPair.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	if reCities != nil {
		return reCities.FindString(text)
	}
	return ""
}

func findNameAndTitle(lines Lines) (name, title string) {
	var clean []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			clean = append(clean, l)
		}
	}
	for i, l := range clean {
		if i >= nameScanLines {
			break
		}
		if !looksLikeName(l) {
			continue
		}
		name = l
		if i+1 < len(clean) && looksLikeTitle(clean[i+1]) {
			title = clean[i+1]
		}
		return name, title
	}
	return "", ""
}

func looksLikeName(line string) bool {
	if strings.ContainsAny(line, "@+0123456789") {
		return false
	}
	if _, isHeader := DetectHeader(line); isHeader {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 5 {
		return false
	}
	for _, w := range words {
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

func looksLikeTitle(line string) bool {
	n := utf8.RuneCountInString(line)
	if n <= 2 || n >= 60 {
		return false
	}
	if strings.ContainsAny(line, "@+") || reYearRun.MatchString(line) {
		return false
	}
	_, isHeader := DetectHeader(line)
	return !isHeader
}

func firstNonBlank(lines Lines) string {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}
