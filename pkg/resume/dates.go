package resume

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	datePoint   = `\d{1,2}/\d{4}|\d{4}|(?:` + lexicon.monthAlternation() + `)[\s.]*\d{4}`
	reDateRange = regexp.MustCompile(`(?i)(` + datePoint + `)\s*[–\-—/]\s*(` + datePoint + `|` + lexicon.presentAlternation() + `)`)

	reMonthYear  = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	reBareYear   = regexp.MustCompile(`^\d{4}$`)
	reNamedMonth = regexp.MustCompile(`^(\pL+)[\s.]+(\d{4})$`)
)

// DateRange is a "<start> – <end>" match inside a line.
type DateRange struct {
	Start   string
	End     string
	Current bool
	Before  string
	After   string
}

// FindDateRange locates the first date range in a line. Start and End are
// normalized; End is empty when the range is open ("present", "heute", ...).
func FindDateRange(line string) (DateRange, bool) {
	loc := reDateRange.FindStringSubmatchIndex(line)
	if loc == nil {
		return DateRange{}, false
	}
	start := line[loc[2]:loc[3]]
	end := line[loc[4]:loc[5]]
	dr := DateRange{
		Start:  NormalizeDate(start),
		Before: line[:loc[0]],
		After:  line[loc[1]:],
	}
	if IsPresentToken(end) {
		dr.Current = true
	} else {
		dr.End = NormalizeDate(end)
	}
	return dr, true
}

// HasDateRange reports whether the line contains a date range.
func HasDateRange(line string) bool {
	return reDateRange.MatchString(line)
}

// IsPresentToken reports whether s denotes an ongoing period.
func IsPresentToken(s string) bool {
	return lexicon.isPresent(s)
}

// NormalizeDate converts "MM/YYYY" and "<Month> YYYY" to "YYYY-MM" and keeps a
// bare year. A month name that is not recognized yields the bare year.
// Anything else is returned trimmed but otherwise unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if m := reMonthYear.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month < 1 || month > 12 {
			return m[2]
		}
		return fmt.Sprintf("%s-%02d", m[2], month)
	}
	if reBareYear.MatchString(s) {
		return s
	}
	if m := reNamedMonth.FindStringSubmatch(s); m != nil {
		if month, ok := lexicon.month(m[1]); ok {
			return fmt.Sprintf("%s-%02d", m[2], month)
		}
		return m[2]
	}
	return s
}
