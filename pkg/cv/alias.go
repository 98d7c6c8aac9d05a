package cv

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// field describes one canonical attribute of an entry: the keys it may be
// read from (in priority order) and the keys it is written to.
type field struct {
	canonical string
	aliases   []string
	emit      []string
}

func f(canonical string, aliases []string, emit ...string) field {
	if len(emit) == 0 {
		emit = []string{canonical}
	}
	return field{canonical: canonical, aliases: append([]string{canonical}, aliases...), emit: emit}
}

// Alias tables. Every key a client or an older record may use is listed
// here; nothing outside this file knows about alternate spellings.
var (
	experienceFields = struct {
		role, company, location, start, end, current, description field
	}{
		role:        f("role", []string{"position", "job_title", "jobTitle", "title"}, "role", "position", "job_title"),
		company:     f("company", []string{"company_name", "companyName", "employer"}, "company", "company_name"),
		location:    f("location", []string{"city"}),
		start:       f("startDate", []string{"start_date", "start_year", "startYear", "from"}, "startDate", "start_date"),
		end:         f("endDate", []string{"end_date", "end_year", "endYear", "to"}, "endDate", "end_date"),
		current:     f("current", []string{"is_current", "isCurrent"}, "current", "is_current"),
		description: f("description", []string{"summary"}),
	}

	educationFields = struct {
		institution, degree, field, start, end, grade field
	}{
		institution: f("institution", []string{"institution_name", "school", "university"}, "institution", "institution_name"),
		degree:      f("degree", []string{"qualification"}),
		field:       f("field", []string{"field_of_study", "fieldOfStudy", "major"}, "field", "field_of_study"),
		start:       f("startDate", []string{"start_date", "start_year", "startYear", "from"}, "startDate", "start_date"),
		end:         f("endDate", []string{"end_date", "end_year", "endYear", "to"}, "endDate", "end_date"),
		grade:       f("grade", []string{"gpa"}),
	}

	certificationFields = struct {
		name, issuer, date, expiry, url field
	}{
		name:   f("name", []string{"title"}),
		issuer: f("issuer", []string{"issuing_organization", "organization"}),
		date:   f("date", []string{"issueDate", "issue_date"}, "date", "issueDate", "issue_date"),
		expiry: f("expiryDate", []string{"expiry_date"}, "expiryDate", "expiry_date"),
		url:    f("credentialUrl", []string{"credential_url", "url"}, "credentialUrl", "credential_url"),
	}

	languageFields = struct {
		language, proficiency field
	}{
		language:    f("language", []string{"name"}),
		proficiency: f("proficiency", []string{"level"}, "proficiency", "level"),
	}

	projectFields = struct {
		name, description, url field
	}{
		name:        f("name", []string{"title", "project_name"}),
		description: f("description", nil),
		url:         f("url", []string{"link", "website"}, "url", "link"),
	}

	skillFields = struct {
		name, level, category field
	}{
		name:     f("name", []string{"skill", "title"}),
		level:    f("level", []string{"proficiency"}),
		category: f("category", []string{"group"}),
	}

	personalFields = []field{
		f("name", []string{"full_name", "fullName"}),
		f("title", []string{"jobTitle", "job_title"}, "title", "jobTitle"),
		f("email", nil),
		f("phone", []string{"telephone", "mobile"}),
		f("location", nil),
		f("linkedin", []string{"linkedin_url", "linkedinUrl"}),
		f("website", []string{"url"}),
		f("summary", []string{"profile_summary", "profileSummary"}),
		f("photo", []string{"photo_path", "photoUrl"}),
	}
)

// object is a decoded JSON object that keeps every key it was read from.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o == nil {
		o = object{}
	}
	return o, nil
}

// scalar renders a JSON string, number or bool as text. ok is false for
// objects and arrays.
func scalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case 'n':
		return "", true
	case '{', '[':
		return "", false
	default:
		// number or bool literal
		return string(raw), true
	}
}

// str resolves a field: the first alias with a non-empty value wins,
// otherwise the first alias present. present is false when no alias occurs.
func (o object) str(fd field) (value string, present bool) {
	for _, k := range fd.aliases {
		raw, ok := o[k]
		if !ok {
			continue
		}
		s, ok := scalar(raw)
		if !ok {
			continue
		}
		if s != "" {
			return s, true
		}
		present = true
	}
	return "", present
}

func (o object) boolean(fd field) bool {
	for _, k := range fd.aliases {
		raw, ok := o[k]
		if !ok {
			continue
		}
		s, ok := scalar(raw)
		if !ok || s == "" {
			continue
		}
		switch strings.ToLower(s) {
		case "true", "1", "yes", "y", "ja", "oui", "si":
			return true
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0
		}
		return false
	}
	return false
}

// put writes a value under every emitted key and over every alias key the
// source object already carried, so all spellings agree after encoding.
func (o object) put(fd field, v any) {
	raw, _ := json.Marshal(v)
	for _, k := range fd.emit {
		o[k] = raw
	}
	for _, k := range fd.aliases {
		if _, ok := o[k]; ok {
			o[k] = raw
		}
	}
}

func (o object) clone() object {
	out := make(object, len(o)+8)
	for k, v := range o {
		out[k] = v
	}
	return out
}

func (o object) has(key string) bool {
	_, ok := o[key]
	return ok
}

// isNull reports an absent or JSON null value.
func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
