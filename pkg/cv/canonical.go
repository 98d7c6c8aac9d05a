package cv

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/artem13815/cvstudio/pkg/resume"
)

// Patch is a client edit folded into the stored record. nil means the key
// was absent (or null) in the payload and the stored value is kept.
type Patch struct {
	PersonalInfo *PersonalInfo

	Title          *string
	FullName       *string
	Email          *string
	Phone          *string
	Location       *string
	LinkedInURL    *string
	ProfileSummary *string
	PhotoPath      *string

	Experiences    *[]Experience
	Educations     *[]Education
	Projects       *[]Project
	Skills         *Skills
	Languages      *[]Language
	Certifications *[]Certification

	Interests      json.RawMessage
	CustomSections json.RawMessage
	Theme          json.RawMessage

	// ExpectedVersion is the current_version the client last read.
	ExpectedVersion *int
}

// top-level keys accepted from clients, canonical spelling first
var (
	keysPersonalInfo   = []string{"personal_info", "personalInfo"}
	keysTitle          = []string{"title"}
	keysFullName       = []string{"full_name", "fullName"}
	keysEmail          = []string{"email"}
	keysPhone          = []string{"phone"}
	keysLocation       = []string{"location"}
	keysLinkedIn       = []string{"linkedin_url", "linkedinUrl", "linkedin"}
	keysProfileSummary = []string{"profile_summary", "profileSummary"}
	keysPhotoPath      = []string{"photo_path", "photoPath"}
	keysExperiences    = []string{"experiences", "experience", "work_experience", "workExperience"}
	keysEducations     = []string{"educations", "education"}
	keysProjects       = []string{"projects"}
	keysSkills         = []string{"skills"}
	keysLanguages      = []string{"languages"}
	keysCertifications = []string{"certifications"}
	keysInterests      = []string{"interests"}
	keysCustomSections = []string{"custom_sections", "customSections"}
	keysTheme          = []string{"theme"}
	keysVersion        = []string{"current_version", "currentVersion", "version"}
)

// pick returns the first non-null value among keys.
func (o object) pick(keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if raw, ok := o[k]; ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

// DecodePatch reads a client payload in any supported key convention.
func DecodePatch(raw []byte) (Patch, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	var p Patch

	if v, ok := o.pick(keysPersonalInfo); ok {
		var pi PersonalInfo
		if err := json.Unmarshal(v, &pi); err != nil {
			return Patch{}, fmt.Errorf("%w: personal_info: %v", ErrInvalidPayload, err)
		}
		p.PersonalInfo = &pi
	}

	flat := []struct {
		keys []string
		dst  **string
	}{
		{keysTitle, &p.Title},
		{keysFullName, &p.FullName},
		{keysEmail, &p.Email},
		{keysPhone, &p.Phone},
		{keysLocation, &p.Location},
		{keysLinkedIn, &p.LinkedInURL},
		{keysProfileSummary, &p.ProfileSummary},
		{keysPhotoPath, &p.PhotoPath},
	}
	for _, fl := range flat {
		v, ok := o.pick(fl.keys)
		if !ok {
			continue
		}
		s, ok := scalar(v)
		if !ok {
			return Patch{}, fmt.Errorf("%w: %s must be a string", ErrInvalidPayload, fl.keys[0])
		}
		*fl.dst = &s
	}

	if err := decodeSection(o, keysExperiences, &p.Experiences); err != nil {
		return Patch{}, err
	}
	if err := decodeSection(o, keysEducations, &p.Educations); err != nil {
		return Patch{}, err
	}
	if err := decodeSection(o, keysProjects, &p.Projects); err != nil {
		return Patch{}, err
	}
	if err := decodeSection(o, keysLanguages, &p.Languages); err != nil {
		return Patch{}, err
	}
	if err := decodeSection(o, keysCertifications, &p.Certifications); err != nil {
		return Patch{}, err
	}
	if v, ok := o.pick(keysSkills); ok {
		var sk Skills
		if err := json.Unmarshal(v, &sk); err != nil {
			return Patch{}, fmt.Errorf("%w: skills: %v", ErrInvalidPayload, err)
		}
		p.Skills = &sk
	}

	p.Interests, _ = o.pick(keysInterests)
	p.CustomSections, _ = o.pick(keysCustomSections)
	p.Theme, _ = o.pick(keysTheme)

	if v, ok := o.pick(keysVersion); ok {
		s, _ := scalar(v)
		n, err := strconv.Atoi(s)
		if err != nil {
			return Patch{}, fmt.Errorf("%w: current_version must be an integer", ErrInvalidPayload)
		}
		p.ExpectedVersion = &n
	}
	return p, nil
}

func decodeSection[T any](o object, keys []string, dst **[]T) error {
	v, ok := o.pick(keys)
	if !ok {
		return nil
	}
	var items []T
	if err := json.Unmarshal(v, &items); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, keys[0], err)
	}
	if items == nil {
		items = []T{}
	}
	*dst = &items
	return nil
}

// identity pairs a personal info key with its flat column.
var identity = []struct {
	key  string
	flat func(*CV) *string
}{
	{"name", func(c *CV) *string { return &c.FullName }},
	{"email", func(c *CV) *string { return &c.Email }},
	{"phone", func(c *CV) *string { return &c.Phone }},
	{"location", func(c *CV) *string { return &c.Location }},
	{"linkedin", func(c *CV) *string { return &c.LinkedInURL }},
	{"summary", func(c *CV) *string { return &c.ProfileSummary }},
	{"photo", func(c *CV) *string { return &c.PhotoPath }},
	{"title", func(c *CV) *string { return &c.Title }},
}

// fillPersonalInfo sets absent personal info keys from non-empty flat
// columns. Present keys are never touched, even when empty.
func fillPersonalInfo(c *CV) {
	for _, id := range identity {
		if c.PersonalInfo.Has(id.key) {
			continue
		}
		if v := *id.flat(c); v != "" {
			c.PersonalInfo.Set(id.key, v)
		}
	}
}

// syncFlat copies non-empty personal info values into the flat columns.
func syncFlat(c *CV) {
	for _, id := range identity {
		if v := c.PersonalInfo.Get(id.key); v != "" {
			*id.flat(c) = v
		}
	}
}

// Reconcile folds a client edit into the stored record and bumps the
// version. Array sections in the patch replace the stored ones wholesale.
func Reconcile(c CV, p Patch, now time.Time) CV {
	out := c
	if p.PersonalInfo != nil {
		out.PersonalInfo = p.PersonalInfo.clone()
		fillPersonalInfo(&out)
		syncFlat(&out)
	}

	for _, ov := range []struct {
		src *string
		dst *string
	}{
		{p.Title, &out.Title},
		{p.FullName, &out.FullName},
		{p.Email, &out.Email},
		{p.Phone, &out.Phone},
		{p.Location, &out.Location},
		{p.LinkedInURL, &out.LinkedInURL},
		{p.ProfileSummary, &out.ProfileSummary},
		{p.PhotoPath, &out.PhotoPath},
	} {
		if ov.src != nil {
			*ov.dst = *ov.src
		}
	}

	if p.Experiences != nil {
		out.Experiences = *p.Experiences
	}
	if p.Educations != nil {
		out.Educations = *p.Educations
	}
	if p.Projects != nil {
		out.Projects = *p.Projects
	}
	if p.Skills != nil {
		out.Skills = *p.Skills
	}
	if p.Languages != nil {
		out.Languages = *p.Languages
	}
	if p.Certifications != nil {
		out.Certifications = *p.Certifications
	}
	if p.Interests != nil {
		out.Interests = p.Interests
	}
	if p.CustomSections != nil {
		out.CustomSections = p.CustomSections
	}
	if p.Theme != nil {
		out.Theme = p.Theme
	}

	bump(&out, now)
	return out
}

func bump(c *CV, now time.Time) {
	c.CurrentVersion++
	c.UpdatedAt = now
}

// Projection is the form returned to clients: personal info completed from
// the flat columns and every section present, even when empty.
func (c CV) Projection() CV {
	out := c
	out.PersonalInfo = c.PersonalInfo.clone()
	fillPersonalInfo(&out)
	if out.Experiences == nil {
		out.Experiences = []Experience{}
	}
	if out.Educations == nil {
		out.Educations = []Education{}
	}
	if out.Projects == nil {
		out.Projects = []Project{}
	}
	if out.Languages == nil {
		out.Languages = []Language{}
	}
	if out.Certifications == nil {
		out.Certifications = []Certification{}
	}
	if isNull(out.Interests) {
		out.Interests = json.RawMessage("[]")
	}
	if isNull(out.CustomSections) {
		out.CustomSections = json.RawMessage("[]")
	}
	if isNull(out.Theme) {
		out.Theme = json.RawMessage("{}")
	}
	return out
}

func (p PersonalInfo) clone() PersonalInfo {
	out := p
	out.extra = p.extra.clone()
	out.present = make(map[string]bool, len(p.present))
	for k, v := range p.present {
		out.present[k] = v
	}
	return out
}

// FromParse populates the record from an uploaded document. Parsed identity
// values replace the flat columns when they are non-empty; every section is
// replaced by the parser output.
func FromParse(c CV, r resume.Result, filename, filePath string, now time.Time) CV {
	out := c
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem != "" && stem != "." {
		out.Title = stem
	}

	pr := r.PersonalInfo
	for _, ov := range []struct {
		src string
		dst *string
	}{
		{pr.Name, &out.FullName},
		{pr.Email, &out.Email},
		{pr.Phone, &out.Phone},
		{pr.Location, &out.Location},
		{pr.LinkedIn, &out.LinkedInURL},
		{r.Summary, &out.ProfileSummary},
	} {
		if ov.src != "" {
			*ov.dst = ov.src
		}
	}

	var pi PersonalInfo
	pi.Set("name", out.FullName)
	pi.Set("title", firstNonEmpty(pr.Title, stem))
	pi.Set("email", out.Email)
	pi.Set("phone", out.Phone)
	pi.Set("location", out.Location)
	pi.Set("linkedin", out.LinkedInURL)
	pi.Set("website", pr.Website)
	pi.Set("summary", out.ProfileSummary)
	pi.Set("photo", out.PhotoPath)
	out.PersonalInfo = pi

	out.Experiences = make([]Experience, 0, len(r.Experience))
	for _, e := range r.Experience {
		out.Experiences = append(out.Experiences, Experience{
			Role: e.Role, Company: e.Company, Location: e.Location,
			StartDate: e.StartDate, EndDate: e.EndDate, Current: e.Current,
			Description: e.Description,
		}.canonical())
	}
	out.Educations = make([]Education, 0, len(r.Education))
	for _, e := range r.Education {
		out.Educations = append(out.Educations, Education{
			Institution: e.Institution, Degree: e.Degree, Field: e.Field,
			StartDate: e.StartDate, EndDate: e.EndDate, Grade: e.Grade,
		}.canonical())
	}
	skills := make([]Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, Skill{Name: s.Name, Level: s.Level, Category: s.Category})
	}
	out.Skills = Skills{List: skills}
	out.Languages = make([]Language, 0, len(r.Languages))
	for _, l := range r.Languages {
		out.Languages = append(out.Languages, Language{Language: l.Language, Proficiency: l.Proficiency})
	}
	out.Certifications = make([]Certification, 0, len(r.Certifications))
	for _, cert := range r.Certifications {
		out.Certifications = append(out.Certifications, Certification{Name: cert.Name, Issuer: cert.Issuer, Date: cert.Date})
	}
	out.Projects = make([]Project, 0, len(r.Projects))
	for _, pr := range r.Projects {
		out.Projects = append(out.Projects, Project{Name: pr.Name, Description: pr.Description, URL: pr.URL})
	}
	if interests, err := json.Marshal(r.Interests); err == nil && r.Interests != nil {
		out.Interests = interests
	}

	out.FilePath = filePath
	out.OriginalText = r.RawText
	bump(&out, now)
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
