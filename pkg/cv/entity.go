package cv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/resume"
)

var (
	ErrNotFound       = errors.New("cv not found")
	ErrConflict       = errors.New("cv was modified by another request")
	ErrInvalidPayload = errors.New("invalid cv payload")
)

// CV is the canonical résumé aggregate. Flat identity columns mirror
// PersonalInfo; sections are typed entries that keep unknown keys.
type CV struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"user_id"`
	Title          string          `json:"title"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Location       string          `json:"location"`
	LinkedInURL    string          `json:"linkedin_url"`
	ProfileSummary string          `json:"profile_summary"`
	PhotoPath      string          `json:"photo_path"`
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Projects       []Project       `json:"projects"`
	Skills         Skills          `json:"skills"`
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Interests      json.RawMessage `json:"interests"`
	CustomSections json.RawMessage `json:"custom_sections"`
	Theme          json.RawMessage `json:"theme"`
	FilePath       string          `json:"file_path"`
	OriginalText   string          `json:"original_text"`
	CurrentVersion int             `json:"current_version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Version is a snapshot of the projection taken after a persisted mutation.
type Version struct {
	ID        uuid.UUID       `json:"id"`
	CVID      uuid.UUID       `json:"cv_id"`
	Version   int             `json:"version"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
}

// PersonalInfo remembers which keys were present in the source object so
// that absent keys can be told apart from keys explicitly left empty.
type PersonalInfo struct {
	Name     string
	Title    string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	Website  string
	Summary  string
	Photo    string

	present map[string]bool
	extra   object
}

func (p *PersonalInfo) ref(key string) *string {
	switch key {
	case "name":
		return &p.Name
	case "title":
		return &p.Title
	case "email":
		return &p.Email
	case "phone":
		return &p.Phone
	case "location":
		return &p.Location
	case "linkedin":
		return &p.LinkedIn
	case "website":
		return &p.Website
	case "summary":
		return &p.Summary
	case "photo":
		return &p.Photo
	}
	return nil
}

// Has reports whether the canonical key was present in the decoded object
// or has been set since.
func (p PersonalInfo) Has(key string) bool {
	return p.present[key]
}

// Get returns the value of a canonical key.
func (p PersonalInfo) Get(key string) string {
	if r := p.ref(key); r != nil {
		return *r
	}
	return ""
}

// Set assigns a canonical key and marks it present.
func (p *PersonalInfo) Set(key, value string) {
	r := p.ref(key)
	if r == nil {
		return
	}
	*r = value
	if p.present == nil {
		p.present = map[string]bool{}
	}
	p.present[key] = true
}

// IsZero reports a personal info block with no keys at all.
func (p PersonalInfo) IsZero() bool {
	return len(p.present) == 0 && len(p.extra) == 0
}

func (p *PersonalInfo) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*p = PersonalInfo{}
		return nil
	}
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	out := PersonalInfo{extra: o}
	for _, fd := range personalFields {
		if v, ok := o.str(fd); ok {
			out.Set(fd.canonical, v)
		}
	}
	*p = out
	return nil
}

func (p PersonalInfo) MarshalJSON() ([]byte, error) {
	o := p.extra.clone()
	for _, fd := range personalFields {
		v := p.Get(fd.canonical)
		if p.Has(fd.canonical) || v != "" {
			o.put(fd, v)
		}
	}
	return json.Marshal(o)
}

type Experience struct {
	Role        string
	Company     string
	Location    string
	StartDate   string
	EndDate     string
	Current     bool
	Description string

	extra object
}

func (e *Experience) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	fs := experienceFields
	out := Experience{extra: o}
	out.Role, _ = o.str(fs.role)
	out.Company, _ = o.str(fs.company)
	out.Location, _ = o.str(fs.location)
	out.StartDate, _ = o.str(fs.start)
	out.EndDate, _ = o.str(fs.end)
	out.Current = o.boolean(fs.current)
	out.Description, _ = o.str(fs.description)
	if out.Description == "" {
		out.Description = joinResponsibilities(o["responsibilities"])
	}
	*e = out.canonical()
	return nil
}

// canonical normalizes dates and keeps "current" and the end date consistent.
func (e Experience) canonical() Experience {
	e.StartDate = resume.NormalizeDate(e.StartDate)
	if resume.IsPresentToken(e.EndDate) {
		e.Current = true
	}
	if e.Current {
		e.EndDate = ""
	} else {
		e.EndDate = resume.NormalizeDate(e.EndDate)
	}
	return e
}

func (e Experience) MarshalJSON() ([]byte, error) {
	o := e.extra.clone()
	fs := experienceFields
	o.put(fs.role, e.Role)
	o.put(fs.company, e.Company)
	o.put(fs.location, e.Location)
	o.put(fs.start, e.StartDate)
	o.put(fs.end, e.EndDate)
	o.put(fs.current, e.Current)
	o.put(fs.description, e.Description)
	return json.Marshal(o)
}

type Education struct {
	Institution string
	Degree      string
	Field       string
	StartDate   string
	EndDate     string
	Grade       string

	extra object
}

func (e *Education) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	fs := educationFields
	out := Education{extra: o}
	out.Institution, _ = o.str(fs.institution)
	out.Degree, _ = o.str(fs.degree)
	out.Field, _ = o.str(fs.field)
	out.StartDate, _ = o.str(fs.start)
	out.EndDate, _ = o.str(fs.end)
	out.Grade, _ = o.str(fs.grade)
	*e = out.canonical()
	return nil
}

func (e Education) canonical() Education {
	e.StartDate = resume.NormalizeDate(e.StartDate)
	if resume.IsPresentToken(e.EndDate) {
		e.EndDate = ""
	}
	e.EndDate = resume.NormalizeDate(e.EndDate)
	return e
}

func (e Education) MarshalJSON() ([]byte, error) {
	o := e.extra.clone()
	fs := educationFields
	o.put(fs.institution, e.Institution)
	o.put(fs.degree, e.Degree)
	o.put(fs.field, e.Field)
	o.put(fs.start, e.StartDate)
	o.put(fs.end, e.EndDate)
	o.put(fs.grade, e.Grade)
	return json.Marshal(o)
}

type Certification struct {
	Name          string
	Issuer        string
	Date          string
	ExpiryDate    string
	CredentialURL string

	extra object
}

func (c *Certification) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	fs := certificationFields
	out := Certification{extra: o}
	out.Name, _ = o.str(fs.name)
	out.Issuer, _ = o.str(fs.issuer)
	out.Date, _ = o.str(fs.date)
	out.ExpiryDate, _ = o.str(fs.expiry)
	out.CredentialURL, _ = o.str(fs.url)
	*c = out
	return nil
}

func (c Certification) MarshalJSON() ([]byte, error) {
	o := c.extra.clone()
	fs := certificationFields
	o.put(fs.name, c.Name)
	o.put(fs.issuer, c.Issuer)
	o.put(fs.date, c.Date)
	o.put(fs.expiry, c.ExpiryDate)
	o.put(fs.url, c.CredentialURL)
	return json.Marshal(o)
}

type Language struct {
	Language    string
	Proficiency string

	extra object
}

func (l *Language) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	out := Language{extra: o}
	out.Language, _ = o.str(languageFields.language)
	out.Proficiency, _ = o.str(languageFields.proficiency)
	*l = out
	return nil
}

func (l Language) MarshalJSON() ([]byte, error) {
	o := l.extra.clone()
	o.put(languageFields.language, l.Language)
	o.put(languageFields.proficiency, l.Proficiency)
	return json.Marshal(o)
}

type Project struct {
	Name        string
	Description string
	URL         string

	extra object
}

func (p *Project) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	out := Project{extra: o}
	out.Name, _ = o.str(projectFields.name)
	out.Description, _ = o.str(projectFields.description)
	out.URL, _ = o.str(projectFields.url)
	*p = out
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	o := p.extra.clone()
	o.put(projectFields.name, p.Name)
	o.put(projectFields.description, p.Description)
	o.put(projectFields.url, p.URL)
	return json.Marshal(o)
}

// Skill is one item of a flat skills list. Items that arrived as bare
// strings are written back as strings while they carry no level or category.
type Skill struct {
	Name     string
	Level    string
	Category string

	plain bool
	extra object
}

func (s *Skill) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = Skill{Name: strings.TrimSpace(name), plain: true}
		return nil
	}
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	out := Skill{extra: o}
	out.Name, _ = o.str(skillFields.name)
	out.Level, _ = o.str(skillFields.level)
	out.Category, _ = o.str(skillFields.category)
	*s = out
	return nil
}

func (s Skill) MarshalJSON() ([]byte, error) {
	if s.plain && s.Level == "" && s.Category == "" {
		return json.Marshal(s.Name)
	}
	o := s.extra.clone()
	o.put(skillFields.name, s.Name)
	o.put(skillFields.level, s.Level)
	o.put(skillFields.category, s.Category)
	return json.Marshal(o)
}

// SkillCategory is one key of a categorized skills mapping.
type SkillCategory struct {
	Name  string
	Items []string
}

// Skills holds either a flat list or an ordered category mapping. Both are
// valid canonical forms; the shape a record arrived in is kept.
type Skills struct {
	List       []Skill
	Categories []SkillCategory
	Mapping    bool
}

// Empty reports a skills value with no items in either shape.
func (s Skills) Empty() bool {
	if !s.Mapping {
		return len(s.List) == 0
	}
	for _, c := range s.Categories {
		if len(c.Items) > 0 {
			return false
		}
	}
	return true
}

// Names lists every skill name regardless of shape.
func (s Skills) Names() []string {
	var out []string
	if s.Mapping {
		for _, c := range s.Categories {
			out = append(out, c.Items...)
		}
		return out
	}
	for _, sk := range s.List {
		out = append(out, sk.Name)
	}
	return out
}

func (s *Skills) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNull(data) {
		*s = Skills{}
		return nil
	}
	switch data[0] {
	case '[':
		var list []Skill
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = Skills{List: list}
		return nil
	case '{':
		cats, err := decodeCategories(data)
		if err != nil {
			return err
		}
		*s = Skills{Categories: cats, Mapping: true}
		return nil
	default:
		return fmt.Errorf("skills must be a list or a mapping")
	}
}

// decodeCategories walks the object token by token so the key order of the
// mapping survives.
func decodeCategories(data []byte) ([]SkillCategory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	cats := []SkillCategory{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		items, err := categoryItems(raw)
		if err != nil {
			return nil, fmt.Errorf("skills category %q: %w", key, err)
		}
		cats = append(cats, SkillCategory{Name: key, Items: items})
	}
	return cats, nil
}

func categoryItems(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return []string{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		items := []string{}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items, nil
	}
	var list []Skill
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	items := make([]string, 0, len(list))
	for _, sk := range list {
		if sk.Name != "" {
			items = append(items, sk.Name)
		}
	}
	return items, nil
}

func (s Skills) MarshalJSON() ([]byte, error) {
	if !s.Mapping {
		if s.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.List)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		items := c.Items
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func joinResponsibilities(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if !strings.HasPrefix(it, "•") {
			it = "• " + it
		}
		lines = append(lines, it)
	}
	return strings.Join(lines, "\n")
}
