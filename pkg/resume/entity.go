package resume

import "errors"

var (
	// ErrUnsupportedFormat is returned when a document is neither a known
	// binary format nor readable text.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailed wraps decoder failures (corrupt or encrypted files).
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Lines is the line-oriented text recovered from a document.
// Blank lines are kept; they separate sections and entries.
type Lines []string

// SectionKind labels a region of a résumé.
type SectionKind string

const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionCertifications SectionKind = "certifications"
	SectionLanguages      SectionKind = "languages"
	SectionProjects       SectionKind = "projects"
	SectionInterests      SectionKind = "interests"
)

// Span is a contiguous labeled region of the line stream.
type Span struct {
	Kind   SectionKind `json:"kind"`
	Header string      `json:"header"`
	Lines  Lines       `json:"lines"`
}

// Diagnostic records a line a parser skipped or interpreted with low confidence.
type Diagnostic struct {
	Section SectionKind `json:"section"`
	Line    string      `json:"line"`
	Reason  string      `json:"reason"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
	Photo    string `json:"photo"`
}

type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Grade       string `json:"grade"`
}

type Skill struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Category string `json:"category"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Result is the structured output of the parsing pipeline.
// ParseError is set when a stage failed unexpectedly; other stages still contribute.
type Result struct {
	PersonalInfo   PersonalInfo           `json:"personalInfo"`
	Summary        string                 `json:"summary"`
	Experience     []Experience           `json:"experience"`
	Education      []Education            `json:"education"`
	Skills         []Skill                `json:"skills"`
	Certifications []Certification        `json:"certifications"`
	Languages      []Language             `json:"languages"`
	Projects       []Project              `json:"projects"`
	Interests      []string               `json:"interests"`
	SectionLabels  map[SectionKind]string `json:"sectionLabels"`
	RawText        string                 `json:"raw_text"`
	ParseError     string                 `json:"parse_error,omitempty"`
	Diagnostics    []Diagnostic           `json:"-"`
}

func emptyResult(raw string) Result {
	return Result{
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		Certifications: []Certification{},
		Languages:      []Language{},
		Projects:       []Project{},
		Interests:      []string{},
		SectionLabels:  map[SectionKind]string{},
		RawText:        raw,
	}
}
