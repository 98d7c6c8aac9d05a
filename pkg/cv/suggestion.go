package cv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Suggestion sections understood by ApplySuggestion.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionProjects       = "projects"
	SectionPersonalInfo   = "personalInfo"
	SectionGeneral        = "general"
)

// ValidSection reports whether a generator may attach a suggestion to section.
func ValidSection(section string) bool {
	switch section {
	case SectionSummary, SectionExperience, SectionEducation, SectionSkills,
		SectionCertifications, SectionLanguages, SectionProjects,
		SectionPersonalInfo, SectionGeneral:
		return true
	}
	return false
}

const otherCategory = "other"

// ApplySuggestion merges generated content into one section. It reports
// false when there was nothing to apply (no data, or a section that carries
// advice only); the record and its version are then left as they were.
func ApplySuggestion(c CV, section string, data json.RawMessage, now time.Time) (CV, bool, error) {
	if isNull(data) {
		return c, false, nil
	}
	out := c
	switch section {
	case SectionExperience, "experiences":
		e, err := decodeOne[Experience](data)
		if err != nil {
			return c, false, err
		}
		out.Experiences = replaceFirst(c.Experiences, e)
	case SectionEducation, "educations":
		e, err := decodeOne[Education](data)
		if err != nil {
			return c, false, err
		}
		out.Educations = replaceFirst(c.Educations, e)
	case SectionProjects, "project":
		pr, err := decodeOne[Project](data)
		if err != nil {
			return c, false, err
		}
		out.Projects = replaceFirst(c.Projects, pr)
	case SectionSkills:
		var in Skills
		if err := json.Unmarshal(data, &in); err != nil {
			return c, false, fmt.Errorf("%w: skills: %v", ErrInvalidPayload, err)
		}
		out.Skills = MergeSkills(c.Skills, in)
	case SectionLanguages:
		items, err := decodeMany[Language](data)
		if err != nil {
			return c, false, err
		}
		out.Languages = append(append([]Language{}, c.Languages...), items...)
	case SectionCertifications:
		items, err := decodeMany[Certification](data)
		if err != nil {
			return c, false, err
		}
		out.Certifications = append(append([]Certification{}, c.Certifications...), items...)
	case SectionSummary:
		text := summaryText(data)
		if text == "" {
			return c, false, nil
		}
		out.ProfileSummary = text
		out.PersonalInfo = c.PersonalInfo.clone()
		out.PersonalInfo.Set("summary", text)
	case SectionPersonalInfo:
		var in PersonalInfo
		if err := json.Unmarshal(data, &in); err != nil {
			return c, false, fmt.Errorf("%w: personal_info: %v", ErrInvalidPayload, err)
		}
		out.PersonalInfo = c.PersonalInfo.clone()
		for _, id := range identity {
			if v := in.Get(id.key); v != "" {
				out.PersonalInfo.Set(id.key, v)
			}
		}
		if v := in.Get("website"); v != "" {
			out.PersonalInfo.Set("website", v)
		}
		syncFlat(&out)
	default:
		return c, false, nil
	}
	bump(&out, now)
	return out, true, nil
}

// replaceFirst swaps the first entry for e, or appends e to an empty section.
func replaceFirst[T any](items []T, e T) []T {
	out := append([]T{}, items...)
	if len(out) == 0 {
		return append(out, e)
	}
	out[0] = e
	return out
}

// decodeOne accepts an object or a list and returns the first entry.
func decodeOne[T any](data json.RawMessage) (T, error) {
	var zero T
	items, err := decodeMany[T](data)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: empty suggestion data", ErrInvalidPayload)
	}
	return items[0], nil
}

func decodeMany[T any](data json.RawMessage) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return []T{one}, nil
	}
	var many []T
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return many, nil
}

func summaryText(data json.RawMessage) string {
	if s, ok := scalar(data); ok {
		return s
	}
	o, err := decodeObject(data)
	if err != nil {
		return ""
	}
	s, _ := o.str(f("summary", []string{"profile_summary", "text", "content"}))
	return s
}

// MergeSkills folds incoming skills into the stored value without removing
// anything. Mapping into mapping appends per category with exact matching;
// every merge that touches a flat list deduplicates names case-insensitively.
// An empty stored value takes the incoming shape.
func MergeSkills(stored, in Skills) Skills {
	if stored.Empty() {
		return in.copy()
	}
	out := stored.copy()
	switch {
	case out.Mapping && in.Mapping:
		for _, cat := range in.Categories {
			i := out.category(cat.Name)
			for _, item := range cat.Items {
				if !slices.Contains(out.Categories[i].Items, item) {
					out.Categories[i].Items = append(out.Categories[i].Items, item)
				}
			}
		}
	case out.Mapping:
		for _, sk := range in.List {
			name := firstNonEmpty(sk.Category, otherCategory)
			if containsFold(out.Names(), sk.Name) {
				continue
			}
			i := out.category(name)
			out.Categories[i].Items = append(out.Categories[i].Items, sk.Name)
		}
	case in.Mapping:
		for _, cat := range in.Categories {
			for _, item := range cat.Items {
				if !containsFold(out.Names(), item) {
					out.List = append(out.List, Skill{Name: item, Category: cat.Name})
				}
			}
		}
	default:
		for _, sk := range in.List {
			if !containsFold(out.Names(), sk.Name) {
				out.List = append(out.List, sk)
			}
		}
	}
	return out
}

func (s Skills) copy() Skills {
	out := Skills{Mapping: s.Mapping}
	if s.List != nil {
		out.List = append([]Skill{}, s.List...)
	}
	if s.Categories != nil {
		out.Categories = make([]SkillCategory, len(s.Categories))
		for i, c := range s.Categories {
			out.Categories[i] = SkillCategory{Name: c.Name, Items: append([]string{}, c.Items...)}
		}
	}
	return out
}

// category returns the index of the named category, adding it when missing.
func (s *Skills) category(name string) int {
	for i, c := range s.Categories {
		if c.Name == name {
			return i
		}
	}
	s.Categories = append(s.Categories, SkillCategory{Name: name, Items: []string{}})
	return len(s.Categories) - 1
}

func containsFold(items []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(it), v) {
			return true
		}
	}
	return false
}
