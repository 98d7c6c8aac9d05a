package customization

import (
	"context"
	"fmt"
	"strings"

	"github.com/artem13815/cvstudio/pkg/cv"
)

// Input is what a generator knows about the CV and the job posting.
type Input struct {
	CV             cv.CV
	JobDescription string
	Matched        []string
	Missing        []string
	Score          int
}

// SuggestionGenerator produces improvement suggestions for a CV.
type SuggestionGenerator interface {
	Suggest(ctx context.Context, in Input) ([]Suggestion, error)
}

var certWords = []string{"certified", "certification", "certificate", "aws", "azure", "pmp", "cissp", "cka", "ckad"}

const lowScore = 50

// RuleBased is the deterministic baseline; it never fails.
type RuleBased struct{}

func (RuleBased) Suggest(_ context.Context, in Input) ([]Suggestion, error) {
	return ruleSuggestions(in), nil
}

func ruleSuggestions(in Input) []Suggestion {
	var out []Suggestion
	add := func(section, title, description, text string) {
		out = append(out, Suggestion{Section: section, Title: title, Description: description, Text: text, Source: SourceRules})
	}
	c := in.CV

	if len(in.Missing) > 0 {
		add(cv.SectionSkills, "Address Skills Gap",
			fmt.Sprintf("%d keywords from the job posting are missing from your CV.", len(in.Missing)),
			"Naturally incorporate these terms into your experience descriptions: "+strings.Join(head(in.Missing, 8), ", "))
	}

	if c.ProfileSummary == "" && c.PersonalInfo.Summary == "" {
		add(cv.SectionSummary, "Add a Profile Summary",
			"Recruiters spend ~7 seconds on a CV. A strong summary dramatically improves callback rates.",
			"Write 2-3 sentences highlighting your years of experience, key technical strengths, and what you can deliver for this specific role.")
	}

	if len(c.Experiences) > 0 && !anyDescription(c.Experiences) {
		add(cv.SectionExperience, "Add Achievement Bullet Points",
			"Your experience entries have no descriptions. This is one of the biggest CV weaknesses.",
			"Add 3-5 bullets per role using the STAR format (Situation, Task, Action, Result). Start with action verbs: Led, Built, Reduced, Improved, Automated. Always quantify: '40% faster builds', 'saved €50k/year'.")
	}

	if c.PhotoPath == "" && c.PersonalInfo.Photo == "" {
		add(cv.SectionPersonalInfo, "Add a Professional Photo",
			"In European markets (Germany, Austria, Switzerland), a professional photo is standard and improves trust.",
			"Upload a high-quality headshot using the profile photo upload button at the top of the Personal Info section.")
	}

	if in.Score < lowScore {
		add(cv.SectionGeneral, "Boost Your ATS Keyword Score",
			fmt.Sprintf("Your CV currently scores %d%% keyword match against this job posting.", in.Score),
			"ATS systems rank CVs by keyword density. Prioritise adding these terms: "+strings.Join(head(in.Missing, 6), ", ")+". Use exact phrasing where possible.")
	}

	if len(c.Certifications) == 0 && mentionsAny(in.JobDescription, certWords) {
		add(cv.SectionCertifications, "Add Relevant Certifications",
			"This role mentions certifications or cloud credentials.",
			"Add any relevant professional certifications. If you lack them, consider fast training: AWS Cloud Practitioner, Azure Fundamentals or Kubernetes CKA are very valued.")
	}
	return out
}

func anyDescription(items []cv.Experience) bool {
	for _, e := range items {
		if strings.TrimSpace(e.Description) != "" {
			return true
		}
	}
	return false
}

func mentionsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
