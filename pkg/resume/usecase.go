package resume

import (
	"fmt"
	"strings"
)

// ParseDocument extracts text from an uploaded file and runs the parsing
// pipeline over it. Only extraction errors are returned; a failing parser
// stage is reported through Result.ParseError.
func ParseDocument(filename string, data []byte) (Result, error) {
	lines, err := ExtractLines(filename, data)
	if err != nil {
		return Result{}, err
	}
	return parseLines(lines), nil
}

// Parse runs the pipeline over plain text.
func Parse(text string) Result {
	return parseLines(SplitLines(text))
}

func parseLines(lines Lines) Result {
	raw := strings.Join(lines, "\n")
	res := emptyResult(raw)
	var stageErrs []string

	// stage runs fn and turns a panic into a recorded stage error; whatever
	// other stages produced is kept.
	stage := func(name string, fn func()) {
		defer func() {
			if r := recover(); r != nil {
				stageErrs = append(stageErrs, fmt.Sprintf("%s: %v", name, r))
			}
		}()
		fn()
	}

	var (
		spans    []Span
		preamble Lines
	)
	stage("segment", func() {
		spans, preamble = Segment(lines)
	})

	stage("personal_info", func() {
		pi, diags := ExtractPersonalInfo(preamble, raw)
		res.PersonalInfo = pi
		res.Diagnostics = append(res.Diagnostics, diags...)
	})

	for _, sp := range spans {
		res.SectionLabels[sp.Kind] = sp.Header
		body := sp.Lines
		switch sp.Kind {
		case SectionSummary:
			stage("summary", func() { res.Summary = ParseSummary(body) })
		case SectionExperience:
			stage("experience", func() {
				items, diags := ParseExperience(body)
				res.Experience = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		case SectionEducation:
			stage("education", func() {
				items, diags := ParseEducation(body)
				res.Education = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		case SectionSkills:
			stage("skills", func() {
				items, diags := ParseSkills(body)
				res.Skills = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		case SectionCertifications:
			stage("certifications", func() {
				items, diags := ParseCertifications(body)
				res.Certifications = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		case SectionLanguages:
			stage("languages", func() {
				items, diags := ParseLanguages(body)
				res.Languages = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		case SectionProjects:
			stage("projects", func() {
				items, diags := ParseProjects(body)
				res.Projects = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		case SectionInterests:
			stage("interests", func() {
				items, diags := ParseInterests(body)
				res.Interests = items
				res.Diagnostics = append(res.Diagnostics, diags...)
			})
		}
	}

	if res.Summary != "" {
		res.PersonalInfo.Summary = res.Summary
	}
	if len(stageErrs) > 0 {
		res.ParseError = strings.Join(stageErrs, "; ")
	}
	return res
}
