package customization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/llm"
)

// ErrUnavailable is returned when no language model is configured.
var ErrUnavailable = errors.New("ai enhancement unavailable")

const (
	maxRuleExtras  = 2
	maxJobChars    = 1500
	maxPromptItems = 5
)

// SectionEnhancer rewrites CV sections for a job posting.
type SectionEnhancer interface {
	EnhanceSections(ctx context.Context, c cv.CV, jobDescription string) (cv.CV, error)
}

// LLMGenerator asks the model for suggestions and falls back to the rules
// when the model is missing, fails or answers with nothing usable.
type LLMGenerator struct {
	model llm.ChatModel
}

func NewLLMGenerator(model llm.ChatModel) *LLMGenerator {
	return &LLMGenerator{model: model}
}

func (g *LLMGenerator) Suggest(ctx context.Context, in Input) ([]Suggestion, error) {
	base := ruleSuggestions(in)
	if g.model == nil {
		return base, nil
	}
	ai, err := g.askSuggestions(ctx, in)
	if err != nil || len(ai) == 0 {
		log.Warnw("llm suggestions unavailable, using rules", "cv_id", in.CV.ID, "error", err)
		return base, nil
	}
	covered := make(map[string]bool, len(ai))
	for _, s := range ai {
		covered[s.Section] = true
	}
	extras := 0
	for _, s := range base {
		if extras == maxRuleExtras {
			break
		}
		if !covered[s.Section] {
			ai = append(ai, s)
			extras++
		}
	}
	return ai, nil
}

type llmSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	Section     string `json:"section"`
}

func (g *LLMGenerator) askSuggestions(ctx context.Context, in Input) ([]Suggestion, error) {
	c := in.CV
	system := "You are an expert CV coach helping a candidate tailor their CV for a specific job. Return strictly JSON without explanations."
	if isGerman(sampleText(c)) {
		system += " The CV is in German: write ALL suggestions, descriptions and examples in German."
	}
	latest := "None"
	if len(c.Experiences) > 0 {
		e := c.Experiences[0]
		end := e.EndDate
		if e.Current || end == "" {
			end = "Present"
		}
		latest = fmt.Sprintf("%s at %s (%s–%s)", e.Role, e.Company, e.StartDate, end)
	}
	user := fmt.Sprintf(
		"CANDIDATE CV SUMMARY:\nName: %s\nCurrent role: %s\nSkills: %s\nExperience: %d positions\nLatest role: %s\nSummary exists: %s\nKeyword match score: %d/100\nMissing keywords: %s\n\nJOB DESCRIPTION (excerpt):\n%s\n\n"+
			"Generate 4-6 specific, actionable CV improvement suggestions. Return ONLY a JSON array:\n"+
			"[{\"title\": string (max 8 words), \"description\": string, \"suggestion\": string, \"section\": \"summary|experience|skills|education|certifications|languages|projects|general\"}]",
		orDefault(c.FullName, "Candidate"),
		orDefault(c.PersonalInfo.Title, "N/A"),
		orDefault(strings.Join(head(c.Skills.Names(), 20), ", "), "None listed"),
		len(c.Experiences),
		latest,
		yesNo(c.ProfileSummary != ""),
		in.Score,
		strings.Join(head(in.Missing, 10), ", "),
		truncate(in.JobDescription, maxJobChars),
	)
	raw, err := g.model.Ask(ctx, system, user)
	if err != nil {
		return nil, err
	}
	var items []llmSuggestion
	if err := json.Unmarshal([]byte(extractJSON(raw, '[', ']')), &items); err != nil {
		return nil, fmt.Errorf("не удалось распарсить JSON ответ LLM: %w", err)
	}

	var out []Suggestion
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.Description) == "" || strings.TrimSpace(it.Suggestion) == "" {
			continue
		}
		s := Suggestion{
			Title:       it.Title,
			Description: it.Description,
			Text:        it.Suggestion,
			Section:     it.Section,
			Source:      SourceAI,
		}
		if !cv.ValidSection(s.Section) {
			s.Section = cv.SectionGeneral
		}
		if s.Section == cv.SectionExperience && len(c.Experiences) > 0 {
			data, err := g.enhanceExperience(ctx, c.Experiences[0], in.Missing, s.Text)
			if err != nil {
				log.Warnw("could not generate suggestion data", "title", s.Title, "error", err)
			} else {
				s.Data = data
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// enhanceExperience rewrites the description of one entry and returns the
// whole entry ready to replace it.
func (g *LLMGenerator) enhanceExperience(ctx context.Context, e cv.Experience, missing []string, hint string) (json.RawMessage, error) {
	system := "You are an expert CV writer. Return ONLY the improved description text (3-5 bullet points). Start each line with a bullet (•)."
	user := fmt.Sprintf(
		"CURRENT EXPERIENCE:\nRole: %s\nCompany: %s\nCurrent Description: %s\n\nTARGET JOB REQUIREMENTS:\n%s\n\nKEY SKILLS TO HIGHLIGHT (if applicable):\n%s\n\n"+
			"Rewrite the description to incorporate relevant missing keywords, quantified achievements and action verbs.",
		orDefault(e.Role, "Unknown"),
		orDefault(e.Company, "Unknown"),
		e.Description,
		truncate(hint, 1000),
		strings.Join(head(missing, 10), ", "),
	)
	raw, err := g.model.Ask(ctx, system, user)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(strings.ReplaceAll(raw, "```", ""))
	if desc == "" {
		return nil, errors.New("empty description from model")
	}
	e.Description = desc
	return json.Marshal(e)
}

// EnhanceSections regenerates experiences, projects and skills. Personal
// info, certifications, languages and interests are left alone.
func (g *LLMGenerator) EnhanceSections(ctx context.Context, c cv.CV, jobDescription string) (cv.CV, error) {
	if g.model == nil {
		return c, ErrUnavailable
	}
	exps, _ := json.Marshal(head(c.Experiences, maxPromptItems))
	projs, _ := json.Marshal(head(c.Projects, maxPromptItems))
	skills, _ := json.Marshal(c.Skills)

	system := "You are an expert CV writer specialising in ATS optimisation. Return ONLY valid JSON, no markdown fences, no extra text."
	if isGerman(sampleText(c)) {
		system += " This CV is in GERMAN. Write every word of your output in natural, professional German."
	} else {
		system += " Write all output text in English."
	}
	user := fmt.Sprintf(
		"Rewrite only the three sections below so the CV scores higher against the job description. Keep the same JSON structure and field names.\n"+
			"1. Experiences: rewrite \"description\" with relevant keywords, quantified achievements and action verbs. Do NOT change company, role or dates.\n"+
			"2. Projects: rewrite \"description\" to highlight relevant technologies. Do NOT change name or link.\n"+
			"3. Skills: keep the shape (mapping or list) and add relevant missing keywords, at most +5 per category or +8 for a list.\n\n"+
			"JOB DESCRIPTION:\n%s\n\nCURRENT EXPERIENCES (JSON):\n%s\n\nCURRENT PROJECTS (JSON):\n%s\n\nCURRENT SKILLS (JSON):\n%s\n\n"+
			"Return this exact shape: {\"experiences\": [...], \"projects\": [...], \"skills\": <same shape as input>}",
		truncate(jobDescription, maxJobChars), exps, projs, skills,
	)
	raw, err := g.model.Ask(ctx, system, user)
	if err != nil {
		return c, err
	}
	p, err := cv.DecodePatch([]byte(extractJSON(raw, '{', '}')))
	if err != nil {
		return c, err
	}
	out := c
	if p.Experiences != nil && len(*p.Experiences) > 0 {
		out.Experiences = mergeHead(c.Experiences, *p.Experiences)
	}
	if p.Projects != nil && len(*p.Projects) > 0 {
		out.Projects = mergeHead(c.Projects, *p.Projects)
	}
	if p.Skills != nil && !p.Skills.Empty() {
		out.Skills = *p.Skills
	}
	return out, nil
}

// mergeHead replaces the leading entries that were sent to the model and
// keeps the ones beyond the prompt limit.
func mergeHead[T any](stored, rewritten []T) []T {
	out := append([]T{}, rewritten...)
	if len(stored) > maxPromptItems && len(rewritten) <= maxPromptItems {
		out = append(out, stored[maxPromptItems:]...)
	}
	return out
}

var germanIndicators = []string{
	"erfahrung", "kenntnisse", "fähigkeiten", "entwicklung",
	"verantwortlich", "unternehmen", "aufgaben", "tätigkeiten",
	"leitung", "planung", "umsetzung", "berufserfahrung",
	"studium", "abschluss", "ausbildung", "weiterbildung",
	"deutsch", "englisch", "muttersprache", "bewerber",
	"softwareentwickler", "projektmanager", "werkzeuge", "bildung",
}

// isGerman needs at least two distinct indicator words.
func isGerman(text string) bool {
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range germanIndicators {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return hits >= 2
}

func sampleText(c cv.CV) string {
	var b strings.Builder
	for _, e := range head(c.Experiences, 3) {
		b.WriteString(e.Role + " " + e.Company + " " + e.Description + " ")
	}
	b.WriteString(strings.Join(head(c.Skills.Names(), 20), " "))
	b.WriteString(" " + c.ProfileSummary)
	return b.String()
}

// extractJSON strips markdown fences and cuts the outermost block delimited
// by left and right.
func extractJSON(raw string, left, right byte) string {
	raw = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "```json", ""), "```", ""))
	i := strings.IndexByte(raw, left)
	j := strings.LastIndexByte(raw, right)
	if i >= 0 && j > i {
		return raw[i : j+1]
	}
	return raw
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
