package coverletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/llm"
)

const (
	maxPromptSkills = 10
	maxJobChars     = 3000
	fallbackSigner  = "Candidate"
)

// Letter is the generated text and whether a model wrote it.
type Letter struct {
	Text      string
	AIPowered bool
}

// Writer drafts a cover letter for a CV and a job posting.
type Writer interface {
	Write(ctx context.Context, c cv.CV, jobDescription string) (Letter, error)
}

// LLMWriter asks the model for the letter and falls back to a template
// when the model is missing, fails or answers with nothing.
type LLMWriter struct {
	model llm.ChatModel
	now   func() time.Time
}

func NewLLMWriter(model llm.ChatModel) *LLMWriter {
	return &LLMWriter{model: model, now: time.Now}
}

func (w *LLMWriter) Write(ctx context.Context, c cv.CV, jobDescription string) (Letter, error) {
	name := signer(c)
	if w.model == nil {
		return Letter{Text: templateLetter(name, w.now())}, nil
	}
	text, err := w.ask(ctx, c, name, jobDescription)
	if err != nil {
		log.Warnw("llm cover letter unavailable, using template", "cv_id", c.ID, "error", err)
		return Letter{Text: templateLetter(name, w.now())}, nil
	}
	return Letter{Text: text, AIPowered: true}, nil
}

func (w *LLMWriter) ask(ctx context.Context, c cv.CV, name, jobDescription string) (string, error) {
	background := "In my professional experience, I"
	if len(c.Experiences) > 0 {
		e := c.Experiences[0]
		background = fmt.Sprintf("As a %s at %s, I", orDefault(e.Role, "professional"), orDefault(e.Company, "my previous company"))
	}
	skills := c.Skills.Names()
	if len(skills) > maxPromptSkills {
		skills = skills[:maxPromptSkills]
	}
	system := "You are a professional cover letter writer. Return ONLY the cover letter text, no headers or metadata."
	user := fmt.Sprintf(
		"Candidate Information:\n- Name: %s\n- Professional Summary: %s\n- Key Skills: %s\n- Background: %s\n\nJob Description:\n%s\n\n"+
			"Write a professional cover letter that opens with a strong hook, highlights the skills that match the job, "+
			"shows enthusiasm for the role and closes with a call to action. Use 3-4 paragraphs and a professional but personable tone. "+
			"Start directly with \"Dear Hiring Manager,\" or similar.",
		name, c.ProfileSummary, strings.Join(skills, ", "), background, truncate(jobDescription, maxJobChars),
	)
	raw, err := w.model.Ask(ctx, system, user)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(strings.ReplaceAll(raw, "```", ""))
	if text == "" {
		return "", errors.New("empty cover letter from model")
	}
	return text, nil
}

func signer(c cv.CV) string {
	if n := strings.TrimSpace(c.FullName); n != "" {
		return n
	}
	if n := strings.TrimSpace(c.PersonalInfo.Name); n != "" {
		return n
	}
	return fallbackSigner
}

func templateLetter(name string, now time.Time) string {
	return now.Format("January 2, 2006") + `

Dear Hiring Manager,

I am writing to express my strong interest in the position outlined in your job description. With my professional background and skill set, I am confident that I can contribute meaningfully to your team.

My experience has given me a solid understanding of the responsibilities and requirements you are looking for. I am particularly drawn to this opportunity because of your organization's commitment to excellence and innovation.

I would welcome the opportunity to discuss how my background, skills and enthusiasm align with your team's needs. Thank you for considering my application, and I look forward to hearing from you.

Sincerely,
` + name + "\n"
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
