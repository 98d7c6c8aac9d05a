package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	lines := Lines{"SKILLS", "Python, SQL", "", "EDUCATION", "BSc, Tribhuvan University, 2017 – 2021"}

	spans, preamble := Segment(lines)

	require.Len(t, spans, 2)
	assert.Empty(t, preamble)
	assert.Equal(t, SectionSkills, spans[0].Kind)
	assert.Equal(t, Lines{"Python, SQL"}, spans[0].Lines)
	assert.Equal(t, SectionEducation, spans[1].Kind)
	assert.Equal(t, Lines{"BSc, Tribhuvan University, 2017 – 2021"}, spans[1].Lines)
}

func TestSegmentFirstHeaderWins(t *testing.T) {
	lines := Lines{
		"Jane Doe",
		"jane@example.com",
		"",
		"Experience",
		"Engineer, Acme, 2019 - 2020",
		"Experience",
		"Skills:",
		"Go",
	}

	spans, preamble := Segment(lines)

	assert.Equal(t, Lines{"Jane Doe", "jane@example.com", ""}, preamble)
	require.Len(t, spans, 2)
	assert.Equal(t, Lines{"Engineer, Acme, 2019 - 2020", "Experience"}, spans[0].Lines)
	assert.Equal(t, "Skills:", spans[1].Header)
}

func TestSegmentSkipsEmptySections(t *testing.T) {
	lines := Lines{
		"Skills",
		"",
		"Experience",
		"Engineer, Acme, 2019 - 2020",
		"",
		"Skills",
		"Go, SQL",
		"Languages",
		"Languages:",
		"English - native",
	}

	spans, _ := Segment(lines)

	require.Len(t, spans, 3)
	assert.Equal(t, SectionExperience, spans[0].Kind)
	assert.Equal(t, SectionSkills, spans[1].Kind)
	assert.Equal(t, Lines{"Go, SQL"}, spans[1].Lines)
	assert.Equal(t, SectionLanguages, spans[2].Kind)
	assert.Equal(t, "Languages:", spans[2].Header)
	assert.Equal(t, Lines{"English - native"}, spans[2].Lines)
}

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		line string
		kind SectionKind
		ok   bool
	}{
		{"BERUFSERFAHRUNG", SectionExperience, true},
		{"• Work Experience:", SectionExperience, true},
		{"Sprachkenntnisse", SectionLanguages, true},
		{"Compétences", SectionSkills, true},
		{"Formación académica", SectionEducation, true},
		{"Projects & Portfolio", SectionProjects, true},
		{"I have experience with distributed systems and many other things in production", "", false},
		{"2019 2020 2021 skills", "", false},
		{"Jane Doe", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			kind, ok := DetectHeader(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.kind, kind)
		})
	}
}
