package resume

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

type sectionKeywords struct {
	Kind     SectionKind `yaml:"kind"`
	Keywords []string    `yaml:"keywords"`
}

type proficiencyBucket struct {
	Level    string   `yaml:"level"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon is the vocabulary the parser matches against.
type Lexicon struct {
	Sections     []sectionKeywords   `yaml:"sections"`
	Months       map[string]int      `yaml:"months"`
	Present      []string            `yaml:"present"`
	Proficiency  []proficiencyBucket `yaml:"proficiency"`
	Institutions []string            `yaml:"institutions"`
	Cities       []string            `yaml:"cities"`
}

var lexicon = mustLoadLexicon(lexiconYAML)

func mustLoadLexicon(data []byte) *Lexicon {
	lx, err := LoadLexicon(data)
	if err != nil {
		panic(err)
	}
	return lx
}

// LoadLexicon parses a YAML vocabulary and lowercases every keyword.
func LoadLexicon(data []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(lx.Sections) == 0 || len(lx.Months) == 0 {
		return nil, fmt.Errorf("parse lexicon: sections and months are required")
	}
	for i := range lx.Sections {
		lx.Sections[i].Keywords = lowerAll(lx.Sections[i].Keywords)
	}
	for i := range lx.Proficiency {
		lx.Proficiency[i].Keywords = lowerAll(lx.Proficiency[i].Keywords)
	}
	lx.Present = lowerAll(lx.Present)
	lx.Institutions = lowerAll(lx.Institutions)
	months := make(map[string]int, len(lx.Months))
	for k, v := range lx.Months {
		months[strings.ToLower(k)] = v
	}
	lx.Months = months
	return &lx, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// monthAlternation returns month names as a regexp alternation, longest first.
func (lx *Lexicon) monthAlternation() string {
	return alternation(keysOf(lx.Months))
}

func (lx *Lexicon) presentAlternation() string {
	return alternation(lx.Present)
}

func (lx *Lexicon) isPresent(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range lx.Present {
		if s == p {
			return true
		}
	}
	return false
}

func (lx *Lexicon) month(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if m, ok := lx.Months[name]; ok {
		return m, true
	}
	r := []rune(name)
	if len(r) > 3 {
		m, ok := lx.Months[string(r[:3])]
		return m, ok
	}
	return 0, false
}

func keysOf(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
