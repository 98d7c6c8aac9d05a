package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ci cd node js", NormalizeText("  CI/CD, Node.js  "))
	assert.Equal(t, "über uns", NormalizeText("Über-uns!"))
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("built rest api services", "rest api"))
	assert.False(t, ContainsPhrase("built rest apis", "rest api"))
	assert.False(t, ContainsPhrase("anything", ""))
}

func TestSkillVariants(t *testing.T) {
	assert.Equal(t, []string{"k8s", "kubernetes"}, SkillVariants("K8s"))
	assert.Contains(t, SkillVariants("Postgres DB"), "postgresql db")
	assert.Equal(t, []string{"docker"}, SkillVariants("Docker"))
	assert.Empty(t, SkillVariants("  "))
}

func TestTokenVariants(t *testing.T) {
	assert.Equal(t, []string{"golang", "go"}, TokenVariants("Golang"))
	assert.Equal(t, []string{"rust"}, TokenVariants("rust"))
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("We need a Senior Go developer with Docker and Kubernetes (k8s). 5 years.")

	assert.Equal(t, []string{"docker", "kubernetes", "need", "Senior", "developer", "k8s"}, got)
}

func TestMatchScore(t *testing.T) {
	t.Run("variants count as matches", func(t *testing.T) {
		score, matched, missing := MatchScore(
			[]string{"golang", "docker"},
			[]string{"go", "docker", "terraform", "k8s"},
		)

		assert.Equal(t, 50, score)
		assert.Equal(t, []string{"go", "docker"}, matched)
		assert.Equal(t, []string{"terraform", "k8s"}, missing)
	})

	t.Run("empty posting", func(t *testing.T) {
		score, matched, missing := MatchScore([]string{"go"}, nil)

		assert.Zero(t, score)
		assert.Empty(t, matched)
		assert.NotNil(t, missing)
	})
}
