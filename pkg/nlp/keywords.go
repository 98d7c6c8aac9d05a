package nlp

import (
	"regexp"
	"strings"
)

// techTerms are always reported first when they occur as whole words.
var techTerms = []string{
	"sql", "api", "rest", "aws", "gcp", "azure", "ci", "cd", "devops", "docker", "kubernetes",
	"git", "linux", "python", "java", "javascript", "typescript", "react", "vue", "angular",
	"node", "fastapi", "django", "flask", "spring", "microservices", "nosql", "mongodb",
	"postgresql", "redis", "kafka", "rabbitmq", "terraform", "ansible", "nginx", "graphql",
}

var stopWords = toSet(
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can", "her", "was", "our",
	"one", "had", "his", "him", "has", "how", "its", "man", "new", "now", "old", "see", "two",
	"way", "who", "boy", "did", "let", "put", "say", "she", "too", "use", "will", "with",
	"that", "this", "have", "from", "they", "know", "want", "been", "good", "much", "some",
	"time", "very", "when", "come", "here", "just", "like", "long", "make", "many", "over",
	"such", "take", "than", "then", "them", "well", "were", "what", "your", "about", "could",
	"would", "there", "their", "these", "other", "after", "first", "those", "which", "should",
	"where", "being", "every", "under", "never", "before", "through", "between", "including",
	"must", "strong", "work", "team", "role", "company", "position", "experience", "skills",
	"able", "within", "across", "ensure", "using", "basis", "looking", "join", "opportunity",
	"please", "apply", "send", "cv", "resume", "also", "both", "into", "only", "each",
	"degree", "bachelor", "master", "phd", "years", "year", "minimum", "required", "preferred",
	"plus", "bonus", "benefits", "salary", "equal", "employer", "hiring",
)

var (
	reWordCandidate = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z0-9#+./\-]{1,24}\b`)
	reDigits        = regexp.MustCompile(`^\d+$`)
)

const minKeywordLen = 3

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// ExtractKeywords returns the meaningful words of a text: known tech terms
// first, then other words that are not stop words. Duplicates are dropped
// case-insensitively; general words keep their original spelling.
func ExtractKeywords(text string) []string {
	normalized := NormalizeText(text)
	seen := make(map[string]struct{})
	var out []string
	for _, t := range techTerms {
		if ContainsPhrase(normalized, t) {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, w := range reWordCandidate.FindAllString(text, -1) {
		lower := strings.ToLower(w)
		if len(w) < minKeywordLen || reDigits.MatchString(w) {
			continue
		}
		if _, stop := stopWords[lower]; stop {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, w)
	}
	return out
}

// MatchScore compares CV keywords with job-posting keywords. The score is the
// share of posting keywords found in the CV (0..100); spelling variants
// (k8s/kubernetes, go/golang, ...) count as found.
func MatchScore(cvKeywords, jdKeywords []string) (score int, matched, missing []string) {
	matched, missing = []string{}, []string{}
	if len(jdKeywords) == 0 {
		return 0, matched, missing
	}
	have := make(map[string]struct{})
	for _, k := range cvKeywords {
		for _, v := range SkillVariants(k) {
			have[v] = struct{}{}
		}
	}
	for _, k := range jdKeywords {
		if hasAnyVariant(have, k) {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}
	score = len(matched) * 100 / len(jdKeywords)
	return min(score, 100), matched, missing
}

func hasAnyVariant(have map[string]struct{}, keyword string) bool {
	for _, v := range SkillVariants(keyword) {
		if _, ok := have[v]; ok {
			return true
		}
	}
	return false
}
