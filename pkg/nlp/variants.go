package nlp

import "strings"

// aliasGroups lists spellings that name the same technology. Entries are
// already normalized (see NormalizeSkill).
var aliasGroups = [][]string{
	{"postgres", "postgresql"},
	{"k8s", "kubernetes"},
	{"go", "golang"},
	{"js", "javascript"},
	{"ts", "typescript"},
	{"rest", "rest api"},
	{"ci cd", "cicd"},
	{"node", "nodejs", "node js"},
	{"aws", "amazon web services"},
	{"gcp", "google cloud"},
}

var aliasIndex = buildAliasIndex(aliasGroups)

func buildAliasIndex(groups [][]string) map[string][]string {
	idx := make(map[string][]string)
	for _, g := range groups {
		for _, s := range g {
			for _, other := range g {
				if other != s {
					idx[s] = append(idx[s], other)
				}
			}
		}
	}
	return idx
}

// SkillVariants returns normalized variants of a keyword for matching
// (synonyms and common abbreviations). The normalized keyword itself is first.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	// phrase-level aliases
	for _, v := range aliasIndex[base] {
		add(v)
	}

	// token-level: "postgres db" also matches "postgresql db"
	parts := strings.Split(base, " ")
	if len(parts) > 1 {
		alt := make([]string, len(parts))
		for i, p := range parts {
			vs := TokenVariants(p)
			alt[i] = vs[len(vs)-1]
		}
		add(strings.Join(alt, " "))
	}
	return out
}

// TokenVariants returns a normalized token followed by its alternate spellings.
func TokenVariants(token string) []string {
	t := NormalizeSkill(token)
	if t == "" {
		return []string{}
	}
	return append([]string{t}, aliasIndex[t]...)
}
