package nlp

import (
	"regexp"
	"strings"
)

var reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormalizeText: нижний регистр, любые не буквы/цифры становятся одним
// пробелом, края обрезаны. "CI/CD, Node.js" -> "ci cd node js".
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(reNonWord.ReplaceAllString(strings.ToLower(s), " ")), " ")
}

// NormalizeSkill нормализует навык или ключевое слово вакансии; многословные
// навыки остаются фразой.
func NormalizeSkill(skill string) string {
	return NormalizeText(skill)
}

// ContainsPhrase ищет нормализованную фразу по границам слов:
// "rest api" есть в "built rest api services", но не в "built rest apis".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}
