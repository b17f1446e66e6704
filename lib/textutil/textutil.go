package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// ContainsToken reports whether the lowercased, space-tokenized form of
// name contains token exactly. Unlike MatchName this does not match
// inside larger words, so "ap" matches "AP Biology" but not "Graphics".
func ContainsToken(name, token string) bool {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if word == token {
			return true
		}
	}
	return false
}
