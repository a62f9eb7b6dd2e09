package pagex

import "strings"

// MatchStopPhrase returns the first phrase in phrases that occurs in text,
// compared case-insensitively. It reports false when none occurs.
func MatchStopPhrase(text string, phrases []string) (string, bool) {
	if len(phrases) == 0 || text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}
