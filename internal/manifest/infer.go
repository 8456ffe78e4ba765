package manifest

import (
	"regexp"
	"strings"
	"unicode"
)

// Inference regexes are first-match-wins over the readme, top to bottom.
// A version-shaped string that is not the version will match; that is an
// accepted limitation of the heuristic.
var (
	versionRe  = regexp.MustCompile(`(?i)\b(?:version|v)\s*(\d+\.\d+\.\d+)`)
	homepageRe = regexp.MustCompile(`(?im)^[ \t]*\[?home(?:page)?\]?\s*:?\s*(?:\]\()?[ \t]*(https?://[^)\n]+)`)

	fixmeRe = regexp.MustCompile(`(?i)FIXME`)
	todoRe  = regexp.MustCompile(`(?i)TODO`)
)

// inferVersion extracts the first MAJOR.MINOR.PATCH token following a
// "Version" or "v" label.
func inferVersion(readme string) string {
	m := versionRe.FindStringSubmatch(readme)
	if m == nil {
		return ""
	}
	return m[1]
}

// inferHomepage extracts the first http(s) URL from a "Home"/"Homepage"
// line, Markdown link form included.
func inferHomepage(readme string) string {
	m := homepageRe.FindStringSubmatch(readme)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// inferSummary returns the first readme line containing at least one
// alphanumeric character, leading and trailing whitespace stripped.
func inferSummary(readme string) string {
	for line := range strings.Lines(readme) {
		if strings.ContainsFunc(line, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// inferDescription returns the readme with the FIXME/TODO substitution
// applied. Text without those substrings passes through unchanged.
func inferDescription(readme string) string {
	out := fixmeRe.ReplaceAllString(readme, "FIZZIX-ME")
	out = todoRe.ReplaceAllString(out, "TOODLES")
	return out
}
