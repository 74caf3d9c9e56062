package llm

import (
	"regexp"
	"strings"
)

// Model output occasionally leaks reasoning scaffolding, meta prefixes, and
// stray escape characters. CleanOutput strips those in a fixed order; the
// result is stable under repeated application.
var (
	thinkBlockRe   = regexp.MustCompile(`(?s)<think>.*?</think>`)
	summaryLeadRe  = regexp.MustCompile(`(?i)^here is the summary:\s*`)
	thinkingLeadRe = regexp.MustCompile(`(?i)^thinking:\s*`)
	wordCountRe    = regexp.MustCompile(`\(Word count: \d+\)`)
)

// CleanOutput normalizes raw model text for end users.
func CleanOutput(raw string) string {
	s := thinkBlockRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	s = summaryLeadRe.ReplaceAllString(s, "")
	s = thinkingLeadRe.ReplaceAllString(s, "")
	s = wordCountRe.ReplaceAllString(s, "")
	s = stripLeadingBackslash(s)
	return strings.TrimSpace(s)
}

// stripLeadingBackslash drops a stray leading backslash unless it starts a
// markdown escape for a list marker.
func stripLeadingBackslash(s string) string {
	if !strings.HasPrefix(s, `\`) {
		return s
	}
	if strings.HasPrefix(s, `\*`) || strings.HasPrefix(s, `\-`) {
		return s
	}
	return s[1:]
}
