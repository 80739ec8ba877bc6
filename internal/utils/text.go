package utils

import (
	"regexp"
	"strings"
)

var (
	multiSpace     = regexp.MustCompile(` {2,}`)
	spaceBeforeEnd = regexp.MustCompile(` +([.,!?])`)
)

// CollapseWhitespace squeezes runs of spaces and drops spaces before punctuation
func CollapseWhitespace(s string) string {
	s = multiSpace.ReplaceAllString(s, " ")
	s = spaceBeforeEnd.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// CleanCompletion strips the blank lines completion models put before their answer
func CleanCompletion(s string) string {
	return strings.TrimSpace(s)
}

// TruncateString shortens s to maxLen bytes for log lines
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
