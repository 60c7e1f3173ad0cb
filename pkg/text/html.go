package text

import (
	"regexp"
	"strings"
)

var (
	htmlDocumentPattern = regexp.MustCompile(`(?is)^\s*(<\?xml[^>]*>\s*)?(<!doctype\s+html|<html[\s>]|<head[\s>]|<body[\s>])`)

	htmlElementPattern = regexp.MustCompile(`(?i)</(p|div|span|a|h[1-6]|ul|ol|li|table|tr|td|section|article|em|strong|b|i)>`)
)

// IsHTML reports whether text is an HTML document or a fragment with at
// least two closed elements.
func IsHTML(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	if htmlDocumentPattern.MatchString(text) {
		return true
	}

	return len(htmlElementPattern.FindAllStringIndex(text, 2)) >= 2
}
