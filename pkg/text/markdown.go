package text

import "regexp"

// IsMarkdown reports whether text uses at least two different kinds of
// markdown syntax, so plain prose with a stray # or - is not matched.
func IsMarkdown(text string) bool {
	if len(text) == 0 {
		return false
	}

	indicators := 0

	for _, pattern := range markdownPatterns {
		if pattern.MatchString(text) {
			indicators++
		}
	}

	return indicators >= 2
}

var markdownPatterns = []*regexp.Regexp{
	// # Heading
	regexp.MustCompile(`(?m)^#{1,6}\s+.+$`),

	// ``` or ~~~
	regexp.MustCompile("(?m)^(```|~~~)"),

	// - item, 1. item
	regexp.MustCompile(`(?m)^[\s]*([-*+]|\d+\.)\s+.+$`),

	// [text](url), ![alt](url)
	regexp.MustCompile(`!?\[([^\]]+)\]\(([^)]+)\)`),

	// > quote
	regexp.MustCompile(`(?m)^>\s+.+$`),

	// ---, ***, ___
	regexp.MustCompile(`(?m)^[\s]*(-{3,}|\*{3,}|_{3,})[\s]*$`),

	// **bold**, __bold__
	regexp.MustCompile(`(\*\*|__)[^\s*_][^*_]*(\*\*|__)`),
}
