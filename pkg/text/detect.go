package text

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "Markdown"
	case FormatHTML:
		return "HTML"
	default:
		return "Text"
	}
}

// Detect uses the file extension first and falls back to content heuristics.
func Detect(name, content string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdown":
		return FormatMarkdown

	case ".html", ".htm", ".xhtml":
		return FormatHTML
	}

	if IsHTML(content) {
		return FormatHTML
	}

	if IsMarkdown(content) {
		return FormatMarkdown
	}

	return FormatText
}
