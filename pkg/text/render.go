package text

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>
body { max-width: 42rem; margin: 2rem auto; padding: 0 1rem; font: 1.125rem/1.7 system-ui, sans-serif; }
strong { font-weight: 700; }
</style>
</head>
<body>
{{ .Body }}
</body>
</html>
`))

// RenderHTML renders markdown source as a standalone HTML page.
func RenderHTML(w io.Writer, title, source string) error {
	var body bytes.Buffer

	if err := markdown.Convert([]byte(source), &body); err != nil {
		return err
	}

	return page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
}
