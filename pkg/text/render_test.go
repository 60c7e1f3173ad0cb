package text

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer

	if err := RenderHTML(&buf, "Notes <draft>", "# Notes\n\n**Rea**ding is **fu**n\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Notes &lt;draft&gt;</title>",
		`<h1 id="notes">Notes</h1>`,
		"<strong>Rea</strong>ding is <strong>fu</strong>n",
		"<table>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
