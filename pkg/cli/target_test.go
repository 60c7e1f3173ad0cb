package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	testCases := []struct {
		input  string
		suffix string
		ext    string
		want   string
	}{
		{"story.txt", "_speech", ".mp3", "story_speech.mp3"},
		{"docs/notes.md", "_processed", ".md", filepath.Join("docs", "notes_processed.md")},
		{"/tmp/page.html", "", ".md", "/tmp/page.md"},
		{"README", "_speech", ".mp3", "README_speech.mp3"},
		{"archive.tar.gz", "_processed", ".gz", "archive.tar_processed.gz"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, OutputPath(tc.input, tc.suffix, tc.ext), tc.input)
	}
}

func TestTargets(t *testing.T) {
	derive := func(input string) string {
		return OutputPath(input, "_speech", ".mp3")
	}

	targets, err := Targets([]string{"a.txt", "b.txt"}, "", derive)
	require.NoError(t, err)
	require.Equal(t, []Target{
		{Input: "a.txt", Output: "a_speech.mp3"},
		{Input: "b.txt", Output: "b_speech.mp3"},
	}, targets)

	targets, err = Targets([]string{"a.txt"}, "out.mp3", derive)
	require.NoError(t, err)
	require.Equal(t, []Target{{Input: "a.txt", Output: "out.mp3"}}, targets)

	targets, err = Targets([]string{"-"}, Stdout, derive)
	require.NoError(t, err)
	require.Equal(t, []Target{{Input: "-", Output: "-"}}, targets)
}

func TestTargetsUsageErrors(t *testing.T) {
	same := func(input string) string {
		return OutputPath(input, "", ".md")
	}

	testCases := []struct {
		name   string
		inputs []string
		output string
	}{
		{"no inputs", nil, ""},
		{"output with many inputs", []string{"a.html", "b.html"}, "out.md"},
		{"overwrite input", []string{"notes.md"}, ""},
		{"explicit overwrite", []string{"notes.txt"}, "./notes.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Targets(tc.inputs, tc.output, same)
			require.Equal(t, ExitUsage, ExitCode(err))
		})
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello"), 0644))

	text, err := ReadInput(path)
	require.NoError(t, err)
	require.Equal(t, "Hello", text)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte(" \n"), 0644))

	_, err = ReadInput(empty)
	require.Equal(t, ExitUsage, ExitCode(err))

	_, err = ReadInput(filepath.Join(dir, "missing.txt"))
	require.Equal(t, ExitUsage, ExitCode(err))
}

func TestPreview(t *testing.T) {
	require.Equal(t, "short", Preview("short", 200))
	require.Equal(t, "**Le**s...", Preview("**Le**sen", 7))
	require.Equal(t, "äö...", Preview("äöü", 2))
}
