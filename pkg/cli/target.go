package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdout as output path writes the result to standard output.
const Stdout = "-"

type Target struct {
	Input  string
	Output string
}

// OutputPath places <stem><suffix><ext> next to input.
func OutputPath(input, suffix, ext string) string {
	dir := filepath.Dir(input)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	return filepath.Join(dir, stem+suffix+ext)
}

// Targets pairs each input with its destination. An explicit output is only
// allowed for a single input; otherwise derive names the destination.
func Targets(inputs []string, output string, derive func(input string) string) ([]Target, error) {
	if len(inputs) == 0 {
		return nil, Usagef("no input file given")
	}

	if output != "" && len(inputs) > 1 {
		return nil, Usagef("-o can only be used with a single input file")
	}

	var targets []Target

	for _, input := range inputs {
		target := Target{
			Input:  input,
			Output: output,
		}

		if target.Output == "" {
			target.Output = derive(input)
		}

		if target.Output != Stdout && filepath.Clean(target.Output) == filepath.Clean(input) {
			return nil, Usagef("output %q would overwrite its input", target.Output)
		}

		targets = append(targets, target)
	}

	return targets, nil
}

// ReadInput reads a UTF-8 text file, or standard input for "-".
func ReadInput(path string) (string, error) {
	var data []byte
	var err error

	if path == Stdout {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return "", Usagef("file %q does not exist", path)
		}

		return "", err
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", Usagef("file %q is empty", path)
	}

	return string(data), nil
}

// WriteOutput writes text to path, or to standard output for "-".
func WriteOutput(path, text string) error {
	if path == Stdout {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}

	return os.WriteFile(path, []byte(text), 0644)
}

// Preview returns the first n characters of text, marking a cut with "...".
func Preview(text string, n int) string {
	runes := []rune(text)

	if len(runes) <= n {
		return text
	}

	return string(runes[:n]) + "..."
}
