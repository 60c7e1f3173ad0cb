package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrianliechti/convey/config"
	"github.com/adrianliechti/convey/pkg/cli"
	"github.com/adrianliechti/convey/pkg/client"
	"github.com/adrianliechti/convey/pkg/text"
)

const defaultTimeout = 2 * time.Minute

func main() {
	var common cli.CommonFlags
	cli.RegisterCommonFlags(flag.CommandLine, &common, defaultTimeout)

	formatFlag := flag.String("format", "", "output format: markdown or html (default markdown)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: readable [flags] <file>...\n\nRewrites Markdown or HTML files into an ADHD-friendly format (default output <file>_processed<ext>).\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	cli.Run("readable", func(ctx context.Context) error {
		cfg, err := config.Load(common.Config)

		if err != nil {
			return cli.Usagef("config: %v", err)
		}

		format := cli.First(*formatFlag, cfg.Readable.Format, "markdown")

		if format != "markdown" && format != "html" {
			return cli.Usagef("unknown format %q", format)
		}

		targets, err := cli.Targets(flag.Args(), common.Output, func(input string) string {
			if format == "html" {
				return cli.OutputPath(input, "_processed", ".html")
			}

			return cli.OutputPath(input, "_processed", filepath.Ext(input))
		})

		if err != nil {
			return err
		}

		c := cli.NewClient(cfg, common.Client, defaultTimeout)

		return cli.Each(targets, func(target cli.Target) error {
			return process(ctx, c, target, format)
		})
	})
}

func process(ctx context.Context, c *client.Client, target cli.Target, format string) error {
	output := os.Stderr

	fmt.Fprintf(output, "Reading file: %s\n", target.Input)

	input, err := cli.ReadInput(target.Input)

	if err != nil {
		return err
	}

	size := utf8.RuneCountInString(input)

	fmt.Fprintf(output, "File size: %d characters\n", size)
	fmt.Fprintf(output, "Detected file type: %s\n", text.Detect(target.Input, input))

	start := time.Now()

	result, err := c.Readable.New(ctx, client.ReadableRequest{
		Text: input,
	})

	fmt.Fprintf(output, "Request finished in %.2f seconds\n", time.Since(start).Seconds())

	if err != nil {
		return err
	}

	content := result.Text

	if format == "html" {
		var buf bytes.Buffer

		title := strings.TrimSuffix(filepath.Base(target.Input), filepath.Ext(target.Input))

		if err := text.RenderHTML(&buf, title, result.Text); err != nil {
			return err
		}

		content = buf.String()
	}

	if err := cli.WriteOutput(target.Output, content); err != nil {
		return err
	}

	fmt.Fprintf(output, "Processed text saved to: %s\n", target.Output)
	fmt.Fprintf(output, "Original size: %d characters\n", size)
	fmt.Fprintf(output, "Processed size: %d characters\n", utf8.RuneCountInString(result.Text))

	fmt.Fprintln(output)
	fmt.Fprintln(output, strings.Repeat("-", 50))
	fmt.Fprintln(output, cli.Preview(result.Text, 200))
	fmt.Fprintln(output, strings.Repeat("-", 50))

	return nil
}
