package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/adrianliechti/convey/config"
	"github.com/adrianliechti/convey/pkg/cli"
	"github.com/adrianliechti/convey/pkg/client"
)

const defaultTimeout = time.Minute

func main() {
	var common cli.CommonFlags
	cli.RegisterCommonFlags(flag.CommandLine, &common, defaultTimeout)

	githubFlag := flag.Bool("github", false, "use GitHub flavored markdown")
	imagesFlag := flag.Bool("images", false, "preserve image links")
	tocFlag := flag.Bool("toc", false, "add a table of contents")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: html2md [flags] <file>...\n\nConverts HTML files to Markdown (default output <file>.md).\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	visited := cli.Visited(flag.CommandLine)

	cli.Run("html2md", func(ctx context.Context) error {
		cfg, err := config.Load(common.Config)

		if err != nil {
			return cli.Usagef("config: %v", err)
		}

		targets, err := cli.Targets(flag.Args(), common.Output, func(input string) string {
			return cli.OutputPath(input, "", ".md")
		})

		if err != nil {
			return err
		}

		c := cli.NewClient(cfg, common.Client, defaultTimeout)

		options := &client.MarkdownOptions{
			GithubFlavored:     cli.Bool(visited["github"], *githubFlag, cfg.Markdown.GithubFlavored),
			PreserveImages:     cli.Bool(visited["images"], *imagesFlag, cfg.Markdown.PreserveImages),
			AddTableOfContents: cli.Bool(visited["toc"], *tocFlag, cfg.Markdown.AddTableOfContents),
		}

		return cli.Each(targets, func(target cli.Target) error {
			return convert(ctx, c, target, options)
		})
	})
}

func convert(ctx context.Context, c *client.Client, target cli.Target, options *client.MarkdownOptions) error {
	output := os.Stderr

	html, err := cli.ReadInput(target.Input)

	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Converting HTML file '%s'...\n", target.Input)

	result, err := c.Markdown.New(ctx, client.MarkdownRequest{
		HTML:    html,
		Options: options,
	})

	if err != nil {
		return err
	}

	if err := cli.WriteOutput(target.Output, result.Text); err != nil {
		return err
	}

	if !result.Success {
		message := cli.First(result.Message, "unknown error")

		fmt.Fprintf(output, "Warning: conversion may be incomplete: %s\n", message)
		fmt.Fprintf(output, "Content saved to '%s'\n", target.Output)

		return nil
	}

	fmt.Fprintf(output, "Converted! Markdown saved to '%s'\n", target.Output)

	return nil
}
