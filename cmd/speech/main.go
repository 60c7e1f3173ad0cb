package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/adrianliechti/convey/config"
	"github.com/adrianliechti/convey/pkg/cli"
	"github.com/adrianliechti/convey/pkg/client"
)

const defaultTimeout = 5 * time.Minute

func main() {
	var common cli.CommonFlags
	cli.RegisterCommonFlags(flag.CommandLine, &common, defaultTimeout)

	voiceFlag := flag.String("voice", "", "voice: alloy, echo, fable, onyx, nova, shimmer, coral (default nova)")
	instructionsFlag := flag.String("instructions", "", "speaking style, e.g. \"excited\" or \"calm\"")
	chunkSizeFlag := flag.Int("chunk-size", 0, "max characters per audio segment (default 1000)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: speech [flags] <file>...\n\nConverts text files to MP3 audio (default output <file>_speech.mp3).\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	cli.Run("speech", func(ctx context.Context) error {
		cfg, err := config.Load(common.Config)

		if err != nil {
			return cli.Usagef("config: %v", err)
		}

		targets, err := cli.Targets(flag.Args(), common.Output, func(input string) string {
			return cli.OutputPath(input, "_speech", ".mp3")
		})

		if err != nil {
			return err
		}

		c := cli.NewClient(cfg, common.Client, defaultTimeout)

		speech := client.SynthesisConfig{
			Voice:        cli.First(*voiceFlag, cfg.Speech.Voice),
			ChunkSize:    cli.First(*chunkSizeFlag, cfg.Speech.ChunkSize),
			Instructions: cli.First(*instructionsFlag, cfg.Speech.Instructions),
		}

		return cli.Each(targets, func(target cli.Target) error {
			return synthesize(ctx, c, target, speech)
		})
	})
}

func synthesize(ctx context.Context, c *client.Client, target cli.Target, settings client.SynthesisConfig) error {
	output := os.Stderr

	fmt.Fprintf(output, "Reading file: %s\n", target.Input)

	text, err := cli.ReadInput(target.Input)

	if err != nil {
		return err
	}

	input := client.NewSynthesisRequest(text, settings)

	fmt.Fprintf(output, "File size: %d characters\n", utf8.RuneCountInString(text))
	fmt.Fprintf(output, "Voice: %s\n", input.Config.Voice)
	fmt.Fprintf(output, "Chunk size: %d characters\n", input.Config.ChunkSize)

	if input.Config.Instructions != "" {
		fmt.Fprintf(output, "Instructions: %s\n", input.Config.Instructions)
	}

	var options []client.RequestOption

	if cli.Interactive() {
		options = append(options, client.WithProgress(func(written int64) {
			fmt.Fprintf(output, "\rReceived %d KiB", written>>10)
		}))
	}

	start := time.Now()

	var result *client.Synthesis

	if target.Output == cli.Stdout {
		result, err = c.Syntheses.Stream(ctx, input, os.Stdout, options...)
	} else {
		result, err = c.Syntheses.New(ctx, input, target.Output, options...)
	}

	if len(options) > 0 {
		fmt.Fprint(output, "\r\033[K")
	}

	fmt.Fprintf(output, "Request finished in %.2f seconds\n", time.Since(start).Seconds())

	if err != nil {
		var transportErr *client.TransportError

		if errors.As(err, &transportErr) && transportErr.Written > 0 && target.Output != cli.Stdout {
			fmt.Fprintf(output, "Partial audio left at %s (%d bytes)\n", target.Output, transportErr.Written)
		}

		return err
	}

	if target.Output != cli.Stdout {
		fmt.Fprintf(output, "Audio saved to: %s\n", result.Path)
	}

	fmt.Fprintf(output, "Audio size: %d bytes\n", result.Size)

	return nil
}
