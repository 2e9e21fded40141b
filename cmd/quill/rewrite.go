package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/quill-lm/quill/internal/assist"
	"github.com/quill-lm/quill/internal/device"
	"github.com/quill-lm/quill/internal/hub"
)

func rewriteCmd() *cli.Command {
	var (
		text       string
		task       string
		decoding   string
		maxLength  int64
		streamMode string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "text to rewrite (defaults to stdin)",
			Destination: &text,
		},
		&cli.StringFlag{
			Name:        "task",
			Usage:       "rewrite task (paraphrase, coherent, simpler, grammar, formal, neutral)",
			Value:       string(assist.TaskGrammar),
			Destination: &task,
		},
		&cli.StringFlag{
			Name:        "decoding",
			Usage:       "decoding strategy (greedy, stochastic)",
			Value:       assist.StrategyGreedy,
			Destination: &decoding,
		},
		&cli.Int64Flag{
			Name:        "max-length",
			Usage:       "generation length cap in tokens",
			Value:       200,
			Destination: &maxLength,
		},
		&cli.StringFlag{
			Name:        "stream-mode",
			Usage:       "output mode (instant, typewriter, quiet)",
			Destination: &streamMode,
		},
	}
	flags = append(flags, commonHubFlags()...)
	flags = append(flags, rewriteModelFlags()...)

	return &cli.Command{
		Name:  "rewrite",
		Usage: "Rewrite text sentence by sentence",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyHubConfig(cmd, cfg)
			applyRewriteConfig(cmd, cfg, &task, &decoding, &maxLength, &streamMode)

			input, err := resolveText(text, cmd.Args().Slice(), os.Stdin)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			dev, err := device.Resolve(deviceName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if dev != device.CUDA {
				return cli.Exit("error: rewriting needs a cuda device; suggestions work everywhere", 1)
			}

			chosen := assist.Task(task)
			if !assist.Known(chosen) {
				fmt.Fprintf(os.Stderr, "warning: unknown task %q, using %s\n", task, assist.TaskGrammar)
				chosen = assist.TaskGrammar
			}

			mode, err := ParseStreamMode(defaultStreamMode(streamMode))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			provider := hub.NewProvider(hub.NewClient(hub.ClientConfig{BaseURL: hubURL, Token: hubToken}))
			rewriter := assist.NewRewriter(provider.Handle(rewriteModel, dev), int(rewriteEOS))

			start := time.Now()
			out, err := rewriter.Rewrite(ctx, assist.RewriteRequest{
				Task:      chosen,
				Text:      input,
				Strategy:  decoding,
				MaxLength: int(maxLength),
				LowMemory: lowMemory,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			w := NewStreamWriter(mode, os.Stdout)
			w.Write(out)
			w.Flush()
			fmt.Println()
			fmt.Fprintf(os.Stderr, "rewrote %d sentence(s) in %s\n",
				len(assist.SplitSentences(input)), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

// defaultStreamMode settles the output mode when no flag or config value
// chose one: typewriter on a terminal, instant when piped.
func defaultStreamMode(s string) string {
	if s != "" {
		return s
	}
	if stdoutIsTTY() {
		return string(StreamTypewriter)
	}
	return string(StreamInstant)
}
