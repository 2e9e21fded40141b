package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/quill-lm/quill/internal/assist"
	"github.com/quill-lm/quill/internal/device"
	"github.com/quill-lm/quill/internal/hub"
	"github.com/quill-lm/quill/internal/session"
	"github.com/quill-lm/quill/internal/tokens"
)

func suggestCmd() *cli.Command {
	var (
		text      string
		count     int64
		tokensPer int64
		decoding  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "text to continue (defaults to stdin)",
			Destination: &text,
		},
		&cli.Int64Flag{
			Name:        "count",
			Aliases:     []string{"n"},
			Usage:       "number of suggestions to request",
			Value:       5,
			Destination: &count,
		},
		&cli.Int64Flag{
			Name:        "tokens-per",
			Usage:       "tokens added per suggestion",
			Value:       1,
			Destination: &tokensPer,
		},
		&cli.StringFlag{
			Name:        "decoding",
			Usage:       "decoding strategy (greedy, stochastic)",
			Value:       assist.StrategyGreedy,
			Destination: &decoding,
		},
	}
	flags = append(flags, commonHubFlags()...)
	flags = append(flags, suggestModelFlags()...)

	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest continuations for a text",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyHubConfig(cmd, cfg)
			applySuggestConfig(cmd, cfg, &decoding, &count, &tokensPer)

			input, err := resolveText(text, cmd.Args().Slice(), os.Stdin)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			dev, err := device.Resolve(deviceName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			counter, err := tokens.NewGPT2()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			provider := hub.NewProvider(hub.NewClient(hub.ClientConfig{BaseURL: hubURL, Token: hubToken}))
			suggester := assist.NewSuggester(provider.Handle(suggestModel, dev), counter, int(suggestEOS))

			suggestions, err := suggester.Suggest(ctx, assist.SuggestRequest{
				Text:      input,
				Count:     int(count),
				TokensPer: int(tokensPer),
				Strategy:  decoding,
				LowMemory: lowMemory,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			if len(suggestions) == 0 {
				fmt.Println("No suggestions available")
				return nil
			}
			for i, s := range suggestions {
				fmt.Printf("%d. %s\n", i+1, session.Placeholder(s))
			}
			return nil
		},
	}
}
