package main

import (
	"github.com/urfave/cli/v3"

	"github.com/quill-lm/quill/internal/hub"
)

var (
	hubURL       string
	hubToken     string
	deviceName   string
	rewriteModel string
	suggestModel string
	rewriteEOS   int64
	suggestEOS   int64
	lowMemory    bool
	logLevel     string
	logFormat    string
	debug        bool
)

func commonHubFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "hub-url",
			Usage:       "base URL of the inference provider",
			Value:       hub.DefaultBaseURL,
			Destination: &hubURL,
		},
		&cli.StringFlag{
			Name:        "hub-token",
			Usage:       "bearer token for the inference provider",
			Destination: &hubToken,
		},
		&cli.StringFlag{
			Name:        "device",
			Aliases:     []string{"d"},
			Usage:       "execution device (auto, cpu, cuda)",
			Value:       "auto",
			Destination: &deviceName,
		},
		&cli.BoolFlag{
			Name:        "low-memory",
			Usage:       "ask the provider to load models in low memory mode",
			Value:       true,
			Destination: &lowMemory,
		},
	}
}

func rewriteModelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rewrite-model",
			Usage:       "model id for sentence rewriting",
			Value:       "grammarly/coedit-large",
			Destination: &rewriteModel,
		},
		&cli.Int64Flag{
			Name:        "rewrite-eos",
			Usage:       "end-of-sequence token id of the rewrite model",
			Value:       1,
			Destination: &rewriteEOS,
		},
	}
}

func suggestModelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "suggest-model",
			Usage:       "model id for token suggestions",
			Value:       "gpt2",
			Destination: &suggestModel,
		},
		&cli.Int64Flag{
			Name:        "suggest-eos",
			Usage:       "end-of-sequence token id of the suggestion model",
			Value:       50256,
			Destination: &suggestEOS,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
