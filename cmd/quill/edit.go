package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/quill-lm/quill/internal/assist"
	"github.com/quill-lm/quill/internal/device"
	"github.com/quill-lm/quill/internal/hub"
	"github.com/quill-lm/quill/internal/session"
	"github.com/quill-lm/quill/internal/tokens"
)

func editCmd() *cli.Command {
	var (
		text      string
		task      string
		decoding  string
		maxLength int64
		count     int64
		tokensPer int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "initial text to edit",
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
			Usage:       "rewrite length cap in tokens",
			Value:       200,
			Destination: &maxLength,
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
	}
	flags = append(flags, commonHubFlags()...)
	flags = append(flags, rewriteModelFlags()...)
	flags = append(flags, suggestModelFlags()...)

	return &cli.Command{
		Name:  "edit",
		Usage: "Edit text interactively with suggestions and rewrites",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyHubConfig(cmd, cfg)
			var streamMode string
			applyRewriteConfig(cmd, cfg, &task, &decoding, &maxLength, &streamMode)
			applySuggestConfig(cmd, cfg, &decoding, &count, &tokensPer)

			dev, err := device.Resolve(deviceName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			counter, err := tokens.NewGPT2()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			chosen := assist.Task(task)
			if !assist.Known(chosen) {
				fmt.Fprintf(os.Stderr, "warning: unknown task %q, using %s\n", task, assist.TaskGrammar)
				chosen = assist.TaskGrammar
			}

			provider := hub.NewProvider(hub.NewClient(hub.ClientConfig{BaseURL: hubURL, Token: hubToken}))
			suggester := assist.NewSuggester(provider.Handle(suggestModel, dev), counter, int(suggestEOS))

			var rewriter *assist.Rewriter
			if dev == device.CUDA {
				rewriter = assist.NewRewriter(provider.Handle(rewriteModel, dev), int(rewriteEOS))
			} else {
				fmt.Fprintln(os.Stderr, "Use a GPU for more features!")
			}

			if err := provider.Handle(suggestModel, dev).Warm(ctx); err != nil {
				return cli.Exit(fmt.Sprintf("error: warm %s: %v", suggestModel, err), 1)
			}

			initial := text
			if initial == "" {
				initial = session.DefaultText
			}

			ed := &editor{
				state:     session.New(initial),
				suggester: suggester,
				rewriter:  rewriter,
				task:      chosen,
				strategy:  decoding,
				maxLength: int(maxLength),
				count:     int(count),
				tokensPer: int(tokensPer),
				lowMemory: lowMemory,
			}
			return ed.run(ctx)
		},
	}
}

// editor drives one interactive editing session. The document and its
// suggestions live in the session state; the editor only adds generation
// settings and the last unapplied rewrite.
type editor struct {
	state     *session.State
	suggester *assist.Suggester
	rewriter  *assist.Rewriter
	task      assist.Task
	strategy  string
	maxLength int
	count     int
	tokensPer int
	lowMemory bool

	lastRewrite string
}

func (ed *editor) run(ctx context.Context) error {
	fmt.Println("Interactive editor. Type :help for commands, :quit to exit.")
	ed.printText()
	ed.refreshSuggestions(ctx)

	for {
		line, err := readInteractiveLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := ed.handleCommand(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		ed.state.SetText(line)
		ed.refreshSuggestions(ctx)
	}
}

func (ed *editor) handleCommand(ctx context.Context, line string) (bool, error) {
	name, arg := parseEditCommand(line)
	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "help":
		ed.printHelp()
	case "show":
		ed.printText()
	case "task":
		if arg == "" {
			fmt.Printf("task: %s\n", ed.task)
			return false, nil
		}
		t := assist.Task(arg)
		if !assist.Known(t) {
			return false, fmt.Errorf("unknown task %q", arg)
		}
		ed.task = t
	case "decoding":
		if arg == "" {
			fmt.Printf("decoding: %s\n", ed.strategy)
			return false, nil
		}
		ed.strategy = arg
	case "count":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return false, errors.New("count wants a positive number")
		}
		ed.count = n
	case "tokens":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return false, errors.New("tokens wants a positive number")
		}
		ed.tokensPer = n
	case "accept":
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return false, errors.New("accept wants a suggestion number")
		}
		if !ed.state.AcceptSuggestion(idx - 1) {
			return false, fmt.Errorf("no suggestion %d", idx)
		}
		ed.printText()
		ed.refreshSuggestions(ctx)
	case "suggest":
		ed.state.RequestSuggestions()
		ed.refreshSuggestions(ctx)
	case "rewrite":
		return false, ed.rewrite(ctx)
	case "replace":
		if ed.lastRewrite == "" {
			return false, errors.New("nothing to replace with; run :rewrite first")
		}
		ed.state.Replace(ed.lastRewrite)
		ed.lastRewrite = ""
		ed.printText()
		ed.refreshSuggestions(ctx)
	default:
		return false, fmt.Errorf("unknown command %q (:help lists commands)", name)
	}
	return false, nil
}

func (ed *editor) rewrite(ctx context.Context) error {
	if ed.rewriter == nil {
		return errors.New("rewriting needs a cuda device")
	}

	fmt.Println("Thinking...")
	out, err := ed.rewriter.Rewrite(ctx, assist.RewriteRequest{
		Task:      ed.task,
		Text:      ed.state.Text,
		Strategy:  ed.strategy,
		MaxLength: ed.maxLength,
		LowMemory: ed.lowMemory,
	})
	if err != nil {
		return err
	}
	fmt.Println("Transformation completed!")

	ed.lastRewrite = out
	ed.state.PauseSuggestions()

	w := NewStreamWriter(StreamTypewriter, os.Stdout)
	w.Write(out)
	w.Flush()
	fmt.Println()
	fmt.Println("(:replace applies the rewrite)")
	return nil
}

func (ed *editor) refreshSuggestions(ctx context.Context) {
	if !ed.state.WantSuggestions {
		return
	}

	fmt.Fprintln(os.Stderr, "Generating token suggestions...")
	suggestions, err := ed.suggester.Suggest(ctx, assist.SuggestRequest{
		Text:      ed.state.Text,
		Count:     ed.count,
		TokensPer: ed.tokensPer,
		Strategy:  ed.strategy,
		LowMemory: ed.lowMemory,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: suggestions: %v\n", err)
		return
	}
	ed.state.SetSuggestions(suggestions)
	ed.printSuggestions()
}

func (ed *editor) printText() {
	fmt.Println()
	fmt.Println(ed.state.Text)
	fmt.Println()
}

func (ed *editor) printSuggestions() {
	if len(ed.state.Suggestions) == 0 {
		fmt.Println("No suggestions available")
		return
	}
	for i, s := range ed.state.Suggestions {
		fmt.Printf("  %d. %s\n", i+1, session.Placeholder(s))
	}
}

func (ed *editor) printHelp() {
	fmt.Print(`Commands:
  :show              print the current text
  :task [name]       show or set the rewrite task
  :decoding [name]   show or set the decoding strategy (greedy, stochastic)
  :count N           suggestions to request
  :tokens N          tokens added per suggestion
  :suggest           regenerate suggestions
  :accept N          append suggestion N to the text
  :rewrite           rewrite the text with the current task
  :replace           replace the text with the last rewrite
  :quit              exit

Anything else replaces the text.
`)
}

func parseEditCommand(line string) (string, string) {
	line = strings.TrimPrefix(line, ":")
	name, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(arg)
}
