package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/quill-lm/quill/internal/api"
	"github.com/quill-lm/quill/internal/device"
	"github.com/quill-lm/quill/internal/hub"
	"github.com/quill-lm/quill/internal/tokens"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		rateLimit   float64
		rateBurst   int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "listen address",
			Value:       "127.0.0.1:8080",
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "read-timeout",
			Usage:       "read timeout",
			Value:       30 * time.Second,
			Destination: &readTimeout,
		},
		&cli.Float64Flag{
			Name:        "rate-limit",
			Usage:       "requests per second per client (0 disables limiting)",
			Destination: &rateLimit,
		},
		&cli.Int64Flag{
			Name:        "rate-burst",
			Usage:       "rate limiter burst size",
			Value:       10,
			Destination: &rateBurst,
		},
	}
	flags = append(flags, commonHubFlags()...)
	flags = append(flags, rewriteModelFlags()...)
	flags = append(flags, suggestModelFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the writing assistant API and web editor",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyHubConfig(cmd, cfg)
			applyServeConfig(cmd, cfg, &addr)

			log := newLogger()

			dev, err := device.Resolve(deviceName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if dev != device.CUDA {
				log.Warn("no accelerator detected, rewriting disabled", "device", dev)
			}

			counter, err := tokens.NewGPT2()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			provider := hub.NewProvider(hub.NewClient(hub.ClientConfig{BaseURL: hubURL, Token: hubToken}))

			// Prime the models in the background so the first editor request
			// does not pay the load. The hub may come up after quill does, so
			// failures only log.
			warmModels := []string{suggestModel}
			if dev == device.CUDA {
				warmModels = append(warmModels, rewriteModel)
			}
			go func() {
				for _, model := range warmModels {
					if err := provider.Handle(model, dev).Warm(ctx); err != nil {
						log.Warn("model warmup failed", "model", model, "error", err)
					}
				}
			}()

			server := api.NewServer(api.Config{
				Device:       dev,
				RewriteModel: rewriteModel,
				RewriteEOS:   int(rewriteEOS),
				SuggestModel: suggestModel,
				SuggestEOS:   int(suggestEOS),
				RateLimit:    rate.Limit(rateLimit),
				RateBurst:    int(rateBurst),
			}, provider, counter, log)

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr, "device", dev)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
