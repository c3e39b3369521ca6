package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahul/weatherwear/internal/advisor"
	"github.com/rahul/weatherwear/internal/gateway"
	"github.com/rahul/weatherwear/internal/observability"
	"github.com/rahul/weatherwear/internal/wardrobe"
	"github.com/rahul/weatherwear/internal/weather"
	"github.com/rahul/weatherwear/pkg/config"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/sync/errgroup"
)

type app struct {
	cfg      *config.Config
	logger   *observability.Logger
	pipeline *advisor.Pipeline
	out      io.Writer
}

func newApp(cfg *config.Config, events io.Writer, out io.Writer) *app {
	logger := observability.NewLogger(events, cfg.Logging.LLMLog, cfg.Logging.MaxSize)

	model, modelName, temperature, err := newModel(cfg)
	if err != nil {
		log.Printf("Warning: failed to initialize LLM, using rule-based suggestions: %v", err)
		model = nil
	}

	recommender := wardrobe.New(model, modelName, wardrobe.NewPromptManager(cfg.App.Prompts), logger)
	if s, ok := recommender.(*wardrobe.Stylist); ok && temperature > 0 {
		s.Temperature = temperature
	}

	source := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.UserAgent, cfg.Weather.Timeout)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: advisor.NewPipeline(source, recommender, logger),
		out:      out,
	}
}

// newModel builds the model for the default enabled provider. A nil model
// with a nil error means no provider is configured.
func newModel(cfg *config.Config) (llms.Model, string, float64, error) {
	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		return nil, "", 0, nil
	}

	switch pName {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(pCfg.APIKey),
			openai.WithModel(pCfg.Model),
		}
		if pCfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(pCfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, "", 0, err
		}
		return llm, pCfg.Model, pCfg.Temperature, nil
	default:
		return nil, "", 0, fmt.Errorf("provider %s not yet implemented", pName)
	}
}

func setup() (*app, error) {
	log.SetOutput(observability.NewTermWriter())

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	events := io.Discard
	if verbose {
		events = observability.NewTermWriter()
	}
	return newApp(cfg, events, observability.LockedWriter(os.Stdout)), nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runDefault(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	observability.PrintBanner(a.out)

	if !noBatch {
		a.batch(ctx, a.cfg.App.Cities)
	}
	if noInteractive {
		return nil
	}

	console := gateway.NewConsole(os.Stdin, a.out, a.pipeline, a.cfg.App.ExitWords)
	console.ShowPrompt = observability.IsTerminal(os.Stdin)
	return console.Start(ctx)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	if len(args) == 1 {
		fmt.Fprintln(a.out, a.pipeline.Advise(ctx, args[0]))
		return nil
	}
	a.batch(ctx, args)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	gateways, err := a.gateways()
	if err != nil {
		return err
	}
	if len(gateways) == 0 {
		return errors.New("no chat gateway is enabled; configure gateways.telegram or gateways.discord")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, gw := range gateways {
		gw := gw
		g.Go(func() error {
			return gw.Start(gctx)
		})
	}

	err = g.Wait()
	log.Println("gateways stopped")
	return err
}

// batch prints advice for each city in turn, one pipeline run per city.
func (a *app) batch(ctx context.Context, cities []string) {
	for _, city := range cities {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(a.out, "\n%s\n", observability.Divider(city, 0))
		fmt.Fprintln(a.out, a.pipeline.Advise(ctx, city))
		fmt.Fprintf(a.out, "\n%s\n", observability.Divider("", 0))
	}
}

func (a *app) gateways() ([]gateway.Messenger, error) {
	var out []gateway.Messenger

	if tgCfg, ok := a.cfg.GetGatewayConfig("telegram"); ok {
		tg, err := gateway.NewTelegramGateway(tgCfg.Token, a.pipeline)
		if err != nil {
			return nil, fmt.Errorf("failed to start telegram gateway: %w", err)
		}
		out = append(out, tg)
	}
	if dcCfg, ok := a.cfg.GetGatewayConfig("discord"); ok {
		dc, err := gateway.NewDiscordGateway(dcCfg.Token, a.pipeline)
		if err != nil {
			return nil, fmt.Errorf("failed to start discord gateway: %w", err)
		}
		out = append(out, dc)
	}
	return out, nil
}
