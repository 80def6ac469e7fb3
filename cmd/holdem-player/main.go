package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-player/internal/config"
	"github.com/lox/holdem-player/internal/display"
)

var CLI struct {
	Config       string `short:"c" long:"config" default:"holdem-player.hcl" help:"Path to HCL configuration file"`
	Players      int    `short:"n" help:"Number of players to run concurrently (overrides config)"`
	Transport    string `short:"t" help:"Transport to the server: redis or websocket (overrides config)"`
	RedisURL     string `name:"redis-url" env:"REDIS_URL" help:"Redis URL (overrides config)"`
	Lobby        string `help:"Redis lobby queue (overrides config)"`
	WebSocketURL string `name:"websocket-url" help:"WebSocket server URL (overrides config)"`
	Strategy     string `short:"s" env:"BET_STRATEGY" help:"Bet strategy: smart or random (overrides config)"`
	Simulations  int    `help:"Virtual boards per smart decision (overrides config)"`
	Seed         int64  `help:"Base random seed; 0 picks a fresh one per player"`
	Sessions     int    `help:"Sessions per player before exiting (0 plays forever)"`
	LogLevel     string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	Debug        bool   `env:"DEBUG" help:"Shorthand for --log-level=debug"`
	NoColor      bool   `help:"Disable coloured cards in the log"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Description("Run virtual Texas hold'em players against a poker server."))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	renderer := lipgloss.NewRenderer(os.Stderr)
	if CLI.NoColor {
		renderer = display.PlainRenderer()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Transport.Kind == config.TransportRedis {
		opts, err := redis.ParseURL(cfg.Transport.RedisURL)
		if err != nil {
			logger.Error("Invalid Redis URL", "err", err)
			ctx.Exit(1)
		}
		rdb = redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(runCtx).Err(); err != nil {
			logger.Error("Failed to reach Redis", "url", cfg.Transport.RedisURL, "err", err)
			ctx.Exit(1)
		}
	}

	runner := &runner{
		cfg:       cfg,
		connector: newConnector(cfg, rdb, logger),
		logger:    logger,
		formatter: display.NewCardsFormatter(true, renderer),
		visual:    display.NewCardsFormatter(false, renderer),
		sessions:  CLI.Sessions,
	}

	logger.Info("Starting players", "count", cfg.Player.Count,
		"transport", cfg.Transport.Kind, "strategy", cfg.Player.Strategy)

	g, gctx := errgroup.WithContext(runCtx)
	for i := range cfg.Player.Count {
		g.Go(func() error {
			return runner.run(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Player stopped", "err", err)
		ctx.Exit(1)
	}
	logger.Info("All players finished")
}

func applyOverrides(cfg *config.Config) {
	if CLI.Players != 0 {
		cfg.Player.Count = CLI.Players
	}
	if CLI.Transport != "" {
		cfg.Transport.Kind = CLI.Transport
	}
	if CLI.RedisURL != "" {
		cfg.Transport.RedisURL = CLI.RedisURL
	}
	if CLI.Lobby != "" {
		cfg.Transport.Lobby = CLI.Lobby
	}
	if CLI.WebSocketURL != "" {
		cfg.Transport.WebSocketURL = CLI.WebSocketURL
	}
	if CLI.Strategy != "" {
		cfg.Player.Strategy = CLI.Strategy
	}
	if CLI.Simulations != 0 {
		cfg.Player.Simulations = CLI.Simulations
	}
	if CLI.Seed != 0 {
		cfg.Player.Seed = CLI.Seed
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.Debug {
		cfg.Log.Level = "debug"
	}
}
