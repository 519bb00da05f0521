package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse"
	"github.com/acmavirus/Virtual-House/virtualhouse/commands"
	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/database"
	"github.com/acmavirus/Virtual-House/virtualhouse/database/repositories"
	"github.com/acmavirus/Virtual-House/virtualhouse/game"
	"github.com/acmavirus/Virtual-House/virtualhouse/handlers"
	"github.com/acmavirus/Virtual-House/virtualhouse/logger"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Virtual House Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := virtualhouse.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	b := virtualhouse.New(*cfg, version, commit)
	b.DB = db
	b.PlayerRepository = repositories.NewPlayerRepository(db.BunDB())
	b.PropertyRepository = repositories.NewPropertyRepository(db.BunDB())
	b.Game = game.NewService(db, b.PlayerRepository, b.PropertyRepository)
	b.Debouncer = handlers.NewDebouncer(config.DebounceCacheSize, config.DebounceWindow)

	h := handler.New()

	// Slash commands
	h.Command("/menu", handlers.WrapWithLogging("menu", commands.MenuHandler(b)))
	h.Command("/work", handlers.WrapWithLogging("work", commands.WorkHandler(b)))
	h.Command("/shop", handlers.WrapWithLogging("shop", commands.ShopHandler(b)))
	h.Command("/buy", handlers.WrapWithLogging("buy", commands.BuyHandler(b)))
	h.Autocomplete("/buy", commands.BuyAutocompleteHandler(b))
	h.Command("/assets", handlers.WrapWithLogging("assets", commands.AssetsHandler(b)))
	h.Command("/collect", handlers.WrapWithLogging("collect", commands.CollectHandler(b)))
	h.Command("/portfolio", handlers.WrapWithLogging("portfolio", commands.PortfolioHandler(b)))
	h.Command("/top", handlers.WrapWithLogging("top", commands.TopHandler(b)))

	// Button components
	h.Component("/menu/", handlers.WrapComponentWithLogging("menu", commands.MenuComponentHandler(b)))
	h.Component("/shop/", handlers.WrapComponentWithLogging("shop", commands.ShopComponentHandler(b)))
	h.Component("/assets/", handlers.WrapComponentWithLogging("assets", commands.AssetsComponentHandler(b)))
	h.Component("/sellfast/", handlers.WrapComponentWithLogging("sellfast", commands.SellFastComponentHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}
