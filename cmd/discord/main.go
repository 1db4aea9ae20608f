package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/buildinfo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tunecard/internal/card"
	"tunecard/internal/commands/music"
	"tunecard/internal/config"
	"tunecard/internal/discord"
	"tunecard/internal/lyrics"
	"tunecard/internal/music/player"
	"tunecard/internal/music/sources"
	"tunecard/internal/music/sources/link"
	"tunecard/internal/music/sources/youtube"
	"tunecard/internal/music/stream"
	"tunecard/internal/storage"
)

// AppOptions is the whole dependency graph of the bot.
var AppOptions = fx.Options(
	fx.Provide(
		config.New,
		newLogger,
		newStorage,
		newResolver,
		newOpener,
		newRenderer,
		newLyrics,
		newMusicDeps,
		newBot,
	),
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		AppOptions,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		os.Exit(1)
	}

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to stop cleanly:", err)
		os.Exit(1)
	}
}

// newLogger creates the production logger at the configured level and makes
// it the global one.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newStorage(lc fx.Lifecycle, cfg *config.Config) (*storage.Storage, error) {
	st, err := storage.New(cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(st.Close))
	return st, nil
}

func newResolver(logger *zap.Logger) *sources.Resolver {
	return sources.NewResolver(
		logger.Named("sources"),
		youtube.New(logger.Named("youtube")),
		link.New(logger.Named("link")),
	)
}

func newOpener(logger *zap.Logger, cfg *config.Config, resolver *sources.Resolver) player.Opener {
	return stream.NewFFmpeg(logger.Named("ffmpeg"), cfg.Player, resolver)
}

func newRenderer(logger *zap.Logger, cfg *config.Config) *card.Renderer {
	fetcher := card.NewHTTPFetcher(logger.Named("fetcher"), cfg.Card.FetchTimeout, cfg.Card.UserAgent)
	loader := card.NewLoader(logger.Named("loader"), fetcher)
	return card.NewRenderer(logger.Named("card"), loader, cfg.Card)
}

func newLyrics(logger *zap.Logger, cfg *config.Config) *lyrics.Client {
	return lyrics.NewClient(logger.Named("lyrics"), cfg.Lyrics)
}

func newMusicDeps(logger *zap.Logger, cfg *config.Config, resolver *sources.Resolver, renderer *card.Renderer, lc *lyrics.Client) music.Deps {
	return music.Deps{
		Logger:   logger.Named("music"),
		Resolver: resolver,
		Renderer: renderer,
		Lyrics:   lc,
		Emojis:   cfg.Emojis,
	}
}

func newBot(logger *zap.Logger, cfg *config.Config, st *storage.Storage, opener player.Opener, deps music.Deps) (*discord.Bot, error) {
	return discord.New(logger, cfg, st, opener, deps)
}

// buildFields describes the running binary for the startup log.
func buildFields() []zap.Field {
	info := buildinfo.Get()
	return []zap.Field{
		zap.String("commit", info.Commit),
		zap.String("build_time", info.BuildTime),
		zap.String("go_version", info.GoVersion),
	}
}

func registerHooks(lc fx.Lifecycle, logger *zap.Logger, bot *discord.Bot) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting tunecard bot", buildFields()...)
			return bot.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return bot.Stop(ctx)
		},
	})
}
