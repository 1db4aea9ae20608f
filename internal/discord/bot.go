package discord

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/commandkit"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	corecmds "tunecard/internal/commands/core"
	"tunecard/internal/commands/music"
	"tunecard/internal/config"
	"tunecard/internal/core"
	"tunecard/internal/music/player"
	"tunecard/internal/storage"
)

// commandTimeout bounds a single command or button invocation.
const commandTimeout = 2 * time.Minute

// Bot is a Discord bot
type Bot struct {
	logger    *zap.Logger
	cfg       *config.Config
	storage   *storage.Storage
	session   *discordgo.Session
	opener    player.Opener
	announcer *music.Announcer
	limiter   *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	players map[string]*player.Player
}

// New creates the session, wires handlers and registers every command.
// Nothing connects to Discord until Start.
func New(logger *zap.Logger, cfg *config.Config, st *storage.Storage, opener player.Opener, deps music.Deps) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		logger:  logger.Named("bot"),
		cfg:     cfg,
		storage: st,
		session: session,
		opener:  opener,
		limiter: rate.NewLimiter(rate.Every(time.Second/4), 1),
		ctx:     ctx,
		cancel:  cancel,
		players: make(map[string]*player.Player),
	}

	deps.Bot = b
	if deps.Logger == nil {
		deps.Logger = logger
	}
	b.announcer = music.NewAnnouncer(logger, session, deps.Renderer, cfg.Emojis)
	b.registerCoreCommands(music.Commands(deps))

	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onInteractionCreate)
	session.AddHandler(b.onVoiceStateUpdate)
	return b, nil
}

func (b *Bot) registerCoreCommands(extra []core.Handler) {
	cmds := append(corecmds.Commands(b), extra...)
	for _, cmd := range cmds {
		core.Register(
			cmd,
			core.WithGroupAccessCheck(),
			core.WithUserPermissionCheck(),
			core.WithGuildOnly(),
			core.WithCommandLogger(),
		)
	}
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	return nil
}

// Stop stops every player and closes the gateway connection.
func (b *Bot) Stop(ctx context.Context) error {
	b.logger.Info("Shutdown signal received, cleaning up")
	b.cancel()

	b.mu.RLock()
	players := make([]*player.Player, 0, len(b.players))
	for _, p := range b.players {
		players = append(players, p)
	}
	b.mu.RUnlock()

	for _, p := range players {
		if err := p.Stop(); err != nil {
			b.logger.Warn("Failed to stop player", zap.String("guild_id", p.GuildID()), zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn("Timed out waiting for player watchers")
	}

	return b.session.Close()
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	username := ""
	if r.User != nil {
		username = r.User.Username
	}
	b.logger.Info("Discord bot is running", zap.String("username", username), zap.Int("guilds", len(r.Guilds)))
}

// onGuildCreate fires for every guild on connect and when the bot joins one.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	logger := b.logger.With(zap.String("guild_id", g.ID), zap.String("guild", g.Name))

	if b.isGuildBlacklisted(g.ID) {
		logger.Info("Leaving blacklisted guild")
		if err := s.GuildLeave(g.ID); err != nil {
			logger.Error("Failed to leave guild", zap.Error(err))
		}
		return
	}

	if !b.cfg.InitSlashCommands {
		logger.Debug("Registering slash commands skipped")
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.registerCommands(b.ctx, g.ID); err != nil {
			logger.Error("Error registering slash commands", zap.Error(err))
		}
	}()
}

// onInteractionCreate routes slash commands by name and components by the
// "<command>:" prefix of their custom ID.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		cmd, ok := core.GetCommand(name)
		if !ok {
			b.logger.Warn("Unknown command", zap.String("command", name))
			return
		}

		inv := &commandkit.Invocation{Data: &core.SlashInteractionContext{Ctx: ctx, Session: s, Event: i, Storage: b.storage}}
		if err := cmd.Run(ctx, inv); err != nil {
			b.reportError(s, i, name, err)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		cmd := componentOwner(customID)
		if cmd == nil {
			b.logger.Warn("No matching component", zap.String("custom_id", customID))
			return
		}

		if h, ok := core.HandlerOf(cmd); !ok || !handlesComponents(h) {
			b.logger.Warn("Command does not handle components", zap.String("command", cmd.Name()))
			return
		}
		inv := &commandkit.Invocation{Data: &core.ComponentInteractionContext{Ctx: ctx, Session: s, Event: i, Storage: b.storage}}
		if err := cmd.Run(ctx, inv); err != nil {
			b.reportError(s, i, customID, err)
		}

	default:
		b.logger.Debug("Unhandled interaction type", zap.Stringer("type", i.Type))
	}
}

func handlesComponents(h core.Handler) bool {
	_, ok := h.(core.ComponentHandler)
	return ok
}

// componentOwner finds the command whose name prefixes customID.
func componentOwner(customID string) commandkit.Command {
	name, _, found := strings.Cut(customID, ":")
	if !found {
		return nil
	}
	cmd, ok := core.GetCommand(name)
	if !ok {
		return nil
	}
	return cmd
}

func (b *Bot) reportError(s *discordgo.Session, i *discordgo.InteractionCreate, name string, err error) {
	b.logger.Error("Error running command", zap.String("command", name), zap.String("guild_id", i.GuildID), zap.Error(err))

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Error running command: %v", err),
		Color:       core.EmbedColor,
	}
	if rerr := core.RespondEmbedEphemeral(s, i, embed); rerr != nil {
		// already acknowledged, replace the deferred reply instead
		if eerr := core.EditResponseEmbed(s, i, embed); eerr != nil {
			b.logger.Warn("Failed to report command error", zap.Error(eerr))
		}
	}
}
