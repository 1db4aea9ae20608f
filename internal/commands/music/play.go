package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/card"
	"tunecard/internal/core"
	"tunecard/internal/domain"
	"tunecard/internal/music/player"
	"tunecard/internal/music/sources"
)

type PlayCommand struct {
	deps Deps
}

func (c *PlayCommand) Name() string             { return "music-play" }
func (c *PlayCommand) Description() string      { return "Play a song" }
func (c *PlayCommand) Group() string            { return group }
func (c *PlayCommand) Category() string         { return category }
func (c *PlayCommand) UserPermissions() []int64 { return nil }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "input",
				Description: "Song name or link",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "source",
				Description: "Where to look the song up",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "auto", Value: sources.SourceAuto},
					{Name: "youtube", Value: sources.SourceYouTube},
					{Name: "direct link or radio", Value: sources.SourceLink},
				},
			},
		},
	}
}

func (c *PlayCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session, event := context.Session, context.Event
	guildID := event.GuildID
	logger := c.deps.Logger.With(zap.String("guild_id", guildID))

	if err := core.RespondDeferred(session, event); err != nil {
		return err
	}

	input, source := "", sources.SourceAuto
	for _, opt := range event.ApplicationCommandData().Options {
		switch opt.Name {
		case "input":
			input = opt.StringValue()
		case "source":
			source = opt.StringValue()
		}
	}

	requester := requesterOf(event)
	vs, err := c.deps.Bot.FindUserVoiceState(guildID, requester.ID)
	if err != nil {
		return core.EditResponse(session, event, "You must be in a voice channel to play music! ❌")
	}

	if !canJoin(session, vs.ChannelID) {
		return core.EditResponse(session, event, "I don't have permission to connect or speak in this voice channel ❌")
	}

	tracks, err := c.deps.Resolver.Resolve(context.Ctx, input, source, requester)
	if err != nil || len(tracks) == 0 {
		logger.Info("No results", zap.String("input", input), zap.String("source", source), zap.Error(err))
		return core.EditResponse(session, event, "No results found... try again ❌")
	}

	p := c.deps.Bot.GetOrCreatePlayer(guildID)
	p.SetMetadata(player.Metadata{TextChannelID: event.ChannelID, Requester: requester})
	p.Enqueue(tracks...)

	if _, playing := p.Current(); !playing {
		if err := p.Play(vs.ChannelID); err != nil {
			logger.Error("Failed to start playback", zap.Error(err))
			return core.EditResponse(session, event, fmt.Sprintf("I couldn't play the track. ❌\n**Error:** `%v`", err))
		}
	}

	png, err := c.deps.Renderer.RenderCompact(context.Ctx, card.Request{Track: tracks[0], Requester: requester})
	if err != nil {
		logger.Warn("Failed to render card", zap.Error(err))
		return core.EditResponse(session, event, enqueuedMessage(tracks))
	}
	return core.EditResponseFile(session, event, card.FileName, png, nil)
}

// canJoin reports whether the bot may connect and speak in channelID.
func canJoin(s *discordgo.Session, channelID string) bool {
	if s.State == nil || s.State.User == nil {
		return false
	}
	perms, err := s.UserChannelPermissions(s.State.User.ID, channelID)
	if err != nil {
		return false
	}
	return core.HasAll(perms, discordgo.PermissionVoiceConnect, discordgo.PermissionVoiceSpeak)
}

func enqueuedMessage(tracks []domain.Track) string {
	if len(tracks) == 1 {
		return fmt.Sprintf("Added **%s** to the queue ✅", tracks[0].Title)
	}
	return fmt.Sprintf("Added **%d** tracks to the queue ✅", len(tracks))
}
