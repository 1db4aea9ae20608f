package music

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/card"
	"tunecard/internal/config"
	"tunecard/internal/music/player"
)

type channelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts player lifecycle events to the guild text channel that
// started playback.
type Announcer struct {
	logger   *zap.Logger
	sender   channelSender
	renderer cardRenderer
	emojis   config.Emojis
}

func NewAnnouncer(logger *zap.Logger, sender channelSender, renderer cardRenderer, emojis config.Emojis) *Announcer {
	return &Announcer{
		logger:   logger.Named("announcer"),
		sender:   sender,
		renderer: renderer,
		emojis:   emojis,
	}
}

// Handle reacts to a single player event. meta is the player metadata at the
// time the event is handled.
func (a *Announcer) Handle(ctx context.Context, e player.Event, meta player.Metadata) {
	logger := a.logger.With(zap.String("guild_id", e.GuildID), zap.Stringer("event", e.Type))
	if meta.TextChannelID == "" {
		logger.Debug("No text channel to announce to")
		return
	}

	var msg *discordgo.MessageSend
	switch e.Type {
	case player.EventTrackStart:
		if e.Track == nil {
			return
		}
		msg = a.trackStartMessage(ctx, logger, e, meta)

	case player.EventQueueEnd:
		msg = &discordgo.MessageSend{Content: "The queue has finished, add more with /music-play 🎶"}

	case player.EventError:
		content := "Playback error ❌"
		if e.Track != nil {
			content = fmt.Sprintf("Could not play **%s** ❌", e.Track.Title)
		}
		if e.Err != nil {
			content += fmt.Sprintf("\n**Error:** `%v`", e.Err)
		}
		msg = &discordgo.MessageSend{Content: content}

	default:
		return
	}

	if _, err := a.sender.ChannelMessageSendComplex(meta.TextChannelID, msg); err != nil {
		logger.Error("Failed to send announcement", zap.String("channel_id", meta.TextChannelID), zap.Error(err))
	}
}

func (a *Announcer) trackStartMessage(ctx context.Context, logger *zap.Logger, e player.Event, meta player.Metadata) *discordgo.MessageSend {
	requester := e.Track.RequestedBy
	if requester.ID == "" {
		requester = meta.Requester
	}

	msg := &discordgo.MessageSend{Components: playerRows(a.emojis)}
	png, err := a.renderer.Render(ctx, card.Request{Track: *e.Track, Requester: requester})
	if err != nil {
		logger.Error("Failed to render now playing card", zap.String("title", e.Track.Title), zap.Error(err))
		msg.Content = "Now playing: " + trackLine(*e.Track)
		return msg
	}

	msg.Files = []*discordgo.File{{Name: card.FileName, ContentType: "image/png", Reader: bytes.NewReader(png)}}
	return msg
}
