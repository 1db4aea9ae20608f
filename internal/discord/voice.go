package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/core"
	"tunecard/internal/music/player"
	"tunecard/internal/music/stream"
	"tunecard/internal/storage"
)

var errNotInVoice = errors.New("user not in any voice channel")

// GetOrCreatePlayer gets or creates a player
func (b *Bot) GetOrCreatePlayer(guildID string) *player.Player {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.players[guildID]; ok {
		return p
	}

	output := stream.NewDiscordOutput(b.logger.Named("voice"), b.session, guildID)
	p := player.New(b.logger.Named("player"), guildID, b.opener, output, player.Options{
		LeaveOnEnd:         b.cfg.Player.LeaveOnEnd,
		LeaveOnEndCooldown: b.cfg.Player.LeaveOnEndCooldown,
	})
	b.players[guildID] = p
	b.watchPlayer(p)
	return p
}

// Player returns the guild player when one was created.
func (b *Bot) Player(guildID string) (*player.Player, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.players[guildID]
	return p, ok
}

// FindUserVoiceState finds the voice state of a user
func (b *Bot) FindUserVoiceState(guildID, userID string) (*core.VoiceState, error) {
	vs, err := b.session.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return nil, errNotInVoice
	}
	return &core.VoiceState{ChannelID: vs.ChannelID, UserID: vs.UserID}, nil
}

// watchPlayer forwards player events to the announcer and the track history
// until the bot stops.
func (b *Bot) watchPlayer(p *player.Player) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-b.ctx.Done():
				return
			case e := <-p.Events():
				if e.Type == player.EventTrackStart && e.Track != nil {
					if err := b.storage.AppendTrackHistory(e.GuildID, storage.TrackHistoryRecord{
						TrackID:     e.Track.ID,
						Title:       e.Track.Title,
						Author:      e.Track.Author,
						URL:         e.Track.URL,
						Source:      e.Track.Source,
						RequestedBy: e.Track.RequestedBy.Name(),
					}); err != nil {
						b.logger.Warn("Failed to store track history", zap.String("guild_id", e.GuildID), zap.Error(err))
					}
				}
				b.announcer.Handle(b.ctx, e, p.Metadata())
			}
		}
	}()
}

// onVoiceStateUpdate schedules a leave when the bot is left alone in its
// channel and cancels it when someone comes back.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if !b.cfg.Player.LeaveOnEmpty {
		return
	}
	p, ok := b.Player(v.GuildID)
	if !ok {
		return
	}
	channelID := p.VoiceChannelID()
	if channelID == "" {
		return
	}

	guild, err := s.State.Guild(v.GuildID)
	if err != nil {
		b.logger.Debug("Guild not in state", zap.String("guild_id", v.GuildID), zap.Error(err))
		return
	}

	botID := ""
	if s.State.User != nil {
		botID = s.State.User.ID
	}

	if listenersIn(guild.VoiceStates, channelID, botID) == 0 {
		b.logger.Info("Voice channel is empty, scheduling leave",
			zap.String("guild_id", v.GuildID),
			zap.Duration("after", b.cfg.Player.LeaveOnEmptyCooldown),
		)
		p.ScheduleLeave(b.cfg.Player.LeaveOnEmptyCooldown)
		return
	}
	p.CancelLeave()
}

// listenersIn counts the humans connected to channelID.
func listenersIn(states []*discordgo.VoiceState, channelID, botID string) int {
	n := 0
	for _, vs := range states {
		if vs.ChannelID != channelID || vs.UserID == botID {
			continue
		}
		if vs.Member != nil && vs.Member.User != nil && vs.Member.User.Bot {
			continue
		}
		n++
	}
	return n
}

var _ core.BotVoice = (*Bot)(nil)
