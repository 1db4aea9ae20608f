// Package music holds the music slash commands, the player buttons and the
// now-playing announcer.
package music

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/card"
	"tunecard/internal/config"
	"tunecard/internal/core"
	"tunecard/internal/domain"
	"tunecard/internal/lyrics"
	"tunecard/internal/music/player"
)

const (
	group    = "music"
	category = "🎵 Music"

	msgNoMusic = "No music currently playing ❌"
)

//go:generate mockgen -destination=mock_deps_test.go -package=music . repeatQueue,restartQueue,controlQueue,currentQueue,cardRenderer,lyricsFinder,channelSender

type trackResolver interface {
	Resolve(ctx context.Context, input, source string, requester domain.Requester) ([]domain.Track, error)
}

type cardRenderer interface {
	Render(ctx context.Context, req card.Request) ([]byte, error)
	RenderCompact(ctx context.Context, req card.Request) ([]byte, error)
}

type lyricsFinder interface {
	Find(ctx context.Context, title, artist string) (*lyrics.Lyrics, error)
}

// Deps are shared by every music command.
type Deps struct {
	Logger   *zap.Logger
	Bot      core.BotVoice
	Resolver trackResolver
	Renderer cardRenderer
	Lyrics   lyricsFinder
	Emojis   config.Emojis
}

// Commands builds every music command, buttons included.
func Commands(d Deps) []core.Handler {
	return []core.Handler{
		&PlayCommand{deps: d},
		newSkipCommand(d),
		newBackCommand(d),
		newPauseCommand(d),
		newStopCommand(d),
		&RepeatCommand{deps: d},
		&RestartCommand{deps: d},
		&NowCommand{deps: d},
		&QueueCommand{deps: d},
		&LyricsCommand{deps: d},
		&ButtonsCommand{deps: d},
	}
}

// activePlayer returns the guild player, or nil when the guild has none.
func (d Deps) activePlayer(guildID string) *player.Player {
	if d.Bot == nil {
		return nil
	}
	p, ok := d.Bot.Player(guildID)
	if !ok {
		return nil
	}
	return p
}

// requesterOf describes the member behind an interaction.
func requesterOf(e *discordgo.InteractionCreate) domain.Requester {
	user := core.InteractionUser(e)
	if user == nil {
		return domain.Requester{}
	}

	r := domain.Requester{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.GlobalName,
		AvatarURL:   user.AvatarURL("128"),
	}
	if e.Member != nil && e.Member.Nick != "" {
		r.DisplayName = e.Member.Nick
	}
	return r
}

func errorMessage(action string, err error) string {
	return "An error occurred while trying to " + action + " ❌\n**Error:** `" + err.Error() + "`"
}
