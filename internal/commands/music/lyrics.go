package music

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/core"
	"tunecard/internal/domain"
	"tunecard/internal/lyrics"
)

// Discord caps embed descriptions at 4096 characters.
const lyricsExcerptLimit = 4000

type currentQueue interface {
	Current() (domain.Track, bool)
}

// findLyrics looks up lyrics for the current track. It returns either an
// embed or a message to show instead.
func findLyrics(ctx context.Context, logger *zap.Logger, finder lyricsFinder, q currentQueue) (*discordgo.MessageEmbed, string) {
	if q == nil {
		return nil, msgNoMusic
	}
	track, ok := q.Current()
	if !ok {
		return nil, msgNoMusic
	}
	if finder == nil {
		return nil, "Lyrics are not available right now ❌"
	}

	found, err := finder.Find(ctx, track.Title, track.Author)
	if errors.Is(err, lyrics.ErrNotFound) {
		return nil, fmt.Sprintf("No lyrics found for **%s** ❌", track.Title)
	}
	if err != nil {
		logger.Warn("Lyrics lookup failed", zap.String("title", track.Title), zap.Error(err))
		return nil, errorMessage("fetch lyrics", err)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - %s", found.Title, found.Artist),
		Description: lyrics.Excerpt(found.Plain, lyricsExcerptLimit),
		Color:       core.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Lyrics provided by LRCLIB"},
	}, ""
}

type LyricsCommand struct {
	deps Deps
}

func (c *LyricsCommand) Name() string             { return "music-lyrics" }
func (c *LyricsCommand) Description() string      { return "Show the lyrics of the current track" }
func (c *LyricsCommand) Group() string            { return group }
func (c *LyricsCommand) Category() string         { return category }
func (c *LyricsCommand) UserPermissions() []int64 { return nil }

func (c *LyricsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *LyricsCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	if err := core.RespondDeferredEphemeral(session, event); err != nil {
		return err
	}

	var q currentQueue
	if p := c.deps.activePlayer(event.GuildID); p != nil {
		q = p
	}
	embed, msg := findLyrics(context.Ctx, c.deps.Logger, c.deps.Lyrics, q)
	if embed != nil {
		return core.EditResponseEmbed(session, event, embed)
	}
	return core.EditResponse(session, event, msg)
}
