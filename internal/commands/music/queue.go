package music

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tunecard/internal/core"
	"tunecard/internal/domain"
)

const queuePageSize = 10

type queueSnapshot struct {
	current  *domain.Track
	upcoming []domain.Track
	repeat   domain.RepeatMode
}

func trackLine(t domain.Track) string {
	duration := t.Duration
	if duration == "" {
		duration = "live"
	}
	line := fmt.Sprintf("**%s** `%s`", t.Title, duration)
	if name := t.RequestedBy.Name(); name != "" {
		line += " · " + name
	}
	return line
}

// queueEmbed lists the current track and the first upcoming ones.
func queueEmbed(snap queueSnapshot) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Music queue",
		Color: core.EmbedColor,
	}

	if snap.current != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Now playing",
			Value: trackLine(*snap.current),
		})
	}

	if len(snap.upcoming) == 0 {
		embed.Description = "The queue is empty."
	} else {
		var b strings.Builder
		for i, t := range snap.upcoming {
			if i == queuePageSize {
				fmt.Fprintf(&b, "...and %d more", len(snap.upcoming)-queuePageSize)
				break
			}
			fmt.Fprintf(&b, "`%d.` %s\n", i+1, trackLine(t))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Up next",
			Value: strings.TrimSpace(b.String()),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d tracks in queue · repeat: %s", len(snap.upcoming), snap.repeat),
	}
	return embed
}

type QueueCommand struct {
	deps Deps
}

func (c *QueueCommand) Name() string             { return "music-queue" }
func (c *QueueCommand) Description() string      { return "Show the music queue" }
func (c *QueueCommand) Group() string            { return group }
func (c *QueueCommand) Category() string         { return category }
func (c *QueueCommand) UserPermissions() []int64 { return nil }

func (c *QueueCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *QueueCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	p := c.deps.activePlayer(context.Event.GuildID)
	if p == nil {
		return core.RespondEphemeral(context.Session, context.Event, msgNoQueue)
	}

	snap := queueSnapshot{upcoming: p.Queue(), repeat: p.RepeatMode()}
	if cur, ok := p.Current(); ok {
		snap.current = &cur
	}
	return core.RespondEmbedEphemeral(context.Session, context.Event, queueEmbed(snap))
}
