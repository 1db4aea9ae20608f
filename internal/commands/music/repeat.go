package music

import (
	"github.com/bwmarrin/discordgo"

	"tunecard/internal/core"
	"tunecard/internal/domain"
)

type repeatQueue interface {
	IsPlaying() bool
	RepeatMode() domain.RepeatMode
	SetRepeatMode(domain.RepeatMode)
}

var repeatMessages = map[domain.RepeatMode]string{
	domain.RepeatOff:   "Repeat disabled 🔁",
	domain.RepeatTrack: "Repeating current track 🔂",
	domain.RepeatQueue: "Repeating entire queue 🔁",
}

// toggleRepeat moves q to the next repeat mode and describes the new one.
func toggleRepeat(q repeatQueue) string {
	if q == nil || !q.IsPlaying() {
		return msgNoMusic
	}
	next := q.RepeatMode().Next()
	q.SetRepeatMode(next)
	return repeatMessages[next]
}

type RepeatCommand struct {
	deps Deps
}

func (c *RepeatCommand) Name() string             { return "music-repeat" }
func (c *RepeatCommand) Description() string      { return "Cycle repeat: off, current track, whole queue" }
func (c *RepeatCommand) Group() string            { return group }
func (c *RepeatCommand) Category() string         { return category }
func (c *RepeatCommand) UserPermissions() []int64 { return nil }

func (c *RepeatCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *RepeatCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	var q repeatQueue
	if p := c.deps.activePlayer(context.Event.GuildID); p != nil {
		q = p
	}
	return core.RespondEphemeral(context.Session, context.Event, toggleRepeat(q))
}
