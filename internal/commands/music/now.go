package music

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/card"
	"tunecard/internal/core"
)

type NowCommand struct {
	deps Deps
}

func (c *NowCommand) Name() string             { return "music-now" }
func (c *NowCommand) Description() string      { return "Show what is playing right now" }
func (c *NowCommand) Group() string            { return group }
func (c *NowCommand) Category() string         { return category }
func (c *NowCommand) UserPermissions() []int64 { return nil }

func (c *NowCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *NowCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	p := c.deps.activePlayer(event.GuildID)
	if p == nil {
		return core.RespondEphemeral(session, event, msgNoMusic)
	}
	track, ok := p.Current()
	if !ok {
		return core.RespondEphemeral(session, event, msgNoMusic)
	}

	if err := core.RespondDeferred(session, event); err != nil {
		return err
	}

	png, err := c.deps.Renderer.Render(context.Ctx, card.Request{Track: track, Requester: track.RequestedBy})
	if err != nil {
		c.deps.Logger.Warn("Failed to render card", zap.String("guild_id", event.GuildID), zap.Error(err))
		return core.EditResponse(session, event, "Now playing: "+trackLine(track))
	}
	return core.EditResponseFile(session, event, card.FileName, png, playerRows(c.deps.Emojis))
}
