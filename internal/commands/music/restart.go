package music

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/core"
)

const msgNoQueue = "No music queue found ❌"

type restartQueue interface {
	Seek(pos time.Duration) error
	Resume() error
}

// restartTrack plays the current track again from the beginning.
func restartTrack(logger *zap.Logger, q restartQueue) string {
	if q == nil {
		return msgNoQueue
	}
	if err := q.Seek(0); err != nil {
		logger.Error("failed to seek to start", zap.Error(err))
		return errorMessage("repeat", err)
	}
	if err := q.Resume(); err != nil {
		logger.Error("failed to resume after restart", zap.Error(err))
		return errorMessage("repeat", err)
	}
	return "Track restarted (repeat) ✅"
}

type RestartCommand struct {
	deps Deps
}

func (c *RestartCommand) Name() string             { return "music-restart" }
func (c *RestartCommand) Description() string      { return "Restart the current track from the beginning" }
func (c *RestartCommand) Group() string            { return group }
func (c *RestartCommand) Category() string         { return category }
func (c *RestartCommand) UserPermissions() []int64 { return nil }

func (c *RestartCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *RestartCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	if err := core.RespondDeferredEphemeral(session, event); err != nil {
		return err
	}

	var q restartQueue
	if p := c.deps.activePlayer(event.GuildID); p != nil {
		q = p
	}
	return core.EditResponse(session, event, restartTrack(c.deps.Logger, q))
}
