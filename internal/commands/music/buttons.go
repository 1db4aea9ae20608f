package music

import (
	"go.uber.org/zap"

	"tunecard/internal/core"
)

// ButtonsCommand answers the playback buttons under now-playing cards.
type ButtonsCommand struct {
	deps Deps
}

func (c *ButtonsCommand) Name() string             { return "player" }
func (c *ButtonsCommand) Description() string      { return "Playback buttons" }
func (c *ButtonsCommand) Group() string            { return group }
func (c *ButtonsCommand) Category() string         { return category }
func (c *ButtonsCommand) UserPermissions() []int64 { return nil }

func (c *ButtonsCommand) Run(ctx interface{}) error { return nil }

func (c *ButtonsCommand) Component(ctx *core.ComponentInteractionContext) error {
	session, event := ctx.Session, ctx.Event
	customID := event.MessageComponentData().CustomID
	p := c.deps.activePlayer(event.GuildID)

	switch customID {
	case buttonBack, buttonSkip, buttonResumePause:
		var q controlQueue
		if p != nil {
			q = p
		}
		action, _ := controlAction(customID)
		return core.RespondEphemeral(session, event, action(q))

	case buttonRepeat:
		var q repeatQueue
		if p != nil {
			q = p
		}
		return core.RespondEphemeral(session, event, toggleRepeat(q))

	case buttonLoop:
		if err := core.RespondDeferredEphemeral(session, event); err != nil {
			return err
		}
		var q restartQueue
		if p != nil {
			q = p
		}
		return core.EditResponse(session, event, restartTrack(c.deps.Logger, q))

	case buttonLyrics:
		if err := core.RespondDeferredEphemeral(session, event); err != nil {
			return err
		}
		var q currentQueue
		if p != nil {
			q = p
		}
		embed, msg := findLyrics(ctx.Ctx, c.deps.Logger, c.deps.Lyrics, q)
		if embed != nil {
			return core.EditResponseEmbed(session, event, embed)
		}
		return core.EditResponse(session, event, msg)
	}

	c.deps.Logger.Warn("Unknown player button", zap.String("custom_id", customID))
	return nil
}

// controlAction maps a control button to the action it runs.
func controlAction(customID string) (func(controlQueue) string, bool) {
	switch customID {
	case buttonBack:
		return previousTrack, true
	case buttonSkip:
		return skipTrack, true
	case buttonResumePause:
		return togglePause, true
	}
	return nil, false
}
