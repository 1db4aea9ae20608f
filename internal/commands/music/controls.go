package music

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"tunecard/internal/core"
	"tunecard/internal/music/player"
)

type controlQueue interface {
	Skip() error
	Back() error
	TogglePause() (bool, error)
	Stop() error
}

func skipTrack(q controlQueue) string {
	if q == nil {
		return msgNoMusic
	}
	if err := q.Skip(); err != nil {
		if errors.Is(err, player.ErrNoTrackPlaying) {
			return msgNoMusic
		}
		return errorMessage("skip", err)
	}
	return "Skipped to the next track ⏭️"
}

func previousTrack(q controlQueue) string {
	if q == nil {
		return msgNoMusic
	}
	if err := q.Back(); err != nil {
		if errors.Is(err, player.ErrNoPrevious) {
			return "There is no previous track ❌"
		}
		return errorMessage("go back", err)
	}
	return "Playing the previous track ⏮️"
}

func togglePause(q controlQueue) string {
	if q == nil {
		return msgNoMusic
	}
	paused, err := q.TogglePause()
	if err != nil {
		if errors.Is(err, player.ErrNoTrackPlaying) {
			return msgNoMusic
		}
		return errorMessage("pause", err)
	}
	if paused {
		return "Paused ⏸️"
	}
	return "Resumed ▶️"
}

func stopPlayback(q controlQueue) string {
	if q == nil {
		return msgNoMusic
	}
	if err := q.Stop(); err != nil {
		return errorMessage("stop", err)
	}
	return "Stopped the music and cleared the queue ⏹️"
}

// controlCommand is a slash command that runs one control action on the guild player.
type controlCommand struct {
	deps        Deps
	name        string
	description string
	action      func(controlQueue) string
}

func (c *controlCommand) Name() string             { return c.name }
func (c *controlCommand) Description() string      { return c.description }
func (c *controlCommand) Group() string            { return group }
func (c *controlCommand) Category() string         { return category }
func (c *controlCommand) UserPermissions() []int64 { return nil }

func (c *controlCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.name,
		Description: c.description,
	}
}

func (c *controlCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	var q controlQueue
	if p := c.deps.activePlayer(context.Event.GuildID); p != nil {
		q = p
	}
	return core.RespondEphemeral(context.Session, context.Event, c.action(q))
}

func newSkipCommand(d Deps) *controlCommand {
	return &controlCommand{deps: d, name: "music-skip", description: "Skip to the next track", action: skipTrack}
}

func newBackCommand(d Deps) *controlCommand {
	return &controlCommand{deps: d, name: "music-back", description: "Play the previous track", action: previousTrack}
}

func newPauseCommand(d Deps) *controlCommand {
	return &controlCommand{deps: d, name: "music-pause", description: "Pause or resume playback", action: togglePause}
}

func newStopCommand(d Deps) *controlCommand {
	return &controlCommand{deps: d, name: "music-stop", description: "Stop playback and leave the voice channel", action: stopPlayback}
}
