// Package core holds the bot management commands.
package core

import (
	"github.com/bwmarrin/discordgo"

	"tunecard/internal/core"
)

const category = "⚙️ Settings"

// CommandRefresher re-registers the slash commands of a guild.
type CommandRefresher interface {
	RefreshCommands(guildID string) error
}

// Commands builds the management commands.
func Commands(refresher CommandRefresher) []core.Handler {
	return []core.Handler{
		&ToggleCommand{refresher: refresher},
		&StatusCommand{},
		&LogCommand{},
	}
}

var managePerms = []int64{discordgo.PermissionManageGuild}
