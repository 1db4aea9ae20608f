package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/commandkit"
	"go.uber.org/zap"

	"tunecard/internal/storage"
)

// CoreGroup is the group that can never be disabled.
const CoreGroup = "core"

// WithGuildOnly silently drops interactions that do not come from a guild.
func WithGuildOnly() commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) error {
			if _, e, _, ok := interactionOf(inv); ok && e.GuildID == "" {
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithGroupAccessCheck refuses commands whose group is disabled in the guild.
func WithGroupAccessCheck() commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) error {
			s, e, st, ok := interactionOf(inv)
			meta, hasMeta := MetaOf(c)
			if !ok || st == nil || !hasMeta {
				return c.Run(ctx, inv)
			}
			group := meta.Group()
			if group == "" || group == CoreGroup {
				return c.Run(ctx, inv)
			}

			disabled, err := st.IsGroupDisabled(e.GuildID, group)
			if err != nil {
				zap.L().Warn("failed to check command group",
					zap.String("group", group), zap.String("guild_id", e.GuildID), zap.Error(err))
				return c.Run(ctx, inv)
			}
			if disabled {
				return RespondEphemeral(s, e, fmt.Sprintf("The `%s` commands are disabled on this server.", group))
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithUserPermissionCheck allows the command when the member holds any of
// its UserPermissions. Administrators always pass.
func WithUserPermissionCheck() commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) error {
			s, e, _, ok := interactionOf(inv)
			meta, hasMeta := MetaOf(c)
			if !ok || !hasMeta || e.Member == nil {
				return c.Run(ctx, inv)
			}
			required := meta.UserPermissions()
			if len(required) == 0 {
				return c.Run(ctx, inv)
			}

			perms := e.Member.Permissions
			if perms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}
			for _, p := range required {
				if perms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			msg := fmt.Sprintf(
				"You need at least one of the following permissions to run this command:\n`%s`",
				strings.Join(PermissionList(required), "`, `"),
			)
			return RespondEphemeral(s, e, msg)
		})
	}
}

// WithCommandLogger records every executed command in the guild history.
func WithCommandLogger() commandkit.Middleware {
	return func(c commandkit.Command) commandkit.Command {
		return commandkit.Wrap(c, func(ctx context.Context, inv *commandkit.Invocation) error {
			err := c.Run(ctx, inv)

			s, e, st, ok := interactionOf(inv)
			if !ok || st == nil || e.GuildID == "" {
				return err
			}
			user := InteractionUser(e)
			if user == nil {
				return err
			}

			name := c.Name()
			if e.Type == discordgo.InteractionMessageComponent {
				name = e.MessageComponentData().CustomID
			}
			if logErr := LogCommand(s, st, e.GuildID, e.ChannelID, user.ID, user.Username, name); logErr != nil {
				zap.L().Warn("failed to log command", zap.String("command", name), zap.Error(logErr))
			}
			return err
		})
	}
}

// LogCommand stores a command invocation, resolving channel and guild names
// from the state cache when possible.
func LogCommand(s *discordgo.Session, st *storage.Storage, guildID, channelID, userID, username, commandName string) error {
	var channelName, guildName string
	if s != nil && s.State != nil {
		if ch, err := s.State.Channel(channelID); err == nil {
			channelName = ch.Name
		}
		if g, err := s.State.Guild(guildID); err == nil {
			guildName = g.Name
		}
	}
	return st.SetCommand(guildID, channelID, channelName, guildName, userID, username, commandName)
}
