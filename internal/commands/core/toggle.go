package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"tunecard/internal/core"
)

type ToggleCommand struct {
	refresher CommandRefresher
}

func (c *ToggleCommand) Name() string             { return "cmd-toggle" }
func (c *ToggleCommand) Description() string      { return "Enable or disable a group of commands" }
func (c *ToggleCommand) Group() string            { return core.CoreGroup }
func (c *ToggleCommand) Category() string         { return category }
func (c *ToggleCommand) UserPermissions() []int64 { return managePerms }

func (c *ToggleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, g := range core.Groups() {
		if g == core.CoreGroup {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: g, Value: g})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "group",
				Description: "Choose command group to toggle",
				Required:    true,
				Choices:     choices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "state",
				Description: "Enable or disable",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Enable", Value: "enable"},
					{Name: "Disable", Value: "disable"},
				},
			},
		},
	}
}

func (c *ToggleCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session, event, storage := context.Session, context.Event, context.Storage
	guildID := event.GuildID

	var group, state string
	for _, opt := range event.ApplicationCommandData().Options {
		switch opt.Name {
		case "group":
			group = opt.StringValue()
		case "state":
			state = opt.StringValue()
		}
	}

	if group == core.CoreGroup {
		return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: "You can't disable the `core` group.",
			Color:       core.EmbedColor,
		})
	}

	embed := &discordgo.MessageEmbed{
		Color:  core.EmbedColor,
		Footer: &discordgo.MessageEmbedFooter{Text: "Use /cmd-status to check which groups are disabled."},
	}

	var err error
	if state == "disable" {
		err = storage.DisableGroup(guildID, group)
		embed.Description = fmt.Sprintf("Command group `%s` disabled.", group)
	} else {
		err = storage.EnableGroup(guildID, group)
		embed.Description = fmt.Sprintf("Command group `%s` enabled.", group)
	}
	if err != nil {
		return fmt.Errorf("failed to %s group %s: %w", state, group, err)
	}

	if c.refresher != nil {
		go func() {
			if err := c.refresher.RefreshCommands(guildID); err != nil {
				zap.L().Error("failed to refresh commands", zap.String("guild_id", guildID), zap.Error(err))
			}
		}()
	}

	return core.RespondEmbedEphemeral(session, event, embed)
}
