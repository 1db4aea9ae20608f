package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tunecard/internal/core"
)

type StatusCommand struct{}

func (c *StatusCommand) Name() string { return "cmd-status" }
func (c *StatusCommand) Description() string {
	return "Check which command groups are enabled or disabled"
}
func (c *StatusCommand) Group() string            { return core.CoreGroup }
func (c *StatusCommand) Category() string         { return category }
func (c *StatusCommand) UserPermissions() []int64 { return nil }

func (c *StatusCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

// statusEmbed splits groups into enabled and disabled ones.
func statusEmbed(groups, disabledGroups []string) *discordgo.MessageEmbed {
	disabledMap := make(map[string]bool, len(disabledGroups))
	for _, g := range disabledGroups {
		disabledMap[g] = true
	}

	var enabled, disabled []string
	for _, group := range groups {
		if disabledMap[group] && group != core.CoreGroup {
			disabled = append(disabled, fmt.Sprintf("`%s`", group))
		} else {
			enabled = append(enabled, fmt.Sprintf("`%s`", group))
		}
	}
	if len(disabled) == 0 {
		disabled = []string{"_none_"}
	}
	if len(enabled) == 0 {
		enabled = []string{"_none_"}
	}

	return &discordgo.MessageEmbed{
		Title: "Commands Status",
		Color: core.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Disabled", Value: strings.Join(disabled, ", ")},
			{Name: "Enabled", Value: strings.Join(enabled, ", ")},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /cmd-toggle to manage groups. The core group can't be disabled.",
		},
	}
}

func (c *StatusCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	disabled, err := context.Storage.GetDisabledGroups(context.Event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch disabled groups: %w", err)
	}
	return core.RespondEmbedEphemeral(context.Session, context.Event, statusEmbed(core.Groups(), disabled))
}
