package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tunecard/internal/core"
	"tunecard/internal/storage"
)

const (
	discordMaxMessageLength = 2000
	codeLeftBlockWrapper    = "```md"
	codeRightBlockWrapper   = "```"
)

var maxContentLength = discordMaxMessageLength - len(codeLeftBlockWrapper) - len(codeRightBlockWrapper) - 2

type LogCommand struct{}

func (c *LogCommand) Name() string             { return "cmd-log" }
func (c *LogCommand) Description() string      { return "Review recently used commands" }
func (c *LogCommand) Group() string            { return core.CoreGroup }
func (c *LogCommand) Category() string         { return category }
func (c *LogCommand) UserPermissions() []int64 { return managePerms }

func (c *LogCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

// formatLog renders records newest first as a markdown code block that fits
// in one message.
func formatLog(records []storage.CommandHistoryRecord) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-19s\t%-15s\t%-12s\t%s\n", "# Datetime", "# Username", "# Channel", "# Command"))

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		line := fmt.Sprintf(
			"%-19s\t%-15s\t#%-12s\t/%s\n",
			r.Datetime.Format("2006-01-02 15:04:05"),
			r.Username,
			r.ChannelName,
			r.Command,
		)
		if builder.Len()+len(line) > maxContentLength {
			break
		}
		builder.WriteString(line)
	}

	return codeLeftBlockWrapper + "\n" + builder.String() + codeRightBlockWrapper
}

func (c *LogCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	records, err := context.Storage.FetchCommandHistory(event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch command logs: %w", err)
	}
	if len(records) == 0 {
		return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: "No command logs found.",
			Color:       core.EmbedColor,
		})
	}
	return core.RespondEphemeral(session, event, formatLog(records))
}
