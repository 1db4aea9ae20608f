package discord

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// commandShape is the part of a definition Discord cares about. IDs and
// versions are left out so that a hash only changes with the definition.
type commandShape struct {
	Name        string                           `json:"name"`
	Description string                           `json:"description"`
	Type        discordgo.ApplicationCommandType `json:"type"`
	Permissions *int64                           `json:"permissions,omitempty"`
	Options     []optionShape                    `json:"options,omitempty"`
}

type optionShape struct {
	Name        string                                 `json:"name"`
	Description string                                 `json:"description"`
	Type        discordgo.ApplicationCommandOptionType `json:"type"`
	Required    bool                                   `json:"required"`
	Choices     []choiceShape                          `json:"choices,omitempty"`
	Options     []optionShape                          `json:"options,omitempty"`
}

type choiceShape struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// hashCommand returns a stable digest of a command definition.
func hashCommand(cmd *discordgo.ApplicationCommand) string {
	shape := commandShape{
		Name:        cmd.Name,
		Description: cmd.Description,
		Type:        cmd.Type,
		Permissions: cmd.DefaultMemberPermissions,
		Options:     shapeOptions(cmd.Options),
	}
	data, _ := json.Marshal(shape)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// shapeOptions copies options sorted by name. Choice order is kept because
// users see it.
func shapeOptions(opts []*discordgo.ApplicationCommandOption) []optionShape {
	if len(opts) == 0 {
		return nil
	}

	out := make([]optionShape, 0, len(opts))
	for _, o := range opts {
		s := optionShape{
			Name:        o.Name,
			Description: o.Description,
			Type:        o.Type,
			Required:    o.Required,
			Options:     shapeOptions(o.Options),
		}
		for _, c := range o.Choices {
			s.Choices = append(s.Choices, choiceShape{Name: c.Name, Value: c.Value})
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
