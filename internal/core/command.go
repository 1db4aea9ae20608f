package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/commandkit"

	"tunecard/internal/storage"
)

// Meta is what the Discord layer knows about a command beyond its name.
type Meta interface {
	Group() string
	Category() string
	// UserPermissions lists the permissions a member needs, any of them.
	// An empty list leaves the command open to everyone.
	UserPermissions() []int64
}

// Handler is a Discord command. Run receives a *SlashInteractionContext.
type Handler interface {
	Meta
	Name() string
	Description() string
	Run(ctx interface{}) error
}

// Providers - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Hook for component beyond Run
type ComponentHandler interface {
	Component(*ComponentInteractionContext) error
}

// Contexts - what runtime hands you when executing a command
// Slash command
type SlashInteractionContext struct {
	Ctx     context.Context
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

// Button or select menu
type ComponentInteractionContext struct {
	Ctx     context.Context
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

// Adapter turns a Handler into a commandkit.Command. Components and slash
// commands share the same middleware chain and are told apart by the
// invocation data.
type Adapter struct {
	Cmd Handler
}

func (a *Adapter) Name() string             { return a.Cmd.Name() }
func (a *Adapter) Description() string      { return a.Cmd.Description() }
func (a *Adapter) Group() string            { return a.Cmd.Group() }
func (a *Adapter) Category() string         { return a.Cmd.Category() }
func (a *Adapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *Adapter) Run(_ context.Context, inv *commandkit.Invocation) error {
	if inv == nil {
		return nil
	}
	if v, ok := inv.Data.(*ComponentInteractionContext); ok {
		if ch, ok := a.Cmd.(ComponentHandler); ok {
			return ch.Component(v)
		}
		return nil
	}
	return a.Cmd.Run(inv.Data)
}

func (a *Adapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// HandlerOf returns the Handler behind a registered command.
func HandlerOf(c commandkit.Command) (Handler, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := commandkit.Root(c).(*Adapter)
	if !ok {
		return nil, false
	}
	return a.Cmd, true
}

// MetaOf returns the metadata of the innermost command.
func MetaOf(c commandkit.Command) (Meta, bool) {
	if c == nil {
		return nil, false
	}
	m, ok := commandkit.Root(c).(Meta)
	return m, ok
}

// interactionOf extracts the fields every middleware needs from an
// invocation.
func interactionOf(inv *commandkit.Invocation) (*discordgo.Session, *discordgo.InteractionCreate, *storage.Storage, bool) {
	if inv == nil {
		return nil, nil, nil, false
	}
	switch v := inv.Data.(type) {
	case *SlashInteractionContext:
		return v.Session, v.Event, v.Storage, true
	case *ComponentInteractionContext:
		return v.Session, v.Event, v.Storage, true
	}
	return nil, nil, nil, false
}

// InteractionUser returns the user behind an interaction in a guild or a DM.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
