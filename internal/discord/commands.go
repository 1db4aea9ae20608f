package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/commandkit"
	"go.uber.org/zap"

	"tunecard/internal/core"
)

// commandPlan is what has to change on Discord for a guild.
type commandPlan struct {
	create []*discordgo.ApplicationCommand
	remove []*discordgo.ApplicationCommand
	hashes map[string]string
}

// planCommands compares the wanted definitions with the commands Discord
// already has and the hashes stored after the last sync. A command is created
// when its hash changed or when Discord lost it.
func planCommands(wanted, existing []*discordgo.ApplicationCommand, stored map[string]string) commandPlan {
	plan := commandPlan{hashes: make(map[string]string, len(wanted))}

	wantedNames := make(map[string]bool, len(wanted))
	for _, def := range wanted {
		wantedNames[def.Name] = true
	}

	onDiscord := make(map[string]bool, len(existing))
	for _, ex := range existing {
		onDiscord[ex.Name] = true
		if !wantedNames[ex.Name] {
			plan.remove = append(plan.remove, ex)
		}
	}

	for _, def := range wanted {
		h := hashCommand(def)
		plan.hashes[def.Name] = h
		if stored[def.Name] != h || !onDiscord[def.Name] {
			plan.create = append(plan.create, def)
		}
	}
	return plan
}

// normalizeDefinition returns the slash definition of cmd, if it has one.
func normalizeDefinition(cmd commandkit.Command) *discordgo.ApplicationCommand {
	slash, ok := commandkit.Root(cmd).(core.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

// wantedCommands lists the definitions for guildID, leaving out disabled groups.
func (b *Bot) wantedCommands(guildID string) []*discordgo.ApplicationCommand {
	disabled := map[string]bool{}
	if groups, err := b.storage.GetDisabledGroups(guildID); err == nil {
		for _, g := range groups {
			disabled[g] = true
		}
	}

	var wanted []*discordgo.ApplicationCommand
	for _, cmd := range core.AllCommands() {
		if meta, ok := core.MetaOf(cmd); ok && meta.Group() != core.CoreGroup && disabled[meta.Group()] {
			continue
		}
		if def := normalizeDefinition(cmd); def != nil {
			wanted = append(wanted, def)
		}
	}
	return wanted
}

// RefreshCommands syncs the slash commands of a guild with the registry.
func (b *Bot) RefreshCommands(guildID string) error {
	return b.registerCommands(b.ctx, guildID)
}

// registerCommands syncs guild commands, creating only what changed.
func (b *Bot) registerCommands(ctx context.Context, guildID string) error {
	logger := b.logger.With(zap.String("guild_id", guildID))

	appID := b.session.State.User.ID
	existing, err := b.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to list commands: %w", err)
	}
	stored, err := b.storage.CommandHashes(guildID)
	if err != nil {
		return fmt.Errorf("failed to load command hashes: %w", err)
	}

	plan := planCommands(b.wantedCommands(guildID), existing, stored)

	for _, old := range plan.remove {
		logger.Info("Deleting obsolete command", zap.String("command", old.Name))
		if err := b.session.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			logger.Error("Failed to delete command", zap.String("command", old.Name), zap.Error(err))
		}
	}

	if len(plan.create) > 0 {
		logger.Info("Updating commands", zap.Int("changed", len(plan.create)))
	}
	for _, def := range plan.create {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := b.session.ApplicationCommandCreate(appID, guildID, def); err != nil {
			logger.Error("Can't create command", zap.String("command", def.Name), zap.Error(err))
			delete(plan.hashes, def.Name)
			continue
		}
		logger.Debug("Command created", zap.String("command", def.Name))
	}

	return b.storage.SetCommandHashes(guildID, plan.hashes)
}
