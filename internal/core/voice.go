package core

import "tunecard/internal/music/player"

// BotVoice is what music commands need from the bot.
type BotVoice interface {
	GetOrCreatePlayer(guildID string) *player.Player
	// Player returns the guild player when one exists.
	Player(guildID string) (*player.Player, bool)
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}

type VoiceState struct {
	ChannelID string
	UserID    string
}
