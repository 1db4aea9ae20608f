package music

import (
	"github.com/bwmarrin/discordgo"

	"tunecard/internal/config"
)

// Custom IDs of the player buttons. The prefix routes them to ButtonsCommand.
const (
	buttonBack        = "player:back"
	buttonSkip        = "player:skip"
	buttonResumePause = "player:resume&pause"
	buttonLoop        = "player:loop"
	buttonRepeat      = "player:repeat"
	buttonLyrics      = "player:lyrics"
)

// playerRows builds the two rows of playback buttons sent under a card.
func playerRows(e config.Emojis) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: buttonBack, Label: e.Label(e.Back, "Back"), Style: discordgo.PrimaryButton},
			discordgo.Button{CustomID: buttonSkip, Label: e.Label(e.Skip, "Skip"), Style: discordgo.PrimaryButton},
			discordgo.Button{CustomID: buttonResumePause, Label: e.Label(e.ResumePause, "Pause/Play"), Style: discordgo.DangerButton},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: buttonLoop, Label: e.Label(e.Loop, "Loop"), Style: discordgo.SecondaryButton},
			discordgo.Button{CustomID: buttonRepeat, Label: e.Label(e.Repeat, "Repeat"), Style: discordgo.SecondaryButton},
			discordgo.Button{CustomID: buttonLyrics, Label: "Lyrics", Style: discordgo.SecondaryButton},
		}},
	}
}
