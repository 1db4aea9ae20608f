package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the bot configuration. It is built once in main and handed to
// every component that needs it.
type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN,required,notEmpty"`
	StoragePath           string   `env:"STORAGE_PATH" envDefault:"datastore.json"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	LogLevel              string   `env:"LOG_LEVEL" envDefault:"info"`

	Player PlayerOptions `envPrefix:"PLAYER_"`
	Emojis Emojis        `envPrefix:"EMOJI_"`
	Card   CardOptions   `envPrefix:"CARD_"`
	Lyrics LyricsOptions `envPrefix:"LYRICS_"`
}

// PlayerOptions are applied to every guild player.
type PlayerOptions struct {
	Volume               int           `env:"VOLUME" envDefault:"75"`
	LeaveOnEmpty         bool          `env:"LEAVE_ON_EMPTY" envDefault:"true"`
	LeaveOnEmptyCooldown time.Duration `env:"LEAVE_ON_EMPTY_COOLDOWN" envDefault:"30s"`
	LeaveOnEnd           bool          `env:"LEAVE_ON_END" envDefault:"true"`
	LeaveOnEndCooldown   time.Duration `env:"LEAVE_ON_END_COOLDOWN" envDefault:"30s"`
	FFmpegPath           string        `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
}

// Emojis holds the button labels used when emoji labels are enabled.
type Emojis struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	Back        string `env:"BACK" envDefault:"⏮️"`
	Skip        string `env:"SKIP" envDefault:"⏭️"`
	ResumePause string `env:"RESUME_PAUSE" envDefault:"⏯️"`
	Loop        string `env:"LOOP" envDefault:"🔂"`
	Repeat      string `env:"REPEAT" envDefault:"🔁"`
}

// Label picks the emoji when emoji labels are enabled and the emoji is set,
// otherwise the plain text label.
func (e Emojis) Label(emoji, text string) string {
	if e.Enabled && emoji != "" {
		return emoji
	}
	return text
}

type CardOptions struct {
	FetchTimeout       time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	ArtworkFallbackURL string        `env:"ARTWORK_FALLBACK_URL" envDefault:"https://placehold.co/200/2f3136/FFFFFF.png?text=No+Image"`
	AvatarFallbackURL  string        `env:"AVATAR_FALLBACK_URL" envDefault:"https://cdn-icons-png.flaticon.com/512/149/149071.png"`
	LogoURL            string        `env:"LOGO_URL" envDefault:"https://cdn-icons-png.flaticon.com/512/174/174872.png"`
	UserAgent          string        `env:"USER_AGENT" envDefault:"Mozilla/5.0"`
}

type LyricsOptions struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://lrclib.net"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// New loads .env (when present) and parses the environment into a Config.
func New() (*Config, error) {
	// A missing .env is normal in containers; the environment is used as is.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
