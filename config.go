package pomomo

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

type Config struct {
	DatabaseURL  string
	HTTPAddr     string
	LogLevel     log.Level
	TickInterval time.Duration

	// discord
	BotName         string
	BotToken        string
	NotifyChannelID string
	VoiceGuildID    string
	VoiceChannelID  string
	AlertSoundPath  string
}

func LoadConfig(isProd bool) (Config, error) {
	LoadEnv(isProd)

	config := Config{
		DatabaseURL:     getenv("POMOMO_DB_PATH", "pomomo.db"),
		HTTPAddr:        getenv("POMOMO_HTTP_ADDR", ":3001"),
		BotName:         getenv("POMOMO_BOT_NAME", "Pomomo"),
		BotToken:        getenv("POMOMO_BOT_TOKEN", ""),
		NotifyChannelID: getenv("POMOMO_NOTIFY_CHANNEL_ID", ""),
		VoiceGuildID:    getenv("POMOMO_VOICE_GUILD_ID", ""),
		VoiceChannelID:  getenv("POMOMO_VOICE_CHANNEL_ID", ""),
		AlertSoundPath:  getenv("POMOMO_ALERT_SOUND_PATH", ""),
	}

	level, err := log.ParseLevel(getenv("POMOMO_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid POMOMO_LOG_LEVEL: %w", err)
	}
	config.LogLevel = level

	config.TickInterval, err = time.ParseDuration(getenv("POMOMO_TICK_INTERVAL", "1s"))
	if err != nil || config.TickInterval <= 0 {
		return Config{}, fmt.Errorf("invalid POMOMO_TICK_INTERVAL: %q", getenv("POMOMO_TICK_INTERVAL", ""))
	}

	return config, nil
}

// RequireBot checks the variables needed to connect to Discord.
func (c Config) RequireBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("required environment variable: POMOMO_BOT_TOKEN")
	}
	return nil
}

func (c Config) HasVoiceAlert() bool {
	return c.VoiceGuildID != "" && c.VoiceChannelID != "" && c.AlertSoundPath != ""
}
