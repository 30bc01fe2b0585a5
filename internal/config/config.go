package config

import (
	"errors"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const tokenSecretPath = "/run/secrets/telegram_bot_token"

type Config struct {
	BotToken   string `envconfig:"TELEGRAM_BOT_TOKEN"`
	DBPath     string `envconfig:"DB_PATH" default:"data/prayer.db"`
	City       string `envconfig:"CITY" default:"Bekasi"`
	Country    string `envconfig:"COUNTRY" default:"ID"`
	Timezone   string `envconfig:"TIMEZONE" default:"Asia/Jakarta"`
	CalcMethod int    `envconfig:"CALC_METHOD" default:"11"` // Aladhan calculation method
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	// Docker secret wins over the environment variable.
	if data, err := os.ReadFile(tokenSecretPath); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			cfg.BotToken = token
		}
	}
	if cfg.BotToken == "" {
		return cfg, errors.New("bot token not set: need docker secret or TELEGRAM_BOT_TOKEN")
	}
	return cfg, nil
}
