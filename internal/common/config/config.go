package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server ServerConfig

	Redis RedisConfig

	// Store selects the persistence adapter once at startup: "redis" or "memory".
	Store string `env:"STORE" envDefault:"redis"`

	Twitch TwitchConfig

	Admin AdminConfig

	Giveaway GiveawayConfig
}

type ServerConfig struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type TwitchConfig struct {
	BotUsername string `env:"TWITCH_BOT_USERNAME" envDefault:""`
	OAuthToken  string `env:"TWITCH_OAUTH_TOKEN" envDefault:""`
	// Channels the bot joins on startup (comma separated, no # prefix).
	Channels []string `env:"TWITCH_CHANNELS" envSeparator:","`
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"password"`
}

type GiveawayConfig struct {
	DefaultPrize string `env:"GIVEAWAY_DEFAULT_PRIZE" envDefault:"Participation in the giveaway"`
	// When set, SelectWinner filters out every winner already drawn in the
	// current session before rerolling.
	RerollExcludePrevious bool `env:"GIVEAWAY_REROLL_EXCLUDE_PREVIOUS" envDefault:"false"`
}

func Load() *Config {
	// Missing .env is fine: in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
