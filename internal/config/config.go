package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	AdminPassword                 string `mapstructure:"ADMIN_PASSWORD"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	OpenAIAPIKey                  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel                   string `mapstructure:"OPENAI_MODEL"`
	StripeSecretKey               string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeProductID               string `mapstructure:"STRIPE_PRODUCT_ID"`
	FrontendURL                   string `mapstructure:"FRONTEND_URL"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "wedding.db")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")

	viper.BindEnv("ADMIN_PASSWORD")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("OPENAI_API_KEY")
	viper.BindEnv("OPENAI_MODEL")
	viper.BindEnv("STRIPE_SECRET_KEY")
	viper.BindEnv("STRIPE_PRODUCT_ID")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config")
	}

	return &config
}
