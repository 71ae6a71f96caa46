package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	S3  S3Config
	App AppConfig
}

type S3Config struct {
	Endpoint string
	Region   string
	UseSSL   bool
}

type AppConfig struct {
	LogLevel string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
		viper.SetDefault("S3_REGION", "")
		viper.SetDefault("S3_USE_SSL", true)
		viper.SetDefault("LOG_LEVEL", "info")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			S3: S3Config{
				Endpoint: viper.GetString("S3_ENDPOINT"),
				Region:   viper.GetString("S3_REGION"),
				UseSSL:   viper.GetBool("S3_USE_SSL"),
			},
			App: AppConfig{
				LogLevel: viper.GetString("LOG_LEVEL"),
			},
		}
	})

	return instance
}
