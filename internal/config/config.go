package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string
	AdminRoleName string
}

// Load loads config from env and optional .env file. There is no package-level
// state: the returned Config is passed down explicitly from main.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	adminRole := viper.GetString("ADMIN_ROLE_NAME")
	if adminRole == "" {
		adminRole = "admin"
	}

	return &Config{
		Env:           env,
		Port:          port,
		DatabaseURL:   dbURL,
		RedisURL:      viper.GetString("REDIS_URL"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		AdminRoleName: adminRole,
	}, nil
}
