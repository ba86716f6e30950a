package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ConfigSpec
}

func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var spec ConfigSpec
	if err := envconfig.Process("gms", &spec); err != nil {
		_ = envconfig.Usage("gms", &spec)
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Config{ConfigSpec: spec}, nil
}
