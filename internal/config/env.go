package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings that can be injected at build or launch time
type EnvConfig struct {
	APIURL       string `env:"CALMKIDS_API_URL" envDefault:"http://localhost:5000/api"`
	DocumentsDir string `env:"CALMKIDS_DOCUMENTS_DIR"`
	Token        string `env:"CALMKIDS_TOKEN"`
	Debug        bool   `env:"CALMKIDS_DEBUG" envDefault:"false"`
}

// LoadEnv loads EnvConfig from environment variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
