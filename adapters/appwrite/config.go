package appwrite

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the managed backend's connection settings.
type Config struct {
	Endpoint          string `env:"APPWRITE_ENDPOINT" envDefault:"https://cloud.appwrite.io/v1"`
	Project           string `env:"APPWRITE_PROJECT"`
	Key               string `env:"APPWRITE_KEY"`
	DatabaseID        string `env:"APPWRITE_DATABASE"`
	UsersCollectionID string `env:"APPWRITE_USERS_COLLECTION"`
}

var (
	ErrProjectRequired    = errors.New("appwrite project id is required")
	ErrDatabaseRequired   = errors.New("appwrite database id is required")
	ErrCollectionRequired = errors.New("appwrite users collection id is required")
)

// ConfigFromEnv reads the APPWRITE_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse appwrite config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Project == "" {
		return ErrProjectRequired
	}
	if c.DatabaseID == "" {
		return ErrDatabaseRequired
	}
	if c.UsersCollectionID == "" {
		return ErrCollectionRequired
	}
	return nil
}
