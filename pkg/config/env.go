package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var defaultEnv sync.Once

// loadDefaultEnv reads ./.env once. A missing file is not an error.
func loadDefaultEnv() {
	defaultEnv.Do(func() {
		_ = godotenv.Load()
	})
}

// LoadEnv reads .env files into the process environment. Without arguments
// it reads ./.env. Later files override earlier ones, but variables already
// present in the real environment are never replaced.
//
// Call it before Load; configuration types that were already parsed keep
// their cached values until ResetCache or ForceReloadConfig.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}

	merged := make(map[string]string)
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		for k, v := range vars {
			merged[k] = v
		}
	}
	for k, v := range merged {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}
