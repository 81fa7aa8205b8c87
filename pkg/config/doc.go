// Package config loads typed configuration from the process environment.
//
// It combines github.com/joho/godotenv for .env files with
// github.com/caarlos0/env/v11 for struct parsing. Fields are described with
// env tags:
//
//	type Config struct {
//		Addr    string        `env:"NOTIFYD_ADDR" envDefault:":8080"`
//		Topics  []string      `env:"NOTIFYD_TOPICS" envSeparator:","`
//		Timeout time.Duration `env:"NOTIFYD_SHUTDOWN_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Parsed values are cached per type for the lifetime of the process, so
// packages can call Load from their constructors without re-reading the
// environment. Tests that change the environment use ResetCache or
// ForceReloadConfig.
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be matched with
// errors.Is.
package config
