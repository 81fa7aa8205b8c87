package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into the target struct.
	ErrParsingConfig = errors.New("config: parse environment")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be read.
	ErrLoadingEnvFile = errors.New("config: load env file")

	// ErrNilPointer is returned when a nil pointer is passed to Load.
	ErrNilPointer = errors.New("config: nil pointer")
)
