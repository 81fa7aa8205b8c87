package httpserver

import "errors"

var (
	// ErrStart indicates that the server could not listen or serve.
	ErrStart = errors.New("httpserver: start")
	// ErrShutdown indicates that graceful shutdown did not finish in time.
	ErrShutdown = errors.New("httpserver: shutdown")
	// ErrAlreadyRunning is returned by a second Run on the same Server.
	ErrAlreadyRunning = errors.New("httpserver: already running")
)
