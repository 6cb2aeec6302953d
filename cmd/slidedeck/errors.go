package main

import "errors"

// CLI errors.
var (
	ErrUsage      = errors.New("invalid usage")
	ErrInvalidEnv = errors.New("invalid environment variable")
)
