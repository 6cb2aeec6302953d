package main

import (
	"io"
	"os"
	"strings"
	"time"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// Environ returns "KEY=value" pairs, like os.Environ.
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
	}
}

// lookup returns the value of the environment variable key.
func (e *Environment) lookup(key string) (string, bool) {
	if e.Environ == nil {
		return "", false
	}
	for _, kv := range e.Environ() {
		if value, ok := strings.CutPrefix(kv, key+"="); ok {
			return value, true
		}
	}
	return "", false
}
