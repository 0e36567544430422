package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// buildLogger returns a development zap logger when verbose, nil otherwise.
// Builders treat a nil logger as a nop logger.
func buildLogger(verbose bool) *zap.Logger {
	if !verbose {
		return nil
	}
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil
	}
	return zl
}
