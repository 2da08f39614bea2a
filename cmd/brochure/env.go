package main

import (
	"io"
	"os"
	"time"

	brochure "github.com/alnah/go-brochure"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewPool builds the converter pool used by render.
	NewPool func(size int, opts ...brochure.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPool: newConverterPool,
	}
}
