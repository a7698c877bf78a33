package config

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed default_seed.yaml
var defaultSeedYAML []byte

// DefaultSeedYAML returns the built-in seed document.
func DefaultSeedYAML() []byte {
	return bytes.Clone(defaultSeedYAML)
}

// DefaultSeed parses the built-in seed. Each call returns a fresh copy.
func DefaultSeed() (*Seed, error) {
	seed, err := ParseSeed(defaultSeedYAML, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in seed: %w", err)
	}
	return seed, nil
}

// MustDefaultSeed is like DefaultSeed but panics on error.
func MustDefaultSeed() *Seed {
	seed, err := DefaultSeed()
	if err != nil {
		panic(err)
	}
	return seed
}
