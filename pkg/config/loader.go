package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns FormatYAML for .yaml/.yml files and FormatJSON otherwise.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return FormatYAML
	}
	return FormatJSON
}

// ParseFormat parses "yaml", "yml" or "json" case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want yaml or json)", s)
	}
}

// LoadFromFile reads a ServerConfiguration from a JSON or YAML file.
// Values absent from the file keep their defaults.
func LoadFromFile(path string) (*ServerConfiguration, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultServerConfiguration()
	if err := decode(data, FormatFromPath(path), cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// LoadSeedFile reads, schema-checks and integrity-checks a seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	seed, err := ParseSeed(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes seed data, validating it against the seed schema before
// decoding and for referential integrity after.
func ParseSeed(data []byte, format Format) (*Seed, error) {
	doc, err := toJSONDocument(data, format)
	if err != nil {
		return nil, err
	}
	if err := ValidateSeedDocument(doc); err != nil {
		return nil, err
	}

	var seed Seed
	if err := decode(data, format, &seed); err != nil {
		return nil, err
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("seed integrity: %w", err)
	}
	return &seed, nil
}

// MarshalSeed encodes a seed in the given format.
func MarshalSeed(seed *Seed, format Format) ([]byte, error) {
	if seed == nil {
		return nil, errors.New("seed cannot be nil")
	}
	if format == FormatYAML {
		return yaml.Marshal(seed)
	}
	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return data, nil
}

func decode(data []byte, format Format, out any) error {
	if format == FormatYAML {
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// toJSONDocument decodes data into the generic value tree the schema
// validator expects: maps, slices, strings, bools and json.Number.
func toJSONDocument(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return doc, nil
}
