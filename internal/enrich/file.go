package enrich

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/meur/umaviewer/internal/config"
)

var (
	ErrInputNotFound = errors.New("input file not found")
	ErrInvalidJSON   = errors.New("invalid JSON")
	ErrNotArray      = errors.New("expected array of characters")
	ErrPermission    = errors.New("permission denied")
	ErrUsage         = errors.New("no input file given and data.json not found in . or ..")
)

// Decode parses a data.json document. Numbers are kept as json.Number so that
// original values are written back exactly as they were read.
func Decode(raw []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	records, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrNotArray, doc)
	}
	return records, nil
}

// LoadFile reads and decodes a data.json file
func LoadFile(path string) ([]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrInputNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Encode renders records as two-space indented JSON with non-ASCII characters and
// markup left literal
func Encode(records []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes records to path
func WriteFile(path string, records []any) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%s: %w", path, ErrPermission)
		}
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ResolvePaths picks input and output paths from the command-line arguments.
// With no arguments it looks for data.json in dir, then in its parent. The output
// defaults to enriched_data.json beside the input.
func ResolvePaths(dir string, args []string) (input, output string, err error) {
	switch {
	case len(args) >= 2:
		return args[0], args[1], nil
	case len(args) == 1:
		return args[0], filepath.Join(filepath.Dir(args[0]), config.EnrichedFile), nil
	}

	for _, candidate := range []string{
		filepath.Join(dir, config.DataFile),
		filepath.Join(dir, "..", config.DataFile),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, filepath.Join(filepath.Dir(candidate), config.EnrichedFile), nil
		}
	}
	return "", "", ErrUsage
}
