// Package yamlutil wraps goccy/go-yaml for configuration files and YAML
// brochure documents.
package yamlutil

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Input limits. Configuration is small; brochure documents may carry
// embedded images.
const (
	ConfigMaxSize   = 1 << 20
	DocumentMaxSize = 32 << 20
)

// MaxInputSize limits input to Unmarshal and UnmarshalStrict.
var MaxInputSize = ConfigMaxSize

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkSize(data []byte, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	return nil
}

func validateInput(data []byte, v any) error {
	if err := checkSize(data, MaxInputSize); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// ToJSON converts a YAML document of at most DocumentMaxSize bytes to JSON,
// so YAML brochures go through the same validation as JSON payloads.
func ToJSON(data []byte) ([]byte, error) {
	if err := checkSize(data, DocumentMaxSize); err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
