package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads the embedded template set directory templates/{name}.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return buildTemplateSet(name, func(file string) ([]byte, error) {
		return templates.ReadFile(path.Join("templates", name, file))
	})
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
