package assets

import "errors"

// AssetResolver tries a custom loader first and falls back to the embedded
// loader when the asset is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only. A non-empty but invalid path is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplateSet loads a template set, custom directory first. An incomplete
// custom set is an error rather than a reason to fall back.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return loadWithFallback(r, func(loader AssetLoader) (*TemplateSet, error) {
		return loader.LoadTemplateSet(name)
	})
}

// HasCustomLoader returns true if a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func loadWithFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil {
		return v, nil
	}

	// Validation and I/O errors surface; only "not found" falls back.
	if !isNotFoundError(err) {
		var zero T
		return zero, err
	}

	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrTemplateSetNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
