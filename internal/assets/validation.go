package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds style and template set names.
const maxAssetNameLength = 64

// ValidateAssetName checks that an asset name is a bare file stem: non-empty,
// short, and free of separators, dots and NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
