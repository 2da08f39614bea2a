package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")

	// ErrInvalidAssetName indicates the name contains path separators,
	// dots or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected")
)
