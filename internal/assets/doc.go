// Package assets provides the brochure stylesheet and page templates.
//
// Assets come from the binary (go:embed) or from a custom directory laid out
// the same way:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}/
//	        ├── partials.html    # slot, header, footer, contact blocks
//	        ├── cover.html
//	        ├── location.html
//	        ├── amenities.html   # amenities and amenities overflow pages
//	        └── floorplans.html
//
// AssetResolver tries the custom directory first and falls back to the
// embedded assets when an asset is not found there, so a custom directory may
// override a single stylesheet without shipping templates.
//
// Asset names are validated against path traversal, and FilesystemLoader
// resolves symlinks before checking that a path stays under its base.
package assets
