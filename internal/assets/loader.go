package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// AssetLoader defines the contract for loading CSS styles and HTML template sets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page templates of the named set.
	// Returns ErrTemplateSetNotFound if no template of the set exists.
	// Returns ErrIncompleteTemplateSet if some but not all templates exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// buildTemplateSet reads every required template through read, which must
// report missing files with an error wrapping fs.ErrNotExist.
func buildTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	ts := &TemplateSet{Name: name}
	var missing []string
	for _, tmpl := range RequiredTemplates {
		data, err := read(tmpl + ".html")
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, tmpl)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s.html: %v", ErrAssetRead, tmpl, err)
		}
		ts.set(tmpl, string(data))
	}

	switch {
	case len(missing) == len(RequiredTemplates):
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	case len(missing) > 0:
		return nil, fmt.Errorf("%w: %q missing %s.html", ErrIncompleteTemplateSet, name, missing[0])
	}
	return ts, nil
}
