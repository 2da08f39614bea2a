package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-brochure/internal/yamlutil"
)

// MaxPayloadSize bounds accepted JSON payloads. Embedded images make
// brochures large, so the limit is generous.
const MaxPayloadSize = 32 << 20

// requiredStrings are the keys a payload must carry, as string values.
var requiredStrings = []string{
	PathBrochureTitle,
	PathMainTitle,
	PathSiteAddressHeading,
	PathAmenitiesHeading,
	PathFloorPlanHeading,
}

// Marshal encodes b as JSON. Nil lists are written as empty arrays, so
// Unmarshal(Marshal(b)) equals b.Clone() rather than b itself when b holds
// nil lists.
func Marshal(b Brochure) ([]byte, error) {
	data, err := json.Marshal(b.Clone())
	if err != nil {
		return nil, fmt.Errorf("encoding brochure: %w", err)
	}
	return data, nil
}

// Unmarshal validates raw and decodes it into a Brochure. The shape is
// strict on known keys: required strings, arrays and item ids are checked
// by Validate. Unknown keys are ignored so documents written by older or
// newer editors still load.
func Unmarshal(raw []byte) (Brochure, error) {
	if err := Validate(raw); err != nil {
		return Brochure{}, err
	}
	return decode(raw)
}

// Validate checks the structure of a JSON payload without decoding it into
// a Brochure: required keys are present and string-typed, list fields are
// arrays, and every list item carries a unique non-empty string id.
func Validate(raw []byte) error {
	if len(raw) > MaxPayloadSize {
		return &ValidationError{Path: "$", Reason: fmt.Sprintf("payload exceeds %d bytes", MaxPayloadSize)}
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Path: "$", Reason: "malformed JSON payload"}
	}
	if doc == nil {
		return &ValidationError{Path: "$", Reason: "payload must be an object"}
	}

	for _, path := range requiredStrings {
		v, ok := lookup(doc, path)
		if !ok {
			return &ValidationError{Path: path, Reason: "missing"}
		}
		if _, isString := v.(string); !isString {
			return &ValidationError{Path: path, Reason: "must be a string"}
		}
	}

	if err := validateItems(doc, "page3.amenities"); err != nil {
		return err
	}
	if err := validateItems(doc, "page4.floorPlans"); err != nil {
		return err
	}

	for _, path := range ListFields() {
		v, ok := lookup(doc, path)
		if !ok || v == nil {
			continue
		}
		if err := validateStrings(path, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCached decodes content restored from a cache. Anything that does not
// look like the current schema is reported as ErrSchemaMismatch so the caller
// can fall back to defaults.
func DecodeCached(raw []byte) (Brochure, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return Brochure{}, fmt.Errorf("%w: unparseable payload", ErrSchemaMismatch)
	}
	for _, path := range []string{"page3.amenities", "page4.floorPlans"} {
		v, ok := lookup(doc, path)
		if _, isArray := v.([]any); !ok || !isArray {
			return Brochure{}, fmt.Errorf("%w: %s is not an array", ErrSchemaMismatch, path)
		}
	}
	b, err := Unmarshal(raw)
	if err != nil {
		return Brochure{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return b, nil
}

// LoadFile reads a brochure from a .json, .yaml or .yml file.
func LoadFile(path string) (Brochure, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return Brochure{}, fmt.Errorf("reading content file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Unmarshal(data)
	case ".yaml", ".yml":
		return UnmarshalYAML(data)
	default:
		return Brochure{}, fmt.Errorf("%w: %q", ErrUnsupportedFile, filepath.Ext(path))
	}
}

// UnmarshalYAML decodes a YAML document with the same layout and
// validation as the JSON form.
func UnmarshalYAML(data []byte) (Brochure, error) {
	raw, err := yamlutil.ToJSON(data)
	if err != nil {
		return Brochure{}, &ValidationError{Path: "$", Reason: err.Error()}
	}
	return Unmarshal(raw)
}

func decode(raw []byte) (Brochure, error) {
	var b Brochure
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&b); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Brochure{}, &ValidationError{Path: typeErr.Field, Reason: "must be a " + typeErr.Type.String()}
		}
		return Brochure{}, &ValidationError{Path: "$", Reason: err.Error()}
	}
	return b.Clone(), nil
}

func validateItems(doc map[string]any, path string) error {
	v, ok := lookup(doc, path)
	if !ok {
		return &ValidationError{Path: path, Reason: "missing"}
	}
	items, isArray := v.([]any)
	if !isArray {
		return &ValidationError{Path: path, Reason: "must be an array"}
	}
	seen := make(map[string]struct{}, len(items))
	for i, raw := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		item, isObject := raw.(map[string]any)
		if !isObject {
			return &ValidationError{Path: itemPath, Reason: "must be an object"}
		}
		id, isString := item["id"].(string)
		if !isString || strings.TrimSpace(id) == "" {
			return &ValidationError{Path: itemPath + ".id", Reason: "must be a non-empty string"}
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{Path: itemPath + ".id", Reason: fmt.Sprintf("duplicate id %q", id)}
		}
		seen[id] = struct{}{}
		if features, ok := item["specsFeaturesItems"]; ok && features != nil {
			if err := validateStrings(itemPath+".specsFeaturesItems", features); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateStrings(path string, v any) error {
	items, isArray := v.([]any)
	if !isArray {
		return &ValidationError{Path: path, Reason: "must be an array"}
	}
	for i, item := range items {
		if _, isString := item.(string); !isString {
			return &ValidationError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: "must be a string"}
		}
	}
	return nil
}

// lookup walks a dotted path through nested JSON objects.
func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
