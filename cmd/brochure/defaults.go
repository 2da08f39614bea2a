package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/fileutil"
	"github.com/alnah/go-brochure/internal/yamlutil"
)

// runDefaults prints the default brochure, a valid starting document for
// render and for PUT /api/brochure/.
func runDefaults(args []string, env *Environment) error {
	f := &defaultsFlags{}
	fs := buildDefaultsFlagSet(f, env.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	data, err := encodeDefaults(f.format)
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err := env.Stdout.Write(data)
		return err
	}
	if err := fileutil.WriteFileAtomic(f.output, data); err != nil {
		return fmt.Errorf("writing defaults: %w", err)
	}
	return nil
}

func encodeDefaults(format string) ([]byte, error) {
	b := content.Default()
	switch strings.ToLower(format) {
	case "json", "":
		raw, err := content.Marshal(b)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case "yaml", "yml":
		return yamlutil.Marshal(b)
	default:
		return nil, fmt.Errorf("%w: --format %q (must be json or yaml)", ErrUsage, format)
	}
}
