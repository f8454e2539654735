package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the on-disk ufofmt.toml representation. Every field is
// optional; CLI flags override whatever the manifest sets.
type Manifest struct {
	Path   string
	Format formatConfig `toml:"format"`
}

type formatConfig struct {
	IndentNumber *int    `toml:"indent-number"`
	IndentSpace  *bool   `toml:"indent-space"`
	SingleQuotes *bool   `toml:"singlequotes"`
	OutExt       *string `toml:"out-ext"`
	OutName      *string `toml:"out-name"`
}

// FindManifest walks from startDir toward the filesystem root looking for
// a ufofmt.toml. Returns ok=false when none exists.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "ufofmt.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest decodes a ufofmt.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m.Path = path
	return &m, nil
}

// Apply overlays manifest values onto a policy. Only fields the manifest
// actually sets are touched, so flag handling can run afterwards and win.
func (m *Manifest) Apply(p *Policy) {
	if m == nil {
		return
	}
	if m.Format.IndentNumber != nil {
		p.IndentCount = *m.Format.IndentNumber
	}
	if m.Format.IndentSpace != nil && *m.Format.IndentSpace {
		p.IndentChar = IndentSpace
	}
	if m.Format.SingleQuotes != nil && *m.Format.SingleQuotes {
		p.QuoteStyle = QuoteSingle
	}
	if m.Format.OutExt != nil {
		p.OutExtension = *m.Format.OutExt
		p.OutExtensionSet = true
	}
	if m.Format.OutName != nil {
		p.OutNameSuffix = *m.Format.OutName
	}
}
