// Package ufo provides the read-only object model for UFO source packages:
// package discovery, an order-preserving property-list parser and a GLIF
// glyph parser. The formatter consumes these structures and produces
// canonical bytes; nothing here writes to disk.
package ufo

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ufofmt/internal/diag"
)

// FileKind tags a constituent file of a UFO package.
type FileKind uint8

const (
	// KindPlist is a property-list metadata file (metainfo, fontinfo,
	// kerning, groups, lib, layercontents, glyph contents).
	KindPlist FileKind = iota
	// KindGlyph is a .glif glyph outline file.
	KindGlyph
	// KindFeature is a .fea OpenType feature-syntax file.
	KindFeature
)

func (k FileKind) String() string {
	switch k {
	case KindPlist:
		return "plist"
	case KindGlyph:
		return "glif"
	case KindFeature:
		return "fea"
	}
	return "unknown"
}

// File is one constituent file of an opened package.
type File struct {
	Path string
	Kind FileKind
}

// Package is an opened, enumerated UFO directory. The struct is read-only
// for the duration of formatting; concurrent tasks share it freely.
type Package struct {
	Path  string
	Files []File
}

// Open validates that path denotes a UFO package directory and enumerates
// its formattable files. Parsing of individual files is deferred to the
// per-file tasks so that one malformed file cannot fail the whole package.
func Open(path string) (*Package, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, diag.NewPath(path, "not a valid UFO directory path")
	}
	if !info.IsDir() {
		return nil, diag.NewPath(path, "not a directory")
	}
	if _, err := os.Stat(filepath.Join(path, "metainfo.plist")); err != nil {
		return nil, diag.NewPath(path, "missing metainfo.plist, not a UFO source directory")
	}

	pkg := &Package{Path: path}
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case strings.HasSuffix(p, ".plist"):
			pkg.Files = append(pkg.Files, File{Path: p, Kind: KindPlist})
		case strings.HasSuffix(p, ".glif"):
			pkg.Files = append(pkg.Files, File{Path: p, Kind: KindGlyph})
		case strings.HasSuffix(p, ".fea"):
			pkg.Files = append(pkg.Files, File{Path: p, Kind: KindFeature})
		}
		return nil
	})
	if err != nil {
		return nil, diag.NewPath(path, err.Error())
	}

	// Deterministic enumeration order; task results stay order-independent.
	sort.Slice(pkg.Files, func(i, j int) bool { return pkg.Files[i].Path < pkg.Files[j].Path })
	return pkg, nil
}
