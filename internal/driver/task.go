package driver

import (
	"os"

	"ufofmt/internal/config"
	"ufofmt/internal/diag"
	"ufofmt/internal/format"
	"ufofmt/internal/ufo"
)

// Result captures the outcome of formatting a single file.
type Result struct {
	// Path is the source file the task was created for.
	Path string
	// OutPath is the resolved destination (equal to Path unless an
	// override is configured).
	OutPath string
	// Err is nil on success and a tagged diag.Error on failure.
	Err error
}

// Report aggregates the results for one UFO path argument. The collection
// is order-independent; only the success/failure partition matters.
type Report struct {
	// Package is the UFO path argument this report belongs to.
	Package string
	// Err is a package-level failure (invalid path). When set, no file
	// tasks ran and Results is empty.
	Err error
	// Results holds one entry per file task.
	Results []Result
}

// FailureCount counts failed file tasks.
func (r *Report) FailureCount() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Err != nil {
			n++
		}
	}
	return n
}

// SuccessCount counts successfully rewritten files.
func (r *Report) SuccessCount() int {
	return len(r.Results) - r.FailureCount()
}

// OK reports package success: a valid path and zero task failures.
func (r *Report) OK() bool {
	return r.Err == nil && r.FailureCount() == 0
}

// runTask formats one file: read, parse by kind, canonicalize, resolve the
// destination and write. Every failure comes back as a tagged diag.Error in
// the Result; runTask never panics and never affects sibling tasks.
func runTask(file ufo.File, policy *config.Policy) Result {
	res := Result{Path: file.Path, OutPath: OutPath(file.Path, policy)}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		res.Err = diag.NewParse(file.Path, err)
		return res
	}

	var out []byte
	switch file.Kind {
	case ufo.KindGlyph:
		glyph, err := ufo.ParseGlyph(data)
		if err != nil {
			res.Err = diag.NewParse(file.Path, err)
			return res
		}
		out = format.Glif(glyph, policy)
	case ufo.KindPlist:
		tree, err := ufo.ParsePlist(data)
		if err != nil {
			res.Err = diag.NewParse(file.Path, err)
			return res
		}
		out = format.Plist(tree, policy)
	case ufo.KindFeature:
		// An already LF-only feature file rewritten in place would be a
		// byte-identical write; skip it.
		if res.OutPath == file.Path && !format.FeaturesChanged(data) {
			return res
		}
		out = format.Features(data)
	}

	if err := writeFile(file.Path, res.OutPath, out); err != nil {
		res.Err = diag.NewWrite(res.OutPath, err)
	}
	return res
}

// writeFile performs the single full write of the canonical buffer. The
// source file's permission bits carry over to the destination. Overrides
// never leave the source directory, so no directories are created.
func writeFile(src, dest string, out []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(dest, out, mode)
}
