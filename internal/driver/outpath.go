package driver

import (
	"path/filepath"
	"strings"

	"ufofmt/internal/config"
)

// OutPath resolves the destination path for one source file. With no
// override configured the destination equals the source (in-place rewrite).
// An extension override replaces the extension (a leading dot in the
// configured value is tolerated); a name suffix is inserted into the base
// filename before the extension.
func OutPath(src string, p *config.Policy) string {
	if !p.OutExtensionSet && p.OutNameSuffix == "" {
		return src
	}
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if p.OutNameSuffix != "" {
		stem += p.OutNameSuffix
	}
	if p.OutExtensionSet {
		ext = "." + strings.TrimPrefix(p.OutExtension, ".")
	}
	return filepath.Join(dir, stem+ext)
}
