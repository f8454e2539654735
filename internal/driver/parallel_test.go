package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"ufofmt/internal/config"
	"ufofmt/internal/diag"
	"ufofmt/internal/ufo"
)

const testMetainfo = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
  <key>creator</key><string>org.test</string>
  <key>formatVersion</key><integer>3</integer>
</dict>
</plist>
`

// writeUFO lays out a UFO directory with n well-formed glyphs plus the
// files named in extra (path -> content).
func writeUFO(t *testing.T, n int, extra map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Test.ufo")
	if err := os.MkdirAll(filepath.Join(root, "glyphs"), 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(rel, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("metainfo.plist", testMetainfo)
	write("features.fea", "feature liga {\r\n} liga;\r\n")
	for i := 0; i < n; i++ {
		write(fmt.Sprintf("glyphs/glyph%03d.glif", i),
			fmt.Sprintf(`<glyph name="g%d" format="2"><advance width="%d"/></glyph>`, i, 100+i))
	}
	for rel, content := range extra {
		write(rel, content)
	}
	return root
}

func TestFormatPackageRewritesEverything(t *testing.T) {
	root := writeUFO(t, 5, nil)
	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	report := FormatPackage(context.Background(), pkg, &policy, Options{})
	if !report.OK() {
		t.Fatalf("report not OK: %d failures", report.FailureCount())
	}
	// metainfo + features + 5 glyphs
	if len(report.Results) != 7 {
		t.Errorf("result count = %d, want 7", len(report.Results))
	}

	// Every produced file is CR-free and glyph numbers are canonical.
	glif, err := os.ReadFile(filepath.Join(root, "glyphs", "glyph000.glif"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(glif), `width="100.0"`) {
		t.Errorf("glyph advance not canonicalized:\n%s", glif)
	}
	fea, err := os.ReadFile(filepath.Join(root, "features.fea"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(string(fea), '\r') {
		t.Error("features.fea still contains CR bytes")
	}
}

func TestFormatPackageFaultIsolation(t *testing.T) {
	root := writeUFO(t, 99, map[string]string{
		"glyphs/broken.glif": `<glyph name="broken" format="2"><outline><contour><point x="oops"`,
	})
	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	report := FormatPackage(context.Background(), pkg, &policy, Options{})

	if got := report.FailureCount(); got != 1 {
		t.Fatalf("failure count = %d, want exactly 1", got)
	}
	// 99 glyphs + metainfo + features succeed.
	if got := report.SuccessCount(); got != 101 {
		t.Errorf("success count = %d, want 101", got)
	}
	for _, res := range report.Results {
		if res.Err == nil {
			continue
		}
		if !strings.Contains(res.Path, "broken.glif") {
			t.Errorf("unexpected failed file %q", res.Path)
		}
		if k, ok := diag.KindOf(res.Err); !ok || k != diag.KindParse {
			t.Errorf("failure kind = %v, want KindParse", k)
		}
	}
	if report.OK() {
		t.Error("package with one failure must not report OK")
	}
}

func TestFormatPackageIdempotent(t *testing.T) {
	root := writeUFO(t, 10, nil)
	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	if report := FormatPackage(context.Background(), pkg, &policy, Options{}); !report.OK() {
		t.Fatal("first pass failed")
	}

	snapshot := map[string][]byte{}
	for _, f := range pkg.Files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatal(err)
		}
		snapshot[f.Path] = data
	}

	if report := FormatPackage(context.Background(), pkg, &policy, Options{}); !report.OK() {
		t.Fatal("second pass failed")
	}
	for _, f := range pkg.Files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != string(snapshot[f.Path]) {
			t.Errorf("%s changed on second pass", f.Path)
		}
	}
}

func TestFormatPackageOutExtLeavesSourceUntouched(t *testing.T) {
	root := writeUFO(t, 1, nil)
	src := filepath.Join(root, "glyphs", "glyph000.glif")
	before, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	policy.OutExtension = "xml"
	policy.OutExtensionSet = true
	if report := FormatPackage(context.Background(), pkg, &policy, Options{}); !report.OK() {
		t.Fatal("format failed")
	}

	after, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("source .glif must be untouched when the destination differs")
	}
	dest := filepath.Join(root, "glyphs", "glyph000.xml")
	formatted, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination %s not written: %v", dest, err)
	}
	if !strings.Contains(string(formatted), `width="100.0"`) {
		t.Errorf("destination content not canonical:\n%s", formatted)
	}
}

func TestFeatureFileUnchangedSkipsWrite(t *testing.T) {
	root := writeUFO(t, 1, map[string]string{
		"clean.fea": "feature liga {\n} liga;\n",
	})
	feaPath := filepath.Join(root, "clean.fea")
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(feaPath, past, past); err != nil {
		t.Fatal(err)
	}

	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	if report := FormatPackage(context.Background(), pkg, &policy, Options{}); !report.OK() {
		t.Fatal("format failed")
	}

	info, err := os.Stat(feaPath)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Error("LF-only feature file must not be rewritten in place")
	}
}

type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (c *collectSink) OnEvent(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
}

func TestFormatPackageEmitsEvents(t *testing.T) {
	root := writeUFO(t, 3, nil)
	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	sink := &collectSink{}
	FormatPackage(context.Background(), pkg, &policy, Options{Progress: sink})
	if len(sink.events) != len(pkg.Files) {
		t.Errorf("event count = %d, want %d", len(sink.events), len(pkg.Files))
	}
	for _, evt := range sink.events {
		if evt.Status != StatusDone {
			t.Errorf("event %q status = %q, want done", evt.File, evt.Status)
		}
	}
}

func TestFormatUFOsMultiPackageIsolation(t *testing.T) {
	valid := writeUFO(t, 4, nil)
	invalid := filepath.Join(t.TempDir(), "missing.ufo")
	policy := config.Default()

	sink := &collectSink{}
	reports := FormatUFOs(context.Background(), []string{invalid, valid}, &policy, Options{Progress: sink})
	if len(reports) != 2 {
		t.Fatalf("report count = %d, want 2", len(reports))
	}
	if reports[0].Err == nil {
		t.Error("invalid package should carry a path error")
	}
	if k, ok := diag.KindOf(reports[0].Err); !ok || k != diag.KindPath {
		t.Errorf("invalid package error kind = %v, want KindPath", k)
	}
	if !reports[1].OK() {
		t.Error("valid package should be fully formatted despite the invalid sibling")
	}
	if !AnyFailure(reports) {
		t.Error("AnyFailure must be true when one argument failed")
	}

	pkgEvents := 0
	for _, evt := range sink.events {
		if evt.PackageLevel {
			pkgEvents++
			if evt.Status != StatusError {
				t.Errorf("package-level event status = %q, want error", evt.Status)
			}
			if evt.File != invalid {
				t.Errorf("package-level event file = %q, want %q", evt.File, invalid)
			}
		}
	}
	if pkgEvents != 1 {
		t.Errorf("package-level event count = %d, want 1", pkgEvents)
	}
}

func TestAnyFailureAllGood(t *testing.T) {
	root := writeUFO(t, 2, nil)
	policy := config.Default()
	reports := FormatUFOs(context.Background(), []string{root}, &policy, Options{})
	if AnyFailure(reports) {
		t.Error("AnyFailure must be false when everything succeeded")
	}
	if CountFiles(reports) != 4 {
		t.Errorf("CountFiles = %d, want 4", CountFiles(reports))
	}
}

func TestFormatPackageJobsOne(t *testing.T) {
	root := writeUFO(t, 8, nil)
	pkg, err := ufo.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	policy := config.Default()
	report := FormatPackage(context.Background(), pkg, &policy, Options{Jobs: 1})
	if !report.OK() {
		t.Error("single-worker pool should format the whole package")
	}
}
