package format

import (
	"bytes"
	"strings"
	"testing"

	"ufofmt/internal/config"
	"ufofmt/internal/ufo"
)

func testGlyph() *ufo.Glyph {
	return &ufo.Glyph{
		Name:     "A",
		Format:   "2",
		Advance:  &ufo.Advance{Width: 400},
		Unicodes: []string{"0041"},
		Anchors:  []ufo.Anchor{{X: 200, Y: 700, Name: "top"}},
		Outline: &ufo.Outline{Elements: []ufo.OutlineElement{
			{Contour: &ufo.Contour{Points: []ufo.Point{
				{X: 20, Y: 0, Type: "line"},
				{X: 380, Y: 0, Type: "line"},
				{X: 200, Y: 700, Type: "line", Smooth: true},
			}}},
			{Component: &ufo.Component{
				Base:      "acutecomb",
				Transform: ufo.Transform{XScale: 1, YScale: 1, XOffset: 180, YOffset: -20},
			}},
		}},
		Lib: &ufo.Value{Kind: ufo.KindDict, Dict: []ufo.KeyValue{
			{Key: "public.markColor", Value: &ufo.Value{Kind: ufo.KindString, Str: "1,0,0,1"}},
		}},
	}
}

const goldenGlifDefault = `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="A" format="2">
	<advance width="400.0"/>
	<unicode hex="0041"/>
	<anchor x="200.0" y="700.0" name="top"/>
	<outline>
		<contour>
			<point x="20.0" y="0.0" type="line"/>
			<point x="380.0" y="0.0" type="line"/>
			<point x="200.0" y="700.0" type="line" smooth="yes"/>
		</contour>
		<component base="acutecomb" xOffset="180.0" yOffset="-20.0"/>
	</outline>
	<lib>
		<dict>
			<key>public.markColor</key>
			<string>1,0,0,1</string>
		</dict>
	</lib>
</glyph>
`

func TestGlifGoldenDefault(t *testing.T) {
	policy := config.Default()
	got := string(Glif(testGlyph(), &policy))
	if got != goldenGlifDefault {
		t.Errorf("canonical GLIF mismatch:\ngot:\n%s\nwant:\n%s", got, goldenGlifDefault)
	}
}

func TestGlifSingleQuotes(t *testing.T) {
	policy := config.Default()
	policy.QuoteStyle = config.QuoteSingle
	got := string(Glif(testGlyph(), &policy))
	if !strings.HasPrefix(got, "<?xml version='1.0' encoding='UTF-8'?>\n") {
		t.Errorf("declaration not single-quoted:\n%s", got)
	}
	if strings.ContainsRune(got, '"') {
		t.Errorf("single-quote output still contains double quotes:\n%s", got)
	}
}

func TestGlifSpaceIndent(t *testing.T) {
	policy := config.Default()
	policy.IndentChar = config.IndentSpace
	policy.IndentCount = 2
	got := string(Glif(testGlyph(), &policy))
	if !strings.Contains(got, "\n  <advance") {
		t.Errorf("first level should be indented with two spaces:\n%s", got)
	}
	if !strings.Contains(got, "\n      <point") {
		t.Errorf("third level should be indented with six spaces:\n%s", got)
	}
	if strings.ContainsRune(got, '\t') {
		t.Error("space-indent output must not contain tabs")
	}
}

func TestGlifIdempotent(t *testing.T) {
	policy := config.Default()
	first := Glif(testGlyph(), &policy)
	reparsed, err := ufo.ParseGlyph(first)
	if err != nil {
		t.Fatalf("canonical output must re-parse: %v", err)
	}
	second := Glif(reparsed, &policy)
	if !bytes.Equal(first, second) {
		t.Errorf("second pass differs:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestGlifNoCarriageReturns(t *testing.T) {
	policy := config.Default()
	if bytes.IndexByte(Glif(testGlyph(), &policy), '\r') >= 0 {
		t.Error("canonical GLIF must not contain CR bytes")
	}
}

func TestGlifOptionalElements(t *testing.T) {
	policy := config.Default()
	x := 100.0
	g := &ufo.Glyph{
		Name:        "space",
		Format:      "2",
		FormatMinor: "1",
		Advance:     &ufo.Advance{},
		HasNote:     true,
		Note:        "em space & friends",
		Guidelines:  []ufo.Guideline{{X: &x, Name: "left"}},
		Outline:     &ufo.Outline{},
	}
	got := string(Glif(g, &policy))
	want := `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="space" format="2" formatMinor="1">
	<note>em space &amp; friends</note>
	<guideline x="100.0" name="left"/>
	<outline/>
</glyph>
`
	if got != want {
		t.Errorf("optional-element rendering mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGlifAttributeEscaping(t *testing.T) {
	policy := config.Default()
	g := &ufo.Glyph{Name: `quote"<&`, Format: "2"}
	got := string(Glif(g, &policy))
	if !strings.Contains(got, `name="quote&quot;&lt;&amp;"`) {
		t.Errorf("attribute escaping wrong:\n%s", got)
	}
}

func TestGlifAttributeWhitespaceEscaped(t *testing.T) {
	policy := config.Default()
	g := &ufo.Glyph{Name: "a\rb\nc\td", Format: "2"}
	first := Glif(g, &policy)
	if bytes.IndexByte(first, '\r') >= 0 {
		t.Errorf("canonical output contains a raw CR byte:\n%s", first)
	}
	if !bytes.Contains(first, []byte(`name="a&#13;b&#10;c&#9;d"`)) {
		t.Errorf("whitespace not emitted as character references:\n%s", first)
	}

	reparsed, err := ufo.ParseGlyph(first)
	if err != nil {
		t.Fatal(err)
	}
	if reparsed.Name != g.Name {
		t.Errorf("name round-trip = %q, want %q", reparsed.Name, g.Name)
	}
	second := Glif(reparsed, &policy)
	if !bytes.Equal(first, second) {
		t.Errorf("second pass differs:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
