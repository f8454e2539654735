package ufo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Glyph is one parsed .glif file. Optional members are pointers so the
// canonical serializer can distinguish "absent" from "zero".
type Glyph struct {
	Name        string
	Format      string
	FormatMinor string

	Advance    *Advance
	Unicodes   []string
	Note       string
	HasNote    bool
	Image      *Image
	Guidelines []Guideline
	Anchors    []Anchor
	Outline    *Outline
	Lib        *Value
}

// Advance holds the glyph advance. Width and height default to zero.
type Advance struct {
	Width  float64
	Height float64
}

// Image references a background image with an affine placement.
type Image struct {
	FileName  string
	Transform Transform
	Color     string
}

// Guideline is a glyph-level guideline; X, Y and Angle are each optional.
type Guideline struct {
	X, Y, Angle *float64
	Name        string
	Color       string
	Identifier  string
}

// Anchor is a named glyph attachment point.
type Anchor struct {
	X, Y       float64
	Name       string
	Color      string
	Identifier string
}

// Transform is a 2x3 affine matrix with GLIF attribute naming.
type Transform struct {
	XScale  float64
	XYScale float64
	YXScale float64
	YScale  float64
	XOffset float64
	YOffset float64
}

// Identity is the default GLIF transform.
var Identity = Transform{XScale: 1, YScale: 1}

// IsIdentity reports whether the transform equals the GLIF default.
func (t Transform) IsIdentity() bool { return t == Identity }

// Outline preserves the interleaved order of contours and components as
// declared in the source file.
type Outline struct {
	Elements []OutlineElement
}

// OutlineElement is either a contour or a component, never both.
type OutlineElement struct {
	Contour   *Contour
	Component *Component
}

// Contour is an ordered point list.
type Contour struct {
	Identifier string
	Points     []Point
}

// Point is one on- or off-curve outline point.
type Point struct {
	X, Y       float64
	Type       string
	Smooth     bool
	Name       string
	Identifier string
}

// Component references another glyph by name with an affine placement.
type Component struct {
	Base       string
	Transform  Transform
	Identifier string
}

// ParseGlyph parses a .glif file. The parser is strict about numbers (they
// must be valid decimal floats) and lenient about element order, which the
// canonical serializer later fixes.
func ParseGlyph(data []byte) (*Glyph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("glif: missing <glyph> element")
		}
		if err != nil {
			return nil, fmt.Errorf("glif: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "glyph" {
			return nil, fmt.Errorf("glif: unexpected root element <%s>", se.Name.Local)
		}
		return decodeGlyph(dec, se)
	}
}

func decodeGlyph(dec *xml.Decoder, root xml.StartElement) (*Glyph, error) {
	g := &Glyph{Format: "2"}
	for _, a := range root.Attr {
		switch a.Name.Local {
		case "name":
			g.Name = a.Value
		case "format":
			g.Format = a.Value
		case "formatMinor":
			g.FormatMinor = a.Value
		}
	}
	if g.Name == "" {
		return nil, fmt.Errorf("glif: <glyph> is missing the name attribute")
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("glif: unterminated <glyph>: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := decodeGlyphChild(dec, t, g); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == "glyph" {
				return g, nil
			}
		}
	}
}

func decodeGlyphChild(dec *xml.Decoder, se xml.StartElement, g *Glyph) error {
	switch se.Name.Local {
	case "advance":
		adv := &Advance{}
		for _, a := range se.Attr {
			f, err := parseGlifFloat(se.Name.Local, a)
			if err != nil {
				return err
			}
			switch a.Name.Local {
			case "width":
				adv.Width = f
			case "height":
				adv.Height = f
			}
		}
		g.Advance = adv
		return skip(dec)
	case "unicode":
		for _, a := range se.Attr {
			if a.Name.Local == "hex" {
				hex := strings.ToUpper(strings.TrimSpace(a.Value))
				if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
					return fmt.Errorf("glif: bad unicode hex %q: %w", a.Value, err)
				}
				for len(hex) < 4 {
					hex = "0" + hex
				}
				g.Unicodes = append(g.Unicodes, hex)
			}
		}
		return skip(dec)
	case "note":
		text, err := elementText(dec, se)
		if err != nil {
			return err
		}
		g.Note = strings.TrimSpace(text)
		g.HasNote = true
		return nil
	case "image":
		img := &Image{Transform: Identity}
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "fileName":
				img.FileName = a.Value
			case "color":
				img.Color = a.Value
			default:
				if err := applyTransformAttr(&img.Transform, se.Name.Local, a); err != nil {
					return err
				}
			}
		}
		g.Image = img
		return skip(dec)
	case "guideline":
		gl := Guideline{}
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "x", "y", "angle":
				f, err := parseGlifFloat(se.Name.Local, a)
				if err != nil {
					return err
				}
				v := f
				switch a.Name.Local {
				case "x":
					gl.X = &v
				case "y":
					gl.Y = &v
				case "angle":
					gl.Angle = &v
				}
			case "name":
				gl.Name = a.Value
			case "color":
				gl.Color = a.Value
			case "identifier":
				gl.Identifier = a.Value
			}
		}
		g.Guidelines = append(g.Guidelines, gl)
		return skip(dec)
	case "anchor":
		an := Anchor{}
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "x", "y":
				f, err := parseGlifFloat(se.Name.Local, a)
				if err != nil {
					return err
				}
				if a.Name.Local == "x" {
					an.X = f
				} else {
					an.Y = f
				}
			case "name":
				an.Name = a.Value
			case "color":
				an.Color = a.Value
			case "identifier":
				an.Identifier = a.Value
			}
		}
		g.Anchors = append(g.Anchors, an)
		return skip(dec)
	case "outline":
		outline, err := decodeOutline(dec)
		if err != nil {
			return err
		}
		g.Outline = outline
		return nil
	case "lib":
		lib, err := decodeLib(dec)
		if err != nil {
			return err
		}
		g.Lib = lib
		return nil
	default:
		return fmt.Errorf("glif: unexpected element <%s>", se.Name.Local)
	}
}

func decodeOutline(dec *xml.Decoder) (*Outline, error) {
	outline := &Outline{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("glif: unterminated <outline>: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "contour":
				c, err := decodeContour(dec, t)
				if err != nil {
					return nil, err
				}
				outline.Elements = append(outline.Elements, OutlineElement{Contour: c})
			case "component":
				c := &Component{Transform: Identity}
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "base":
						c.Base = a.Value
					case "identifier":
						c.Identifier = a.Value
					default:
						if err := applyTransformAttr(&c.Transform, t.Name.Local, a); err != nil {
							return nil, err
						}
					}
				}
				if c.Base == "" {
					return nil, fmt.Errorf("glif: <component> is missing the base attribute")
				}
				outline.Elements = append(outline.Elements, OutlineElement{Component: c})
				if err := skip(dec); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("glif: unexpected element <%s> inside <outline>", t.Name.Local)
			}
		case xml.EndElement:
			if t.Name.Local == "outline" {
				return outline, nil
			}
		}
	}
}

func decodeContour(dec *xml.Decoder, se xml.StartElement) (*Contour, error) {
	c := &Contour{}
	for _, a := range se.Attr {
		if a.Name.Local == "identifier" {
			c.Identifier = a.Value
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("glif: unterminated <contour>: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "point" {
				return nil, fmt.Errorf("glif: unexpected element <%s> inside <contour>", t.Name.Local)
			}
			p := Point{}
			var haveX, haveY bool
			for _, a := range t.Attr {
				switch a.Name.Local {
				case "x", "y":
					f, err := parseGlifFloat(t.Name.Local, a)
					if err != nil {
						return nil, err
					}
					if a.Name.Local == "x" {
						p.X, haveX = f, true
					} else {
						p.Y, haveY = f, true
					}
				case "type":
					p.Type = a.Value
				case "smooth":
					p.Smooth = a.Value == "yes"
				case "name":
					p.Name = a.Value
				case "identifier":
					p.Identifier = a.Value
				}
			}
			if !haveX || !haveY {
				return nil, fmt.Errorf("glif: <point> is missing x or y")
			}
			c.Points = append(c.Points, p)
			if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == "contour" {
				return c, nil
			}
		}
	}
}

// decodeLib reads the single <dict> child of <lib>.
func decodeLib(dec *xml.Decoder) (*Value, error) {
	var lib *Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("glif: unterminated <lib>: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if lib != nil {
				return nil, fmt.Errorf("glif: <lib> has more than one child")
			}
			lib, err = decodeValue(dec, t)
			if err != nil {
				return nil, err
			}
			if lib.Kind != KindDict {
				return nil, fmt.Errorf("glif: <lib> child must be a <dict>")
			}
		case xml.EndElement:
			if t.Name.Local == "lib" {
				if lib == nil {
					lib = &Value{Kind: KindDict}
				}
				return lib, nil
			}
		}
	}
}

func applyTransformAttr(tr *Transform, element string, a xml.Attr) error {
	f, err := parseGlifFloat(element, a)
	if err != nil {
		return err
	}
	switch a.Name.Local {
	case "xScale":
		tr.XScale = f
	case "xyScale":
		tr.XYScale = f
	case "yxScale":
		tr.YXScale = f
	case "yScale":
		tr.YScale = f
	case "xOffset":
		tr.XOffset = f
	case "yOffset":
		tr.YOffset = f
	default:
		return fmt.Errorf("glif: unexpected attribute %q on <%s>", a.Name.Local, element)
	}
	return nil
}

func parseGlifFloat(element string, a xml.Attr) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("glif: bad numeric attribute %s=%q on <%s>", a.Name.Local, a.Value, element)
	}
	return f, nil
}

// skip consumes tokens up to the end of the current element.
func skip(dec *xml.Decoder) error {
	if err := dec.Skip(); err != nil {
		return fmt.Errorf("glif: %w", err)
	}
	return nil
}
