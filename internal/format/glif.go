package format

import (
	"ufofmt/internal/config"
	"ufofmt/internal/ufo"
)

// Glif serializes one parsed glyph as a canonical GLIF document.
//
// Element order inside <glyph> is fixed: advance, unicode, note, image,
// guideline, anchor, outline, lib. Attribute order within each element is
// fixed as well, and every numeric attribute goes through FloatString.
// Outline contours and components keep their source order.
func Glif(g *ufo.Glyph, p *config.Policy) []byte {
	w := newWriter(p)
	w.declaration()

	glyphAttrs := []attr{{name: "name", value: g.Name}, {name: "format", value: g.Format}}
	if g.FormatMinor != "" {
		glyphAttrs = append(glyphAttrs, attr{name: "formatMinor", value: g.FormatMinor})
	}
	w.tag("glyph", glyphAttrs, false)
	w.indentPush()

	if adv := g.Advance; adv != nil && (adv.Width != 0 || adv.Height != 0) {
		var attrs []attr
		if adv.Width != 0 {
			attrs = append(attrs, attr{name: "width", value: FloatString(adv.Width)})
		}
		if adv.Height != 0 {
			attrs = append(attrs, attr{name: "height", value: FloatString(adv.Height)})
		}
		w.tag("advance", attrs, true)
	}

	for _, hex := range g.Unicodes {
		w.tag("unicode", []attr{{name: "hex", value: hex}}, true)
	}

	if g.HasNote {
		w.leaf("note", g.Note)
	}

	if img := g.Image; img != nil {
		attrs := []attr{{name: "fileName", value: img.FileName}}
		attrs = append(attrs, transformAttrs(img.Transform)...)
		if img.Color != "" {
			attrs = append(attrs, attr{name: "color", value: img.Color})
		}
		w.tag("image", attrs, true)
	}

	for _, gl := range g.Guidelines {
		var attrs []attr
		if gl.X != nil {
			attrs = append(attrs, attr{name: "x", value: FloatString(*gl.X)})
		}
		if gl.Y != nil {
			attrs = append(attrs, attr{name: "y", value: FloatString(*gl.Y)})
		}
		if gl.Angle != nil {
			attrs = append(attrs, attr{name: "angle", value: FloatString(*gl.Angle)})
		}
		attrs = appendNamedAttrs(attrs, gl.Name, gl.Color, gl.Identifier)
		w.tag("guideline", attrs, true)
	}

	for _, an := range g.Anchors {
		attrs := []attr{
			{name: "x", value: FloatString(an.X)},
			{name: "y", value: FloatString(an.Y)},
		}
		attrs = appendNamedAttrs(attrs, an.Name, an.Color, an.Identifier)
		w.tag("anchor", attrs, true)
	}

	if g.Outline != nil {
		writeOutline(w, g.Outline)
	}

	if g.Lib != nil {
		w.tag("lib", nil, false)
		w.indentPush()
		writePlistValue(w, g.Lib)
		w.indentPop()
		w.close("lib")
	}

	w.indentPop()
	w.close("glyph")
	return w.bytes()
}

func writeOutline(w *writer, outline *ufo.Outline) {
	if len(outline.Elements) == 0 {
		w.tag("outline", nil, true)
		return
	}
	w.tag("outline", nil, false)
	w.indentPush()
	for _, el := range outline.Elements {
		switch {
		case el.Contour != nil:
			writeContour(w, el.Contour)
		case el.Component != nil:
			writeComponent(w, el.Component)
		}
	}
	w.indentPop()
	w.close("outline")
}

func writeContour(w *writer, c *ufo.Contour) {
	var contourAttrs []attr
	if c.Identifier != "" {
		contourAttrs = append(contourAttrs, attr{name: "identifier", value: c.Identifier})
	}
	if len(c.Points) == 0 {
		w.tag("contour", contourAttrs, true)
		return
	}
	w.tag("contour", contourAttrs, false)
	w.indentPush()
	for _, pt := range c.Points {
		attrs := []attr{
			{name: "x", value: FloatString(pt.X)},
			{name: "y", value: FloatString(pt.Y)},
		}
		if pt.Type != "" {
			attrs = append(attrs, attr{name: "type", value: pt.Type})
		}
		if pt.Smooth {
			attrs = append(attrs, attr{name: "smooth", value: "yes"})
		}
		if pt.Name != "" {
			attrs = append(attrs, attr{name: "name", value: pt.Name})
		}
		if pt.Identifier != "" {
			attrs = append(attrs, attr{name: "identifier", value: pt.Identifier})
		}
		w.tag("point", attrs, true)
	}
	w.indentPop()
	w.close("contour")
}

func writeComponent(w *writer, c *ufo.Component) {
	attrs := []attr{{name: "base", value: c.Base}}
	attrs = append(attrs, transformAttrs(c.Transform)...)
	if c.Identifier != "" {
		attrs = append(attrs, attr{name: "identifier", value: c.Identifier})
	}
	w.tag("component", attrs, true)
}

// transformAttrs emits affine members that differ from the identity
// transform, in fixed xScale..yOffset order.
func transformAttrs(tr ufo.Transform) []attr {
	var attrs []attr
	if tr.XScale != 1 {
		attrs = append(attrs, attr{name: "xScale", value: FloatString(tr.XScale)})
	}
	if tr.XYScale != 0 {
		attrs = append(attrs, attr{name: "xyScale", value: FloatString(tr.XYScale)})
	}
	if tr.YXScale != 0 {
		attrs = append(attrs, attr{name: "yxScale", value: FloatString(tr.YXScale)})
	}
	if tr.YScale != 1 {
		attrs = append(attrs, attr{name: "yScale", value: FloatString(tr.YScale)})
	}
	if tr.XOffset != 0 {
		attrs = append(attrs, attr{name: "xOffset", value: FloatString(tr.XOffset)})
	}
	if tr.YOffset != 0 {
		attrs = append(attrs, attr{name: "yOffset", value: FloatString(tr.YOffset)})
	}
	return attrs
}

func appendNamedAttrs(attrs []attr, name, color, identifier string) []attr {
	if name != "" {
		attrs = append(attrs, attr{name: "name", value: name})
	}
	if color != "" {
		attrs = append(attrs, attr{name: "color", value: color})
	}
	if identifier != "" {
		attrs = append(attrs, attr{name: "identifier", value: identifier})
	}
	return attrs
}
