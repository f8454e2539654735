package format

import (
	"encoding/base64"
	"strconv"

	"ufofmt/internal/config"
	"ufofmt/internal/ufo"
)

// plistDoctype is emitted verbatim; the Apple DTD reference keeps its
// canonical double quotes regardless of the policy quote style, which
// governs only the XML declaration and element attributes.
const plistDoctype = `<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">`

// Plist serializes a property-list tree as a canonical XML plist document.
// Dictionary keys keep the order the source declared them in.
func Plist(root *ufo.Value, p *config.Policy) []byte {
	w := newWriter(p)
	w.declaration()
	w.line(plistDoctype)
	q := string(p.Quote())
	w.line("<plist version=" + q + "1.0" + q + ">")
	writePlistValue(w, root)
	w.line("</plist>")
	return w.bytes()
}

// writePlistValue renders one value at the current indent level. Shared
// with the GLIF serializer for <lib> content.
func writePlistValue(w *writer, v *ufo.Value) {
	switch v.Kind {
	case ufo.KindDict:
		if len(v.Dict) == 0 {
			w.line("<dict/>")
			return
		}
		w.line("<dict>")
		w.indentPush()
		for _, kv := range v.Dict {
			w.leaf("key", kv.Key)
			writePlistValue(w, kv.Value)
		}
		w.indentPop()
		w.line("</dict>")
	case ufo.KindArray:
		if len(v.Array) == 0 {
			w.line("<array/>")
			return
		}
		w.line("<array>")
		w.indentPush()
		for _, el := range v.Array {
			writePlistValue(w, el)
		}
		w.indentPop()
		w.line("</array>")
	case ufo.KindString:
		w.leaf("string", v.Str)
	case ufo.KindInteger:
		w.leaf("integer", strconv.FormatInt(v.Int, 10))
	case ufo.KindReal:
		w.leaf("real", FloatString(v.Real))
	case ufo.KindBoolean:
		if v.Bool {
			w.line("<true/>")
		} else {
			w.line("<false/>")
		}
	case ufo.KindDate:
		w.leaf("date", v.Date.UTC().Format(ufo.PlistDateFormat))
	case ufo.KindData:
		w.line("<data>")
		w.indentPush()
		w.line(base64.StdEncoding.EncodeToString(v.Data))
		w.indentPop()
		w.line("</data>")
	}
}
