package ufo

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags a property-list value.
type ValueKind uint8

const (
	// KindDict is an ordered key/value dictionary.
	KindDict ValueKind = iota
	// KindArray is an ordered sequence of values.
	KindArray
	// KindString is a UTF-8 string.
	KindString
	// KindInteger is a signed integer.
	KindInteger
	// KindReal is a double-precision float.
	KindReal
	// KindBoolean is true/false.
	KindBoolean
	// KindDate is a UTC timestamp.
	KindDate
	// KindData is opaque base64-encoded bytes.
	KindData
)

// Value is one node of a property-list tree. Dict entries keep their source
// declaration order: consumers such as layercontents.plist depend on it, so
// the tree is a slice-of-pairs rather than a map.
type Value struct {
	Kind  ValueKind
	Dict  []KeyValue
	Array []*Value
	Str   string
	Int   int64
	Real  float64
	Bool  bool
	Date  time.Time
	Data  []byte
}

// KeyValue is one ordered dictionary entry.
type KeyValue struct {
	Key   string
	Value *Value
}

// PlistDateFormat is the timestamp layout the plist grammar uses.
const PlistDateFormat = "2006-01-02T15:04:05Z"

// ParsePlist parses a full property-list document and returns its root
// value. The parser works on the raw XML token stream so that dictionary
// key order survives the round trip.
func ParsePlist(data []byte) (*Value, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("plist: missing <plist> element")
		}
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "plist" {
			return nil, fmt.Errorf("plist: unexpected root element <%s>", se.Name.Local)
		}
		return parsePlistBody(dec)
	}
}

func parsePlistBody(dec *xml.Decoder) (*Value, error) {
	var root *Value
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("plist: multiple root values")
			}
			root, err = decodeValue(dec, t)
			if err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == "plist" {
				if root == nil {
					return nil, fmt.Errorf("plist: empty document")
				}
				return root, nil
			}
		}
	}
	return nil, fmt.Errorf("plist: unterminated <plist> element")
}

// decodeValue consumes one value element (start token already read) and its
// matching end token.
func decodeValue(dec *xml.Decoder, se xml.StartElement) (*Value, error) {
	switch se.Name.Local {
	case "dict":
		return decodeDict(dec, se)
	case "array":
		return decodeArray(dec, se)
	case "string":
		text, err := elementText(dec, se)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindString, Str: text}, nil
	case "integer":
		text, err := elementText(dec, se)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("plist: bad <integer> %q: %w", text, err)
		}
		return &Value{Kind: KindInteger, Int: n}, nil
	case "real":
		text, err := elementText(dec, se)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("plist: bad <real> %q", text)
		}
		return &Value{Kind: KindReal, Real: f}, nil
	case "true":
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		return &Value{Kind: KindBoolean, Bool: true}, nil
	case "false":
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		return &Value{Kind: KindBoolean, Bool: false}, nil
	case "date":
		text, err := elementText(dec, se)
		if err != nil {
			return nil, err
		}
		ts, err := time.Parse(PlistDateFormat, strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("plist: bad <date> %q: %w", text, err)
		}
		return &Value{Kind: KindDate, Date: ts.UTC()}, nil
	case "data":
		text, err := elementText(dec, se)
		if err != nil {
			return nil, err
		}
		compact := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, text)
		raw, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return nil, fmt.Errorf("plist: bad <data>: %w", err)
		}
		return &Value{Kind: KindData, Data: raw}, nil
	default:
		return nil, fmt.Errorf("plist: unexpected element <%s>", se.Name.Local)
	}
}

func decodeDict(dec *xml.Decoder, se xml.StartElement) (*Value, error) {
	v := &Value{Kind: KindDict}
	var pendingKey string
	var haveKey bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: unterminated <dict>: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "key" {
				if haveKey {
					return nil, fmt.Errorf("plist: <key> %q has no value", pendingKey)
				}
				pendingKey, err = elementText(dec, t)
				if err != nil {
					return nil, err
				}
				haveKey = true
				continue
			}
			if !haveKey {
				return nil, fmt.Errorf("plist: value element <%s> without preceding <key>", t.Name.Local)
			}
			child, err := decodeValue(dec, t)
			if err != nil {
				return nil, err
			}
			v.Dict = append(v.Dict, KeyValue{Key: pendingKey, Value: child})
			haveKey = false
		case xml.EndElement:
			if t.Name.Local != se.Name.Local {
				return nil, fmt.Errorf("plist: unexpected </%s> inside <dict>", t.Name.Local)
			}
			if haveKey {
				return nil, fmt.Errorf("plist: <key> %q has no value", pendingKey)
			}
			return v, nil
		}
	}
}

func decodeArray(dec *xml.Decoder, se xml.StartElement) (*Value, error) {
	v := &Value{Kind: KindArray}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: unterminated <array>: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeValue(dec, t)
			if err != nil {
				return nil, err
			}
			v.Array = append(v.Array, child)
		case xml.EndElement:
			if t.Name.Local != se.Name.Local {
				return nil, fmt.Errorf("plist: unexpected </%s> inside <array>", t.Name.Local)
			}
			return v, nil
		}
	}
}

// elementText collects the character data of a leaf element up to its end
// token.
func elementText(dec *xml.Decoder, se xml.StartElement) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("unterminated <%s>: %w", se.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			return "", fmt.Errorf("unexpected element <%s> inside <%s>", t.Name.Local, se.Name.Local)
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}
