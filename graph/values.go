package graph

import (
	"strconv"
	"strings"

	"github.com/eras/dotfile-parser/dotparser"
)

// ValueKind discriminates the Value tagged union.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueInt    ValueKind = "int"
	ValueFloat  ValueKind = "float"
	ValueBool   ValueKind = "bool"
	ValueHTML   ValueKind = "html"
)

// Value is an attribute value. Kind determines which typed field is populated.
type Value struct {
	Kind  ValueKind
	Str   string  // populated when Kind == ValueString or ValueHTML
	Int   int64   // populated when Kind == ValueInt
	Float float64 // populated when Kind == ValueFloat
	Bool  bool    // populated when Kind == ValueBool
	Raw   string  // decoded identifier text, always set
}

// String returns the identifier text of the value.
func (v Value) String() string { return v.Raw }

// ParseValue types the text of an identifier. Quoted identifiers stay
// strings; unquoted ones become ints, floats or bools when they read as such.
func ParseValue(id dotparser.ID) Value {
	text := id.Text
	switch id.Quote {
	case dotparser.QuoteHTML:
		return Value{Kind: ValueHTML, Str: text, Raw: text}
	case dotparser.QuoteDouble:
		return Value{Kind: ValueString, Str: text, Raw: text}
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Value{Kind: ValueInt, Int: n, Raw: text}
	}
	if looksNumeric(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Value{Kind: ValueFloat, Float: f, Raw: text}
		}
	}
	switch strings.ToLower(text) {
	case "true":
		return Value{Kind: ValueBool, Bool: true, Raw: text}
	case "false":
		return Value{Kind: ValueBool, Bool: false, Raw: text}
	}

	// Bare identifiers in value position are unquoted strings
	// (e.g. shape=box, rankdir=LR).
	return Value{Kind: ValueString, Str: text, Raw: text}
}

// looksNumeric keeps ParseFloat from accepting words such as "Inf" or "NaN".
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && !(i == 0 && c == '-') {
			return false
		}
	}
	return true
}
