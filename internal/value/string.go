package value

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stringObj is the heap payload for an immutable Slate string. Slate
// strings are UTF-8 byte sequences indexed by rune, not byte, so Rune
// and Len operate on the decoded rune slice rather than re-scanning the
// string on every access.
type stringObj struct {
	s     string
	runes []rune // lazily populated
	refs  int32
}

func newStringObj(s string) *stringObj { return &stringObj{s: s, refs: 1} }

func (s *stringObj) retain()  { s.refs++ }
func (s *stringObj) release() { s.refs-- }

func (s *stringObj) runeSlice() []rune {
	if s.runes == nil {
		s.runes = []rune(s.s)
	}
	return s.runes
}

// String constructs a Slate string value.
func String(s string) Value {
	return Value{kind: KindString, heap: newStringObj(s)}
}

func (v Value) AsString() string {
	return v.heap.(*stringObj).s
}

// RuneLen returns the string's length in Unicode code points, the unit
// spec.md's string operations are defined over.
func (v Value) RuneLen() int {
	return len(v.heap.(*stringObj).runeSlice())
}

// RuneAt returns the rune at the given code-point index.
func (v Value) RuneAt(i int) rune {
	return v.heap.(*stringObj).runeSlice()[i]
}

// StringSlice returns the substring spanning code points [start, end).
func (v Value) StringSlice(start, end int) Value {
	runes := v.heap.(*stringObj).runeSlice()
	return String(string(runes[start:end]))
}

func (v Value) ToUpper() Value { return String(strings.ToUpper(v.AsString())) }
func (v Value) ToLower() Value { return String(strings.ToLower(v.AsString())) }
func (v Value) Trim() Value    { return String(strings.TrimSpace(v.AsString())) }

func (v Value) Contains(sub Value) bool {
	return strings.Contains(v.AsString(), sub.AsString())
}

func (v Value) IndexOf(sub Value) int {
	s := v.AsString()
	idx := strings.Index(s, sub.AsString())
	if idx < 0 {
		return -1
	}
	// Convert byte offset to a rune index, since Slate indexes by code point.
	return utf8.RuneCountInString(s[:idx])
}

func (v Value) StartsWith(prefix Value) bool {
	return strings.HasPrefix(v.AsString(), prefix.AsString())
}

func (v Value) EndsWith(suffix Value) bool {
	return strings.HasSuffix(v.AsString(), suffix.AsString())
}

func (v Value) Split(sep Value) Value {
	parts := strings.Split(v.AsString(), sep.AsString())
	elems := make([]Value, len(parts))
	for i, p := range parts {
		elems[i] = String(p)
	}
	return Array(elems)
}

func (v Value) Replace(old, new Value) Value {
	return String(strings.ReplaceAll(v.AsString(), old.AsString(), new.AsString()))
}

func (v Value) Repeat(n int) Value {
	return String(strings.Repeat(v.AsString(), n))
}

func (v Value) IsBlank() bool {
	for _, r := range v.AsString() {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// --- StringBuilder: a mutable append-only buffer of runes, the
// reference type returned by `StringBuilder()` (spec.md §6.3). ---

type stringBuilderObj struct {
	b    strings.Builder
	refs int32
}

func (s *stringBuilderObj) retain()  { s.refs++ }
func (s *stringBuilderObj) release() { s.refs-- }

func NewStringBuilder() Value {
	return Value{kind: KindStringBuilder, heap: &stringBuilderObj{}}
}

func (v Value) BuilderAppend(s Value) {
	v.heap.(*stringBuilderObj).b.WriteString(s.AsString())
}

func (v Value) BuilderAppendRune(r rune) {
	v.heap.(*stringBuilderObj).b.WriteRune(r)
}

func (v Value) BuilderString() Value {
	return String(v.heap.(*stringBuilderObj).b.String())
}

func (v Value) BuilderLen() int {
	return utf8.RuneCountInString(v.heap.(*stringBuilderObj).b.String())
}
