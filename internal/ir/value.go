package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface for the values that may appear in canonical
// JSON: Str, Int, Bool, Array and Object. There is deliberately no float
// and no null, so a serialized decision surface has exactly one encoding.
type Value interface {
	value() // Sealed - only these types implement it
}

// Str is a string value.
type Str string

func (Str) value() {}

// Int is an integer value.
type Int int64

func (Int) value() {}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Array is an ordered list of values.
type Array []Value

func (Array) value() {}

// Object maps string keys to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 which orders some keys differently.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// Shorter string comes first when one is a prefix of the other
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// FlagsValue converts flags to a canonical object.
func FlagsValue(f Flags) Object {
	return Object{
		"inf":  Bool(f.Inf),
		"zero": Bool(f.Zero),
		"pos":  Bool(f.Pos),
		"neg":  Bool(f.Neg),
	}
}

// CategoryValue converts a category to a canonical object.
func CategoryValue(c Category) Object {
	return Object{
		"name":  Str(c.Name),
		"flags": FlagsValue(c.Flags),
	}
}

// CellValue converts a decision cell to a canonical object.
// Optional fields are omitted rather than encoded as null.
func CellValue(c Cell) Object {
	outcome := Object{"kind": Str(c.Outcome.Kind)}
	if c.Outcome.Category != nil {
		outcome["category"] = Str(c.Outcome.Category.Name)
	}

	obj := Object{
		"operator": Str(c.Operator),
		"lhs":      Str(c.LHS),
		"outcome":  outcome,
		"derived":  FlagsValue(c.Derived),
	}
	if c.RHS != "" {
		obj["rhs"] = Str(c.RHS)
	}
	if c.CompoundAssign {
		obj["compound_assign"] = Bool(true)
	}
	return obj
}
