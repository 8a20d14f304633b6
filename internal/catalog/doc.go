// Package catalog holds the fixed, ordered set of float categories.
//
// The catalog is written in CUE (catalog.cue, embedded at build time) and
// compiled once on first use. It has exactly twelve entries, one for each
// combination of the inf/zero/pos/neg flags that admits at least one sign.
// Nothing mutates a Catalog after construction, so it is safe to share
// between goroutines.
//
// The package also owns the value-level rejection taxonomy (ErrNaN,
// ErrInfinite, ErrZero, ErrPositive, ErrNegative), which mirrors the four
// flags so runtime constructors and the resolver speak the same language.
package catalog
