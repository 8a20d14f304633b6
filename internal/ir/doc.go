// Package ir provides the shared types of the float-category resolver.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the vocabulary (flags,
// categories, operators, outcomes, decision cells) in one foundational layer
// with no circular dependencies.
//
// Key design constraints:
//   - NaN is never a flag. A category's predicate rejects NaN unconditionally.
//   - Pos and Neg describe the sign bit, so +0 is positive and -0 is negative.
//   - Decision cells carry names and booleans only, never float values, so
//     their canonical JSON (and therefore the surface hash) is deterministic.
//   - All JSON tags use snake_case
package ir
