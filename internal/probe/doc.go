// Package probe checks a decision surface against concrete float64
// arithmetic.
//
// Every cell is evaluated over the sample values its operand categories
// accept. Three properties are checked:
//
//   - soundness: every result of a resolved cell is accepted by its category
//   - tightness: every flag set on the resolved category is exhibited by
//     some sample result
//   - rejection: a rejected cell has at least one operand pair producing NaN
//
// The sample set covers signed zeros, subnormals, the normal range
// boundaries, values around one and the infinities, which is enough to
// witness every flag and every NaN case of the built-in rules.
package probe
