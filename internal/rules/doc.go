// Package rules holds the operation semantics: one pure function per
// operator mapping operand flag-sets to the flag-set of every possible
// result, or to "may produce NaN".
//
// The rules transcribe IEEE-754 binary64 behavior under round-to-nearest:
// sign-of-sum and sign-of-product rules, 0*Inf and Inf-Inf, overflow to
// infinity, underflow to zero, and the signed-zero ambiguity of min/max
// (min(+0, -0) may return either operand).
//
// Rules see flag-sets only, never raw values. Every catalog category that
// admits a sign also admits finite, nonzero values of that sign, including
// subnormals, values below one and values near the overflow threshold; the
// rules rely on that when they claim a result flag is reachable.
package rules
