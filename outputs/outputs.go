// Package outputs defines the output algebra consumed by the fst builder
// and provides a small set of reference implementations.
package outputs

// Outputs is the capability set an FST output algebra must provide over a
// value type T. Implementations must be pure: no hidden state, and every
// method must be safe to call concurrently on the same *Outputs value
// (though the builder that consumes it is itself single-threaded).
//
//   - NoOutput is the algebra's identity: Add(NoOutput, x) == Add(x, NoOutput) == x.
//   - Add is associative with identity NoOutput.
//   - Common returns the longest common "prefix" of a and b in the algebra.
//   - Subtract(a, common) returns the suffix of a once common has been removed,
//     such that Add(common, Subtract(a, common)) == a.
//   - Merge combines two outputs recorded for the same key. Only required
//     when duplicate keys are accepted; an algebra that cannot support
//     duplicates should panic or return a zero value documented as invalid.
type Outputs[T any] interface {
	NoOutput() T
	Add(a, b T) T
	Common(a, b T) T
	Subtract(a, common T) T
	Merge(a, b T) T
	// Equal reports whether a and b are the same value under this algebra.
	// The builder uses this to canonicalize values equal to NoOutput back
	// onto the identity's own representation.
	Equal(a, b T) bool
}
