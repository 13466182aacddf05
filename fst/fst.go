package fst

import "github.com/datatrails/go-fst/outputs"

// FST is the produced artifact: a compiled, minimal, acyclic, labeled
// graph over T-valued outputs. It is opaque beyond what NewEnumerator
// needs; byte-packed on-disk serialization is not part of this package.
type FST[T any] struct {
	store   *Store[T]
	alg     outputs.Outputs[T]
	hasRoot bool
	root    Ref
	packed  bool
}

// Empty reports whether Finish pruned everything, leaving no accepted key
// at all (not even the empty key).
func (f *FST[T]) Empty() bool { return f == nil || !f.hasRoot }

// Packed reports whether Options.DoPackFST was requested. Packed-integer
// repacking itself is out of scope for this engine; this is purely a
// pass-through flag for callers that want to know the request was made.
func (f *FST[T]) Packed() bool { return f.packed }

// Lookup returns the output associated with key and true if key was
// accepted by the builder, short-circuiting on the first label with no
// matching arc. It avoids building an Enumerator stack for the common
// case of a single point query.
func (f *FST[T]) Lookup(key []Label) (T, bool) {
	var out T
	if f.Empty() {
		return out, false
	}
	out = f.alg.NoOutput()
	node := f.store.Get(f.root)
	for _, lbl := range key {
		a, ok := node.findArc(lbl)
		if !ok {
			return f.alg.NoOutput(), false
		}
		out = f.alg.Add(out, a.output)
		node = f.store.Get(a.target)
	}
	if !node.isFinal {
		return f.alg.NoOutput(), false
	}
	return f.alg.Add(out, node.finalOutput), true
}
