package fst

// FreezeTailFunc is the pluggable Tail Freezer contract. The default
// implementation is defaultFreezeTail.
type FreezeTailFunc[T any] func(b *Builder[T], prefixLenPlus1 int) error

// Options configures a Builder.
type Options[T any] struct {
	// InputType selects the label domain. Defaults to InputByte.
	InputType InputType

	// MinSuffixCount1 prunes a frontier node whose input_count falls below
	// this threshold.
	MinSuffixCount1 int
	// MinSuffixCount2 is the secondary prune criterion evaluated against
	// the parent's input_count; 1 enables "keep only the divergent part",
	// 0 disables the secondary check entirely.
	MinSuffixCount2 int

	// DoShareSuffix enables structural deduplication via the Node Hash.
	DoShareSuffix bool
	// DoShareNonSingletonNodes allows dedup of nodes with more than one
	// arc; when false only nodes with <= 1 arc are eligible.
	DoShareNonSingletonNodes bool
	// ShareMaxTailLength caps the tail length (distance from the node to
	// the end of the last input) eligible for dedup.
	ShareMaxTailLength int

	// FreezeTailHook optionally replaces the default Tail Freezer.
	FreezeTailHook FreezeTailFunc[T]

	// DoPackFST requests a post-Finish packing pass. Packed-integer
	// on-disk encoding is out of scope for this engine; when set, Finish
	// only records that packing was requested via FST.Packed and performs
	// no byte-level repacking.
	DoPackFST bool
	// AcceptableOverheadRatio is accepted for interface completeness but
	// has no effect: this engine's compiled store holds Go values directly
	// rather than packed integers.
	AcceptableOverheadRatio float64

	// AllowArrayArcs enables the dense array-arc compiled-node layout for
	// byte/short domains once a node's arc count crosses arrayArcThreshold.
	AllowArrayArcs bool
	// BytesPageBits controls the compiled Store's growth granularity:
	// pages of 1<<BytesPageBits nodes, with a minimum of 16.
	BytesPageBits uint8

	// NodeHashCapacity bounds the Node Hash's LRU when DoShareSuffix is
	// set; <= 0 means effectively unbounded.
	NodeHashCapacity int
}

// DefaultOptions returns the conservative defaults: byte labels, no
// pruning, no suffix sharing, no dense array-arc index.
func DefaultOptions[T any]() Options[T] {
	return Options[T]{
		InputType:          InputByte,
		ShareMaxTailLength: 1 << 30,
		BytesPageBits:      8,
	}
}
