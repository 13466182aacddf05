package fst

import "github.com/datatrails/go-fst/outputs"

// uncompiledNode is the in-memory representation of a frontier slot. depth
// is fixed at allocation and never changes even when the slot is reused
// for a later key, mirroring urkle's frontier frames, which are addressed
// by depth and cleared-in-place rather than reallocated on every
// divergence.
type uncompiledNode[T any] struct {
	depth       int
	arcs        []arc[T]
	isFinal     bool
	finalOutput T
	inputCount  int
}

func newUncompiledNode[T any](depth int) *uncompiledNode[T] {
	return &uncompiledNode[T]{depth: depth}
}

// numArcs reports the current arc count.
func (n *uncompiledNode[T]) numArcs() int { return len(n.arcs) }

// addArc appends a new arc; labels must be strictly ascending, matching
// banks-go-immutable-radix's node16/node4 invariant that children stay sorted by label so
// that both linear scan and lowerBound-style seeking remain correct.
func (n *uncompiledNode[T]) addArc(a arc[T]) {
	if len(n.arcs) > 0 && a.label <= n.arcs[len(n.arcs)-1].label {
		panic(ErrArcLabelsNotAscending)
	}
	n.arcs = append(n.arcs, a)
}

// getLastOutput returns the last arc's output, asserting its label matches.
func (n *uncompiledNode[T]) getLastOutput(label Label) T {
	last := &n.arcs[len(n.arcs)-1]
	if last.label != label {
		panic("fst: getLastOutput label mismatch")
	}
	return last.output
}

// setLastOutput overwrites the last arc's output.
func (n *uncompiledNode[T]) setLastOutput(label Label, value T) {
	last := &n.arcs[len(n.arcs)-1]
	if last.label != label {
		panic("fst: setLastOutput label mismatch")
	}
	last.output = value
}

// replaceLast installs the compiled or reused target on the last arc and
// sets its finality, matching urkle's ReplaceLast-equivalent step inside
// freezeTail where a freshly emitted branch/leaf ref replaces the
// placeholder target on the parent's trailing arc.
func (n *uncompiledNode[T]) replaceLast(label Label, target arcTarget[T], nextFinalOutput T, isFinal bool) {
	last := &n.arcs[len(n.arcs)-1]
	if last.label != label {
		panic("fst: replaceLast label mismatch")
	}
	last.target = target
	last.nextFinalOutput = nextFinalOutput
	last.isFinal = isFinal
}

// deleteLast drops the trailing arc (prune), asserting it matches.
func (n *uncompiledNode[T]) deleteLast(label Label, target arcTarget[T]) {
	last := &n.arcs[len(n.arcs)-1]
	if last.label != label {
		panic("fst: deleteLast label mismatch")
	}
	n.arcs = n.arcs[:len(n.arcs)-1]
}

// prependOutput left-multiplies every arc's output, and the node's own
// finalOutput if it is final, by prefix under the algebra's Add. This is
// the mechanism by which a residual output suffix gets pushed down into an
// already-extended frontier node.
func (n *uncompiledNode[T]) prependOutput(alg outputs.Outputs[T], prefix T) {
	for i := range n.arcs {
		n.arcs[i].output = alg.Add(prefix, n.arcs[i].output)
	}
	if n.isFinal {
		n.finalOutput = alg.Add(prefix, n.finalOutput)
	}
}

// clear resets num_arcs, is_final, final_output and input_count for slot
// reuse, but retains depth — urkle never reallocates a frame purely to
// move to a new input at the same tree depth, and neither do we.
func (n *uncompiledNode[T]) clear(noOutput T) {
	n.arcs = n.arcs[:0]
	n.isFinal = false
	n.finalOutput = noOutput
	n.inputCount = 0
}
