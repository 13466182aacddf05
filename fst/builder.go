package fst

import (
	"golang.org/x/exp/slices"

	"github.com/datatrails/go-fst/nodehash"
	"github.com/datatrails/go-fst/outputs"
)

// Stats summarizes a build, generalizing urkle.Builder's implicit
// bookkeeping counters (st.Next, st.NextLeaf) into an explicit,
// caller-visible snapshot.
type Stats struct {
	KeysAccepted   int
	NodesCompiled  int
	NodesPruned    int
	NodesShared    int
}

// Builder is the incremental minimizing FST construction driver. It is not
// reentrant and not safe for concurrent use.
type Builder[T any] struct {
	opts     Options[T]
	alg      outputs.Outputs[T]
	store    *Store[T]
	nodeHash nodehash.Table[Ref]

	frontier        *frontier[T]
	lastInput       []Label
	seenAnyInput    bool
	seenNonEmpty    bool

	finished bool
	stats    Stats
}

// New constructs a Builder over the given output algebra and options.
func New[T any](alg outputs.Outputs[T], opts Options[T]) (*Builder[T], error) {
	if opts.ShareMaxTailLength == 0 {
		opts.ShareMaxTailLength = 1 << 30
	}

	b := &Builder[T]{
		opts:     opts,
		alg:      alg,
		store:    NewStore[T](opts.BytesPageBits, opts.AllowArrayArcs, maxLabel(opts.InputType)),
		frontier: newFrontier[T](),
	}

	if opts.DoShareSuffix {
		table, err := nodehash.NewLRUTable[Ref](opts.NodeHashCapacity, 1024)
		if err != nil {
			return nil, err
		}
		b.nodeHash = table
	}

	return b, nil
}

// Stats returns a snapshot of build-time counters.
func (b *Builder[T]) Stats() Stats { return b.stats }

func (b *Builder[T]) validateLabels(input []Label) error {
	max := maxLabel(b.opts.InputType)
	for _, l := range input {
		if l == EndLabel || l < 0 || l > max {
			return ErrLabelOutOfRange
		}
	}
	return nil
}

// compareLabels orders two label sequences lexicographically, element by
// element and then by length, matching the ordering Add requires of its
// callers.
func compareLabels(a, b []Label) int {
	return slices.Compare(a, b)
}

func commonPrefixLen(a, b []Label) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// mergeOutputs calls alg.Merge, converting a panic (an algebra declaring
// Merge unsupported) into ErrDuplicateKeyNoMerge rather than crashing the
// process: failing fast on a duplicate key means a returned error here,
// not an unrecovered panic propagating out of a library call.
func mergeOutputs[T any](alg outputs.Outputs[T], a, b T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrDuplicateKeyNoMerge
		}
	}()
	return alg.Merge(a, b), nil
}

// Add ingests (input, output) in non-decreasing key order.
func (b *Builder[T]) Add(input []Label, output T) error {
	if b.finished {
		return ErrBuilderFinished
	}
	if err := b.validateLabels(input); err != nil {
		return err
	}

	no := b.alg.NoOutput()
	if b.alg.Equal(output, no) {
		output = no
	}

	if len(input) == 0 {
		if b.seenAnyInput {
			return ErrEmptyInputNotFirst
		}
		root := b.frontier.at(0)
		root.inputCount++
		root.isFinal = true
		root.finalOutput = output
		b.seenAnyInput = true
		b.stats.KeysAccepted++
		return nil
	}

	if b.seenNonEmpty && compareLabels(input, b.lastInput) < 0 {
		return ErrOutOfOrderInput
	}

	prefixLen := commonPrefixLen(b.lastInput, input)
	isDuplicate := b.seenNonEmpty && prefixLen == len(input) && prefixLen == len(b.lastInput)
	prefixLenPlus1 := prefixLen + 1

	b.frontier.grow(len(input) + 1)

	for i := 0; i <= prefixLen; i++ {
		b.frontier.at(i).inputCount++
	}

	if err := b.freezeTail(prefixLenPlus1); err != nil {
		return err
	}

	for i := prefixLenPlus1; i <= len(input); i++ {
		label := input[i-1]
		parent := b.frontier.at(i - 1)
		child := b.frontier.at(i)
		parent.addArc(arc[T]{label: label, target: uncompiledTarget[T](child), output: no, nextFinalOutput: no})
		child.inputCount++
	}

	if isDuplicate {
		// The whole path already exists; there is no divergent residual to
		// push down, so the new output is merged directly onto the leaf's
		// existing total rather than redistributed along shared arcs.
		leaf := b.frontier.at(len(input))
		merged, err := mergeOutputs(b.alg, leaf.finalOutput, output)
		if err != nil {
			return err
		}
		leaf.finalOutput = merged
	} else {
		leaf := b.frontier.at(len(input))
		leaf.isFinal = true
		leaf.finalOutput = no

		for i := 1; i < prefixLenPlus1; i++ {
			label := input[i-1]
			parent := b.frontier.at(i - 1)
			lastOutput := parent.getLastOutput(label)
			if !b.alg.Equal(lastOutput, no) {
				common := b.alg.Common(output, lastOutput)
				suffix := b.alg.Subtract(lastOutput, common)
				parent.setLastOutput(label, common)
				b.frontier.at(i).prependOutput(b.alg, suffix)
				output = b.alg.Subtract(output, common)
			}
		}
		b.frontier.at(prefixLenPlus1 - 1).setLastOutput(input[prefixLenPlus1-1], output)
		b.stats.KeysAccepted++
	}

	b.lastInput = append(b.lastInput[:0], input...)
	b.seenAnyInput = true
	b.seenNonEmpty = true
	return nil
}

// Finish freezes the remaining tail and compiles the root.
func (b *Builder[T]) Finish() (*FST[T], error) {
	if b.finished {
		return nil, ErrBuilderFinished
	}
	if err := b.freezeTail(0); err != nil {
		return nil, err
	}
	b.finished = true

	root := b.frontier.at(0)
	if root.inputCount < b.opts.MinSuffixCount1 || root.numArcs() == 0 {
		if !root.isFinal {
			return &FST[T]{store: b.store, alg: b.alg, hasRoot: false}, nil
		}
		root.arcs = root.arcs[:0]
	}

	ref, err := b.compileNode(root, 0)
	if err != nil {
		return nil, err
	}

	return &FST[T]{store: b.store, alg: b.alg, hasRoot: true, root: ref, packed: b.opts.DoPackFST}, nil
}
