package fst

// Entry is a single enumerated (key, output) pair. InputBuffer is owned by
// the Enumerator and is only valid until the next call into it — callers
// that need to retain a key must copy it.
type Entry[T any] struct {
	InputBuffer []Label
	Output      T
}

type efFrame[T any] struct {
	node         *compiledNode[T]
	label        Label // label of the arc used to reach this frame (ignored at depth 0)
	outputSoFar  T     // accumulated output from root up to (not including) this node's own finalOutput
	finalEmitted bool
	arcIdx       int
}

// Enumerator walks a finished FST in strictly ascending lexicographic key
// order, generalizing urkle/key_api.go's single target-directed
// findLeafRef descent into a full stack-based traversal supporting
// Next/SeekExact/SeekCeil/SeekFloor.
type Enumerator[T any] struct {
	f       *FST[T]
	stack   []efFrame[T]
	started bool
}

// NewEnumerator constructs an Enumerator positioned before the first key.
func NewEnumerator[T any](f *FST[T]) (*Enumerator[T], error) {
	if f.Empty() {
		return &Enumerator[T]{f: f}, nil
	}
	return &Enumerator[T]{f: f}, nil
}

func (e *Enumerator[T]) labels() []Label {
	if len(e.stack) == 0 {
		return nil
	}
	out := make([]Label, len(e.stack)-1)
	for i := 1; i < len(e.stack); i++ {
		out[i-1] = e.stack[i].label
	}
	return out
}

func (e *Enumerator[T]) entryAtTop() *Entry[T] {
	top := &e.stack[len(e.stack)-1]
	out := e.f.alg.Add(top.outputSoFar, top.node.finalOutput)
	return &Entry[T]{InputBuffer: e.labels(), Output: out}
}

// Current returns the entry at the enumerator's current position, or nil
// if Next/Seek* has not yet produced a valid position.
func (e *Enumerator[T]) Current() *Entry[T] {
	if len(e.stack) == 0 {
		return nil
	}
	top := &e.stack[len(e.stack)-1]
	if !top.finalEmitted || !top.node.isFinal {
		return nil
	}
	return e.entryAtTop()
}

// step performs pre-order DFS from the current stack top, returning the
// next entry (a node's own finality, checked before its children, since a
// key is always lexicographically smaller than any of its proper
// extensions) or nil when the traversal is exhausted.
func (e *Enumerator[T]) step() *Entry[T] {
	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]
		if !top.finalEmitted {
			top.finalEmitted = true
			if top.node.isFinal {
				return e.entryAtTop()
			}
		}
		if top.arcIdx < len(top.node.arcs) {
			a := &top.node.arcs[top.arcIdx]
			top.arcIdx++
			childNode := e.f.store.Get(a.target)
			childOutput := e.f.alg.Add(top.outputSoFar, a.output)
			e.stack = append(e.stack, efFrame[T]{
				node:        childNode,
				label:       a.label,
				outputSoFar: childOutput,
			})
			continue
		}
		e.stack = e.stack[:len(e.stack)-1]
	}
	return nil
}

// Next returns the lexicographic successor of the current position, or
// nil once the FST is exhausted.
func (e *Enumerator[T]) Next() *Entry[T] {
	if e.f.Empty() {
		return nil
	}
	if !e.started {
		e.started = true
		e.stack = append(e.stack[:0], efFrame[T]{
			node:        e.f.store.Get(e.f.root),
			outputSoFar: e.f.alg.NoOutput(),
		})
	}
	return e.step()
}

// SeekExact positions the enumerator at exactly target, or returns nil
// without moving the enumerator off its prior position if target is not
// present.
func (e *Enumerator[T]) SeekExact(target []Label) *Entry[T] {
	if e.f.Empty() {
		return nil
	}
	no := e.f.alg.NoOutput()
	stack := []efFrame[T]{{node: e.f.store.Get(e.f.root), outputSoFar: no}}
	for _, lbl := range target {
		top := &stack[len(stack)-1]
		a, idx, found := top.node.lowerBoundArc(lbl)
		if !found || a.label != lbl {
			return nil
		}
		top.finalEmitted = true
		top.arcIdx = idx + 1
		stack = append(stack, efFrame[T]{
			node:        e.f.store.Get(a.target),
			label:       lbl,
			outputSoFar: e.f.alg.Add(top.outputSoFar, a.output),
		})
	}
	last := &stack[len(stack)-1]
	if !last.node.isFinal {
		return nil
	}
	last.finalEmitted = true
	e.stack = stack
	e.started = true
	return e.entryAtTop()
}

// SeekCeil positions the enumerator at the smallest enumerated key >=
// target, or nil if none exists.
func (e *Enumerator[T]) SeekCeil(target []Label) *Entry[T] {
	if e.f.Empty() {
		return nil
	}
	no := e.f.alg.NoOutput()
	stack := []efFrame[T]{{node: e.f.store.Get(e.f.root), outputSoFar: no}}

	for i, lbl := range target {
		top := &stack[len(stack)-1]
		a, idx, found := top.node.lowerBoundArc(lbl)
		if !found {
			// Nothing at or after target under this node; suppress this
			// node's own (too-small) final and let step() backtrack.
			top.finalEmitted = true
			top.arcIdx = len(top.node.arcs)
			e.stack = stack
			e.started = true
			return e.step()
		}

		top.finalEmitted = true // own key is a strict prefix of target, too small
		top.arcIdx = idx + 1
		nextFrame := efFrame[T]{
			node:        e.f.store.Get(a.target),
			label:       a.label,
			outputSoFar: e.f.alg.Add(top.outputSoFar, a.output),
		}
		stack = append(stack, nextFrame)

		if a.label > lbl {
			// Diverged above target already: smallest entry in this whole
			// subtree is >= target.
			e.stack = stack
			e.started = true
			return e.step()
		}
		_ = i // exact match (a.label == lbl); keep descending
	}

	// Consumed the whole target as an exact label path: evaluate this
	// node (and, if it is not itself final, its subtree) normally.
	e.stack = stack
	e.started = true
	return e.step()
}

// SeekFloor positions the enumerator at the largest enumerated key <=
// target, or nil if none exists.
func (e *Enumerator[T]) SeekFloor(target []Label) *Entry[T] {
	if e.f.Empty() {
		return nil
	}
	no := e.f.alg.NoOutput()
	root := efFrame[T]{node: e.f.store.Get(e.f.root), outputSoFar: no}
	stack, ok := floorDescend[T](e.f, []efFrame[T]{root}, target, 0)
	if !ok {
		return nil
	}
	e.stack = stack
	e.started = true
	return e.Current()
}

// floorDescend extends path (already positioned at depth) to the floor of
// target, mirroring SeekCeil but choosing the largest candidate <= target
// at each divergence instead of the smallest candidate >=.
func floorDescend[T any](f *FST[T], path []efFrame[T], target []Label, depth int) ([]efFrame[T], bool) {
	top := &path[len(path)-1]

	if depth == len(target) {
		if top.node.isFinal {
			top.finalEmitted = true
			return path, true
		}
		return nil, false
	}

	lbl := target[depth]
	idx := top.node.floorArcIndex(lbl)
	if idx < 0 {
		if top.node.isFinal {
			top.finalEmitted = true
			top.arcIdx = 0
			return path, true
		}
		return nil, false
	}

	a := &top.node.arcs[idx]
	if a.label == lbl {
		// Record this level's position before descending: append may copy
		// path into a new array, and the returned path must carry it.
		top.finalEmitted = true
		top.arcIdx = idx + 1
		child := efFrame[T]{
			node:        f.store.Get(a.target),
			label:       a.label,
			outputSoFar: f.alg.Add(top.outputSoFar, a.output),
		}
		sub, ok := floorDescend(f, append(path, child), target, depth+1)
		if ok {
			return sub, true
		}
		if idx > 0 {
			top.arcIdx = idx
			return useLastEntryOfArc(f, path, idx-1)
		}
		if top.node.isFinal {
			top.arcIdx = 0
			return path, true
		}
		return nil, false
	}

	// a.label < lbl: everything under a is < target already.
	top.finalEmitted = true
	top.arcIdx = idx + 1
	return useLastEntryOfArc(f, path, idx)
}

// useLastEntryOfArc appends the chain realizing the largest key reachable
// through path's top node's arcs[idx], by always following the final
// (largest-labeled) arc until a dead end.
func useLastEntryOfArc[T any](f *FST[T], path []efFrame[T], idx int) ([]efFrame[T], bool) {
	top := &path[len(path)-1]
	a := &top.node.arcs[idx]
	frame := efFrame[T]{
		node:        f.store.Get(a.target),
		label:       a.label,
		outputSoFar: f.alg.Add(top.outputSoFar, a.output),
	}
	path = append(path, frame)

	for {
		cur := &path[len(path)-1]
		if len(cur.node.arcs) == 0 {
			cur.finalEmitted = true
			cur.arcIdx = 0
			return path, true
		}
		last := &cur.node.arcs[len(cur.node.arcs)-1]
		cur.finalEmitted = true
		cur.arcIdx = len(cur.node.arcs)
		next := efFrame[T]{
			node:        f.store.Get(last.target),
			label:       last.label,
			outputSoFar: f.alg.Add(cur.outputSoFar, last.output),
		}
		path = append(path, next)
	}
}
