package fst

// freezeTail runs the default Tail Freezer, or the caller-supplied hook if
// one was configured.
func (b *Builder[T]) freezeTail(prefixLenPlus1 int) error {
	if b.opts.FreezeTailHook != nil {
		return b.opts.FreezeTailHook(b, prefixLenPlus1)
	}
	return defaultFreezeTail(b, prefixLenPlus1)
}

// defaultFreezeTail walks the frontier from the end of the last input down
// to max(1, prefixLenPlus1), compiling or pruning each node as its fate is
// decided by the min-suffix-count policy.
//
// This generalizes urkle.Builder.InsertMonotone's frame-closing loop
// ("close any frames that are now known complete") from a fixed 2-child
// crit-bit trie to an N-ary labeled FST with a two-threshold prune policy;
// urkle has no pruning at all (every inserted key survives), so the prune
// arithmetic below has no direct urkle analogue.
func defaultFreezeTail[T any](b *Builder[T], prefixLenPlus1 int) error {
	start := len(b.lastInput)
	stop := prefixLenPlus1
	if stop < 1 {
		stop = 1
	}

	for i := start; i >= stop; i-- {
		node := b.frontier.at(i)
		parent := b.frontier.at(i - 1)
		var label Label
		if i-1 < len(b.lastInput) {
			label = b.lastInput[i-1]
		}

		var doPrune, doCompile bool
		switch {
		case node.inputCount < b.opts.MinSuffixCount1:
			doPrune, doCompile = true, true
		case i > prefixLenPlus1:
			belowSecondary := parent.inputCount < b.opts.MinSuffixCount2
			specialCase := b.opts.MinSuffixCount2 == 1 && parent.inputCount == 1 && i > 1
			doPrune = belowSecondary || specialCase
			doCompile = true
		default: // i == prefixLenPlus1
			doPrune = false
			doCompile = b.opts.MinSuffixCount2 == 0
		}

		failsSecondary := node.inputCount < b.opts.MinSuffixCount2 ||
			(b.opts.MinSuffixCount2 == 1 && node.inputCount == 1 && i > 1)
		if failsSecondary {
			node.arcs = node.arcs[:0]
		}

		if doPrune {
			node.clear(b.alg.NoOutput())
			parent.deleteLast(label, arcTarget[T]{})
			b.stats.NodesPruned++
			continue
		}

		if b.opts.MinSuffixCount2 != 0 {
			if err := b.resolveStaleArcs(node); err != nil {
				return err
			}
		}

		isFinal := node.isFinal || node.numArcs() == 0
		node.isFinal = isFinal

		if doCompile {
			tailLength := 1 + len(b.lastInput) - i
			ref, err := b.compileNode(node, tailLength)
			if err != nil {
				return err
			}
			parent.replaceLast(label, compiledTarget[T](ref), node.finalOutput, isFinal)
			// node is now immutably captured in the Store; free its struct
			// for reuse at this depth, same as the pruned case.
			node.clear(b.alg.NoOutput())
		} else {
			parent.replaceLast(label, uncompiledTarget[T](node), node.finalOutput, isFinal)
			b.frontier.freshSlot(i)
		}
	}

	return nil
}

// resolveStaleArcs compiles any arc targets left uncompiled by an earlier
// freeze call (which leaves the node at prefixLenPlus1 uncompiled whenever
// MinSuffixCount2 != 0), before node itself can be compiled or further
// inspected.
func (b *Builder[T]) resolveStaleArcs(node *uncompiledNode[T]) error {
	for i := range node.arcs {
		a := &node.arcs[i]
		if a.target.compiled {
			continue
		}
		child := a.target.uncompiled
		childFinal := child.isFinal || child.numArcs() == 0
		child.isFinal = childFinal
		ref, err := b.compileNode(child, 1)
		if err != nil {
			return err
		}
		a.target = compiledTarget[T](ref)
		a.isFinal = childFinal
		a.nextFinalOutput = child.finalOutput
	}
	return nil
}

// compileNode compiles node into the Store, routing through the Node Hash
// for structural dedup when the compilation policy allows it.
//
// A zero-arc node is not special-cased out of dedup: every key's suffix
// bottoms out in one, so treating dead ends as always-fresh would poison
// every ancestor's fingerprint with a distinct leaf Ref and suffix sharing
// would never share anything. This mirrors the role Lucene's
// FINAL_END_NODE/NON_FINAL_END_NODE constants play for its (fixed,
// no-output) end nodes, generalized here to route through the same
// fingerprint-keyed Node Hash used for every other node rather than a
// pair of reserved sentinels, since this package's final output is not
// fixed to a single value.
func (b *Builder[T]) compileNode(node *uncompiledNode[T], tailLength int) (Ref, error) {
	if err := b.resolveStaleArcs(node); err != nil {
		return NoRef, err
	}

	isFinal := node.isFinal || node.numArcs() == 0
	node.isFinal = isFinal

	compiledArcs := make([]compiledArc[T], len(node.arcs))
	for i, a := range node.arcs {
		compiledArcs[i] = compiledArc[T]{
			label:           a.label,
			target:          a.target.ref,
			isFinal:         a.isFinal,
			output:          a.output,
			nextFinalOutput: a.nextFinalOutput,
		}
	}

	b.stats.NodesCompiled++

	if !b.opts.DoShareSuffix {
		return b.store.Add(compiledArcs, isFinal, node.finalOutput), nil
	}

	eligible := (b.opts.DoShareNonSingletonNodes || node.numArcs() <= 1) &&
		tailLength <= b.opts.ShareMaxTailLength
	if !eligible {
		return b.store.Add(compiledArcs, isFinal, node.finalOutput), nil
	}

	fp := fingerprint(compiledArcs, isFinal, node.finalOutput)
	ref, hit, err := b.nodeHash.Add(fp, func() (Ref, error) {
		return b.store.Add(compiledArcs, isFinal, node.finalOutput), nil
	})
	if err != nil {
		return NoRef, err
	}
	if hit {
		b.stats.NodesShared++
		b.stats.NodesCompiled--
	}
	return ref, nil
}
