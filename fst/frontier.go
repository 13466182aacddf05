package fst

// frontier is the array of uncompiled nodes indexed 0..len(lastInput),
// where slot i holds the node reached after consuming the first i labels
// of the last-seen key. Slot 0 is the root; it is never compiled until
// Finish.
//
// Like urkle's FrontierStateV1 frames, slots are stable by depth and are
// repeatedly cleared and reused rather than reallocated as successive keys
// extend or retract the frontier's length.
type frontier[T any] struct {
	slots []*uncompiledNode[T]
}

func newFrontier[T any]() *frontier[T] {
	f := &frontier[T]{slots: make([]*uncompiledNode[T], 1)}
	f.slots[0] = newUncompiledNode[T](0)
	return f
}

// grow ensures slots has at least n entries, allocating fresh uncompiled
// nodes with the correct depth for any newly created slot.
func (f *frontier[T]) grow(n int) {
	for len(f.slots) < n {
		f.slots = append(f.slots, newUncompiledNode[T](len(f.slots)))
	}
}

func (f *frontier[T]) at(i int) *uncompiledNode[T] { return f.slots[i] }

// freshSlot allocates a brand new uncompiled node at index i, discarding
// whatever was there (used when the tail freezer leaves a node
// uncompiled-but-shared and must not reuse its identity for the next key).
func (f *frontier[T]) freshSlot(i int) {
	f.slots[i] = newUncompiledNode[T](i)
}
