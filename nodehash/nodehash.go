// Package nodehash provides the structural-deduplication backing store
// consumed by the fst package's tail freezer: add(uncompiled) -> handle,
// returning an existing handle for a structurally identical node or
// compiling and registering a fresh one.
package nodehash

// Table is the structural-dedup contract. H is the compiled-node handle
// type (the fst package uses its own Ref, a uint32 arena index).
//
// Add looks up fingerprint (a canonical encoding of the uncompiled node's
// arc sequence — labels, targets, outputs, finality, final-outputs) and:
//   - if a structurally identical node was already registered, returns its
//     handle and hit=true without invoking compile.
//   - otherwise calls compile to freshly compile the node, registers the
//     resulting handle under fingerprint, and returns it with hit=false.
//
// compile is only invoked on a miss; Table never calls it twice for the
// same fingerprint unless the entry has since been evicted.
type Table[H any] interface {
	Add(fingerprint []byte, compile func() (H, error)) (handle H, hit bool, err error)
	Len() int
}
