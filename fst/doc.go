// Package fst implements an incremental, minimizing finite-state-transducer
// builder: it ingests a lexicographically sorted stream of (key, value)
// pairs and produces a minimal, deterministic, acyclic, labeled graph whose
// paths enumerate the input keys and whose edge-labeled output algebra
// reconstructs the associated values.
//
// # Core invariants
//
// The builder relies on:
//
//  1. keys arrive in non-decreasing lexicographic order over the
//     configured label domain
//  2. the frontier — the uncompiled spine reached by the last-seen key —
//     is fully rebuilt/pruned on every divergence before the new key's
//     suffix is appended
//  3. output values are pushed as far toward the root as the algebra
//     allows, so every arc carries the maximal prefix common to all keys
//     passing through it
//
// If (1) is violated, append-only tail-freezing becomes unsound: it would
// require revisiting already-compiled nodes.
//
// # Why the compiled store never shrinks
//
// Like an MMR, a compiled FST only ever grows: once a node is compiled its
// Ref is permanent and its structure immutable. This lets suffix sharing
// (Node Hash lookups) treat any previously returned Ref as valid for the
// remainder of the build, and lets the enumerator walk compiled state
// without ever re-validating it.
package fst
