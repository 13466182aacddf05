package fst

import (
	"fmt"
	"strings"
)

// fingerprint produces a canonical structural encoding of a compiled arc
// sequence plus node-level finality — labels, targets, outputs, finality
// flags, and final-outputs — suitable as a Node Hash dedup key.
//
// T's concrete representation is opaque to this package, so the encoding
// leans on fmt's "%#v" verb (Go-syntax representation) rather than a
// bespoke binary codec; this is sufficient for distinguishing the small
// set of reference output algebras this package ships with.
func fingerprint[T any](arcs []compiledArc[T], isFinal bool, finalOutput T) []byte {
	var b strings.Builder
	if isFinal {
		b.WriteString("F")
		fmt.Fprintf(&b, "(%#v)", finalOutput)
	}
	for _, a := range arcs {
		fmt.Fprintf(&b, "|%d:%v:%#v", a.label, a.target, a.output)
		if a.isFinal {
			fmt.Fprintf(&b, ":f=%#v", a.nextFinalOutput)
		}
	}
	return []byte(b.String())
}
