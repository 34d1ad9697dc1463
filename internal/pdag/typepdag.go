package pdag

// TypePDAG is a named, independently rooted sub-DAG addressable from
// any parser edge via registry.CustomType (spec.md §3 "Type PDAG").
// It is owned by the Context that created it.
type TypePDAG struct {
	Name string
	Root *Node
}
