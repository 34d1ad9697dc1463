package pdag

import (
	"github.com/ritamzico/lognorm/internal/registry"
	"github.com/ritamzico/lognorm/internal/value"
)

// Node represents a single state in the PDAG (spec.md §3 "PDAG node").
type Node struct {
	Parsers  []*ParserEdge
	Terminal bool
	Tags     *value.Object

	ctx *Context
}

// NewNode allocates a node and registers it against the owning
// Context's node counter.
func NewNode(ctx *Context) *Node {
	ctx.nNodeCount++
	return &Node{ctx: ctx}
}

// IsLeaf reports whether dag has no outbound parser edges, matching
// pdag.c's isLeaf() helper used by the DOT generator to bold leaves.
func (n *Node) IsLeaf() bool {
	return len(n.Parsers) == 0
}

// DestroyNode recursively releases dag and everything reachable only
// through it: each outbound edge's owned parser_data (via the
// registry's Destruct) and its successor node.
func DestroyNode(ctx *Context, dag *Node) {
	if dag == nil {
		return
	}
	for _, prs := range dag.Parsers {
		destroyEdge(ctx, prs)
	}
}

// DestroyEdgeDataOnly releases prs's owned parser_data without
// touching prs.Node. The literal-path-compaction optimizer uses this
// after folding a child literal edge's text into its parent (spec.md
// §4.4): the child's successor node has already been re-linked
// elsewhere, so only the now-redundant edge's own data needs freeing.
func DestroyEdgeDataOnly(ctx *Context, prs *ParserEdge) {
	if prs.PrsID != registry.CustomType && prs.Data != nil {
		row := ctx.table[prs.PrsID]
		if row.Destruct != nil {
			row.Destruct(prs.Data)
		}
	}
}

func destroyEdge(ctx *Context, prs *ParserEdge) {
	if prs.Node != nil {
		DestroyNode(ctx, prs.Node)
	}
	if prs.PrsID != registry.CustomType && prs.Data != nil {
		row := ctx.table[prs.PrsID]
		if row.Destruct != nil {
			row.Destruct(prs.Data)
		}
	}
}
