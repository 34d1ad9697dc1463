package pdag

import (
	"github.com/ritamzico/lognorm/internal/registry"
	"github.com/ritamzico/lognorm/internal/value"
)

// AddParser is the idempotent "add parser to node" operation (spec
// component C, spec.md §4.3): it splices edge onto the node *nodeRef
// points at, merging with an equivalent existing edge if one exists
// so that common rule prefixes share PDAG structure.
//
// Merge-key equality is (PrsID, Name), with one exemption: two literal
// edges with different literal bytes are never considered the same
// merge key, even though they share (PrsID, Name) — they're both
// named Discard by convention (spec.md I2).
//
// On return, *nodeRef has been advanced to the successor node the
// caller should continue building the rest of the rule from.
func AddParser(nodeRef **Node, edge *ParserEdge) error {
	dag := *nodeRef

	for _, existing := range dag.Parsers {
		if existing.PrsID != edge.PrsID || existing.Name != edge.Name {
			continue
		}
		if dag.ctx.isLiteral(existing.PrsID) && !sameLiteral(existing, edge) {
			continue
		}
		*nodeRef = existing.Node
		destroyEdge(dag.ctx, edge)
		return nil
	}

	successor := NewNode(dag.ctx)
	edge.Node = successor
	dag.Parsers = append(dag.Parsers, edge)
	*nodeRef = successor
	return nil
}

func (ctx *Context) isLiteral(id registry.ID) bool {
	return id == ctx.literalID
}

func sameLiteral(a, b *ParserEdge) bool {
	return registry.LiteralText(a.Data) == registry.LiteralText(b.Data)
}

// MarkTerminal marks dag as a rule-ending node and attaches tags (may
// be nil), completing the caller's build-a-rule protocol described in
// spec.md §4.3: "after the final call, mark *nodeRef terminal and
// attach its tag set."
func (n *Node) MarkTerminal(tags *value.Object) {
	n.Terminal = true
	n.Tags = tags
}
