// Package diagnostics implements the PDAG introspection sinks (spec.md
// §6): a human-readable tree dump, per-node and whole-context
// statistics, and a DOT graph generator, grounded on pdag.c's
// ln_displayPDAG/ln_pdagStats/ln_fullPdagStats/ln_genDotPDAGGraph.
package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/registry"
)

// edgeLabel renders a parser edge's DOT label: "<parser-name>" plus,
// for literal edges, the matched text with `"` and `\` elided (spec.md
// §6 DOT output format).
func edgeLabel(table []registry.Info, literalID registry.ID, e *pdag.ParserEdge) string {
	name := registry.Name(table, e.PrsID)
	if e.PrsID != literalID {
		return name
	}
	text := registry.LiteralText(e.Data)
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if c := text[i]; c != '"' && c != '\\' {
			b.WriteByte(c)
		}
	}
	return name + ":" + b.String()
}

// DisplayPDAG writes an indented tree dump of the main PDAG to w,
// grounded on pdag.c's ln_displayPDAG (spec.md §6).
func DisplayPDAG(ctx *pdag.Context, w io.Writer) {
	displayNode(ctx, w, ctx.Root, 0)
}

func displayNode(ctx *pdag.Context, w io.Writer, n *pdag.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range n.Parsers {
		terminal := ""
		if e.Node.Terminal {
			terminal = " [terminal]"
		}
		fmt.Fprintf(w, "%s-> %s (%s)%s\n", indent, e.Name, edgeLabel(ctx.Table(), ctx.LiteralID(), e), terminal)
		displayNode(ctx, w, e.Node, depth+1)
	}
}

// nodeStats accumulates the counters pdagStats/fullPdagStats report.
type nodeStats struct {
	nodes         int
	terminalNodes int
	parserEntries int
	longestPath   int
	byParser      map[string]int
	fanOut        [101]int // index 100 is the "100+" overflow bucket
}

func newNodeStats() *nodeStats {
	return &nodeStats{byParser: make(map[string]int)}
}

func (s *nodeStats) walk(ctx *pdag.Context, n *pdag.Node, depth int) {
	s.nodes++
	if n.Terminal {
		s.terminalNodes++
	}
	if depth > s.longestPath {
		s.longestPath = depth
	}

	fanOut := len(n.Parsers)
	if fanOut >= 100 {
		s.fanOut[100]++
	} else {
		s.fanOut[fanOut]++
	}

	for _, e := range n.Parsers {
		s.parserEntries++
		s.byParser[registry.Name(ctx.Table(), e.PrsID)]++
		s.walk(ctx, e.Node, depth+1)
	}
}

func (s *nodeStats) write(w io.Writer) {
	fmt.Fprintf(w, "%-16s %d\n", "nodes", s.nodes)
	fmt.Fprintf(w, "%-16s %d\n", "terminal nodes", s.terminalNodes)
	fmt.Fprintf(w, "%-16s %d\n", "parser entries", s.parserEntries)
	fmt.Fprintf(w, "%-16s %d\n", "longest path", s.longestPath)

	names := make([]string, 0, len(s.byParser))
	for name := range s.byParser {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %d\n", name, s.byParser[name])
	}

	for fanOut := 0; fanOut < 100; fanOut++ {
		if s.fanOut[fanOut] == 0 {
			continue
		}
		fmt.Fprintf(w, "  fan-out %-6d %d\n", fanOut, s.fanOut[fanOut])
	}
	if s.fanOut[100] > 0 {
		fmt.Fprintf(w, "  fan-out %-6s %d\n", "100+", s.fanOut[100])
	}
}

// PdagStats writes the stats block (spec.md §6 stats output format)
// for the sub-PDAG rooted at node to w.
func PdagStats(ctx *pdag.Context, node *pdag.Node, w io.Writer) {
	s := newNodeStats()
	s.walk(ctx, node, 0)
	s.write(w)
}

// FullPdagStats writes combined stats across the main PDAG and every
// Type PDAG to w.
func FullPdagStats(ctx *pdag.Context, w io.Writer) {
	s := newNodeStats()
	s.walk(ctx, ctx.Root, 0)
	for _, t := range ctx.Types {
		s.walk(ctx, t.Root, 0)
	}
	s.write(w)
}

// GenDotPDAGGraph writes a Graphviz DOT rendering of the sub-PDAG
// rooted at node to w: one node line per PDAG node (leaves bold), one
// edge line per parser edge labelled "<parser-name>" (with
// ":<literal-chars>" appended for literal edges) and styled dotted
// (spec.md §6 DOT output format).
func GenDotPDAGGraph(ctx *pdag.Context, node *pdag.Node, w io.Writer) {
	fmt.Fprintln(w, "digraph pdag {")
	ids := make(map[*pdag.Node]int)
	assignDotIDs(node, ids)

	for n, id := range ids {
		style := ""
		if n.IsLeaf() {
			style = " [style=bold]"
		}
		fmt.Fprintf(w, "  n%d%s;\n", id, style)
	}
	emitDotEdges(ctx, w, node, ids)
	fmt.Fprintln(w, "}")
}

func assignDotIDs(n *pdag.Node, ids map[*pdag.Node]int) {
	if _, seen := ids[n]; seen {
		return
	}
	ids[n] = len(ids)
	for _, e := range n.Parsers {
		assignDotIDs(e.Node, ids)
	}
}

func emitDotEdges(ctx *pdag.Context, w io.Writer, n *pdag.Node, ids map[*pdag.Node]int) {
	for _, e := range n.Parsers {
		fmt.Fprintf(w, "  n%d -> n%d [label=%q, style=dotted];\n", ids[n], ids[e.Node], edgeLabel(ctx.Table(), ctx.LiteralID(), e))
	}
	for _, e := range n.Parsers {
		emitDotEdges(ctx, w, e.Node, ids)
	}
}
