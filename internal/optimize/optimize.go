// Package optimize implements PDAG optimization (spec component D):
// currently just literal path compaction, run once after every rule
// has been loaded, grounded on pdag.c's ln_pdagOptimize /
// ln_pdagComponentOptimize / optLitPathCompact.
package optimize

import (
	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/registry"
)

// CompactAcrossTerminal and CompactNamedLiterals resolve the open
// semantic question spec.md §4.4/§9 flags with a TODO in the original
// source: should compaction fuse a literal pair when the intermediate
// node is terminal, or when either edge's name isn't the discard
// sentinel? Both default to false — compaction is skipped across
// terminal or named nodes — and are left as package-level knobs
// exactly so a caller can opt back into the original's more
// aggressive (and more surprising) behavior.
var (
	CompactAcrossTerminal = false
	CompactNamedLiterals  = false
)

// Optimize runs every optimization pass over the main PDAG and every
// Type PDAG owned by ctx (spec.md §4.4 pdagOptimize).
func Optimize(ctx *pdag.Context) error {
	for _, t := range ctx.Types {
		ctx.Debugf("optimizing type pdag", map[string]any{"type": t.Name})
		if err := optimizeComponent(ctx, t.Root); err != nil {
			return err
		}
	}
	ctx.Debugf("optimizing main pdag", nil)
	return optimizeComponent(ctx, ctx.Root)
}

func optimizeComponent(ctx *pdag.Context, dag *pdag.Node) error {
	for _, prs := range dag.Parsers {
		compactLiteralPath(ctx, prs)
		if err := optimizeComponent(ctx, prs.Node); err != nil {
			return err
		}
	}
	return nil
}

// compactLiteralPath fuses a run of single-outbound-edge literal nodes
// into one edge carrying the concatenated text (spec.md §4.4).
func compactLiteralPath(ctx *pdag.Context, prs *pdag.ParserEdge) {
	for {
		if prs.PrsID != ctx.LiteralID() {
			return
		}
		child := prs.Node
		if len(child.Parsers) != 1 {
			return
		}
		childPrs := child.Parsers[0]
		if childPrs.PrsID != ctx.LiteralID() {
			return
		}
		if !CompactAcrossTerminal && child.Terminal {
			return
		}
		if !CompactNamedLiterals && (prs.Name != pdag.Discard || childPrs.Name != pdag.Discard) {
			return
		}

		prs.Data = registry.CombineLiteralData(prs.Data, childPrs.Data)
		grandchild := childPrs.Node
		pdag.DestroyEdgeDataOnly(ctx, childPrs)
		prs.Node = grandchild
	}
}
