package diagnostics

import (
	"strings"
	"testing"

	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/registry"
)

func insertLiteralRule(t *testing.T, ctx *pdag.Context, literals string) {
	t.Helper()
	node := ctx.Root
	for i := 0; i < len(literals); i++ {
		edge, err := pdag.NewLiteralParserEdge(ctx, literals[i])
		if err != nil {
			t.Fatalf("NewLiteralParserEdge failed: %v", err)
		}
		if err := pdag.AddParser(&node, edge); err != nil {
			t.Fatalf("AddParser failed: %v", err)
		}
	}
	node.MarkTerminal(nil)
}

func TestDisplayPDAG_ShowsEachEdge(t *testing.T) {
	ctx := pdag.NewContext()
	insertLiteralRule(t, ctx, "ab")

	var sb strings.Builder
	DisplayPDAG(ctx, &sb)

	out := sb.String()
	if strings.Count(out, "->") != 2 {
		t.Errorf("expected two edge lines, got:\n%s", out)
	}
	if !strings.Contains(out, "[terminal]") {
		t.Errorf("expected the last edge to be marked terminal, got:\n%s", out)
	}
}

func TestFullPdagStats_CountsNodesAndParsers(t *testing.T) {
	ctx := pdag.NewContext()
	insertLiteralRule(t, ctx, "ab")

	var sb strings.Builder
	FullPdagStats(ctx, &sb)
	out := sb.String()

	if !strings.Contains(out, "nodes") {
		t.Errorf("expected a nodes line, got:\n%s", out)
	}
	if !strings.Contains(out, "terminal nodes") {
		t.Errorf("expected a terminal nodes line, got:\n%s", out)
	}
	wantParser := registry.Name(ctx.Table(), ctx.LiteralID())
	if !strings.Contains(out, wantParser) {
		t.Errorf("expected a %q histogram row, got:\n%s", wantParser, out)
	}
}

func TestGenDotPDAGGraph_WrapsInDigraph(t *testing.T) {
	ctx := pdag.NewContext()
	insertLiteralRule(t, ctx, "ab")

	var sb strings.Builder
	GenDotPDAGGraph(ctx, ctx.Root, &sb)
	out := sb.String()

	if !strings.HasPrefix(out, "digraph pdag {") {
		t.Errorf("expected DOT output to start with digraph header, got:\n%s", out)
	}
	if !strings.Contains(out, "style=dotted") {
		t.Errorf("expected edges to be styled dotted, got:\n%s", out)
	}
	if !strings.Contains(out, "style=bold") {
		t.Errorf("expected the leaf node to be styled bold, got:\n%s", out)
	}
}

func TestGenDotPDAGGraph_ElidesQuoteAndBackslashInLabels(t *testing.T) {
	ctx := pdag.NewContext()
	edge, err := pdag.NewParserEdge(ctx, pdag.Discard, mustLiteralID(t, ctx), nil, `a"b\c`, nil)
	if err != nil {
		t.Fatalf("NewParserEdge failed: %v", err)
	}
	root := ctx.Root
	if err := pdag.AddParser(&root, edge); err != nil {
		t.Fatalf("AddParser failed: %v", err)
	}
	root.MarkTerminal(nil)

	var sb strings.Builder
	GenDotPDAGGraph(ctx, ctx.Root, &sb)
	out := sb.String()
	if strings.Contains(out, `"`+`literal:a"b\c`) {
		t.Errorf("expected quote/backslash to be elided from the label, got:\n%s", out)
	}
	if !strings.Contains(out, "literal:abc") {
		t.Errorf("expected label literal:abc, got:\n%s", out)
	}
}

func mustLiteralID(t *testing.T, ctx *pdag.Context) registry.ID {
	t.Helper()
	return ctx.LiteralID()
}
