package optimize

import (
	"fmt"
	"testing"

	"github.com/ritamzico/lognorm/internal/matcher"
	"github.com/ritamzico/lognorm/internal/pdag"
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

// TestOptimize_CompactsLiteralRun is scenario 4 from spec.md §8:
// inserting "abc" as three one-character literals and optimizing
// yields a root with a single literal edge holding "abc".
func TestOptimize_CompactsLiteralRun(t *testing.T) {
	ctx := pdag.NewContext()
	insertLiteralRule(t, ctx, "abc")

	if err := Optimize(ctx); err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(ctx.Root.Parsers) != 1 {
		t.Fatalf("expected exactly one root edge after compaction, got %d", len(ctx.Root.Parsers))
	}
	edge := ctx.Root.Parsers[0]
	if edge.PrsID != ctx.LiteralID() {
		t.Fatalf("expected the compacted edge to still be a literal, got id %d", edge.PrsID)
	}
}

// TestOptimize_Idempotent is P5: running Optimize twice produces the
// same shape as running it once.
func TestOptimize_Idempotent(t *testing.T) {
	ctx := pdag.NewContext()
	insertLiteralRule(t, ctx, "abc")

	if err := Optimize(ctx); err != nil {
		t.Fatalf("first Optimize failed: %v", err)
	}
	firstCount := len(ctx.Root.Parsers)

	if err := Optimize(ctx); err != nil {
		t.Fatalf("second Optimize failed: %v", err)
	}
	secondCount := len(ctx.Root.Parsers)

	if firstCount != secondCount {
		t.Errorf("optimize is not idempotent: first pass left %d root edges, second left %d", firstCount, secondCount)
	}
}

// TestOptimize_SkipsTerminalIntermediateByDefault checks the default
// guard from spec.md §4.4: compaction does not cross a terminal node.
func TestOptimize_SkipsTerminalIntermediateByDefault(t *testing.T) {
	ctx := pdag.NewContext()

	// Rule "a" (terminal) and rule "ab" share the prefix "a", making the
	// intermediate node after 'a' terminal.
	insertLiteralRule(t, ctx, "a")
	insertLiteralRule(t, ctx, "ab")

	if err := Optimize(ctx); err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(ctx.Root.Parsers) != 1 {
		t.Fatalf("expected one root edge (shared 'a' prefix), got %d", len(ctx.Root.Parsers))
	}
	firstEdge := ctx.Root.Parsers[0]
	if !firstEdge.Node.Terminal {
		t.Fatal("node after 'a' should be terminal")
	}
	if len(firstEdge.Node.Parsers) != 1 {
		t.Fatalf("node after 'a' should still have its own successor edge for 'b', got %d edges", len(firstEdge.Node.Parsers))
	}
}

// TestOptimize_PreservesMatchSemantics is P4: normalize's output
// before and after Optimize is identical for every input.
func TestOptimize_PreservesMatchSemantics(t *testing.T) {
	ctx := pdag.NewContext()
	insertLiteralRule(t, ctx, "abc")

	inputs := []string{"abc", "ab", "abcd", "xyz"}
	type snapshot struct {
		ok  bool
		obj map[string]any
	}
	before := make(map[string]snapshot, len(inputs))
	for _, in := range inputs {
		obj, ok := matcher.Normalize(ctx, nil, in)
		before[in] = snapshot{ok: ok, obj: obj.ToMap()}
	}

	if err := Optimize(ctx); err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	for _, in := range inputs {
		obj, ok := matcher.Normalize(ctx, nil, in)
		want := before[in]
		if ok != want.ok {
			t.Errorf("optimize changed match outcome for %q: before ok=%v after ok=%v", in, want.ok, ok)
			continue
		}
		got := obj.ToMap()
		if !mapsEqual(want.obj, got) {
			t.Errorf("optimize changed result for %q: before=%v after=%v", in, want.obj, got)
		}
	}
}

func mapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || fmt.Sprint(v) != fmt.Sprint(bv) {
			return false
		}
	}
	return true
}
