package pdag

import "testing"

func mustLiteral(t *testing.T, ctx *Context, ch byte) *ParserEdge {
	t.Helper()
	e, err := NewLiteralParserEdge(ctx, ch)
	if err != nil {
		t.Fatalf("NewLiteralParserEdge(%q) failed: %v", ch, err)
	}
	return e
}

func TestAddParser_SharesCommonPrefix(t *testing.T) {
	ctx := NewContext()

	node := ctx.Root
	if err := AddParser(&node, mustLiteral(t, ctx, 'a')); err != nil {
		t.Fatalf("AddParser failed: %v", err)
	}
	after1 := node

	node = ctx.Root
	if err := AddParser(&node, mustLiteral(t, ctx, 'a')); err != nil {
		t.Fatalf("AddParser failed: %v", err)
	}

	if node != after1 {
		t.Error("inserting the same literal twice should merge into the same successor node")
	}
	if len(ctx.Root.Parsers) != 1 {
		t.Errorf("expected exactly one edge on root after merging, got %d", len(ctx.Root.Parsers))
	}
}

func TestAddParser_LiteralExemptionKeepsDistinctBytes(t *testing.T) {
	ctx := NewContext()

	node := ctx.Root
	if err := AddParser(&node, mustLiteral(t, ctx, 'a')); err != nil {
		t.Fatalf("AddParser failed: %v", err)
	}

	node = ctx.Root
	if err := AddParser(&node, mustLiteral(t, ctx, 'b')); err != nil {
		t.Fatalf("AddParser failed: %v", err)
	}

	if len(ctx.Root.Parsers) != 2 {
		t.Errorf("expected two coexisting literal edges for distinct bytes (I2 exemption), got %d", len(ctx.Root.Parsers))
	}
}

func TestAddParser_NoDuplicateMergeKeys(t *testing.T) {
	ctx := NewContext()

	node := ctx.Root
	e1, err := NewParserEdge(ctx, "uid", ctx.literalID, nil, "x", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := AddParser(&node, e1); err != nil {
		t.Fatal(err)
	}

	node = ctx.Root
	e2, err := NewParserEdge(ctx, "uid", ctx.literalID, nil, "x", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := AddParser(&node, e2); err != nil {
		t.Fatal(err)
	}

	type mergeKey struct {
		id   int
		name string
	}
	seen := make(map[mergeKey]int)
	for _, e := range ctx.Root.Parsers {
		key := mergeKey{id: int(e.PrsID), name: e.Name}
		seen[key]++
		if seen[key] > 1 {
			t.Errorf("node has more than one edge with merge key %+v (violates P1/I2)", key)
		}
	}
}
