package ruleset

import (
	"io"
	"strings"

	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/registry"
	"github.com/ritamzico/lognorm/internal/value"
)

// Load parses a rule file from r and drives ctx's builder (spec
// component C via internal/pdag.AddParser) for every type and rule
// declaration found. Type declarations may reference a type that is
// declared later in the same file or in an earlier Load call against
// the same ctx.
func Load(ctx *pdag.Context, r io.Reader) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	file, err := ruleParser.ParseBytes("", text)
	if err != nil {
		return Error{Kind: "SyntaxError", Message: err.Error()}
	}

	for _, decl := range file.Decls {
		if decl.Type != nil {
			if _, ok := ctx.FindType(decl.Type.Name); !ok {
				ctx.NewType(decl.Type.Name)
			}
		}
	}

	for _, decl := range file.Decls {
		switch {
		case decl.Type != nil:
			t, _ := ctx.FindType(decl.Type.Name)
			if err := addSegments(ctx, t.Root, decl.Type.Segments, nil); err != nil {
				return err
			}
		case decl.Rule != nil:
			var tags *value.Object
			if len(decl.Rule.Tags) > 0 {
				tags = value.NewObject()
				for _, tag := range decl.Rule.Tags {
					tags.AttachString(tag, "")
				}
			}
			if err := addSegments(ctx, ctx.Root, decl.Rule.Segments, tags); err != nil {
				return err
			}
		}
	}
	return nil
}

func addSegments(ctx *pdag.Context, node *pdag.Node, segments []*Segment, tags *value.Object) error {
	for _, seg := range segments {
		var err error
		node, err = addSegment(ctx, node, seg)
		if err != nil {
			return err
		}
	}
	node.MarkTerminal(tags)
	return nil
}

func addSegment(ctx *pdag.Context, node *pdag.Node, seg *Segment) (*pdag.Node, error) {
	switch {
	case seg.Literal != nil:
		text := strings.Trim(seg.Literal.Text, `"`)
		for i := 0; i < len(text); i++ {
			edge, err := pdag.NewLiteralParserEdge(ctx, text[i])
			if err != nil {
				return nil, err
			}
			if err := pdag.AddParser(&node, edge); err != nil {
				return nil, err
			}
		}
		return node, nil

	case seg.Type != nil:
		t, ok := ctx.FindType(seg.Type.TypeName)
		if !ok {
			return nil, errUnknownType(seg.Type.TypeName)
		}
		edge, err := pdag.NewParserEdge(ctx, fieldName(seg.Type.FieldName), registry.CustomType, t, "", nil)
		if err != nil {
			return nil, err
		}
		if err := pdag.AddParser(&node, edge); err != nil {
			return nil, err
		}
		return node, nil

	default:
		id, ok := registry.NameToID(ctx.Table(), seg.Field.Parser)
		if !ok {
			return nil, errUnknownParser(seg.Field.Parser)
		}
		extraData := ""
		if seg.Field.ExtraData != nil {
			extraData = strings.Trim(*seg.Field.ExtraData, `"`)
		}
		edge, err := pdag.NewParserEdge(ctx, fieldName(seg.Field.FieldName), id, nil, extraData, nil)
		if err != nil {
			return nil, err
		}
		if err := pdag.AddParser(&node, edge); err != nil {
			return nil, err
		}
		return node, nil
	}
}

func fieldName(fn FieldName) string {
	switch {
	case fn.Discard:
		return pdag.Discard
	case fn.Merge:
		return pdag.Merge
	default:
		return fn.Name
	}
}
