package pdag

import "github.com/ritamzico/lognorm/internal/registry"

// Discard and Merge are the two reserved parser edge names (spec.md
// §3, §6): Discard suppresses the produced value, Merge splices the
// produced object's own keys into the parent.
const (
	Discard = "-"
	Merge   = "."
)

// ParserEdge is a single outbound transition from a Node (spec.md §3
// "Parser edge").
type ParserEdge struct {
	PrsID    registry.ID
	Name     string
	Prio     int // reserved for future priority ordering; unused today
	CustType *TypePDAG
	Data     any
	Node     *Node
}

// NewParserEdge allocates a parser edge and, for non-custom-type
// parsers whose registry row has a constructor, invokes it to
// populate Data (spec.md §4.2 newParserEdge).
func NewParserEdge(
	ctx *Context,
	name string,
	prsid registry.ID,
	custType *TypePDAG,
	extraData string,
	jsonParams map[string]any,
) (*ParserEdge, error) {
	edge := &ParserEdge{Name: name, PrsID: prsid}
	if prsid == registry.CustomType {
		edge.CustType = custType
		return edge, nil
	}
	row := ctx.table[prsid]
	if row.Construct != nil {
		data, err := row.Construct(extraData, jsonParams)
		if err != nil {
			return nil, err
		}
		edge.Data = data
	}
	return edge, nil
}

// NewLiteralParserEdge is the newLiteralParserEdge convenience: a
// discard-named literal edge matching the single byte ch.
func NewLiteralParserEdge(ctx *Context, ch byte) (*ParserEdge, error) {
	return NewParserEdge(ctx, Discard, ctx.literalID, nil, string(ch), nil)
}
