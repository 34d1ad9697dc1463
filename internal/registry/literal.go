package registry

import (
	"strings"

	"github.com/ritamzico/lognorm/internal/value"
)

// literalData is the parser_data a literal edge owns: the exact byte
// sequence it must match. newLiteralParserEdge only ever builds a
// single-byte instance; optimize.Optimize grows it via
// CombineLiteralData when compacting a run of one-character literals
// into a single multi-character edge (spec.md §4.4).
type literalData struct {
	text string
}

func constructLiteral(extraData string, _ map[string]any) (any, error) {
	return &literalData{text: extraData}, nil
}

func destructLiteral(data any) {
	// literalData holds no externally-owned resources; present so the
	// registry row keeps the construct/match/destruct shape the
	// builder and matcher expect of every stateful parser.
	_ = data
}

func matchLiteral(str string, offs int, data any, wantValue bool) (int, *value.Value, bool) {
	ld := data.(*literalData)
	if !strings.HasPrefix(str[offs:], ld.text) {
		return 0, nil, false
	}
	if wantValue {
		return len(ld.text), value.NewString(ld.text), true
	}
	return len(ld.text), nil, true
}

// CombineLiteralData implements the literal parser's "combine"
// operation the optimizer calls when fusing two adjacent literal
// edges into one (spec.md §4.4): concatenate the inner characters.
func CombineLiteralData(parent, child any) any {
	p := parent.(*literalData)
	c := child.(*literalData)
	p.text += c.text
	return p
}

// LiteralText exposes the matched text for diagnostics (DOT labels).
func LiteralText(data any) string {
	return data.(*literalData).text
}
