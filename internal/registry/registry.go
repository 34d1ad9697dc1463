// Package registry implements the parser registry (spec component A):
// a static, order-stable table mapping a parser identifier to its
// (name, optional constructor, matcher, optional destructor) tuple,
// grounded on liblognorm's parser_lookup_table in pdag.c.
//
// Registry rows are required to be pure functions of their inputs and
// their own edge-local instance data (spec.md §5) — none of them may
// see the PDAG or Context, which keeps this package import-free of
// internal/pdag and safe to call concurrently once a Context is frozen.
package registry

import "github.com/ritamzico/lognorm/internal/value"

// ID identifies a row in Table. Row order defines ID values (spec I1):
// never reorder Table without expecting every previously-built PDAG to
// become corrupt.
type ID int

// CustomType is the sentinel PrsID used by parser edges that dispatch
// into a named Type PDAG instead of a registry row. It has no row.
const CustomType ID = -1

// ConstructFunc builds per-edge instance state ("parser_data") from the
// rule's inline configuration. extraData is the literal/char-set/etc.
// configuration string taken from the rule; jsonParams carries any
// richer structured configuration a rule file format wants to pass.
type ConstructFunc func(extraData string, jsonParams map[string]any) (data any, err error)

// MatchFunc attempts to consume input starting at offs. On success it
// returns the number of bytes consumed from offs and, if wantValue is
// true, a freshly allocated Value; on mismatch it returns ok=false and
// the other return values are unspecified.
//
// wantValue is false exactly when the edge's name is the discard
// sentinel "-", sparing stateless parsers an allocation they'd
// immediately throw away (spec.md §4.5 step 1.a).
type MatchFunc func(str string, offs int, data any, wantValue bool) (consumed int, val *value.Value, ok bool)

// DestructFunc releases constructor output. Only stateful parsers need
// one; nil is legal and means "no owned state to release".
type DestructFunc func(data any)

// Info is a single parser registry row (spec.md §3 "Parser info").
type Info struct {
	Name      string
	Construct ConstructFunc
	Match     MatchFunc
	Destruct  DestructFunc
}

// Table is the default, built-in parser catalogue. Callers that need a
// custom/extended catalogue should copy it (it's a plain slice) rather
// than mutate it in place, since IDs are positional.
var Table = []Info{
	{Name: "literal", Construct: constructLiteral, Match: matchLiteral, Destruct: destructLiteral},
	{Name: "char-to", Construct: constructCharTo, Match: matchCharTo, Destruct: destructCharTo},
	{Name: "string-to", Construct: constructStringTo, Match: matchStringTo, Destruct: destructStringTo},
	{Name: "char-sep", Construct: constructCharSep, Match: matchCharSep, Destruct: destructCharSep},
	{Name: "number", Match: matchNumber},
	{Name: "float", Match: matchFloat},
	{Name: "hexnumber", Match: matchHexNumber},
	{Name: "word", Match: matchWord},
	{Name: "alpha", Match: matchAlpha},
	{Name: "rest", Match: matchRest},
	{Name: "whitespace", Match: matchWhitespace},
	{Name: "ipv4", Match: matchIPv4},
	{Name: "mac48", Match: matchMAC48},
	{Name: "quoted-string", Match: matchQuotedString},
}

// NameToID implements parserName2ID: canonical name -> registry ID.
func NameToID(table []Info, name string) (ID, bool) {
	for i, row := range table {
		if row.Name == name {
			return ID(i), true
		}
	}
	return CustomType, false
}

// Name returns the canonical name for id, or "USER-DEFINED" for
// CustomType, matching pdag.c's parserName() helper used by the
// diagnostics/DOT output.
func Name(table []Info, id ID) string {
	if id == CustomType {
		return "USER-DEFINED"
	}
	if int(id) < 0 || int(id) >= len(table) {
		return "INVALID"
	}
	return table[id].Name
}
