package ruleset

import "fmt"

// Error is a ruleset-loading failure: a syntax error from the grammar,
// or a semantic error discovered while driving the builder (unknown
// parser name, unknown type reference, and the like).
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errUnknownParser(name string) error {
	return Error{Kind: "UnknownParser", Message: fmt.Sprintf("no registry parser named %q", name)}
}

func errUnknownType(name string) error {
	return Error{Kind: "UnknownType", Message: fmt.Sprintf("type %q is referenced but never declared", name)}
}
