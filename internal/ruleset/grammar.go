// Package ruleset implements the declarative, external rule-file
// format (spec.md §1/§6 "the external loader" collaborator): a small
// participle grammar describing named custom types and top-level
// rules as sequences of literal and field segments, plus a loader that
// drives internal/pdag's builder. It never touches the matcher.
package ruleset

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Keyword", Pattern: `(?i)\b(type|rule|tags|lit)\b`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Punct", Pattern: `[{}:,.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// File is the top-level AST node: a rule file is a sequence of type
// and rule declarations.
type File struct {
	Decls []*Decl `parser:"@@*"`
}

// Decl dispatches on the "type" or "rule" keyword.
type Decl struct {
	Type *TypeDecl `parser:"  @@"`
	Rule *RuleDecl `parser:"| @@"`
}

// TypeDecl: "type:" <name> "{" <segments> "}". The same type name may
// appear in more than one TypeDecl block; each contributes another
// alternative rule merged into the same Type PDAG.
type TypeDecl struct {
	Name     string     `parser:"\"type\" \":\" @Ident"`
	Segments []*Segment `parser:"\"{\" @@* \"}\""`
}

// RuleDecl: "rule" ( "tags:" <name> ( "," <name> )* )? "{" <segments> "}".
type RuleDecl struct {
	Tags     []string   `parser:"\"rule\" ( \"tags\" \":\" @Ident ( \",\" @Ident )* )?"`
	Segments []*Segment `parser:"\"{\" @@* \"}\""`
}

// Segment dispatches on the leading keyword/token of one pattern step.
type Segment struct {
	Literal *LiteralSegment `parser:"  @@"`
	Type    *TypeSegment    `parser:"| @@"`
	Field   *FieldSegment   `parser:"| @@"`
}

// LiteralSegment: "lit:" <quoted text>. Matches the exact enclosed text.
type LiteralSegment struct {
	Text string `parser:"\"lit\" \":\" @String"`
}

// TypeSegment: "type:" <typeName> ":" <fieldName>. Recurses into a
// previously (or later) declared named Type PDAG.
type TypeSegment struct {
	TypeName  string    `parser:"\"type\" \":\" @Ident \":\""`
	FieldName FieldName `parser:"@@"`
}

// FieldSegment: <registryParserName> ":" <fieldName> ( ":" <quoted extraData> )?.
type FieldSegment struct {
	Parser    string    `parser:"@Ident \":\""`
	FieldName FieldName `parser:"@@"`
	ExtraData *string   `parser:"( \":\" @String )?"`
}

// FieldName is a field name, or one of the two reserved edge names.
type FieldName struct {
	Discard bool   `parser:"  @\"-\""`
	Merge   bool   `parser:"| @\".\""`
	Name    string `parser:"| @Ident"`
}

var ruleParser = participle.MustBuild[File](
	participle.Lexer(ruleLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace", "Comment"),
)
