// Package pdag implements the PDAG data structures (spec component B)
// and the sample-insertion builder (spec component C): nodes, parser
// edges, Type PDAGs and the Context that owns them all, grounded on
// liblognorm's ln_ctx/ln_pdag/ln_parser_t (pdag.c) and laid out the
// way the teacher repo's internal/graph package lays out its node,
// edge, and error types.
package pdag

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/ritamzico/lognorm/internal/registry"
)

// Context is the process-wide compilation state (spec.md §3
// "Context"): the main PDAG root, every named Type PDAG, a node
// counter, and a debug flag. It owns every node and edge reachable
// from those roots.
type Context struct {
	Root  *Node
	Types []*TypePDAG

	Debug  bool
	logger zerolog.Logger

	table      []registry.Info
	literalID  registry.ID
	nNodeCount int
}

// Option configures a new Context.
type Option func(*Context)

// WithTable injects an alternate/extended parser registry, realizing
// spec.md §9's note that the registry should become "an immutable
// table injected into the Context at construction" rather than a
// single hardcoded global. The default is registry.Table.
func WithTable(table []registry.Info) Option {
	return func(c *Context) { c.table = table }
}

// WithDebug turns on ln_dbgprintf-equivalent tracing via zerolog.
func WithDebug(debug bool) Option {
	return func(c *Context) { c.Debug = debug }
}

// WithLogger overrides the destination logger (default: a console
// writer on stderr, matching the teacher CLI's habit of writing
// diagnostics to stderr).
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

// NewContext allocates a fresh, empty compilation context with a
// freshly allocated, empty main PDAG root.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		table:  registry.Table,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	if id, ok := registry.NameToID(ctx.table, "literal"); ok {
		ctx.literalID = id
	} else {
		ctx.literalID = registry.ID(-2) // never matches a real edge
	}
	ctx.Root = NewNode(ctx)
	return ctx
}

// Table returns the registry rows this context was built with.
func (ctx *Context) Table() []registry.Info {
	return ctx.table
}

// LiteralID returns the registry ID this context resolved "literal"
// to, so other packages (optimize, matcher, diagnostics) can recognize
// literal edges without hardcoding table position 0.
func (ctx *Context) LiteralID() registry.ID {
	return ctx.literalID
}

// Debugf emits a gated debug trace, the Go equivalent of pdag.c's
// ln_dbgprintf(ctx, ...) calls sprinkled through the builder,
// optimizer, and matcher.
func (ctx *Context) Debugf(msg string, fields map[string]any) {
	ctx.dbg(msg, fields)
}

// NodeCount returns how many nodes have been allocated in this
// context across the main PDAG and every Type PDAG.
func (ctx *Context) NodeCount() int {
	return ctx.nNodeCount
}

// NewType creates, registers, and returns a new named Type PDAG rooted
// at a fresh node, addressable from any parser edge via
// registry.CustomType (spec.md §3 "Type PDAG").
func (ctx *Context) NewType(name string) *TypePDAG {
	t := &TypePDAG{Name: name, Root: NewNode(ctx)}
	ctx.Types = append(ctx.Types, t)
	return t
}

// FindType looks up a previously created Type PDAG by name.
func (ctx *Context) FindType(name string) (*TypePDAG, bool) {
	for _, t := range ctx.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

func (ctx *Context) dbg(msg string, fields map[string]any) {
	if !ctx.Debug {
		return
	}
	ev := ctx.logger.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// DestroyContext releases every node and edge reachable from the main
// PDAG root and every Type PDAG, invoking each parser edge's
// registry Destruct on its owned parser_data (spec.md §5 resource
// ownership). Go's GC reclaims the memory either way; this exists so
// callers relying on Destruct side effects (e.g. closing a resource a
// custom Construct opened) get them deterministically, and so the
// core's public surface matches spec.md §6 exactly.
func DestroyContext(ctx *Context) {
	for _, t := range ctx.Types {
		DestroyNode(ctx, t.Root)
	}
	DestroyNode(ctx, ctx.Root)
}
