// Package lognorm is the public facade gluing the core PDAG
// components together with the ruleset loader, annotator, and
// diagnostics sinks into one Context type.
package lognorm

import (
	"io"
	"os"

	"github.com/ritamzico/lognorm/internal/annotate"
	"github.com/ritamzico/lognorm/internal/diagnostics"
	"github.com/ritamzico/lognorm/internal/matcher"
	"github.com/ritamzico/lognorm/internal/optimize"
	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/registry"
	"github.com/ritamzico/lognorm/internal/ruleset"
	"github.com/ritamzico/lognorm/internal/value"
)

// Value and Object are re-exported so callers never need to import
// internal/value directly to inspect a Normalize result.
type (
	Value  = value.Value
	Object = value.Object
)

// Context owns a compiled PDAG, filled by the ruleset loader, and the
// tag annotator Normalize calls.
type Context struct {
	pdag     *pdag.Context
	pdagOpts []pdag.Option
	ann      matcher.Annotator
}

// Option configures a new Context.
type Option func(*Context)

// WithDebug turns on structured debug tracing: the optimizer traces
// each PDAG it visits and the matcher traces annotator errors. The
// builder emits no traces.
func WithDebug(debug bool) Option {
	return func(c *Context) { c.pdagOpts = append(c.pdagOpts, pdag.WithDebug(debug)) }
}

// WithTable injects an alternate/extended parser registry.
func WithTable(table []registry.Info) Option {
	return func(c *Context) { c.pdagOpts = append(c.pdagOpts, pdag.WithTable(table)) }
}

// WithAnnotator overrides the default tag annotator. The default is
// annotate.TagAnnotator{}.
func WithAnnotator(ann matcher.Annotator) Option {
	return func(c *Context) { c.ann = ann }
}

// New allocates a fresh, empty Context.
func New(opts ...Option) *Context {
	c := &Context{ann: annotate.TagAnnotator{}}
	for _, opt := range opts {
		opt(c)
	}
	c.pdag = pdag.NewContext(c.pdagOpts...)
	return c
}

// Load reads a rule file from r and compiles it into ctx.
func (c *Context) Load(r io.Reader) error {
	return ruleset.Load(c.pdag, r)
}

// LoadFile opens path and calls Load on its contents.
func (c *Context) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Load(f)
}

// LoadYAML reads a rule file in the YAML rendering of the rule
// grammar from r and compiles it into ctx.
func (c *Context) LoadYAML(r io.Reader) error {
	return ruleset.LoadYAML(c.pdag, r)
}

// LoadYAMLFile opens path and calls LoadYAML on its contents.
func (c *Context) LoadYAMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.LoadYAML(f)
}

// Optimize runs literal-path compaction over every PDAG the context
// owns. Call it once after every rule has been loaded.
func (c *Context) Optimize() error {
	return optimize.Optimize(c.pdag)
}

// Normalize matches str against the compiled rule set. The bool result
// is false exactly when no rule matched the input in full (the
// WRONGPARSER outcome) — not an error.
func (c *Context) Normalize(str string) (*Object, bool) {
	return matcher.Normalize(c.pdag, c.ann, str)
}

// DisplayPDAG writes a human-readable tree dump of the main PDAG to w.
func (c *Context) DisplayPDAG(w io.Writer) {
	diagnostics.DisplayPDAG(c.pdag, w)
}

// PdagStats writes stats for the main PDAG to w.
func (c *Context) PdagStats(w io.Writer) {
	diagnostics.PdagStats(c.pdag, c.pdag.Root, w)
}

// FullPdagStats writes combined stats for the main PDAG and every Type
// PDAG to w.
func (c *Context) FullPdagStats(w io.Writer) {
	diagnostics.FullPdagStats(c.pdag, w)
}

// GenDotPDAGGraph writes a Graphviz DOT rendering of the main PDAG to w.
func (c *Context) GenDotPDAGGraph(w io.Writer) {
	diagnostics.GenDotPDAGGraph(c.pdag, c.pdag.Root, w)
}
