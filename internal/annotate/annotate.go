// Package annotate implements the tag-annotation collaborator (spec.md
// §6 "the annotator exposes annotate(ctx, outObj, tags)"), invoked once
// by internal/matcher after a successful terminal match whose node
// carries tags, grounded on pdag.c's ln_annotate call site.
package annotate

import (
	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/value"
)

// TagAnnotator is the default Annotator (internal/matcher.Annotator):
// for every tag name attached to the matched rule, it sets a boolean
// "tag.<name>" field on the result object, the convention liblognorm
// rule files use to let downstream consumers branch on tags without
// re-parsing event.tags.
type TagAnnotator struct {
	// Prefix overrides the default "tag." field prefix. Empty means
	// use the default.
	Prefix string
}

// Annotate implements matcher.Annotator.
func (a TagAnnotator) Annotate(_ *pdag.Context, outObj *value.Object, tags *value.Object) error {
	if tags == nil {
		return nil
	}
	prefix := a.Prefix
	if prefix == "" {
		prefix = "tag."
	}
	for _, name := range tags.Keys() {
		outObj.Attach(prefix+name, value.NewBool(true))
	}
	return nil
}
