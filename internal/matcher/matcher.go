// Package matcher implements the recursive backtracking normalizer
// (spec component E), grounded on pdag.c's ln_normalize/ln_normalizeRec/
// tryParser/fixJSON.
package matcher

import (
	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/registry"
	"github.com/ritamzico/lognorm/internal/value"
)

// Reserved output keys (spec.md §6).
const (
	OriginalMsgKey  = "originalmsg"
	UnparsedDataKey = "unparsed-data"
	EventTagsKey    = "event.tags"
)

// Annotator is the tagging post-step collaborator (spec.md §6):
// invoked once, after a successful terminal match whose node carries
// tags. The core treats it as an external, out-of-scope collaborator —
// this package only calls it, never implements tagging policy.
type Annotator interface {
	Annotate(ctx *pdag.Context, outObj *value.Object, tags *value.Object) error
}

// Normalize matches str against ctx's main PDAG (spec.md §4.5.2
// ln_normalize). It returns the populated result object and whether a
// rule matched the input from start to finish (true) or not
// (false — the WRONGPARSER outcome, a normal result, not an error).
// ann may be nil, in which case terminal tags are still attached under
// EventTagsKey but no external annotation call is made.
func Normalize(ctx *pdag.Context, ann Annotator, str string) (*value.Object, bool) {
	outObj := value.NewObject()
	parsedTo := 0

	ok, endNode, _ := normalizeRec(ctx, ann, ctx.Root, str, 0, false, &parsedTo, outObj)

	if ok && endNode.Terminal {
		if endNode.Tags != nil {
			outObj.Attach(EventTagsKey, value.NewObjectValue(endNode.Tags))
			if ann != nil {
				if err := ann.Annotate(ctx, outObj, endNode.Tags); err != nil {
					ctx.Debugf("annotator returned an error", map[string]any{"error": err.Error()})
				}
			}
		}
		return outObj, true
	}

	addUnparsedFields(outObj, str, parsedTo)
	return outObj, false
}

func addUnparsedFields(outObj *value.Object, str string, parsedTo int) {
	outObj.AttachString(OriginalMsgKey, str)
	outObj.AttachString(UnparsedDataKey, str[parsedTo:])
}

// normalizeRec is the recursive step (spec.md §4.5). dag is the
// current PDAG node; parsedTo tracks, monotonically non-decreasing,
// the furthest input offset any attempted branch reached. On success it
// also returns the offset at which the accepted terminal node was reached.
func normalizeRec(
	ctx *pdag.Context,
	ann Annotator,
	dag *pdag.Node,
	str string,
	offs int,
	partial bool,
	parsedTo *int,
	outObj *value.Object,
) (bool, *pdag.Node, int) {
	for _, prs := range dag.Parsers {
		localOffs := offs
		localParsed := 0
		var val *value.Value

		matched := tryParser(ctx, ann, str, &localOffs, &localParsed, &val, prs, parsedTo)
		if !matched {
			if got := localOffs + localParsed; got > *parsedTo {
				*parsedTo = got
			}
			continue
		}

		nextOffs := localOffs + localParsed
		if nextOffs > *parsedTo {
			*parsedTo = nextOffs
		}

		subOK, subEnd, subEndOffs := normalizeRec(ctx, ann, prs.Node, str, nextOffs, partial, parsedTo, outObj)
		if subOK {
			fixJSON(outObj, val, prs)
			return true, subEnd, subEndOffs
		}
		if val != nil {
			val.Put()
		}
	}

	if dag.Terminal && (offs == len(str) || partial) {
		return true, dag, offs
	}
	return false, nil, 0
}

// tryParser dispatches a single parser edge (spec.md §4.5 step 1.a):
// CUSTOM_TYPE edges recurse into their Type PDAG with a fresh result
// object and partial=true; every other edge kind calls the registry
// Match function, withholding the value pointer for discard-named
// edges so they never allocate a value they'd just throw away.
func tryParser(
	ctx *pdag.Context,
	ann Annotator,
	str string,
	offs *int,
	parsed *int,
	val **value.Value,
	prs *pdag.ParserEdge,
	parsedTo *int,
) bool {
	if prs.PrsID == registry.CustomType {
		fresh := value.NewObject()
		entry := *offs
		sub := entry
		ok, _, end := normalizeRec(ctx, ann, prs.CustType.Root, str, entry, true, &sub, fresh)
		if sub > *parsedTo {
			*parsedTo = sub
		}
		if !ok {
			*parsed = sub - entry
			return false
		}
		*parsed = end - entry
		*val = value.NewObjectValueOwned(fresh)
		return true
	}

	row := ctx.Table()[prs.PrsID]
	wantValue := prs.Name != pdag.Discard
	consumed, v, ok := row.Match(str, *offs, prs.Data, wantValue)
	if !ok {
		return false
	}
	*parsed = consumed
	*val = v
	return true
}

// fixJSON attaches a parsed value to the parent result object
// according to the edge's name policy (spec.md §4.5.1):
//   - Discard ("-"): release the value, attach nothing.
//   - Merge ("."): if the value is an object, splice its top-level
//     keys into outObj; otherwise (spec.md §9, kept as observed rather
//     than rejected) attach it under the literal key ".".
//   - otherwise: attach under prs.Name.
func fixJSON(outObj *value.Object, val *value.Value, prs *pdag.ParserEdge) {
	switch prs.Name {
	case pdag.Discard:
		if val != nil {
			val.Put()
		}
	case pdag.Merge:
		if val != nil && val.Kind == value.ObjectVal {
			obj := val.Obj
			for _, k := range obj.Keys() {
				outObj.Attach(k, obj.Get(k).IncRef())
			}
			val.Put()
			return
		}
		outObj.Attach(prs.Name, val)
	default:
		outObj.Attach(prs.Name, val)
	}
}
