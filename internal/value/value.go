// Package value implements the JSON-like value model the matcher builds
// up while normalizing a log line. It plays the role liblognorm's
// json_object wrapper plays in pdag.c: a small tagged union of scalar
// kinds plus an ordered key/value object, with explicit reference
// counting so ownership transfer during backtracking (spec.md I5, P6)
// can be verified without relying on the garbage collector.
package value

import "fmt"

type Kind int

const (
	Null Kind = iota
	StringVal
	IntVal
	FloatVal
	BoolVal
	ObjectVal
)

// Value is a single parsed field: either a scalar or a nested Object
// (the latter produced by a CUSTOM_TYPE sub-match).
type Value struct {
	Kind Kind
	S    string
	I    int64
	F    float64
	B    bool
	Obj  *Object

	refs int
}

func NewString(s string) *Value  { return &Value{Kind: StringVal, S: s, refs: 1} }
func NewInt(i int64) *Value      { return &Value{Kind: IntVal, I: i, refs: 1} }
func NewFloat(f float64) *Value  { return &Value{Kind: FloatVal, F: f, refs: 1} }
func NewBool(b bool) *Value      { return &Value{Kind: BoolVal, B: b, refs: 1} }

// NewObjectValue wraps o in a Value for attaching to a second owner
// while o keeps its existing holder alive too — e.g. a PDAG node's
// permanent Tags object being shared into a match result. o.refs is
// bumped because the node's own reference to o must survive this
// Value being Put() away at the end of the match.
func NewObjectValue(o *Object) *Value {
	o.refs++
	return &Value{Kind: ObjectVal, Obj: o, refs: 1}
}

// NewObjectValueOwned wraps o in a Value without bumping o's
// refcount, transferring the caller's sole existing reference into
// the new Value instead of adding a second one. Use this for an
// object with no other holder — e.g. the fresh result object a
// CUSTOM_TYPE sub-match builds — so that Put()-ing the returned
// Value all the way to zero releases o to zero as well, instead of
// leaving a stray extra reference nothing will ever bring down.
func NewObjectValueOwned(o *Object) *Value {
	return &Value{Kind: ObjectVal, Obj: o, refs: 1}
}

// RefCount returns the current reference count, exposed so tests can
// verify P6 (every value is attached or released exactly once on
// every path).
func (v *Value) RefCount() int {
	if v == nil {
		return 0
	}
	return v.refs
}

// IncRef bumps the reference count, mirroring json_object_get.
func (v *Value) IncRef() *Value {
	if v != nil {
		v.refs++
	}
	return v
}

// Put releases a reference, mirroring json_object_put. When the count
// reaches zero and the value wraps an Object, the object's own
// reference is released too.
func (v *Value) Put() {
	if v == nil {
		return
	}
	v.refs--
	if v.refs == 0 && v.Kind == ObjectVal && v.Obj != nil {
		v.Obj.put()
	}
}

// Object is an insertion-ordered string-keyed map, the structural
// analogue of a JSON object node in the result tree.
type Object struct {
	keys   []string
	fields map[string]*Value
	refs   int
}

func NewObject() *Object {
	return &Object{fields: make(map[string]*Value), refs: 1}
}

// IncRef bumps the object's own reference count.
func (o *Object) IncRef() *Object {
	if o != nil {
		o.refs++
	}
	return o
}

func (o *Object) put() {
	o.refs--
}

// RefCount is exposed for P6 tests.
func (o *Object) RefCount() int {
	if o == nil {
		return 0
	}
	return o.refs
}

// Attach adds key -> v, taking ownership of v. If key already exists,
// the old value is released first (last write wins, matching
// json_object_object_add's replace semantics).
func (o *Object) Attach(key string, v *Value) {
	if old, ok := o.fields[key]; ok {
		old.Put()
	} else {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// AttachString is a convenience for Attach(key, NewString(s)).
func (o *Object) AttachString(key, s string) {
	o.Attach(key, NewString(s))
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value for key, or nil if absent.
func (o *Object) Get(key string) *Value {
	return o.fields[key]
}

// Len reports the number of keys currently attached.
func (o *Object) Len() int {
	return len(o.keys)
}

// ToMap flattens the object into a plain map[string]any, recursing into
// nested objects; used by cmd/ JSON encoding.
func (o *Object) ToMap() map[string]any {
	out := make(map[string]any, o.Len())
	for _, k := range o.keys {
		out[k] = valueToAny(o.fields[k])
	}
	return out
}

func valueToAny(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case StringVal:
		return v.S
	case IntVal:
		return v.I
	case FloatVal:
		return v.F
	case BoolVal:
		return v.B
	case ObjectVal:
		return v.Obj.ToMap()
	default:
		return nil
	}
}

func (v *Value) String() string {
	switch v.Kind {
	case StringVal:
		return v.S
	case IntVal:
		return fmt.Sprintf("%d", v.I)
	case FloatVal:
		return fmt.Sprintf("%g", v.F)
	case BoolVal:
		return fmt.Sprintf("%t", v.B)
	case ObjectVal:
		return fmt.Sprintf("%v", v.Obj.ToMap())
	default:
		return "<null>"
	}
}
