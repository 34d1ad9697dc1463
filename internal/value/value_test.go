package value

import "testing"

func TestObject_NewObjectIsBaselineOne(t *testing.T) {
	o := NewObject()
	if got := o.RefCount(); got != 1 {
		t.Fatalf("NewObject: expected refcount 1, got %d", got)
	}
}

func TestNewObjectValue_SharesAnExistingHolder(t *testing.T) {
	tags := NewObject()
	before := tags.RefCount()

	wrapped := NewObjectValue(tags)
	if got := tags.RefCount(); got != before+1 {
		t.Fatalf("NewObjectValue: expected tags refcount %d, got %d", before+1, got)
	}

	wrapped.Put()
	if got := tags.RefCount(); got != before {
		t.Errorf("after Put(): expected tags refcount back to %d, got %d", before, got)
	}
}

func TestNewObjectValueOwned_TransfersSoleReference(t *testing.T) {
	fresh := NewObject()
	if got := fresh.RefCount(); got != 1 {
		t.Fatalf("NewObject: expected refcount 1, got %d", got)
	}

	wrapped := NewObjectValueOwned(fresh)
	if got := fresh.RefCount(); got != 1 {
		t.Fatalf("NewObjectValueOwned must not bump the object's own refcount: got %d", got)
	}
	if got := wrapped.RefCount(); got != 1 {
		t.Fatalf("expected wrapper refcount 1, got %d", got)
	}

	wrapped.Put()
	if got := fresh.RefCount(); got != 0 {
		t.Errorf("Put()-ing the sole owning Value should release the object to 0, got %d", got)
	}
}

func TestValue_IncRefAndPut(t *testing.T) {
	v := NewString("x")
	if got := v.RefCount(); got != 1 {
		t.Fatalf("NewString: expected refcount 1, got %d", got)
	}

	v.IncRef()
	if got := v.RefCount(); got != 2 {
		t.Fatalf("after IncRef: expected refcount 2, got %d", got)
	}

	v.Put()
	if got := v.RefCount(); got != 1 {
		t.Fatalf("after one Put(): expected refcount 1, got %d", got)
	}
	v.Put()
	if got := v.RefCount(); got != 0 {
		t.Fatalf("after second Put(): expected refcount 0, got %d", got)
	}
}

func TestObject_AttachReplacesAndReleasesOldValue(t *testing.T) {
	o := NewObject()
	first := NewString("a")
	o.Attach("k", first)
	if got := first.RefCount(); got != 1 {
		t.Fatalf("expected first's refcount 1, got %d", got)
	}

	second := NewString("b")
	o.Attach("k", second)
	if got := first.RefCount(); got != 0 {
		t.Errorf("replacing a key should Put() the old value, expected refcount 0, got %d", got)
	}
	if got := o.Get("k"); got != second {
		t.Errorf("expected replaced value to be the new one")
	}
}

func TestValue_RefCountNilIsZero(t *testing.T) {
	var v *Value
	if got := v.RefCount(); got != 0 {
		t.Errorf("nil *Value RefCount: expected 0, got %d", got)
	}
	var o *Object
	if got := o.RefCount(); got != 0 {
		t.Errorf("nil *Object RefCount: expected 0, got %d", got)
	}
}
