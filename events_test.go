package parallax

import (
	"reflect"
	"testing"
)

func TestEventRegistryEmitsInSubscriptionOrder(t *testing.T) {
	var r eventRegistry
	var got []string
	r.on(EventScroll, "a", func() { got = append(got, "a") })
	r.on(EventScroll, "b", func() { got = append(got, "b") })
	r.on(EventResize, "a", func() { got = append(got, "resize") })

	r.emit(EventScroll)
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("scroll dispatch = %v, want %v", got, want)
	}
	got = nil
	r.emit(EventResize)
	if want := []string{"resize"}; !reflect.DeepEqual(got, want) {
		t.Errorf("resize dispatch = %v, want %v", got, want)
	}
}

func TestEventRegistryOffRemovesOnlyToken(t *testing.T) {
	var r eventRegistry
	calls := 0
	r.on(EventScroll, "keep", func() { calls++ })
	r.on(EventScroll, "drop", func() { t.Error("removed handler fired") })
	r.on(EventResize, "drop", func() { calls += 10 })

	r.off(EventScroll, "drop")
	r.emit(EventScroll)
	r.emit(EventResize)

	if calls != 11 {
		t.Errorf("calls = %d, want 11", calls)
	}
	if r.count(EventScroll) != 1 {
		t.Errorf("scroll count = %d, want 1", r.count(EventScroll))
	}
}

func TestEventRegistryUnsubscribeDuringDispatch(t *testing.T) {
	var r eventRegistry
	var got []string
	r.on(EventScroll, "first", func() {
		got = append(got, "first")
		r.off(EventScroll, "first")
		r.off(EventScroll, "second")
	})
	r.on(EventScroll, "second", func() { got = append(got, "second") })

	r.emit(EventScroll)
	r.emit(EventScroll)

	// The snapshot still delivers the first event to both handlers.
	if want := []string{"first", "second"}; !reflect.DeepEqual(got, want) {
		t.Errorf("dispatch = %v, want %v", got, want)
	}
}
