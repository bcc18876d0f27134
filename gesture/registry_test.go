package gesture

import "testing"

// swipeRight drives r through a fast horizontal movement.
func swipeRight(r *Recognizer) {
	r.OnContactBegin([]ContactPoint{pt(0, 0, 0)})
	r.OnContactMove([]ContactPoint{pt(100, 0, 100)})
	r.OnContactEnd()
}

// TestSubscribe_RegistrationOrder verifies handlers for one kind run in
// the order they subscribed.
func TestSubscribe_RegistrationOrder(t *testing.T) {
	r, _ := newTestRecognizer(Config{})
	var order []int
	r.Subscribe(KindSwipe, func(Event) { order = append(order, 1) })
	r.Subscribe(KindSwipe, func(Event) { order = append(order, 2) })
	r.Subscribe(KindSwipe, func(Event) { order = append(order, 3) })

	swipeRight(r)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected handlers in registration order, got %v", order)
	}
}

// TestUnsubscribe_RemovesOnlyTarget verifies removal by handle leaves the
// other handlers in place and tolerates repeated or nil handles.
func TestUnsubscribe_RemovesOnlyTarget(t *testing.T) {
	r, _ := newTestRecognizer(Config{})
	var got []int
	sub := r.Subscribe(KindSwipe, func(Event) { got = append(got, 1) })
	r.Subscribe(KindSwipe, func(Event) { got = append(got, 2) })

	r.Unsubscribe(sub)
	r.Unsubscribe(sub)
	r.Unsubscribe(nil)
	swipeRight(r)

	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only the second handler, got %v", got)
	}
}

// TestUnsubscribeAll_ClearsOneKind verifies clearing a kind leaves other
// kinds subscribed.
func TestUnsubscribeAll_ClearsOneKind(t *testing.T) {
	r, clk := newTestRecognizer(Config{})
	var swipes, taps int
	r.Subscribe(KindSwipe, func(Event) { swipes++ })
	r.Subscribe(KindSwipe, func(Event) { swipes++ })
	r.Subscribe(KindTap, func(Event) { taps++ })

	r.UnsubscribeAll(KindSwipe)
	swipeRight(r)
	if swipes != 0 {
		t.Fatalf("expected no swipe handlers after UnsubscribeAll, got %d calls", swipes)
	}

	r.OnContactBegin([]ContactPoint{pt(0, 0, 200)})
	r.OnContactEnd()
	clk.AdvanceTo(atMs(1000))
	if taps != 1 {
		t.Fatalf("expected the tap subscription to survive, got %d calls", taps)
	}
}

// TestHandlerPanic_DoesNotStopFanout verifies a panicking handler is
// contained and later handlers still receive the event.
func TestHandlerPanic_DoesNotStopFanout(t *testing.T) {
	r, _ := newTestRecognizer(Config{})
	var reached bool
	r.Subscribe(KindSwipe, func(Event) { panic("subscriber bug") })
	r.Subscribe(KindSwipe, func(Event) { reached = true })

	swipeRight(r)

	if !reached {
		t.Fatalf("expected the second handler to run after the panic")
	}
}

// TestHandler_MayUnsubscribeItself verifies reentrant unsubscription during
// dispatch neither deadlocks nor affects the in-flight fan-out.
func TestHandler_MayUnsubscribeItself(t *testing.T) {
	r, _ := newTestRecognizer(Config{})
	var calls int
	var sub *Subscription
	sub = r.Subscribe(KindSwipe, func(Event) {
		calls++
		r.Unsubscribe(sub)
	})

	swipeRight(r)
	swipeRight(r)

	if calls != 1 {
		t.Fatalf("expected one call before self-removal, got %d", calls)
	}
}

// TestSubscribe_NilHandlerIgnored verifies nil handlers are rejected
// without breaking dispatch.
func TestSubscribe_NilHandlerIgnored(t *testing.T) {
	r, _ := newTestRecognizer(Config{})
	if sub := r.Subscribe(KindSwipe, nil); sub != nil {
		t.Fatalf("expected nil subscription for nil handler, got %#v", sub)
	}
	var calls int
	r.Subscribe(KindSwipe, func(Event) { calls++ })

	swipeRight(r)

	if calls != 1 {
		t.Fatalf("expected dispatch to work, got %d calls", calls)
	}
}

// TestSubscription_KindAccessor verifies the handle reports the kind it
// was registered for.
func TestSubscription_KindAccessor(t *testing.T) {
	r, _ := newTestRecognizer(Config{})
	sub := r.Subscribe(KindPinch, func(Event) {})
	if sub.Kind() != KindPinch {
		t.Fatalf("expected pinch subscription, got %q", sub.Kind())
	}
}
