package dom

import (
	"strings"
	"testing"
)

func buildEventTree() (outer, inner, target *Node) {
	outer = NewElement("outer")
	inner = outer.AppendChild(NewElement("inner"))
	target = inner.AppendChild(NewElement("button"))
	return
}

func TestDispatchOrder(t *testing.T) {
	outer, inner, target := buildEventTree()
	var order []string
	record := func(name string) Listener {
		return func(*Event) { order = append(order, name) }
	}

	outer.AddEventListener("click", record("outer-capture"), ListenerOptions{Capture: true})
	outer.AddEventListener("click", record("outer-bubble"), ListenerOptions{})
	inner.AddEventListener("click", record("inner-bubble"), ListenerOptions{})
	target.AddEventListener("click", record("target-bubble"), ListenerOptions{})
	target.AddEventListener("click", record("target-capture"), ListenerOptions{Capture: true})

	target.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))

	want := "outer-capture,target-capture,target-bubble,inner-bubble,outer-bubble"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestDispatchNonBubbling(t *testing.T) {
	outer, _, target := buildEventTree()
	called := false
	outer.AddEventListener("focus", func(*Event) { called = true }, ListenerOptions{})

	target.DispatchEvent(NewEvent("focus", EventInit{}))
	if called {
		t.Error("non-bubbling event reached ancestor bubble listener")
	}
}

func TestStopPropagation(t *testing.T) {
	outer, inner, target := buildEventTree()
	outerCalled := false
	innerCalls := 0
	inner.AddEventListener("click", func(e *Event) {
		innerCalls++
		e.StopPropagation()
	}, ListenerOptions{})
	inner.AddEventListener("click", func(*Event) { innerCalls++ }, ListenerOptions{})
	outer.AddEventListener("click", func(*Event) { outerCalled = true }, ListenerOptions{})

	target.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))

	if innerCalls != 2 {
		t.Errorf("inner listeners called %d times, want 2", innerCalls)
	}
	if outerCalled {
		t.Error("StopPropagation should keep the event from reaching outer")
	}
}

func TestStopImmediatePropagation(t *testing.T) {
	_, _, target := buildEventTree()
	calls := 0
	target.AddEventListener("click", func(e *Event) {
		calls++
		e.StopImmediatePropagation()
	}, ListenerOptions{})
	target.AddEventListener("click", func(*Event) { calls++ }, ListenerOptions{})

	target.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPreventDefault(t *testing.T) {
	_, _, target := buildEventTree()
	target.AddEventListener("submit", func(e *Event) { e.PreventDefault() }, ListenerOptions{})

	if target.DispatchEvent(NewEvent("submit", EventInit{Cancelable: true})) {
		t.Error("DispatchEvent should return false when default is prevented")
	}
	if !target.DispatchEvent(NewEvent("submit", EventInit{})) {
		t.Error("non-cancelable event cannot be prevented")
	}
}

func TestPassiveListenerCannotPreventDefault(t *testing.T) {
	_, _, target := buildEventTree()
	target.AddEventListener("wheel", func(e *Event) { e.PreventDefault() }, ListenerOptions{Passive: true})

	if !target.DispatchEvent(NewEvent("wheel", EventInit{Cancelable: true})) {
		t.Error("passive listener should not prevent default")
	}
}

func TestOnceListener(t *testing.T) {
	_, _, target := buildEventTree()
	calls := 0
	target.AddEventListener("click", func(*Event) { calls++ }, ListenerOptions{Once: true})

	target.DispatchEvent(NewEvent("click", EventInit{}))
	target.DispatchEvent(NewEvent("click", EventInit{}))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if target.ListenerCount("click") != 0 {
		t.Error("once listener should be removed after firing")
	}
}

func TestRemoveEventListener(t *testing.T) {
	n := NewElement("div")
	id := n.AddEventListener("click", func(*Event) {}, ListenerOptions{})
	if !n.RemoveEventListener(id) {
		t.Error("RemoveEventListener should report removal")
	}
	if n.RemoveEventListener(id) {
		t.Error("second RemoveEventListener should report false")
	}
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	n := NewElement("div")
	var second ListenerID
	secondCalled := false
	n.AddEventListener("click", func(*Event) { n.RemoveEventListener(second) }, ListenerOptions{})
	second = n.AddEventListener("click", func(*Event) { secondCalled = true }, ListenerOptions{})

	n.DispatchEvent(NewEvent("click", EventInit{}))
	if secondCalled {
		t.Error("listener removed during dispatch should not run")
	}
}

func TestComposedEventCrossesShadowRoot(t *testing.T) {
	doc := NewDocument()
	host := doc.AppendChild(NewElement("x-host"))
	inside := host.AttachShadow().AppendChild(NewElement("button"))

	var got []string
	host.AddEventListener("select", func(e *Event) {
		got = append(got, e.Type)
		if e.Target() != inside {
			t.Error("Target() should be the dispatching node")
		}
	}, ListenerOptions{})

	inside.DispatchEvent(NewEvent("select", EventInit{Bubbles: true}))
	if len(got) != 0 {
		t.Error("non-composed event should stop at the shadow root")
	}

	inside.DispatchEvent(NewEvent("select", EventInit{Bubbles: true, Composed: true}))
	if len(got) != 1 {
		t.Errorf("composed event reached host %d times, want 1", len(got))
	}
}

func TestReplaceListener(t *testing.T) {
	n := NewElement("button")
	var calls []string
	other := n.AddEventListener("click", func(*Event) { calls = append(calls, "other") }, ListenerOptions{})

	n.ReplaceListener("click", func(*Event) { calls = append(calls, "first") }, ListenerOptions{})
	n.ReplaceListener("click", func(*Event) { calls = append(calls, "second") }, ListenerOptions{})

	n.DispatchEvent(NewEvent("click", EventInit{}))
	if got := strings.Join(calls, ","); got != "other,second" {
		t.Errorf("calls = %s, want other,second", got)
	}

	if removed := n.RemoveTrackedListeners("click"); removed != 1 {
		t.Errorf("RemoveTrackedListeners() = %d, want 1", removed)
	}
	if n.ListenerCount("click") != 1 {
		t.Error("untracked listener should survive")
	}
	n.RemoveEventListener(other)
}
