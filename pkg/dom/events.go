package dom

import "sync/atomic"

// Phase is the dispatch phase an event is in.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// EventInit configures a new event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	// Composed events propagate from a shadow root to its host.
	Composed bool
	Detail   any
}

// Event is dispatched through the tree by DispatchEvent.
type Event struct {
	Type string
	EventInit

	target        *Node
	currentTarget *Node
	phase         Phase

	defaultPrevented bool
	stopped          bool
	stoppedNow       bool
	inPassive        bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, init EventInit) *Event {
	return &Event{Type: typ, EventInit: init}
}

// Target returns the node the event was dispatched on.
func (e *Event) Target() *Node { return e.target }

// CurrentTarget returns the node whose listeners are running.
func (e *Event) CurrentTarget() *Node { return e.currentTarget }

// Phase returns the current dispatch phase.
func (e *Event) Phase() Phase { return e.phase }

// PreventDefault cancels the event if it is cancelable. It has no effect
// inside passive listeners.
func (e *Event) PreventDefault() {
	if e.Cancelable && !e.inPassive {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event after the current node's listeners.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation stops the event before any further listener.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedNow = true
}

// PropagationStopped reports whether propagation was stopped.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Listener handles a dispatched event.
type Listener func(e *Event)

// EventHandler is implemented by values that handle events.
type EventHandler interface {
	HandleEvent(e *Event)
}

// ListenerOptions are the platform listener options.
type ListenerOptions struct {
	Capture bool
	Passive bool
	Once    bool
}

// ListenerID identifies an attached listener.
type ListenerID uint64

type listenerEntry struct {
	id      ListenerID
	typ     string
	fn      Listener
	opts    ListenerOptions
	removed bool
}

var listenerIDCounter atomic.Uint64

// AddEventListener attaches fn for events of the given type.
func (n *Node) AddEventListener(typ string, fn Listener, opts ListenerOptions) ListenerID {
	id := ListenerID(listenerIDCounter.Add(1))
	n.listeners = append(n.listeners, &listenerEntry{id: id, typ: typ, fn: fn, opts: opts})
	return id
}

// RemoveEventListener detaches the listener with the given id.
func (n *Node) RemoveEventListener(id ListenerID) bool {
	for i, l := range n.listeners {
		if l.id == id {
			l.removed = true
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners attached for typ.
func (n *Node) ListenerCount(typ string) int {
	count := 0
	for _, l := range n.listeners {
		if l.typ == typ {
			count++
		}
	}
	return count
}

// DispatchEvent dispatches e with n as target. It returns false if a
// listener prevented the default action.
func (n *Node) DispatchEvent(e *Event) bool {
	e.target = n
	e.defaultPrevented = false
	e.stopped = false
	e.stoppedNow = false

	path := n.eventPath(e.Composed)

	// Capture phase, outermost ancestor first.
	e.phase = PhaseCapturing
	for i := len(path) - 1; i > 0 && !e.stopped; i-- {
		path[i].invoke(e, true, false)
	}

	if !e.stopped {
		e.phase = PhaseAtTarget
		n.invoke(e, true, true)
	}

	if e.Bubbles {
		e.phase = PhaseBubbling
		for i := 1; i < len(path) && !e.stopped; i++ {
			path[i].invoke(e, false, false)
		}
	}

	e.phase = PhaseNone
	e.currentTarget = nil
	return !e.defaultPrevented
}

// eventPath returns n followed by its ancestors. A composed path continues
// from a shadow root to its host.
func (n *Node) eventPath(composed bool) []*Node {
	var path []*Node
	for p := n; p != nil; {
		path = append(path, p)
		if p.parent == nil && p.host != nil {
			if !composed {
				break
			}
			p = p.host
			continue
		}
		p = p.parent
	}
	return path
}

// invoke runs the listeners of n for e. At the target both capture and
// bubble listeners run, capture listeners first.
func (n *Node) invoke(e *Event, capture, atTarget bool) {
	e.currentTarget = n
	snapshot := append([]*listenerEntry(nil), n.listeners...)
	passes := []bool{capture}
	if atTarget {
		passes = []bool{true, false}
	}
	for _, wantCapture := range passes {
		for _, l := range snapshot {
			if l.removed || l.typ != e.Type || l.opts.Capture != wantCapture {
				continue
			}
			if l.opts.Once {
				n.RemoveEventListener(l.id)
			}
			e.inPassive = l.opts.Passive
			l.fn(e)
			e.inPassive = false
			if e.stoppedNow {
				return
			}
		}
	}
}
