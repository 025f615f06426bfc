package dom

// Tracked listeners are listeners attached through ReplaceListener. They are
// remembered per event type so they can be bulk-removed before a new
// listener of the same type is attached, without touching listeners that
// other code attached directly.

// ReplaceListener removes every tracked listener of typ on n and attaches fn
// as the new tracked listener.
func (n *Node) ReplaceListener(typ string, fn Listener, opts ListenerOptions) ListenerID {
	n.RemoveTrackedListeners(typ)
	id := n.AddEventListener(typ, fn, opts)
	if n.tracked == nil {
		n.tracked = make(map[string][]ListenerID)
	}
	n.tracked[typ] = append(n.tracked[typ], id)
	return id
}

// RemoveTrackedListeners removes the tracked listeners of typ and returns
// how many were still attached.
func (n *Node) RemoveTrackedListeners(typ string) int {
	ids := n.tracked[typ]
	if len(ids) == 0 {
		return 0
	}
	removed := 0
	for _, id := range ids {
		if n.RemoveEventListener(id) {
			removed++
		}
	}
	delete(n.tracked, typ)
	return removed
}
