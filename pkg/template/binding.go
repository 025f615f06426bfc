package template

import (
	"fmt"
	"strings"

	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/placeholder"
)

// binding applies successive values of its slots to one node.
type binding interface {
	// check verifies that the binding's nodes are still inside root.
	check(root *dom.Node) error
	// apply writes the binding's slot values, skipping unchanged ones.
	apply(r *Renderer, values *Result) error
}

// newBinding creates the binding for d on the node found at d.Index.
func newBinding(d *Descriptor, n *dom.Node) (binding, error) {
	if d.Role == RoleContent {
		m, ok := placeholder.ParseMarker(n.Data())
		if n.Type() != dom.CommentNode || !ok || m.End || m.Index != d.Slots[0] {
			return nil, fmt.Errorf("%w: slot %d expects a start marker, found %s", ErrStructure, d.Slots[0], n.Type())
		}
		end := n.NextSibling()
		if end == nil || end.Type() != dom.CommentNode || end.Data() != placeholder.EndMarker(m.Index) {
			return nil, fmt.Errorf("%w: slot %d has no end marker", ErrStructure, m.Index)
		}
		return &contentBinding{slot: m.Index, start: n, end: end}, nil
	}

	if !n.IsElement() {
		return nil, fmt.Errorf("%w: %s binding %q expects an element, found %s", ErrStructure, d.Role, d.Name, n.Type())
	}
	switch d.Role {
	case RoleAttribute:
		return &attributeBinding{el: n, desc: d}, nil
	case RoleBoolean:
		return &booleanBinding{el: n, name: d.Name, slot: d.Slots[0]}, nil
	case RoleEvent:
		return &eventBinding{el: n, typ: d.Name, slot: d.Slots[0], directives: d.Directives}, nil
	case RoleProperty:
		return &propertyBinding{el: n, name: d.Name, slot: d.Slots[0]}, nil
	}
	return nil, fmt.Errorf("%w: unknown role %s", ErrStructure, d.Role)
}

// checkElement verifies that el is still an element inside root.
func checkElement(root, el *dom.Node) error {
	if !root.Contains(el) {
		return fmt.Errorf("%w: bound <%s> was removed", ErrStructure, el.Tag())
	}
	return nil
}

// attributeBinding writes a possibly interpolated attribute value.
type attributeBinding struct {
	el      *dom.Node
	desc    *Descriptor
	applied bool
	set     bool
	last    string
}

func (b *attributeBinding) check(root *dom.Node) error { return checkElement(root, b.el) }

func (b *attributeBinding) apply(_ *Renderer, values *Result) error {
	var sb strings.Builder
	absent := false
	for _, part := range b.desc.Values {
		if !part.IsSlot {
			sb.WriteString(part.Text)
			continue
		}
		v := values.value(part.Slot)
		if v == nil {
			absent = true
			continue
		}
		sb.WriteString(attrText(v))
	}

	if absent && b.desc.Directives.Has(OmitEmpty) {
		if !b.applied || b.set {
			b.el.RemoveAttr(b.desc.Name)
		}
		b.applied, b.set, b.last = true, false, ""
		return nil
	}

	s := sb.String()
	if b.applied && b.set && b.last == s {
		return nil
	}
	b.el.SetAttr(b.desc.Name, s)
	b.applied, b.set, b.last = true, true, s
	return nil
}

// booleanBinding toggles an attribute by the truthiness of its value.
type booleanBinding struct {
	el      *dom.Node
	name    string
	slot    int
	applied bool
	last    any
}

func (b *booleanBinding) check(root *dom.Node) error { return checkElement(root, b.el) }

func (b *booleanBinding) apply(_ *Renderer, values *Result) error {
	v := values.value(b.slot)
	if b.applied && sameValue(b.last, v) {
		return nil
	}
	if truthy(v) {
		b.el.SetAttr(b.name, b.name)
	} else {
		b.el.RemoveAttr(b.name)
	}
	b.applied, b.last = true, v
	return nil
}

// propertyBinding assigns a live property.
type propertyBinding struct {
	el      *dom.Node
	name    string
	slot    int
	applied bool
	last    any
}

func (b *propertyBinding) check(root *dom.Node) error { return checkElement(root, b.el) }

func (b *propertyBinding) apply(_ *Renderer, values *Result) error {
	v := values.value(b.slot)
	if b.applied && sameValue(b.last, v) {
		return nil
	}
	b.el.SetProp(b.name, v)
	b.applied, b.last = true, v
	return nil
}

// eventBinding attaches a listener through the tracked-listener helper so
// the previous listener of the same type is removed first.
type eventBinding struct {
	el         *dom.Node
	typ        string
	slot       int
	directives Directives
	applied    bool
	last       any
}

func (b *eventBinding) check(root *dom.Node) error { return checkElement(root, b.el) }

func (b *eventBinding) apply(r *Renderer, values *Result) error {
	v := values.value(b.slot)
	if b.applied && sameValue(b.last, v) {
		return nil
	}
	b.applied, b.last = true, v

	fn, ok := listenerOf(v)
	if !ok {
		r.logger.Warn("unsupported event handler",
			"code", "W007",
			"event", b.typ,
			"type", fmt.Sprintf("%T", v))
		b.el.RemoveTrackedListeners(b.typ)
		return nil
	}
	if fn == nil {
		b.el.RemoveTrackedListeners(b.typ)
		return nil
	}

	d := b.directives
	if d&(PreventDefault|StopPropagation|StopImmediatePropagation) != 0 {
		inner := fn
		fn = func(e *dom.Event) {
			if d.Has(PreventDefault) {
				e.PreventDefault()
			}
			if d.Has(StopImmediatePropagation) {
				e.StopImmediatePropagation()
			} else if d.Has(StopPropagation) {
				e.StopPropagation()
			}
			inner(e)
		}
	}
	b.el.ReplaceListener(b.typ, fn, dom.ListenerOptions{
		Capture: d.Has(Capture),
		Passive: d.Has(Passive),
		Once:    d.Has(Once),
	})
	return nil
}

// listenerOf converts an event binding value to a listener. A nil value
// yields a nil listener.
func listenerOf(v any) (dom.Listener, bool) {
	switch h := v.(type) {
	case nil:
		return nil, true
	case dom.Listener:
		return h, true
	case func(*dom.Event):
		return h, true
	case func():
		return func(*dom.Event) { h() }, true
	case dom.EventHandler:
		return h.HandleEvent, true
	}
	return nil, false
}
