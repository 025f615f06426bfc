package dom

// Behavior customizes how an element reacts to attribute and property
// writes. Component hosts install one on their element.
type Behavior interface {
	// AttributeChanged is called after an attribute was set or removed.
	AttributeChanged(el *Node, name, oldValue, newValue string, present bool)

	// PropertyChanged is called after a live property was assigned.
	PropertyChanged(el *Node, name string, value any)
}

// SetBehavior installs b on the element.
func (n *Node) SetBehavior(b Behavior) { n.behavior = b }

// Behavior returns the installed behavior, or nil.
func (n *Node) Behavior() Behavior { return n.behavior }

// Attrs returns a copy of the element's attributes in document order.
func (n *Node) Attrs() []Attribute {
	return append([]Attribute(nil), n.attrs...)
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets an attribute, keeping its position if it already exists.
func (n *Node) SetAttr(name, value string) {
	old, existed := "", false
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			old, existed = n.attrs[i].Value, true
			n.attrs[i].Value = value
			break
		}
	}
	if !existed {
		n.attrs = append(n.attrs, Attribute{Name: name, Value: value})
	}
	if n.behavior != nil {
		n.behavior.AttributeChanged(n, name, old, value, true)
	}
}

// RemoveAttr removes an attribute. It reports whether it was present.
func (n *Node) RemoveAttr(name string) bool {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			old := n.attrs[i].Value
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			if n.behavior != nil {
				n.behavior.AttributeChanged(n, name, old, "", false)
			}
			return true
		}
	}
	return false
}

// Prop returns a live property value.
func (n *Node) Prop(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// SetProp assigns a live property. Properties are not part of the markup.
func (n *Node) SetProp(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	if n.behavior != nil {
		n.behavior.PropertyChanged(n, name, value)
	}
}
