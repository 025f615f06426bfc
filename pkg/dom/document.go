package dom

// Reactions receive connect/disconnect notifications for elements of a
// document, including elements inside attached shadow roots.
type Reactions interface {
	Connected(el *Node)
	Disconnected(el *Node)
}

// NewDocument creates an empty document.
func NewDocument() *Node {
	return newNode(DocumentNode)
}

// SetReactions installs the reaction handler of a document.
func (n *Node) SetReactions(r Reactions) {
	n.reactions = r
}

// IsConnected reports whether n is attached, possibly through shadow roots,
// to a document.
func (n *Node) IsConnected() bool {
	return n.connectedDocument() != nil
}

// OwnerDocument returns the document n is connected to, or nil.
func (n *Node) OwnerDocument() *Node {
	return n.connectedDocument()
}

func (n *Node) connectedDocument() *Node {
	for p := n; p != nil; {
		if p.typ == DocumentNode {
			return p
		}
		if p.parent == nil && p.host != nil {
			p = p.host
			continue
		}
		p = p.parent
	}
	return nil
}

// AttachShadow attaches an empty shadow root to the element n and returns
// it. Calling it again returns the existing root.
func (n *Node) AttachShadow() *Node {
	if n.typ != ElementNode {
		panic("dom: AttachShadow called on a non-element")
	}
	if n.shadow == nil {
		n.shadow = NewFragment()
		n.shadow.host = n
	}
	return n.shadow
}

// ShadowRoot returns the attached shadow root, or nil.
func (n *Node) ShadowRoot() *Node { return n.shadow }

// Host returns the element a shadow root is attached to, or nil.
func (n *Node) Host() *Node { return n.host }
