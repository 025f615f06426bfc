package dom

// AppendChild adds child as the last child of n. If child already has a
// parent it is moved. Appending a fragment moves the fragment's children.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref, or at the end when ref
// is nil. ref must be a child of n.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if ref != nil && ref.parent != n {
		panic("dom: InsertBefore reference node is not a child")
	}
	if child == ref {
		return child
	}
	if child.typ == DocumentNode {
		panic("dom: cannot insert a document")
	}
	if child.typ == FragmentNode {
		moved := child.Children()
		for _, c := range moved {
			child.unlink(c)
			n.link(c, ref)
		}
		n.connectSubtrees(moved)
		return child
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	n.link(child, ref)
	n.connectSubtrees([]*Node{child})
	return child
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) *Node {
	if child.parent != n {
		panic("dom: RemoveChild called for a non-child node")
	}
	doc := n.connectedDocument()
	var elements []*Node
	if doc != nil && doc.reactions != nil {
		elements = collectElements(nil, child)
	}
	n.unlink(child)
	for _, el := range elements {
		doc.reactions.Disconnected(el)
	}
	return child
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for n.lastChild != nil {
		n.RemoveChild(n.lastChild)
	}
}

// ReplaceChildren removes every child of n and appends nodes in order.
func (n *Node) ReplaceChildren(nodes ...*Node) {
	n.RemoveChildren()
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// ReplaceWith replaces n in its parent by other.
func (n *Node) ReplaceWith(other *Node) {
	p := n.parent
	if p == nil {
		return
	}
	next := n.next
	p.RemoveChild(n)
	p.InsertBefore(other, next)
}

// link wires child into n's child list without firing reactions.
func (n *Node) link(child, ref *Node) {
	child.parent = n
	if ref == nil {
		child.prev = n.lastChild
		child.next = nil
		if n.lastChild != nil {
			n.lastChild.next = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}
	child.next = ref
	child.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = child
	} else {
		n.firstChild = child
	}
	ref.prev = child
}

// unlink removes child from n's child list without firing reactions.
func (n *Node) unlink(child *Node) {
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.firstChild = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.lastChild = child.prev
	}
	child.parent = nil
	child.prev = nil
	child.next = nil
}

// connectSubtrees fires Connected reactions for every element in the given
// subtrees. The element list is captured before any reaction runs so a
// reaction that renders new children does not see them reported twice.
func (n *Node) connectSubtrees(roots []*Node) {
	doc := n.connectedDocument()
	if doc == nil || doc.reactions == nil {
		return
	}
	var elements []*Node
	for _, r := range roots {
		elements = collectElements(elements, r)
	}
	for _, el := range elements {
		if el.IsConnected() {
			doc.reactions.Connected(el)
		}
	}
}

// collectElements appends the elements of the subtree rooted at n, in
// shadow-including document order.
func collectElements(out []*Node, n *Node) []*Node {
	if n.typ == ElementNode {
		out = append(out, n)
		if n.shadow != nil {
			out = collectElements(out, n.shadow)
		}
	}
	for c := n.firstChild; c != nil; c = c.next {
		out = collectElements(out, c)
	}
	return out
}
