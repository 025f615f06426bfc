package dom

import (
	"strings"
	"sync/atomic"
)

// NodeType is the node kind discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota + 1 // <div>, <todo-item>, ...
	TextNode                         // Plain text
	CommentNode                      // <!-- ... -->
	FragmentNode                     // Detached child list or shadow root
	DocumentNode                     // Root of a connected tree
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case FragmentNode:
		return "Fragment"
	case DocumentNode:
		return "Document"
	default:
		return "Unknown"
	}
}

// Attribute is a single markup attribute.
type Attribute struct {
	Name  string
	Value string
}

// Node is a node of the display tree.
type Node struct {
	id   uint64
	typ  NodeType
	tag  string
	data string

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node

	attrs     []Attribute
	props     map[string]any
	listeners []*listenerEntry
	tracked   map[string][]ListenerID

	shadow    *Node // shadow root attached to this element
	host      *Node // element this shadow root is attached to
	reactions Reactions
	behavior  Behavior
	boundary  bool
}

var nodeIDCounter atomic.Uint64

func newNode(typ NodeType) *Node {
	return &Node{id: nodeIDCounter.Add(1), typ: typ}
}

// NewElement creates a detached element. Tag names are lowercased.
func NewElement(tag string) *Node {
	n := newNode(ElementNode)
	n.tag = strings.ToLower(tag)
	return n
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	n := newNode(TextNode)
	n.data = text
	return n
}

// NewComment creates a detached comment node.
func NewComment(text string) *Node {
	n := newNode(CommentNode)
	n.data = text
	return n
}

// NewFragment creates an empty fragment.
func NewFragment() *Node {
	return newNode(FragmentNode)
}

// ID returns a process-unique node identifier.
func (n *Node) ID() uint64 { return n.id }

// Type returns the node kind.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag name ("" for non-elements).
func (n *Node) Tag() string { return n.tag }

// Data returns the content of a text or comment node.
func (n *Node) Data() string { return n.data }

// SetData replaces the content of a text or comment node.
func (n *Node) SetData(s string) {
	n.data = s
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool { return n != nil && n.typ == ElementNode }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prev }

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool { return n.firstChild != nil }

// Children returns a snapshot of the child list.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.next {
		count++
	}
	return count
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.data
	}
	var b strings.Builder
	var collect func(*Node)
	collect = func(p *Node) {
		for c := p.firstChild; c != nil; c = c.next {
			if c.typ == TextNode {
				b.WriteString(c.data)
			} else if c.typ == ElementNode || c.typ == FragmentNode {
				collect(c)
			}
		}
	}
	collect(n)
	return b.String()
}

// Contains reports whether other is n or a descendant of n (not crossing
// shadow roots).
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// SetBoundary marks n as a render boundary. Tree walks performed by the
// template engine visit a boundary element but never descend into it.
func (n *Node) SetBoundary(b bool) { n.boundary = b }

// IsBoundary reports whether n is a render boundary.
func (n *Node) IsBoundary() bool { return n.boundary }

// Clone copies n. Attributes are copied; properties, listeners, shadow roots
// and behaviors are not. A deep clone copies all descendants.
func (n *Node) Clone(deep bool) *Node {
	c := newNode(n.typ)
	c.tag = n.tag
	c.data = n.data
	if len(n.attrs) > 0 {
		c.attrs = append([]Attribute(nil), n.attrs...)
	}
	if deep {
		for child := n.firstChild; child != nil; child = child.next {
			c.link(child.Clone(true), nil)
		}
	}
	return c
}
