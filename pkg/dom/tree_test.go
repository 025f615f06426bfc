package dom

import (
	"strings"
	"testing"
)

type recordingReactions struct {
	events []string
}

func (r *recordingReactions) Connected(el *Node) {
	r.events = append(r.events, "+"+el.Tag())
}

func (r *recordingReactions) Disconnected(el *Node) {
	r.events = append(r.events, "-"+el.Tag())
}

func (r *recordingReactions) String() string {
	return strings.Join(r.events, " ")
}

func childTags(n *Node) string {
	var tags []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Type() {
		case ElementNode:
			tags = append(tags, c.Tag())
		case TextNode:
			tags = append(tags, "#"+c.Data())
		case CommentNode:
			tags = append(tags, "!"+c.Data())
		}
	}
	return strings.Join(tags, ",")
}

func TestAppendAndInsert(t *testing.T) {
	div := NewElement("DIV")
	if div.Tag() != "div" {
		t.Errorf("Tag() = %q, want div", div.Tag())
	}

	a := div.AppendChild(NewElement("a"))
	c := div.AppendChild(NewElement("c"))
	div.InsertBefore(NewElement("b"), c)
	div.InsertBefore(NewElement("first"), a)

	if got := childTags(div); got != "first,a,b,c" {
		t.Errorf("children = %q, want first,a,b,c", got)
	}
	if div.ChildCount() != 4 {
		t.Errorf("ChildCount() = %d, want 4", div.ChildCount())
	}
	if a.Parent() != div {
		t.Error("a.Parent() should be div")
	}
}

func TestInsertMovesNode(t *testing.T) {
	left := NewElement("left")
	right := NewElement("right")
	x := left.AppendChild(NewElement("x"))

	right.AppendChild(x)

	if left.HasChildren() {
		t.Error("left should be empty after move")
	}
	if x.Parent() != right {
		t.Error("x should be a child of right")
	}
}

func TestInsertFragmentMovesChildren(t *testing.T) {
	frag := NewFragment()
	frag.AppendChild(NewText("a"))
	frag.AppendChild(NewElement("b"))

	div := NewElement("div")
	div.AppendChild(NewElement("end"))
	div.InsertBefore(frag, div.FirstChild())

	if got := childTags(div); got != "#a,b,end" {
		t.Errorf("children = %q, want #a,b,end", got)
	}
	if frag.HasChildren() {
		t.Error("fragment should be empty after insertion")
	}
}

func TestInsertBeforeForeignRefPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for foreign reference node")
		}
	}()
	NewElement("div").InsertBefore(NewText("x"), NewText("y"))
}

func TestRemoveChild(t *testing.T) {
	div := NewElement("div")
	a := div.AppendChild(NewElement("a"))
	b := div.AppendChild(NewElement("b"))
	c := div.AppendChild(NewElement("c"))

	div.RemoveChild(b)
	if got := childTags(div); got != "a,c" {
		t.Errorf("children = %q, want a,c", got)
	}
	if a.NextSibling() != c || c.PrevSibling() != a {
		t.Error("siblings not relinked")
	}
	if b.Parent() != nil || b.NextSibling() != nil || b.PrevSibling() != nil {
		t.Error("removed node should be fully detached")
	}

	div.RemoveChildren()
	if div.HasChildren() {
		t.Error("RemoveChildren should empty the node")
	}
}

func TestReplaceWith(t *testing.T) {
	div := NewElement("div")
	div.AppendChild(NewElement("a"))
	old := div.AppendChild(NewElement("b"))
	div.AppendChild(NewElement("c"))

	old.ReplaceWith(NewText("new"))

	if got := childTags(div); got != "a,#new,c" {
		t.Errorf("children = %q, want a,#new,c", got)
	}
}

func TestTextContent(t *testing.T) {
	div := NewElement("div")
	div.AppendChild(NewText("Hello, "))
	b := div.AppendChild(NewElement("b"))
	b.AppendChild(NewText("world"))
	div.AppendChild(NewComment("ignored"))

	if got := div.TextContent(); got != "Hello, world" {
		t.Errorf("TextContent() = %q, want %q", got, "Hello, world")
	}
}

func TestCloneDeep(t *testing.T) {
	src := NewElement("div")
	src.SetAttr("class", "box")
	src.SetProp("value", 1)
	src.AddEventListener("click", func(*Event) {}, ListenerOptions{})
	src.AppendChild(NewText("hi"))

	c := src.Clone(true)
	if c == src || c.ID() == src.ID() {
		t.Fatal("clone should be a new node")
	}
	if v, _ := c.Attr("class"); v != "box" {
		t.Errorf("clone class = %q, want box", v)
	}
	if _, ok := c.Prop("value"); ok {
		t.Error("clone should not copy properties")
	}
	if c.ListenerCount("click") != 0 {
		t.Error("clone should not copy listeners")
	}
	if c.TextContent() != "hi" {
		t.Errorf("clone text = %q, want hi", c.TextContent())
	}

	c.SetAttr("class", "other")
	if v, _ := src.Attr("class"); v != "box" {
		t.Error("clone attributes should not alias source")
	}

	if shallow := src.Clone(false); shallow.HasChildren() {
		t.Error("shallow clone should have no children")
	}
}

func TestConnectReactions(t *testing.T) {
	doc := NewDocument()
	r := &recordingReactions{}
	doc.SetReactions(r)

	outer := NewElement("outer")
	outer.AppendChild(NewElement("inner"))

	doc.AppendChild(outer)
	if got := r.String(); got != "+outer +inner" {
		t.Errorf("connect reactions = %q, want %q", got, "+outer +inner")
	}
	if !outer.FirstChild().IsConnected() {
		t.Error("inner should be connected")
	}

	r.events = nil
	doc.RemoveChild(outer)
	if got := r.String(); got != "-outer -inner" {
		t.Errorf("disconnect reactions = %q, want %q", got, "-outer -inner")
	}
	if outer.IsConnected() {
		t.Error("outer should be disconnected")
	}
}

func TestDetachedTreeFiresNoReactions(t *testing.T) {
	doc := NewDocument()
	r := &recordingReactions{}
	doc.SetReactions(r)

	div := NewElement("div")
	div.AppendChild(NewElement("span"))
	div.RemoveChildren()

	if len(r.events) != 0 {
		t.Errorf("detached mutations fired reactions: %q", r.String())
	}
}

func TestShadowRootConnection(t *testing.T) {
	doc := NewDocument()
	r := &recordingReactions{}
	doc.SetReactions(r)

	host := NewElement("x-host")
	shadow := host.AttachShadow()
	if host.AttachShadow() != shadow {
		t.Error("AttachShadow should return the existing root")
	}
	shadow.AppendChild(NewElement("inside"))

	doc.AppendChild(host)
	if got := r.String(); got != "+x-host +inside" {
		t.Errorf("reactions = %q, want %q", got, "+x-host +inside")
	}
	if !shadow.FirstChild().IsConnected() {
		t.Error("shadow content should be connected through its host")
	}
	if shadow.Host() != host || host.ShadowRoot() != shadow {
		t.Error("shadow root backpointers not set")
	}

	r.events = nil
	shadow.AppendChild(NewElement("late"))
	if got := r.String(); got != "+late" {
		t.Errorf("reactions = %q, want +late", got)
	}
}

func TestReactionSeesOnlySnapshot(t *testing.T) {
	doc := NewDocument()
	var seen []string
	doc.SetReactions(reactionFuncs{
		connected: func(el *Node) {
			seen = append(seen, el.Tag())
			if el.Tag() == "host" {
				el.AppendChild(NewElement("rendered"))
			}
		},
	})

	doc.AppendChild(NewElement("host"))

	// The child appended by the reaction is connected by its own insert.
	if strings.Join(seen, ",") != "host,rendered" {
		t.Errorf("seen = %v, want [host rendered]", seen)
	}
}

type reactionFuncs struct {
	connected    func(*Node)
	disconnected func(*Node)
}

func (f reactionFuncs) Connected(el *Node) {
	if f.connected != nil {
		f.connected(el)
	}
}

func (f reactionFuncs) Disconnected(el *Node) {
	if f.disconnected != nil {
		f.disconnected(el)
	}
}

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		typ  NodeType
		want string
	}{
		{ElementNode, "Element"},
		{TextNode, "Text"},
		{CommentNode, "Comment"},
		{FragmentNode, "Fragment"},
		{DocumentNode, "Document"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
