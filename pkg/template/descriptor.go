package template

import (
	"strings"

	werrors "github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/placeholder"
)

// Role is the way a binding writes its value into the tree.
type Role uint8

const (
	RoleContent   Role = iota // nodes between two comment markers
	RoleAttribute             // name="...${v}..."
	RoleBoolean               // ?name="${v}"
	RoleEvent                 // @name="${v}"
	RoleProperty              // .name="${v}"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	switch r {
	case RoleContent:
		return "content"
	case RoleAttribute:
		return "attribute"
	case RoleBoolean:
		return "boolean"
	case RoleEvent:
		return "event"
	case RoleProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Directives is a set of binding modifiers written as +suffixes on the
// attribute name.
type Directives uint16

const (
	OmitEmpty Directives = 1 << iota
	Capture
	Passive
	Once
	StopPropagation
	StopImmediatePropagation
	PreventDefault
)

var directiveNames = []struct {
	flag Directives
	name string
}{
	{OmitEmpty, "omitEmpty"},
	{Capture, "capture"},
	{Passive, "passive"},
	{Once, "once"},
	{StopPropagation, "stopPropagation"},
	{StopImmediatePropagation, "stopImmediatePropagation"},
	{PreventDefault, "preventDefault"},
}

// eventDirectives are the directives an event binding accepts.
const eventDirectives = Capture | Passive | Once | StopPropagation | StopImmediatePropagation | PreventDefault

// Has reports whether all flags in f are set.
func (d Directives) Has(f Directives) bool { return d&f == f }

// String returns the directive names joined with '+'.
func (d Directives) String() string {
	var names []string
	for _, dn := range directiveNames {
		if d.Has(dn.flag) {
			names = append(names, dn.name)
		}
	}
	return strings.Join(names, "+")
}

// parseDirective looks a directive up by name, ignoring case.
func parseDirective(name string) (Directives, bool) {
	for _, dn := range directiveNames {
		if strings.EqualFold(dn.name, name) {
			return dn.flag, true
		}
	}
	return 0, false
}

// ValuePart is one piece of an attribute value: literal text or a slot.
type ValuePart struct {
	Text   string
	Slot   int
	IsSlot bool
}

// Descriptor records where and how one binding attaches to the compiled
// fragment. Descriptors are immutable and shared by every instance of a
// template.
type Descriptor struct {
	// Index is the pre-order traversal index of the bound node.
	Index int
	Role  Role
	// Name is the attribute, event or property name, without sigil or
	// directives. Empty for content bindings.
	Name       string
	Slots      []int
	Values     []ValuePart
	Directives Directives
}

// walk visits every node below root in pre-order, passing its traversal
// index. Render boundaries are visited but not entered.
func walk(root *dom.Node, visit func(index int, n *dom.Node)) {
	index := 0
	var descend func(p *dom.Node)
	descend = func(p *dom.Node) {
		for c := p.FirstChild(); c != nil; {
			next := c.NextSibling()
			visit(index, c)
			index++
			if c.IsElement() && !c.IsBoundary() {
				descend(c)
			}
			c = next
		}
	}
	descend(root)
}

// extract walks a freshly parsed fragment once and returns its descriptors
// in traversal order. Well-formed sigil attributes and attributes carrying
// directives are removed from the fragment; malformed ones are left in
// place, inert.
func extract(frag *dom.Node, report func(*werrors.WeccoError)) []Descriptor {
	var out []Descriptor
	walk(frag, func(index int, n *dom.Node) {
		switch n.Type() {
		case dom.CommentNode:
			if m, ok := placeholder.ParseMarker(n.Data()); ok && !m.End {
				out = append(out, Descriptor{Index: index, Role: RoleContent, Slots: []int{m.Index}})
			}
		case dom.ElementNode:
			for _, a := range n.Attrs() {
				if d, ok := extractAttr(index, n, a, report); ok {
					out = append(out, d)
				}
			}
		}
	})
	return out
}

// extractAttr classifies one attribute by its sigil.
func extractAttr(index int, el *dom.Node, a dom.Attribute, report func(*werrors.WeccoError)) (Descriptor, bool) {
	segs := placeholder.Split(a.Value)
	slots := 0
	for _, s := range segs {
		if s.Placeholder {
			slots++
		}
	}

	role := RoleAttribute
	rest := a.Name
	switch {
	case strings.HasPrefix(a.Name, "?"):
		role, rest = RoleBoolean, a.Name[1:]
	case strings.HasPrefix(a.Name, "@"):
		role, rest = RoleEvent, a.Name[1:]
	case strings.HasPrefix(a.Name, "."):
		role, rest = RoleProperty, a.Name[1:]
	}

	if role == RoleAttribute && slots == 0 {
		return Descriptor{}, false
	}

	name, suffixes := splitDirectives(rest)
	d := Descriptor{Index: index, Role: role, Name: name}

	if role != RoleAttribute {
		if slots != 1 || len(segs) != 1 || name == "" {
			report(werrors.New("W002").WithDetailf("%s on <%s> has %d placeholders", a.Name, el.Tag(), slots))
			return Descriptor{}, false
		}
		d.Slots = []int{segs[0].Index}
	} else {
		for _, s := range segs {
			if s.Placeholder {
				d.Slots = append(d.Slots, s.Index)
				d.Values = append(d.Values, ValuePart{Slot: s.Index, IsSlot: true})
			} else {
				d.Values = append(d.Values, ValuePart{Text: s.Text})
			}
		}
	}

	allowed := Directives(0)
	switch role {
	case RoleAttribute:
		allowed = OmitEmpty
	case RoleEvent:
		allowed = eventDirectives
	}
	for _, s := range suffixes {
		flag, ok := parseDirective(s)
		if !ok || allowed&flag == 0 {
			report(werrors.New("W003").WithDetailf("%q in %s on <%s>", s, a.Name, el.Tag()))
			continue
		}
		d.Directives |= flag
	}

	// Plain attributes without directives stay in place so the bound value
	// lands at the authored position.
	if role != RoleAttribute || len(suffixes) > 0 {
		el.RemoveAttr(a.Name)
	}
	return d, true
}

// splitDirectives splits "click+once+capture" into the name and its
// directive suffixes. Commas are accepted as separators too.
func splitDirectives(s string) (string, []string) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == ',' })
	if len(parts) == 0 {
		return "", nil
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, ",") {
		return "", parts
	}
	return parts[0], parts[1:]
}
