package template

import (
	"errors"
	"fmt"

	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/placeholder"
)

// contentKind is what currently occupies a content region.
type contentKind uint8

const (
	contentEmpty contentKind = iota
	contentText
	contentNode
	contentList
	contentTemplate
	contentRendered
)

// contentBinding owns the nodes between its start and end comments.
type contentBinding struct {
	slot       int
	start, end *dom.Node

	kind   contentKind
	text   *dom.Node
	node   *dom.Node
	nested *Instance
	items  []*listItem
}

// listItem is one positional entry of a rendered list. Its region is
// bracketed by its own item markers.
type listItem struct {
	content *contentBinding
}

func (b *contentBinding) check(root *dom.Node) error {
	if !root.Contains(b.start) || b.start.Parent() != b.end.Parent() {
		return fmt.Errorf("%w: markers of slot %d were moved", ErrStructure, b.slot)
	}
	for n := b.start.NextSibling(); n != nil; n = n.NextSibling() {
		if n == b.end {
			return nil
		}
	}
	return fmt.Errorf("%w: end marker of slot %d is missing", ErrStructure, b.slot)
}

func (b *contentBinding) apply(r *Renderer, values *Result) error {
	return b.set(r, values.value(b.slot))
}

// set renders v into the region.
func (b *contentBinding) set(r *Renderer, v any) error {
	if isNilPointer(v) {
		v = nil
	}
	switch x := v.(type) {
	case nil:
		if b.kind != contentEmpty {
			b.clear()
			b.kind = contentEmpty
		}
		return nil

	case *Result:
		return b.setTemplate(r, x)

	case *Template:
		return b.setTemplate(r, x.With())

	case *dom.Node:
		if x.Type() == dom.FragmentNode {
			b.clear()
			b.insert(x)
			b.kind = contentRendered
			return nil
		}
		if b.kind == contentNode && b.node == x && x.Parent() == b.start.Parent() {
			return nil
		}
		b.clear()
		b.insert(x)
		b.kind, b.node = contentNode, x
		return nil

	case Updater, func(*dom.Node), func(*dom.Node) error:
		side := dom.NewFragment()
		if err := r.apply(side, v, false); err != nil {
			return err
		}
		b.clear()
		b.insert(side)
		b.kind = contentRendered
		return nil
	}

	if isList(v) {
		return b.setList(r, listItems(v))
	}

	if s, ok := textValue(v); ok {
		b.setText(s)
		return nil
	}

	// Unsupported values stay local to their region.
	r.logger.Warn("unsupported content value",
		"code", "W007",
		"slot", b.slot,
		"type", fmt.Sprintf("%T", v))
	b.setText(fmt.Sprint(v))
	return nil
}

// setText renders s as a single text node, reusing the current one.
func (b *contentBinding) setText(s string) {
	if b.kind == contentText && b.text.Parent() == b.start.Parent() {
		if b.text.Data() != s {
			b.text.SetData(s)
		}
		return
	}
	b.clear()
	b.text = dom.NewText(s)
	b.insert(b.text)
	b.kind = contentText
}

// setTemplate renders a template result, reusing the nested instance when
// the template identity is unchanged.
func (b *contentBinding) setTemplate(r *Renderer, res *Result) error {
	if b.kind == contentTemplate && b.nested.tmpl == res.Template {
		err := b.nested.check(b.start.Parent())
		if err == nil {
			err = b.nested.update(r, res)
		}
		if err == nil || !errors.Is(err, ErrStructure) {
			return err
		}
		r.logger.Warn("rebuilding nested template", "code", "W001", "error", err)
	}

	frag, inst, err := r.instantiate(res)
	if err != nil {
		return err
	}
	b.clear()
	b.insert(frag)
	b.kind, b.nested = contentTemplate, inst
	return nil
}

// setList reconciles the region against items by position.
func (b *contentBinding) setList(r *Renderer, values []any) error {
	if b.kind != contentList {
		b.clear()
		b.kind = contentList
		b.items = nil
	}

	parent := b.start.Parent()
	for _, it := range b.items {
		if it.content.start.Parent() != parent || it.content.end.Parent() != parent {
			return fmt.Errorf("%w: list item of slot %d was moved", ErrStructure, b.slot)
		}
	}

	// Shrink: drop trailing items with their nodes.
	for len(b.items) > len(values) {
		last := b.items[len(b.items)-1]
		removeRange(last.content.start, last.content.end)
		b.items = b.items[:len(b.items)-1]
	}

	// Reapply the surviving positions.
	for i := range b.items {
		if err := b.items[i].content.set(r, values[i]); err != nil {
			return err
		}
	}

	// Grow: append new items before the end marker.
	for i := len(b.items); i < len(values); i++ {
		start := dom.NewComment(placeholder.ItemStartMarker(b.slot, i))
		end := dom.NewComment(placeholder.ItemEndMarker(b.slot, i))
		parent.InsertBefore(start, b.end)
		parent.InsertBefore(end, b.end)
		item := &listItem{content: &contentBinding{slot: b.slot, start: start, end: end}}
		b.items = append(b.items, item)
		if err := item.content.set(r, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// clear removes every node between the markers and forgets what was there.
func (b *contentBinding) clear() {
	parent := b.start.Parent()
	for n := b.start.NextSibling(); n != nil && n != b.end; {
		next := n.NextSibling()
		parent.RemoveChild(n)
		n = next
	}
	b.text, b.node, b.nested, b.items = nil, nil, nil, nil
}

// insert places n (or a fragment's children) before the end marker.
func (b *contentBinding) insert(n *dom.Node) {
	b.start.Parent().InsertBefore(n, b.end)
}

// removeRange removes start, end and every sibling between them.
func removeRange(start, end *dom.Node) {
	parent := start.Parent()
	for n := start; n != nil; {
		next := n.NextSibling()
		parent.RemoveChild(n)
		if n == end {
			return
		}
		n = next
	}
}
