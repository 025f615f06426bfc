package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/placeholder"
)

// RendererConfig configures the HTML serializer.
type RendererConfig struct {
	// Pretty enables indented output. Whitespace-only text nodes are
	// dropped in pretty mode.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// StripMarkers omits the comment markers the template engine places
	// around content bindings and list items.
	StripMarkers bool

	// IncludeShadow writes attached shadow roots as declarative
	// <template shadowrootmode="open"> children.
	IncludeShadow bool
}

// Renderer serializes dom trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString serializes node to a string.
func (r *Renderer) RenderToString(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node to w. Documents and fragments are written as
// their children; elements include their own tags.
func (r *Renderer) RenderToWriter(w io.Writer, node *dom.Node) error {
	if node == nil {
		return nil
	}
	ew := &errWriter{w: w}
	r.renderNode(ew, node, 0, false)
	return ew.err
}

// InnerHTML serializes the children of node.
func (r *Renderer) InnerHTML(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	ew := &errWriter{w: &buf}
	r.renderChildren(ew, node, 0, false)
	if ew.err != nil {
		return "", ew.err
	}
	return buf.String(), nil
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// renderNode dispatches rendering based on node type.
func (r *Renderer) renderNode(w *errWriter, node *dom.Node, depth int, inline bool) {
	switch node.Type() {
	case dom.DocumentNode, dom.FragmentNode:
		r.renderChildren(w, node, depth, inline)
	case dom.ElementNode:
		r.renderElement(w, node, depth, inline)
	case dom.TextNode:
		r.renderText(w, node, depth, inline)
	case dom.CommentNode:
		r.renderComment(w, node, depth, inline)
	default:
		if w.err == nil {
			w.err = fmt.Errorf("render: unknown node type %s", node.Type())
		}
	}
}

func (r *Renderer) renderChildren(w *errWriter, node *dom.Node, depth int, inline bool) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderNode(w, c, depth, inline)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w *errWriter, node *dom.Node, depth int, inline bool) {
	tag := node.Tag()
	pretty := r.config.Pretty && !inline

	if pretty {
		r.writeIndent(w, depth)
	}
	w.WriteString("<")
	w.WriteString(tag)
	r.renderAttributes(w, node)
	w.WriteString(">")

	if dom.IsVoid(tag) {
		if pretty {
			w.WriteString("\n")
		}
		return
	}

	shadow := node.ShadowRoot()
	if !r.config.IncludeShadow {
		shadow = nil
	}
	block := pretty && !isInlineElement(tag) && (node.HasChildren() || shadow != nil)
	if block {
		w.WriteString("\n")
	}
	childInline := !block

	if shadow != nil {
		if block {
			r.writeIndent(w, depth+1)
		}
		w.WriteString(`<template shadowrootmode="open">`)
		if block {
			w.WriteString("\n")
		}
		r.renderChildren(w, shadow, depth+2, childInline)
		if block {
			r.writeIndent(w, depth+1)
		}
		w.WriteString("</template>")
		if block {
			w.WriteString("\n")
		}
	}

	if rawTextElements[tag] {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Type() == dom.TextNode {
				w.WriteString(c.Data())
			}
		}
		if block {
			w.WriteString("\n")
		}
	} else {
		r.renderChildren(w, node, depth+1, childInline)
	}

	if block {
		r.writeIndent(w, depth)
	}
	w.WriteString("</")
	w.WriteString(tag)
	w.WriteString(">")
	if pretty {
		w.WriteString("\n")
	}
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w *errWriter, node *dom.Node, depth int, inline bool) {
	text := node.Data()
	if !r.config.Pretty || inline {
		w.WriteString(escapeText(text))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	r.writeIndent(w, depth)
	w.WriteString(escapeText(text))
	w.WriteString("\n")
}

func (r *Renderer) renderComment(w *errWriter, node *dom.Node, depth int, inline bool) {
	if r.config.StripMarkers && placeholder.IsMarker(node.Data()) {
		return
	}
	pretty := r.config.Pretty && !inline
	if pretty {
		r.writeIndent(w, depth)
	}
	w.WriteString("<!--")
	w.WriteString(escapeComment(node.Data()))
	w.WriteString("-->")
	if pretty {
		w.WriteString("\n")
	}
}

// renderAttributes writes attributes in document order. Live properties
// are not part of the markup and are never written.
func (r *Renderer) renderAttributes(w *errWriter, node *dom.Node) {
	for _, a := range node.Attrs() {
		w.WriteString(" ")
		w.WriteString(a.Name)
		if isBooleanAttr(a.Name) && (a.Value == "" || a.Value == a.Name) {
			continue
		}
		w.WriteString(`="`)
		w.WriteString(escapeAttr(a.Value))
		w.WriteString(`"`)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

// RenderToString serializes node with the default configuration.
func RenderToString(node *dom.Node) (string, error) {
	return NewRenderer(RendererConfig{}).RenderToString(node)
}
