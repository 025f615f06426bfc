package wtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/wecco-dev/wecco/pkg/component"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/render"
)

// Harness owns a registry and an attached document for one test.
type Harness struct {
	t        testing.TB
	Registry *component.Registry
	Document *dom.Node
	Body     *dom.Node
}

// New creates a harness. Registry output is discarded unless a logger is
// passed in opts.
//
// Example:
//
//	h := wtest.New(t)
func New(t testing.TB, opts ...component.Option) *Harness {
	t.Helper()
	opts = append([]component.Option{component.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	reg := component.NewRegistry(opts...)
	doc := dom.NewDocument()
	body := dom.NewElement("body")
	doc.AppendChild(body)
	reg.Attach(doc)
	return &Harness{t: t, Registry: reg, Document: doc, Body: body}
}

// Define registers a component and fails the test on error.
func (h *Harness) Define(name string, render component.RenderFunc, opts ...component.DefineOption) *Harness {
	h.t.Helper()
	if _, err := h.Registry.Define(name, render, opts...); err != nil {
		h.t.Fatalf("define %q: %v", name, err)
	}
	return h
}

// Mount creates a registered element with the given attribute name/value
// pairs, appends it to the body and returns its host.
//
// Example:
//
//	host := h.Mount("todo-item", "label", "Buy milk", "done", "")
func (h *Harness) Mount(name string, attrs ...string) *component.Host {
	h.t.Helper()
	if len(attrs)%2 != 0 {
		h.t.Fatalf("mount %q: odd number of attribute arguments", name)
	}
	el, err := h.Registry.Create(name)
	if err != nil {
		h.t.Fatalf("mount %q: %v", name, err)
	}
	for i := 0; i < len(attrs); i += 2 {
		el.SetAttr(attrs[i], attrs[i+1])
	}
	h.Body.AppendChild(el)
	host, ok := component.HostOf(el)
	if !ok {
		h.t.Fatalf("mount %q: element was not upgraded", name)
	}
	return host
}

// Flush runs pending render passes and once-callbacks.
func (h *Harness) Flush() int {
	return h.Registry.Scheduler().Drain()
}

// HTML returns the serialized body content.
func (h *Harness) HTML() string {
	return innerHTML(h.Body)
}

// RenderToString serializes node with marker comments stripped and shadow
// roots included.
//
// Example:
//
//	html := wtest.RenderToString(host.Node())
func RenderToString(node *dom.Node) string {
	r := render.NewRenderer(render.RendererConfig{StripMarkers: true, IncludeShadow: true})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

func innerHTML(node *dom.Node) string {
	r := render.NewRenderer(render.RendererConfig{StripMarkers: true, IncludeShadow: true})
	html, err := r.InnerHTML(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *dom.Node, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *dom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that an element matching selector exists below
// node. Shadow roots are searched too.
//
// Example:
//
//	wtest.ExpectElement(t, host.Node(), "button[disabled]")
func ExpectElement(t testing.TB, node *dom.Node, selector string) {
	t.Helper()
	if findElement(node, selector) == nil {
		t.Errorf("expected an element matching %q, got:\n%s", selector, truncate(RenderToString(node), 500))
	}
}

// ExpectAttribute asserts that node carries an attribute value.
func ExpectAttribute(t testing.TB, node *dom.Node, attr, value string) {
	t.Helper()
	got, ok := node.Attr(attr)
	if !ok || got != value {
		t.Errorf("expected attribute %s=%q, got %q (present=%v)", attr, value, got, ok)
	}
}

// ExpectText asserts the text content of node, including its shadow root.
func ExpectText(t testing.TB, node *dom.Node, want string) {
	t.Helper()
	got := node.TextContent()
	if sr := node.ShadowRoot(); sr != nil {
		got = sr.TextContent() + got
	}
	if got != want {
		t.Errorf("expected text %q, got %q", want, got)
	}
}

func findElement(node *dom.Node, selector string) *dom.Node {
	if el, err := node.QuerySelector(selector); err == nil && el != nil {
		return el
	}
	roots := []*dom.Node{node}
	for len(roots) > 0 {
		n := roots[0]
		roots = roots[1:]
		if sr := n.ShadowRoot(); sr != nil {
			if el, err := sr.QuerySelector(selector); err == nil && el != nil {
				return el
			}
			roots = append(roots, sr)
		}
		roots = append(roots, n.Children()...)
	}
	return nil
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
