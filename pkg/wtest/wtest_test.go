package wtest

import (
	"testing"

	"github.com/wecco-dev/wecco/pkg/component"
	"github.com/wecco-dev/wecco/pkg/template"
)

func counter(ctx *component.Context) any {
	return template.HTML([]string{`<button class="primary">`, `</button>`}, ctx.Get("count"))
}

func TestHarness(t *testing.T) {
	h := New(t).Define("x-counter", counter, component.WithObservedAttributes("count"))
	host := h.Mount("x-counter", "count", "1")

	ExpectText(t, host.Node(), "1")
	ExpectElement(t, host.Node(), "button.primary")
	ExpectContains(t, host.Node(), `<button class="primary">1</button>`)

	host.SetData(component.Data{"count": 2})
	if n := h.Flush(); n != 1 {
		t.Errorf("Flush() = %d, want 1", n)
	}
	ExpectText(t, host.Node(), "2")
	ExpectAttribute(t, host.Node(), "count", "2")
	ExpectNotContains(t, host.Node(), "<!--")

	if got, want := h.HTML(), `<x-counter count="2"><button class="primary">2</button></x-counter>`; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestShadowSearch(t *testing.T) {
	h := New(t).Define("x-shadowed", counter, component.WithShadow())
	host := h.Mount("x-shadowed")
	ExpectElement(t, host.Node(), "button")
	ExpectText(t, host.Node(), "")
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
