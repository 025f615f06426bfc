// Package wtest provides testing helpers for wecco components.
//
// The wtest package reduces boilerplate when testing components by
// providing a harness with its own registry and document, and render
// assertions on the resulting tree.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := wtest.New(t).Define("x-counter", Counter, component.WithObservedAttributes("count"))
//	    host := h.Mount("x-counter", "count", "1")
//	    wtest.ExpectText(t, host.Node(), "1")
//
//	    host.SetData(component.Data{"count": 2})
//	    h.Flush()
//	    wtest.ExpectText(t, host.Node(), "2")
//	}
//
// # Render Assertions
//
// Assert on the serialized output, with marker comments stripped:
//
//	wtest.ExpectContains(t, host.Node(), "<b>2</b>")
//	wtest.ExpectNotContains(t, host.Node(), "Error")
//	wtest.ExpectElement(t, host.Node(), "button.primary")
//	wtest.ExpectAttribute(t, host.Node(), "count", "2")
package wtest
