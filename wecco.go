// Package wecco is a declarative, incremental rendering engine for
// element trees.
//
// This is the recommended import for most applications:
//
//	import "github.com/wecco-dev/wecco"
//
// Usage:
//
//	doc := wecco.NewDocument()
//	body := dom.NewElement("body")
//	doc.AppendChild(body)
//
//	greet := func(name string) *wecco.Result {
//	    return wecco.HTML([]string{"<p>Hello, ", "!</p>"}, name)
//	}
//	wecco.Apply(body, greet("Ada"))
//	wecco.Apply(body, greet("Grace")) // updates the text node in place
//
// Components are defined on the default registry and render themselves
// once they connect to a document created by NewDocument:
//
//	wecco.Define("hello-card", func(ctx *wecco.Context) any {
//	    return greet(fmt.Sprint(ctx.Get("name")))
//	}, component.WithObservedAttributes("name"))
package wecco

import (
	"github.com/wecco-dev/wecco/pkg/component"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/render"
	"github.com/wecco-dev/wecco/pkg/template"
)

// =============================================================================
// Templates (re-export from pkg/template)
// =============================================================================

// Template is a compiled, memoized template.
type Template = template.Template

// Result pairs a template with the values of one render.
type Result = template.Result

// Updater is an update value that renders itself into a target.
type Updater = template.Updater

// UpdateFunc adapts a function to Updater.
type UpdateFunc = template.UpdateFunc

// Node is a node of the display tree.
type Node = dom.Node

// Compile returns the template for the given literal fragments. Equal
// fragment sequences share one template.
func Compile(fragments ...string) *Template {
	return template.Compile(fragments...)
}

// HTML compiles fragments and pairs the template with values.
func HTML(fragments []string, values ...any) *Result {
	return template.HTML(fragments, values...)
}

// Apply renders update into target using the default renderer.
func Apply(target *Node, update any) error {
	return template.Apply(target, update)
}

// ApplySelector renders update into the first element below root that
// matches selector.
func ApplySelector(root *Node, selector string, update any) error {
	return template.ApplySelector(root, selector, update)
}

// RenderToString serializes n with default settings.
func RenderToString(n *Node) (string, error) {
	return render.RenderToString(n)
}

// =============================================================================
// Components (re-export from pkg/component)
// =============================================================================

// Data is the bound data of a component host.
type Data = component.Data

// Context is handed to component render callbacks.
type Context = component.Context

// Host is a connected component instance.
type Host = component.Host

var defaultRegistry = component.NewRegistry(component.WithRenderer(template.Default()))

// Registry returns the default component registry. It renders through the
// same renderer as Apply.
func Registry() *component.Registry { return defaultRegistry }

// Define registers a component on the default registry.
func Define(name string, render component.RenderFunc, opts ...component.DefineOption) (*component.Definition, error) {
	return defaultRegistry.Define(name, render, opts...)
}

// NewDocument creates a document whose elements are upgraded by the
// default registry.
func NewDocument() *Node {
	doc := dom.NewDocument()
	defaultRegistry.Attach(doc)
	return doc
}

// Flush runs every pending render pass and once-callback of the default
// registry and returns the number of tasks run.
func Flush() int {
	return defaultRegistry.Scheduler().Drain()
}
