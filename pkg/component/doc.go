// Package component turns registered element names into self-rendering
// hosts.
//
// A Registry holds component definitions. Once attached to a document it
// upgrades every connecting element whose tag is registered: the element
// gets a Host, its observed attributes and properties seed the bound data
// and the first render pass runs immediately.
//
// Later changes go through SetData or RequestUpdate. Both only mark the
// host pending and schedule one render pass on the registry's scheduler,
// so any number of requests made before the scheduler runs collapse into
// a single pass:
//
//	reg := component.NewRegistry()
//	reg.Define("todo-count", func(ctx *component.Context) any {
//		return template.HTML([]string{"<b>", "</b>"}, ctx.Get("count"))
//	}, component.WithObservedAttributes("count"))
//
//	doc := dom.NewDocument()
//	reg.Attach(doc)
//	el, _ := reg.Create("todo-count")
//	doc.AppendChild(el)
//
//	h, _ := component.HostOf(el)
//	h.SetData(component.Data{"count": 2})
//	h.SetData(component.Data{"count": 3})
//	reg.Scheduler().Drain() // one render pass
//
// Every host element is a boundary: templates rendered by an enclosing
// component never bind into a nested host's content.
package component
