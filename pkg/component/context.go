package component

import "github.com/wecco-dev/wecco/pkg/dom"

// Context is handed to render callbacks. It is valid for the duration of
// the host, not only the pass it was created for.
type Context struct {
	host *Host
}

// Data returns a copy of the bound data.
func (c *Context) Data() Data { return c.host.Data() }

// Get returns one bound data value.
func (c *Context) Get(key string) any { return c.host.data[key] }

// SetData merges partial into the bound data and requests an update.
func (c *Context) SetData(partial Data) { c.host.SetData(partial) }

// RequestUpdate schedules a render pass.
func (c *Context) RequestUpdate() { c.host.RequestUpdate() }

// Emit dispatches a custom event from the host element.
func (c *Context) Emit(name string, payload any) bool { return c.host.Emit(name, payload) }

// AddEventListener subscribes to events reaching the host element for the
// current render pass.
func (c *Context) AddEventListener(name string, listener dom.Listener) {
	c.host.AddEventListener(name, listener)
}

// Once runs cb on a later turn the first time id is seen by this host.
func (c *Context) Once(id string, cb func()) { c.host.Once(id, cb) }

// Host returns the host being rendered.
func (c *Context) Host() *Host { return c.host }
