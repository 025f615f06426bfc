package component

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	werrors "github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/dom"
)

// Lifecycle event types emitted by hosts. All of them bubble, are
// cancelable and cross shadow roots.
const (
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
	EventUpdate     = "update"
)

type hostState uint8

const (
	stateUninitialized hostState = iota
	stateIdle
	statePending
	stateDetached
)

func (s hostState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateIdle:
		return "idle"
	case statePending:
		return "pending"
	case stateDetached:
		return "detached"
	}
	return "unknown"
}

// Host is the runtime instance of a component bound to one element.
//
// A host is owned by the goroutine that owns its tree. Update requests
// made while a render pass is pending are coalesced into that pass.
type Host struct {
	reg    *Registry
	def    *Definition
	node   *dom.Node
	logger *slog.Logger

	data  Data
	state hostState

	// reflecting suppresses attribute reactions for writes made by the
	// host itself.
	reflecting bool

	fired       map[string]bool
	generation  uint64
	subs        map[string][]dom.Listener
	dispatchers map[string]dom.ListenerID

	renders int
}

func newHost(reg *Registry, def *Definition, node *dom.Node) *Host {
	return &Host{
		reg:    reg,
		def:    def,
		node:   node,
		logger: reg.logger.With("component", def.Name),
		data:   make(Data),
	}
}

// Node returns the host element.
func (h *Host) Node() *dom.Node { return h.node }

// Definition returns the component definition.
func (h *Host) Definition() *Definition { return h.def }

// Connected reports whether the host is attached and rendering.
func (h *Host) Connected() bool {
	return h.state == stateIdle || h.state == statePending
}

// Pending reports whether a render pass is scheduled.
func (h *Host) Pending() bool { return h.state == statePending }

// Renders returns the number of completed render passes.
func (h *Host) Renders() int { return h.renders }

// Data returns a copy of the bound data.
func (h *Host) Data() Data { return maps.Clone(h.data) }

// SetData merges partial into the bound data and requests an update.
func (h *Host) SetData(partial Data) {
	maps.Copy(h.data, partial)
	h.RequestUpdate()
}

// RequestUpdate schedules a render pass. Requests made while one is
// already pending are absorbed by it. Detached or not yet connected hosts
// ignore the request; their data is picked up by the next connect.
func (h *Host) RequestUpdate() {
	switch h.state {
	case statePending:
		h.reg.metrics.RecordUpdateRequest(h.def.Name, true)
	case stateIdle:
		h.reg.metrics.RecordUpdateRequest(h.def.Name, false)
		h.state = statePending
		h.reg.scheduler.Schedule(h.flush)
	}
}

// Emit dispatches a bubbling, cancelable, composed event on the host
// element with payload as its detail. It reports whether no listener
// prevented the default.
func (h *Host) Emit(name string, payload any) bool {
	return h.node.DispatchEvent(dom.NewEvent(name, dom.EventInit{
		Bubbles:    true,
		Cancelable: true,
		Composed:   true,
		Detail:     payload,
	}))
}

// AddEventListener subscribes listener to events of the given type that
// reach the host element. Subscriptions are cleared before every render
// pass, so render callbacks register them again on each pass.
func (h *Host) AddEventListener(name string, listener dom.Listener) {
	if listener == nil {
		return
	}
	if h.subs == nil {
		h.subs = make(map[string][]dom.Listener)
	}
	h.subs[name] = append(h.subs[name], listener)
	if h.dispatchers == nil {
		h.dispatchers = make(map[string]dom.ListenerID)
	}
	if _, ok := h.dispatchers[name]; !ok {
		h.dispatchers[name] = h.node.AddEventListener(name, func(e *dom.Event) {
			for _, l := range append([]dom.Listener(nil), h.subs[name]...) {
				l(e)
			}
		}, dom.ListenerOptions{})
	}
}

// Once schedules cb to run on a later turn the first time it is called
// with id. Later calls with the same id are ignored while the host stays
// connected. A callback still queued when the host is detached never runs.
func (h *Host) Once(id string, cb func()) {
	if cb == nil || h.fired[id] {
		return
	}
	if h.fired == nil {
		h.fired = make(map[string]bool)
	}
	h.fired[id] = true
	gen := h.generation
	h.reg.scheduler.Schedule(func() {
		if h.generation == gen && h.Connected() {
			cb()
		}
	})
}

// AttributeChanged implements dom.Behavior. Changes to observed attributes
// flow into the bound data.
func (h *Host) AttributeChanged(_ *dom.Node, name, _, value string, present bool) {
	if h.reflecting {
		return
	}
	key := AttributeToKey(name)
	if !h.def.observesAttribute(key) {
		return
	}
	if !present {
		if _, ok := h.data[key]; !ok {
			return
		}
		delete(h.data, key)
		h.RequestUpdate()
		return
	}
	if cur, ok := h.data[key]; ok && attrString(cur) == value {
		return
	}
	h.SetData(Data{key: value})
}

// PropertyChanged implements dom.Behavior. Writes to observed properties
// flow into the bound data.
func (h *Host) PropertyChanged(_ *dom.Node, name string, value any) {
	if h.def.observesProperty(name) {
		h.SetData(Data{name: value})
	}
}

// connect reads observed attributes and properties, marks the host as
// connected and performs the first render pass.
func (h *Host) connect() {
	if h.Connected() {
		return
	}
	for _, key := range h.def.ObservedAttributes {
		if v, ok := h.node.Attr(KeyToAttribute(key)); ok {
			h.data[key] = v
		}
	}
	for _, key := range h.def.ObservedProperties {
		if v, ok := h.node.Prop(key); ok {
			h.data[key] = v
		}
	}
	if h.def.Shadow {
		h.node.AttachShadow()
	}
	h.state = stateIdle
	h.reg.metrics.HostConnected()
	h.logger.Debug("host connected")
	h.Emit(EventConnect, nil)
	h.render()
}

// detach removes the rendered content and drops per-instance state.
func (h *Host) detach() {
	if !h.Connected() {
		return
	}
	h.state = stateDetached
	target := h.target()
	target.RemoveChildren()
	h.reg.renderer.Release(target)
	for _, id := range h.dispatchers {
		h.node.RemoveEventListener(id)
	}
	h.dispatchers = nil
	h.subs = nil
	h.fired = nil
	h.generation++
	h.reg.metrics.HostDisconnected()
	h.logger.Debug("host disconnected", "state", h.state, "renders", h.renders)
	h.Emit(EventDisconnect, nil)
}

func (h *Host) target() *dom.Node {
	if sr := h.node.ShadowRoot(); sr != nil {
		return sr
	}
	return h.node
}

// flush is the scheduled render pass.
func (h *Host) flush() {
	if h.state != statePending {
		return
	}
	h.reflect()
	h.state = stateIdle
	h.render()
}

// reflect mirrors observed keys present in the data onto their attributes.
func (h *Host) reflect() {
	h.reflecting = true
	defer func() { h.reflecting = false }()
	for _, key := range h.def.ObservedAttributes {
		v, ok := h.data[key]
		if !ok {
			continue
		}
		name := KeyToAttribute(key)
		if v == nil {
			h.node.RemoveAttr(name)
			continue
		}
		s := attrString(v)
		if cur, ok := h.node.Attr(name); !ok || cur != s {
			h.node.SetAttr(name, s)
		}
	}
}

// render runs the render callback and applies its result.
func (h *Host) render() {
	pass := h.renders + 1
	_, span := h.reg.tracer.Start(context.Background(), "wecco.render",
		trace.WithAttributes(
			attribute.String("wecco.component", h.def.Name),
			attribute.Int("wecco.render_pass", pass),
		))
	defer span.End()

	start := time.Now()
	h.subs = nil
	var update any
	if h.def.Render != nil {
		update = h.def.Render(&Context{host: h})
	}
	err := h.reg.renderer.Apply(h.target(), update)
	h.reg.metrics.RecordRenderPass(h.def.Name, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Error("render failed", "code", werrors.Code(err), "error", err)
		return
	}
	h.renders = pass
	h.Emit(EventUpdate, nil)
}

// attrString stringifies a data value for an attribute.
func attrString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
