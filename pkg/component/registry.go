package component

import (
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	werrors "github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/metrics"
	"github.com/wecco-dev/wecco/pkg/scheduler"
	"github.com/wecco-dev/wecco/pkg/template"
)

// Registry maps component names to definitions and upgrades matching
// elements when they connect to an attached document.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition

	logger    *slog.Logger
	scheduler *scheduler.Scheduler
	renderer  *template.Renderer
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger hosts log through.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithScheduler sets the scheduler render passes and once-callbacks run on.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(r *Registry) {
		if s != nil {
			r.scheduler = s
		}
	}
}

// WithRenderer sets the renderer hosts apply their updates with.
func WithRenderer(t *template.Renderer) Option {
	return func(r *Registry) {
		if t != nil {
			r.renderer = t
		}
	}
}

// WithMetrics sets the collectors hosts record into.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithTracer sets the tracer render passes are traced with.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewRegistry creates an empty registry. Without options it uses the
// default logger, a private scheduler and renderer, and the global
// OpenTelemetry tracer provider.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		defs:   make(map[string]*Definition),
		logger: slog.Default(),
		tracer: otel.Tracer("github.com/wecco-dev/wecco/pkg/component"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.scheduler == nil {
		r.scheduler = scheduler.New(scheduler.WithLogger(r.logger))
	}
	if r.renderer == nil {
		r.renderer = template.NewRenderer(template.WithLogger(r.logger), template.WithMetrics(r.metrics))
	}
	return r
}

// Scheduler returns the scheduler hosts schedule work on.
func (r *Registry) Scheduler() *scheduler.Scheduler { return r.scheduler }

// Renderer returns the renderer hosts render with.
func (r *Registry) Renderer() *template.Renderer { return r.renderer }

// Define registers a component. The name must be a valid component tag
// and must not be registered yet.
func (r *Registry) Define(name string, render RenderFunc, opts ...DefineOption) (*Definition, error) {
	if !validName(name) {
		return nil, werrors.New("W005").WithDetailf("%q", name).Wrap(ErrInvalidName)
	}
	def := &Definition{Name: name, Render: render}
	for _, opt := range opts {
		opt(def)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[name]; exists {
		return nil, werrors.New("W006").WithDetailf("%q", name).Wrap(ErrDuplicate)
	}
	r.defs[name] = def
	r.logger.Debug("component defined", "component", name)
	return def, nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Create returns a new, detached element for a registered component. It
// is upgraded to a host when it connects to an attached document.
func (r *Registry) Create(name string) (*dom.Node, error) {
	if _, ok := r.Lookup(name); !ok {
		return nil, werrors.Newf(werrors.CategoryComponent, "component %q is not defined", name).Wrap(ErrUndefined)
	}
	return dom.NewElement(name), nil
}

// Attach makes doc report connect and disconnect reactions to r and
// upgrades registered elements that are already connected.
func (r *Registry) Attach(doc *dom.Node) {
	doc.SetReactions(r)
	var existing []*dom.Node
	collect(doc, func(el *dom.Node) {
		if _, ok := r.Lookup(el.Tag()); ok {
			existing = append(existing, el)
		}
	})
	for _, el := range existing {
		r.Connected(el)
	}
}

// Connected implements dom.Reactions.
func (r *Registry) Connected(el *dom.Node) {
	def, ok := r.Lookup(el.Tag())
	if !ok {
		return
	}
	h, _ := el.Behavior().(*Host)
	if h == nil {
		h = newHost(r, def, el)
		el.SetBehavior(h)
		el.SetBoundary(true)
	}
	h.connect()
}

// Disconnected implements dom.Reactions.
func (r *Registry) Disconnected(el *dom.Node) {
	if h, ok := el.Behavior().(*Host); ok {
		h.detach()
	}
}

// HostOf returns the host installed on el.
func HostOf(el *dom.Node) (*Host, bool) {
	if el == nil {
		return nil, false
	}
	h, ok := el.Behavior().(*Host)
	return h, ok
}

// collect visits every element below n in document order, entering shadow
// roots.
func collect(n *dom.Node, visit func(*dom.Node)) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.IsElement() {
			visit(c)
			if sr := c.ShadowRoot(); sr != nil {
				collect(sr, visit)
			}
		}
		collect(c, visit)
	}
}
