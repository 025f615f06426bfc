package template

import (
	"errors"
	"fmt"
	"log/slog"

	werrors "github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/metrics"
)

// Updater is implemented by values that render themselves into a target.
// The renderer does not clear the target before calling Update.
type Updater interface {
	Update(target *dom.Node) error
}

// UpdateFunc adapts a function to Updater.
type UpdateFunc func(target *dom.Node) error

// Update calls f(target).
func (f UpdateFunc) Update(target *dom.Node) error { return f(target) }

// Renderer applies update values to render targets. It is the reconciler
// entry point: it normalizes every supported update kind into tree
// mutations and consults its Cache to reuse template instances.
//
// A Renderer must only be used from the goroutine that owns the tree.
type Renderer struct {
	logger  *slog.Logger
	cache   *Cache
	metrics *metrics.Metrics
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCache sets the template cache. Renderers sharing a cache share
// template instances.
func WithCache(c *Cache) Option {
	return func(r *Renderer) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithMetrics sets the collectors the renderer records into.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// NewRenderer creates a renderer with its own cache.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		logger: slog.Default(),
		cache:  NewCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the renderer's template cache.
func (r *Renderer) Cache() *Cache { return r.cache }

// Apply renders update into target. Supported updates are nil, text-like
// scalars, *dom.Node, lists of updates, *Result, *Template, Updater and
// plain render functions taking the target.
//
// Structural inconsistencies found while reusing a cached instance are
// logged and repaired by a full rebuild; they are never returned.
func (r *Renderer) Apply(target *dom.Node, update any) error {
	return r.apply(target, update, true)
}

// ApplySelector renders update into the first element below root that
// matches selector. It fails with ErrTargetNotFound when nothing matches.
func (r *Renderer) ApplySelector(root *dom.Node, selector string, update any) error {
	target, err := root.QuerySelector(selector)
	if err != nil {
		return werrors.New("W004").WithDetailf("invalid selector %q", selector).Wrap(errors.Join(ErrTargetNotFound, err))
	}
	if target == nil {
		return werrors.New("W004").WithDetailf("selector %q matched nothing", selector).Wrap(ErrTargetNotFound)
	}
	return r.Apply(target, update)
}

// Release forgets the cached instance of target. Component hosts call it
// when they are detached.
func (r *Renderer) Release(target *dom.Node) {
	if r.cache.Invalidate(target) {
		r.metrics.SetCachedTargets(r.cache.Len())
	}
}

// apply dispatches on the update kind. Side containers pass cached=false so
// they never leave entries behind.
func (r *Renderer) apply(target *dom.Node, update any, cached bool) error {
	if isNilPointer(update) {
		update = nil
	}
	switch u := update.(type) {
	case nil:
		r.clear(target, cached)
		return nil

	case *Result:
		return r.applyTemplate(target, u, cached)

	case *Template:
		return r.applyTemplate(target, u.With(), cached)

	case *dom.Node:
		if u == target {
			return nil
		}
		r.clear(target, cached)
		target.AppendChild(u)
		return nil

	case Updater:
		return u.Update(target)

	case func(*dom.Node) error:
		return u(target)

	case func(*dom.Node):
		u(target)
		return nil
	}

	if isList(update) {
		r.clear(target, cached)
		for _, item := range listItems(update) {
			side := dom.NewFragment()
			if err := r.apply(side, item, false); err != nil {
				return err
			}
			target.AppendChild(side)
		}
		return nil
	}

	if s, ok := textValue(update); ok {
		r.clear(target, cached)
		target.AppendChild(dom.NewText(s))
		return nil
	}

	return werrors.New("W007").WithDetailf("%T", update).Wrap(ErrUnsupportedUpdate)
}

// clear empties target and drops its cached instance.
func (r *Renderer) clear(target *dom.Node, cached bool) {
	target.RemoveChildren()
	if cached {
		r.Release(target)
	}
}

// applyTemplate reuses the cached instance of the same template, or
// rebuilds the target from a fresh clone.
func (r *Renderer) applyTemplate(target *dom.Node, res *Result, cached bool) error {
	reason := metrics.ReasonFirstRender
	if cached {
		if inst, ok := r.cache.Lookup(target); ok {
			if inst.tmpl == res.Template {
				err := inst.check(target)
				if err == nil {
					err = inst.update(r, res)
				}
				if !isStructural(err) {
					return err
				}
				r.logger.Warn("structural inconsistency, rebuilding target",
					"code", "W001",
					"target", describe(target),
					"error", err)
				reason = metrics.ReasonStructure
			} else {
				reason = metrics.ReasonNewTemplate
			}
			r.cache.Invalidate(target)
		}
	}

	frag, inst, err := r.instantiate(res)
	if err != nil {
		return err
	}
	target.RemoveChildren()
	target.AppendChild(frag)

	if cached {
		r.cache.Store(target, inst)
		r.metrics.RecordRebuild(reason)
		r.metrics.SetCachedTargets(r.cache.Len())
	}
	return nil
}

func isStructural(err error) bool {
	return err != nil && errors.Is(err, ErrStructure)
}

// describe names a target for log output.
func describe(n *dom.Node) string {
	if n.IsElement() {
		return "<" + n.Tag() + ">"
	}
	return fmt.Sprintf("#%s", n.Type())
}

var defaultRenderer = NewRenderer()

// Default returns the package-level renderer used by Apply.
func Default() *Renderer { return defaultRenderer }

// Apply renders update into target with the default renderer. The default
// renderer keeps a cache entry for every target it renders a template into;
// callers discarding such a target should Release it.
func Apply(target *dom.Node, update any) error {
	return defaultRenderer.Apply(target, update)
}

// ApplySelector renders update into the first match of selector below root
// with the default renderer.
func ApplySelector(root *dom.Node, selector string, update any) error {
	return defaultRenderer.ApplySelector(root, selector, update)
}

// Release drops the default renderer's cached instance for target.
func Release(target *dom.Node) {
	defaultRenderer.Release(target)
}
