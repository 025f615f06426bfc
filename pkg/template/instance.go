package template

import (
	"fmt"

	"github.com/wecco-dev/wecco/pkg/dom"
)

// Instance is a template applied to one target: the bindings created from
// the template's descriptors against the target's nodes.
type Instance struct {
	tmpl     *Template
	bindings []binding
}

// Template returns the template the instance was created from.
func (i *Instance) Template() *Template { return i.tmpl }

// Len returns the number of bindings.
func (i *Instance) Len() int { return len(i.bindings) }

// check verifies every bound node is still where the bindings expect it.
func (i *Instance) check(root *dom.Node) error {
	for _, b := range i.bindings {
		if err := b.check(root); err != nil {
			return err
		}
	}
	return nil
}

// update pushes values into the bindings. Structural failures stop the
// update; other failures are reported after every binding had its turn.
func (i *Instance) update(r *Renderer, res *Result) error {
	var first error
	for _, b := range i.bindings {
		if err := b.apply(r, res); err != nil {
			if isStructural(err) {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// instantiate clones the template's fragment, binds the clone and pushes
// the values. The returned fragment is detached; the caller inserts it.
func (r *Renderer) instantiate(res *Result) (*dom.Node, *Instance, error) {
	t := res.Template
	frag := t.Fragment()
	descs := t.Descriptors()
	inst := &Instance{tmpl: t, bindings: make([]binding, 0, len(descs))}

	next := 0
	var err error
	walk(frag, func(index int, n *dom.Node) {
		for err == nil && next < len(descs) && descs[next].Index == index {
			var b binding
			if b, err = newBinding(&descs[next], n); err == nil {
				inst.bindings = append(inst.bindings, b)
			}
			next++
		}
	})
	if err == nil && next != len(descs) {
		err = fmt.Errorf("%w: %d of %d descriptors matched no node", ErrStructure, len(descs)-next, len(descs))
	}
	if err != nil {
		return nil, nil, err
	}
	r.metrics.RecordBindings(len(inst.bindings))
	if DebugMode {
		r.logger.Debug("template instantiated", "bindings", len(inst.bindings))
	}

	if err := inst.update(r, res); err != nil {
		return nil, nil, err
	}
	return frag, inst, nil
}
