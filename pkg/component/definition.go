package component

// Data is the bound data of a host. Keys are camelCase.
type Data map[string]any

// RenderFunc produces the update applied to the host on every render pass.
// The returned value may be anything the template renderer accepts.
type RenderFunc func(ctx *Context) any

// Definition describes a registered component.
type Definition struct {
	Name   string
	Render RenderFunc

	// ObservedAttributes are data keys mirrored to dash-case attributes.
	ObservedAttributes []string

	// ObservedProperties are data keys fed by live property writes.
	ObservedProperties []string

	// Shadow renders into an attached shadow root instead of the element.
	Shadow bool
}

// DefineOption configures a Definition.
type DefineOption func(*Definition)

// WithObservedAttributes declares observed attributes. Entries may be
// given as data keys ("itemCount") or attribute names ("item-count").
func WithObservedAttributes(names ...string) DefineOption {
	return func(d *Definition) {
		for _, n := range names {
			d.ObservedAttributes = append(d.ObservedAttributes, AttributeToKey(n))
		}
	}
}

// WithObservedProperties declares observed properties.
func WithObservedProperties(keys ...string) DefineOption {
	return func(d *Definition) {
		d.ObservedProperties = append(d.ObservedProperties, keys...)
	}
}

// WithShadow makes hosts render into a shadow root.
func WithShadow() DefineOption {
	return func(d *Definition) { d.Shadow = true }
}

func (d *Definition) observesAttribute(key string) bool {
	for _, k := range d.ObservedAttributes {
		if k == key {
			return true
		}
	}
	return false
}

func (d *Definition) observesProperty(key string) bool {
	for _, k := range d.ObservedProperties {
		if k == key {
			return true
		}
	}
	return false
}
