package template

import "errors"

var (
	// ErrStructure reports that the tree no longer has the shape a cached
	// instance expects. The renderer recovers from it by rebuilding.
	ErrStructure = errors.New("template: structural inconsistency")

	// ErrTargetNotFound reports that a selector matched no render target.
	ErrTargetNotFound = errors.New("template: render target not found")

	// ErrUnsupportedUpdate reports a value that cannot be rendered.
	ErrUnsupportedUpdate = errors.New("template: unsupported update value")
)
