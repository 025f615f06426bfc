package component

import "errors"

var (
	// ErrInvalidName is wrapped by Define when the name is not a valid
	// component tag.
	ErrInvalidName = errors.New("component: invalid name")

	// ErrDuplicate is wrapped by Define when the name is already taken.
	ErrDuplicate = errors.New("component: already defined")

	// ErrUndefined is returned by Create for unknown names.
	ErrUndefined = errors.New("component: not defined")
)
