package platform

import "errors"

// ErrElementGone is returned by element reads once the control has been
// removed from the tree.
var ErrElementGone = errors.New("element is no longer available")

// ErrNotSupported is returned when a provider cannot perform an operation on
// an element (for example reading a property it does not expose).
var ErrNotSupported = errors.New("operation not supported by element")
