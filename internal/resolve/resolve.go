// Package resolve turns loose, human-supplied identifiers into live
// accessibility elements: a window (search scope) first, then a field
// inside it.
package resolve

import (
	"errors"
	"strings"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

var (
	// ErrWindowNotFound is wrapped by Resolve errors when no window matched.
	ErrWindowNotFound = errors.New("window not found")
	// ErrElementNotFound is wrapped by Resolve errors when no element matched.
	ErrElementNotFound = errors.New("element not found")
	// ErrEmptyIdentifier is returned when an element identifier is blank.
	ErrEmptyIdentifier = errors.New("empty element identifier")
)

func nameFold(want string) platform.Condition {
	return func(el platform.Element) bool {
		v, err := el.Name()
		return err == nil && strings.EqualFold(v, want)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
