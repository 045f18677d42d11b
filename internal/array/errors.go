package array

import (
	"fmt"
	"strings"
)

// ShapeMismatchError reports input shapes that cannot be broadcast
// together. Axis is the first incompatible output axis (right-aligned),
// Sizes holds each input's aligned size at that axis.
type ShapeMismatchError struct {
	Shapes []Shape
	Axis   int
	Sizes  []int
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = s.String()
	}
	return fmt.Sprintf("shapes not compatible for broadcasting: %s (axis %d: sizes %v)",
		strings.Join(parts, " vs "), e.Axis, e.Sizes)
}
