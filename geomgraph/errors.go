package geomgraph

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/davidreynolds/gotopo/planar"
)

// ErrInvalidArgIndex is returned when a graph is built for an argument index
// other than 0 or 1.
var ErrInvalidArgIndex = errors.New("argument index must be 0 or 1")

// TopologyError reports an inconsistency found while building or labeling a
// graph, usually caused by invalid input or by round-off in noding.
type TopologyError struct {
	Msg   string
	Coord planar.Coord
	// HasCoord is false when the error is not tied to a location.
	HasCoord bool
}

func (e *TopologyError) Error() string {
	if !e.HasCoord {
		return e.Msg
	}
	return fmt.Sprintf("%s [ (%g, %g) ]", e.Msg, e.Coord.X, e.Coord.Y)
}

// NewTopologyError returns a TopologyError at c with a stack trace attached.
func NewTopologyError(c planar.Coord, format string, args ...interface{}) error {
	return errors.WithStack(&TopologyError{Msg: fmt.Sprintf(format, args...), Coord: c, HasCoord: true})
}

func newTopologyErrorNoCoord(format string, args ...interface{}) error {
	return errors.WithStack(&TopologyError{Msg: fmt.Sprintf(format, args...)})
}

// IsTopologyError reports whether err is or wraps a *TopologyError.
func IsTopologyError(err error) bool {
	var te *TopologyError
	return errors.As(err, &te)
}
