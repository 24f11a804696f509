package planar

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// BoundaryNodeRule decides whether a point where n line endpoints meet is in
// the boundary of the geometry.
type BoundaryNodeRule int

const (
	// Mod2 is the OGC SFS rule: a point is in the boundary if an odd number
	// of endpoints meet at it. Closed lines have no boundary.
	Mod2 BoundaryNodeRule = iota
	// Endpoint puts every endpoint in the boundary.
	Endpoint
	// MultivalentEndpoint puts points where more than one endpoint meets in
	// the boundary.
	MultivalentEndpoint
	// MonovalentEndpoint puts points that are the endpoint of exactly one
	// line in the boundary.
	MonovalentEndpoint
)

// IsInBoundary reports whether a point with boundaryCount endpoints is in the
// boundary.
func (r BoundaryNodeRule) IsInBoundary(boundaryCount int) bool {
	switch r {
	case Endpoint:
		return boundaryCount > 0
	case MultivalentEndpoint:
		return boundaryCount > 1
	case MonovalentEndpoint:
		return boundaryCount == 1
	}
	return boundaryCount%2 == 1
}

func (r BoundaryNodeRule) String() string {
	switch r {
	case Endpoint:
		return "endpoint"
	case MultivalentEndpoint:
		return "multivalent"
	case MonovalentEndpoint:
		return "monovalent"
	}
	return "mod2"
}

// ParseBoundaryNodeRule parses the names returned by String.
func ParseBoundaryNodeRule(s string) (BoundaryNodeRule, error) {
	switch strings.ToLower(s) {
	case "", "mod2", "ogc":
		return Mod2, nil
	case "endpoint":
		return Endpoint, nil
	case "multivalent":
		return MultivalentEndpoint, nil
	case "monovalent":
		return MonovalentEndpoint, nil
	}
	return Mod2, errors.Newf("unknown boundary node rule %q", s)
}
