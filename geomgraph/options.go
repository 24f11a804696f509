package geomgraph

import (
	"github.com/davidreynolds/gotopo/planar"
)

// Options control how geometry graphs are noded and labeled.
type Options struct {
	boundaryRule         planar.BoundaryNodeRule
	elevation            planar.ElevationModel
	precision            planar.PrecisionModel
	computeRingSelfNodes bool
}

func (o *Options) SetBoundaryNodeRule(r planar.BoundaryNodeRule) { o.boundaryRule = r }
func (o *Options) SetElevationModel(m planar.ElevationModel)     { o.elevation = m }
func (o *Options) SetPrecisionModel(pm planar.PrecisionModel)    { o.precision = pm }
func (o *Options) SetComputeRingSelfNodes(b bool)                { o.computeRingSelfNodes = b }

func (o Options) BoundaryNodeRule() planar.BoundaryNodeRule { return o.boundaryRule }
func (o Options) ElevationModel() planar.ElevationModel     { return o.elevation }
func (o Options) PrecisionModel() planar.PrecisionModel     { return o.precision }
func (o Options) ComputeRingSelfNodes() bool                { return o.computeRingSelfNodes }

// NewLineIntersector returns an intersector using the elevation and precision
// models of o.
func (o Options) NewLineIntersector() *planar.LineIntersector {
	return planar.NewLineIntersector(o.elevation, o.precision)
}

// DefaultOptions uses the Mod-2 boundary rule, floating precision, no
// elevation model, and skips self-noding of rings.
func DefaultOptions() Options {
	return Options{
		boundaryRule: planar.Mod2,
		precision:    planar.FloatingPrecision(),
	}
}

// EndpointOptions are DefaultOptions with every line endpoint in the
// boundary, so that closed lines have a boundary too.
func EndpointOptions() Options {
	o := DefaultOptions()
	o.boundaryRule = planar.Endpoint
	return o
}
