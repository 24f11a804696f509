package planar

import (
	"math"

	"github.com/golang/geo/r2"
)

// ElevationModel supplies an elevation for computed points that could not get
// one from their input segments. GetZ returns NaN when it has no value.
type ElevationModel interface {
	GetZ(c Coord) float64
}

// Elevate returns pts with missing elevations filled from m. pts is
// returned unchanged when m is nil or every point has z.
func Elevate(pts []Coord, m ElevationModel) []Coord {
	if m == nil {
		return pts
	}
	var out []Coord
	for i, p := range pts {
		if p.HasZ() {
			continue
		}
		if out == nil {
			out = append([]Coord(nil), pts...)
		}
		out[i].Z = m.GetZ(p)
	}
	if out == nil {
		return pts
	}
	return out
}

// ConstantElevation is an ElevationModel returning the same value everywhere.
type ConstantElevation float64

// GetZ implements ElevationModel.
func (e ConstantElevation) GetZ(Coord) float64 { return float64(e) }

// GridElevationModel estimates elevation from the average z of input
// coordinates falling in each cell of a regular grid over an extent. Cells
// without samples fall back to the average of all samples.
type GridElevationModel struct {
	extent     r2.Rect
	nx, ny     int
	sum        []float64
	count      []int
	totalSum   float64
	totalCount int
}

// NewGridElevationModel returns an empty model with nx*ny cells over extent.
func NewGridElevationModel(extent r2.Rect, nx, ny int) *GridElevationModel {
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	return &GridElevationModel{
		extent: extent,
		nx:     nx,
		ny:     ny,
		sum:    make([]float64, nx*ny),
		count:  make([]int, nx*ny),
	}
}

// Add records the elevations of pts. Points without z are ignored.
func (m *GridElevationModel) Add(pts ...Coord) {
	for _, p := range pts {
		if !p.HasZ() {
			continue
		}
		i, ok := m.cell(p)
		if !ok {
			continue
		}
		m.sum[i] += p.Z
		m.count[i]++
		m.totalSum += p.Z
		m.totalCount++
	}
}

// HasZ reports whether the model holds any sample.
func (m *GridElevationModel) HasZ() bool { return m.totalCount > 0 }

// GetZ implements ElevationModel.
func (m *GridElevationModel) GetZ(c Coord) float64 {
	if m.totalCount == 0 {
		return math.NaN()
	}
	if i, ok := m.cell(c); ok && m.count[i] > 0 {
		return m.sum[i] / float64(m.count[i])
	}
	return m.totalSum / float64(m.totalCount)
}

func (m *GridElevationModel) cell(c Coord) (int, bool) {
	if m.extent.IsEmpty() || !m.extent.ContainsPoint(c.Point()) {
		return 0, false
	}
	i := gridIndex(c.X, m.extent.X.Lo, m.extent.X.Length(), m.nx)
	j := gridIndex(c.Y, m.extent.Y.Lo, m.extent.Y.Length(), m.ny)
	return j*m.nx + i, true
}

func gridIndex(v, lo, length float64, n int) int {
	if length == 0 {
		return 0
	}
	i := int((v - lo) / length * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// PrecisionModel rounds computed coordinates. The zero value is the floating
// model, which leaves coordinates unchanged.
type PrecisionModel struct {
	scale float64
}

// FloatingPrecision returns the full float64 precision model.
func FloatingPrecision() PrecisionModel { return PrecisionModel{} }

// FixedPrecision returns a model that rounds to multiples of 1/scale.
func FixedPrecision(scale float64) PrecisionModel {
	return PrecisionModel{scale: math.Abs(scale)}
}

// IsFloating reports whether the model performs no rounding.
func (pm PrecisionModel) IsFloating() bool { return pm.scale == 0 }

// Scale returns the fixed scale, or 0 for the floating model.
func (pm PrecisionModel) Scale() float64 { return pm.scale }

// MakePrecise rounds the x and y of c to the model's grid. Elevation is
// unchanged.
func (pm PrecisionModel) MakePrecise(c Coord) Coord {
	if pm.IsFloating() {
		return c
	}
	c.X = pm.round(c.X)
	c.Y = pm.round(c.Y)
	return c
}

func (pm PrecisionModel) round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Floor(v*pm.scale+0.5) / pm.scale
}
