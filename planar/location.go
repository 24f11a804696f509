package planar

// Location is the topological location of a point relative to a geometry.
type Location int8

const (
	// None means the location is not known.
	None     Location = -1
	Interior Location = 0
	Boundary Location = 1
	Exterior Location = 2
)

// Symbol returns the single character used for l in label dumps.
func (l Location) Symbol() byte {
	switch l {
	case Interior:
		return 'i'
	case Boundary:
		return 'b'
	case Exterior:
		return 'e'
	}
	return '-'
}

func (l Location) String() string {
	switch l {
	case Interior:
		return "Interior"
	case Boundary:
		return "Boundary"
	case Exterior:
		return "Exterior"
	}
	return "None"
}

// Position indexes the three locations kept for a graph component: on the
// component itself, or to its left or right.
type Position int

const (
	On    Position = 0
	Left  Position = 1
	Right Position = 2
)

// Opposite returns Left for Right and vice versa. On is its own opposite.
func (p Position) Opposite() Position {
	switch p {
	case Left:
		return Right
	case Right:
		return Left
	}
	return p
}

// Dimension is the dimension of a geometry or of an intersection matrix
// entry.
type Dimension int

const (
	DimFalse    Dimension = -1
	DimPoint    Dimension = 0
	DimCurve    Dimension = 1
	DimSurface  Dimension = 2
	DimTrue     Dimension = -2
	DimDontCare Dimension = -3
)

// Symbol returns the DE-9IM character for d.
func (d Dimension) Symbol() byte {
	switch d {
	case DimFalse:
		return 'F'
	case DimTrue:
		return 'T'
	case DimDontCare:
		return '*'
	case DimPoint:
		return '0'
	case DimCurve:
		return '1'
	case DimSurface:
		return '2'
	}
	return '?'
}

// DimensionFromSymbol parses a DE-9IM character.
func DimensionFromSymbol(c byte) (Dimension, bool) {
	switch c {
	case 'F', 'f':
		return DimFalse, true
	case 'T', 't':
		return DimTrue, true
	case '*':
		return DimDontCare, true
	case '0':
		return DimPoint, true
	case '1':
		return DimCurve, true
	case '2':
		return DimSurface, true
	}
	return DimFalse, false
}
