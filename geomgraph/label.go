package geomgraph

import (
	"strings"

	"github.com/davidreynolds/gotopo/planar"
)

// TopologyLocation holds the locations of a graph component relative to one
// geometry: on the component, and for areal labels also to its left and
// right.
type TopologyLocation struct {
	loc  [3]planar.Location
	area bool
}

// NewLineLocation returns a location with only the On position.
func NewLineLocation(on planar.Location) TopologyLocation {
	return TopologyLocation{loc: [3]planar.Location{on, planar.None, planar.None}}
}

// NewAreaLocation returns a location with On, Left and Right positions.
func NewAreaLocation(on, left, right planar.Location) TopologyLocation {
	return TopologyLocation{loc: [3]planar.Location{on, left, right}, area: true}
}

// Get returns the location at pos. Side positions of a line location are
// None.
func (tl TopologyLocation) Get(pos planar.Position) planar.Location {
	if pos != planar.On && !tl.area {
		return planar.None
	}
	return tl.loc[pos]
}

func (tl *TopologyLocation) Set(pos planar.Position, loc planar.Location) { tl.loc[pos] = loc }

func (tl *TopologyLocation) SetLocations(on, left, right planar.Location) {
	tl.loc = [3]planar.Location{on, left, right}
}

func (tl TopologyLocation) IsArea() bool { return tl.area }
func (tl TopologyLocation) IsLine() bool { return !tl.area }

func (tl TopologyLocation) size() int {
	if tl.area {
		return 3
	}
	return 1
}

// IsNull reports whether every position is None.
func (tl TopologyLocation) IsNull() bool {
	for i := 0; i < tl.size(); i++ {
		if tl.loc[i] != planar.None {
			return false
		}
	}
	return true
}

// IsAnyNull reports whether some position is None.
func (tl TopologyLocation) IsAnyNull() bool {
	for i := 0; i < tl.size(); i++ {
		if tl.loc[i] == planar.None {
			return true
		}
	}
	return false
}

func (tl TopologyLocation) IsEqualOnSide(o TopologyLocation, pos planar.Position) bool {
	return tl.Get(pos) == o.Get(pos)
}

// Flip swaps the side locations.
func (tl *TopologyLocation) Flip() {
	if tl.area {
		tl.loc[planar.Left], tl.loc[planar.Right] = tl.loc[planar.Right], tl.loc[planar.Left]
	}
}

func (tl *TopologyLocation) SetAll(loc planar.Location) {
	for i := 0; i < tl.size(); i++ {
		tl.loc[i] = loc
	}
}

func (tl *TopologyLocation) SetAllIfNull(loc planar.Location) {
	for i := 0; i < tl.size(); i++ {
		if tl.loc[i] == planar.None {
			tl.loc[i] = loc
		}
	}
}

func (tl TopologyLocation) AllPositionsEqual(loc planar.Location) bool {
	for i := 0; i < tl.size(); i++ {
		if tl.loc[i] != loc {
			return false
		}
	}
	return true
}

// Merge fills the null positions of tl from o. A line location merged with
// an area location becomes an area location.
func (tl *TopologyLocation) Merge(o TopologyLocation) {
	if o.area && !tl.area {
		tl.area = true
		tl.loc[planar.Left] = planar.None
		tl.loc[planar.Right] = planar.None
	}
	for i := 0; i < tl.size(); i++ {
		if tl.loc[i] == planar.None && i < o.size() {
			tl.loc[i] = o.loc[i]
		}
	}
}

func (tl TopologyLocation) String() string {
	var b strings.Builder
	if tl.area {
		b.WriteByte(tl.loc[planar.Left].Symbol())
	}
	b.WriteByte(tl.loc[planar.On].Symbol())
	if tl.area {
		b.WriteByte(tl.loc[planar.Right].Symbol())
	}
	return b.String()
}

// Label records the topological relationship of a graph component to each
// of the two argument geometries.
type Label struct {
	elt [2]TopologyLocation
}

// NewLineLabel returns a line label with on for both geometries.
func NewLineLabel(on planar.Location) Label {
	return Label{elt: [2]TopologyLocation{NewLineLocation(on), NewLineLocation(on)}}
}

// NewArgLineLabel returns a line label with on for geometry geomIndex and
// None for the other.
func NewArgLineLabel(geomIndex int, on planar.Location) Label {
	l := NewLineLabel(planar.None)
	l.elt[geomIndex].Set(planar.On, on)
	return l
}

// NewAreaLabel returns an area label with the same locations for both
// geometries.
func NewAreaLabel(on, left, right planar.Location) Label {
	return Label{elt: [2]TopologyLocation{NewAreaLocation(on, left, right), NewAreaLocation(on, left, right)}}
}

// NewArgAreaLabel returns an area label for geometry geomIndex, null for the
// other.
func NewArgAreaLabel(geomIndex int, on, left, right planar.Location) Label {
	l := NewAreaLabel(planar.None, planar.None, planar.None)
	l.elt[geomIndex].SetLocations(on, left, right)
	return l
}

// ToLine returns a copy of l with area locations of both geometries reduced
// to their On location.
func (l Label) ToLine() Label {
	for i := range l.elt {
		if l.elt[i].area {
			l.elt[i] = NewLineLocation(l.elt[i].loc[planar.On])
		}
	}
	return l
}

// ToLineFor reduces the locations of geometry geomIndex to its On location.
func (l *Label) ToLineFor(geomIndex int) {
	if l.elt[geomIndex].area {
		l.elt[geomIndex] = NewLineLocation(l.elt[geomIndex].loc[planar.On])
	}
}

func (l *Label) Flip() {
	l.elt[0].Flip()
	l.elt[1].Flip()
}

func (l Label) Location(geomIndex int, pos planar.Position) planar.Location {
	return l.elt[geomIndex].Get(pos)
}

// On returns the On location for geometry geomIndex.
func (l Label) On(geomIndex int) planar.Location {
	return l.elt[geomIndex].Get(planar.On)
}

func (l *Label) SetLocation(geomIndex int, pos planar.Position, loc planar.Location) {
	l.elt[geomIndex].Set(pos, loc)
}

// SetOn sets the On location for geometry geomIndex.
func (l *Label) SetOn(geomIndex int, loc planar.Location) {
	l.elt[geomIndex].Set(planar.On, loc)
}

func (l *Label) SetAllLocations(geomIndex int, loc planar.Location) {
	l.elt[geomIndex].SetAll(loc)
}

func (l *Label) SetAllLocationsIfNull(geomIndex int, loc planar.Location) {
	l.elt[geomIndex].SetAllIfNull(loc)
}

// Merge fills the null locations of l from o.
func (l *Label) Merge(o Label) {
	for i := range l.elt {
		l.elt[i].Merge(o.elt[i])
	}
}

// GeometryCount returns the number of geometries the label is non-null for.
func (l Label) GeometryCount() int {
	n := 0
	for _, tl := range l.elt {
		if !tl.IsNull() {
			n++
		}
	}
	return n
}

func (l Label) IsNull(geomIndex int) bool    { return l.elt[geomIndex].IsNull() }
func (l Label) IsAnyNull(geomIndex int) bool { return l.elt[geomIndex].IsAnyNull() }

// IsArea reports whether the label is areal for either geometry.
func (l Label) IsArea() bool { return l.elt[0].area || l.elt[1].area }

func (l Label) IsAreaFor(geomIndex int) bool { return l.elt[geomIndex].area }
func (l Label) IsLine(geomIndex int) bool    { return !l.elt[geomIndex].area }

func (l Label) IsEqualOnSide(o Label, pos planar.Position) bool {
	return l.elt[0].IsEqualOnSide(o.elt[0], pos) && l.elt[1].IsEqualOnSide(o.elt[1], pos)
}

func (l Label) AllPositionsEqual(geomIndex int, loc planar.Location) bool {
	return l.elt[geomIndex].AllPositionsEqual(loc)
}

func (l Label) String() string {
	return "A:" + l.elt[0].String() + " B:" + l.elt[1].String()
}
