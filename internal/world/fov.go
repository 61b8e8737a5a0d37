package world

import "github.com/samdwyer/torchcrawl/internal/entity"

// TorchRadius is how far the player sees.
const TorchRadius = 10

// Visibility is the set of tiles in view from a single origin. It only
// recomputes when the origin moves.
//
// The sweep is symmetric shadowcasting: light travels through the four
// quadrants row by row, slopes are kept as exact fractions, and a floor tile
// is lit only if it lies inside the unobstructed cone symmetrically, so
// A sees B exactly when B sees A. Walls bounding the lit area are lit too.
type Visibility struct {
	width, height int
	visible       []bool
	origin        entity.Position
	radius        int
	computed      bool
	recomputes    int
}

// NewVisibility creates an empty visible set for a width x height grid.
func NewVisibility(width, height int) *Visibility {
	return &Visibility{
		width:   width,
		height:  height,
		visible: make([]bool, width*height),
	}
}

// Refresh recomputes the visible set from origin unless origin is unchanged
// since the last sweep. Every tile found visible is latched as explored on
// grid. Reports whether a sweep ran.
func (v *Visibility) Refresh(grid *Grid, origin entity.Position, radius int) bool {
	if v.computed && origin == v.origin {
		return false
	}

	clear(v.visible)
	v.origin = origin
	v.radius = radius
	v.computed = true
	v.recomputes++

	s := &sweep{vis: v, grid: grid}
	s.reveal(origin.X, origin.Y)
	for _, dir := range [...]cardinal{north, east, south, west} {
		s.dir = dir
		s.scan(row{depth: 1, start: slope{-1, 1}, end: slope{1, 1}})
	}
	return true
}

// IsVisible reports whether (x, y) was in view at the last sweep.
func (v *Visibility) IsVisible(x, y int) bool {
	if x < 0 || x >= v.width || y < 0 || y >= v.height {
		return false
	}
	return v.visible[y*v.width+x]
}

// Recomputes returns how many sweeps have run.
func (v *Visibility) Recomputes() int {
	return v.recomputes
}

// Origin returns the origin of the last sweep, and false before the first one.
func (v *Visibility) Origin() (entity.Position, bool) {
	return v.origin, v.computed
}

type cardinal int

const (
	north cardinal = iota
	east
	south
	west
)

// slope is the fraction num/den with den > 0.
type slope struct {
	num, den int
}

type row struct {
	depth      int
	start, end slope
}

func (r row) next() row {
	return row{depth: r.depth + 1, start: r.start, end: r.end}
}

// minCol rounds depth*start to the nearest column, ties going up.
func (r row) minCol() int {
	return floorDiv(2*r.depth*r.start.num+r.start.den, 2*r.start.den)
}

// maxCol rounds depth*end to the nearest column, ties going down.
func (r row) maxCol() int {
	return ceilDiv(2*r.depth*r.end.num-r.end.den, 2*r.end.den)
}

// isSymmetric reports whether col's center lies inside the row's cone.
func (r row) isSymmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num &&
		col*r.end.den <= r.depth*r.end.num
}

// tileSlope is the slope of the left edge of the tile at (depth, col).
func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

type sweep struct {
	vis  *Visibility
	grid *Grid
	dir  cardinal
}

func (s *sweep) transform(depth, col int) (int, int) {
	o := s.vis.origin
	switch s.dir {
	case north:
		return o.X + col, o.Y - depth
	case south:
		return o.X + col, o.Y + depth
	case east:
		return o.X + depth, o.Y + col
	default:
		return o.X - depth, o.Y + col
	}
}

func (s *sweep) reveal(x, y int) {
	if !s.grid.InBounds(x, y) || x >= s.vis.width || y >= s.vis.height {
		return
	}
	dx, dy := x-s.vis.origin.X, y-s.vis.origin.Y
	if dx*dx+dy*dy > s.vis.radius*s.vis.radius {
		return
	}
	s.vis.visible[y*s.vis.width+x] = true
	s.grid.markExplored(x, y)
}

func (s *sweep) scan(r row) {
	if r.depth > s.vis.radius {
		return
	}

	var prevWall, hasPrev bool
	for col, last := r.minCol(), r.maxCol(); col <= last; col++ {
		x, y := s.transform(r.depth, col)
		wall := s.grid.blocksSight(x, y)

		if wall || r.isSymmetric(col) {
			s.reveal(x, y)
		}
		if hasPrev && prevWall && !wall {
			r.start = tileSlope(r.depth, col)
		}
		if hasPrev && !prevWall && wall {
			next := r.next()
			next.end = tileSlope(r.depth, col)
			s.scan(next)
		}
		prevWall, hasPrev = wall, true
	}

	if hasPrev && !prevWall {
		s.scan(r.next())
	}
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ceilDiv divides rounding toward positive infinity. b must be positive.
func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
