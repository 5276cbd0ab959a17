package block

// Direction is one of the six axis-aligned face directions of a block.
// The numeric order is fixed and used to index face arrays.
type Direction uint8

const (
	Back   Direction = iota // -Z
	Front                   // +Z
	Left                    // -X
	Right                   // +X
	Top                     // +Y
	Bottom                  // -Y
)

// Directions lists all six directions in index order.
var Directions = [6]Direction{Back, Front, Left, Right, Top, Bottom}

// HorizontalDirections lists the four directions that cross chunk boundaries.
var HorizontalDirections = [4]Direction{Back, Front, Left, Right}

var directionOffsets = [6]Pos{
	Back:   {0, 0, -1},
	Front:  {0, 0, 1},
	Left:   {-1, 0, 0},
	Right:  {1, 0, 0},
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
}

// Offset returns the unit step towards the neighbouring cell in direction d.
func (d Direction) Offset() Pos {
	return directionOffsets[d]
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Horizontal reports whether d lies in the XZ plane.
func (d Direction) Horizontal() bool {
	return d <= Right
}

func (d Direction) String() string {
	switch d {
	case Back:
		return "back"
	case Front:
		return "front"
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Pos is an integer cell coordinate, either in world space or local to a chunk.
type Pos struct {
	X, Y, Z int
}

// Add returns p translated by o.
func (p Pos) Add(o Pos) Pos {
	return Pos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Side returns the neighbouring position in direction d.
func (p Pos) Side(d Direction) Pos {
	return p.Add(d.Offset())
}
