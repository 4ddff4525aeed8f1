package snake

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the one-cell offset for the direction.
func (d Direction) Delta() Cell {
	switch d {
	case DirUp:
		return Cell{Y: -1}
	case DirDown:
		return Cell{Y: 1}
	case DirLeft:
		return Cell{X: -1}
	default:
		return Cell{X: 1}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Body is the snake: an ordered list of cells with the head at index 0.
type Body struct {
	cells []Cell
	dir   Direction
	next  Cell
}

// NewBody creates a straight snake of the given length whose head is at
// head and whose tail trails away from dir.
func NewBody(head Cell, length int, dir Direction) Body {
	length = max(length, 1)
	back := dir.Opposite().Delta()

	cells := make([]Cell, length)
	cells[0] = head
	for i := 1; i < length; i++ {
		cells[i] = cells[i-1].Add(back)
	}
	return Body{cells: cells, dir: dir, next: head}
}

// Advance sets the direction and computes the next head position.
// The body itself does not change until Grow or Move.
func (b *Body) Advance(dir Direction) {
	b.dir = dir
	b.next = b.cells[0].Add(dir.Delta())
}

// Grow prepends the next head, lengthening the snake by one.
func (b *Body) Grow() {
	b.cells = append([]Cell{b.next}, b.cells...)
}

// Move prepends the next head and drops the tail.
func (b *Body) Move() {
	cells := make([]Cell, len(b.cells))
	cells[0] = b.next
	copy(cells[1:], b.cells[:len(b.cells)-1])
	b.cells = cells
}

// Head returns the head cell.
func (b Body) Head() Cell {
	return b.cells[0]
}

// Next returns the head position computed by the last Advance.
func (b Body) Next() Cell {
	return b.next
}

// Tail returns the body without its head. The slice must not be modified.
func (b Body) Tail() []Cell {
	return b.cells[1:]
}

// Cells returns a copy of all cells, head first.
func (b Body) Cells() []Cell {
	return append([]Cell(nil), b.cells...)
}

// Len returns the number of segments.
func (b Body) Len() int {
	return len(b.cells)
}

// Direction returns the current heading.
func (b Body) Direction() Direction {
	return b.dir
}
