package mech

// Point is a cell coordinate, x is the column and y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Grid is a rectangular matrix of cells. Every row has length W.
// The zero value of T is the empty cell.
type Grid[T comparable] struct {
	W     int
	H     int
	Cells [][]T
}

func NewGrid[T comparable](w, h int) Grid[T] {
	cells := make([][]T, h)
	for y := range cells {
		cells[y] = make([]T, w)
	}
	return Grid[T]{W: w, H: h, Cells: cells}
}

func (g Grid[T]) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.W && p.Y < g.H
}

// At returns the zero value for out of bounds points.
func (g Grid[T]) At(p Point) T {
	var zero T
	if !g.InBounds(p) {
		return zero
	}
	return g.Cells[p.Y][p.X]
}

func (g Grid[T]) Clone() Grid[T] {
	out := NewGrid[T](g.W, g.H)
	for y := range g.Cells {
		copy(out.Cells[y], g.Cells[y])
	}
	return out
}

// Each visits every non-empty cell in row-major order.
func (g Grid[T]) Each(fn func(p Point, cell T)) {
	var zero T
	for y, row := range g.Cells {
		for x, cell := range row {
			if cell == zero {
				continue
			}
			fn(Point{X: x, Y: y}, cell)
		}
	}
}

func (g Grid[T]) Count() int {
	n := 0
	g.Each(func(Point, T) { n++ })
	return n
}

func (g Grid[T]) Equal(o Grid[T]) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for y := range g.Cells {
		for x := range g.Cells[y] {
			if g.Cells[y][x] != o.Cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Map converts every cell, empty ones included, keeping the shape.
func Map[T, U comparable](g Grid[T], fn func(T) U) Grid[U] {
	out := NewGrid[U](g.W, g.H)
	for y, row := range g.Cells {
		for x, cell := range row {
			out.Cells[y][x] = fn(cell)
		}
	}
	return out
}

// RotateClockwise rotates the matrix by a number of quarter turns.
// Negative turns rotate counter clockwise.
func RotateClockwise[T comparable](g Grid[T], turns int) Grid[T] {
	turns = normalizeTurns(turns)
	out := g
	for i := 0; i < turns; i++ {
		out = rotateOnce(out)
	}
	return out
}

func rotateOnce[T comparable](g Grid[T]) Grid[T] {
	out := NewGrid[T](g.H, g.W)
	for i := 0; i < g.W; i++ {
		for j := 0; j < g.H; j++ {
			out.Cells[i][j] = g.Cells[g.H-j-1][i]
		}
	}
	return out
}

func FlipH[T comparable](g Grid[T]) Grid[T] {
	out := NewGrid[T](g.W, g.H)
	for y, row := range g.Cells {
		for x, cell := range row {
			out.Cells[y][g.W-x-1] = cell
		}
	}
	return out
}

func FlipV[T comparable](g Grid[T]) Grid[T] {
	out := NewGrid[T](g.W, g.H)
	for y, row := range g.Cells {
		copy(out.Cells[g.H-y-1], row)
	}
	return out
}

func normalizeTurns(turns int) int {
	turns %= 4
	if turns < 0 {
		turns += 4
	}
	return turns
}

// Transform is a quarter turn rotation followed by flips. The flips are
// expressed in the module's own frame, so after an odd number of turns
// the horizontal flip acts on rows and the vertical flip on columns.
type Transform struct {
	Turns int  `json:"turns"`
	FlipH bool `json:"flipH"`
	FlipV bool `json:"flipV"`
}

func (t Transform) flips() (h, v bool) {
	if normalizeTurns(t.Turns)%2 == 1 {
		return t.FlipV, t.FlipH
	}
	return t.FlipH, t.FlipV
}

func ApplyTransform[T comparable](g Grid[T], t Transform) Grid[T] {
	out := RotateClockwise(g, t.Turns)
	h, v := t.flips()
	if h {
		out = FlipH(out)
	}
	if v {
		out = FlipV(out)
	}
	return out
}

// TransformPoint maps a coordinate of a w*h matrix through t, matching
// ApplyTransform cell for cell.
func TransformPoint(p Point, w, h int, t Transform) Point {
	for i := 0; i < normalizeTurns(t.Turns); i++ {
		p = Point{X: h - p.Y - 1, Y: p.X}
		w, h = h, w
	}
	fh, fv := t.flips()
	if fh {
		p.X = w - p.X - 1
	}
	if fv {
		p.Y = h - p.Y - 1
	}
	return p
}

// Layer is one positioned grid handed to Flatten.
type Layer[T comparable] struct {
	Cells  Grid[T]
	Offset Point
}

// Bounds is the absolute origin and size of a flattened grid.
type Bounds struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Flatten merges the layers into their tight bounding box. Later layers
// overwrite earlier ones wherever both have a non-empty cell.
func Flatten[T comparable](layers ...Layer[T]) (Grid[T], Bounds) {
	written := make(map[Point]T)
	first := true
	var minP, maxP Point
	for _, l := range layers {
		l.Cells.Each(func(p Point, cell T) {
			abs := p.Add(l.Offset)
			written[abs] = cell
			if first {
				minP, maxP = abs, abs
				first = false
				return
			}
			minP.X = min(minP.X, abs.X)
			minP.Y = min(minP.Y, abs.Y)
			maxP.X = max(maxP.X, abs.X)
			maxP.Y = max(maxP.Y, abs.Y)
		})
	}
	if first {
		return NewGrid[T](0, 0), Bounds{}
	}

	bounds := Bounds{X: minP.X, Y: minP.Y, W: maxP.X - minP.X + 1, H: maxP.Y - minP.Y + 1}
	out := NewGrid[T](bounds.W, bounds.H)
	for abs, cell := range written {
		out.Cells[abs.Y-minP.Y][abs.X-minP.X] = cell
	}
	return out, bounds
}
