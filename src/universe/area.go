package universe

//Area is the rows x cols matrix of cell states
//Entities is indexed as Entities[row][col], all rows share one backing slice
type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
}

//createArea allocate the new area
func createArea(width int, height int) Area {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}

//NewArea returns an all-dead area of the given size
func NewArea(width int, height int) Area {
	return createArea(width, height)
}

//In reports whether p lies inside the area
func (a Area) In(p Point) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < a.Height && p.Col < a.Width
}

//At returns the state at p, points outside the area are Dead
func (a Area) At(p Point) Cell {
	if !a.In(p) {
		return Dead
	}
	return a.Entities[p.Row][p.Col]
}

//Set writes c at p and reports whether p was inside the area
//writes outside the area are dropped
func (a Area) Set(p Point, c Cell) bool {
	if !a.In(p) {
		return false
	}
	a.Entities[p.Row][p.Col] = c
	return true
}

//Clone returns a deep copy
func (a Area) Clone() Area {
	c := createArea(a.Width, a.Height)
	for y := range a.Entities {
		copy(c.Entities[y], a.Entities[y])
	}
	return c
}

//Count returns the number of cells in state c
func (a Area) Count(c Cell) int {
	n := 0
	a.walk(func(row int, col int, e Cell) {
		if e == c {
			n++
		}
	})
	return n
}

//Protected returns the number of frozen cells
func (a Area) Protected() int {
	n := 0
	a.walk(func(row int, col int, e Cell) {
		if e.Protected() {
			n++
		}
	})
	return n
}

//walk calls the cb function for each cell
func (a Area) walk(cb func(row int, col int, e Cell)) {
	for y := range a.Entities {
		for x := range a.Entities[y] {
			cb(y, x, a.Entities[y][x])
		}
	}
}

func (a Area) clear() {
	for y := range a.Entities {
		for x := range a.Entities[y] {
			a.Entities[y][x] = Dead
		}
	}
}

//Advance returns the next generation of a without modifying it
func Advance(a Area) Area {
	next := createArea(a.Width, a.Height)
	for y := range a.Entities {
		for x := range a.Entities[y] {
			next.Entities[y][x] = nextCell(a, y, x)
		}
	}
	return next
}

//liveNeighbours counts Alive cells around row, col
//neighbours outside the area are absent, there is no wraparound
func liveNeighbours(a Area, row int, col int) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			if i == 0 && j == 0 {
				continue
			}
			ny := row + i
			nx := col + j
			if nx < 0 || ny < 0 || nx >= a.Width || ny >= a.Height {
				continue
			}
			if a.Entities[ny][nx] == Alive {
				n++
			}
		}
	}
	return n
}

//nextCell calculates the next state for the cell at row, col
func nextCell(a Area, row int, col int) Cell {
	c := a.Entities[row][col]
	if c.Protected() {
		return c
	}
	n := liveNeighbours(a, row, col)
	if n == 3 || (n == 2 && c == Alive) {
		return Alive
	}
	return Dead
}
