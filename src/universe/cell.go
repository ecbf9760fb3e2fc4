package universe

import "fmt"

// Cell is the state of one grid position.
//
// Only Dead and Alive take part in the evolution rule. Pending, Initial and
// Immune are frozen: they are copied unchanged into the next generation and
// count as not alive for their neighbours.
type Cell uint8

const (
	Dead Cell = iota
	Alive
	Pending
	Initial
	Immune
)

var cellNames = map[Cell]string{
	Dead:    "dead",
	Alive:   "alive",
	Pending: "pending",
	Initial: "initial",
	Immune:  "immune",
}

//Protected reports whether the cell is excluded from the evolution rule
func (c Cell) Protected() bool {
	return c == Pending || c == Initial || c == Immune
}

func (c Cell) String() string {
	if n, ok := cellNames[c]; ok {
		return n
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

//Point is a grid coordinate
type Point struct {
	Row int
	Col int
}
