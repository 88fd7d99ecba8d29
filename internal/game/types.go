package game

import "encoding/json"

// DefaultCells is the number of cells on a standard board.
const DefaultCells = 36

// Color tags a claimed cell. The empty Color means unclaimed.
type Color string

const Unclaimed Color = ""

// DefaultPalette is the join-order color assignment.
var DefaultPalette = []Color{"red", "green", "blue"}

// Grid is a fixed-length sequence of cells. Cells only ever move from
// Unclaimed to a color.
type Grid []Color

func NewGrid(cells int) Grid {
	if cells <= 0 {
		cells = DefaultCells // Default to the 6x6 board
	}
	return make(Grid, cells)
}

// Clone returns an independent copy safe to hand to other goroutines.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	copy(out, g)
	return out
}

// Full reports whether every cell has been claimed.
func (g Grid) Full() bool {
	for _, c := range g {
		if c == Unclaimed {
			return false
		}
	}
	return true
}

// MarshalJSON renders unclaimed cells as null.
func (g Grid) MarshalJSON() ([]byte, error) {
	cells := make([]*string, len(g))
	for i, c := range g {
		if c == Unclaimed {
			continue
		}
		s := string(c)
		cells[i] = &s
	}
	return json.Marshal(cells)
}

// UnmarshalJSON accepts the null-for-unclaimed form produced by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var cells []*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	out := make(Grid, len(cells))
	for i, c := range cells {
		if c != nil {
			out[i] = Color(*c)
		}
	}
	*g = out
	return nil
}
