package game

import "errors"

var (
	ErrIndexOutOfRange = errors.New("cell index out of range")
	ErrCellClaimed     = errors.New("cell already claimed")
	ErrNoColor         = errors.New("color required")
)

// Claim marks the cell at index with c. First writer wins: a claimed cell
// is never overwritten.
func (g Grid) Claim(index int, c Color) error {
	if c == Unclaimed {
		return ErrNoColor
	}
	if index < 0 || index >= len(g) {
		return ErrIndexOutOfRange
	}
	if g[index] != Unclaimed {
		return ErrCellClaimed
	}
	g[index] = c
	return nil
}

// NextColor returns the first palette color not in taken.
func NextColor(palette []Color, taken []Color) (Color, bool) {
	for _, c := range palette {
		used := false
		for _, t := range taken {
			if t == c {
				used = true
				break
			}
		}
		if !used {
			return c, true
		}
	}
	return Unclaimed, false
}
