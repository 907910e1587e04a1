package qr

// Matrix is a square grid of dark/light modules. It is written once at the
// engine boundary and treated as read-only by everything downstream.
type Matrix struct {
	size  int
	cells []bool
}

// NewMatrix creates an all-light matrix with the given side length.
func NewMatrix(size int) Matrix {
	if size < 1 {
		size = 1
	}
	return Matrix{size: size, cells: make([]bool, size*size)}
}

// Size returns the side length in modules.
func (m Matrix) Size() int {
	return m.size
}

// Dark reports whether the module at (x, y) is dark.
// Coordinates outside the grid are light.
func (m Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.cells[y*m.size+x]
}

// SetDark sets the module at (x, y). Out-of-range coordinates are ignored.
func (m Matrix) SetDark(x, y int, dark bool) {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return
	}
	m.cells[y*m.size+x] = dark
}

// DarkCount returns the number of dark modules in the full grid.
func (m Matrix) DarkCount() int {
	n := 0
	for _, dark := range m.cells {
		if dark {
			n++
		}
	}
	return n
}
