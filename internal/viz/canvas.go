package viz

import "strings"

const brailleBlank = 0x2800

// Each cell is a 2x4 braille block; dots are numbered
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotMask = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in braille sub-pixels, so a canvas
// of Width x Height cells holds (2*Width) x (4*Height) dots.
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the dot at (x, y). Dots outside the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotMask[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.cells[y/4][x/2]&dotMask[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// Line draws a Bresenham line between two dots, both ends included.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Rect fills the dots in [x0, x1] x [y0, y1].
func (c *Canvas) Rect(x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
