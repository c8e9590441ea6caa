package viz

import (
	"strings"

	"github.com/TheBurgerCoder/verlet/internal/world"
)

// Braille patterns pack a 2x4 dot cell into one rune, giving a terminal
// canvas of (Width*2) x (Height*4) sub-pixels starting at U+2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws between sub-pixel coordinates with Bresenham.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawWorld projects a world's sticks and particles onto the canvas.
// Locked particles render as a small cross so anchors stand out.
func (c *Canvas) DrawWorld(w *world.World, width, height float64) {
	sx := float64(c.Width*2-1) / width
	sy := float64(c.Height*4-1) / height

	px := func(v float64) int { return int(v * sx) }
	py := func(v float64) int { return int(v * sy) }

	for _, st := range w.Sticks() {
		a, ok := w.Particle(st.A)
		if !ok {
			continue
		}
		b, ok := w.Particle(st.B)
		if !ok {
			continue
		}
		c.DrawLine(px(a.X), py(a.Y), px(b.X), py(b.Y))
	}

	for _, p := range w.Particles() {
		x, y := px(p.X), py(p.Y)
		c.Set(x, y)
		if p.Locked {
			c.Set(x-1, y)
			c.Set(x+1, y)
			c.Set(x, y-1)
			c.Set(x, y+1)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
