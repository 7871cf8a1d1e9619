package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ink selects the style a canvas cell is rendered with
type Ink int

const (
	InkPlain Ink = iota
	InkDim
	InkBorder
	InkActive
	InkTitle
)

var inkStyles = map[Ink]lipgloss.Style{
	InkPlain:  lipgloss.NewStyle(),
	InkDim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	InkBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	InkActive: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	InkTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
}

type cell struct {
	text string // "" for the trailing half of a wide rune
	ink  Ink
}

// Canvas is a fixed-size grid of terminal cells. Later draws overwrite
// earlier ones, so a panel being dragged is painted last to sit on top.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{text: " "}
		}
		c.cells[y] = row
	}
	return c
}

// Width returns the canvas width in cells
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) set(x, y int, text string, ink Ink) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	// Overwriting half of a wide rune blanks the other half
	if c.cells[y][x].text == "" && x > 0 {
		c.cells[y][x-1] = cell{text: " ", ink: c.cells[y][x-1].ink}
	}
	if x+1 < c.width && c.cells[y][x+1].text == "" {
		c.cells[y][x+1] = cell{text: " ", ink: ink}
	}
	c.cells[y][x] = cell{text: text, ink: ink}
}

// Text writes s at (x, y), clipped to maxWidth cells and the canvas edge.
// It returns the number of cells written.
func (c *Canvas) Text(x, y int, s string, maxWidth int, ink Ink) int {
	if y < 0 || y >= c.height || maxWidth <= 0 {
		return 0
	}
	if room := c.width - x; room < maxWidth {
		maxWidth = room
	}
	s = runewidth.Truncate(s, maxWidth, "…")
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > x+maxWidth {
			break
		}
		c.set(col, y, string(r), ink)
		if w == 2 {
			c.set(col+1, y, "", ink)
		}
		col += w
	}
	return col - x
}

// Fill paints a rectangle with spaces
func (c *Canvas) Fill(x, y, width, height int, ink Ink) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.set(col, row, " ", ink)
		}
	}
}

// Box draws a rectangle outline. A heavy outline marks the focused panel.
func (c *Canvas) Box(x, y, width, height int, heavy bool, ink Ink) {
	if width < 2 || height < 2 {
		return
	}
	h, v, tl, tr, bl, br := "─", "│", "┌", "┐", "└", "┘"
	if heavy {
		h, v, tl, tr, bl, br = "━", "┃", "┏", "┓", "┗", "┛"
	}
	right, bottom := x+width-1, y+height-1
	for col := x + 1; col < right; col++ {
		c.set(col, y, h, ink)
		c.set(col, bottom, h, ink)
	}
	for row := y + 1; row < bottom; row++ {
		c.set(x, row, v, ink)
		c.set(right, row, v, ink)
	}
	c.set(x, y, tl, ink)
	c.set(right, y, tr, ink)
	c.set(x, bottom, bl, ink)
	c.set(right, bottom, br, ink)
}

// Lines returns the canvas rows without styling
func (c *Canvas) Lines() []string {
	out := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteString(cl.text)
		}
		out[y] = b.String()
	}
	return out
}

// Render returns the styled canvas
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		ink := InkPlain
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if ink == InkPlain {
				b.WriteString(run.String())
			} else {
				b.WriteString(inkStyles[ink].Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.ink != ink {
				flush()
				ink = cl.ink
			}
			run.WriteString(cl.text)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
