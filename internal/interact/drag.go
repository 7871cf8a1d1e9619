// Package interact turns continuous pointer gestures on split panels into
// discrete Store mutations.
package interact

import (
	"math"

	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

// SwapThreshold is the fraction of the neighbouring panel's width a dragged
// panel must travel before the two swap places.
const SwapThreshold = 0.5

// Panels is the part of the Store the controllers mutate
type Panels interface {
	ActiveGroup() (models.Group, bool)
	Group(id string) (models.Group, bool)
	SplitRatios(groupID string) []float64
	ReorderWithinGroup(groupID string, from, to int) bool
	SetSplitRatios(groupID string, ratios []float64) bool
}

// Drag reorders the panels of the active group by dragging their headers.
// It is not safe for concurrent use.
type Drag struct {
	panels  Panels
	active  bool
	groupID string
	index   int
	startX  int
	offset  int
}

// NewDrag creates a drag controller over panels
func NewDrag(panels Panels) *Drag {
	return &Drag{panels: panels}
}

// Begin starts dragging the panel at index of the active group
func (d *Drag) Begin(index, pointerX int) bool {
	g, ok := d.panels.ActiveGroup()
	if !ok || index < 0 || index >= len(g.TabIDs) {
		return false
	}
	*d = Drag{panels: d.panels, active: true, groupID: g.ID, index: index, startX: pointerX}
	return true
}

// Move updates the live offset and swaps the dragged panel with its
// neighbour once it has travelled past half the neighbour's width. After a
// swap the gesture is rebased on the new position. It reports whether a
// swap was committed.
func (d *Drag) Move(pointerX, areaWidth int) bool {
	if !d.active {
		return false
	}
	g, ok := d.panels.Group(d.groupID)
	if !ok || d.index >= len(g.TabIDs) {
		d.End()
		return false
	}

	d.offset = pointerX - d.startX
	if d.offset == 0 {
		return false
	}

	adjacent := d.index - 1
	if d.offset > 0 {
		adjacent = d.index + 1
	}
	if adjacent < 0 || adjacent >= len(g.TabIDs) {
		return false
	}

	widths := geometry.PanelWidths(areaWidth, d.panels.SplitRatios(g.ID), len(g.TabIDs))
	if math.Abs(float64(d.offset)) <= widths[adjacent]*SwapThreshold {
		return false
	}
	if !d.panels.ReorderWithinGroup(g.ID, d.index, adjacent) {
		return false
	}

	d.index = adjacent
	d.startX = pointerX
	d.offset = 0
	return true
}

// End finishes the gesture without further mutation
func (d *Drag) End() {
	*d = Drag{panels: d.panels}
}

// Active reports whether a drag is in progress
func (d *Drag) Active() bool {
	return d.active
}

// Index returns the current position of the dragged panel
func (d *Drag) Index() int {
	return d.index
}

// Offset returns the live displacement for the layout, or nil when idle
func (d *Drag) Offset() *geometry.DragOffset {
	if !d.active {
		return nil
	}
	return &geometry.DragOffset{Index: d.index, Offset: float64(d.offset)}
}
