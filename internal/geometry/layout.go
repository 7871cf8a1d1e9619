package geometry

import (
	"math"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

// Chrome holds the fixed decorations around the page surfaces
type Chrome struct {
	SidebarWidth      int // 0 when the sidebar is closed
	ToolbarHeight     int // Tab strip and address bar
	PanelHeaderHeight int // Per-panel address bar shown in split view
	BorderWidth       int // Inset on each inner edge between panels
}

// DefaultChrome matches the desktop shell: 180px sidebar, 120px toolbar,
// 40px panel headers and 4px panel borders.
func DefaultChrome() Chrome {
	return Chrome{
		SidebarWidth:      180,
		ToolbarHeight:     120,
		PanelHeaderHeight: 40,
		BorderWidth:       4,
	}
}

// DragOffset is the live horizontal displacement of the panel being dragged
type DragOffset struct {
	Index  int
	Offset float64
}

// Input is everything the layout depends on. Layout never reads anything else.
type Input struct {
	Tabs        []models.Tab
	Groups      []models.Group
	SplitRatios models.SplitRatios
	ActiveTabID string
	Viewport    models.Size
	Chrome      Chrome
	Drag        *DragOffset

	// Obscured hides every surface, e.g. while a modal dialog covers the page area
	Obscured bool
}

// ContentRect returns the area a single ungrouped tab occupies
func ContentRect(viewport models.Size, chrome Chrome) models.Rect {
	return models.Rect{
		X:      chrome.SidebarWidth,
		Y:      chrome.ToolbarHeight,
		Width:  nonNegative(viewport.Width - chrome.SidebarWidth),
		Height: nonNegative(viewport.Height - chrome.ToolbarHeight),
	}
}

// PanelArea returns the area shared by the panels of a split group
func PanelArea(viewport models.Size, chrome Chrome) models.Rect {
	top := chrome.ToolbarHeight + chrome.PanelHeaderHeight
	return models.Rect{
		X:      chrome.SidebarWidth,
		Y:      top,
		Width:  nonNegative(viewport.Width - chrome.SidebarWidth),
		Height: nonNegative(viewport.Height - top),
	}
}

// ActiveGroup returns the group driving the split layout, if any. Groups
// with fewer than two members never split the viewport.
func ActiveGroup(tabs []models.Tab, groups []models.Group, activeTabID string) (models.Group, bool) {
	var groupID string
	for _, t := range tabs {
		if t.ID == activeTabID {
			groupID = t.GroupID
			break
		}
	}
	if groupID == "" {
		return models.Group{}, false
	}
	for _, g := range groups {
		if g.ID == groupID && len(g.TabIDs) >= 2 {
			return g, true
		}
	}
	return models.Group{}, false
}

// PanelWidths returns the pixel width of each of n panels sharing width.
// Ratios that do not describe n panels fall back to an equal split.
func PanelWidths(width int, ratios []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if models.ValidRatios(ratios, n) {
		for i, r := range ratios {
			out[i] = float64(width) * r / 100
		}
		return out
	}
	slice := float64(width / n)
	for i := range out {
		out[i] = slice
	}
	return out
}

// Layout maps the tab model and window state to one rectangle per tab.
// It is a pure function of its input.
func Layout(in Input) map[string]models.Rect {
	rects := make(map[string]models.Rect, len(in.Tabs))
	content := ContentRect(in.Viewport, in.Chrome)
	hidden := content
	hidden.Height = 0

	group, split := ActiveGroup(in.Tabs, in.Groups, in.ActiveTabID)

	var panels map[string]models.Rect
	if split {
		panels = splitPanels(group, in.SplitRatios[group.ID], in.Viewport, in.Chrome, in.Drag)
	}

	for _, t := range in.Tabs {
		var r models.Rect
		if p, ok := panels[t.ID]; ok {
			r = p
		} else if !split && t.ID == in.ActiveTabID {
			r = content
		} else {
			r = hidden
		}
		if t.IsBlank() || in.Obscured {
			r.Height = 0
		}
		rects[t.ID] = r
	}
	return rects
}

// splitPanels computes side-by-side slices for every member of group
func splitPanels(group models.Group, ratios []float64, viewport models.Size, chrome Chrome, drag *DragOffset) map[string]models.Rect {
	area := PanelArea(viewport, chrome)
	n := len(group.TabIDs)
	widths := PanelWidths(area.Width, ratios, n)

	out := make(map[string]models.Rect, n)
	x := 0.0
	for i, id := range group.TabIDs {
		pos := x
		x += widths[i]
		if drag != nil && drag.Index == i {
			pos += drag.Offset
		}

		leftInset, rightInset := chrome.BorderWidth, chrome.BorderWidth
		if i == 0 {
			leftInset = 0
		}
		if i == n-1 {
			rightInset = 0
		}

		out[id] = models.Rect{
			X:      int(math.Round(pos)) + leftInset + area.X,
			Y:      area.Y,
			Width:  nonNegative(int(math.Round(widths[i])) - leftInset - rightInset),
			Height: area.Height,
		}
	}
	return out
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
