package tui

import (
	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/tui/components"
)

// Terminal chrome in cells. The layout engine works in abstract units, so
// the terminal front-end hands it cells instead of pixels.
const (
	TabStripHeight   = 1
	StatusHeight     = 1
	CellSidebarWidth = 24
	CellPanelHeader  = 1
	CellBorderWidth  = 1
)

// CellChrome returns the chrome of the terminal front-end
func CellChrome(sidebarOpen bool) geometry.Chrome {
	c := geometry.Chrome{
		ToolbarHeight:     TabStripHeight + components.AddressBarHeight,
		PanelHeaderHeight: CellPanelHeader,
		BorderWidth:       CellBorderWidth,
	}
	if sidebarOpen {
		c.SidebarWidth = CellSidebarWidth
	}
	return c
}

// Viewport returns the part of the terminal the layout engine manages:
// everything above the status bar
func Viewport(termWidth, termHeight int) models.Size {
	h := termHeight - StatusHeight
	if h < 0 {
		h = 0
	}
	return models.Size{Width: termWidth, Height: h}
}

// Region names the part of the screen under a cell
type Region int

const (
	RegionNone Region = iota
	RegionTabStrip
	RegionAddressBar
	RegionSidebar
	RegionPanelHeader
	RegionPage
	RegionStatus
)

// Hit is the result of locating a cell on screen
type Hit struct {
	Region Region
	Index  int // Tab strip index, sidebar row, or panel index; -1 if none
	Handle int // Boundary right of panel Handle when on a gap; -1 otherwise
}

// Panel is one visible page slot in screen cells
type Panel struct {
	TabID string
	Rect  models.Rect // Page area, below the panel header when split
	Split bool
}

// Panels returns the visible page slots in left-to-right order. Blank
// tabs have hidden surfaces, so their slot is rebuilt from the rectangle's
// horizontal extent and the page area's vertical extent.
func Panels(in geometry.Input, rects map[string]models.Rect) []Panel {
	group, split := geometry.ActiveGroup(in.Tabs, in.Groups, in.ActiveTabID)
	if !split {
		r := geometry.ContentRect(in.Viewport, in.Chrome)
		return []Panel{{TabID: in.ActiveTabID, Rect: r}}
	}

	area := geometry.PanelArea(in.Viewport, in.Chrome)
	out := make([]Panel, 0, len(group.TabIDs))
	for _, id := range group.TabIDs {
		r := rects[id]
		r.Y = area.Y
		r.Height = area.Height
		out = append(out, Panel{TabID: id, Rect: r, Split: true})
	}
	return out
}

// Locate maps a terminal cell to the screen region beneath it
func Locate(x, y int, termHeight int, chrome geometry.Chrome, panels []Panel) Hit {
	hit := Hit{Region: RegionNone, Index: -1, Handle: -1}
	switch {
	case y >= termHeight-StatusHeight:
		hit.Region = RegionStatus
		return hit
	case y < TabStripHeight:
		hit.Region = RegionTabStrip
		hit.Index = x
		return hit
	case y < chrome.ToolbarHeight:
		hit.Region = RegionAddressBar
		return hit
	case x < chrome.SidebarWidth:
		hit.Region = RegionSidebar
		hit.Index = y - chrome.ToolbarHeight
		return hit
	}

	split := len(panels) > 0 && panels[0].Split
	if split && y < chrome.ToolbarHeight+chrome.PanelHeaderHeight {
		hit.Region = RegionPanelHeader
	} else {
		hit.Region = RegionPage
	}

	for i, p := range panels {
		if x >= p.Rect.X && x < p.Rect.Right() {
			hit.Index = i
			return hit
		}
		if split && i+1 < len(panels) && x >= p.Rect.Right() && x < panels[i+1].Rect.X {
			hit.Handle = i
			return hit
		}
	}
	return hit
}
