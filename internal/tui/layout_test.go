package tui

import (
	"testing"

	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

func TestCellChrome(t *testing.T) {
	open := CellChrome(true)
	if open.SidebarWidth != CellSidebarWidth {
		t.Errorf("Expected sidebar width %d, got %d", CellSidebarWidth, open.SidebarWidth)
	}
	if open.ToolbarHeight != 4 {
		t.Errorf("Expected toolbar height 4 (tab strip + address bar), got %d", open.ToolbarHeight)
	}
	if closed := CellChrome(false); closed.SidebarWidth != 0 {
		t.Errorf("Expected closed sidebar to take no space, got %d", closed.SidebarWidth)
	}
}

func TestViewport(t *testing.T) {
	if got := Viewport(120, 40); got != (models.Size{Width: 120, Height: 39}) {
		t.Errorf("Expected status bar excluded, got %+v", got)
	}
	if got := Viewport(10, 0); got.Height != 0 {
		t.Errorf("Expected non-negative height, got %d", got.Height)
	}
}

// splitInput is a two-panel group on a 120x39 viewport: panels of 48 cells
// at x=24 and x=73, separated by a two-cell gap
func splitInput() geometry.Input {
	return geometry.Input{
		Tabs: []models.Tab{
			{ID: "a", SurfaceID: "sa", URL: "https://a.example", GroupID: "g"},
			{ID: "b", SurfaceID: "sb", URL: models.BlankURL, GroupID: "g"},
		},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a", "b"}}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 120, Height: 39},
		Chrome:      CellChrome(true),
	}
}

func TestPanels_Split(t *testing.T) {
	in := splitInput()
	panels := Panels(in, geometry.Layout(in))

	if len(panels) != 2 {
		t.Fatalf("Expected 2 panels, got %d", len(panels))
	}
	want := []models.Rect{
		{X: 24, Y: 5, Width: 47, Height: 34},
		{X: 73, Y: 5, Width: 47, Height: 34},
	}
	for i, p := range panels {
		if !p.Split {
			t.Errorf("Panel %d: expected split", i)
		}
		if p.Rect != want[i] {
			t.Errorf("Panel %d: expected %+v, got %+v", i, want[i], p.Rect)
		}
	}
}

func TestPanels_SingleBlankTab(t *testing.T) {
	in := geometry.Input{
		Tabs:        []models.Tab{{ID: "a", SurfaceID: "sa", URL: models.BlankURL}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 120, Height: 39},
		Chrome:      CellChrome(false),
	}
	panels := Panels(in, geometry.Layout(in))

	if len(panels) != 1 {
		t.Fatalf("Expected 1 panel, got %d", len(panels))
	}
	if want := (models.Rect{X: 0, Y: 4, Width: 120, Height: 35}); panels[0].Rect != want {
		t.Errorf("Expected blank tab slot %+v, got %+v", want, panels[0].Rect)
	}
}

func TestLocate(t *testing.T) {
	in := splitInput()
	panels := Panels(in, geometry.Layout(in))
	chrome := in.Chrome

	tests := []struct {
		name   string
		x, y   int
		region Region
		index  int
		handle int
	}{
		{"tab strip", 30, 0, RegionTabStrip, 30, -1},
		{"address bar", 50, 2, RegionAddressBar, -1, -1},
		{"sidebar row", 5, 6, RegionSidebar, 2, -1},
		{"first panel header", 30, 4, RegionPanelHeader, 0, -1},
		{"second panel page", 80, 20, RegionPage, 1, -1},
		{"gap is a handle", 71, 20, RegionPage, -1, 0},
		{"gap second cell", 72, 20, RegionPage, -1, 0},
		{"status bar", 50, 39, RegionStatus, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Locate(tt.x, tt.y, 40, chrome, panels)
			if hit.Region != tt.region || hit.Index != tt.index || hit.Handle != tt.handle {
				t.Errorf("Expected {%v %d %d}, got %+v", tt.region, tt.index, tt.handle, hit)
			}
		})
	}
}
