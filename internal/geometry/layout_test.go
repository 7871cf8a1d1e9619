package geometry

import (
	"testing"

	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChrome() Chrome {
	return Chrome{SidebarWidth: 0, ToolbarHeight: 120, PanelHeaderHeight: 40, BorderWidth: 4}
}

func page(id, group string) models.Tab {
	return models.Tab{ID: id, SurfaceID: "s-" + id, URL: "https://" + id + ".example", GroupID: group}
}

func TestLayout_SingleActiveTabFillsContent(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", ""), page("b", "")},
		ActiveTabID: "b",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      Chrome{SidebarWidth: 180, ToolbarHeight: 120, PanelHeaderHeight: 40, BorderWidth: 4},
	}

	rects := Layout(in)

	assert.Equal(t, models.Rect{X: 180, Y: 120, Width: 820, Height: 680}, rects["b"])
	// Background tabs keep their geometry but are hidden
	assert.Equal(t, models.Rect{X: 180, Y: 120, Width: 820, Height: 0}, rects["a"])
}

func TestLayout_EqualSplitWithInsets(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g"), page("b", "g"), page("c", "")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a", "b"}}},
		ActiveTabID: "b",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      testChrome(),
	}

	rects := Layout(in)

	assert.Equal(t, models.Rect{X: 0, Y: 160, Width: 496, Height: 640}, rects["a"])
	assert.Equal(t, models.Rect{X: 504, Y: 160, Width: 496, Height: 640}, rects["b"])
	assert.True(t, rects["c"].Hidden())
}

func TestLayout_CustomRatios(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g"), page("b", "g"), page("c", "g")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a", "b", "c"}}},
		SplitRatios: models.SplitRatios{"g": {20, 30, 50}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      testChrome(),
	}

	rects := Layout(in)

	assert.Equal(t, 0, rects["a"].X)
	assert.Equal(t, 196, rects["a"].Width)
	assert.Equal(t, 204, rects["b"].X)
	assert.Equal(t, 292, rects["b"].Width)
	assert.Equal(t, 504, rects["c"].X)
	assert.Equal(t, 496, rects["c"].Width)
}

func TestLayout_MismatchedRatiosFallBackToEqual(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g"), page("b", "g"), page("c", "g")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a", "b", "c"}}},
		SplitRatios: models.SplitRatios{"g": {50, 50}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 900, Height: 800},
		Chrome:      testChrome(),
	}

	rects := Layout(in)

	assert.Equal(t, 296, rects["a"].Width)
	assert.Equal(t, 304, rects["b"].X)
	assert.Equal(t, 604, rects["c"].X)
}

func TestLayout_SingletonGroupDoesNotSplit(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a"}}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      testChrome(),
	}

	rects := Layout(in)
	assert.Equal(t, models.Rect{X: 0, Y: 120, Width: 1000, Height: 680}, rects["a"])
}

func TestLayout_BlankTabIsHidden(t *testing.T) {
	blank := page("a", "")
	blank.URL = models.BlankURL
	in := Input{
		Tabs:        []models.Tab{blank},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      testChrome(),
	}

	r := Layout(in)["a"]
	assert.Equal(t, 0, r.Height)
	assert.Equal(t, 1000, r.Width)
}

func TestLayout_DragOffsetShiftsOnlyDraggedPanel(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g"), page("b", "g")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a", "b"}}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      testChrome(),
		Drag:        &DragOffset{Index: 0, Offset: 120},
	}

	rects := Layout(in)
	assert.Equal(t, 120, rects["a"].X)
	assert.Equal(t, 496, rects["a"].Width)
	assert.Equal(t, 504, rects["b"].X)
}

func TestLayout_ObscuredHidesEverything(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "")},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 1000, Height: 800},
		Chrome:      testChrome(),
		Obscured:    true,
	}

	assert.True(t, Layout(in)["a"].Hidden())
}

func TestLayout_Deterministic(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g"), page("b", "g"), page("c", "g"), page("d", "")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"c", "a", "b"}}},
		SplitRatios: models.SplitRatios{"g": {33.3, 33.3, 33.4}},
		ActiveTabID: "b",
		Viewport:    models.Size{Width: 1367, Height: 911},
		Chrome:      DefaultChrome(),
		Drag:        &DragOffset{Index: 1, Offset: -37.5},
	}

	first := Layout(in)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, Layout(in))
	}
}

func TestLayout_TinyViewportNeverNegative(t *testing.T) {
	in := Input{
		Tabs:        []models.Tab{page("a", "g"), page("b", "g")},
		Groups:      []models.Group{{ID: "g", TabIDs: []string{"a", "b"}}},
		ActiveTabID: "a",
		Viewport:    models.Size{Width: 100, Height: 50},
		Chrome:      DefaultChrome(),
	}

	for id, r := range Layout(in) {
		assert.GreaterOrEqual(t, r.Width, 0, id)
		assert.GreaterOrEqual(t, r.Height, 0, id)
	}
}

func TestPanelWidths(t *testing.T) {
	assert.Equal(t, []float64{333, 333, 333}, PanelWidths(1000, nil, 3))
	assert.Equal(t, []float64{200, 800}, PanelWidths(1000, []float64{20, 80}, 2))
	assert.Nil(t, PanelWidths(1000, nil, 0))
}
