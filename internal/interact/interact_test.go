package interact

import (
	"testing"

	"github.com/MikeBiancalana/widescreen/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGroup returns a store whose active group holds n tabs in order
func setupGroup(t *testing.T, n int) (*workspace.Store, string, []string) {
	t.Helper()
	store, err := workspace.NewStore(workspace.Options{})
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		_, err := store.OpenTab("https://example.com")
		require.NoError(t, err)
	}
	tabs := store.Tabs()
	groupID, ok := store.MergeIntoGroup(tabs[1].ID, tabs[0].ID)
	require.True(t, ok)
	for _, tab := range tabs[2:] {
		_, ok := store.MergeIntoGroup(tab.ID, tabs[0].ID)
		require.True(t, ok)
	}
	require.True(t, store.Activate(tabs[0].ID))

	g, _ := store.Group(groupID)
	return store, groupID, g.TabIDs
}

func TestDrag_SwapsPastHalfNeighbour(t *testing.T) {
	store, groupID, ids := setupGroup(t, 3)
	drag := NewDrag(store)

	require.True(t, drag.Begin(0, 100))
	assert.False(t, drag.Move(250, 900), "exactly half does not swap")
	assert.Equal(t, 150.0, drag.Offset().Offset)

	assert.True(t, drag.Move(251, 900))
	g, _ := store.Group(groupID)
	assert.Equal(t, []string{ids[1], ids[0], ids[2]}, g.TabIDs)
	assert.Equal(t, 1, drag.Index())
	assert.Equal(t, 0.0, drag.Offset().Offset, "gesture rebased after swap")
}

func TestDrag_RebaseAllowsSecondSwapInOneGesture(t *testing.T) {
	store, groupID, ids := setupGroup(t, 3)
	drag := NewDrag(store)

	require.True(t, drag.Begin(0, 100))
	require.True(t, drag.Move(260, 900))
	// 160px past the rebased start is past half of the next 300px panel
	require.True(t, drag.Move(420, 900))

	g, _ := store.Group(groupID)
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, g.TabIDs)
	assert.Equal(t, 2, drag.Index())

	// No neighbour on the right
	assert.False(t, drag.Move(900, 900))
	drag.End()
	assert.False(t, drag.Active())
	assert.Nil(t, drag.Offset())
}

func TestDrag_LeftwardAndRatiosFollow(t *testing.T) {
	store, groupID, ids := setupGroup(t, 3)
	require.True(t, store.SetSplitRatios(groupID, []float64{20, 30, 50}))
	drag := NewDrag(store)

	// Panel 2 drags left over panel 1, which is 300px wide at 1000px
	require.True(t, drag.Begin(2, 800))
	assert.False(t, drag.Move(651, 1000))
	assert.True(t, drag.Move(649, 1000))

	g, _ := store.Group(groupID)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, g.TabIDs)
	assert.Equal(t, []float64{20, 50, 30}, store.SplitRatios(groupID))
}

func TestDrag_BeginRequiresActiveGroup(t *testing.T) {
	store, err := workspace.NewStore(workspace.Options{})
	require.NoError(t, err)
	drag := NewDrag(store)

	assert.False(t, drag.Begin(0, 10))
	assert.False(t, drag.Move(500, 900))

	store2, _, _ := setupGroup(t, 2)
	drag = NewDrag(store2)
	assert.False(t, drag.Begin(2, 10), "index out of range")
}

func TestDrag_GroupDissolvedMidGesture(t *testing.T) {
	store, _, ids := setupGroup(t, 2)
	drag := NewDrag(store)
	require.True(t, drag.Begin(0, 0))

	require.True(t, store.UngroupTab(ids[1]))

	assert.False(t, drag.Move(800, 900))
	assert.False(t, drag.Active())
}

func TestResize_ClampsLeftToLeaveRightMinimum(t *testing.T) {
	store, groupID, _ := setupGroup(t, 2)
	resize := NewResize(store, 0)

	require.True(t, resize.Begin(groupID, 0, 500))
	require.True(t, resize.Move(1100, 1000))

	ratios := store.SplitRatios(groupID)
	require.Len(t, ratios, 2)
	assert.InDelta(t, 85, ratios[0], 1e-9)
	assert.InDelta(t, 15, ratios[1], 1e-9)
}

func TestResize_IncrementalDelta(t *testing.T) {
	store, groupID, _ := setupGroup(t, 2)
	resize := NewResize(store, MinPercent)

	require.True(t, resize.Begin(groupID, 0, 500))
	require.True(t, resize.Move(600, 1000))
	assert.InDeltaSlice(t, []float64{60, 40}, store.SplitRatios(groupID), 1e-9)

	// Same pointer position after the rebase applies no further delta
	require.True(t, resize.Move(600, 1000))
	assert.InDeltaSlice(t, []float64{60, 40}, store.SplitRatios(groupID), 1e-9)

	require.True(t, resize.Move(500, 1000))
	assert.InDeltaSlice(t, []float64{50, 50}, store.SplitRatios(groupID), 1e-9)
}

func TestResize_RejectsWhenRightWouldShrinkBelowMinimum(t *testing.T) {
	store, groupID, _ := setupGroup(t, 3)
	require.True(t, store.SetSplitRatios(groupID, []float64{20, 60, 20}))
	resize := NewResize(store, MinPercent)

	require.True(t, resize.Begin(groupID, 0, 0))
	// left clamps to 70, leaving 10 for the middle panel
	assert.False(t, resize.Move(500, 1000))
	assert.Equal(t, []float64{20, 60, 20}, store.SplitRatios(groupID))

	// A smaller move is still accepted from the unchanged start
	assert.True(t, resize.Move(200, 1000))
	assert.InDeltaSlice(t, []float64{40, 40, 20}, store.SplitRatios(groupID), 1e-9)
}

func TestResize_RejectsWhenMinimumCannotFitGroup(t *testing.T) {
	tests := []struct {
		name       string
		panels     int
		minPercent float64
	}{
		{"seven panels at the default minimum", 7, MinPercent},
		{"three panels at forty percent", 3, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, groupID, _ := setupGroup(t, tt.panels)
			resize := NewResize(store, tt.minPercent)

			require.True(t, resize.Begin(groupID, 0, 500))
			assert.False(t, resize.Move(501, 1000))
			assert.False(t, resize.Move(900, 1000))
			assert.Nil(t, store.SplitRatios(groupID), "ratios untouched")
		})
	}
}

func TestResize_NeverMovesAgainstPointer(t *testing.T) {
	store, groupID, _ := setupGroup(t, 3)
	require.True(t, store.SetSplitRatios(groupID, []float64{10, 45, 45}))
	resize := NewResize(store, MinPercent)

	require.True(t, resize.Begin(groupID, 0, 500))
	// Dragging left from below the minimum would clamp the panel wider
	assert.False(t, resize.Move(490, 1000))
	assert.Equal(t, []float64{10, 45, 45}, store.SplitRatios(groupID))

	// Dragging right grows it back to the minimum
	require.True(t, resize.Move(510, 1000))
	ratios := store.SplitRatios(groupID)
	assert.InDelta(t, MinPercent, ratios[0], 1e-9)
	assert.InDelta(t, 40, ratios[1], 1e-9)
}

func TestResize_MinimumOnTheLeft(t *testing.T) {
	store, groupID, _ := setupGroup(t, 3)
	resize := NewResize(store, MinPercent)

	require.True(t, resize.Begin(groupID, 1, 600))
	require.True(t, resize.Move(0, 900))

	ratios := store.SplitRatios(groupID)
	assert.InDelta(t, 15, ratios[1], 1e-9)
	assert.InDelta(t, 100.0/3+100.0/3-15, ratios[2], 1e-9)
	for _, r := range ratios {
		assert.GreaterOrEqual(t, r, MinPercent-1e-9)
	}
}

func TestResize_BeginValidatesHandle(t *testing.T) {
	store, groupID, _ := setupGroup(t, 2)
	resize := NewResize(store, MinPercent)

	assert.False(t, resize.Begin(groupID, 1, 0), "no boundary right of the last panel")
	assert.False(t, resize.Begin("gone", 0, 0))

	require.True(t, resize.Begin(groupID, 0, 0))
	assert.Nil(t, store.SplitRatios(groupID), "equal split until the first accepted tick")
	require.True(t, resize.Move(100, 1000))
	assert.InDelta(t, 60.0, store.SplitRatios(groupID)[0], 1e-9, "ticks commit directly")

	resize.End()
	assert.False(t, resize.Active())
	assert.False(t, resize.Move(200, 1000))
}
