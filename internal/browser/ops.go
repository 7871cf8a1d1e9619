package browser

import (
	"errors"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

// ErrUnknownTab is returned for operations on a tab id that does not exist
var ErrUnknownTab = errors.New("unknown tab")

// NewTab opens a tab for address bar input, or a blank tab for empty input,
// and activates it
func (b *Browser) NewTab(input string) (models.Tab, error) {
	target := NormalizeURL(input, b.settings.SearchURL())
	t, err := b.store.OpenTab(target)
	b.commit()
	return t, err
}

// CloseTab closes a tab. The last tab is never closed.
func (b *Browser) CloseTab(id string) (bool, error) {
	ok, err := b.store.CloseTab(id)
	if ok {
		b.commit()
	}
	return ok, err
}

// CloseActiveTab closes the active tab
func (b *Browser) CloseActiveTab() (bool, error) {
	return b.CloseTab(b.store.ActiveTabID())
}

// DuplicateTab opens a copy of a tab next to it
func (b *Browser) DuplicateTab(id string) (models.Tab, bool, error) {
	t, ok, err := b.store.DuplicateTab(id)
	if ok {
		b.commit()
	}
	return t, ok, err
}

// TogglePin flips the pinned flag of a tab
func (b *Browser) TogglePin(id string) {
	if _, ok := b.store.Tab(id); !ok {
		return
	}
	b.store.TogglePin(id)
	b.commit()
}

// Merge drops tab dragged onto tab target, grouping them
func (b *Browser) Merge(draggedID, targetID string) (string, bool) {
	groupID, ok := b.store.MergeIntoGroup(draggedID, targetID)
	if ok {
		b.commit()
	}
	return groupID, ok
}

// DropTabOnGroup adds a tab to an existing group
func (b *Browser) DropTabOnGroup(tabID, groupID string) bool {
	return b.committed(b.store.DropTabOnGroup(tabID, groupID))
}

// DropGroupOnTab adds a tab to a dragged group
func (b *Browser) DropGroupOnTab(groupID, tabID string) bool {
	return b.committed(b.store.DropGroupOnTab(groupID, tabID))
}

// MergeGroups appends every member of one group to another
func (b *Browser) MergeGroups(draggedGroupID, targetGroupID string) bool {
	return b.committed(b.store.MergeGroups(draggedGroupID, targetGroupID))
}

// Ungroup takes a tab out of its group
func (b *Browser) Ungroup(id string) bool {
	return b.committed(b.store.UngroupTab(id))
}

// CloseGroup closes a group and returns the undo token and window for the
// front-end to schedule expiry with
func (b *Browser) CloseGroup(id string) (token uint64, window time.Duration, err error) {
	ok, err := b.store.CloseGroup(id)
	if !ok {
		return 0, 0, err
	}
	b.commit()
	token, window, _ = b.store.PendingUndo()
	return token, window, err
}

// UndoCloseGroup restores the last closed group while its window is open
func (b *Browser) UndoCloseGroup() (bool, error) {
	ok, err := b.store.UndoCloseGroup()
	if ok {
		b.commit()
	}
	return ok, err
}

// ExpireUndo ends the undo window identified by token
func (b *Browser) ExpireUndo(token uint64) {
	b.store.ExpireUndo(token)
}

// RenameGroup renames a group; blank names are ignored
func (b *Browser) RenameGroup(id, name string) bool {
	return b.committed(b.store.RenameGroup(id, name))
}

// ToggleGroupCollapse folds or unfolds a group in the sidebar
func (b *Browser) ToggleGroupCollapse(id string) bool {
	return b.committed(b.store.ToggleGroupCollapse(id))
}

// Reorder moves a panel within a group
func (b *Browser) Reorder(groupID string, from, to int) bool {
	return b.committed(b.store.ReorderWithinGroup(groupID, from, to))
}

// SetSplitRatios stores custom ratios for a group
func (b *Browser) SetSplitRatios(groupID string, ratios []float64) bool {
	return b.committed(b.store.SetSplitRatios(groupID, ratios))
}

// ResetSplitRatios returns a group to an equal split
func (b *Browser) ResetSplitRatios(groupID string) {
	if _, ok := b.store.Group(groupID); !ok {
		return
	}
	b.store.ResetSplitRatios(groupID)
	b.commit()
}

// Activate makes a tab active
func (b *Browser) Activate(id string) bool {
	return b.committed(b.store.Activate(id))
}

// ActivateIndex activates the tab at a strip position
func (b *Browser) ActivateIndex(i int) bool {
	return b.committed(b.store.ActivateIndex(i))
}

// ActivateNext cycles forward through the tab strip
func (b *Browser) ActivateNext() {
	b.store.ActivateNext()
	b.commit()
}

// ActivatePrev cycles backward through the tab strip
func (b *Browser) ActivatePrev() {
	b.store.ActivatePrev()
	b.commit()
}

// CloseTabsToRight closes every tab after id in strip order
func (b *Browser) CloseTabsToRight(id string) (int, error) {
	n, err := b.store.CloseTabsToRight(id)
	if n > 0 {
		b.commit()
	}
	return n, err
}

// CloseOtherTabs closes every tab except id
func (b *Browser) CloseOtherTabs(id string) (int, error) {
	n, err := b.store.CloseOtherTabs(id)
	if n > 0 {
		b.commit()
	}
	return n, err
}

// ReopenClosedTab reopens the most recently closed tab
func (b *Browser) ReopenClosedTab() (models.Tab, bool, error) {
	t, ok, err := b.store.ReopenClosedTab()
	if ok {
		b.commit()
	}
	return t, ok, err
}

// Navigate loads address bar input in a tab
func (b *Browser) Navigate(id, input string) (string, error) {
	t, ok := b.store.Tab(id)
	if !ok {
		return "", ErrUnknownTab
	}
	target := NormalizeURL(input, b.settings.SearchURL())
	if target == "" {
		return "", nil
	}
	b.store.SetURL(id, target)
	b.host.NavigateSurface(t.SurfaceID, target)
	b.commit()
	return target, nil
}

// GoBack steps a tab back in its page history
func (b *Browser) GoBack(id string) {
	if t, ok := b.store.Tab(id); ok {
		b.host.GoBack(t.SurfaceID)
	}
}

// GoForward steps a tab forward in its page history
func (b *Browser) GoForward(id string) {
	if t, ok := b.store.Tab(id); ok {
		b.host.GoForward(t.SurfaceID)
	}
}

// Reload reloads a tab
func (b *Browser) Reload(id string) {
	if t, ok := b.store.Tab(id); ok {
		b.host.Reload(t.SurfaceID)
	}
}

// ClearCache clears the shared page cache of every surface
func (b *Browser) ClearCache() error {
	if err := b.host.ClearCache(); err != nil {
		b.logger.Error("failed to clear cache", "error", err)
		return err
	}
	return nil
}

// BeginDrag starts dragging panel index of the active group
func (b *Browser) BeginDrag(index, pointerX int) bool {
	if b.resize.Active() || !b.drag.Begin(index, pointerX) {
		return false
	}
	b.gestureCommitted = false
	return true
}

// DragTo moves the dragged panel. Every pointer move re-lays-out so the
// panel follows the pointer; a committed swap is persisted when the drag
// ends.
func (b *Browser) DragTo(pointerX int) bool {
	if !b.drag.Active() {
		return false
	}
	swapped := b.drag.Move(pointerX, b.panelWidth())
	b.gestureCommitted = b.gestureCommitted || swapped
	b.relayout()
	return swapped
}

// EndDrag finishes a drag and snaps the panel into its slot
func (b *Browser) EndDrag() {
	if !b.drag.Active() {
		return
	}
	b.drag.End()
	b.endGesture()
}

// Dragging reports whether a panel drag is in progress
func (b *Browser) Dragging() bool {
	return b.drag.Active()
}

// BeginResize grabs the boundary right of panel handle in the active group
func (b *Browser) BeginResize(handle, pointerX int) bool {
	if b.drag.Active() {
		return false
	}
	g, ok := b.store.ActiveGroup()
	if !ok || !b.resize.Begin(g.ID, handle, pointerX) {
		return false
	}
	b.gestureCommitted = false
	return true
}

// ResizeTo moves the grabbed boundary
func (b *Browser) ResizeTo(pointerX int) bool {
	if !b.resize.Active() {
		return false
	}
	changed := b.resize.Move(pointerX, b.panelWidth())
	b.gestureCommitted = b.gestureCommitted || changed
	if changed {
		b.relayout()
	}
	return changed
}

// EndResize releases the boundary
func (b *Browser) EndResize() {
	if !b.resize.Active() {
		return
	}
	b.resize.End()
	b.endGesture()
}

// Resizing reports whether a boundary is being dragged
func (b *Browser) Resizing() bool {
	return b.resize.Active()
}

func (b *Browser) endGesture() {
	if b.gestureCommitted {
		b.gestureCommitted = false
		b.commit()
		return
	}
	b.relayout()
}

func (b *Browser) panelWidth() int {
	return geometry.PanelArea(b.viewport, b.chrome).Width
}

func (b *Browser) committed(ok bool) bool {
	if ok {
		b.commit()
	}
	return ok
}
