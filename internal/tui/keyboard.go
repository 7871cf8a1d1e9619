package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/tui/components"
)

// Keyboard Handlers
//
// handleKeyPress routes to a handler for the current state: an open
// overlay, the focused address bar, or normal mode.

// NudgePercent is how far < and > move a split boundary
const NudgePercent = 5

// PickerLimit caps the rows loaded into history and bookmark pickers
const PickerLimit = 100

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	if m.overlay != OverlayNone {
		return m.handleOverlayKeys(msg)
	}

	if m.addressBar.IsFocused() {
		return m.handleAddressBarKeys(msg)
	}

	return m.handleNormalModeKeys(msg)
}

// handleQuit handles quit operations
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.browser.LogStats()
	return m, tea.Quit
}

// handleAddressBarKeys handles keyboard input while the address bar is focused
func (m *Model) handleAddressBarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := m.submitAddressBar()
		m.resetAddressBar()
		return m, cmd

	case "esc":
		m.resetAddressBar()
		return m, nil

	default:
		var cmd tea.Cmd
		m.addressBar, cmd = m.addressBar.Update(msg)
		return m, cmd
	}
}

func (m *Model) resetAddressBar() {
	m.addressBar.Clear()
	m.addressBar.Blur()
	m.addressBar.SetMode(components.ModeInactive)
	m.renameGroupID = ""
	m.refresh()
}

// focusAddressBar opens the address bar in mode, prefilled with value
func (m *Model) focusAddressBar(mode components.EntryMode, value string) tea.Cmd {
	m.addressBar.SetMode(mode)
	m.addressBar.SetValue(value)
	return m.addressBar.Focus()
}

// submitAddressBar acts on the entered text according to the bar's mode
func (m *Model) submitAddressBar() tea.Cmd {
	value := strings.TrimSpace(m.addressBar.Value())
	mode := m.addressBar.Mode()
	logger.Debug("tui: address bar submitted", "mode", string(mode), "value", value)

	switch mode {
	case components.ModeNavigate:
		if value == "" {
			return nil
		}
		_, err := m.browser.Navigate(m.browser.Store().ActiveTabID(), value)
		return m.setError(err)

	case components.ModeNewTab:
		_, err := m.browser.NewTab(value)
		return m.setError(err)

	case components.ModeRename:
		if m.renameGroupID != "" {
			m.browser.RenameGroup(m.renameGroupID, value)
		}
		return nil

	case components.ModeSave:
		if value == "" {
			return nil
		}
		return m.saveSession(value)
	}
	return nil
}

// handleNormalModeKeys handles keyboard input in normal mode
func (m *Model) handleNormalModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetError(nil)
	m.lastError = nil

	b := m.browser
	store := b.Store()
	active := store.ActiveTab()
	group, grouped := store.Group(active.GroupID)

	k := m.keys
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, k.Quit):
		return m.handleQuit()

	// Tabs
	case key.Matches(msg, k.NewTab):
		cmd = m.focusAddressBar(components.ModeNewTab, "")
	case key.Matches(msg, k.CloseTab):
		_, err := b.CloseActiveTab()
		cmd = m.setError(err)
	case key.Matches(msg, k.NextTab):
		b.ActivateNext()
	case key.Matches(msg, k.PrevTab):
		b.ActivatePrev()
	case key.Matches(msg, k.GoToTab):
		s := msg.String()
		b.ActivateIndex(int(s[len(s)-1] - '1'))
	case key.Matches(msg, k.Duplicate):
		_, _, err := b.DuplicateTab(active.ID)
		cmd = m.setError(err)
	case key.Matches(msg, k.Pin):
		b.TogglePin(active.ID)
	case key.Matches(msg, k.Reopen):
		if _, ok, err := b.ReopenClosedTab(); err != nil {
			cmd = m.setError(err)
		} else if !ok {
			cmd = m.showToast("No recently closed tabs")
		}
	case key.Matches(msg, k.CloseOthers):
		n, err := b.CloseOtherTabs(active.ID)
		cmd = m.closedToast(n, err)
	case key.Matches(msg, k.CloseToRight):
		n, err := b.CloseTabsToRight(active.ID)
		cmd = m.closedToast(n, err)
	case key.Matches(msg, k.FindTab):
		cmd = m.openOverlay(OverlayTabs)

	// Groups
	case key.Matches(msg, k.Merge):
		cmd = m.mergeWithLeft(active)
	case key.Matches(msg, k.Ungroup):
		b.Ungroup(active.ID)
	case key.Matches(msg, k.CloseGroup):
		if grouped {
			cmd = m.closeGroup(group)
		}
	case key.Matches(msg, k.Undo):
		ok, err := b.UndoCloseGroup()
		if ok {
			m.undoToken = 0
			m.statusBar.SetToast("")
		}
		cmd = m.setError(err)
	case key.Matches(msg, k.RenameGroup):
		if grouped {
			m.renameGroupID = group.ID
			cmd = m.focusAddressBar(components.ModeRename, group.Name)
		}
	case key.Matches(msg, k.CollapseGroup):
		if grouped {
			b.ToggleGroupCollapse(group.ID)
		}
	case key.Matches(msg, k.MovePanelLeft, k.MovePanelRight):
		if grouped {
			from := group.IndexOf(active.ID)
			to := from - 1
			if key.Matches(msg, k.MovePanelRight) {
				to = from + 1
			}
			b.Reorder(group.ID, from, to)
		}
	case key.Matches(msg, k.Narrow):
		m.nudgeSplit(-1)
	case key.Matches(msg, k.Widen):
		m.nudgeSplit(1)
	case key.Matches(msg, k.EqualSplit):
		if grouped {
			b.ResetSplitRatios(group.ID)
		}

	// Pages
	case key.Matches(msg, k.Address):
		cmd = m.focusAddressBar(components.ModeNavigate, displayURL(active))
	case key.Matches(msg, k.Reload):
		b.Reload(active.ID)
	case key.Matches(msg, k.Back):
		b.GoBack(active.ID)
	case key.Matches(msg, k.Forward):
		b.GoForward(active.ID)
	case key.Matches(msg, k.ClearCache):
		if err := b.ClearCache(); err != nil {
			cmd = m.setError(err)
		} else {
			cmd = m.showToast("Cache cleared")
		}
	case key.Matches(msg, k.CopyURL):
		cmd = m.copyURL(active)

	// Library
	case key.Matches(msg, k.Bookmark):
		bm, err := b.BookmarkActive(m.bookmarks, "")
		if err != nil {
			cmd = m.setError(err)
		} else {
			cmd = m.showToast(fmt.Sprintf("Bookmarked %s", bm.Title))
		}
	case key.Matches(msg, k.BookmarkAll):
		folder, err := b.BookmarkAllTabs(m.bookmarks, "Tabs "+b.Now().Format("2006-01-02 15:04"))
		if err != nil {
			cmd = m.setError(err)
		} else {
			cmd = m.showToast(fmt.Sprintf("Bookmarked all tabs in %q", folder.Name))
		}
	case key.Matches(msg, k.Bookmarks):
		cmd = m.openOverlay(OverlayBookmarks)
	case key.Matches(msg, k.History):
		cmd = m.openOverlay(OverlayHistory)
	case key.Matches(msg, k.SaveSession):
		cmd = m.focusAddressBar(components.ModeSave, "")
	case key.Matches(msg, k.OpenSession):
		cmd = m.openOverlay(OverlaySessions)

	// Window
	case key.Matches(msg, k.ToggleSidebar):
		cmd = m.toggleSidebar()
	case key.Matches(msg, k.Help):
		cmd = m.openOverlay(OverlayHelp)

	default:
		return m, nil
	}

	m.refresh()
	return m, cmd
}

// displayURL is the address bar prefill for a tab; blank tabs start empty
func displayURL(t models.Tab) string {
	if t.IsBlank() {
		return ""
	}
	return t.URL
}

// copyURL puts a tab's address on the system clipboard
func (m *Model) copyURL(t models.Tab) tea.Cmd {
	if t.IsBlank() {
		return nil
	}
	if err := writeClipboard(t.URL); err != nil {
		return m.setError(fmt.Errorf("failed to copy address: %w", err))
	}
	return m.showToast("Copied " + t.URL)
}

func (m *Model) closedToast(n int, err error) tea.Cmd {
	if err != nil {
		return m.setError(err)
	}
	if n == 0 {
		return nil
	}
	return m.showToast(fmt.Sprintf("Closed %d tabs", n))
}

// mergeWithLeft groups the active tab with the tab before it in the strip,
// the keyboard form of dropping one tab onto another
func (m *Model) mergeWithLeft(active models.Tab) tea.Cmd {
	tabs := m.browser.Store().Tabs()
	for i, t := range tabs {
		if t.ID != active.ID {
			continue
		}
		if i == 0 {
			return m.showToast("No tab to the left to merge with")
		}
		m.browser.Merge(active.ID, tabs[i-1].ID)
		return nil
	}
	return nil
}

// closeGroup closes a group and schedules the end of its undo window
func (m *Model) closeGroup(group models.Group) tea.Cmd {
	token, window, err := m.browser.CloseGroup(group.ID)
	if err != nil {
		m.setError(err)
	}
	if token == 0 {
		return m.showToast("Cannot close the only tabs")
	}
	m.undoToken = token
	m.statusBar.SetToast(fmt.Sprintf("Closed %q · ctrl+z to undo", group.Name))
	return scheduleUndoExpiry(token, window)
}

// nudgeSplit widens (dir > 0) or narrows the active panel by moving the
// boundary on its right, or on its left for the last panel
func (m *Model) nudgeSplit(dir int) {
	store := m.browser.Store()
	g, ok := store.ActiveGroup()
	if !ok {
		return
	}
	idx := g.IndexOf(store.ActiveTabID())
	handle, sign := idx, dir
	if handle >= len(g.TabIDs)-1 {
		handle, sign = idx-1, -dir
	}

	width := geometry.PanelArea(m.browser.Viewport(), m.browser.Chrome()).Width
	step := width * NudgePercent / 100
	if step < 1 {
		step = 1
	}
	if m.browser.BeginResize(handle, 0) {
		m.browser.ResizeTo(sign * step)
		m.browser.EndResize()
	}
}

// openOverlay shows a modal and hides every surface beneath it
func (m *Model) openOverlay(kind Overlay) tea.Cmd {
	var cmd tea.Cmd
	switch kind {
	case OverlayTabs:
		m.picker = components.NewPicker("Tabs", "Search open tabs...")
	case OverlayHistory:
		m.picker = components.NewPicker("History", "Search history...")
	case OverlayBookmarks:
		m.picker = components.NewPicker("Bookmarks", "Search bookmarks...")
	case OverlaySessions:
		m.picker = components.NewPicker("Saved sessions", "Search sessions...")
	case OverlayHelp:
		m.picker = nil
	}
	m.overlay = kind
	m.browser.SetObscured(true)
	m.resize()
	if m.picker != nil {
		cmd = m.reloadPicker()
	}
	return cmd
}

func (m *Model) closeOverlay() {
	m.overlay = OverlayNone
	m.picker = nil
	m.browser.SetObscured(false)
	m.refresh()
}

// handleOverlayKeys handles keyboard input while a modal is open
func (m *Model) handleOverlayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay == OverlayHelp || m.picker == nil {
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || key.Matches(msg, m.keys.Help, m.keys.Quit) {
			m.closeOverlay()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return m, nil
	case "enter":
		item, ok := m.picker.Selected()
		kind := m.overlay
		m.closeOverlay()
		if !ok {
			return m, nil
		}
		cmd := m.openPicked(kind, item)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	var changed bool
	m.picker, cmd, changed = m.picker.Update(msg)
	if changed {
		cmd = tea.Batch(cmd, m.reloadPicker())
	}
	return m, cmd
}

// reloadPicker fills the picker for its query
func (m *Model) reloadPicker() tea.Cmd {
	query := m.picker.Query()
	var items []components.PickerItem

	switch m.overlay {
	case OverlayTabs:
		for _, t := range m.browser.SearchTabs(query) {
			items = append(items, components.PickerItem{Title: t.Title, Detail: t.URL, Value: t.ID})
		}

	case OverlayHistory:
		if m.history == nil {
			break
		}
		entries, err := m.history.Search(query, PickerLimit)
		if err != nil {
			return m.setError(err)
		}
		for _, h := range entries {
			items = append(items, components.PickerItem{Title: h.Title, Detail: h.URL, Value: h.URL})
		}

	case OverlayBookmarks:
		if m.bookmarks == nil {
			break
		}
		all, err := m.bookmarks.List("")
		if err != nil {
			return m.setError(err)
		}
		for _, bm := range all {
			items = append(items, components.PickerItem{Title: bm.Title, Detail: bm.URL, Value: bm.URL})
		}
		items = filterItems(items, query)

	case OverlaySessions:
		if m.saved == nil {
			break
		}
		sessions, err := m.saved.List()
		if err != nil {
			return m.setError(err)
		}
		for _, s := range sessions {
			items = append(items, components.PickerItem{
				Title:  s.Name,
				Detail: fmt.Sprintf("%d tabs · %s", len(s.Snapshot.Tabs), s.CreatedAt.Format("2006-01-02 15:04")),
				Value:  s.ID,
			})
		}
		items = filterItems(items, query)
	}

	m.picker.SetItems(items)
	return nil
}

// openPicked acts on a picker selection
func (m *Model) openPicked(kind Overlay, item components.PickerItem) tea.Cmd {
	switch kind {
	case OverlayTabs:
		m.browser.Activate(item.Value)
	case OverlayHistory, OverlayBookmarks:
		_, err := m.browser.NewTab(item.Value)
		return m.setError(err)
	case OverlaySessions:
		return m.loadSession(item.Value)
	}
	return nil
}

// pickerSource adapts picker items to fuzzy.Source
type pickerSource []components.PickerItem

func (s pickerSource) String(i int) string { return s[i].Title + " " + s[i].Detail }
func (s pickerSource) Len() int            { return len(s) }

// filterItems fuzzy-matches items against query, best match first
func filterItems(items []components.PickerItem, query string) []components.PickerItem {
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, pickerSource(items))
	out := make([]components.PickerItem, 0, len(matches))
	for _, match := range matches {
		out = append(out, items[match.Index])
	}
	return out
}
