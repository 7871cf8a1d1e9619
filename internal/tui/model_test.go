package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/widescreen/internal/browser"
	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/host"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/sync"
	"github.com/MikeBiancalana/widescreen/internal/tui/components"
)

// newTestModel returns a model sized to a 120x40 terminal over an
// in-memory host. With the sidebar open the panel area is 96 cells wide.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	b, err := browser.New(browser.Options{Host: host.NewMemory(nil)})
	if err != nil {
		t.Fatalf("Failed to create browser: %v", err)
	}
	m := NewModel(b, Options{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	pumpEvents(m)
	return m
}

// pumpEvents delivers every queued host event through Update
func pumpEvents(m *Model) {
	for {
		select {
		case ev := <-m.browser.Events():
			m.Update(hostEventMsg{event: ev})
		default:
			return
		}
	}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// openTab opens a tab through the address bar the way a user would
func openTab(t *testing.T, m *Model, input string) models.Tab {
	t.Helper()
	m.Update(keyMsg(tea.KeyCtrlT))
	m.Update(runes(input))
	m.Update(keyMsg(tea.KeyEnter))
	pumpEvents(m)
	return m.browser.Store().ActiveTab()
}

// splitModel returns a model whose active group holds a blank tab on the
// left and go.dev on the right
func splitModel(t *testing.T) *Model {
	t.Helper()
	m := newTestModel(t)
	openTab(t, m, "go.dev")
	m.Update(alt('m'))

	g, ok := m.browser.Store().ActiveGroup()
	if !ok || len(g.TabIDs) != 2 {
		t.Fatalf("Expected a two-panel group, got %+v", g)
	}
	return m
}

func TestHandleWindowSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tooSmall      bool
	}{
		{"normal size", 120, 40, false},
		{"minimum size", 80, 24, false},
		{"too narrow", 79, 40, true},
		{"too short", 120, 23, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			updatedModel, _ := m.handleWindowSize(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			model := updatedModel.(*Model)

			if model.terminalTooSmall != tt.tooSmall {
				t.Errorf("Expected terminalTooSmall=%v, got %v", tt.tooSmall, model.terminalTooSmall)
			}
			want := models.Size{Width: tt.width, Height: tt.height - StatusHeight}
			if got := model.browser.Viewport(); got != want {
				t.Errorf("Expected viewport %+v, got %+v", want, got)
			}
		})
	}
}

func TestNewModel_UsesCellChrome(t *testing.T) {
	m := newTestModel(t)
	if got := m.browser.Chrome(); got != CellChrome(true) {
		t.Errorf("Expected cell chrome, got %+v", got)
	}
}

func TestView_TooSmall(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	if view := m.View(); !strings.Contains(view, "Terminal Too Small") {
		t.Errorf("Expected too-small message, got %q", view)
	}
}

func TestView_RendersTabsAndPage(t *testing.T) {
	m := newTestModel(t)
	openTab(t, m, "go.dev")

	view := m.View()
	if !strings.Contains(view, "go.dev") {
		t.Errorf("Expected view to contain the page title")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 40 {
		t.Errorf("Expected view to fill 40 lines, got %d", lines)
	}
}

func TestNewTab_FromAddressBar(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg(tea.KeyCtrlT))
	if m.addressBar.Mode() != components.ModeNewTab || !m.addressBar.IsFocused() {
		t.Fatalf("Expected focused address bar in new-tab mode, got mode %q", m.addressBar.Mode())
	}

	tab := openTab(t, m, "go.dev")
	if n := len(m.browser.Store().Tabs()); n != 2 {
		t.Errorf("Expected 2 tabs, got %d", n)
	}
	if tab.URL != "https://go.dev" {
		t.Errorf("Expected normalized url, got %q", tab.URL)
	}
	if tab.Title != "go.dev" {
		t.Errorf("Expected title from host event, got %q", tab.Title)
	}
	if m.addressBar.IsFocused() {
		t.Errorf("Expected address bar to blur after submit")
	}
}

func TestNavigate_FromAddressBar(t *testing.T) {
	m := newTestModel(t)

	m.Update(runes("/"))
	if m.addressBar.Mode() != components.ModeNavigate {
		t.Fatalf("Expected navigate mode, got %q", m.addressBar.Mode())
	}
	if m.addressBar.Value() != "" {
		t.Errorf("Expected blank tab to prefill nothing, got %q", m.addressBar.Value())
	}
	m.Update(runes("example.com"))
	m.Update(keyMsg(tea.KeyEnter))
	pumpEvents(m)

	tabs := m.browser.Store().Tabs()
	if len(tabs) != 1 || tabs[0].URL != "https://example.com" {
		t.Errorf("Expected the blank tab to navigate, got %+v", tabs)
	}
}

func TestAddressBar_EscCancels(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg(tea.KeyCtrlT))
	m.Update(runes("go.dev"))
	m.Update(keyMsg(tea.KeyEsc))

	if m.addressBar.IsFocused() || m.addressBar.Mode() != components.ModeInactive {
		t.Errorf("Expected address bar reset after esc")
	}
	if n := len(m.browser.Store().Tabs()); n != 1 {
		t.Errorf("Expected no new tab, got %d tabs", n)
	}
}

func TestMergeWithLeft(t *testing.T) {
	m := splitModel(t)
	store := m.browser.Store()

	g, _ := store.ActiveGroup()
	if g.TabIDs[1] != store.ActiveTabID() {
		t.Errorf("Expected the merged tab on the right, got %v", g.TabIDs)
	}
	if len(Panels(m.browser.Input(), m.browser.Rects())) != 2 {
		t.Errorf("Expected two panels after merge")
	}
}

func TestMergeWithLeft_FirstTab(t *testing.T) {
	m := newTestModel(t)
	m.Update(alt('m'))

	if !strings.Contains(m.statusBar.Toast(), "No tab to the left") {
		t.Errorf("Expected toast, got %q", m.statusBar.Toast())
	}
}

func TestCloseGroup_Undo(t *testing.T) {
	m := splitModel(t)
	openTab(t, m, "example.com")
	store := m.browser.Store()
	g := store.Groups()[0]
	m.browser.Activate(g.TabIDs[0])

	_, cmd := m.Update(alt('g'))
	if cmd == nil {
		t.Fatalf("Expected an undo expiry command")
	}
	if n := len(store.Tabs()); n != 1 {
		t.Fatalf("Expected 1 tab after closing the group, got %d", n)
	}
	if !strings.Contains(m.statusBar.Toast(), "ctrl+z to undo") {
		t.Errorf("Expected undo toast, got %q", m.statusBar.Toast())
	}

	m.Update(keyMsg(tea.KeyCtrlZ))
	if n := len(store.Tabs()); n != 3 {
		t.Errorf("Expected 3 tabs after undo, got %d", n)
	}
	if m.statusBar.Toast() != "" || m.undoToken != 0 {
		t.Errorf("Expected undo state cleared")
	}
}

func TestCloseGroup_Expiry(t *testing.T) {
	m := splitModel(t)
	openTab(t, m, "example.com")
	store := m.browser.Store()
	m.browser.Activate(store.Groups()[0].TabIDs[0])

	m.Update(alt('g'))
	token := m.undoToken
	if token == 0 {
		t.Fatalf("Expected an undo token")
	}

	m.Update(undoExpiredMsg{token: token})
	if m.statusBar.Toast() != "" {
		t.Errorf("Expected toast cleared on expiry, got %q", m.statusBar.Toast())
	}

	m.Update(keyMsg(tea.KeyCtrlZ))
	if n := len(store.Tabs()); n != 1 {
		t.Errorf("Expected undo to be gone after expiry, got %d tabs", n)
	}
}

func TestCloseGroup_OnlyTabs(t *testing.T) {
	m := splitModel(t)
	m.Update(alt('g'))

	if n := len(m.browser.Store().Tabs()); n != 2 {
		t.Errorf("Expected closing every tab to be refused, got %d tabs", n)
	}
	if m.undoToken != 0 {
		t.Errorf("Expected no undo token")
	}
}

func TestStaleUndoExpiry_KeepsToast(t *testing.T) {
	m := splitModel(t)
	openTab(t, m, "example.com")
	m.browser.Activate(m.browser.Store().Groups()[0].TabIDs[0])
	m.Update(alt('g'))

	m.Update(undoExpiredMsg{token: m.undoToken + 100})
	if m.statusBar.Toast() == "" {
		t.Errorf("Expected toast kept for a stale token")
	}
}

func TestNudgeSplit(t *testing.T) {
	m := splitModel(t)
	g, _ := m.browser.Store().ActiveGroup()

	// The active tab is the last panel, so > moves the left boundary left
	m.Update(runes(">"))
	ratios := m.browser.Store().SplitRatios(g.ID)
	if len(ratios) != 2 || ratios[1] <= 50 {
		t.Errorf("Expected the active panel to widen, got %v", ratios)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'='}, Alt: true})
	if ratios := m.browser.Store().SplitRatios(g.ID); ratios != nil {
		t.Errorf("Expected equal split after reset, got %v", ratios)
	}
}

func TestReorderKeys(t *testing.T) {
	m := splitModel(t)
	store := m.browser.Store()
	active := store.ActiveTabID()

	m.Update(runes("["))
	g, _ := store.ActiveGroup()
	if g.TabIDs[0] != active {
		t.Errorf("Expected active tab moved left, got %v", g.TabIDs)
	}
}

func TestTabsOverlay(t *testing.T) {
	m := newTestModel(t)
	openTab(t, m, "github.com")
	openTab(t, m, "go.dev")

	m.Update(keyMsg(tea.KeyCtrlF))
	if m.overlay != OverlayTabs {
		t.Fatalf("Expected tabs overlay, got %v", m.overlay)
	}
	if !m.browser.Obscured() {
		t.Errorf("Expected surfaces hidden under the overlay")
	}

	m.Update(runes("gthb"))
	items := m.picker.Items()
	if len(items) != 1 || items[0].Detail != "https://github.com" {
		t.Fatalf("Expected github to match, got %+v", items)
	}

	m.Update(keyMsg(tea.KeyEnter))
	if m.overlay != OverlayNone || m.browser.Obscured() {
		t.Errorf("Expected overlay closed and surfaces shown")
	}
	if got := m.browser.Store().ActiveTab().URL; got != "https://github.com" {
		t.Errorf("Expected github activated, got %q", got)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	m.Update(runes("?"))
	if m.overlay != OverlayHelp {
		t.Fatalf("Expected help overlay")
	}
	if !strings.Contains(m.View(), "undo close group") {
		t.Errorf("Expected key bindings in help view")
	}

	m.Update(keyMsg(tea.KeyEsc))
	if m.overlay != OverlayNone || m.browser.Obscured() {
		t.Errorf("Expected help closed")
	}
}

func TestOverlay_IgnoresMouse(t *testing.T) {
	m := splitModel(t)
	m.Update(runes("?"))

	m.Update(mouse(tea.MouseActionPress, 30, 4))
	if m.browser.Dragging() {
		t.Errorf("Expected no drag while an overlay is open")
	}
}

func TestMouse_DragPanelHeaderSwaps(t *testing.T) {
	m := splitModel(t)
	store := m.browser.Store()
	g, _ := store.ActiveGroup()
	left := g.TabIDs[0]

	m.Update(mouse(tea.MouseActionPress, 30, 4))
	if !m.browser.Dragging() {
		t.Fatalf("Expected a drag to start on the panel header")
	}
	if store.ActiveTabID() != left {
		t.Errorf("Expected pressed panel activated")
	}

	// Past half of the 48-cell neighbour
	m.Update(mouse(tea.MouseActionMotion, 55, 4))
	m.Update(mouse(tea.MouseActionRelease, 55, 4))

	g, _ = store.ActiveGroup()
	if g.TabIDs[1] != left {
		t.Errorf("Expected panels swapped, got %v", g.TabIDs)
	}
	if m.browser.Dragging() || m.press != nil {
		t.Errorf("Expected drag state cleared on release")
	}
}

func TestMouse_ResizeHandle(t *testing.T) {
	m := splitModel(t)
	g, _ := m.browser.Store().ActiveGroup()

	m.Update(mouse(tea.MouseActionPress, 71, 20))
	if !m.browser.Resizing() {
		t.Fatalf("Expected a resize to start on the gap")
	}
	m.Update(mouse(tea.MouseActionMotion, 81, 20))
	m.Update(mouse(tea.MouseActionRelease, 81, 20))

	ratios := m.browser.Store().SplitRatios(g.ID)
	if len(ratios) != 2 {
		t.Fatalf("Expected custom ratios, got %v", ratios)
	}
	// 10 cells of 96
	want := 50 + 10*100.0/96
	if diff := ratios[0] - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected left ratio %.3f, got %.3f", want, ratios[0])
	}
	if m.browser.Resizing() {
		t.Errorf("Expected resize ended on release")
	}
}

func TestMouse_DropTabOnTab(t *testing.T) {
	m := newTestModel(t)
	openTab(t, m, "go.dev")
	store := m.browser.Store()
	tabs := store.Tabs()
	width := m.tabStrip.TabWidth()

	m.Update(mouse(tea.MouseActionPress, 1, 0))
	m.Update(mouse(tea.MouseActionRelease, width+1, 0))

	groups := store.Groups()
	if len(groups) != 1 {
		t.Fatalf("Expected tabs merged into a group, got %d groups", len(groups))
	}
	if groups[0].TabIDs[0] != tabs[1].ID || groups[0].TabIDs[1] != tabs[0].ID {
		t.Errorf("Expected target first, got %v", groups[0].TabIDs)
	}
}

func TestMouse_ClickTabActivates(t *testing.T) {
	m := newTestModel(t)
	first := m.browser.Store().ActiveTabID()
	openTab(t, m, "go.dev")

	m.Update(mouse(tea.MouseActionPress, 1, 0))
	m.Update(mouse(tea.MouseActionRelease, 1, 0))

	if got := m.browser.Store().ActiveTabID(); got != first {
		t.Errorf("Expected first tab active, got %q", got)
	}
	if n := len(m.browser.Store().Groups()); n != 0 {
		t.Errorf("Expected a click not to merge, got %d groups", n)
	}
}

func TestMouse_SidebarHeaderToggleCollapse(t *testing.T) {
	m := splitModel(t)
	g, _ := m.browser.Store().ActiveGroup()

	row := -1
	for i, r := range m.sidebar.Rows() {
		if r.Header() && r.GroupID == g.ID {
			row = i
		}
	}
	if row < 0 {
		t.Fatalf("Expected a header row for the group")
	}

	y := m.browser.Chrome().ToolbarHeight + row
	m.Update(mouse(tea.MouseActionPress, 3, y))
	m.Update(mouse(tea.MouseActionRelease, 3, y))

	g, _ = m.browser.Store().Group(g.ID)
	if !g.Collapsed {
		t.Errorf("Expected group collapsed")
	}
	for _, r := range m.sidebar.Rows() {
		if !r.Header() && r.GroupID == g.ID {
			t.Errorf("Expected member rows hidden, found %+v", r)
		}
	}
}

func TestMouse_WheelSwitchesTabs(t *testing.T) {
	m := newTestModel(t)
	first := m.browser.Store().ActiveTabID()
	openTab(t, m, "go.dev")

	m.Update(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if got := m.browser.Store().ActiveTabID(); got != first {
		t.Errorf("Expected wheel to wrap to the first tab, got %q", got)
	}
}

func TestToggleSidebar_SavesSettings(t *testing.T) {
	m := newTestModel(t)
	m.settingsPath = filepath.Join(t.TempDir(), "settings.yaml")

	m.Update(keyMsg(tea.KeyCtrlB))
	if m.browser.Chrome().SidebarWidth != 0 {
		t.Errorf("Expected sidebar closed")
	}

	s, err := config.LoadSettings(m.settingsPath)
	if err != nil {
		t.Fatalf("Failed to load saved settings: %v", err)
	}
	if s.SidebarOpen {
		t.Errorf("Expected closed sidebar saved")
	}
}

func TestSettingsChanged(t *testing.T) {
	m := newTestModel(t)
	s := config.DefaultSettings()
	s.SidebarOpen = false

	_, cmd := m.Update(settingsChangedMsg{event: sync.SettingsChangeEvent{Settings: s}})
	if cmd == nil {
		t.Errorf("Expected toast command")
	}
	if m.browser.Chrome() != CellChrome(false) {
		t.Errorf("Expected cell chrome for the new settings, got %+v", m.browser.Chrome())
	}
	if m.statusBar.Toast() != "Settings reloaded" {
		t.Errorf("Expected reload toast, got %q", m.statusBar.Toast())
	}
}

func TestToastExpired(t *testing.T) {
	m := newTestModel(t)
	m.statusBar.SetToast("newer")

	m.Update(toastExpiredMsg{text: "older"})
	if m.statusBar.Toast() != "newer" {
		t.Errorf("Expected newer toast kept")
	}
	m.Update(toastExpiredMsg{text: "newer"})
	if m.statusBar.Toast() != "" {
		t.Errorf("Expected toast cleared")
	}
}

func TestFilterItems(t *testing.T) {
	items := []components.PickerItem{
		{Title: "Work", Detail: "3 tabs"},
		{Title: "Reading list", Detail: "12 tabs"},
	}

	if got := filterItems(items, ""); len(got) != 2 {
		t.Errorf("Expected empty query to keep all items, got %d", len(got))
	}
	got := filterItems(items, "rdng")
	if len(got) != 1 || got[0].Title != "Reading list" {
		t.Errorf("Expected fuzzy match on reading list, got %+v", got)
	}
}

func TestCopyURL(t *testing.T) {
	var copied string
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = clipboard.WriteAll })

	m := newTestModel(t)
	m.Update(alt('y'))
	if copied != "" {
		t.Errorf("Expected nothing copied from a blank tab, got %q", copied)
	}

	openTab(t, m, "go.dev")
	m.Update(alt('y'))
	if copied != "https://go.dev" {
		t.Errorf("Expected address copied, got %q", copied)
	}
	if !strings.Contains(m.statusBar.Toast(), "Copied") {
		t.Errorf("Expected copy toast, got %q", m.statusBar.Toast())
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	m.Update(alt('y'))
	if m.lastError == nil {
		t.Error("Expected clipboard failure surfaced")
	}
}
