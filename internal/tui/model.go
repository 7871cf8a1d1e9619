package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MikeBiancalana/widescreen/internal/browser"
	"github.com/MikeBiancalana/widescreen/internal/library"
	"github.com/MikeBiancalana/widescreen/internal/sync"
	"github.com/MikeBiancalana/widescreen/internal/tui/components"
)

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 80
	MinTerminalHeight = 24
)

// Overlay is a modal covering the page area. While one is open every
// surface is hidden.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayTabs
	OverlayHistory
	OverlayBookmarks
	OverlaySessions
	OverlayHelp
)

// Options carries the optional collaborators of the model
type Options struct {
	History      *library.HistoryRepository
	Bookmarks    *library.BookmarkRepository
	Saved        *library.SavedSessionRepository
	Watcher      *sync.Watcher
	SettingsPath string // Where sidebar toggles are saved; empty disables saving
}

// press remembers where a mouse button went down, for drop gestures
type press struct {
	region Region
	tabID  string
	row    components.SidebarRow
}

// Model represents the main TUI state
type Model struct {
	browser      *browser.Browser
	history      *library.HistoryRepository
	bookmarks    *library.BookmarkRepository
	saved        *library.SavedSessionRepository
	watcher      *sync.Watcher
	settingsPath string

	width  int
	height int

	// Components
	tabStrip   *components.TabStrip
	sidebar    *components.Sidebar
	addressBar *components.AddressBar
	statusBar  *components.StatusBar
	picker     *components.Picker

	keys KeyMap
	help help.Model

	overlay       Overlay
	press         *press
	renameGroupID string
	undoToken     uint64
	lastError     error

	// Terminal size validation
	terminalTooSmall bool
}

// NewModel creates a new TUI model over b. The browser is switched to the
// terminal's cell chrome.
func NewModel(b *browser.Browser, opts Options) *Model {
	b.SetChrome(CellChrome(b.Settings().SidebarOpen))

	m := &Model{
		browser:      b,
		history:      opts.History,
		bookmarks:    opts.Bookmarks,
		saved:        opts.Saved,
		watcher:      opts.Watcher,
		settingsPath: opts.SettingsPath,
		tabStrip:     components.NewTabStrip(),
		sidebar:      components.NewSidebar(),
		addressBar:   components.NewAddressBar(),
		statusBar:    components.NewStatusBar(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
	m.refresh()
	return m
}

// Browser returns the browser driven by the model
func (m *Model) Browser() *browser.Browser {
	return m.browser
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForHostEvent(m.browser.Events()), tea.SetWindowTitle("widescreen")}

	if m.watcher != nil {
		if err := m.watcher.Start(); err == nil {
			cmds = append(cmds, m.waitForSettingsChange())
		} else {
			m.setError(fmt.Errorf("settings will not reload: %w", err))
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model. Handlers live in
// handlers.go and keyboard.go.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case hostEventMsg:
		return m.handleHostEvent(msg)

	case settingsChangedMsg:
		return m.handleSettingsChanged(msg)

	case undoExpiredMsg:
		return m.handleUndoExpired(msg)

	case toastExpiredMsg:
		if m.statusBar.Toast() == msg.text {
			m.statusBar.SetToast("")
		}
		return m, nil

	case errMsg:
		return m.handleError(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		return m, nil
	}
}

// refresh copies the browser state into the components
func (m *Model) refresh() {
	store := m.browser.Store()
	tabs := store.Tabs()
	active := store.ActiveTab()

	m.tabStrip.SetTabs(tabs, active.ID)
	m.sidebar.SetTabs(tabs, store.Groups(), active.ID)
	m.addressBar.SetURL(active.URL)
}

// resize lays the components out for the current terminal size
func (m *Model) resize() {
	chrome := m.browser.Chrome()
	viewport := Viewport(m.width, m.height)

	m.tabStrip.SetWidth(m.width)
	m.addressBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.sidebar.SetSize(chrome.SidebarWidth, viewport.Height-chrome.ToolbarHeight)
	if m.picker != nil {
		w, h := m.pageSize()
		m.picker.SetSize(w, h)
	}
}

// pageSize returns the size of the page area in cells
func (m *Model) pageSize() (int, int) {
	chrome := m.browser.Chrome()
	viewport := Viewport(m.width, m.height)
	w := viewport.Width - chrome.SidebarWidth
	h := viewport.Height - chrome.ToolbarHeight
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}
	if m.width == 0 {
		return "Loading..."
	}

	page := m.renderPage()
	body := page
	if m.browser.Chrome().SidebarWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), page)
	}

	return strings.Join([]string{
		m.tabStrip.View(),
		m.addressBar.View(),
		body,
		m.statusBar.View(),
	}, "\n")
}

// renderPage draws the panels, or the open overlay in their place
func (m *Model) renderPage() string {
	w, h := m.pageSize()
	switch m.overlay {
	case OverlayNone:
	case OverlayHelp:
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.helpView())
	default:
		if m.picker != nil {
			return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Top, m.picker.View())
		}
	}

	chrome := m.browser.Chrome()
	in := m.browser.Input()
	panels := Panels(in, m.browser.Rects())
	store := m.browser.Store()
	activeID := store.ActiveTabID()

	// The dragged panel is painted last so it sits on top
	if in.Drag != nil && in.Drag.Index < len(panels) {
		dragged := panels[in.Drag.Index]
		panels = append(append(panels[:in.Drag.Index:in.Drag.Index], panels[in.Drag.Index+1:]...), dragged)
	}

	canvas := components.NewCanvas(w, h)
	for _, p := range panels {
		tab, ok := store.Tab(p.TabID)
		if !ok {
			continue
		}
		x := p.Rect.X - chrome.SidebarWidth
		y := p.Rect.Y - chrome.ToolbarHeight
		focused := p.Split && tab.ID == activeID

		if p.Split {
			ink := components.InkDim
			if focused {
				ink = components.InkActive
			}
			canvas.Text(x, y-chrome.PanelHeaderHeight, tab.URL, p.Rect.Width, ink)
		}

		border := components.InkBorder
		if focused {
			border = components.InkActive
		}
		canvas.Box(x, y, p.Rect.Width, p.Rect.Height, focused, border)
		inner := p.Rect.Width - 4

		if tab.IsBlank() {
			canvas.Text(x+2, y+1, "New Tab", inner, components.InkTitle)
			canvas.Text(x+2, y+3, "Type / to search or enter an address", inner, components.InkDim)
			continue
		}
		canvas.Text(x+2, y+1, tab.Title, inner, components.InkTitle)
		canvas.Text(x+2, y+2, tab.URL, inner, components.InkDim)
		switch {
		case tab.Loading:
			canvas.Text(x+2, y+4, "Loading…", inner, components.InkDim)
		case tab.AudioPlaying:
			canvas.Text(x+2, y+4, "♪ Playing audio", inner, components.InkDim)
		}
	}
	return canvas.Render()
}

// terminalTooSmallView renders a message when the terminal is too small
func (m *Model) terminalTooSmallView() string {
	msg := fmt.Sprintf(
		"Terminal Too Small\n\nCurrent: %dx%d\nRequired: %dx%d or larger\n\nResize your terminal to continue.",
		m.width, m.height, MinTerminalWidth, MinTerminalHeight,
	)
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true).
		Padding(1, 2)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, style.Render(msg))
}

// helpView lists the key bindings, two areas side by side per row
func (m *Model) helpView() string {
	h := m.help
	groups := m.keys.FullHelp()
	rows := make([]string, 0, (len(groups)+1)/2)
	for i := 0; i < len(groups); i += 2 {
		end := min(i+2, len(groups))
		rows = append(rows, h.FullHelpView(groups[i:end]))
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)
	return style.Render(strings.Join(rows, "\n\n"))
}
