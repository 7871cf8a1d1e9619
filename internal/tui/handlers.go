package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/logger"
)

// Message Handlers
//
// These methods handle specific message types, keeping Update() a plain
// dispatcher. Each handler follows the pattern:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	m.browser.SetViewport(Viewport(msg.Width, msg.Height))
	m.resize()
	return m, nil
}

// handleHostEvent applies a surface event and waits for the next one
func (m *Model) handleHostEvent(msg hostEventMsg) (tea.Model, tea.Cmd) {
	if m.browser.HandleEvent(msg.event) {
		m.refresh()
	}
	return m, waitForHostEvent(m.browser.Events())
}

// handleSettingsChanged applies reloaded settings
func (m *Model) handleSettingsChanged(msg settingsChangedMsg) (tea.Model, tea.Cmd) {
	if msg.event.Err != nil {
		logger.Warn("tui: settings reload failed", "path", msg.event.FilePath, "error", msg.event.Err)
		m.setError(fmt.Errorf("settings: %w", msg.event.Err))
		return m, m.waitForSettingsChange()
	}

	m.applySettings(msg.event.Settings)
	return m, tea.Batch(m.showToast("Settings reloaded"), m.waitForSettingsChange())
}

func (m *Model) applySettings(s config.Settings) {
	m.browser.ApplySettings(s)
	m.browser.SetChrome(CellChrome(s.SidebarOpen))
	m.resize()
	m.refresh()
}

// toggleSidebar opens or closes the sidebar and saves the choice
func (m *Model) toggleSidebar() tea.Cmd {
	s := m.browser.Settings()
	s.SidebarOpen = !s.SidebarOpen
	m.applySettings(s)

	if m.settingsPath == "" {
		return nil
	}
	if err := config.SaveSettings(m.settingsPath, s); err != nil {
		return m.setError(err)
	}
	return nil
}

// handleUndoExpired closes the undo window of a closed group
func (m *Model) handleUndoExpired(msg undoExpiredMsg) (tea.Model, tea.Cmd) {
	m.browser.ExpireUndo(msg.token)
	if m.undoToken == msg.token {
		m.undoToken = 0
		m.statusBar.SetToast("")
	}
	return m, nil
}

// handleError shows an error in the status bar
func (m *Model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	logger.Error("tui: error", "error", msg.err)
	return m, m.setError(msg.err)
}

// handleMouse routes clicks, drags and drops
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay != OverlayNone || m.terminalTooSmall {
		return m, nil
	}

	chrome := m.browser.Chrome()
	panels := Panels(m.browser.Input(), m.browser.Rects())
	hit := Locate(msg.X, msg.Y, m.height, chrome, panels)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.handlePress(msg, hit, panels)
		case tea.MouseButtonWheelUp:
			if hit.Region == RegionTabStrip {
				m.browser.ActivatePrev()
			}
		case tea.MouseButtonWheelDown:
			if hit.Region == RegionTabStrip {
				m.browser.ActivateNext()
			}
		}

	case tea.MouseActionMotion:
		switch {
		case m.browser.Dragging():
			m.browser.DragTo(msg.X)
		case m.browser.Resizing():
			m.browser.ResizeTo(msg.X)
		}

	case tea.MouseActionRelease:
		switch {
		case m.browser.Dragging():
			m.browser.EndDrag()
		case m.browser.Resizing():
			m.browser.EndResize()
		default:
			m.handleDrop(msg, hit)
		}
		m.press = nil
	}

	m.refresh()
	return m, nil
}

func (m *Model) handlePress(msg tea.MouseMsg, hit Hit, panels []Panel) {
	store := m.browser.Store()
	m.press = &press{region: hit.Region}

	switch hit.Region {
	case RegionTabStrip:
		i := m.tabStrip.TabAt(msg.X)
		if i < 0 {
			return
		}
		m.press.tabID = store.Tabs()[i].ID
		m.browser.ActivateIndex(i)

	case RegionSidebar:
		row, ok := m.sidebar.RowAt(hit.Index)
		if !ok {
			return
		}
		m.press.row = row
		if !row.Header() {
			m.browser.Activate(row.TabID)
		}

	case RegionPanelHeader:
		if hit.Index < 0 {
			return
		}
		m.browser.Activate(panels[hit.Index].TabID)
		m.browser.BeginDrag(hit.Index, msg.X)

	case RegionPage:
		if hit.Handle >= 0 {
			m.browser.BeginResize(hit.Handle, msg.X)
			return
		}
		if hit.Index >= 0 {
			m.browser.Activate(panels[hit.Index].TabID)
		}
	}
}

// handleDrop completes a press-and-release on the tab strip or sidebar:
// dropping a tab or group onto another one merges them
func (m *Model) handleDrop(msg tea.MouseMsg, hit Hit) {
	p := m.press
	if p == nil || p.region != hit.Region {
		return
	}

	switch hit.Region {
	case RegionTabStrip:
		i := m.tabStrip.TabAt(msg.X)
		tabs := m.browser.Store().Tabs()
		if i < 0 || p.tabID == "" || tabs[i].ID == p.tabID {
			return
		}
		m.browser.Merge(p.tabID, tabs[i].ID)

	case RegionSidebar:
		dst, ok := m.sidebar.RowAt(hit.Index)
		if !ok {
			return
		}
		src := p.row
		switch {
		case src.Header() && dst.Header() && src.GroupID == dst.GroupID:
			m.browser.ToggleGroupCollapse(src.GroupID)
		case src.Header() && dst.Header():
			m.browser.MergeGroups(src.GroupID, dst.GroupID)
		case src.Header():
			m.browser.DropGroupOnTab(src.GroupID, dst.TabID)
		case dst.Header():
			m.browser.DropTabOnGroup(src.TabID, dst.GroupID)
		case src.TabID != dst.TabID:
			m.browser.Merge(src.TabID, dst.TabID)
		}
	}
}
