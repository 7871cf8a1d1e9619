package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/widescreen/internal/host"
	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/perf"
	"github.com/MikeBiancalana/widescreen/internal/sync"
)

// Command Builders
//
// These methods create tea.Cmd functions for async operations.
// Capture every value the closure needs BEFORE returning it: the model may
// change between closure creation and execution.

// ToastDuration is how long informational toasts stay in the status bar
const ToastDuration = 3 * time.Second

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

type hostEventMsg struct {
	event host.Event
}

type settingsChangedMsg struct {
	event sync.SettingsChangeEvent
}

type undoExpiredMsg struct {
	token uint64
}

type toastExpiredMsg struct {
	text string
}

type errMsg struct {
	err error
}

// waitForHostEvent blocks until the host reports something about a surface
func waitForHostEvent(events <-chan host.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return hostEventMsg{event: ev}
	}
}

// waitForSettingsChange blocks until the settings file is reloaded
func (m *Model) waitForSettingsChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	capturedChanges := m.watcher.Changes()
	return func() tea.Msg {
		ev, ok := <-capturedChanges
		if !ok {
			return nil
		}
		return settingsChangedMsg{event: ev}
	}
}

// scheduleUndoExpiry ends the undo window for token once it has passed
func scheduleUndoExpiry(token uint64, window time.Duration) tea.Cmd {
	return tea.Tick(window, func(time.Time) tea.Msg {
		return undoExpiredMsg{token: token}
	})
}

// showToast puts text in the status bar and clears it after ToastDuration
func (m *Model) showToast(text string) tea.Cmd {
	m.statusBar.SetToast(text)
	capturedText := text
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{text: capturedText}
	})
}

// saveSession stores the open tabs under name
func (m *Model) saveSession(name string) tea.Cmd {
	timer := perf.NewTimer("tui.saveSession", nil, 100)
	defer timer.Stop()

	saved, err := m.browser.SaveSession(m.saved, name)
	if err != nil {
		logger.Debug("tui: failed to save session", "name", name, "error", err)
		return m.setError(err)
	}
	return m.showToast(fmt.Sprintf("Saved session %q (%d tabs)", saved.Name, len(saved.Snapshot.Tabs)))
}

// loadSession replaces the open tabs with a saved session
func (m *Model) loadSession(idOrName string) tea.Cmd {
	timer := perf.NewTimer("tui.loadSession", nil, 100)
	defer timer.Stop()

	if err := m.browser.LoadSession(m.saved, idOrName); err != nil {
		logger.Debug("tui: failed to load session", "session", idOrName, "error", err)
		return m.setError(err)
	}
	return m.showToast("Session loaded")
}

func (m *Model) setError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.lastError = err
	m.statusBar.SetError(err)
	return nil
}
