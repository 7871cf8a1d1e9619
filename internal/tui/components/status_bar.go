package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("130")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)
)

const defaultHints = "ctrl+t:new ctrl+w:close tab/S-tab:switch /:address alt+m:merge alt+g:close group ctrl+f:find ?:help ctrl+q:quit"

// StatusBar shows key hints, or a transient toast or error in their place
type StatusBar struct {
	width int
	toast string
	err   string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetToast shows a message until it is cleared
func (sb *StatusBar) SetToast(msg string) {
	sb.toast = msg
}

// Toast returns the message shown, if any
func (sb *StatusBar) Toast() string {
	return sb.toast
}

// SetError shows an error until it is cleared
func (sb *StatusBar) SetError(err error) {
	if err == nil {
		sb.err = ""
		return
	}
	sb.err = err.Error()
}

// Clear removes any toast and error
func (sb *StatusBar) Clear() {
	sb.toast = ""
	sb.err = ""
}

// View renders the status bar
func (sb *StatusBar) View() string {
	text, style := defaultHints, statusBarStyle
	switch {
	case sb.err != "":
		text, style = "Error: "+sb.err, errorStyle
	case sb.toast != "":
		text, style = sb.toast, toastStyle
	}

	if sb.width > 2 && runewidth.StringWidth(text) > sb.width-2 {
		text = runewidth.Truncate(text, sb.width-2, "...")
	}
	return style.Width(sb.width).Render(text)
}
