package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// EntryMode is what a submitted address bar value is used for
type EntryMode string

const (
	ModeInactive EntryMode = ""
	ModeNavigate EntryMode = "navigate"
	ModeNewTab   EntryMode = "new_tab"
	ModeRename   EntryMode = "rename"
	ModeSave     EntryMode = "save"
)

// AddressBarHeight is the bordered bar's height in lines
const AddressBarHeight = 3

var (
	activeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	inactiveStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Foreground(lipgloss.Color("240"))
)

// AddressBar shows the active tab's url and doubles as the text prompt
// for navigation, new tabs, group renames and session names
type AddressBar struct {
	textInput textinput.Model
	mode      EntryMode
	width     int
	url       string
}

// NewAddressBar creates an unfocused address bar
func NewAddressBar() *AddressBar {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.CharLimit = 2048
	ti.Prompt = ""

	return &AddressBar{
		textInput: ti,
		mode:      ModeInactive,
		width:     80,
	}
}

// Update handles Bubble Tea messages
func (ab *AddressBar) Update(msg tea.Msg) (*AddressBar, tea.Cmd) {
	if !ab.textInput.Focused() {
		return ab, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			ab.Blur()
			return ab, nil
		}
	}

	var cmd tea.Cmd
	ab.textInput, cmd = ab.textInput.Update(msg)
	return ab, cmd
}

// View renders the address bar
func (ab *AddressBar) View() string {
	inner := ab.width - 4 // border and padding
	if inner < 1 {
		inner = 1
	}
	if ab.mode == ModeInactive {
		url := ab.url
		if url == "" {
			url = "Press / or ctrl+l to enter an address"
		}
		return inactiveStyle.Width(ab.width - 2).Render(runewidth.Truncate(url, inner, "…"))
	}

	content := ab.promptForMode() + ab.textInput.View()
	return activeStyle.Width(ab.width - 2).Render(content)
}

func (ab *AddressBar) promptForMode() string {
	switch ab.mode {
	case ModeNavigate:
		return "Go to: "
	case ModeNewTab:
		return "New tab: "
	case ModeRename:
		return "Group name: "
	case ModeSave:
		return "Save session as: "
	default:
		return ""
	}
}

// SetWidth sets the width of the address bar
func (ab *AddressBar) SetWidth(width int) {
	ab.width = width

	available := width - runewidth.StringWidth(ab.promptForMode()) - 4
	if available < 10 {
		available = 10
	}
	ab.textInput.Width = available
}

// SetURL sets the url shown while the bar is inactive
func (ab *AddressBar) SetURL(url string) {
	ab.url = url
}

// SetMode sets the current entry mode
func (ab *AddressBar) SetMode(mode EntryMode) {
	ab.mode = mode

	if ab.width > 0 {
		ab.SetWidth(ab.width)
	}

	switch mode {
	case ModeInactive:
		ab.textInput.Placeholder = ""
	case ModeNavigate, ModeNewTab:
		ab.textInput.Placeholder = "Search or enter address"
	default:
		ab.textInput.Placeholder = "Type here..."
	}
}

// Mode returns the current entry mode
func (ab *AddressBar) Mode() EntryMode {
	return ab.mode
}

// Value returns the current input value
func (ab *AddressBar) Value() string {
	return ab.textInput.Value()
}

// SetValue prefills the input
func (ab *AddressBar) SetValue(v string) {
	ab.textInput.SetValue(v)
	ab.textInput.CursorEnd()
}

// Clear resets the input value
func (ab *AddressBar) Clear() {
	ab.textInput.SetValue("")
}

// Focus focuses the text input
func (ab *AddressBar) Focus() tea.Cmd {
	return ab.textInput.Focus()
}

// Blur removes focus from the text input
func (ab *AddressBar) Blur() {
	ab.textInput.Blur()
}

// IsFocused returns whether the text input is focused
func (ab *AddressBar) IsFocused() bool {
	return ab.textInput.Focused()
}
