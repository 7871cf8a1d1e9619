package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("4")).
				Bold(true)

	pickerNormalStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7"))

	pickerDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	pickerFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)
)

// PickerItem is one selectable row
type PickerItem struct {
	Title  string
	Detail string // Shown dimmed after the title, e.g. a url
	Value  string // Opaque id handed back on selection
}

// Picker is a modal list with a search box. Filtering is left to the
// owner: after each keystroke it reads Query and calls SetItems.
type Picker struct {
	title         string
	items         []PickerItem
	searchInput   textinput.Model
	selectedIndex int
	width         int
	height        int
}

// NewPicker creates a focused picker
func NewPicker(title, placeholder string) *Picker {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200

	return &Picker{title: title, searchInput: ti}
}

// Update handles messages. It reports whether the query changed.
func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}

	switch keyMsg.String() {
	case "up", "ctrl+p":
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
		return p, nil, false

	case "down", "ctrl+n":
		if p.selectedIndex < len(p.items)-1 {
			p.selectedIndex++
		}
		return p, nil, false
	}

	before := p.searchInput.Value()
	var cmd tea.Cmd
	p.searchInput, cmd = p.searchInput.Update(msg)
	return p, cmd, p.searchInput.Value() != before
}

// Title returns the picker heading
func (p *Picker) Title() string {
	return p.title
}

// Query returns the search text
func (p *Picker) Query() string {
	return p.searchInput.Value()
}

// SetItems replaces the rows, keeping the selection in range
func (p *Picker) SetItems(items []PickerItem) {
	p.items = items
	if p.selectedIndex >= len(items) {
		p.selectedIndex = 0
	}
}

// Items returns the rows shown
func (p *Picker) Items() []PickerItem {
	return p.items
}

// Selected returns the highlighted row
func (p *Picker) Selected() (PickerItem, bool) {
	if p.selectedIndex < 0 || p.selectedIndex >= len(p.items) {
		return PickerItem{}, false
	}
	return p.items[p.selectedIndex], true
}

// SetSize sets the picker dimensions
func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.searchInput.Width = width - 8
}

func (p *Picker) maxRows() int {
	// Title, search box, blank lines, hint and frame
	rows := p.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the picker
func (p *Picker) View() string {
	var sb strings.Builder
	inner := p.width - 6
	if inner < 10 {
		inner = 10
	}

	sb.WriteString(pickerTitleStyle.Render(p.title))
	sb.WriteString("\n\n")
	sb.WriteString(p.searchInput.View())
	sb.WriteString("\n\n")

	if len(p.items) == 0 {
		sb.WriteString(pickerDimStyle.Render("Nothing found"))
	} else {
		maxDisplay := p.maxRows()
		start := 0
		if p.selectedIndex >= maxDisplay {
			start = p.selectedIndex - maxDisplay + 1
		}
		end := start + maxDisplay
		if end > len(p.items) {
			end = len(p.items)
		}

		for i := start; i < end; i++ {
			it := p.items[i]
			title := runewidth.Truncate(it.Title, inner-2, "…")
			var line string
			if i == p.selectedIndex {
				line = pickerSelectedStyle.Render("▶ " + title)
			} else {
				line = pickerNormalStyle.Render("  " + title)
			}
			if room := inner - 2 - runewidth.StringWidth(title) - 1; it.Detail != "" && room > 3 {
				line += pickerDimStyle.Render(" " + runewidth.Truncate(it.Detail, room, "…"))
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}

		if len(p.items) > end {
			sb.WriteString(pickerDimStyle.Render(fmt.Sprintf("... and %d more", len(p.items)-end)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(pickerDimStyle.Render("↑/↓: navigate • enter: open • esc: close"))

	return pickerFrameStyle.Width(p.width - 2).Render(sb.String())
}
