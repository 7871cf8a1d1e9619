package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

const (
	MaxTabWidth = 24
	MinTabWidth = 6
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("236"))

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)

	groupedTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("236"))
)

// TabStrip renders the one-line strip of tabs along the top of the window
type TabStrip struct {
	width    int
	tabs     []models.Tab
	activeID string
}

// NewTabStrip creates an empty tab strip
func NewTabStrip() *TabStrip {
	return &TabStrip{}
}

// SetWidth sets the strip width in cells
func (ts *TabStrip) SetWidth(width int) {
	ts.width = width
}

// SetTabs replaces the tabs shown
func (ts *TabStrip) SetTabs(tabs []models.Tab, activeID string) {
	ts.tabs = tabs
	ts.activeID = activeID
}

// TabWidth returns the width of each tab cell
func (ts *TabStrip) TabWidth() int {
	if len(ts.tabs) == 0 {
		return MaxTabWidth
	}
	w := ts.width / len(ts.tabs)
	if w > MaxTabWidth {
		w = MaxTabWidth
	}
	if w < MinTabWidth {
		w = MinTabWidth
	}
	return w
}

// TabAt returns the index of the tab under column x, or -1
func (ts *TabStrip) TabAt(x int) int {
	if x < 0 || x >= ts.width {
		return -1
	}
	i := x / ts.TabWidth()
	if i >= len(ts.tabs) {
		return -1
	}
	return i
}

// Label formats a tab title to exactly width cells
func Label(t models.Tab, width int) string {
	var prefix string
	switch {
	case t.Loading:
		prefix = "◌ "
	case t.AudioPlaying:
		prefix = "♪ "
	case t.Pinned:
		prefix = "• "
	}
	title := t.Title
	if title == "" {
		title = t.URL
	}
	inner := width - 2
	if inner < 1 {
		return runewidth.FillRight("", width)
	}
	text := runewidth.Truncate(prefix+title, inner, "…")
	return " " + runewidth.FillRight(text, inner) + " "
}

// View renders the strip
func (ts *TabStrip) View() string {
	w := ts.TabWidth()
	var b strings.Builder
	used := 0
	for _, t := range ts.tabs {
		if used+w > ts.width {
			break
		}
		label := Label(t, w)
		switch {
		case t.ID == ts.activeID:
			b.WriteString(activeTabStyle.Render(label))
		case t.Grouped():
			b.WriteString(groupedTabStyle.Render(label))
		default:
			b.WriteString(tabStyle.Render(label))
		}
		used += w
	}
	if used < ts.width {
		b.WriteString(strings.Repeat(" ", ts.width-used))
	}
	return b.String()
}
