package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	sidebarGroupStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)
)

// SidebarRow is one line of the sidebar: a group header or a tab
type SidebarRow struct {
	GroupID string // Set on group headers and grouped tabs
	TabID   string // Empty on group headers
}

// Header reports whether the row is a group header
func (r SidebarRow) Header() bool {
	return r.TabID == ""
}

// Sidebar renders the vertical tab tree: ungrouped tabs and groups with
// their members, in strip order
type Sidebar struct {
	width    int
	height   int
	tabs     []models.Tab
	groups   map[string]models.Group
	activeID string
	rows     []SidebarRow
}

// NewSidebar creates an empty sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{groups: make(map[string]models.Group)}
}

// SetSize sets the sidebar size in cells
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetTabs rebuilds the rows for a new tab model
func (s *Sidebar) SetTabs(tabs []models.Tab, groups []models.Group, activeID string) {
	s.tabs = tabs
	s.activeID = activeID
	s.groups = make(map[string]models.Group, len(groups))
	for _, g := range groups {
		s.groups[g.ID] = g
	}

	s.rows = s.rows[:0]
	seen := make(map[string]bool)
	for _, t := range tabs {
		if !t.Grouped() {
			s.rows = append(s.rows, SidebarRow{TabID: t.ID})
			continue
		}
		if seen[t.GroupID] {
			continue
		}
		seen[t.GroupID] = true
		g, ok := s.groups[t.GroupID]
		if !ok {
			continue
		}
		s.rows = append(s.rows, SidebarRow{GroupID: g.ID})
		if g.Collapsed {
			continue
		}
		for _, id := range g.TabIDs {
			s.rows = append(s.rows, SidebarRow{GroupID: g.ID, TabID: id})
		}
	}
}

// Rows returns the rows in display order
func (s *Sidebar) Rows() []SidebarRow {
	return append([]SidebarRow(nil), s.rows...)
}

// RowAt returns the row under line y
func (s *Sidebar) RowAt(y int) (SidebarRow, bool) {
	if y < 0 || y >= len(s.rows) || y >= s.height {
		return SidebarRow{}, false
	}
	return s.rows[y], true
}

func (s *Sidebar) tab(id string) (models.Tab, bool) {
	for _, t := range s.tabs {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tab{}, false
}

// View renders the sidebar
func (s *Sidebar) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	inner := s.width - 1 // right edge is the divider
	lines := make([]string, 0, s.height)
	for _, row := range s.rows {
		if len(lines) == s.height {
			break
		}
		var text string
		style := sidebarStyle
		if row.Header() {
			g := s.groups[row.GroupID]
			marker := CollapseIndicatorExpanded
			if g.Collapsed {
				marker = CollapseIndicatorCollapsed
			}
			text = fmt.Sprintf("%s%s (%d)", marker, g.Name, len(g.TabIDs))
			style = sidebarGroupStyle
			if g.IndexOf(s.activeID) >= 0 && g.Collapsed {
				style = SelectedStyle
			}
		} else {
			t, _ := s.tab(row.TabID)
			indent := ""
			if row.GroupID != "" {
				indent = "  "
			}
			text = strings.TrimRight(indent+Label(t, inner-len(indent)), " ")
			if t.ID == s.activeID {
				style = SelectedStyle
			}
		}
		text = runewidth.FillRight(runewidth.Truncate(text, inner, "…"), inner)
		lines = append(lines, style.Render(text)+dividerStyle.Render("│"))
	}
	for len(lines) < s.height {
		lines = append(lines, strings.Repeat(" ", inner)+dividerStyle.Render("│"))
	}
	return strings.Join(lines, "\n")
}

var dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
