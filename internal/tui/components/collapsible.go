package components

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	CollapseIndicatorCollapsed = "▸ "
	CollapseIndicatorExpanded  = "▾ "
)

// SelectedStyle highlights the active row
var SelectedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("62"))
