package models

import (
	"github.com/rs/xid"
)

const (
	// BlankURL is the placeholder page. Its surface is never shown; the
	// front-end draws a splash in its place.
	BlankURL = "about:blank"

	// DefaultTitle is used until the host reports a page title.
	DefaultTitle = "New Tab"

	// DefaultGroupName is the name given to groups created by a merge.
	DefaultGroupName = "Group"
)

// Tab represents one logical browsing page and the surface that renders it.
type Tab struct {
	ID        string `json:"id"`
	SurfaceID string `json:"surface_id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	GroupID   string `json:"group_id"` // Empty when ungrouped
	Pinned    bool   `json:"pinned"`

	// Presentation flags, written only by host events
	Loading      bool   `json:"-"`
	AudioPlaying bool   `json:"-"`
	Favicon      string `json:"-"`
}

// NewTab creates an ungrouped tab with fresh tab and surface ids
func NewTab(url string) Tab {
	if url == "" {
		url = BlankURL
	}
	return Tab{
		ID:        NewID(),
		SurfaceID: NewID(),
		URL:       url,
		Title:     DefaultTitle,
	}
}

// IsBlank reports whether the tab shows the placeholder page
func (t Tab) IsBlank() bool {
	return t.URL == BlankURL
}

// Grouped reports whether the tab belongs to a group
func (t Tab) Grouped() bool {
	return t.GroupID != ""
}

// Group is an ordered cluster of two or more tabs shown side by side.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TabIDs    []string `json:"tab_ids"` // Left-to-right panel order
	Collapsed bool     `json:"collapsed"`
}

// NewGroup creates a collapsed group with the default name
func NewGroup(tabIDs ...string) Group {
	return Group{
		ID:        NewID(),
		Name:      DefaultGroupName,
		TabIDs:    append([]string(nil), tabIDs...),
		Collapsed: true,
	}
}

// IndexOf returns the panel index of a tab, or -1
func (g Group) IndexOf(tabID string) int {
	for i, id := range g.TabIDs {
		if id == tabID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slices with g
func (g Group) Clone() Group {
	g.TabIDs = append([]string(nil), g.TabIDs...)
	return g
}

// NewID returns a process-unique opaque identifier
func NewID() string {
	return xid.New().String()
}
