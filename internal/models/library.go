package models

import "time"

// RootFolderID is the folder every bookmark tree hangs from
const (
	RootFolderID   = "root"
	RootFolderName = "Bookmarks"
)

// HistoryLimit is the number of distinct urls kept in history
const HistoryLimit = 1000

type Bookmark struct {
	ID        string
	URL       string
	Title     string
	FolderID  string
	CreatedAt time.Time
}

type BookmarkFolder struct {
	ID        string
	Name      string
	ParentID  string // empty for the root folder
	CreatedAt time.Time
}

type HistoryItem struct {
	ID         string
	URL        string
	Title      string
	VisitedAt  time.Time
	VisitCount int
}

// SavedSession is a named copy of the tab strip the user can load later
type SavedSession struct {
	ID        string
	Name      string
	Snapshot  Snapshot
	CreatedAt time.Time
}

// WithFreshIDs returns a copy of s in which every tab, surface and group has
// a new id. Group membership, the active tab and split ratios are remapped,
// so loading the same saved session twice never collides.
func (s Snapshot) WithFreshIDs() Snapshot {
	out := s.Clone()

	tabIDs := make(map[string]string, len(out.Tabs))
	groupIDs := make(map[string]string, len(out.Groups))
	for _, g := range out.Groups {
		groupIDs[g.ID] = NewID()
	}

	for i := range out.Tabs {
		t := &out.Tabs[i]
		fresh := NewID()
		tabIDs[t.ID] = fresh
		t.ID = fresh
		t.SurfaceID = NewID()
		if t.GroupID != "" {
			t.GroupID = groupIDs[t.GroupID]
		}
	}

	for i := range out.Groups {
		g := &out.Groups[i]
		g.ID = groupIDs[g.ID]
		members := make([]string, 0, len(g.TabIDs))
		for _, id := range g.TabIDs {
			if fresh, ok := tabIDs[id]; ok {
				members = append(members, fresh)
			}
		}
		g.TabIDs = members
	}

	ratios := make(SplitRatios, len(out.SplitRatios))
	for id, r := range out.SplitRatios {
		if fresh, ok := groupIDs[id]; ok {
			ratios[fresh] = r
		}
	}
	out.SplitRatios = ratios
	out.ActiveTabID = tabIDs[out.ActiveTabID]
	return out
}
