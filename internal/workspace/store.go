package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

// MaxRecentlyClosed is how many closed tabs ReopenClosedTab can bring back
const MaxRecentlyClosed = 10

// Surfaces allocates and releases the page surfaces that back tabs.
// Calls may complete asynchronously; the Store never waits on them.
type Surfaces interface {
	CreateSurface(surfaceID, url string) error
	DestroySurface(surfaceID string) error
}

// Options configures a Store
type Options struct {
	Surfaces   Surfaces
	Logger     *slog.Logger
	UndoWindow time.Duration
	Clock      func() time.Time
	InitialURL string
}

// Store is the authoritative tab and group model. Every exported mutation
// leaves the model satisfying models.CheckInvariants.
//
// Operations on ids that no longer exist are silently ignored; the front-end
// and host callbacks may refer to tabs that were closed a moment ago.
//
// Store is not safe for concurrent use. All calls must come from the single
// event loop that owns it.
type Store struct {
	tabs        []models.Tab
	groups      []models.Group
	ratios      models.SplitRatios
	activeTabID string

	surfaces Surfaces
	undo     *UndoBuffer
	closed   []models.Tab
	logger   *slog.Logger
}

// NewStore creates a store holding a single blank tab. The returned error
// reports a failure to create that tab's surface; the store is usable either way.
func NewStore(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		ratios:   make(models.SplitRatios),
		surfaces: opts.Surfaces,
		undo:     NewUndoBuffer(opts.UndoWindow, opts.Clock),
		logger:   logger,
	}
	_, err := s.OpenTab(opts.InitialURL)
	return s, err
}

// Tabs returns a copy of the flat tab list in strip order
func (s *Store) Tabs() []models.Tab {
	return append([]models.Tab(nil), s.tabs...)
}

// Groups returns a copy of all groups
func (s *Store) Groups() []models.Group {
	out := make([]models.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Clone()
	}
	return out
}

// Tab returns the tab with the given id
func (s *Store) Tab(id string) (models.Tab, bool) {
	if i := s.tabIndex(id); i >= 0 {
		return s.tabs[i], true
	}
	return models.Tab{}, false
}

// TabBySurface returns the tab owning the given surface
func (s *Store) TabBySurface(surfaceID string) (models.Tab, bool) {
	for _, t := range s.tabs {
		if t.SurfaceID == surfaceID {
			return t, true
		}
	}
	return models.Tab{}, false
}

// Group returns the group with the given id
func (s *Store) Group(id string) (models.Group, bool) {
	if i := s.groupIndex(id); i >= 0 {
		return s.groups[i].Clone(), true
	}
	return models.Group{}, false
}

// ActiveTabID returns the id of the tab occupying the primary viewport
func (s *Store) ActiveTabID() string {
	return s.activeTabID
}

// ActiveTab returns the active tab
func (s *Store) ActiveTab() models.Tab {
	t, _ := s.Tab(s.activeTabID)
	return t
}

// ActiveGroup returns the group shown as split panels, if any
func (s *Store) ActiveGroup() (models.Group, bool) {
	g, ok := geometry.ActiveGroup(s.tabs, s.groups, s.activeTabID)
	if !ok {
		return models.Group{}, false
	}
	return g.Clone(), true
}

// SplitRatios returns the custom ratios of a group, or nil for an equal split
func (s *Store) SplitRatios(groupID string) []float64 {
	r, ok := s.ratios[groupID]
	if !ok {
		return nil
	}
	return append([]float64(nil), r...)
}

// AllSplitRatios returns a copy of the whole ratio map
func (s *Store) AllSplitRatios() models.SplitRatios {
	return s.ratios.Clone()
}

// Snapshot returns a deep copy of the persisted state
func (s *Store) Snapshot() models.Snapshot {
	return models.Snapshot{
		Tabs:        s.Tabs(),
		Groups:      s.Groups(),
		ActiveTabID: s.activeTabID,
		SplitRatios: s.ratios.Clone(),
	}
}

// OpenTab appends a new ungrouped tab and makes it active. An empty url
// opens the blank page.
func (s *Store) OpenTab(url string) (models.Tab, error) {
	t := models.NewTab(url)
	s.tabs = append(s.tabs, t)
	s.activeTabID = t.ID
	s.logger.Debug("OpenTab", "tab_id", t.ID, "surface_id", t.SurfaceID, "url", t.URL)
	return t, s.createSurface(t)
}

// CloseTab closes a tab and releases its surface. The last remaining tab
// cannot be closed. Closing the active tab activates the tab before it.
// The bool result reports whether the tab was closed; the error reports a
// host failure to release the surface.
func (s *Store) CloseTab(id string) (bool, error) {
	idx := s.tabIndex(id)
	if idx < 0 || len(s.tabs) <= 1 {
		return false, nil
	}

	tab := s.tabs[idx]
	s.closed = append(s.closed, tab)
	if len(s.closed) > MaxRecentlyClosed {
		s.closed = s.closed[len(s.closed)-MaxRecentlyClosed:]
	}

	err := s.removeTab(idx)
	if s.activeTabID == id {
		next := idx - 1
		if next < 0 {
			next = 0
		}
		s.activeTabID = s.tabs[next].ID
	}

	s.logger.Debug("CloseTab", "tab_id", id, "remaining", len(s.tabs))
	return true, err
}

// DuplicateTab inserts a copy of a tab right after it, in the flat order and,
// for grouped tabs, in the group.
func (s *Store) DuplicateTab(id string) (models.Tab, bool, error) {
	idx := s.tabIndex(id)
	if idx < 0 {
		return models.Tab{}, false, nil
	}
	src := s.tabs[idx]

	dup := models.NewTab(src.URL)
	dup.Title = src.Title
	dup.GroupID = src.GroupID
	s.tabs = insertTab(s.tabs, idx+1, dup)

	if src.GroupID != "" {
		if gi := s.groupIndex(src.GroupID); gi >= 0 {
			g := &s.groups[gi]
			pos := g.IndexOf(src.ID) + 1
			g.TabIDs = insertID(g.TabIDs, pos, dup.ID)
			delete(s.ratios, g.ID)
		}
	}

	s.logger.Debug("DuplicateTab", "tab_id", id, "new_tab_id", dup.ID, "group_id", dup.GroupID)
	return dup, true, s.createSurface(dup)
}

// TogglePin flips the pinned flag. Pinning never affects grouping.
func (s *Store) TogglePin(id string) {
	if i := s.tabIndex(id); i >= 0 {
		s.tabs[i].Pinned = !s.tabs[i].Pinned
	}
}

// MergeIntoGroup groups the dragged tab with the target tab. Whatever the
// starting state, both tabs end up in one group, target side first.
// It returns the id of the resulting group.
func (s *Store) MergeIntoGroup(draggedID, targetID string) (string, bool) {
	if draggedID == targetID {
		return "", false
	}
	ai, bi := s.tabIndex(draggedID), s.tabIndex(targetID)
	if ai < 0 || bi < 0 {
		return "", false
	}
	a, b := s.tabs[ai], s.tabs[bi]

	switch {
	case a.GroupID == "" && b.GroupID == "":
		return s.newGroup(targetID, draggedID), true

	case a.GroupID != "" && b.GroupID == "":
		s.detach(draggedID)
		return s.newGroup(targetID, draggedID), true

	case a.GroupID == "" && b.GroupID != "":
		s.appendToGroup(b.GroupID, draggedID)
		return b.GroupID, true

	case a.GroupID != b.GroupID:
		s.spliceGroups(a.GroupID, b.GroupID)
		return b.GroupID, true
	}
	// Already together
	return b.GroupID, false
}

// DropTabOnGroup moves a tab to the end of an existing group
func (s *Store) DropTabOnGroup(tabID, groupID string) bool {
	i := s.tabIndex(tabID)
	if i < 0 || s.groupIndex(groupID) < 0 || s.tabs[i].GroupID == groupID {
		return false
	}
	if s.tabs[i].GroupID != "" {
		s.detach(tabID)
	}
	s.appendToGroup(groupID, tabID)
	return true
}

// DropGroupOnTab handles a whole group dropped on a tab: an ungrouped
// target joins the group, a target in another group merges the two.
func (s *Store) DropGroupOnTab(groupID, tabID string) bool {
	i := s.tabIndex(tabID)
	if i < 0 || s.groupIndex(groupID) < 0 {
		return false
	}
	target := s.tabs[i]
	switch target.GroupID {
	case groupID:
		return false
	case "":
		s.appendToGroup(groupID, tabID)
		return true
	default:
		return s.MergeGroups(groupID, target.GroupID)
	}
}

// MergeGroups appends every member of the dragged group to the target group
// and removes the dragged group.
func (s *Store) MergeGroups(draggedGroupID, targetGroupID string) bool {
	if draggedGroupID == targetGroupID || s.groupIndex(draggedGroupID) < 0 || s.groupIndex(targetGroupID) < 0 {
		return false
	}
	s.spliceGroups(draggedGroupID, targetGroupID)
	return true
}

// UngroupTab takes a tab out of its group, dissolving the group when fewer
// than two members would remain.
func (s *Store) UngroupTab(id string) bool {
	i := s.tabIndex(id)
	if i < 0 || s.tabs[i].GroupID == "" {
		return false
	}
	s.detach(id)
	return true
}

// CloseGroup closes a group and every member tab. The group is kept in the
// undo buffer for the undo window. Closing is refused when it would leave
// no tabs at all.
func (s *Store) CloseGroup(id string) (bool, error) {
	gi := s.groupIndex(id)
	if gi < 0 {
		return false, nil
	}
	group := s.groups[gi].Clone()
	if len(s.tabs)-len(group.TabIDs) < 1 {
		return false, nil
	}

	members := make([]models.Tab, 0, len(group.TabIDs))
	for _, tid := range group.TabIDs {
		if t, ok := s.Tab(tid); ok {
			members = append(members, t)
		}
	}

	// Capture before any surface is released
	s.undo.Put(ClosedGroup{
		Group:  group,
		Tabs:   members,
		Ratios: s.SplitRatios(id),
	})

	var errs []error
	for _, t := range members {
		errs = append(errs, s.destroySurface(t))
	}

	remaining := s.tabs[:0]
	for _, t := range s.tabs {
		if t.GroupID != id {
			remaining = append(remaining, t)
		}
	}
	s.tabs = remaining
	s.groups = append(s.groups[:gi], s.groups[gi+1:]...)
	delete(s.ratios, id)

	if group.IndexOf(s.activeTabID) >= 0 {
		s.activeTabID = s.tabs[0].ID
	}

	s.logger.Debug("CloseGroup", "group_id", id, "closed_tabs", len(members))
	return true, errors.Join(errs...)
}

// UndoCloseGroup restores the last closed group with its original ids,
// surfaces and ratios. It does nothing once the undo window has passed.
func (s *Store) UndoCloseGroup() (bool, error) {
	entry, ok := s.undo.Take()
	if !ok {
		return false, nil
	}
	if s.groupIndex(entry.Group.ID) >= 0 {
		return false, nil
	}
	for _, t := range entry.Tabs {
		if s.tabIndex(t.ID) >= 0 {
			return false, nil
		}
	}

	var errs []error
	for _, t := range entry.Tabs {
		errs = append(errs, s.createSurface(t))
	}
	s.tabs = append(s.tabs, entry.Tabs...)
	s.groups = append(s.groups, entry.Group.Clone())
	if len(entry.Ratios) > 0 {
		s.ratios[entry.Group.ID] = append([]float64(nil), entry.Ratios...)
	}

	s.logger.Debug("UndoCloseGroup", "group_id", entry.Group.ID, "restored_tabs", len(entry.Tabs))
	return true, errors.Join(errs...)
}

// PendingUndo reports the token and remaining time of the buffered close
func (s *Store) PendingUndo() (token uint64, remaining time.Duration, ok bool) {
	entry, ok := s.undo.Peek()
	if !ok {
		return 0, 0, false
	}
	return s.undo.token, s.undo.window - s.undo.now().Sub(entry.CapturedAt), true
}

// ExpireUndo clears the undo buffer if token still identifies its entry
func (s *Store) ExpireUndo(token uint64) {
	s.undo.Expire(token)
}

// ReorderWithinGroup moves the panel at from to position to. Custom ratios
// move with their tab.
func (s *Store) ReorderWithinGroup(groupID string, from, to int) bool {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return false
	}
	g := &s.groups[gi]
	n := len(g.TabIDs)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}

	g.TabIDs = move(g.TabIDs, from, to)
	if r, ok := s.ratios[groupID]; ok && len(r) == n {
		s.ratios[groupID] = move(r, from, to)
	}
	return true
}

// RenameGroup sets a group's name. Blank names are ignored.
func (s *Store) RenameGroup(id, name string) bool {
	name = strings.TrimSpace(name)
	gi := s.groupIndex(id)
	if gi < 0 || name == "" {
		return false
	}
	s.groups[gi].Name = name
	return true
}

// ToggleGroupCollapse expands or collapses a group's tab list. Expanding
// one group collapses all the others.
func (s *Store) ToggleGroupCollapse(id string) bool {
	gi := s.groupIndex(id)
	if gi < 0 {
		return false
	}
	for i := range s.groups {
		if i == gi {
			s.groups[i].Collapsed = !s.groups[i].Collapsed
		} else {
			s.groups[i].Collapsed = true
		}
	}
	return true
}

// SetSplitRatios stores custom panel widths for a group. Ratios must have
// one non-negative entry per member and sum to 100.
func (s *Store) SetSplitRatios(groupID string, ratios []float64) bool {
	gi := s.groupIndex(groupID)
	if gi < 0 || !models.ValidRatios(ratios, len(s.groups[gi].TabIDs)) {
		return false
	}
	s.ratios[groupID] = append([]float64(nil), ratios...)
	return true
}

// ResetSplitRatios returns a group to an equal split
func (s *Store) ResetSplitRatios(groupID string) {
	delete(s.ratios, groupID)
}

// Activate makes a tab the active one
func (s *Store) Activate(id string) bool {
	if s.tabIndex(id) < 0 {
		return false
	}
	s.activeTabID = id
	return true
}

// ActivateIndex activates the tab at a position in the strip
func (s *Store) ActivateIndex(i int) bool {
	if i < 0 || i >= len(s.tabs) {
		return false
	}
	s.activeTabID = s.tabs[i].ID
	return true
}

// ActivateNext activates the following tab, wrapping around
func (s *Store) ActivateNext() {
	i := s.tabIndex(s.activeTabID)
	s.activeTabID = s.tabs[(i+1)%len(s.tabs)].ID
}

// ActivatePrev activates the preceding tab, wrapping around
func (s *Store) ActivatePrev() {
	i := s.tabIndex(s.activeTabID)
	if i < 0 {
		i = 0
	}
	s.activeTabID = s.tabs[(i-1+len(s.tabs))%len(s.tabs)].ID
}

// CloseTabsToRight closes every tab after id in the strip
func (s *Store) CloseTabsToRight(id string) (int, error) {
	idx := s.tabIndex(id)
	if idx < 0 {
		return 0, nil
	}
	activeClosed := s.tabIndex(s.activeTabID) > idx

	var errs []error
	count := 0
	for len(s.tabs) > idx+1 {
		errs = append(errs, s.removeTab(len(s.tabs)-1))
		count++
	}
	if activeClosed {
		s.activeTabID = id
	}
	return count, errors.Join(errs...)
}

// CloseOtherTabs closes every tab except id, which ends up ungrouped and active
func (s *Store) CloseOtherTabs(id string) (int, error) {
	if s.tabIndex(id) < 0 {
		return 0, nil
	}

	var errs []error
	count := 0
	for i := len(s.tabs) - 1; i >= 0; i-- {
		if s.tabs[i].ID != id {
			errs = append(errs, s.removeTab(i))
			count++
		}
	}
	s.activeTabID = id
	return count, errors.Join(errs...)
}

// ReopenClosedTab reopens the most recently closed tab as a new ungrouped tab
func (s *Store) ReopenClosedTab() (models.Tab, bool, error) {
	if len(s.closed) == 0 {
		return models.Tab{}, false, nil
	}
	last := s.closed[len(s.closed)-1]
	s.closed = s.closed[:len(s.closed)-1]

	t := models.NewTab(last.URL)
	t.Title = last.Title
	s.tabs = append(s.tabs, t)
	s.activeTabID = t.ID
	return t, true, s.createSurface(t)
}

// RecentlyClosed returns the closed tabs, oldest first
func (s *Store) RecentlyClosed() []models.Tab {
	return append([]models.Tab(nil), s.closed...)
}

// SetURL records the url a tab is navigating to
func (s *Store) SetURL(id, url string) bool {
	i := s.tabIndex(id)
	if i < 0 {
		return false
	}
	s.tabs[i].URL = url
	return true
}

// ApplyUpdate applies a host event to the tab owning surfaceID. Events for
// surfaces that no longer exist are dropped.
func (s *Store) ApplyUpdate(surfaceID string, u models.TabUpdate) bool {
	for i := range s.tabs {
		if s.tabs[i].SurfaceID == surfaceID {
			u.Apply(&s.tabs[i])
			return true
		}
	}
	return false
}

// Restore replaces the model with a persisted snapshot. Dangling references
// are repaired, every tab gets a fresh surface, and surface creation is
// issued before Restore returns. An empty snapshot leaves a single blank tab.
func (s *Store) Restore(snap models.Snapshot) error {
	var errs []error
	for _, t := range s.tabs {
		errs = append(errs, s.destroySurface(t))
	}

	s.tabs, s.groups, s.ratios = repair(snap)
	s.activeTabID = snap.ActiveTabID
	s.closed = nil
	s.undo.Clear()

	if len(s.tabs) == 0 {
		t := models.NewTab("")
		s.tabs = append(s.tabs, t)
	}
	if s.tabIndex(s.activeTabID) < 0 {
		s.activeTabID = s.tabs[0].ID
	}

	for _, t := range s.tabs {
		errs = append(errs, s.createSurface(t))
	}

	s.logger.Info("Restore", "tabs", len(s.tabs), "groups", len(s.groups), "active_tab_id", s.activeTabID)
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to recreate surfaces: %w", err)
	}
	return nil
}

// repair builds an invariant-satisfying model from a possibly inconsistent snapshot
func repair(snap models.Snapshot) ([]models.Tab, []models.Group, models.SplitRatios) {
	tabs := make([]models.Tab, 0, len(snap.Tabs))
	index := make(map[string]int, len(snap.Tabs))
	for _, t := range snap.Tabs {
		if t.ID == "" {
			continue
		}
		if _, dup := index[t.ID]; dup {
			continue
		}
		if t.URL == "" {
			t.URL = models.BlankURL
		}
		if t.Title == "" {
			t.Title = models.DefaultTitle
		}
		t.SurfaceID = models.NewID()
		t.Loading, t.AudioPlaying, t.Favicon = false, false, ""
		index[t.ID] = len(tabs)
		tabs = append(tabs, t)
	}

	claimed := make(map[string]string)
	groups := make([]models.Group, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		if g.ID == "" {
			continue
		}
		members := make([]string, 0, len(g.TabIDs))
		for _, id := range g.TabIDs {
			i, ok := index[id]
			if !ok || claimed[id] != "" || tabs[i].GroupID != g.ID {
				continue
			}
			claimed[id] = g.ID
			members = append(members, id)
		}
		if len(members) < 2 {
			for _, id := range members {
				delete(claimed, id)
			}
			continue
		}
		g = g.Clone()
		g.TabIDs = members
		if strings.TrimSpace(g.Name) == "" {
			g.Name = models.DefaultGroupName
		}
		groups = append(groups, g)
	}

	for i := range tabs {
		tabs[i].GroupID = claimed[tabs[i].ID]
	}

	ratios := make(models.SplitRatios)
	for _, g := range groups {
		if r, ok := snap.SplitRatios[g.ID]; ok && models.ValidRatios(r, len(g.TabIDs)) {
			ratios[g.ID] = append([]float64(nil), r...)
		}
	}
	return tabs, groups, ratios
}

// removeTab detaches the tab at idx from its group, releases its surface
// and drops it from the strip. The active pointer is left to the caller.
func (s *Store) removeTab(idx int) error {
	tab := s.tabs[idx]
	if tab.GroupID != "" {
		s.detach(tab.ID)
	}
	err := s.destroySurface(tab)
	s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)
	return err
}

// detach removes a tab from its group, dissolving the group if it drops
// below two members. Any custom ratios of the group are discarded.
func (s *Store) detach(tabID string) {
	ti := s.tabIndex(tabID)
	if ti < 0 {
		return
	}
	groupID := s.tabs[ti].GroupID
	s.tabs[ti].GroupID = ""

	gi := s.groupIndex(groupID)
	if gi < 0 {
		return
	}
	g := &s.groups[gi]
	if pos := g.IndexOf(tabID); pos >= 0 {
		g.TabIDs = append(g.TabIDs[:pos], g.TabIDs[pos+1:]...)
	}
	delete(s.ratios, groupID)

	if len(g.TabIDs) <= 1 {
		s.dissolve(gi)
	}
}

// dissolve removes the group at gi and ungroups its remaining members
func (s *Store) dissolve(gi int) {
	g := s.groups[gi]
	for _, id := range g.TabIDs {
		if i := s.tabIndex(id); i >= 0 {
			s.tabs[i].GroupID = ""
		}
	}
	s.groups = append(s.groups[:gi], s.groups[gi+1:]...)
	delete(s.ratios, g.ID)
	s.logger.Debug("dissolve", "group_id", g.ID)
}

func (s *Store) newGroup(tabIDs ...string) string {
	g := models.NewGroup(tabIDs...)
	s.groups = append(s.groups, g)
	for _, id := range tabIDs {
		if i := s.tabIndex(id); i >= 0 {
			s.tabs[i].GroupID = g.ID
		}
	}
	s.logger.Debug("newGroup", "group_id", g.ID, "tab_ids", tabIDs)
	return g.ID
}

func (s *Store) appendToGroup(groupID, tabID string) {
	gi := s.groupIndex(groupID)
	ti := s.tabIndex(tabID)
	if gi < 0 || ti < 0 {
		return
	}
	s.groups[gi].TabIDs = append(s.groups[gi].TabIDs, tabID)
	s.tabs[ti].GroupID = groupID
	delete(s.ratios, groupID)
}

// spliceGroups moves every member of src onto the end of dst and deletes src
func (s *Store) spliceGroups(srcID, dstID string) {
	si, di := s.groupIndex(srcID), s.groupIndex(dstID)
	if si < 0 || di < 0 {
		return
	}
	moved := s.groups[si].TabIDs
	s.groups[di].TabIDs = append(s.groups[di].TabIDs, moved...)
	for _, id := range moved {
		if i := s.tabIndex(id); i >= 0 {
			s.tabs[i].GroupID = dstID
		}
	}
	s.groups = append(s.groups[:si], s.groups[si+1:]...)
	delete(s.ratios, srcID)
	delete(s.ratios, dstID)
}

func (s *Store) createSurface(t models.Tab) error {
	if s.surfaces == nil {
		return nil
	}
	if err := s.surfaces.CreateSurface(t.SurfaceID, t.URL); err != nil {
		s.logger.Error("createSurface", "error", err, "tab_id", t.ID, "surface_id", t.SurfaceID)
		return fmt.Errorf("failed to create surface for tab %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) destroySurface(t models.Tab) error {
	if s.surfaces == nil {
		return nil
	}
	if err := s.surfaces.DestroySurface(t.SurfaceID); err != nil {
		s.logger.Error("destroySurface", "error", err, "tab_id", t.ID, "surface_id", t.SurfaceID)
		return fmt.Errorf("failed to destroy surface for tab %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) tabIndex(id string) int {
	for i, t := range s.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) groupIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, g := range s.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func insertTab(tabs []models.Tab, at int, t models.Tab) []models.Tab {
	tabs = append(tabs, models.Tab{})
	copy(tabs[at+1:], tabs[at:])
	tabs[at] = t
	return tabs
}

func insertID(ids []string, at int, id string) []string {
	ids = append(ids, "")
	copy(ids[at+1:], ids[at:])
	ids[at] = id
	return ids
}

// move returns a copy of s with the element at from relocated to to
func move[T any](s []T, from, to int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)
	item := s[from]
	out = append(out, item)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = item
	return out
}
