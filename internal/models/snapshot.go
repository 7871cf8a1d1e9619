package models

import (
	"fmt"
	"math"
)

// RatioEpsilon is the tolerance allowed when checking that split ratios sum to 100
const RatioEpsilon = 0.01

// SplitRatios maps a group id to one percentage per panel. A missing entry
// means an equal split.
type SplitRatios map[string][]float64

// Clone returns a deep copy
func (s SplitRatios) Clone() SplitRatios {
	out := make(SplitRatios, len(s))
	for id, r := range s {
		out[id] = append([]float64(nil), r...)
	}
	return out
}

// ValidRatios reports whether ratios describe n panels summing to 100
func ValidRatios(ratios []float64, n int) bool {
	if n == 0 || len(ratios) != n {
		return false
	}
	sum := 0.0
	for _, r := range ratios {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return false
		}
		sum += r
	}
	return math.Abs(sum-100) <= RatioEpsilon
}

// EqualRatios returns n equal percentages
func EqualRatios(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 / float64(n)
	}
	return out
}

// Snapshot is the complete persisted state of the tab strip
type Snapshot struct {
	Tabs        []Tab       `json:"tabs"`
	Groups      []Group     `json:"groups"`
	ActiveTabID string      `json:"active_tab_id"`
	SplitRatios SplitRatios `json:"split_ratios"`
}

// Clone returns a deep copy
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Tabs:        append([]Tab(nil), s.Tabs...),
		Groups:      make([]Group, len(s.Groups)),
		ActiveTabID: s.ActiveTabID,
		SplitRatios: s.SplitRatios.Clone(),
	}
	for i, g := range s.Groups {
		out.Groups[i] = g.Clone()
	}
	return out
}

// CheckInvariants returns an error describing the first violated model invariant
func CheckInvariants(s Snapshot) error {
	tabs := make(map[string]Tab, len(s.Tabs))
	for _, t := range s.Tabs {
		if _, dup := tabs[t.ID]; dup {
			return fmt.Errorf("duplicate tab id %s", t.ID)
		}
		tabs[t.ID] = t
	}

	surfaces := make(map[string]string, len(s.Tabs))
	for _, t := range s.Tabs {
		if t.SurfaceID == "" {
			return fmt.Errorf("tab %s has no surface", t.ID)
		}
		if other, dup := surfaces[t.SurfaceID]; dup {
			return fmt.Errorf("surface %s shared by tabs %s and %s", t.SurfaceID, other, t.ID)
		}
		surfaces[t.SurfaceID] = t.ID
	}

	groups := make(map[string]Group, len(s.Groups))
	for _, g := range s.Groups {
		if _, dup := groups[g.ID]; dup {
			return fmt.Errorf("duplicate group id %s", g.ID)
		}
		groups[g.ID] = g
		if len(g.TabIDs) < 2 {
			return fmt.Errorf("group %s has %d members", g.ID, len(g.TabIDs))
		}
		seen := make(map[string]bool, len(g.TabIDs))
		for _, id := range g.TabIDs {
			if seen[id] {
				return fmt.Errorf("group %s lists tab %s twice", g.ID, id)
			}
			seen[id] = true
			t, ok := tabs[id]
			if !ok {
				return fmt.Errorf("group %s references missing tab %s", g.ID, id)
			}
			if t.GroupID != g.ID {
				return fmt.Errorf("group %s lists tab %s which points at %q", g.ID, id, t.GroupID)
			}
		}
	}

	for _, t := range s.Tabs {
		if t.GroupID == "" {
			continue
		}
		g, ok := groups[t.GroupID]
		if !ok {
			return fmt.Errorf("tab %s references missing group %s", t.ID, t.GroupID)
		}
		if g.IndexOf(t.ID) < 0 {
			return fmt.Errorf("tab %s not listed by its group %s", t.ID, g.ID)
		}
	}

	for id, r := range s.SplitRatios {
		g, ok := groups[id]
		if !ok {
			return fmt.Errorf("split ratios for missing group %s", id)
		}
		if !ValidRatios(r, len(g.TabIDs)) {
			return fmt.Errorf("split ratios %v invalid for group %s with %d members", r, id, len(g.TabIDs))
		}
	}

	if len(s.Tabs) > 0 {
		if _, ok := tabs[s.ActiveTabID]; !ok {
			return fmt.Errorf("active tab %q does not exist", s.ActiveTabID)
		}
	}
	return nil
}
