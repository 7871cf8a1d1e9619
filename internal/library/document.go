// Package library persists the tab strip and the user's saved sessions,
// bookmarks and history.
package library

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

// SessionDocument is the YAML form of a saved or exported session
type SessionDocument struct {
	Name      string        `yaml:"name"`
	CreatedAt time.Time     `yaml:"created_at"`
	ActiveTab string        `yaml:"active_tab,omitempty"`
	Tabs      []documentTab `yaml:"tabs"`
	Groups    []documentGrp `yaml:"groups,omitempty"`
}

type documentTab struct {
	ID     string `yaml:"id"`
	URL    string `yaml:"url"`
	Title  string `yaml:"title"`
	Pinned bool   `yaml:"pinned,omitempty"`
	Group  string `yaml:"group,omitempty"`
}

type documentGrp struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Collapsed bool      `yaml:"collapsed"`
	Tabs      []string  `yaml:"tabs"`
	Ratios    []float64 `yaml:"ratios,omitempty,flow"`
}

// NewSessionDocument converts a snapshot to its document form
func NewSessionDocument(name string, createdAt time.Time, snap models.Snapshot) SessionDocument {
	doc := SessionDocument{
		Name:      name,
		CreatedAt: createdAt.UTC(),
		ActiveTab: snap.ActiveTabID,
		Tabs:      make([]documentTab, 0, len(snap.Tabs)),
	}
	for _, t := range snap.Tabs {
		doc.Tabs = append(doc.Tabs, documentTab{
			ID:     t.ID,
			URL:    t.URL,
			Title:  t.Title,
			Pinned: t.Pinned,
			Group:  t.GroupID,
		})
	}
	for _, g := range snap.Groups {
		doc.Groups = append(doc.Groups, documentGrp{
			ID:        g.ID,
			Name:      g.Name,
			Collapsed: g.Collapsed,
			Tabs:      append([]string(nil), g.TabIDs...),
			Ratios:    append([]float64(nil), snap.SplitRatios[g.ID]...),
		})
	}
	return doc
}

// Snapshot converts the document back to a snapshot. Surface ids are left
// empty; Store.Restore allocates them.
func (d SessionDocument) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		ActiveTabID: d.ActiveTab,
		Tabs:        make([]models.Tab, 0, len(d.Tabs)),
		SplitRatios: make(models.SplitRatios),
	}
	for _, t := range d.Tabs {
		snap.Tabs = append(snap.Tabs, models.Tab{
			ID:      t.ID,
			URL:     t.URL,
			Title:   t.Title,
			Pinned:  t.Pinned,
			GroupID: t.Group,
		})
	}
	for _, g := range d.Groups {
		snap.Groups = append(snap.Groups, models.Group{
			ID:        g.ID,
			Name:      g.Name,
			Collapsed: g.Collapsed,
			TabIDs:    append([]string(nil), g.Tabs...),
		})
		if len(g.Ratios) > 0 {
			snap.SplitRatios[g.ID] = append([]float64(nil), g.Ratios...)
		}
	}
	return snap
}

// Marshal encodes the document as YAML
func (d SessionDocument) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// UnmarshalSessionDocument decodes a YAML session document
func UnmarshalSessionDocument(data []byte) (SessionDocument, error) {
	var doc SessionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return SessionDocument{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return doc, nil
}
