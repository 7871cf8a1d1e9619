package browser

import (
	"github.com/sahilm/fuzzy"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

// tabSource adapts a tab list to fuzzy.Source, matching on title and url
type tabSource []models.Tab

func (s tabSource) String(i int) string {
	return s[i].Title + " " + s[i].URL
}

func (s tabSource) Len() int {
	return len(s)
}

// SearchTabs returns tabs matching query, best match first. An empty query
// returns every tab in strip order.
func (b *Browser) SearchTabs(query string) []models.Tab {
	tabs := b.store.Tabs()
	if query == "" {
		return tabs
	}
	matches := fuzzy.FindFrom(query, tabSource(tabs))
	out := make([]models.Tab, 0, len(matches))
	for _, m := range matches {
		out = append(out, tabs[m.Index])
	}
	return out
}
