package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "tsv", "":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, tsv, csv)", s)
	}
}

// table is a listing that can be written in any OutputFormat. JSON output
// encodes value; TSV and CSV write header and rows.
type table struct {
	header []string
	rows   [][]string
	value  any
}

func (t table) write(w io.Writer, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(t.value)

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(t.header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, r := range t.rows {
			if err := cw.Write(r); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(tw, strings.Join(t.header, "\t"))
		for _, r := range t.rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		return tw.Flush()
	}
}

func historyTable(items []models.HistoryItem) table {
	t := table{header: []string{"VISITED", "VISITS", "TITLE", "URL"}, value: items}
	for _, h := range items {
		t.rows = append(t.rows, []string{
			h.VisitedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", h.VisitCount),
			h.Title,
			h.URL,
		})
	}
	return t
}

func bookmarksTable(items []models.Bookmark) table {
	t := table{header: []string{"ID", "FOLDER", "TITLE", "URL"}, value: items}
	for _, b := range items {
		t.rows = append(t.rows, []string{b.ID, b.FolderID, b.Title, b.URL})
	}
	return t
}

func foldersTable(items []models.BookmarkFolder) table {
	t := table{header: []string{"ID", "PARENT", "NAME"}, value: items}
	for _, f := range items {
		parent := f.ParentID
		if parent == "" {
			parent = "-"
		}
		t.rows = append(t.rows, []string{f.ID, parent, f.Name})
	}
	return t
}

// savedSessionRow is the JSON shape of a saved session listing
type savedSessionRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tabs      int       `json:"tabs"`
	Groups    int       `json:"groups"`
	CreatedAt time.Time `json:"created_at"`
}

func savedSessionsTable(items []models.SavedSession) table {
	out := make([]savedSessionRow, 0, len(items))
	t := table{header: []string{"ID", "NAME", "TABS", "GROUPS", "CREATED"}}
	for _, s := range items {
		row := savedSessionRow{
			ID:        s.ID,
			Name:      s.Name,
			Tabs:      len(s.Snapshot.Tabs),
			Groups:    len(s.Snapshot.Groups),
			CreatedAt: s.CreatedAt,
		}
		out = append(out, row)
		t.rows = append(t.rows, []string{
			row.ID,
			row.Name,
			fmt.Sprintf("%d", row.Tabs),
			fmt.Sprintf("%d", row.Groups),
			row.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.value = out
	return t
}

// rectRow is one tab's rectangle in a layout listing
type rectRow struct {
	TabID  string      `json:"tab_id"`
	URL    string      `json:"url"`
	Group  string      `json:"group,omitempty"`
	Active bool        `json:"active"`
	Rect   models.Rect `json:"rect"`
}

func layoutTable(rows []rectRow) table {
	t := table{header: []string{"TAB", "GROUP", "ACTIVE", "X", "Y", "W", "H", "URL"}, value: rows}
	for _, r := range rows {
		active := ""
		if r.Active {
			active = "*"
		}
		group := r.Group
		if group == "" {
			group = "-"
		}
		t.rows = append(t.rows, []string{
			r.TabID,
			group,
			active,
			fmt.Sprintf("%d", r.Rect.X),
			fmt.Sprintf("%d", r.Rect.Y),
			fmt.Sprintf("%d", r.Rect.Width),
			fmt.Sprintf("%d", r.Rect.Height),
			r.URL,
		})
	}
	return t
}
