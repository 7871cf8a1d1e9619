package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/storage"
)

func setupTestLibrary(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("WIDESCREEN_DATA_DIR", tmpDir)

	d, err := storage.NewDatabase(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	useDatabase(d)
	return tmpDir
}

// splitSnapshot is two tabs side by side plus one ungrouped tab
func splitSnapshot() models.Snapshot {
	return models.Snapshot{
		Tabs: []models.Tab{
			{ID: "t1", SurfaceID: "s1", URL: "https://go.dev", Title: "go.dev", GroupID: "g1"},
			{ID: "t2", SurfaceID: "s2", URL: "https://pkg.go.dev", Title: "pkg.go.dev", GroupID: "g1"},
			{ID: "t3", SurfaceID: "s3", URL: "https://example.com", Title: "example.com"},
		},
		Groups:      []models.Group{{ID: "g1", Name: "Go", TabIDs: []string{"t1", "t2"}}},
		ActiveTabID: "t1",
		SplitRatios: models.SplitRatios{"g1": {40, 60}},
	}
}

func TestSaveCurrentSession_NothingOpen(t *testing.T) {
	setupTestLibrary(t)

	_, err := saveCurrentSession("empty", time.Now())
	if !errors.Is(err, errNoSession) {
		t.Errorf("Expected errNoSession, got %v", err)
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	setupTestLibrary(t)
	if err := sessions.Save(splitSnapshot()); err != nil {
		t.Fatalf("Failed to store current session: %v", err)
	}

	s, err := saveCurrentSession("research", time.Now())
	if err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if s.Name != "research" || len(s.Snapshot.Tabs) != 3 {
		t.Errorf("Expected 3-tab session named research, got %q with %d tabs", s.Name, len(s.Snapshot.Tabs))
	}

	snap, err := loadSavedSession("research")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if err := models.CheckInvariants(snap); err != nil {
		t.Errorf("Loaded session breaks invariants: %v", err)
	}
	for _, tab := range snap.Tabs {
		if tab.ID == "t1" || tab.ID == "t2" || tab.ID == "t3" {
			t.Errorf("Expected fresh tab ids, found %s", tab.ID)
		}
	}

	current, ok, err := sessions.Load()
	if err != nil || !ok {
		t.Fatalf("Failed to read current session: %v", err)
	}
	if current.ActiveTabID != snap.ActiveTabID {
		t.Errorf("Expected loaded session to become current")
	}
	if ratios := current.SplitRatios[current.Groups[0].ID]; len(ratios) != 2 || ratios[0] != 40 {
		t.Errorf("Expected ratios carried to the new group id, got %v", ratios)
	}
}

func TestLoadSavedSession_NotFound(t *testing.T) {
	setupTestLibrary(t)

	if _, err := loadSavedSession("missing"); err == nil {
		t.Error("Expected error for a missing session")
	}
}

func TestSetSetting(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(s config.Settings) bool
	}{
		{"search engine", "search_engine", "Google", false, func(s config.Settings) bool { return s.SearchEngine == config.EngineGoogle }},
		{"bool", "private_mode", "true", false, func(s config.Settings) bool { return s.PrivateMode }},
		{"duration", "layout.undo_window", "10s", false, func(s config.Settings) bool { return s.Layout.UndoWindow == 10*time.Second }},
		{"float", "layout.min_panel_percent", "20", false, func(s config.Settings) bool { return s.Layout.MinPanelPercent == 20 }},
		{"unknown key", "colour", "red", true, nil},
		{"bad bool", "dark_mode", "maybe", true, nil},
		{"fails validation", "search_engine", "altavista", true, nil},
		{"out of range", "layout.min_panel_percent", "60", true, nil},
		{"above resizable maximum", "layout.min_panel_percent", "26", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.DefaultSettings()
			err := setSetting(&s, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error")
				}
				if s != config.DefaultSettings() {
					t.Errorf("Expected settings untouched on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !tt.check(s) {
				t.Errorf("Setting %s=%s not applied: %+v", tt.key, tt.value, s)
			}
		})
	}
}

func TestSettingKeys_Sorted(t *testing.T) {
	keys := settingKeys()
	if len(keys) != len(settingSetters) {
		t.Fatalf("Expected %d keys, got %d", len(settingSetters), len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys not sorted: %q before %q", keys[i-1], keys[i])
		}
	}
}

func TestLayoutRows(t *testing.T) {
	rows := layoutRows(splitSnapshot(), models.Size{Width: 1080, Height: 800}, geometry.DefaultChrome())

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	// 900-wide panel area split 40/60 with 4-unit inner borders
	want := map[string]models.Rect{
		"t1": {X: 180, Y: 160, Width: 356, Height: 640},
		"t2": {X: 544, Y: 160, Width: 536, Height: 640},
	}
	for _, r := range rows {
		if w, ok := want[r.TabID]; ok && r.Rect != w {
			t.Errorf("Tab %s: expected %+v, got %+v", r.TabID, w, r.Rect)
		}
	}
	if !rows[0].Active || rows[1].Active {
		t.Errorf("Expected only t1 active")
	}
	if !rows[2].Rect.Hidden() {
		t.Errorf("Expected the ungrouped tab hidden, got %+v", rows[2].Rect)
	}
}

func TestTableWrite(t *testing.T) {
	items := []models.HistoryItem{
		{URL: "https://go.dev", Title: "Go, the language", VisitCount: 2, VisitedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)},
	}

	var csvOut bytes.Buffer
	if err := historyTable(items).write(&csvOut, FormatCSV); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	if !strings.Contains(csvOut.String(), `"Go, the language"`) {
		t.Errorf("Expected quoted CSV field, got %q", csvOut.String())
	}

	var jsonOut bytes.Buffer
	if err := historyTable(items).write(&jsonOut, FormatJSON); err != nil {
		t.Fatalf("Failed to write JSON: %v", err)
	}
	var decoded []models.HistoryItem
	if err := json.Unmarshal(jsonOut.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].URL != "https://go.dev" {
		t.Errorf("Unexpected JSON: %s", jsonOut.String())
	}

	var tsvOut bytes.Buffer
	if err := historyTable(items).write(&tsvOut, FormatTSV); err != nil {
		t.Fatalf("Failed to write TSV: %v", err)
	}
	if !strings.HasPrefix(tsvOut.String(), "VISITED") {
		t.Errorf("Expected header first, got %q", tsvOut.String())
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := parseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("Expected json, got %q, %v", f, err)
	}
	if f, err := parseFormat(""); err != nil || f != FormatTSV {
		t.Errorf("Expected tsv default, got %q, %v", f, err)
	}
	if _, err := parseFormat("xml"); err == nil {
		t.Error("Expected error for xml")
	}
}

func TestAddBookmark_Normalizes(t *testing.T) {
	setupTestLibrary(t)

	b, err := addBookmark("go.dev", "", "")
	if err != nil {
		t.Fatalf("Failed to add bookmark: %v", err)
	}
	if b.URL != "https://go.dev" {
		t.Errorf("Expected normalized url, got %q", b.URL)
	}
	if b.FolderID != models.RootFolderID {
		t.Errorf("Expected root folder, got %q", b.FolderID)
	}

	if _, err := addBookmark("   ", "", ""); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestHistoryListCommand(t *testing.T) {
	setupTestLibrary(t)
	if err := history.Record("https://go.dev", "go.dev", time.Now()); err != nil {
		t.Fatalf("Failed to record visit: %v", err)
	}

	var out bytes.Buffer
	historyListCmd.SetOut(&out)
	t.Cleanup(func() { historyListCmd.SetOut(nil) })
	historyFormatFlag = "csv"
	t.Cleanup(func() { historyFormatFlag = "tsv" })

	if err := historyListCmd.RunE(historyListCmd, nil); err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	if !strings.Contains(out.String(), "https://go.dev") {
		t.Errorf("Expected visit in output, got %q", out.String())
	}
}
