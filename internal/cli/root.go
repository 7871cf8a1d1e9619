package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/widescreen/internal/browser"
	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/host"
	"github.com/MikeBiancalana/widescreen/internal/library"
	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/storage"
	"github.com/MikeBiancalana/widescreen/internal/sync"
	"github.com/MikeBiancalana/widescreen/internal/tui"
)

var (
	db        *storage.Database
	sessions  *library.SessionRepository
	saved     *library.SavedSessionRepository
	bookmarks *library.BookmarkRepository
	history   *library.HistoryRepository
)

// RootCmd is the root command for the CLI
var RootCmd = &cobra.Command{
	Use:   "widescreen",
	Short: "Widescreen - split-view tab browsing shell",
	Long: `A browsing shell that groups tabs into side-by-side panels.

Run without arguments to open the terminal front-end. Drag a tab onto another
to split the view; drag panel headers to reorder and the gaps between panels
to resize.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	cobra.OnInitialize(initLibrary)

	RootCmd.AddCommand(GetSessionCommand())
	RootCmd.AddCommand(GetHistoryCommand())
	RootCmd.AddCommand(GetBookmarkCommand())
	RootCmd.AddCommand(GetSettingsCommand())
	RootCmd.AddCommand(GetLayoutCommand())
}

// initLibrary opens the database and its repositories
func initLibrary() {
	dbPath, err := config.DatabasePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting database path: %v\n", err)
		os.Exit(1)
	}

	db, err = storage.NewDatabase(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	useDatabase(db)
}

// useDatabase points every repository at d
func useDatabase(d *storage.Database) {
	db = d
	sessions = library.NewSessionRepository(d)
	saved = library.NewSavedSessionRepository(d)
	bookmarks = library.NewBookmarkRepository(d)
	history = library.NewHistoryRepository(d)
}

// runTUI opens the terminal front-end on the stored session
func runTUI() error {
	cfg := logger.ConfigFromEnv()
	cfg.TUIMode = true
	if err := logger.InitializeWithConfig(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	log := logger.GetLogger()

	settingsPath, err := config.SettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		// Defaults still work; the user sees the problem in the log
		log.Warn("using default settings", "error", err)
	}

	b, err := browser.New(browser.Options{
		Host:     host.NewMemory(log),
		Settings: settings,
		Sessions: sessions,
		History:  history,
		Logger:   log,
	})
	if err != nil {
		log.Error("browser started with errors", "error", err)
	}

	watcher, err := sync.NewWatcher(settingsPath, log)
	if err != nil {
		log.Warn("settings will not reload", "error", err)
		watcher = nil
	}

	model := tui.NewModel(b, tui.Options{
		History:      history,
		Bookmarks:    bookmarks,
		Saved:        saved,
		Watcher:      watcher,
		SettingsPath: settingsPath,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if db != nil {
			db.Close()
		}
	}()
	return RootCmd.Execute()
}
