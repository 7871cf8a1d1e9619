package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/perf"
	"github.com/MikeBiancalana/widescreen/internal/storage"
)

var (
	sessionFormatFlag string
	sessionYesFlag    bool
	sessionRemoveFlag bool
)

// errNoSession is returned when there are no open tabs to save
var errNoSession = errors.New("no open tabs to save; start widescreen first")

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved sessions",
	Long:  "Save the open tabs under a name, list saved sessions, and load one to reopen it on the next start.",
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the open tabs",
	Long: `Save the tabs, groups and panel widths of the current session under a name.

Examples:
  widescreen session save research
  widescreen session save            # prompts for a name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		if name == "" {
			var err error
			name, err = promptSessionName()
			if err != nil {
				return err
			}
		}

		s, err := saveCurrentSession(name, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved session %q (%d tabs, %d groups)\n", s.Name, len(s.Snapshot.Tabs), len(s.Snapshot.Groups))
		return nil
	},
}

// promptSessionName asks for a session name
func promptSessionName() (string, error) {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("form cancelled: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// saveCurrentSession copies the stored current session into a named one
func saveCurrentSession(name string, at time.Time) (models.SavedSession, error) {
	snap, ok, err := sessions.Load()
	if err != nil {
		return models.SavedSession{}, err
	}
	if !ok || len(snap.Tabs) == 0 {
		return models.SavedSession{}, errNoSession
	}
	return saved.Save(name, snap, at)
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(sessionFormatFlag)
		if err != nil {
			return err
		}

		list, err := saved.List()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(list) == 0 && format != FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved sessions")
			return nil
		}
		return savedSessionsTable(list).write(cmd.OutOrStdout(), format)
	},
}

var sessionLoadCmd = &cobra.Command{
	Use:   "load [name-or-id]",
	Short: "Reopen a saved session on the next start",
	Long: `Replace the current session with a saved one. Tabs and groups get new ids,
so a session can be loaded any number of times.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSavedSession(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Loaded %q (%d tabs)\n", args[0], len(snap.Tabs))
		return nil
	},
}

// loadSavedSession makes a saved session the current one
func loadSavedSession(idOrName string) (models.Snapshot, error) {
	defer perf.Measure("session_load", logger.GetLogger(), 100)()

	s, err := saved.Get(idOrName)
	if err != nil {
		return models.Snapshot{}, err
	}
	if s == nil {
		return models.Snapshot{}, fmt.Errorf("session %q not found", idOrName)
	}
	snap := s.Snapshot.WithFreshIDs()
	if err := sessions.Save(snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load session: %w", err)
	}
	return snap, nil
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [name-or-id]",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sessionYesFlag {
			ok, err := confirm(fmt.Sprintf("Delete session %q?", args[0]))
			if err != nil || !ok {
				return err
			}
		}

		deleted, err := saved.Delete(args[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("session %q not found", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted session %q\n", args[0])
		return nil
	},
}

var sessionExportCmd = &cobra.Command{
	Use:   "export [name-or-id]",
	Short: "Write a saved session to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := storage.NewFileStore()
		if err != nil {
			return err
		}
		path, err := saved.Export(fs, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", path)
		return nil
	},
}

var sessionImportCmd = &cobra.Command{
	Use:   "import [name]",
	Short: "Save a session from a YAML file in the sessions directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := storage.NewFileStore()
		if err != nil {
			return err
		}
		s, err := saved.Import(fs, args[0], time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %q (%d tabs)\n", s.Name, len(s.Snapshot.Tabs))
		if sessionRemoveFlag {
			return fs.DeleteSessionFile(args[0])
		}
		return nil
	},
}

var sessionFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List exported session files",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := storage.NewFileStore()
		if err != nil {
			return err
		}
		names, err := fs.ListSessionFiles()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No exported sessions")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// confirm asks a yes/no question
func confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		return false, fmt.Errorf("form cancelled: %w", err)
	}
	return ok, nil
}

func init() {
	sessionCmd.AddCommand(sessionSaveCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionLoadCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionExportCmd)
	sessionCmd.AddCommand(sessionImportCmd)
	sessionCmd.AddCommand(sessionFilesCmd)

	sessionListCmd.Flags().StringVar(&sessionFormatFlag, "format", "tsv", "Output format (json, tsv, csv)")
	sessionDeleteCmd.Flags().BoolVarP(&sessionYesFlag, "yes", "y", false, "Skip confirmation")
}

// GetSessionCommand returns the session command
func GetSessionCommand() *cobra.Command {
	return sessionCmd
}
