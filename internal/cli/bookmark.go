package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/widescreen/internal/browser"
	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

var (
	bookmarkFolderFlag string
	bookmarkParentFlag string
	bookmarkFormatFlag string
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarks",
	Long:  "Add, list, move and remove bookmarks and their folders.",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add [url] [title]",
	Short: "Bookmark a page",
	Long: `Bookmark a page. The address is normalized like the address bar does, so
"go.dev" becomes https://go.dev. Without arguments a form asks for the details.

Examples:
  widescreen bookmark add go.dev "The Go Programming Language"
  widescreen bookmark add https://pkg.go.dev --folder <folder-id>
  widescreen bookmark add`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var input, title string
		folderID := bookmarkFolderFlag
		if len(args) == 0 {
			var err error
			input, title, folderID, err = runBookmarkForm()
			if err != nil {
				return err
			}
		} else {
			input = args[0]
			title = strings.Join(args[1:], " ")
		}

		b, err := addBookmark(input, title, folderID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Bookmarked %s\n", b.URL)
		return nil
	},
}

// addBookmark normalizes input and stores it in folderID
func addBookmark(input, title, folderID string) (models.Bookmark, error) {
	settings, err := config.Load()
	if err != nil {
		settings = config.DefaultSettings()
	}
	url := browser.NormalizeURL(input, settings.SearchURL())
	if url == "" {
		return models.Bookmark{}, fmt.Errorf("url is required")
	}
	b, err := bookmarks.Add(url, title, folderID)
	if err != nil {
		return models.Bookmark{}, err
	}
	return b, nil
}

// runBookmarkForm asks for the url, title and folder of a new bookmark
func runBookmarkForm() (url, title, folderID string, err error) {
	folders, err := bookmarks.Folders()
	if err != nil {
		return "", "", "", err
	}
	options := make([]huh.Option[string], 0, len(folders))
	for _, f := range folders {
		options = append(options, huh.NewOption(f.Name, f.ID))
	}
	folderID = models.RootFolderID

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Address").
				Value(&url).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("address is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Title (optional)").
				Value(&title),
			huh.NewSelect[string]().
				Title("Folder").
				Options(options...).
				Value(&folderID),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", "", fmt.Errorf("form cancelled: %w", err)
	}
	return url, title, folderID, nil
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(bookmarkFormatFlag)
		if err != nil {
			return err
		}
		items, err := bookmarks.List(bookmarkFolderFlag)
		if err != nil {
			return err
		}
		if len(items) == 0 && format != FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks")
			return nil
		}
		return bookmarksTable(items).write(cmd.OutOrStdout(), format)
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove [bookmark-id]",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := bookmarks.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("bookmark %s not found", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed bookmark %s\n", args[0])
		return nil
	},
}

var bookmarkMoveCmd = &cobra.Command{
	Use:   "move [bookmark-id] [folder-id]",
	Short: "Move a bookmark to another folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bookmarks.Move(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to move bookmark: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved bookmark %s\n", args[0])
		return nil
	},
}

var bookmarkFoldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List bookmark folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(bookmarkFormatFlag)
		if err != nil {
			return err
		}
		folders, err := bookmarks.Folders()
		if err != nil {
			return err
		}
		return foldersTable(folders).write(cmd.OutOrStdout(), format)
	},
}

var bookmarkFolderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Create, rename and delete bookmark folders",
}

var bookmarkFolderAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a folder",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := bookmarks.CreateFolder(strings.Join(args, " "), bookmarkParentFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created folder %q (%s)\n", f.Name, f.ID)
		return nil
	},
}

var bookmarkFolderRenameCmd = &cobra.Command{
	Use:   "rename [folder-id] [name]",
	Short: "Rename a folder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bookmarks.RenameFolder(args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed folder %s\n", args[0])
		return nil
	},
}

var bookmarkFolderDeleteCmd = &cobra.Command{
	Use:   "delete [folder-id]",
	Short: "Delete a folder and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bookmarks.DeleteFolder(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted folder %s\n", args[0])
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkMoveCmd)
	bookmarkCmd.AddCommand(bookmarkFoldersCmd)
	bookmarkCmd.AddCommand(bookmarkFolderCmd)

	bookmarkFolderCmd.AddCommand(bookmarkFolderAddCmd)
	bookmarkFolderCmd.AddCommand(bookmarkFolderRenameCmd)
	bookmarkFolderCmd.AddCommand(bookmarkFolderDeleteCmd)

	bookmarkAddCmd.Flags().StringVar(&bookmarkFolderFlag, "folder", "", "Folder id (default: root)")
	bookmarkListCmd.Flags().StringVar(&bookmarkFolderFlag, "folder", "", "Only list this folder")
	bookmarkFolderAddCmd.Flags().StringVar(&bookmarkParentFlag, "parent", "", "Parent folder id (default: root)")
	bookmarkCmd.PersistentFlags().StringVar(&bookmarkFormatFlag, "format", "tsv", "Output format (json, tsv, csv)")
}

// GetBookmarkCommand returns the bookmark command
func GetBookmarkCommand() *cobra.Command {
	return bookmarkCmd
}
