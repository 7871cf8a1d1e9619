package cli

import (
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

var (
	layoutWidthFlag  int
	layoutHeightFlag int
	layoutFormatFlag string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the panel rectangles of the current session",
	Long: `Compute where every tab of the current session would be placed in a window
of the given size, using the chrome dimensions from the settings file. Hidden
tabs have zero height.

Examples:
  widescreen layout --width 1920 --height 1080
  widescreen layout --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(layoutFormatFlag)
		if err != nil {
			return err
		}
		settings, err := config.Load()
		if err != nil {
			return err
		}
		snap, ok, err := sessions.Load()
		if err != nil {
			return err
		}
		if !ok {
			return errNoSession
		}

		rows := layoutRows(snap, models.Size{Width: layoutWidthFlag, Height: layoutHeightFlag}, settings.Chrome())
		return layoutTable(rows).write(cmd.OutOrStdout(), format)
	},
}

// layoutRows lays snap out in viewport and lists the rectangles in strip order
func layoutRows(snap models.Snapshot, viewport models.Size, chrome geometry.Chrome) []rectRow {
	rects := geometry.Layout(geometry.Input{
		Tabs:        snap.Tabs,
		Groups:      snap.Groups,
		SplitRatios: snap.SplitRatios,
		ActiveTabID: snap.ActiveTabID,
		Viewport:    viewport,
		Chrome:      chrome,
	})

	rows := make([]rectRow, 0, len(snap.Tabs))
	for _, t := range snap.Tabs {
		rows = append(rows, rectRow{
			TabID:  t.ID,
			URL:    t.URL,
			Group:  t.GroupID,
			Active: t.ID == snap.ActiveTabID,
			Rect:   rects[t.ID],
		})
	}
	return rows
}

func init() {
	layoutCmd.Flags().IntVar(&layoutWidthFlag, "width", 1920, "Window width")
	layoutCmd.Flags().IntVar(&layoutHeightFlag, "height", 1080, "Window height")
	layoutCmd.Flags().StringVar(&layoutFormatFlag, "format", "tsv", "Output format (json, tsv, csv)")
}

// GetLayoutCommand returns the layout command
func GetLayoutCommand() *cobra.Command {
	return layoutCmd
}
