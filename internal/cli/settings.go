package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/widescreen/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change settings",
	Long: `Show and change the settings file. A running widescreen picks up changes
immediately.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.SettingsPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: fmt.Sprintf(`Change one setting and save the file.

Keys: %s

Examples:
  widescreen settings set search_engine google
  widescreen settings set layout.undo_window 10s`, strings.Join(settingKeys(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.SettingsPath()
		if err != nil {
			return err
		}
		s, err := config.LoadSettings(path)
		if err != nil {
			return err
		}
		if err := setSetting(&s, args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveSettings(path, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
		return nil
	},
}

// settingSetters maps setting keys, as written in the settings file, to parsers
var settingSetters = map[string]func(s *config.Settings, v string) error{
	"search_engine": func(s *config.Settings, v string) error {
		s.SearchEngine = strings.ToLower(v)
		return nil
	},
	"homepage": func(s *config.Settings, v string) error {
		s.Homepage = v
		return nil
	},
	"default_zoom":               func(s *config.Settings, v string) error { return setInt(&s.DefaultZoom, v) },
	"enable_notifications":       func(s *config.Settings, v string) error { return setBool(&s.EnableNotifications, v) },
	"private_mode":               func(s *config.Settings, v string) error { return setBool(&s.PrivateMode, v) },
	"sidebar_open":               func(s *config.Settings, v string) error { return setBool(&s.SidebarOpen, v) },
	"dark_mode":                  func(s *config.Settings, v string) error { return setBool(&s.DarkMode, v) },
	"layout.toolbar_height":      func(s *config.Settings, v string) error { return setInt(&s.Layout.ToolbarHeight, v) },
	"layout.panel_header_height": func(s *config.Settings, v string) error { return setInt(&s.Layout.PanelHeaderHeight, v) },
	"layout.sidebar_width":       func(s *config.Settings, v string) error { return setInt(&s.Layout.SidebarWidth, v) },
	"layout.border_width":        func(s *config.Settings, v string) error { return setInt(&s.Layout.BorderWidth, v) },
	"layout.min_panel_percent":   func(s *config.Settings, v string) error { return setFloat(&s.Layout.MinPanelPercent, v) },
	"layout.undo_window":         func(s *config.Settings, v string) error { return setDuration(&s.Layout.UndoWindow, v) },
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// setSetting parses value into the setting named key and validates the result
func setSetting(s *config.Settings, key, value string) error {
	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	next := *s
	if err := set(&next, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

// GetSettingsCommand returns the settings command
func GetSettingsCommand() *cobra.Command {
	return settingsCmd
}
