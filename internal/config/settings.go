package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/widescreen/internal/geometry"
)

// Search engines understood by the address bar
const (
	EngineDuckDuckGo = "duckduckgo"
	EngineGoogle     = "google"
	EngineBing       = "bing"
)

var searchURLs = map[string]string{
	EngineDuckDuckGo: "https://duckduckgo.com/?q=",
	EngineGoogle:     "https://www.google.com/search?q=",
	EngineBing:       "https://www.bing.com/search?q=",
}

// Settings are the user preferences stored in settings.yaml
type Settings struct {
	SearchEngine        string `yaml:"search_engine"`
	Homepage            string `yaml:"homepage"`
	DefaultZoom         int    `yaml:"default_zoom"`
	EnableNotifications bool   `yaml:"enable_notifications"`
	PrivateMode         bool   `yaml:"private_mode"`
	SidebarOpen         bool   `yaml:"sidebar_open"`
	DarkMode            bool   `yaml:"dark_mode"`
	Layout              Layout `yaml:"layout"`
}

// Layout holds the chrome dimensions and interaction limits
type Layout struct {
	ToolbarHeight     int           `yaml:"toolbar_height"`
	PanelHeaderHeight int           `yaml:"panel_header_height"`
	SidebarWidth      int           `yaml:"sidebar_width"`
	BorderWidth       int           `yaml:"border_width"`
	MinPanelPercent   float64       `yaml:"min_panel_percent"`
	UndoWindow        time.Duration `yaml:"undo_window"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	chrome := geometry.DefaultChrome()
	return Settings{
		SearchEngine:        EngineDuckDuckGo,
		Homepage:            "about:blank",
		DefaultZoom:         100,
		EnableNotifications: true,
		SidebarOpen:         true,
		DarkMode:            true,
		Layout: Layout{
			ToolbarHeight:     chrome.ToolbarHeight,
			PanelHeaderHeight: chrome.PanelHeaderHeight,
			SidebarWidth:      chrome.SidebarWidth,
			BorderWidth:       chrome.BorderWidth,
			MinPanelPercent:   15,
			UndoWindow:        5 * time.Second,
		},
	}
}

// MaxMinPanelPercent is the largest panel minimum that still lets a
// four-panel group be resized
const MaxMinPanelPercent = 25.0

// Validate checks the settings for values the shell cannot use
func (s Settings) Validate() error {
	var errs []error
	if _, ok := searchURLs[s.SearchEngine]; !ok {
		errs = append(errs, fmt.Errorf("unknown search engine %q", s.SearchEngine))
	}
	if s.DefaultZoom < 25 || s.DefaultZoom > 500 {
		errs = append(errs, fmt.Errorf("default_zoom %d out of range 25-500", s.DefaultZoom))
	}
	l := s.Layout
	if l.ToolbarHeight < 0 || l.PanelHeaderHeight < 0 || l.SidebarWidth < 0 || l.BorderWidth < 0 {
		errs = append(errs, errors.New("layout dimensions must not be negative"))
	}
	if l.MinPanelPercent <= 0 || l.MinPanelPercent > MaxMinPanelPercent {
		errs = append(errs, fmt.Errorf("min_panel_percent %.1f out of range (0, %g]", l.MinPanelPercent, MaxMinPanelPercent))
	}
	if l.UndoWindow <= 0 {
		errs = append(errs, fmt.Errorf("undo_window %s must be positive", l.UndoWindow))
	}
	return errors.Join(errs...)
}

// SearchURL returns the query prefix of the configured engine
func (s Settings) SearchURL() string {
	if u, ok := searchURLs[strings.ToLower(s.SearchEngine)]; ok {
		return u
	}
	return searchURLs[EngineDuckDuckGo]
}

// Chrome converts the layout settings to geometry chrome. The sidebar only
// takes space while it is open.
func (s Settings) Chrome() geometry.Chrome {
	c := geometry.Chrome{
		ToolbarHeight:     s.Layout.ToolbarHeight,
		PanelHeaderHeight: s.Layout.PanelHeaderHeight,
		BorderWidth:       s.Layout.BorderWidth,
	}
	if s.SidebarOpen {
		c.SidebarWidth = s.Layout.SidebarWidth
	}
	return c
}

// LoadSettings reads settings from path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings writes settings to path
func SaveSettings(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Load reads the settings file from the data directory
func Load() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return DefaultSettings(), err
	}
	return LoadSettings(path)
}
