// Package browser wires the tab store, layout engine, gesture controllers
// and page host into one pipeline: every committed change is followed by a
// layout pass whose rectangles are pushed to the host.
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/config"
	"github.com/MikeBiancalana/widescreen/internal/geometry"
	"github.com/MikeBiancalana/widescreen/internal/host"
	"github.com/MikeBiancalana/widescreen/internal/interact"
	"github.com/MikeBiancalana/widescreen/internal/library"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/perf"
	"github.com/MikeBiancalana/widescreen/internal/workspace"
)

// Options configures a Browser
type Options struct {
	Host     host.Host
	Settings config.Settings

	// Chrome overrides Settings.Chrome(), e.g. for a character-cell front-end
	Chrome *geometry.Chrome

	Sessions *library.SessionRepository // nil disables persistence
	History  *library.HistoryRepository // nil disables history

	Logger *slog.Logger
	Clock  func() time.Time
}

// Browser owns the tab model and keeps the host's surfaces in sync with it.
// It is not safe for concurrent use; host events must be delivered through
// HandleEvent on the same goroutine as every other call.
type Browser struct {
	store  *workspace.Store
	host   host.Host
	drag   *interact.Drag
	resize *interact.Resize

	settings config.Settings
	chrome   geometry.Chrome
	fixed    bool // chrome set explicitly, not from settings
	viewport models.Size
	obscured bool

	rects  map[string]models.Rect // last layout, by tab id
	pushed map[string]models.Rect // last bounds sent, by surface id

	sessions *library.SessionRepository
	history  *library.HistoryRepository

	layouts *perf.Recorder
	pushes  *perf.Counter
	logger  *slog.Logger
	now     func() time.Time

	gestureCommitted bool
}

// New creates a browser. When a session repository is given, the stored
// session is restored; otherwise a single blank tab opens. The returned
// error reports host or storage failures; the browser is usable either way.
func New(opts Options) (*Browser, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	if opts.Host == nil {
		opts.Host = host.NewMemory(logger)
	}
	settings := opts.Settings
	if settings.SearchEngine == "" {
		settings = config.DefaultSettings()
	}

	b := &Browser{
		host:     opts.Host,
		settings: settings,
		chrome:   settings.Chrome(),
		rects:    make(map[string]models.Rect),
		pushed:   make(map[string]models.Rect),
		sessions: opts.Sessions,
		history:  opts.History,
		layouts:  perf.NewRecorder("layout", logger, perf.FrameBudget),
		pushes:   perf.NewCounter("bounds_pushes"),
		logger:   logger,
		now:      now,
	}
	if opts.Chrome != nil {
		b.chrome = *opts.Chrome
		b.fixed = true
	}

	var errs []error
	store, err := workspace.NewStore(workspace.Options{
		Surfaces:   opts.Host,
		Logger:     logger,
		UndoWindow: settings.Layout.UndoWindow,
		Clock:      now,
		InitialURL: settings.Homepage,
	})
	errs = append(errs, err)
	b.store = store
	b.drag = interact.NewDrag(store)
	b.resize = interact.NewResize(store, settings.Layout.MinPanelPercent)

	if b.sessions != nil {
		snap, ok, err := b.sessions.Load()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to load session: %w", err))
		} else if ok {
			errs = append(errs, b.store.Restore(snap))
		}
	}

	b.relayout()
	return b, errors.Join(errs...)
}

// Store exposes the tab model for reads
func (b *Browser) Store() *workspace.Store {
	return b.store
}

// Now returns the browser clock's current time
func (b *Browser) Now() time.Time {
	return b.now()
}

// Settings returns the active settings
func (b *Browser) Settings() config.Settings {
	return b.settings
}

// ApplySettings swaps in reloaded settings and re-lays-out
func (b *Browser) ApplySettings(s config.Settings) {
	b.settings = s
	if !b.fixed {
		b.chrome = s.Chrome()
	}
	b.resize = interact.NewResize(b.store, s.Layout.MinPanelPercent)
	b.relayout()
}

// SetChrome replaces the chrome dimensions
func (b *Browser) SetChrome(c geometry.Chrome) {
	b.chrome = c
	b.fixed = true
	b.relayout()
}

// Chrome returns the chrome dimensions in use
func (b *Browser) Chrome() geometry.Chrome {
	return b.chrome
}

// SetViewport records a window resize
func (b *Browser) SetViewport(size models.Size) {
	b.viewport = size
	b.relayout()
}

// Viewport returns the window size
func (b *Browser) Viewport() models.Size {
	return b.viewport
}

// SetObscured hides every surface while a modal covers the page area
func (b *Browser) SetObscured(obscured bool) {
	if b.obscured == obscured {
		return
	}
	b.obscured = obscured
	b.relayout()
}

// Obscured reports whether surfaces are hidden for a modal
func (b *Browser) Obscured() bool {
	return b.obscured
}

// Input returns the current layout input
func (b *Browser) Input() geometry.Input {
	snap := b.store.Snapshot()
	return geometry.Input{
		Tabs:        snap.Tabs,
		Groups:      snap.Groups,
		SplitRatios: snap.SplitRatios,
		ActiveTabID: snap.ActiveTabID,
		Viewport:    b.viewport,
		Chrome:      b.chrome,
		Drag:        b.drag.Offset(),
		Obscured:    b.obscured,
	}
}

// Rects returns the rectangles of the last layout pass, by tab id
func (b *Browser) Rects() map[string]models.Rect {
	out := make(map[string]models.Rect, len(b.rects))
	for id, r := range b.rects {
		out[id] = r
	}
	return out
}

// LayoutStats returns timing of layout passes
func (b *Browser) LayoutStats() perf.Stats {
	return b.layouts.Stats()
}

// BoundsPushes returns how many bounds updates were sent to the host
func (b *Browser) BoundsPushes() int64 {
	return b.pushes.Value()
}

// LogStats reports layout timings and bounds traffic at debug level
func (b *Browser) LogStats() {
	b.layouts.LogStats(slog.LevelDebug)
	b.logger.Debug("browser: bounds pushed", "count", b.pushes.Value())
}

// relayout recomputes the layout and pushes changed bounds to the host
func (b *Browser) relayout() {
	in := b.Input()
	var rects map[string]models.Rect
	b.layouts.Time(func() {
		rects = geometry.Layout(in)
	})
	b.rects = rects

	live := make(map[string]bool, len(in.Tabs))
	for _, t := range in.Tabs {
		live[t.SurfaceID] = true
		r := rects[t.ID]
		if prev, ok := b.pushed[t.SurfaceID]; ok && prev == r {
			continue
		}
		b.host.SetSurfaceBounds(t.SurfaceID, r)
		b.pushed[t.SurfaceID] = r
		b.pushes.Inc()
	}
	for id := range b.pushed {
		if !live[id] {
			delete(b.pushed, id)
		}
	}
}

// commit follows every discrete mutation: re-layout, then persist
func (b *Browser) commit() {
	b.relayout()
	b.persist()
}

func (b *Browser) persist() {
	if b.sessions == nil {
		return
	}
	if err := b.sessions.Save(b.store.Snapshot()); err != nil {
		b.logger.Error("failed to persist session", "error", err)
	}
}

func (b *Browser) recordVisit(rawURL, title string) {
	if b.history == nil || b.settings.PrivateMode {
		return
	}
	if err := b.history.Record(rawURL, title, b.now()); err != nil {
		b.logger.Warn("failed to record history", "error", err, "url", rawURL)
	}
}
