package host

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

// EventBuffer is the capacity of the Memory host's event channel
const EventBuffer = 256

var (
	ErrSurfaceExists  = errors.New("surface already exists")
	ErrUnknownSurface = errors.New("unknown surface")
)

// Surface is the state the Memory host keeps for one surface
type Surface struct {
	ID      string
	URL     string
	Title   string
	Bounds  models.Rect
	Back    []string
	Forward []string
	Reloads int
}

// Suspended reports whether the surface currently has no visible area
func (s Surface) Suspended() bool {
	return s.Bounds.Hidden()
}

// Memory is a Host that keeps surfaces in memory. Navigation completes
// immediately and emits the same event sequence a real host would. It backs
// the terminal front-end, which draws page placeholders itself.
type Memory struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
	events   chan Event
	dropped  int
	cleared  int
	logger   *slog.Logger

	// ClearCacheErr, when set, is returned by ClearCache
	ClearCacheErr error
}

// NewMemory creates an empty in-memory host
func NewMemory(logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		surfaces: make(map[string]*Surface),
		events:   make(chan Event, EventBuffer),
		logger:   logger,
	}
}

func (m *Memory) CreateSurface(surfaceID, rawURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.surfaces[surfaceID]; ok {
		return fmt.Errorf("failed to create surface %s: %w", surfaceID, ErrSurfaceExists)
	}
	s := &Surface{ID: surfaceID}
	m.surfaces[surfaceID] = s
	m.load(s, rawURL)
	return nil
}

func (m *Memory) DestroySurface(surfaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.surfaces[surfaceID]; !ok {
		return fmt.Errorf("failed to destroy surface %s: %w", surfaceID, ErrUnknownSurface)
	}
	delete(m.surfaces, surfaceID)
	return nil
}

func (m *Memory) SetSurfaceBounds(surfaceID string, bounds models.Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.surfaces[surfaceID]; ok {
		s.Bounds = bounds
	}
}

func (m *Memory) NavigateSurface(surfaceID, rawURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surfaces[surfaceID]
	if !ok {
		return
	}
	if s.URL != "" {
		s.Back = append(s.Back, s.URL)
	}
	s.Forward = nil
	m.load(s, rawURL)
}

func (m *Memory) GoBack(surfaceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surfaces[surfaceID]
	if !ok || len(s.Back) == 0 {
		return
	}
	prev := s.Back[len(s.Back)-1]
	s.Back = s.Back[:len(s.Back)-1]
	s.Forward = append(s.Forward, s.URL)
	m.load(s, prev)
}

func (m *Memory) GoForward(surfaceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surfaces[surfaceID]
	if !ok || len(s.Forward) == 0 {
		return
	}
	next := s.Forward[len(s.Forward)-1]
	s.Forward = s.Forward[:len(s.Forward)-1]
	s.Back = append(s.Back, s.URL)
	m.load(s, next)
}

func (m *Memory) Reload(surfaceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.surfaces[surfaceID]; ok {
		s.Reloads++
		m.load(s, s.URL)
	}
}

func (m *Memory) ClearCache() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ClearCacheErr != nil {
		return fmt.Errorf("failed to clear cache: %w", m.ClearCacheErr)
	}
	m.cleared++
	return nil
}

func (m *Memory) Events() <-chan Event {
	return m.events
}

// Surface returns a copy of a surface's state
func (m *Memory) Surface(surfaceID string) (Surface, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surfaces[surfaceID]
	if !ok {
		return Surface{}, false
	}
	out := *s
	out.Back = append([]string(nil), s.Back...)
	out.Forward = append([]string(nil), s.Forward...)
	return out, true
}

// SurfaceIDs returns the ids of all live surfaces in sorted order
func (m *Memory) SurfaceIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.surfaces))
	for id := range m.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CacheClears returns how many times the cache was cleared
func (m *Memory) CacheClears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

// Dropped returns how many events were discarded because nobody was reading
func (m *Memory) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// load points s at rawURL and emits the navigation event sequence.
// Callers hold m.mu.
func (m *Memory) load(s *Surface, rawURL string) {
	if rawURL == "" {
		rawURL = models.BlankURL
	}
	s.URL = rawURL
	s.Title = PageTitle(rawURL)

	m.emit(Event{SurfaceID: s.ID, Kind: LoadingChanged, Loading: true})
	m.emit(Event{SurfaceID: s.ID, Kind: Navigated, URL: rawURL})
	m.emit(Event{SurfaceID: s.ID, Kind: TitleUpdated, Title: s.Title})
	if fav := faviconURL(rawURL); fav != "" {
		m.emit(Event{SurfaceID: s.ID, Kind: FaviconUpdated, Favicon: fav})
	}
	m.emit(Event{SurfaceID: s.ID, Kind: LoadingChanged, Loading: false})
}

func (m *Memory) emit(e Event) {
	select {
	case m.events <- e:
	default:
		m.dropped++
		m.logger.Warn("host event dropped", "surface_id", e.SurfaceID, "kind", e.Kind.String())
	}
}

// PageTitle is the title the Memory host reports for a url: its host name
// without a leading "www.", or the default title for the blank page.
func PageTitle(rawURL string) string {
	if rawURL == models.BlankURL {
		return models.DefaultTitle
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func faviconURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}
