// Package host defines the contract with the page-rendering host that owns
// the actual page surfaces.
package host

import (
	"github.com/MikeBiancalana/widescreen/internal/models"
)

// Host renders pages into surfaces addressed by id. All calls are issued
// from the shell's event loop and may complete asynchronously.
type Host interface {
	CreateSurface(surfaceID, url string) error
	DestroySurface(surfaceID string) error

	// SetSurfaceBounds positions a surface. A zero-area rect hides it.
	SetSurfaceBounds(surfaceID string, bounds models.Rect)
	NavigateSurface(surfaceID, url string)
	GoBack(surfaceID string)
	GoForward(surfaceID string)
	Reload(surfaceID string)
	ClearCache() error

	// Events delivers page lifecycle notifications tagged with the surface id
	Events() <-chan Event
}

// EventKind identifies a page lifecycle notification
type EventKind int

const (
	Navigated EventKind = iota
	TitleUpdated
	LoadingChanged
	AudioChanged
	FaviconUpdated
)

func (k EventKind) String() string {
	switch k {
	case Navigated:
		return "navigated"
	case TitleUpdated:
		return "title-updated"
	case LoadingChanged:
		return "loading-changed"
	case AudioChanged:
		return "audio-changed"
	case FaviconUpdated:
		return "favicon-updated"
	}
	return "unknown"
}

// Event is a notification from the host about one surface
type Event struct {
	SurfaceID string
	Kind      EventKind
	URL       string
	Title     string
	Favicon   string
	Loading   bool
	Audio     bool
}

// Update converts the event into a field-scoped tab update
func (e Event) Update() models.TabUpdate {
	var u models.TabUpdate
	switch e.Kind {
	case Navigated:
		u.URL = &e.URL
	case TitleUpdated:
		u.Title = &e.Title
	case LoadingChanged:
		u.Loading = &e.Loading
	case AudioChanged:
		u.AudioPlaying = &e.Audio
	case FaviconUpdated:
		u.Favicon = &e.Favicon
	}
	return u
}
