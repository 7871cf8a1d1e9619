package host

import (
	"errors"
	"testing"

	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(m *Memory) []Event {
	var out []Event
	for {
		select {
		case e := <-m.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestMemory_CreateEmitsNavigationSequence(t *testing.T) {
	m := NewMemory(nil)

	require.NoError(t, m.CreateSurface("s1", "https://www.example.com/page"))

	events := drain(m)
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		assert.Equal(t, "s1", e.SurfaceID)
		kinds[i] = e.Kind
	}
	assert.Equal(t, []EventKind{LoadingChanged, Navigated, TitleUpdated, FaviconUpdated, LoadingChanged}, kinds)
	assert.Equal(t, "example.com", events[2].Title)
	assert.Equal(t, "https://www.example.com/favicon.ico", events[3].Favicon)
	assert.False(t, events[4].Loading)
}

func TestMemory_CreateDuplicateFails(t *testing.T) {
	m := NewMemory(nil)
	require.NoError(t, m.CreateSurface("s1", ""))

	err := m.CreateSurface("s1", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSurfaceExists))

	s, ok := m.Surface("s1")
	require.True(t, ok)
	assert.Equal(t, models.BlankURL, s.URL)
	assert.Equal(t, models.DefaultTitle, s.Title)
}

func TestMemory_DestroyUnknownFails(t *testing.T) {
	m := NewMemory(nil)
	err := m.DestroySurface("nope")
	assert.True(t, errors.Is(err, ErrUnknownSurface))
}

func TestMemory_BackForward(t *testing.T) {
	m := NewMemory(nil)
	require.NoError(t, m.CreateSurface("s1", "https://a.example"))
	m.NavigateSurface("s1", "https://b.example")
	m.NavigateSurface("s1", "https://c.example")

	m.GoBack("s1")
	m.GoBack("s1")
	s, _ := m.Surface("s1")
	assert.Equal(t, "https://a.example", s.URL)
	assert.Equal(t, []string{"https://c.example", "https://b.example"}, s.Forward)

	m.GoForward("s1")
	s, _ = m.Surface("s1")
	assert.Equal(t, "https://b.example", s.URL)

	// A fresh navigation truncates forward history
	m.NavigateSurface("s1", "https://d.example")
	s, _ = m.Surface("s1")
	assert.Empty(t, s.Forward)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.Back)
}

func TestMemory_BoundsAndSuspension(t *testing.T) {
	m := NewMemory(nil)
	require.NoError(t, m.CreateSurface("s1", ""))

	m.SetSurfaceBounds("s1", models.Rect{X: 1, Y: 2, Width: 30, Height: 40})
	s, _ := m.Surface("s1")
	assert.False(t, s.Suspended())

	m.SetSurfaceBounds("s1", models.Rect{X: 1, Y: 2, Width: 30})
	s, _ = m.Surface("s1")
	assert.True(t, s.Suspended())

	m.SetSurfaceBounds("ghost", models.Rect{Width: 1, Height: 1})
	assert.Equal(t, []string{"s1"}, m.SurfaceIDs())
}

func TestMemory_ClearCache(t *testing.T) {
	m := NewMemory(nil)
	require.NoError(t, m.ClearCache())
	assert.Equal(t, 1, m.CacheClears())

	m.ClearCacheErr = errors.New("disk busy")
	err := m.ClearCache()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk busy")
	assert.Equal(t, 1, m.CacheClears())
}

func TestMemory_DropsEventsWhenFull(t *testing.T) {
	m := NewMemory(nil)
	require.NoError(t, m.CreateSurface("s1", "about:blank"))
	for i := 0; i < EventBuffer; i++ {
		m.Reload("s1")
	}
	assert.Positive(t, m.Dropped())
	assert.Len(t, drain(m), EventBuffer)
}

func TestEvent_UpdateIsFieldScoped(t *testing.T) {
	u := Event{SurfaceID: "s", Kind: TitleUpdated, Title: "Hello", URL: "ignored"}.Update()
	require.NotNil(t, u.Title)
	assert.Equal(t, "Hello", *u.Title)
	assert.Nil(t, u.URL)
	assert.Nil(t, u.Loading)

	u = Event{Kind: AudioChanged, Audio: true}.Update()
	require.NotNil(t, u.AudioPlaying)
	assert.True(t, *u.AudioPlaying)
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{models.BlankURL, models.DefaultTitle},
		{"https://www.go.dev/doc", "go.dev"},
		{"http://localhost:8080", "localhost"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, PageTitle(tt.url))
		})
	}
}
