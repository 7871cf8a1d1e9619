package browser

import (
	"github.com/MikeBiancalana/widescreen/internal/host"
)

// HandleEvent applies a host event to the tab it belongs to. Events for
// surfaces that no longer exist are dropped. It reports whether the tab
// model changed.
func (b *Browser) HandleEvent(ev host.Event) bool {
	if !b.store.ApplyUpdate(ev.SurfaceID, ev.Update()) {
		b.logger.Debug("dropped host event", "surface_id", ev.SurfaceID, "kind", ev.Kind.String())
		return false
	}

	switch ev.Kind {
	case host.Navigated:
		// A blank tab that navigated now has a surface to show
		b.recordVisit(ev.URL, "")
		b.commit()
	case host.TitleUpdated:
		if b.history != nil && !b.settings.PrivateMode {
			if t, ok := b.store.TabBySurface(ev.SurfaceID); ok {
				if err := b.history.UpdateTitle(t.URL, ev.Title); err != nil {
					b.logger.Warn("failed to update history title", "error", err)
				}
			}
		}
		b.persist()
	}
	return true
}

// Events exposes the host's event stream
func (b *Browser) Events() <-chan host.Event {
	return b.host.Events()
}
