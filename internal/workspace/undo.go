package workspace

import (
	"time"

	"github.com/MikeBiancalana/widescreen/internal/models"
)

// DefaultUndoWindow is how long a closed group can be restored
const DefaultUndoWindow = 5 * time.Second

// ClosedGroup is everything needed to put a closed group back verbatim
type ClosedGroup struct {
	Group      models.Group
	Tabs       []models.Tab
	Ratios     []float64 // nil when the group used an equal split
	CapturedAt time.Time
}

// UndoBuffer holds the most recently closed group for a short time.
// It keeps a single slot; a newer close replaces the older one.
type UndoBuffer struct {
	window time.Duration
	now    func() time.Time
	slot   *ClosedGroup
	token  uint64
}

// NewUndoBuffer creates a buffer whose entries expire after window.
// A nil clock uses time.Now.
func NewUndoBuffer(window time.Duration, now func() time.Time) *UndoBuffer {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	if now == nil {
		now = time.Now
	}
	return &UndoBuffer{window: window, now: now}
}

// Put stores entry, replacing any previous one, and returns the token that
// a scheduled expiry must present to Expire.
func (u *UndoBuffer) Put(entry ClosedGroup) uint64 {
	entry.CapturedAt = u.now()
	u.slot = &entry
	u.token++
	return u.token
}

// Take returns and clears the slot if it holds an unexpired entry
func (u *UndoBuffer) Take() (ClosedGroup, bool) {
	entry, ok := u.Peek()
	if !ok {
		u.slot = nil
		return ClosedGroup{}, false
	}
	u.slot = nil
	return entry, true
}

// Peek returns the unexpired entry without clearing it
func (u *UndoBuffer) Peek() (ClosedGroup, bool) {
	if u.slot == nil {
		return ClosedGroup{}, false
	}
	if u.now().Sub(u.slot.CapturedAt) >= u.window {
		return ClosedGroup{}, false
	}
	return *u.slot, true
}

// Expire clears the slot if it still holds the entry identified by token.
// A stale token (a newer close happened since) leaves the slot alone.
func (u *UndoBuffer) Expire(token uint64) {
	if token == u.token {
		u.slot = nil
	}
}

// Clear drops any pending entry
func (u *UndoBuffer) Clear() {
	u.slot = nil
}

// Window returns the configured expiry delay
func (u *UndoBuffer) Window() time.Duration {
	return u.window
}
