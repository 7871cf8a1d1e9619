package interact

import "github.com/MikeBiancalana/widescreen/internal/models"

// MinPercent is the default narrowest a panel may be resized to
const MinPercent = 15.0

// Resize moves the boundary between two adjacent panels of a group.
// It is not safe for concurrent use.
type Resize struct {
	panels     Panels
	minPercent float64

	active  bool
	groupID string
	handle  int // boundary between handle and handle+1
	startX  int
}

// NewResize creates a resize controller. A non-positive minPercent uses MinPercent.
func NewResize(panels Panels, minPercent float64) *Resize {
	if minPercent <= 0 {
		minPercent = MinPercent
	}
	return &Resize{panels: panels, minPercent: minPercent}
}

// Begin grabs the boundary to the right of panel handle
func (r *Resize) Begin(groupID string, handle, pointerX int) bool {
	g, ok := r.panels.Group(groupID)
	if !ok || handle < 0 || handle >= len(g.TabIDs)-1 {
		return false
	}
	r.active = true
	r.groupID = groupID
	r.handle = handle
	r.startX = pointerX
	return true
}

// Move applies the pointer delta since the last accepted tick and commits the
// result straight to the group, so the layout always draws stored ratios. The
// left panel is clamped so every other panel keeps its minimum. The tick is
// rejected when either panel would end below the minimum, or when the clamp
// would move the boundary against the pointer. It reports whether new ratios
// were committed.
func (r *Resize) Move(pointerX, areaWidth int) bool {
	if !r.active || areaWidth <= 0 {
		return false
	}
	g, ok := r.panels.Group(r.groupID)
	n := len(g.TabIDs)
	if !ok || r.handle >= n-1 {
		r.End()
		return false
	}

	current := r.panels.SplitRatios(r.groupID)
	if !models.ValidRatios(current, n) {
		current = models.EqualRatios(n)
	}

	maxLeft := 100 - r.minPercent*float64(n-1)
	if maxLeft < r.minPercent-models.RatioEpsilon {
		return false
	}

	delta := float64(pointerX-r.startX) * 100 / float64(areaWidth)
	left := current[r.handle] + delta
	if left < r.minPercent {
		left = r.minPercent
	}
	if left > maxLeft {
		left = maxLeft
	}
	if moved := left - current[r.handle]; moved*delta < 0 {
		return false
	}

	others := 0.0
	for i, v := range current {
		if i != r.handle && i != r.handle+1 {
			others += v
		}
	}
	right := 100 - left - others
	if right < r.minPercent-models.RatioEpsilon {
		return false
	}

	next := append([]float64(nil), current...)
	next[r.handle] = left
	next[r.handle+1] = right
	if !r.panels.SetSplitRatios(r.groupID, next) {
		return false
	}
	r.startX = pointerX
	return true
}

// End releases the boundary. Committed ratios stay on the group.
func (r *Resize) End() {
	r.active = false
	r.groupID = ""
	r.handle = 0
	r.startX = 0
}

// Active reports whether a resize is in progress
func (r *Resize) Active() bool {
	return r.active
}

// Handle returns the grabbed boundary index
func (r *Resize) Handle() int {
	return r.handle
}
