package models

// TabUpdate carries the fields of a single host event. Only non-nil fields
// are written, so an update racing with a Store mutation never overwrites
// state it does not own.
type TabUpdate struct {
	URL          *string
	Title        *string
	Loading      *bool
	AudioPlaying *bool
	Favicon      *string
}

// Apply writes the set fields onto t
func (u TabUpdate) Apply(t *Tab) {
	if u.URL != nil {
		t.URL = *u.URL
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Loading != nil {
		t.Loading = *u.Loading
	}
	if u.AudioPlaying != nil {
		t.AudioPlaying = *u.AudioPlaying
	}
	if u.Favicon != nil {
		t.Favicon = *u.Favicon
	}
}

// Empty reports whether the update would change nothing
func (u TabUpdate) Empty() bool {
	return u.URL == nil && u.Title == nil && u.Loading == nil && u.AudioPlaying == nil && u.Favicon == nil
}
