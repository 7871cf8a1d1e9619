package browser

import (
	"errors"
	"fmt"

	"github.com/MikeBiancalana/widescreen/internal/library"
	"github.com/MikeBiancalana/widescreen/internal/models"
)

var (
	// ErrNoLibrary is returned when a library operation runs without a database
	ErrNoLibrary = errors.New("no library database configured")
	// ErrAlreadyBookmarked is returned when the active page is already bookmarked
	ErrAlreadyBookmarked = errors.New("page is already bookmarked")
)

// SaveSession stores the current tabs under name
func (b *Browser) SaveSession(saved *library.SavedSessionRepository, name string) (models.SavedSession, error) {
	if saved == nil {
		return models.SavedSession{}, ErrNoLibrary
	}
	return saved.Save(name, b.store.Snapshot(), b.now())
}

// LoadSession replaces the current tabs with a saved session. Loaded tabs
// get fresh ids so they never collide with tabs still being torn down.
func (b *Browser) LoadSession(saved *library.SavedSessionRepository, idOrName string) error {
	if saved == nil {
		return ErrNoLibrary
	}
	s, err := saved.Get(idOrName)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("saved session %q not found", idOrName)
	}
	err = b.store.Restore(s.Snapshot.WithFreshIDs())
	b.commit()
	return err
}

// BookmarkActive bookmarks the active tab in folderID, or the root folder
func (b *Browser) BookmarkActive(bookmarks *library.BookmarkRepository, folderID string) (models.Bookmark, error) {
	if bookmarks == nil {
		return models.Bookmark{}, ErrNoLibrary
	}
	t := b.store.ActiveTab()
	if t.IsBlank() {
		return models.Bookmark{}, errors.New("cannot bookmark a blank tab")
	}
	exists, err := bookmarks.IsBookmarked(t.URL)
	if err != nil {
		return models.Bookmark{}, err
	}
	if exists {
		return models.Bookmark{}, ErrAlreadyBookmarked
	}
	return bookmarks.Add(t.URL, t.Title, folderID)
}

// BookmarkAllTabs bookmarks every open tab into a new folder
func (b *Browser) BookmarkAllTabs(bookmarks *library.BookmarkRepository, folderName string) (models.BookmarkFolder, error) {
	if bookmarks == nil {
		return models.BookmarkFolder{}, ErrNoLibrary
	}
	return bookmarks.AddTabs(folderName, b.store.Tabs())
}
