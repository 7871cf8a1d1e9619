package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/storage"
)

var (
	ErrFolderNotFound = errors.New("bookmark folder not found")
	ErrRootFolder     = errors.New("the root bookmark folder cannot be changed")
)

// BookmarkRepository handles bookmarks and their folders
type BookmarkRepository struct {
	db  *storage.Database
	now func() time.Time
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *storage.Database) *BookmarkRepository {
	return &BookmarkRepository{db: db, now: time.Now}
}

// ensureRoot creates the root folder on first use
func (r *BookmarkRepository) ensureRoot() error {
	_, err := r.db.DB().Exec(
		`INSERT INTO bookmark_folders (id, name, parent_id, created_at) VALUES (?, ?, NULL, ?)
		 ON CONFLICT(id) DO NOTHING`,
		models.RootFolderID, models.RootFolderName, r.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to create root folder: %w", err)
	}
	return nil
}

// Add bookmarks url in folderID. An empty folder means the root folder.
func (r *BookmarkRepository) Add(url, title, folderID string) (models.Bookmark, error) {
	if err := r.ensureRoot(); err != nil {
		return models.Bookmark{}, err
	}
	if folderID == "" {
		folderID = models.RootFolderID
	}
	if strings.TrimSpace(title) == "" {
		title = url
	}

	b := models.Bookmark{ID: models.NewID(), URL: url, Title: title, FolderID: folderID, CreatedAt: r.now()}
	logger.Debug("BookmarkRepository.Add", "bookmark_id", b.ID, "url", url, "folder_id", folderID)

	_, err := r.db.DB().Exec(
		`INSERT INTO bookmarks (id, url, title, folder_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.URL, b.Title, b.FolderID, b.CreatedAt.UnixMilli(),
	)
	if err != nil {
		logger.Error("BookmarkRepository.Add", "error", err, "url", url)
		if !r.folderExists(folderID) {
			return models.Bookmark{}, fmt.Errorf("failed to add bookmark: %w", ErrFolderNotFound)
		}
		return models.Bookmark{}, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return b, nil
}

// AddTabs bookmarks every tab into a new folder and returns that folder
func (r *BookmarkRepository) AddTabs(folderName string, tabs []models.Tab) (models.BookmarkFolder, error) {
	folder, err := r.CreateFolder(folderName, "")
	if err != nil {
		return models.BookmarkFolder{}, err
	}
	for _, t := range tabs {
		if t.IsBlank() {
			continue
		}
		if _, err := r.Add(t.URL, t.Title, folder.ID); err != nil {
			return folder, err
		}
	}
	return folder, nil
}

// Remove deletes a bookmark
func (r *BookmarkRepository) Remove(id string) (bool, error) {
	res, err := r.db.DB().Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Move puts a bookmark into another folder
func (r *BookmarkRepository) Move(id, folderID string) error {
	if !r.folderExists(folderID) {
		return ErrFolderNotFound
	}
	if _, err := r.db.DB().Exec(`UPDATE bookmarks SET folder_id = ? WHERE id = ?`, folderID, id); err != nil {
		return fmt.Errorf("failed to move bookmark: %w", err)
	}
	return nil
}

// IsBookmarked reports whether any bookmark points at url
func (r *BookmarkRepository) IsBookmarked(url string) (bool, error) {
	var n int
	if err := r.db.DB().QueryRow(`SELECT COUNT(*) FROM bookmarks WHERE url = ?`, url).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return n > 0, nil
}

// List returns the bookmarks of a folder, or of every folder when folderID is empty
func (r *BookmarkRepository) List(folderID string) ([]models.Bookmark, error) {
	query := `SELECT id, url, title, folder_id, created_at FROM bookmarks`
	var args []any
	if folderID != "" {
		query += ` WHERE folder_id = ?`
		args = append(args, folderID)
	}
	query += ` ORDER BY created_at, title`

	rows, err := r.db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		var created int64
		if err := rows.Scan(&b.ID, &b.URL, &b.Title, &b.FolderID, &created); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		b.CreatedAt = time.UnixMilli(created)
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateFolder adds a folder under parentID. An empty parent means the root folder.
func (r *BookmarkRepository) CreateFolder(name, parentID string) (models.BookmarkFolder, error) {
	if err := r.ensureRoot(); err != nil {
		return models.BookmarkFolder{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.BookmarkFolder{}, errors.New("folder name is required")
	}
	if parentID == "" {
		parentID = models.RootFolderID
	}
	if !r.folderExists(parentID) {
		return models.BookmarkFolder{}, ErrFolderNotFound
	}

	f := models.BookmarkFolder{ID: models.NewID(), Name: name, ParentID: parentID, CreatedAt: r.now()}
	_, err := r.db.DB().Exec(
		`INSERT INTO bookmark_folders (id, name, parent_id, created_at) VALUES (?, ?, ?, ?)`,
		f.ID, f.Name, f.ParentID, f.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return models.BookmarkFolder{}, fmt.Errorf("failed to create folder: %w", err)
	}
	return f, nil
}

// RenameFolder renames a folder other than the root
func (r *BookmarkRepository) RenameFolder(id, name string) error {
	if id == models.RootFolderID {
		return ErrRootFolder
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("folder name is required")
	}
	res, err := r.db.DB().Exec(`UPDATE bookmark_folders SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFolderNotFound
	}
	return nil
}

// DeleteFolder removes a folder with its subfolders and bookmarks
func (r *BookmarkRepository) DeleteFolder(id string) error {
	if id == models.RootFolderID {
		return ErrRootFolder
	}
	res, err := r.db.DB().Exec(`DELETE FROM bookmark_folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFolderNotFound
	}
	return nil
}

// Folders returns every folder, root first
func (r *BookmarkRepository) Folders() ([]models.BookmarkFolder, error) {
	if err := r.ensureRoot(); err != nil {
		return nil, err
	}
	rows, err := r.db.DB().Query(
		`SELECT id, name, parent_id, created_at FROM bookmark_folders
		 ORDER BY parent_id IS NOT NULL, created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var out []models.BookmarkFolder
	for rows.Next() {
		var f models.BookmarkFolder
		var parent sql.NullString
		var created int64
		if err := rows.Scan(&f.ID, &f.Name, &parent, &created); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		f.ParentID = parent.String
		f.CreatedAt = time.UnixMilli(created)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *BookmarkRepository) folderExists(id string) bool {
	var n int
	err := r.db.DB().QueryRow(`SELECT COUNT(*) FROM bookmark_folders WHERE id = ?`, id).Scan(&n)
	return err == nil && n > 0
}
