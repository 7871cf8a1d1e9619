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

// ErrEmptyName is returned when a session is saved without a name
var ErrEmptyName = errors.New("session name is required")

// SavedSessionRepository stores named sessions
type SavedSessionRepository struct {
	db *storage.Database
}

// NewSavedSessionRepository creates a new saved session repository
func NewSavedSessionRepository(db *storage.Database) *SavedSessionRepository {
	return &SavedSessionRepository{db: db}
}

// Save stores snap under name, replacing any session with the same name
func (r *SavedSessionRepository) Save(name string, snap models.Snapshot, at time.Time) (models.SavedSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedSession{}, ErrEmptyName
	}
	logger.Debug("SavedSessionRepository.Save", "name", name, "tabs", len(snap.Tabs))

	data, err := NewSessionDocument(name, at, snap).Marshal()
	if err != nil {
		return models.SavedSession{}, err
	}

	saved := models.SavedSession{ID: models.NewID(), Name: name, Snapshot: snap.Clone(), CreatedAt: at}
	_, err = r.db.DB().Exec(
		`INSERT INTO saved_sessions (id, name, snapshot, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   snapshot = excluded.snapshot,
		   created_at = excluded.created_at`,
		saved.ID, saved.Name, string(data), at.UnixMilli(),
	)
	if err != nil {
		logger.Error("SavedSessionRepository.Save", "error", err, "name", name)
		return models.SavedSession{}, fmt.Errorf("failed to save session: %w", err)
	}

	// An existing row keeps its id
	if err := r.db.DB().QueryRow(`SELECT id FROM saved_sessions WHERE name = ?`, name).Scan(&saved.ID); err != nil {
		return models.SavedSession{}, fmt.Errorf("failed to read saved session id: %w", err)
	}
	return saved, nil
}

// List returns all saved sessions, oldest first
func (r *SavedSessionRepository) List() ([]models.SavedSession, error) {
	rows, err := r.db.DB().Query(`SELECT id, name, snapshot, created_at FROM saved_sessions ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.SavedSession
	for rows.Next() {
		s, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Get returns the session with the given id or name, or nil when there is none
func (r *SavedSessionRepository) Get(idOrName string) (*models.SavedSession, error) {
	row := r.db.DB().QueryRow(
		`SELECT id, name, snapshot, created_at FROM saved_sessions WHERE id = ? OR name = ? LIMIT 1`,
		idOrName, idOrName,
	)
	s, err := scanSaved(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a saved session by id or name
func (r *SavedSessionRepository) Delete(idOrName string) (bool, error) {
	res, err := r.db.DB().Exec(`DELETE FROM saved_sessions WHERE id = ? OR name = ?`, idOrName, idOrName)
	if err != nil {
		logger.Error("SavedSessionRepository.Delete", "error", err, "session", idOrName)
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Export writes a saved session to the file store
func (r *SavedSessionRepository) Export(fs *storage.FileStore, idOrName string) (string, error) {
	s, err := r.Get(idOrName)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("session %q not found", idOrName)
	}
	data, err := NewSessionDocument(s.Name, s.CreatedAt, s.Snapshot).Marshal()
	if err != nil {
		return "", err
	}
	return fs.WriteSessionFile(s.Name, data)
}

// Import reads an exported session file and saves it under its file name
func (r *SavedSessionRepository) Import(fs *storage.FileStore, name string, at time.Time) (models.SavedSession, error) {
	data, info, err := fs.ReadSessionFile(name)
	if err != nil {
		return models.SavedSession{}, err
	}
	if !info.Exists {
		return models.SavedSession{}, fmt.Errorf("session file %s does not exist", info.Path)
	}
	doc, err := UnmarshalSessionDocument(data)
	if err != nil {
		return models.SavedSession{}, err
	}
	return r.Save(name, doc.Snapshot(), at)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSaved(row scanner) (models.SavedSession, error) {
	var s models.SavedSession
	var data string
	var createdMs int64
	if err := row.Scan(&s.ID, &s.Name, &data, &createdMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("failed to scan session: %w", err)
	}
	doc, err := UnmarshalSessionDocument([]byte(data))
	if err != nil {
		return s, err
	}
	s.Snapshot = doc.Snapshot()
	s.CreatedAt = time.UnixMilli(createdMs)
	return s, nil
}
