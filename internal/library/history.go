package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/storage"
)

// HistoryRepository records visited urls
type HistoryRepository struct {
	db    *storage.Database
	limit int
}

// NewHistoryRepository creates a history repository keeping models.HistoryLimit urls
func NewHistoryRepository(db *storage.Database) *HistoryRepository {
	return &HistoryRepository{db: db, limit: models.HistoryLimit}
}

// Record notes a visit. A known url has its timestamp and visit count bumped;
// a new url is added and the oldest entries beyond the limit are dropped.
func (r *HistoryRepository) Record(url, title string, at time.Time) error {
	if url == "" || url == models.BlankURL {
		return nil
	}
	logger.Debug("HistoryRepository.Record", "url", url)

	_, err := r.db.DB().Exec(
		`INSERT INTO history (id, url, title, visited_at, visit_count) VALUES (?, ?, ?, ?, 1)
		 ON CONFLICT(url) DO UPDATE SET
		   visited_at = excluded.visited_at,
		   visit_count = visit_count + 1`,
		models.NewID(), url, title, at.UnixMilli(),
	)
	if err != nil {
		logger.Error("HistoryRepository.Record", "error", err, "url", url)
		return fmt.Errorf("failed to record history: %w", err)
	}

	_, err = r.db.DB().Exec(
		`DELETE FROM history WHERE id NOT IN (
		   SELECT id FROM history ORDER BY visited_at DESC, id DESC LIMIT ?
		 )`,
		r.limit,
	)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

// UpdateTitle sets the title of a recorded url once the page reports it
func (r *HistoryRepository) UpdateTitle(url, title string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	if _, err := r.db.DB().Exec(`UPDATE history SET title = ? WHERE url = ?`, title, url); err != nil {
		return fmt.Errorf("failed to update history title: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (r *HistoryRepository) Recent(limit int) ([]models.HistoryItem, error) {
	return r.query(`SELECT id, url, title, visited_at, visit_count FROM history
		ORDER BY visited_at DESC, id DESC LIMIT ?`, limit)
}

// Search returns entries whose title or url contains query, newest first
func (r *HistoryRepository) Search(query string, limit int) ([]models.HistoryItem, error) {
	like := "%" + strings.ToLower(query) + "%"
	return r.query(`SELECT id, url, title, visited_at, visit_count FROM history
		WHERE lower(title) LIKE ? OR lower(url) LIKE ?
		ORDER BY visited_at DESC, id DESC LIMIT ?`, like, like, limit)
}

// Clear deletes all history
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.DB().Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	logger.Info("history cleared")
	return nil
}

func (r *HistoryRepository) query(q string, args ...any) ([]models.HistoryItem, error) {
	rows, err := r.db.DB().Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryItem
	for rows.Next() {
		var h models.HistoryItem
		var visited int64
		if err := rows.Scan(&h.ID, &h.URL, &h.Title, &visited, &h.VisitCount); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		h.VisitedAt = time.UnixMilli(visited)
		out = append(out, h)
	}
	return out, rows.Err()
}
