package library

import (
	"database/sql"
	"fmt"

	"github.com/MikeBiancalana/widescreen/internal/logger"
	"github.com/MikeBiancalana/widescreen/internal/models"
	"github.com/MikeBiancalana/widescreen/internal/perf"
	"github.com/MikeBiancalana/widescreen/internal/storage"
)

const activeTabKey = "active_tab_id"

// SessionRepository stores the single current-session record
type SessionRepository struct {
	db *storage.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *storage.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save replaces the stored session with snap
func (r *SessionRepository) Save(snap models.Snapshot) error {
	timer := perf.NewTimer("SessionRepository.Save", logger.GetLogger(), 50)
	defer timer.Stop()

	err := r.db.WithTx(func(tx *sql.Tx) error {
		for _, table := range []string{"session_split_ratios", "session_group_tabs", "session_groups", "session_tabs", "session_meta"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for i, t := range snap.Tabs {
			groupID := sql.NullString{String: t.GroupID, Valid: t.GroupID != ""}
			_, err := tx.Exec(
				`INSERT INTO session_tabs (id, url, title, group_id, pinned, position) VALUES (?, ?, ?, ?, ?, ?)`,
				t.ID, t.URL, t.Title, groupID, t.Pinned, i,
			)
			if err != nil {
				return fmt.Errorf("failed to save tab: %w", err)
			}
		}

		for i, g := range snap.Groups {
			_, err := tx.Exec(
				`INSERT INTO session_groups (id, name, collapsed, position) VALUES (?, ?, ?, ?)`,
				g.ID, g.Name, g.Collapsed, i,
			)
			if err != nil {
				return fmt.Errorf("failed to save group: %w", err)
			}
			for pos, tabID := range g.TabIDs {
				_, err := tx.Exec(
					`INSERT INTO session_group_tabs (group_id, tab_id, position) VALUES (?, ?, ?)`,
					g.ID, tabID, pos,
				)
				if err != nil {
					return fmt.Errorf("failed to save group member: %w", err)
				}
			}
			for pos, ratio := range snap.SplitRatios[g.ID] {
				_, err := tx.Exec(
					`INSERT INTO session_split_ratios (group_id, position, ratio) VALUES (?, ?, ?)`,
					g.ID, pos, ratio,
				)
				if err != nil {
					return fmt.Errorf("failed to save split ratio: %w", err)
				}
			}
		}

		_, err := tx.Exec(`INSERT INTO session_meta (key, value) VALUES (?, ?)`, activeTabKey, snap.ActiveTabID)
		if err != nil {
			return fmt.Errorf("failed to save active tab: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("SessionRepository.Save", "error", err)
		return err
	}

	logger.Debug("SessionRepository.Save", "tabs", len(snap.Tabs), "groups", len(snap.Groups))
	return nil
}

// Load returns the stored session. ok is false when nothing was saved yet.
func (r *SessionRepository) Load() (snap models.Snapshot, ok bool, err error) {
	timer := perf.NewTimer("SessionRepository.Load", logger.GetLogger(), 50)
	defer timer.Stop()

	snap.SplitRatios = make(models.SplitRatios)

	rows, err := r.db.DB().Query(`SELECT id, url, title, group_id, pinned FROM session_tabs ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("failed to load tabs: %w", err)
	}
	for rows.Next() {
		var t models.Tab
		var groupID sql.NullString
		if err := rows.Scan(&t.ID, &t.URL, &t.Title, &groupID, &t.Pinned); err != nil {
			rows.Close()
			return snap, false, fmt.Errorf("failed to scan tab: %w", err)
		}
		t.GroupID = groupID.String
		snap.Tabs = append(snap.Tabs, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, false, fmt.Errorf("failed to load tabs: %w", err)
	}
	if len(snap.Tabs) == 0 {
		return snap, false, nil
	}

	rows, err = r.db.DB().Query(`SELECT id, name, collapsed FROM session_groups ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("failed to load groups: %w", err)
	}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Collapsed); err != nil {
			rows.Close()
			return snap, false, fmt.Errorf("failed to scan group: %w", err)
		}
		snap.Groups = append(snap.Groups, g)
	}
	rows.Close()

	for i := range snap.Groups {
		g := &snap.Groups[i]
		if g.TabIDs, err = r.loadMembers(g.ID); err != nil {
			return snap, false, err
		}
		ratios, err := r.loadRatios(g.ID)
		if err != nil {
			return snap, false, err
		}
		if len(ratios) > 0 {
			snap.SplitRatios[g.ID] = ratios
		}
	}

	err = r.db.DB().QueryRow(`SELECT value FROM session_meta WHERE key = ?`, activeTabKey).Scan(&snap.ActiveTabID)
	if err != nil && err != sql.ErrNoRows {
		return snap, false, fmt.Errorf("failed to load active tab: %w", err)
	}

	logger.Debug("SessionRepository.Load", "tabs", len(snap.Tabs), "groups", len(snap.Groups))
	return snap, true, nil
}

func (r *SessionRepository) loadMembers(groupID string) ([]string, error) {
	rows, err := r.db.DB().Query(`SELECT tab_id FROM session_group_tabs WHERE group_id = ? ORDER BY position`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SessionRepository) loadRatios(groupID string) ([]float64, error) {
	rows, err := r.db.DB().Query(`SELECT ratio FROM session_split_ratios WHERE group_id = ? ORDER BY position`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load split ratios: %w", err)
	}
	defer rows.Close()

	var ratios []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan split ratio: %w", err)
		}
		ratios = append(ratios, v)
	}
	return ratios, rows.Err()
}
