package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// StateRepository persists the smart check-in cooldown anchor so the
// cooldown survives restarts. Everything else in the engine state is
// session-scoped and recomputed.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// CooldownAnchor returns the venue and time of the user's last autonomous
// check-in. The bool result reports whether an anchor exists.
func (r *StateRepository) CooldownAnchor(userID string) (string, time.Time, bool, error) {
	query := `
		SELECT last_checkin_venue_id, last_checkin_at
		FROM smart_checkin_state WHERE user_id = ?
	`
	var venueID sql.NullString
	var at sql.NullInt64

	err := r.db.QueryRow(query, userID).Scan(&venueID, &at)
	if err == sql.ErrNoRows {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("failed to query cooldown anchor: %w", err)
	}
	if !venueID.Valid || !at.Valid {
		return "", time.Time{}, false, nil
	}

	return venueID.String, time.Unix(at.Int64, 0), true, nil
}

// SaveCooldownAnchor records the venue and time of an autonomous check-in
func (r *StateRepository) SaveCooldownAnchor(userID, venueID string, at time.Time) error {
	query := `
		INSERT INTO smart_checkin_state (user_id, last_checkin_venue_id, last_checkin_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			last_checkin_venue_id = excluded.last_checkin_venue_id,
			last_checkin_at = excluded.last_checkin_at
	`
	if _, err := r.db.Exec(query, userID, venueID, at.Unix()); err != nil {
		return fmt.Errorf("failed to save cooldown anchor: %w", err)
	}
	return nil
}
