package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

// CheckinRepository handles database operations for check-in events
type CheckinRepository struct {
	db *sql.DB
}

// NewCheckinRepository creates a new check-in repository
func NewCheckinRepository(db *sql.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// Insert stores a new check-in event. Events are append-only and never
// updated afterwards.
func (r *CheckinRepository) Insert(event *models.CheckInEvent) error {
	query := `
		INSERT INTO check_ins (id, venue_id, user_id, created_at, mood, intent,
			relationship_status, ons_intent, gender, age_band)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		event.ID,
		event.VenueID,
		event.UserID,
		event.CreatedAt.Unix(),
		int(event.Mood),
		string(event.Intent),
		nullableString((*string)(event.RelationshipStatus)),
		nullableString((*string)(event.OnsIntent)),
		nullableString((*string)(event.Gender)),
		nullableString((*string)(event.AgeBand)),
	)
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

// FetchInRange retrieves check-ins within [from, to). An empty venueID
// queries all venues (ranking, live heatmap); a set venueID scopes the
// query to one venue (insights).
func (r *CheckinRepository) FetchInRange(venueID string, from, to time.Time) ([]models.CheckInEvent, error) {
	query := `
		SELECT id, venue_id, user_id, created_at, mood, intent,
			relationship_status, ons_intent, gender, age_band
		FROM check_ins
		WHERE created_at >= ? AND created_at < ?
	`
	args := []interface{}{from.Unix(), to.Unix()}

	if venueID != "" {
		query += " AND venue_id = ?"
		args = append(args, venueID)
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer rows.Close()

	var events []models.CheckInEvent
	for rows.Next() {
		event, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// LastByUserAndVenue returns the creation time of the user's most recent
// check-in at a venue, used for the manual cooldown. The bool result
// reports whether any check-in exists.
func (r *CheckinRepository) LastByUserAndVenue(userID, venueID string) (time.Time, bool, error) {
	query := `
		SELECT created_at FROM check_ins
		WHERE user_id = ? AND venue_id = ?
		ORDER BY created_at DESC LIMIT 1
	`
	var ts int64
	err := r.db.QueryRow(query, userID, venueID).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query last check-in: %w", err)
	}
	return time.Unix(ts, 0), true, nil
}

func scanCheckin(rows *sql.Rows) (models.CheckInEvent, error) {
	var event models.CheckInEvent
	var createdAt int64
	var mood int
	var intent string
	var relationship, ons, gender, ageBand sql.NullString

	err := rows.Scan(&event.ID, &event.VenueID, &event.UserID, &createdAt,
		&mood, &intent, &relationship, &ons, &gender, &ageBand)
	if err != nil {
		return event, fmt.Errorf("failed to scan check-in: %w", err)
	}

	event.CreatedAt = time.Unix(createdAt, 0)
	event.Mood = models.MoodScore(mood)
	event.Intent = models.Intent(intent)
	if relationship.Valid {
		v := models.RelationshipStatus(relationship.String)
		event.RelationshipStatus = &v
	}
	if ons.Valid {
		v := models.OnsIntent(ons.String)
		event.OnsIntent = &v
	}
	if gender.Valid {
		v := models.Gender(gender.String)
		event.Gender = &v
	}
	if ageBand.Valid {
		v := models.AgeBand(ageBand.String)
		event.AgeBand = &v
	}

	return event, nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
