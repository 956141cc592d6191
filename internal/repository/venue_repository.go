package repository

import (
	"database/sql"
	"fmt"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

// VenueRepository handles database operations for venues
type VenueRepository struct {
	db *sql.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *sql.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// GetAll retrieves every venue, including those without coordinates
func (r *VenueRepository) GetAll() ([]models.Venue, error) {
	rows, err := r.db.Query("SELECT id, name, category, latitude, longitude FROM venues ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}

// GetByID retrieves a single venue
func (r *VenueRepository) GetByID(id string) (*models.Venue, error) {
	row := r.db.QueryRow("SELECT id, name, category, latitude, longitude FROM venues WHERE id = ?", id)

	var venue models.Venue
	var lat, lng sql.NullFloat64
	err := row.Scan(&venue.ID, &venue.Name, &venue.Category, &lat, &lng)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query venue: %w", err)
	}
	if lat.Valid {
		venue.Latitude = &lat.Float64
	}
	if lng.Valid {
		venue.Longitude = &lng.Float64
	}

	return &venue, nil
}

// Create stores a new venue
func (r *VenueRepository) Create(venue *models.Venue) error {
	query := "INSERT INTO venues (id, name, category, latitude, longitude) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.Exec(query, venue.ID, venue.Name, venue.Category,
		nullableFloat(venue.Latitude), nullableFloat(venue.Longitude))
	if err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	return nil
}

func scanVenue(rows *sql.Rows) (models.Venue, error) {
	var venue models.Venue
	var lat, lng sql.NullFloat64

	if err := rows.Scan(&venue.ID, &venue.Name, &venue.Category, &lat, &lng); err != nil {
		return venue, fmt.Errorf("failed to scan venue: %w", err)
	}
	if lat.Valid {
		venue.Latitude = &lat.Float64
	}
	if lng.Valid {
		venue.Longitude = &lng.Float64
	}

	return venue, nil
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
