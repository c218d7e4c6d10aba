package repository

import (
	"database/sql"
	"fmt"
	"time"

	"literacylab/internal/database"
	"literacylab/internal/models"
)

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile inserts an empty profile row keyed to a user
func (r *ProfileRepository) CreateProfile(userID, firstName, lastName string) (*models.Profile, error) {
	now := time.Now()
	profile := &models.Profile{
		ID:        userID,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO profiles (id, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, userID, firstName, lastName, now, now); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a profile by user ID; returns nil if not found
func (r *ProfileRepository) GetProfile(userID string) (*models.Profile, error) {
	query := `
		SELECT id, first_name, last_name, school, grade, bio, profile_picture_url,
		       created_at, updated_at
		FROM profiles
		WHERE id = ?
	`
	profile := &models.Profile{}
	err := r.db.QueryRow(query, userID).Scan(
		&profile.ID, &profile.FirstName, &profile.LastName,
		&profile.School, &profile.Grade, &profile.Bio, &profile.ProfilePictureURL,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile writes the user-editable profile fields
func (r *ProfileRepository) UpdateProfile(profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = ?, last_name = ?, school = ?, grade = ?, bio = ?,
		    profile_picture_url = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		profile.FirstName, profile.LastName, profile.School, profile.Grade,
		profile.Bio, profile.ProfilePictureURL, time.Now(), profile.ID,
	)
	return err
}
