package service

import (
	"errors"

	"literacylab/internal/models"
	"literacylab/internal/repository"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileUpdate carries the user-editable profile fields
type ProfileUpdate struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	School            string `json:"school"`
	Grade             string `json:"grade"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// ProfileService handles user profile business logic
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// UpdateProfile writes the user-editable profile fields
func (s *ProfileService) UpdateProfile(userID string, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.FirstName = update.FirstName
	profile.LastName = update.LastName
	profile.School = update.School
	profile.Grade = update.Grade
	profile.Bio = update.Bio
	profile.ProfilePictureURL = update.ProfilePictureURL

	if err := s.profileRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}
