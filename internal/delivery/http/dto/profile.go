package dto

import (
	"time"

	"groupie/internal/domain/profile"
)

// ProfileResponse is an enriched profile. ProficiencyLevel is only present
// for musicians.
type ProfileResponse struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	UserType         string          `json:"user_type"`
	Gender           string          `json:"gender"`
	Instruments      []profile.Named `json:"instruments"`
	Genres           []profile.Named `json:"genres"`
	ProficiencyLevel *profile.Named  `json:"proficiency_level,omitempty"`
	Bio              string          `json:"bio"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func NewProfileResponse(e profile.Enriched) ProfileResponse {
	return ProfileResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		UserType:         e.UserTypeName,
		Gender:           e.Gender,
		Instruments:      namedOrEmpty(e.InstrumentList),
		Genres:           namedOrEmpty(e.GenreList),
		ProficiencyLevel: e.ProficiencyLevel,
		Bio:              e.Bio,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func NewProfileListResponse(items []profile.Enriched) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewProfileResponse(e))
	}
	return out
}

// ProfileRecordResponse is the stored row returned by writes, with raw ids.
type ProfileRecordResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Gender           string    `json:"gender"`
	Instruments      []int64   `json:"instruments"`
	ProficiencyLevel int64     `json:"proficiency_level"`
	Genres           []int64   `json:"genres"`
	Bio              string    `json:"bio"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewProfileRecordResponse(p profile.Profile) ProfileRecordResponse {
	return ProfileRecordResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Gender:           p.Gender,
		Instruments:      emptyIDs(p.Instruments),
		ProficiencyLevel: p.ProficiencyLevel,
		Genres:           emptyIDs(p.Genres),
		Bio:              p.Bio,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

type CreateProfileRequest struct {
	UserID           int64   `json:"user_id"`
	Gender           string  `json:"gender"`
	Instruments      []int64 `json:"instruments"`
	ProficiencyLevel int64   `json:"proficiency_level"`
	Genres           []int64 `json:"genres"`
	Bio              string  `json:"bio"`
}

func (r CreateProfileRequest) ToProfile() profile.Profile {
	return profile.Profile{
		UserID:           r.UserID,
		Gender:           r.Gender,
		Instruments:      r.Instruments,
		ProficiencyLevel: r.ProficiencyLevel,
		Genres:           r.Genres,
		Bio:              r.Bio,
	}
}

// UpdateProfileRequest leaves absent or null arrays nil so they stay
// unchanged; an explicit [] clears them.
type UpdateProfileRequest struct {
	Gender           *string `json:"gender"`
	Instruments      []int64 `json:"instruments"`
	ProficiencyLevel *int64  `json:"proficiency_level"`
	Genres           []int64 `json:"genres"`
	Bio              *string `json:"bio"`
}

func (r UpdateProfileRequest) ToPatch() profile.Patch {
	return profile.Patch{
		Gender:           r.Gender,
		Instruments:      r.Instruments,
		ProficiencyLevel: r.ProficiencyLevel,
		Genres:           r.Genres,
		Bio:              r.Bio,
	}
}

func namedOrEmpty(n []profile.Named) []profile.Named {
	if n == nil {
		return []profile.Named{}
	}
	return n
}
