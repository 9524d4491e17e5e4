package dto

import (
	"time"

	"groupie/internal/domain/match"
	"groupie/internal/usecase"
)

type MatchResponse struct {
	ID         int64        `json:"id"`
	UserIDOne  int64        `json:"user_id_one"`
	UserIDTwo  int64        `json:"user_id_two"`
	Status     match.Status `json:"status"`
	StatusCode int16        `json:"status_code"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:         m.ID,
		UserIDOne:  m.UserIDOne,
		UserIDTwo:  m.UserIDTwo,
		Status:     m.Status,
		StatusCode: int16(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func NewMatchListResponse(items []match.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewMatchResponse(m))
	}
	return out
}

// CreateMatchRequest takes the status as a name or a numeric code.
type CreateMatchRequest struct {
	UserIDOne int64         `json:"user_id_one"`
	UserIDTwo int64         `json:"user_id_two"`
	Status    *match.Status `json:"status"`
}

type UpdateMatchRequest struct {
	UserIDOne *int64        `json:"user_id_one"`
	UserIDTwo *int64        `json:"user_id_two"`
	Status    *match.Status `json:"status"`
}

func (r UpdateMatchRequest) ToPatch() match.Patch {
	return match.Patch{UserIDOne: r.UserIDOne, UserIDTwo: r.UserIDTwo, Status: r.Status}
}

type SwipeRequest struct {
	TargetUserID int64  `json:"target_user_id"`
	Action       string `json:"action"`
}

type SwipeResponse struct {
	Match   MatchResponse `json:"match"`
	Outcome string        `json:"outcome"`
	Matched bool          `json:"matched"`
}

func NewSwipeResponse(r match.SwipeResult) SwipeResponse {
	return SwipeResponse{
		Match:   NewMatchResponse(r.Match),
		Outcome: r.Outcome.String(),
		Matched: r.BecameMatched,
	}
}

// MutualMatchResponse exposes the counterpart's email for the mailto chat
// link.
type MutualMatchResponse struct {
	MatchID   int64            `json:"match_id"`
	UserID    int64            `json:"user_id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Email     string           `json:"email"`
	MatchedAt time.Time        `json:"matched_at"`
	Profile   *ProfileResponse `json:"profile"`
}

func NewMutualMatchListResponse(items []usecase.MutualMatch) []MutualMatchResponse {
	out := make([]MutualMatchResponse, 0, len(items))
	for _, mm := range items {
		r := MutualMatchResponse{
			MatchID:   mm.Match.ID,
			UserID:    mm.User.ID,
			FirstName: mm.User.FirstName,
			LastName:  mm.User.LastName,
			Email:     mm.User.Email,
			MatchedAt: mm.Match.UpdatedAt,
		}
		if mm.Profile != nil {
			p := NewProfileResponse(*mm.Profile)
			r.Profile = &p
		}
		out = append(out, r)
	}
	return out
}
