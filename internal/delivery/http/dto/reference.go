package dto

import (
	"time"

	"groupie/internal/domain/reference"
)

type ReferenceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReferenceResponse(it reference.Item) ReferenceResponse {
	return ReferenceResponse{ID: it.ID, Name: it.Name, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt}
}

func NewReferenceListResponse(items []reference.Item) []ReferenceResponse {
	out := make([]ReferenceResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewReferenceResponse(it))
	}
	return out
}

type CreateReferenceRequest struct {
	Name string `json:"name"`
}

type RenameReferenceRequest struct {
	CurrentName string `json:"currentName"`
	NewName     string `json:"newName"`
}

type UpdateReferenceRequest struct {
	NewName string `json:"newName"`
}
