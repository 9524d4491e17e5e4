package user

import (
	"context"

	"groupie/internal/domain/profile"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id int64, p Patch) (User, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)

	// CreateWithProfile inserts the user and its default profile atomically.
	CreateWithProfile(ctx context.Context, u User) (User, profile.Profile, error)
}
