package profile

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Owned, error)
	GetByUserID(ctx context.Context, userID int64) (Owned, error)
	List(ctx context.Context, excludeUserID int64) ([]Owned, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, id int64, p Patch) (Profile, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
