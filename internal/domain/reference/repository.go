package reference

import "context"

type Repository interface {
	List(ctx context.Context, k Kind) ([]Item, error)
	GetByID(ctx context.Context, k Kind, id int64) (Item, error)
	GetByName(ctx context.Context, k Kind, name string) (Item, error)
	NamesByIDs(ctx context.Context, k Kind, ids []int64) (map[int64]string, error)

	Create(ctx context.Context, k Kind, name string) (Item, error)
	Rename(ctx context.Context, k Kind, id int64, newName string) (Item, error)
	SoftDelete(ctx context.Context, k Kind, id int64) (bool, error)
}
