package match

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Match, error)
	List(ctx context.Context) ([]Match, error)
	Between(ctx context.Context, a, b int64) (Match, error)
	ListByUserAndStatus(ctx context.Context, userID int64, s Status) ([]Match, error)
	Create(ctx context.Context, m Match) (Match, error)
	Update(ctx context.Context, id int64, p Patch) (Match, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)

	// ApplySwipe serializes on the unordered pair, reads its active row and
	// applies Transition in a single transaction.
	ApplySwipe(ctx context.Context, actor, target int64, a Action) (SwipeResult, error)
}
