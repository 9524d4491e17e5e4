package usecase

import (
	"context"
	"errors"

	"groupie/internal/domain"
	"groupie/internal/domain/match"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/user"

	"github.com/sirupsen/logrus"
)

// MatchNotifier is told when a swipe completes a mutual like.
type MatchNotifier interface {
	MatchCreated(matchID, userA, userB int64)
}

// ProfileEnricher resolves the lookup ids of owned profiles.
type ProfileEnricher interface {
	Enrich(ctx context.Context, owned []profile.Owned) ([]profile.Enriched, error)
}

// MutualMatch is a Matched pair seen from one of its users.
type MutualMatch struct {
	Match   match.Match
	User    user.User
	Profile *profile.Enriched
}

type MatchUsecase interface {
	Get(ctx context.Context, id int64) (match.Match, error)
	GetAll(ctx context.Context) ([]match.Match, error)
	Create(ctx context.Context, userA, userB int64, status *match.Status) (match.Match, error)
	Update(ctx context.Context, id int64, p match.Patch) (*match.Match, error)
	Delete(ctx context.Context, id int64) error
	Swipe(ctx context.Context, actor, target int64, a match.Action) (match.SwipeResult, error)
	MutualMatches(ctx context.Context, userID int64) ([]MutualMatch, error)
}

type Match struct {
	matches  match.Repository
	users    user.Repository
	profiles profile.Repository
	enricher ProfileEnricher
	notifier MatchNotifier
	log      logrus.FieldLogger
}

func NewMatchUsecase(
	matches match.Repository,
	users user.Repository,
	profiles profile.Repository,
	enricher ProfileEnricher,
	notifier MatchNotifier,
	log logrus.FieldLogger,
) *Match {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Match{
		matches:  matches,
		users:    users,
		profiles: profiles,
		enricher: enricher,
		notifier: notifier,
		log:      log,
	}
}

func (u *Match) Get(ctx context.Context, id int64) (match.Match, error) {
	if id <= 0 {
		return match.Match{}, domain.Invalid("Invalid match id.")
	}
	return u.matches.GetByID(ctx, id)
}

func (u *Match) GetAll(ctx context.Context) ([]match.Match, error) {
	all, err := u.matches.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, domain.NotFound("Matches", nil)
	}
	return all, nil
}

func (u *Match) Create(ctx context.Context, userA, userB int64, status *match.Status) (match.Match, error) {
	if userA <= 0 || userB <= 0 {
		return match.Match{}, domain.Invalid("Missing required fields: user_id_one, user_id_two")
	}
	if userA == userB {
		return match.Match{}, domain.Invalid("A user cannot be matched with themselves.")
	}

	s := match.Unmatched
	if status != nil {
		if !status.Valid() {
			return match.Match{}, domain.Invalid("Invalid match status.")
		}
		s = *status
	}

	return u.matches.Create(ctx, match.Match{UserIDOne: userA, UserIDTwo: userB, Status: s})
}

// Update returns nil without touching storage when the patch is empty.
func (u *Match) Update(ctx context.Context, id int64, p match.Patch) (*match.Match, error) {
	if id <= 0 {
		return nil, domain.Invalid("Invalid match id.")
	}
	if p.Empty() {
		return nil, nil
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, domain.Invalid("Invalid match status.")
	}

	if p.UserIDOne != nil || p.UserIDTwo != nil {
		current, err := u.matches.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		one, two := current.UserIDOne, current.UserIDTwo
		if p.UserIDOne != nil {
			one = *p.UserIDOne
		}
		if p.UserIDTwo != nil {
			two = *p.UserIDTwo
		}
		if one <= 0 || two <= 0 {
			return nil, domain.Invalid("Invalid user id.")
		}
		if one == two {
			return nil, domain.Invalid("A user cannot be matched with themselves.")
		}
	}

	updated, err := u.matches.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *Match) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("Invalid match id.")
	}
	ok, err := u.matches.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDeleteFailed
	}
	return nil
}

func (u *Match) Swipe(ctx context.Context, actor, target int64, a match.Action) (match.SwipeResult, error) {
	if actor <= 0 || target <= 0 {
		return match.SwipeResult{}, domain.Invalid("Invalid user id.")
	}
	if actor == target {
		return match.SwipeResult{}, domain.Invalid("You cannot swipe on yourself.")
	}
	a, err := match.ParseAction(string(a))
	if err != nil {
		return match.SwipeResult{}, domain.Invalid("Action must be 'like' or 'dislike'.")
	}
	if _, err := u.users.GetByID(ctx, target); err != nil {
		return match.SwipeResult{}, err
	}

	res, err := u.matches.ApplySwipe(ctx, actor, target, a)
	if err != nil {
		return match.SwipeResult{}, err
	}

	u.log.WithFields(logrus.Fields{
		"actor":    actor,
		"target":   target,
		"action":   a,
		"outcome":  res.Outcome.String(),
		"status":   res.Match.Status.String(),
		"match_id": res.Match.ID,
		"matched":  res.BecameMatched,
	}).Debug("swipe applied")

	if res.BecameMatched && u.notifier != nil {
		u.notifier.MatchCreated(res.Match.ID, res.Match.UserIDOne, res.Match.UserIDTwo)
	}
	return res, nil
}

// MutualMatches lists the user's Matched pairs with the other side's public
// data. Counterparts that were deleted since are skipped.
func (u *Match) MutualMatches(ctx context.Context, userID int64) ([]MutualMatch, error) {
	if userID <= 0 {
		return nil, domain.Invalid("Invalid user id.")
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	matched, err := u.matches.ListByUserAndStatus(ctx, userID, match.Matched)
	if err != nil {
		return nil, err
	}

	out := make([]MutualMatch, 0, len(matched))
	for _, m := range matched {
		otherID := m.Counterpart(userID)
		other, err := u.users.GetByID(ctx, otherID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}

		p, err := u.counterpartProfile(ctx, otherID)
		if err != nil {
			return nil, err
		}
		out = append(out, MutualMatch{Match: m, User: other.Sanitized(), Profile: p})
	}
	return out, nil
}

func (u *Match) counterpartProfile(ctx context.Context, userID int64) (*profile.Enriched, error) {
	if u.profiles == nil {
		return nil, nil
	}
	o, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if u.enricher == nil {
		return &profile.Enriched{Owned: o}, nil
	}
	e, err := u.enricher.Enrich(ctx, []profile.Owned{o})
	if err != nil {
		return nil, err
	}
	return &e[0], nil
}
