package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"groupie/internal/domain"
	"groupie/internal/domain/match"
	"groupie/internal/domain/reference"

	"github.com/sirupsen/logrus"
)

// Cache is the subset of the Redis adapter the use cases need.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ReferenceUsecase interface {
	List(ctx context.Context, k reference.Kind) ([]reference.Item, error)
	Get(ctx context.Context, k reference.Kind, name string) (reference.Item, error)
	GetByID(ctx context.Context, k reference.Kind, id int64) (reference.Item, error)
	Create(ctx context.Context, k reference.Kind, name string) (reference.Item, error)
	Update(ctx context.Context, k reference.Kind, currentName, newName string) (reference.Item, error)
	UpdateByID(ctx context.Context, k reference.Kind, id int64, newName string) (reference.Item, error)
	Delete(ctx context.Context, k reference.Kind, name string) (string, error)
	DeleteByID(ctx context.Context, k reference.Kind, id int64) (string, error)
}

type Reference struct {
	repo  reference.Repository
	cache Cache
	log   logrus.FieldLogger
}

func NewReferenceUsecase(repo reference.Repository, cache Cache, log logrus.FieldLogger) *Reference {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reference{repo: repo, cache: cache, log: log}
}

func listCacheKey(k reference.Kind) string {
	return "ref:" + string(k) + ":list"
}

func (u *Reference) List(ctx context.Context, k reference.Kind) ([]reference.Item, error) {
	key := listCacheKey(k)
	if u.cache != nil {
		var cached []reference.Item
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.repo.List(ctx, k)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.log.WithError(err).WithField("kind", k).Debug("reference cache write failed")
		}
	}
	return items, nil
}

func (u *Reference) Get(ctx context.Context, k reference.Kind, name string) (reference.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return reference.Item{}, domain.Invalid("%s name is required.", k.Label())
	}
	return u.repo.GetByName(ctx, k, name)
}

// GetByID accepts id 0, which is the pinned Unmatched status row.
func (u *Reference) GetByID(ctx context.Context, k reference.Kind, id int64) (reference.Item, error) {
	if id < 0 {
		return reference.Item{}, domain.Invalid("Invalid %s id.", strings.ToLower(k.Label()))
	}
	return u.repo.GetByID(ctx, k, id)
}

func (u *Reference) Create(ctx context.Context, k reference.Kind, name string) (reference.Item, error) {
	name, err := reference.NormalizeName(k, name)
	if err != nil {
		return reference.Item{}, err
	}

	if _, err := u.repo.GetByName(ctx, k, name); err == nil {
		return reference.Item{}, domain.AlreadyExists(k.Label(), name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return reference.Item{}, err
	}

	created, err := u.repo.Create(ctx, k, name)
	if err != nil {
		return reference.Item{}, err
	}
	u.invalidate(ctx, k)
	return created, nil
}

func (u *Reference) Update(ctx context.Context, k reference.Kind, currentName, newName string) (reference.Item, error) {
	newName, err := reference.NormalizeName(k, newName)
	if err != nil {
		return reference.Item{}, err
	}

	current, err := u.Get(ctx, k, currentName)
	if err != nil {
		return reference.Item{}, err
	}
	return u.rename(ctx, k, current, newName)
}

func (u *Reference) UpdateByID(ctx context.Context, k reference.Kind, id int64, newName string) (reference.Item, error) {
	newName, err := reference.NormalizeName(k, newName)
	if err != nil {
		return reference.Item{}, err
	}

	current, err := u.GetByID(ctx, k, id)
	if err != nil {
		return reference.Item{}, err
	}
	return u.rename(ctx, k, current, newName)
}

// rename keeps a same-name rename legal; it only refreshes updated_at.
func (u *Reference) rename(ctx context.Context, k reference.Kind, current reference.Item, newName string) (reference.Item, error) {
	if err := guardPinned(k, current); err != nil {
		return reference.Item{}, err
	}
	if newName != current.Name {
		other, err := u.repo.GetByName(ctx, k, newName)
		switch {
		case err == nil && other.ID != current.ID:
			return reference.Item{}, domain.AlreadyExists(k.Label(), newName)
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return reference.Item{}, err
		}
	}

	updated, err := u.repo.Rename(ctx, k, current.ID, newName)
	if err != nil {
		return reference.Item{}, err
	}
	u.invalidate(ctx, k)
	return updated, nil
}

func (u *Reference) Delete(ctx context.Context, k reference.Kind, name string) (string, error) {
	item, err := u.Get(ctx, k, name)
	if err != nil {
		return "", err
	}
	return u.softDelete(ctx, k, item)
}

func (u *Reference) DeleteByID(ctx context.Context, k reference.Kind, id int64) (string, error) {
	item, err := u.GetByID(ctx, k, id)
	if err != nil {
		return "", err
	}
	return u.softDelete(ctx, k, item)
}

func (u *Reference) softDelete(ctx context.Context, k reference.Kind, item reference.Item) (string, error) {
	if err := guardPinned(k, item); err != nil {
		return "", err
	}
	ok, err := u.repo.SoftDelete(ctx, k, item.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.NotFound(k.Label(), item.Name)
	}
	u.invalidate(ctx, k)

	u.log.WithFields(logrus.Fields{"kind": k, "id": item.ID, "name": item.Name}).Info("reference soft-deleted")
	return reference.DeletedMessage(k, item.Name), nil
}

// guardPinned refuses changes to the match_status rows whose ids are the
// codes stored in matches.status.
func guardPinned(k reference.Kind, it reference.Item) error {
	if k != reference.MatchStatus {
		return nil
	}
	for _, st := range match.Statuses() {
		if int64(st) == it.ID {
			return domain.Invalid("Match status '%s' is built in and cannot be changed.", st)
		}
	}
	return nil
}

func (u *Reference) invalidate(ctx context.Context, k reference.Kind) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, listCacheKey(k)); err != nil {
		u.log.WithError(err).WithField("kind", k).Warn("reference cache invalidation failed")
	}
}
