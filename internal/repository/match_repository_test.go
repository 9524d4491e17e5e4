package repository

import (
	"context"
	"strings"
	"testing"

	"groupie/internal/database"
	"groupie/internal/database/dbtest"
	"groupie/internal/domain"
	"groupie/internal/domain/match"
	"groupie/internal/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchRow(id, a, b int64, s match.Status) []any {
	return []any{id, a, b, int16(s), fixedNow, fixedNow}
}

// pairStore is a tiny stand-in for the matches table, enough to drive swipes.
type pairStore struct {
	rows map[int64][]any
	next int64
}

func newPairStore() *pairStore {
	return &pairStore{rows: map[int64][]any{}, next: 1}
}

func (s *pairStore) find(a, b int64) []any {
	for _, r := range s.rows {
		x, y := r[1].(int64), r[2].(int64)
		if (x == a && y == b) || (x == b && y == a) {
			return r
		}
	}
	return nil
}

func (s *pairStore) queryRow(q string, args []any) ([]any, error) {
	switch {
	case strings.Contains(q, "FOR UPDATE"):
		if r := s.find(args[0].(int64), args[1].(int64)); r != nil {
			return r, nil
		}
		return nil, database.ErrNoRows
	case strings.Contains(q, "INSERT INTO matches"):
		id := s.next
		s.next++
		r := matchRow(id, args[0].(int64), args[1].(int64), match.Status(args[2].(int16)))
		s.rows[id] = r
		return r, nil
	case strings.Contains(q, "UPDATE matches SET status"):
		r := s.rows[args[0].(int64)]
		r[3] = args[1].(int16)
		return r, nil
	}
	return nil, database.ErrNoRows
}

func TestApplySwipe_MutualLikeBecomesMatched(t *testing.T) {
	store := newPairStore()
	db := dbtest.New()
	db.QueryRowFunc = store.queryRow

	repo := NewPostgresMatchRepository(db, logger.Discard())
	ctx := context.Background()

	first, err := repo.ApplySwipe(ctx, 1, 2, match.Like)
	require.NoError(t, err)
	assert.Equal(t, match.OutcomeCreate, first.Outcome)
	assert.Equal(t, match.Unmatched, first.Match.Status)
	assert.False(t, first.BecameMatched)

	second, err := repo.ApplySwipe(ctx, 2, 1, match.Like)
	require.NoError(t, err)
	assert.Equal(t, match.OutcomeUpdate, second.Outcome)
	assert.Equal(t, match.Matched, second.Match.Status)
	assert.Equal(t, first.Match.ID, second.Match.ID)
	assert.True(t, second.BecameMatched)

	assert.Len(t, store.rows, 1)
	assert.True(t, db.Executed("pg_advisory_xact_lock"))
	for _, tx := range db.Txs {
		assert.True(t, tx.Committed)
	}
}

func TestApplySwipe_DeniedIgnoresLaterLikes(t *testing.T) {
	store := newPairStore()
	db := dbtest.New()
	db.QueryRowFunc = store.queryRow

	repo := NewPostgresMatchRepository(db, logger.Discard())
	ctx := context.Background()

	res, err := repo.ApplySwipe(ctx, 3, 4, match.Dislike)
	require.NoError(t, err)
	assert.Equal(t, match.Denied, res.Match.Status)

	res, err = repo.ApplySwipe(ctx, 4, 3, match.Like)
	require.NoError(t, err)
	assert.Equal(t, match.OutcomeNoop, res.Outcome)
	assert.Equal(t, match.Denied, res.Match.Status)
	assert.False(t, db.Executed("UPDATE matches SET status"))
}

func TestApplySwipe_LikeOnUnmatchedRowMatches(t *testing.T) {
	store := newPairStore()
	db := dbtest.New()
	db.QueryRowFunc = store.queryRow

	repo := NewPostgresMatchRepository(db, logger.Discard())
	ctx := context.Background()

	_, err := repo.ApplySwipe(ctx, 7, 8, match.Like)
	require.NoError(t, err)

	res, err := repo.ApplySwipe(ctx, 7, 8, match.Like)
	require.NoError(t, err)
	assert.Equal(t, match.OutcomeUpdate, res.Outcome)
	assert.Equal(t, match.Matched, res.Match.Status)
	assert.True(t, res.BecameMatched)
}

func TestApplySwipe_LeavesSwipeLoggingToCaller(t *testing.T) {
	db := dbtest.New()
	db.QueryRowFunc = newPairStore().queryRow
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	repo := NewPostgresMatchRepository(db, log)
	_, err := repo.ApplySwipe(context.Background(), 1, 2, match.Like)
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestApplySwipe_LockKeyIsOrderIndependent(t *testing.T) {
	var keys []any
	db := dbtest.New()
	db.ExecFunc = func(q string, args []any) (int64, error) {
		keys = append(keys, args[0])
		return 1, nil
	}
	db.QueryRowFunc = newPairStore().queryRow

	repo := NewPostgresMatchRepository(db, logger.Discard())
	_, err := repo.ApplySwipe(context.Background(), 9, 5, match.Dislike)
	require.NoError(t, err)
	_, err = repo.ApplySwipe(context.Background(), 5, 9, match.Dislike)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.Equal(t, "matches:5:9", keys[0])
	assert.Equal(t, keys[0], keys[1])
}

func TestMatchRepository_CreateConflictAndUnknownUser(t *testing.T) {
	db := dbtest.New()
	repo := NewPostgresMatchRepository(db, logger.Discard())

	db.QueryRowFunc = func(string, []any) ([]any, error) {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	_, err := repo.Create(context.Background(), match.Match{UserIDOne: 1, UserIDTwo: 2})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	db.QueryRowFunc = func(string, []any) ([]any, error) {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	_, err = repo.Create(context.Background(), match.Match{UserIDOne: 1, UserIDTwo: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatchRepository_UpdateStatusArgument(t *testing.T) {
	db := dbtest.New()
	var args []any
	db.QueryRowFunc = func(q string, a []any) ([]any, error) {
		args = a
		return matchRow(7, 1, 2, match.Denied), nil
	}

	repo := NewPostgresMatchRepository(db, logger.Discard())
	s := match.Denied
	m, err := repo.Update(context.Background(), 7, match.Patch{Status: &s})
	require.NoError(t, err)
	assert.Equal(t, match.Denied, m.Status)

	require.Len(t, args, 4)
	assert.Nil(t, args[1])
	assert.Nil(t, args[2])
	code := int16(2)
	assert.Equal(t, &code, args[3])
}
