package usecase

import (
	"context"
	"testing"

	"groupie/internal/domain"
	"groupie/internal/domain/match"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/reference"
	"groupie/internal/domain/user"
	"groupie/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	uc       *Match
	users    *memUsers
	profiles *memProfiles
	matches  *memMatches
	notifier *recordingNotifier
}

func newMatchFixture() matchFixture {
	users := newMemUsers()
	profiles := newMemProfiles(users)
	matches := newMemMatches()
	notifier := &recordingNotifier{}

	refs := newMemRefs()
	refs.seed(reference.UserType, typeMusician, "Musician")
	enricher := NewProfileUsecase(profiles, refs, logger.Discard())

	return matchFixture{
		uc:       NewMatchUsecase(matches, users, profiles, enricher, notifier, logger.Discard()),
		users:    users,
		profiles: profiles,
		matches:  matches,
		notifier: notifier,
	}
}

func (f matchFixture) addUser(email string) user.User {
	return f.users.put(user.User{Email: email, FirstName: email, UserType: typeMusician})
}

func TestMatch_SwipeMutualLikeNotifiesOnce(t *testing.T) {
	f := newMatchFixture()
	ctx := context.Background()
	a := f.addUser("a@example.com")
	b := f.addUser("b@example.com")

	first, err := f.uc.Swipe(ctx, a.ID, b.ID, match.Like)
	require.NoError(t, err)
	assert.Equal(t, match.OutcomeCreate, first.Outcome)
	assert.Equal(t, match.Unmatched, first.Match.Status)
	assert.Empty(t, f.notifier.calls)

	second, err := f.uc.Swipe(ctx, b.ID, a.ID, "LIKE")
	require.NoError(t, err)
	assert.Equal(t, match.Matched, second.Match.Status)
	assert.True(t, second.BecameMatched)
	assert.Equal(t, first.Match.ID, second.Match.ID)
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, [3]int64{first.Match.ID, a.ID, b.ID}, f.notifier.calls[0])

	again, err := f.uc.Swipe(ctx, a.ID, b.ID, match.Dislike)
	require.NoError(t, err)
	assert.Equal(t, match.OutcomeNoop, again.Outcome)
	assert.Equal(t, match.Matched, again.Match.Status)
	assert.Len(t, f.notifier.calls, 1)
}

func TestMatch_SwipeLogsOnce(t *testing.T) {
	f := newMatchFixture()
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	f.uc.log = log

	a := f.addUser("a@example.com")
	b := f.addUser("b@example.com")
	_, err := f.uc.Swipe(context.Background(), a.ID, b.ID, match.Like)
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "swipe applied", entries[0].Message)
	assert.Equal(t, "create", entries[0].Data["outcome"])
}

func TestMatch_SwipeRejectsBadInput(t *testing.T) {
	f := newMatchFixture()
	ctx := context.Background()
	a := f.addUser("a@example.com")

	_, err := f.uc.Swipe(ctx, a.ID, a.ID, match.Like)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Swipe(ctx, a.ID, 404, match.Like)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Swipe(ctx, a.ID, 404, "superlike")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMatch_CreateAndUpdate(t *testing.T) {
	f := newMatchFixture()
	ctx := context.Background()

	_, err := f.uc.GetAll(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, 1, 1, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	m, err := f.uc.Create(ctx, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, match.Unmatched, m.Status)

	none, err := f.uc.Update(ctx, m.ID, match.Patch{})
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = f.uc.Update(ctx, m.ID, match.Patch{UserIDTwo: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := f.uc.Update(ctx, m.ID, match.Patch{Status: ptr(match.Denied)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, match.Denied, updated.Status)

	require.NoError(t, f.uc.Delete(ctx, m.ID))
	assert.ErrorIs(t, f.uc.Delete(ctx, m.ID), domain.ErrDeleteFailed)
}

func TestMatch_MutualMatches(t *testing.T) {
	f := newMatchFixture()
	ctx := context.Background()
	me := f.addUser("me@example.com")
	friend := f.addUser("friend@example.com")
	gone := f.addUser("gone@example.com")
	pending := f.addUser("pending@example.com")

	_, err := f.profiles.Create(ctx, profile.Profile{UserID: friend.ID, Bio: "bass"})
	require.NoError(t, err)

	for _, other := range []int64{friend.ID, gone.ID} {
		_, err := f.uc.Create(ctx, me.ID, other, ptr(match.Matched))
		require.NoError(t, err)
	}
	_, err = f.uc.Create(ctx, pending.ID, me.ID, nil)
	require.NoError(t, err)
	delete(f.users.byID, gone.ID)

	got, err := f.uc.MutualMatches(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, friend.ID, got[0].User.ID)
	assert.Empty(t, got[0].User.PasswordHash)
	require.NotNil(t, got[0].Profile)
	assert.Equal(t, "bass", got[0].Profile.Bio)
	assert.Equal(t, "Musician", got[0].Profile.UserTypeName)
}
