package profile

import (
	"testing"

	"groupie/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateGenres(t *testing.T) {
	assert.NoError(t, ValidateGenres(nil))
	assert.NoError(t, ValidateGenres([]int64{1, 2, 3, 4, 5}))
	assert.ErrorIs(t, ValidateGenres([]int64{1, 2, 3, 4, 5, 6}), domain.ErrValidation)
	assert.ErrorIs(t, ValidateGenres([]int64{1, 1}), domain.ErrValidation)
	assert.ErrorIs(t, ValidateInstruments([]int64{0}), domain.ErrValidation)
}

func TestResolve(t *testing.T) {
	got := Resolve([]int64{3, 9, 1}, map[int64]string{1: "Rock", 3: "Jazz"})
	assert.Equal(t, []Named{
		{ID: 3, Name: "Jazz"},
		{ID: 9, Name: UnknownName},
		{ID: 1, Name: "Rock"},
	}, got)

	assert.Equal(t, []Named{}, Resolve(nil, nil))
}

func TestDefaultAndPatch(t *testing.T) {
	d := Default(42)
	assert.Equal(t, int64(42), d.UserID)
	assert.NotNil(t, d.Genres)
	assert.NotNil(t, d.Instruments)
	assert.Zero(t, d.ProficiencyLevel)

	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Genres: []int64{}}.Empty(), "an explicit empty list clears genres")
}
