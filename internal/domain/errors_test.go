package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	assert.ErrorIs(t, Invalid("name %q is invalid", "R&B"), ErrValidation)
	assert.ErrorIs(t, NotFound("Genre", "Jazz"), ErrNotFound)
	assert.ErrorIs(t, AlreadyExists("Genre", "Jazz"), ErrAlreadyExists)

	cause := errors.New("connection reset")
	err := Database("get genre", cause)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Database("noop", nil))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, `name "R&B" is invalid`, PublicMessage(fmt.Errorf("wrap: %w", Invalid("name %q is invalid", "R&B"))))
	assert.Equal(t, "Genre 'Jazz' not found", PublicMessage(NotFound("Genre", "Jazz")))
	assert.Equal(t, "Match not found", PublicMessage(NotFound("Match", nil)))
	assert.Equal(t, "Instrument 'Drums' already exists", PublicMessage(AlreadyExists("Instrument", "Drums")))
	assert.Equal(t, "", PublicMessage(Database("x", errors.New("secret dsn"))))
}
