package profile

import (
	"time"

	"groupie/internal/domain"
)

const (
	MaxGenres = 5

	// RoleMusician is the user type whose profiles carry a proficiency level.
	RoleMusician = "Musician"
)

type Profile struct {
	ID               int64
	UserID           int64
	Gender           string
	Instruments      []int64
	ProficiencyLevel int64
	Genres           []int64
	Bio              string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// Default is the empty profile created alongside every new user.
func Default(userID int64) Profile {
	return Profile{
		UserID:      userID,
		Instruments: []int64{},
		Genres:      []int64{},
	}
}

// Owned is a profile joined with the owning user's public fields.
type Owned struct {
	Profile
	FirstName string
	LastName  string
	Email     string
	UserType  int64
}

type Patch struct {
	Gender           *string
	Instruments      []int64
	ProficiencyLevel *int64
	Genres           []int64
	Bio              *string
}

func (p Patch) Empty() bool {
	return p.Gender == nil && p.Instruments == nil && p.ProficiencyLevel == nil &&
		p.Genres == nil && p.Bio == nil
}

func ValidateGenres(ids []int64) error {
	if len(ids) > MaxGenres {
		return domain.Invalid("You can select up to %d genres.", MaxGenres)
	}
	return validateIDs("genre", ids)
}

func ValidateInstruments(ids []int64) error {
	return validateIDs("instrument", ids)
}

func validateIDs(what string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return domain.Invalid("Invalid %s id %d.", what, id)
		}
		if _, dup := seen[id]; dup {
			return domain.Invalid("Duplicate %s id %d.", what, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Named is an id resolved against a lookup table.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

const UnknownName = "Unknown"

// Resolve maps ids to names, keeping input order and marking misses.
func Resolve(ids []int64, names map[int64]string) []Named {
	out := make([]Named, 0, len(ids))
	for _, id := range ids {
		n, ok := names[id]
		if !ok {
			n = UnknownName
		}
		out = append(out, Named{ID: id, Name: n})
	}
	return out
}

// Enriched is a profile whose id sets have been resolved to names.
type Enriched struct {
	Owned
	GenreList        []Named
	InstrumentList   []Named
	ProficiencyLevel *Named
	UserTypeName     string
}
