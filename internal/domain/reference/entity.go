package reference

import (
	"regexp"
	"strings"
	"time"

	"groupie/internal/domain"
)

// Kind identifies one of the named lookup tables.
type Kind string

const (
	Genre            Kind = "genre"
	Instrument       Kind = "instrument"
	Location         Kind = "location"
	ProficiencyLevel Kind = "proficiency_level"
	UserType         Kind = "user_type"
	MatchStatus      Kind = "match_status"
)

type kindInfo struct {
	table   string
	label   string
	spaced  bool
	routeID string
}

var kinds = map[Kind]kindInfo{
	Genre:            {table: "genres", label: "Genre", routeID: "genres"},
	Instrument:       {table: "instruments", label: "Instrument", routeID: "instruments"},
	Location:         {table: "locations", label: "Location", routeID: "locations", spaced: true},
	ProficiencyLevel: {table: "proficiency_levels", label: "Proficiency level", routeID: "proficiency-levels"},
	UserType:         {table: "user_types", label: "User type", routeID: "user-types"},
	MatchStatus:      {table: "match_status", label: "Match status", routeID: "match-statuses"},
}

// Kinds lists every lookup kind in a stable order.
func Kinds() []Kind {
	return []Kind{Genre, Instrument, Location, ProficiencyLevel, UserType, MatchStatus}
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Table is the SQL table backing the kind. Only values from the fixed kinds
// map are ever returned, so it is safe to interpolate into statements.
func (k Kind) Table() string { return kinds[k].table }

func (k Kind) Label() string { return kinds[k].label }

func (k Kind) RoutePath() string { return kinds[k].routeID }

type Item struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

var (
	alphaRe       = regexp.MustCompile(`^[A-Za-z]+$`)
	alphaSpacedRe = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)
)

// NormalizeName trims the name and checks it against the kind's alphabet.
func NormalizeName(k Kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid("%s name is required.", k.Label())
	}

	re := alphaRe
	msg := "Only alphabetic characters are allowed."
	if kinds[k].spaced {
		re = alphaSpacedRe
		msg = "Only alphabetic characters and single spaces are allowed."
	}
	if !re.MatchString(name) {
		return "", domain.Invalid("Invalid %s name. %s", strings.ToLower(k.Label()), msg)
	}
	return name, nil
}

func DeletedMessage(k Kind, name string) string {
	return k.Label() + " '" + name + "' successfully deleted."
}
