package usecase

import (
	"context"
	"strings"

	"groupie/internal/domain"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/reference"

	"github.com/sirupsen/logrus"
)

type ProfileUsecase interface {
	Get(ctx context.Context, id int64) (profile.Enriched, error)
	GetByUserID(ctx context.Context, userID int64) (profile.Enriched, error)
	List(ctx context.Context, excludeUserID int64) ([]profile.Enriched, error)
	Create(ctx context.Context, p profile.Profile) (profile.Profile, error)
	Update(ctx context.Context, id int64, p profile.Patch) (profile.Profile, error)
	Delete(ctx context.Context, id int64) error
}

type Profile struct {
	profiles profile.Repository
	refs     reference.Repository
	log      logrus.FieldLogger
}

func NewProfileUsecase(profiles profile.Repository, refs reference.Repository, log logrus.FieldLogger) *Profile {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Profile{profiles: profiles, refs: refs, log: log}
}

func (u *Profile) Get(ctx context.Context, id int64) (profile.Enriched, error) {
	if id <= 0 {
		return profile.Enriched{}, domain.Invalid("Invalid profile id.")
	}
	o, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.Enriched{}, err
	}
	return u.enrichOne(ctx, o)
}

func (u *Profile) GetByUserID(ctx context.Context, userID int64) (profile.Enriched, error) {
	if userID <= 0 {
		return profile.Enriched{}, domain.Invalid("Invalid user id.")
	}
	o, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Enriched{}, err
	}
	return u.enrichOne(ctx, o)
}

// List returns every active profile except the caller's own when
// excludeUserID is positive.
func (u *Profile) List(ctx context.Context, excludeUserID int64) ([]profile.Enriched, error) {
	if excludeUserID < 0 {
		excludeUserID = 0
	}
	owned, err := u.profiles.List(ctx, excludeUserID)
	if err != nil {
		return nil, err
	}
	return u.Enrich(ctx, owned)
}

func (u *Profile) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if p.UserID <= 0 {
		return profile.Profile{}, domain.Invalid("Missing required fields: user_id")
	}
	if p.Genres == nil {
		p.Genres = []int64{}
	}
	if p.Instruments == nil {
		p.Instruments = []int64{}
	}
	if err := profile.ValidateGenres(p.Genres); err != nil {
		return profile.Profile{}, err
	}
	if err := profile.ValidateInstruments(p.Instruments); err != nil {
		return profile.Profile{}, err
	}
	if p.ProficiencyLevel < 0 {
		return profile.Profile{}, domain.Invalid("Invalid proficiency level.")
	}
	p.Gender = strings.TrimSpace(p.Gender)
	p.Bio = strings.TrimSpace(p.Bio)

	return u.profiles.Create(ctx, p)
}

func (u *Profile) Update(ctx context.Context, id int64, p profile.Patch) (profile.Profile, error) {
	if id <= 0 {
		return profile.Profile{}, domain.Invalid("Invalid profile id.")
	}
	if p.Empty() {
		return profile.Profile{}, domain.Invalid("No updates provided")
	}
	if p.Genres != nil {
		if err := profile.ValidateGenres(p.Genres); err != nil {
			return profile.Profile{}, err
		}
	}
	if p.Instruments != nil {
		if err := profile.ValidateInstruments(p.Instruments); err != nil {
			return profile.Profile{}, err
		}
	}
	if p.ProficiencyLevel != nil && *p.ProficiencyLevel < 0 {
		return profile.Profile{}, domain.Invalid("Invalid proficiency level.")
	}
	return u.profiles.Update(ctx, id, p)
}

func (u *Profile) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("Invalid profile id.")
	}
	ok, err := u.profiles.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDeleteFailed
	}
	return nil
}

func (u *Profile) enrichOne(ctx context.Context, o profile.Owned) (profile.Enriched, error) {
	out, err := u.Enrich(ctx, []profile.Owned{o})
	if err != nil {
		return profile.Enriched{}, err
	}
	return out[0], nil
}

// Enrich resolves genre, instrument, proficiency and user type ids to names
// with one lookup per kind for the whole batch. Proficiency is only shown
// for musicians.
func (u *Profile) Enrich(ctx context.Context, owned []profile.Owned) ([]profile.Enriched, error) {
	var genreIDs, instrumentIDs, levelIDs, typeIDs []int64
	for _, o := range owned {
		genreIDs = append(genreIDs, o.Genres...)
		instrumentIDs = append(instrumentIDs, o.Instruments...)
		if o.ProficiencyLevel > 0 {
			levelIDs = append(levelIDs, o.ProficiencyLevel)
		}
		typeIDs = append(typeIDs, o.UserType)
	}

	genres, err := u.names(ctx, reference.Genre, genreIDs)
	if err != nil {
		return nil, err
	}
	instruments, err := u.names(ctx, reference.Instrument, instrumentIDs)
	if err != nil {
		return nil, err
	}
	levels, err := u.names(ctx, reference.ProficiencyLevel, levelIDs)
	if err != nil {
		return nil, err
	}
	types, err := u.names(ctx, reference.UserType, typeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]profile.Enriched, 0, len(owned))
	for _, o := range owned {
		e := profile.Enriched{
			Owned:          o,
			GenreList:      profile.Resolve(o.Genres, genres),
			InstrumentList: profile.Resolve(o.Instruments, instruments),
			UserTypeName:   types[o.UserType],
		}
		if e.UserTypeName == "" {
			e.UserTypeName = profile.UnknownName
		}
		if e.UserTypeName == profile.RoleMusician && o.ProficiencyLevel > 0 {
			lvl := profile.Resolve([]int64{o.ProficiencyLevel}, levels)[0]
			e.ProficiencyLevel = &lvl
		}
		out = append(out, e)
	}
	return out, nil
}

func (u *Profile) names(ctx context.Context, k reference.Kind, ids []int64) (map[int64]string, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	m, err := u.refs.NamesByIDs(ctx, k, ids)
	if err != nil {
		u.log.WithError(err).WithField("kind", k).Warn("profile enrichment lookup failed")
		return nil, err
	}
	return m, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
