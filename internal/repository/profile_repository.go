package repository

import (
	"context"

	"groupie/internal/database"
	"groupie/internal/domain"
	"groupie/internal/domain/profile"

	"github.com/sirupsen/logrus"
)

const profileColumns = `id, user_id, gender, instruments, proficiency_level, genres, bio, created_at, updated_at`

const ownedProfileSelect = `
SELECT p.id, p.user_id, p.gender, p.instruments, p.proficiency_level, p.genres, p.bio, p.created_at, p.updated_at,
       u.first_name, u.last_name, u.email, u.user_type
FROM profiles p
JOIN users u ON u.id = p.user_id AND u.deleted_at IS NULL
WHERE p.deleted_at IS NULL`

type PostgresProfileRepository struct {
	db  database.DB
	log logrus.FieldLogger
}

func NewPostgresProfileRepository(db database.DB, log logrus.FieldLogger) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db, log: loggerOrDefault(log)}
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Gender,
		&p.Instruments,
		&p.ProficiencyLevel,
		&p.Genres,
		&p.Bio,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Instruments = emptyIfNil(p.Instruments)
	p.Genres = emptyIfNil(p.Genres)
	return p, err
}

func scanOwned(row database.Row) (profile.Owned, error) {
	var o profile.Owned
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Gender,
		&o.Instruments,
		&o.ProficiencyLevel,
		&o.Genres,
		&o.Bio,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.FirstName,
		&o.LastName,
		&o.Email,
		&o.UserType,
	)
	o.Instruments = emptyIfNil(o.Instruments)
	o.Genres = emptyIfNil(o.Genres)
	return o, err
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id int64) (profile.Owned, error) {
	o, err := scanOwned(r.db.QueryRow(ctx, ownedProfileSelect+` AND p.id = $1 LIMIT 1`, id))
	if err != nil {
		if isNoRows(err) {
			return profile.Owned{}, domain.NotFound("Profile", id)
		}
		return profile.Owned{}, dbFailure(r.log, "get profile", err, logrus.Fields{"profile_id": id})
	}
	return o, nil
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID int64) (profile.Owned, error) {
	o, err := scanOwned(r.db.QueryRow(ctx, ownedProfileSelect+` AND p.user_id = $1 LIMIT 1`, userID))
	if err != nil {
		if isNoRows(err) {
			return profile.Owned{}, domain.NotFound("Profile for user", userID)
		}
		return profile.Owned{}, dbFailure(r.log, "get profile by user", err, logrus.Fields{"user_id": userID})
	}
	return o, nil
}

// List returns active profiles of active users. excludeUserID = 0 keeps everyone.
func (r *PostgresProfileRepository) List(ctx context.Context, excludeUserID int64) ([]profile.Owned, error) {
	rows, err := r.db.Query(ctx,
		ownedProfileSelect+` AND ($1::bigint = 0 OR p.user_id <> $1::bigint) ORDER BY p.created_at DESC, p.id DESC`,
		excludeUserID,
	)
	if err != nil {
		return nil, dbFailure(r.log, "list profiles", err, nil)
	}
	defer rows.Close()

	out := make([]profile.Owned, 0)
	for rows.Next() {
		o, err := scanOwned(rows)
		if err != nil {
			return nil, dbFailure(r.log, "scan profile", err, nil)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, dbFailure(r.log, "list profiles", err, nil)
	}
	return out, nil
}

func insertProfile(ctx context.Context, q database.Querier, p profile.Profile) (profile.Profile, error) {
	return scanProfile(q.QueryRow(ctx,
		`INSERT INTO profiles (user_id, gender, instruments, proficiency_level, genres, bio, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		 RETURNING `+profileColumns,
		p.UserID,
		p.Gender,
		emptyIfNil(p.Instruments),
		p.ProficiencyLevel,
		emptyIfNil(p.Genres),
		p.Bio,
	))
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	created, err := insertProfile(ctx, r.db, p)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return profile.Profile{}, domain.AlreadyExists("Profile for user", p.UserID)
		case database.IsForeignKeyViolation(err):
			return profile.Profile{}, domain.NotFound("User", p.UserID)
		}
		return profile.Profile{}, dbFailure(r.log, "create profile", err, logrus.Fields{"user_id": p.UserID})
	}
	return created, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, id int64, p profile.Patch) (profile.Profile, error) {
	updated, err := scanProfile(r.db.QueryRow(ctx,
		`UPDATE profiles SET
			gender = COALESCE($2, gender),
			instruments = COALESCE($3::bigint[], instruments),
			proficiency_level = COALESCE($4, proficiency_level),
			genres = COALESCE($5::bigint[], genres),
			bio = COALESCE($6, bio),
			updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING `+profileColumns,
		id,
		p.Gender,
		int64s(p.Instruments),
		p.ProficiencyLevel,
		int64s(p.Genres),
		p.Bio,
	))
	if err != nil {
		if isNoRows(err) {
			return profile.Profile{}, domain.NotFound("Profile", id)
		}
		return profile.Profile{}, dbFailure(r.log, "update profile", err, logrus.Fields{"profile_id": id})
	}
	return updated, nil
}

func (r *PostgresProfileRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return false, dbFailure(r.log, "delete profile", err, logrus.Fields{"profile_id": id})
	}
	return affected > 0, nil
}
