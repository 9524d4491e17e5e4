package repository

import (
	"context"

	"groupie/internal/database"
	"groupie/internal/domain"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/user"

	"github.com/sirupsen/logrus"
)

const userColumns = `id, email, password_hash, first_name, last_name, birthdate, user_type, created_at, updated_at`

type PostgresUserRepository struct {
	db  database.DB
	log logrus.FieldLogger
}

func NewPostgresUserRepository(db database.DB, log logrus.FieldLogger) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, log: loggerOrDefault(log)}
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Birthdate,
		&u.UserType,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL LIMIT 1`,
		id,
	))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, domain.NotFound("User", id)
		}
		return user.User{}, dbFailure(r.log, "get user", err, logrus.Fields{"user_id": id})
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL LIMIT 1`,
		user.NormalizeEmail(email),
	))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, domain.NotFound("User", email)
		}
		return user.User{}, dbFailure(r.log, "get user by email", err, nil)
	}
	return u, nil
}

func insertUser(ctx context.Context, q database.Querier, u user.User) (user.User, error) {
	return scanUser(q.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, birthdate, user_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		 RETURNING `+userColumns,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Birthdate,
		u.UserType,
	))
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	created, err := insertUser(ctx, r.db, u)
	if err != nil {
		return user.User{}, r.mapWriteError("create user", err)
	}
	return created, nil
}

// CreateWithProfile inserts the user and an empty profile in one transaction.
// A failure at either step rolls back both rows.
func (r *PostgresUserRepository) CreateWithProfile(ctx context.Context, u user.User) (user.User, profile.Profile, error) {
	var (
		created user.User
		prof    profile.Profile
	)

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var err error
		created, err = insertUser(ctx, tx, u)
		if err != nil {
			return r.mapWriteError("register user", err)
		}

		prof, err = insertProfile(ctx, tx, profile.Default(created.ID))
		if err != nil {
			return dbFailure(r.log, "register default profile", err, logrus.Fields{"user_id": created.ID})
		}
		return nil
	})
	if err != nil {
		return user.User{}, profile.Profile{}, err
	}

	r.log.WithFields(logrus.Fields{"user_id": created.ID, "profile_id": prof.ID}).Info("user registered")
	return created, prof, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, id int64, p user.Patch) (user.User, error) {
	var email *string
	if p.Email != nil {
		e := user.NormalizeEmail(*p.Email)
		email = &e
	}

	u, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET
			email = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			first_name = COALESCE($4, first_name),
			last_name = COALESCE($5, last_name),
			birthdate = COALESCE($6, birthdate),
			user_type = COALESCE($7, user_type),
			updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING `+userColumns,
		id,
		email,
		p.PasswordHash,
		p.FirstName,
		p.LastName,
		p.Birthdate,
		p.UserType,
	))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, domain.NotFound("User", id)
		}
		return user.User{}, r.mapWriteError("update user", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return false, dbFailure(r.log, "delete user", err, logrus.Fields{"user_id": id})
	}
	return affected > 0, nil
}

func (r *PostgresUserRepository) mapWriteError(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return domain.ErrDuplicateEmail
	case database.IsForeignKeyViolation(err):
		return domain.Invalid("Unknown user type.")
	}
	return dbFailure(r.log, op, err, nil)
}
