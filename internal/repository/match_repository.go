package repository

import (
	"context"
	"fmt"

	"groupie/internal/database"
	"groupie/internal/domain"
	"groupie/internal/domain/match"

	"github.com/sirupsen/logrus"
)

const matchColumns = `id, user_id_one, user_id_two, status, created_at, updated_at`

// pairPredicate matches the unordered pair ($1, $2) using the same
// expressions as the matches_pair_active_key index.
const pairPredicate = `LEAST(user_id_one, user_id_two) = LEAST($1::bigint, $2::bigint)
	AND GREATEST(user_id_one, user_id_two) = GREATEST($1::bigint, $2::bigint)`

type PostgresMatchRepository struct {
	db  database.DB
	log logrus.FieldLogger
}

func NewPostgresMatchRepository(db database.DB, log logrus.FieldLogger) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db, log: loggerOrDefault(log)}
}

func scanMatch(row database.Row) (match.Match, error) {
	var (
		m      match.Match
		status int16
	)
	err := row.Scan(&m.ID, &m.UserIDOne, &m.UserIDTwo, &status, &m.CreatedAt, &m.UpdatedAt)
	m.Status = match.Status(status)
	return m, err
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id int64) (match.Match, error) {
	m, err := scanMatch(r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1 AND deleted_at IS NULL LIMIT 1`,
		id,
	))
	if err != nil {
		if isNoRows(err) {
			return match.Match{}, domain.NotFound("Match", id)
		}
		return match.Match{}, dbFailure(r.log, "get match", err, logrus.Fields{"match_id": id})
	}
	return m, nil
}

func (r *PostgresMatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.list(ctx, "list matches",
		`SELECT `+matchColumns+` FROM matches WHERE deleted_at IS NULL ORDER BY id ASC`,
	)
}

func (r *PostgresMatchRepository) ListByUserAndStatus(ctx context.Context, userID int64, s match.Status) ([]match.Match, error) {
	return r.list(ctx, "list user matches",
		`SELECT `+matchColumns+` FROM matches
		 WHERE deleted_at IS NULL AND status = $2 AND (user_id_one = $1 OR user_id_two = $1)
		 ORDER BY updated_at DESC, id DESC`,
		userID, int16(s),
	)
}

func (r *PostgresMatchRepository) list(ctx context.Context, op, q string, args ...any) ([]match.Match, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, dbFailure(r.log, op, err, nil)
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, dbFailure(r.log, op, err, nil)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dbFailure(r.log, op, err, nil)
	}
	return out, nil
}

func selectPair(ctx context.Context, q database.Querier, a, b int64, forUpdate bool) (match.Match, error) {
	stmt := `SELECT ` + matchColumns + ` FROM matches WHERE deleted_at IS NULL AND ` + pairPredicate + ` LIMIT 1`
	if forUpdate {
		stmt += ` FOR UPDATE`
	}
	return scanMatch(q.QueryRow(ctx, stmt, a, b))
}

// Between finds the pair's active match regardless of which side is stored first.
func (r *PostgresMatchRepository) Between(ctx context.Context, a, b int64) (match.Match, error) {
	m, err := selectPair(ctx, r.db, a, b, false)
	if err != nil {
		if isNoRows(err) {
			return match.Match{}, domain.NotFound("Match", fmt.Sprintf("%d-%d", a, b))
		}
		return match.Match{}, dbFailure(r.log, "get match by pair", err, logrus.Fields{"user_a": a, "user_b": b})
	}
	return m, nil
}

func insertMatch(ctx context.Context, q database.Querier, m match.Match) (match.Match, error) {
	return scanMatch(q.QueryRow(ctx,
		`INSERT INTO matches (user_id_one, user_id_two, status, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 RETURNING `+matchColumns,
		m.UserIDOne,
		m.UserIDTwo,
		int16(m.Status),
	))
}

func (r *PostgresMatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	created, err := insertMatch(ctx, r.db, m)
	if err != nil {
		return match.Match{}, r.mapWriteError("create match", err, m.UserIDOne, m.UserIDTwo)
	}
	return created, nil
}

func (r *PostgresMatchRepository) Update(ctx context.Context, id int64, p match.Patch) (match.Match, error) {
	var status *int16
	if p.Status != nil {
		s := int16(*p.Status)
		status = &s
	}

	m, err := scanMatch(r.db.QueryRow(ctx,
		`UPDATE matches SET
			user_id_one = COALESCE($2, user_id_one),
			user_id_two = COALESCE($3, user_id_two),
			status = COALESCE($4::smallint, status),
			updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING `+matchColumns,
		id,
		p.UserIDOne,
		p.UserIDTwo,
		status,
	))
	if err != nil {
		if isNoRows(err) {
			return match.Match{}, domain.NotFound("Match", id)
		}
		var a, b int64
		if p.UserIDOne != nil {
			a = *p.UserIDOne
		}
		if p.UserIDTwo != nil {
			b = *p.UserIDTwo
		}
		return match.Match{}, r.mapWriteError("update match", err, a, b)
	}
	return m, nil
}

func (r *PostgresMatchRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE matches SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return false, dbFailure(r.log, "delete match", err, logrus.Fields{"match_id": id})
	}
	return affected > 0, nil
}

// ApplySwipe takes a transaction-scoped advisory lock on the unordered pair so
// that two users liking each other at the same moment see each other's row.
func (r *PostgresMatchRepository) ApplySwipe(ctx context.Context, actor, target int64, a match.Action) (match.SwipeResult, error) {
	lo, hi := actor, target
	if lo > hi {
		lo, hi = hi, lo
	}
	lockKey := fmt.Sprintf("matches:%d:%d", lo, hi)

	var res match.SwipeResult
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
			return dbFailure(r.log, "lock match pair", err, logrus.Fields{"pair": lockKey})
		}

		var current *match.Status
		existing, err := selectPair(ctx, tx, actor, target, true)
		switch {
		case err == nil:
			s := existing.Status
			current = &s
		case isNoRows(err):
		default:
			return dbFailure(r.log, "read match pair", err, logrus.Fields{"pair": lockKey})
		}

		next, outcome := match.Transition(current, a)
		res.Outcome = outcome

		switch outcome {
		case match.OutcomeCreate:
			created, err := insertMatch(ctx, tx, match.Match{UserIDOne: actor, UserIDTwo: target, Status: next})
			if err != nil {
				return r.mapWriteError("create swipe match", err, actor, target)
			}
			res.Match = created
		case match.OutcomeUpdate:
			updated, err := scanMatch(tx.QueryRow(ctx,
				`UPDATE matches SET status = $2, updated_at = now()
				 WHERE id = $1 AND deleted_at IS NULL
				 RETURNING `+matchColumns,
				existing.ID,
				int16(next),
			))
			if err != nil {
				return dbFailure(r.log, "update swipe match", err, logrus.Fields{"match_id": existing.ID})
			}
			res.Match = updated
			res.BecameMatched = next == match.Matched
		default:
			res.Match = existing
		}
		return nil
	})
	if err != nil {
		return match.SwipeResult{}, err
	}
	return res, nil
}

func (r *PostgresMatchRepository) mapWriteError(op string, err error, a, b int64) error {
	switch {
	case database.IsUniqueViolation(err):
		return domain.AlreadyExists("Match", fmt.Sprintf("%d-%d", a, b))
	case database.IsForeignKeyViolation(err):
		return domain.NotFound("User", nil)
	}
	return dbFailure(r.log, op, err, logrus.Fields{"user_a": a, "user_b": b})
}
