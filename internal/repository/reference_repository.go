package repository

import (
	"context"
	"fmt"

	"groupie/internal/database"
	"groupie/internal/domain"
	"groupie/internal/domain/reference"

	"github.com/sirupsen/logrus"
)

const referenceColumns = `id, name, created_at, updated_at`

// PostgresReferenceRepository serves every lookup table. Table names come
// from reference.Kind and are never taken from user input.
type PostgresReferenceRepository struct {
	db  database.DB
	log logrus.FieldLogger
}

func NewPostgresReferenceRepository(db database.DB, log logrus.FieldLogger) *PostgresReferenceRepository {
	return &PostgresReferenceRepository{db: db, log: loggerOrDefault(log)}
}

func (r *PostgresReferenceRepository) List(ctx context.Context, k reference.Kind) ([]reference.Item, error) {
	if !k.Valid() {
		return nil, domain.Invalid("unknown reference kind %q", k)
	}

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE deleted_at IS NULL ORDER BY name ASC`, referenceColumns, k.Table())
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, dbFailure(r.log, "list reference", err, logrus.Fields{"kind": k})
	}
	defer rows.Close()

	out := make([]reference.Item, 0)
	for rows.Next() {
		var it reference.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, dbFailure(r.log, "scan reference", err, logrus.Fields{"kind": k})
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, dbFailure(r.log, "list reference", err, logrus.Fields{"kind": k})
	}
	return out, nil
}

func (r *PostgresReferenceRepository) GetByID(ctx context.Context, k reference.Kind, id int64) (reference.Item, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL LIMIT 1`, referenceColumns, k.Table())
	return r.getOne(ctx, k, q, id)
}

func (r *PostgresReferenceRepository) GetByName(ctx context.Context, k reference.Kind, name string) (reference.Item, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE name = $1 AND deleted_at IS NULL LIMIT 1`, referenceColumns, k.Table())
	return r.getOne(ctx, k, q, name)
}

func (r *PostgresReferenceRepository) getOne(ctx context.Context, k reference.Kind, q string, key any) (reference.Item, error) {
	if !k.Valid() {
		return reference.Item{}, domain.Invalid("unknown reference kind %q", k)
	}

	var it reference.Item
	err := r.db.QueryRow(ctx, q, key).Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return reference.Item{}, domain.NotFound(k.Label(), key)
		}
		return reference.Item{}, dbFailure(r.log, "get reference", err, logrus.Fields{"kind": k, "key": key})
	}
	return it, nil
}

// NamesByIDs resolves a batch of ids with a single query. Unknown and
// soft-deleted ids are simply absent from the result.
func (r *PostgresReferenceRepository) NamesByIDs(ctx context.Context, k reference.Kind, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if !k.Valid() {
		return nil, domain.Invalid("unknown reference kind %q", k)
	}

	q := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = ANY($1) AND deleted_at IS NULL`, k.Table())
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, dbFailure(r.log, "resolve reference names", err, logrus.Fields{"kind": k})
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, dbFailure(r.log, "scan reference name", err, logrus.Fields{"kind": k})
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, dbFailure(r.log, "resolve reference names", err, logrus.Fields{"kind": k})
	}
	return out, nil
}

func (r *PostgresReferenceRepository) Create(ctx context.Context, k reference.Kind, name string) (reference.Item, error) {
	if !k.Valid() {
		return reference.Item{}, domain.Invalid("unknown reference kind %q", k)
	}

	q := fmt.Sprintf(
		`INSERT INTO %s (name, created_at, updated_at) VALUES ($1, now(), now()) RETURNING %s`,
		k.Table(), referenceColumns,
	)

	var it reference.Item
	err := r.db.QueryRow(ctx, q, name).Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return reference.Item{}, domain.AlreadyExists(k.Label(), name)
		}
		return reference.Item{}, dbFailure(r.log, "create reference", err, logrus.Fields{"kind": k, "name": name})
	}
	return it, nil
}

func (r *PostgresReferenceRepository) Rename(ctx context.Context, k reference.Kind, id int64, newName string) (reference.Item, error) {
	if !k.Valid() {
		return reference.Item{}, domain.Invalid("unknown reference kind %q", k)
	}

	q := fmt.Sprintf(
		`UPDATE %s SET name = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL RETURNING %s`,
		k.Table(), referenceColumns,
	)

	var it reference.Item
	err := r.db.QueryRow(ctx, q, id, newName).Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		switch {
		case isNoRows(err):
			return reference.Item{}, domain.NotFound(k.Label(), id)
		case database.IsUniqueViolation(err):
			return reference.Item{}, domain.AlreadyExists(k.Label(), newName)
		}
		return reference.Item{}, dbFailure(r.log, "rename reference", err, logrus.Fields{"kind": k, "id": id})
	}
	return it, nil
}

func (r *PostgresReferenceRepository) SoftDelete(ctx context.Context, k reference.Kind, id int64) (bool, error) {
	if !k.Valid() {
		return false, domain.Invalid("unknown reference kind %q", k)
	}

	q := fmt.Sprintf(`UPDATE %s SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, k.Table())
	affected, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, dbFailure(r.log, "delete reference", err, logrus.Fields{"kind": k, "id": id})
	}
	return affected > 0, nil
}
