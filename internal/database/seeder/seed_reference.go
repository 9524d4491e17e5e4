package seeder

import (
	"context"
	"fmt"
	"strings"

	"groupie/internal/database"
	"groupie/internal/domain/match"
	"groupie/internal/domain/reference"
)

// NamesSeeder inserts the names of one lookup kind that have no active row
// yet. The name indexes are partial, so ON CONFLICT cannot be used here.
type NamesSeeder struct {
	Kind  reference.Kind
	Names []string
}

func (s NamesSeeder) Name() string { return s.Kind.Table() }

func (s NamesSeeder) Run(ctx context.Context, db database.DB) error {
	if !s.Kind.Valid() {
		return fmt.Errorf("unknown reference kind %q", s.Kind)
	}
	table := s.Kind.Table()
	if err := requireColumns(ctx, db, table, lookupColumns...); err != nil {
		return err
	}

	q := fmt.Sprintf(
		`INSERT INTO %[1]s (name) SELECT $1::text WHERE NOT EXISTS (SELECT 1 FROM %[1]s WHERE name = $1::text AND deleted_at IS NULL)`,
		table,
	)
	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range s.Names {
			if _, err := reference.NormalizeName(s.Kind, name); err != nil {
				return fmt.Errorf("%s %q: %w", table, name, err)
			}
			if _, err := tx.Exec(ctx, q, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// MatchStatusSeeder pins the match_status rows to the codes stored in
// matches.status and moves the id sequence past them. A pinned row that was
// renamed or soft-deleted is put back.
type MatchStatusSeeder struct{}

func (MatchStatusSeeder) Name() string { return reference.MatchStatus.Table() }

func (MatchStatusSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, reference.MatchStatus.Table(), lookupColumns...); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, st := range match.Statuses() {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO match_status (id, name) VALUES ($1, $2)
				 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, deleted_at = NULL, updated_at = now()
				 WHERE match_status.name <> EXCLUDED.name OR match_status.deleted_at IS NOT NULL`,
				int64(st),
				st.String(),
			); err != nil {
				return err
			}
		}
		_, err := tx.Exec(
			ctx,
			`SELECT setval(pg_get_serial_sequence('match_status', 'id'), GREATEST((SELECT MAX(id) FROM match_status), 1))`,
		)
		return err
	})
}

var lookupColumns = []string{"id", "name", "created_at", "updated_at", "deleted_at"}

// requireColumns fails when table lacks any of cols, which means the
// migrations have not run against this database.
func requireColumns(ctx context.Context, db database.DB, table string, cols ...string) error {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	have := make(map[string]bool, len(cols))
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		have[c] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, c := range cols {
		if !have[c] {
			missing = append(missing, table+"."+c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch, run migrations first: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
