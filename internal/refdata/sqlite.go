package refdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/rshade/offsetcalc/internal/habitat"
)

// sqliteSchema creates one table per statement.
//
//nolint:gochecknoglobals // Read-only DDL list.
var sqliteSchema = []string{
	`CREATE TABLE carbon (
	position INTEGER PRIMARY KEY,
	habitat  TEXT NOT NULL,
	subtype  TEXT NOT NULL,
	stored   REAL NOT NULL,
	flux     REAL NOT NULL,
	UNIQUE (habitat, subtype)
)`,
	`CREATE TABLE distinctiveness (
	position   INTEGER PRIMARY KEY,
	habitat    TEXT NOT NULL,
	subtype    TEXT NOT NULL,
	score      INTEGER NOT NULL,
	difficulty REAL NOT NULL,
	UNIQUE (habitat, subtype)
)`,
	`CREATE TABLE time_to_target (
	habitat   TEXT NOT NULL,
	subtype   TEXT NOT NULL,
	condition TEXT NOT NULL,
	value     REAL NOT NULL,
	PRIMARY KEY (habitat, subtype, condition)
)`,
}

func openSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// LoadSQLite reads the reference tables from a SQLite database written by
// WriteSQLite. The database is only read.
func LoadSQLite(ctx context.Context, path string) (*Tables, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite reference data: %w", err)
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	carbon, err := queryCarbon(ctx, db)
	if err != nil {
		return nil, err
	}
	distinct, err := queryDistinctiveness(ctx, db)
	if err != nil {
		return nil, err
	}
	return NewTables(carbon, distinct)
}

func queryCarbon(ctx context.Context, db *sql.DB) ([]habitat.CarbonRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT habitat, subtype, stored, flux FROM carbon ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select carbon: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []habitat.CarbonRow
	for rows.Next() {
		var (
			row      habitat.CarbonRow
			category string
		)
		if err := rows.Scan(&category, &row.Subtype, &row.StoredTonnesC, &row.FluxTonnesCO2e); err != nil {
			return nil, fmt.Errorf("scan carbon: %w", err)
		}
		row.Category = habitat.Category(category)
		out = append(out, row)
	}
	return out, rows.Err()
}

func queryDistinctiveness(ctx context.Context, db *sql.DB) ([]habitat.DistinctivenessRow, error) {
	times, err := queryTimeToTarget(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT habitat, subtype, score, difficulty FROM distinctiveness ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select distinctiveness: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []habitat.DistinctivenessRow
	for rows.Next() {
		var (
			row      habitat.DistinctivenessRow
			category string
		)
		if err := rows.Scan(&category, &row.Subtype, &row.Score, &row.Difficulty); err != nil {
			return nil, fmt.Errorf("scan distinctiveness: %w", err)
		}
		row.Category = habitat.Category(category)
		row.TimeToTarget = times[rowKey{row.Category, row.Subtype}]
		if row.TimeToTarget == nil {
			row.TimeToTarget = map[habitat.Condition]float64{}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func queryTimeToTarget(ctx context.Context, db *sql.DB) (map[rowKey]map[habitat.Condition]float64, error) {
	rows, err := db.QueryContext(ctx, `SELECT habitat, subtype, condition, value FROM time_to_target`)
	if err != nil {
		return nil, fmt.Errorf("select time_to_target: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[rowKey]map[habitat.Condition]float64)
	for rows.Next() {
		var (
			category, subtype, condition string
			value                        float64
		)
		if err := rows.Scan(&category, &subtype, &condition, &value); err != nil {
			return nil, fmt.Errorf("scan time_to_target: %w", err)
		}
		k := rowKey{habitat.Category(category), subtype}
		if out[k] == nil {
			out[k] = make(map[habitat.Condition]float64)
		}
		out[k][habitat.Condition(condition)] = value
	}
	return out, rows.Err()
}

// WriteSQLite stores t in a SQLite database at path, replacing any tables
// already there.
func WriteSQLite(ctx context.Context, path string, t *Tables) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := append([]string{
		`DROP TABLE IF EXISTS carbon`,
		`DROP TABLE IF EXISTS distinctiveness`,
		`DROP TABLE IF EXISTS time_to_target`,
	}, sqliteSchema...)
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("prepare schema: %w", err)
		}
	}

	for i, row := range t.carbon {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO carbon (position, habitat, subtype, stored, flux) VALUES (?, ?, ?, ?, ?)`,
			i, string(row.Category), row.Subtype, row.StoredTonnesC, row.FluxTonnesCO2e,
		); err != nil {
			return fmt.Errorf("insert carbon row %d: %w", i+1, err)
		}
	}
	for i, row := range t.distinct {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO distinctiveness (position, habitat, subtype, score, difficulty) VALUES (?, ?, ?, ?, ?)`,
			i, string(row.Category), row.Subtype, row.Score, row.Difficulty,
		); err != nil {
			return fmt.Errorf("insert distinctiveness row %d: %w", i+1, err)
		}
		for label, value := range row.TimeToTarget {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO time_to_target (habitat, subtype, condition, value) VALUES (?, ?, ?, ?)`,
				string(row.Category), row.Subtype, string(label), value,
			); err != nil {
				return fmt.Errorf("insert time_to_target for row %d: %w", i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
