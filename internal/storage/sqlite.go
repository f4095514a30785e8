package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"ledger/internal/core"
	"ledger/internal/log"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepository keeps the ledger in a single SQLite table. Row order is
// the ledger order. Fields are stored verbatim, notes keep their commas.
type SQLiteRepository struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger = logger.WithComponent(log.ComponentStorage).With(log.FieldLocation, dbPath)
	if err := migrateSchema(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db:     db,
		path:   dbPath,
		logger: logger,
	}, nil
}

// migrateSchema brings the expenses schema up to date on db. The migrator
// is not closed: closing it would close db, which the repository keeps.
func migrateSchema(db *sql.DB, logger *log.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	defer src.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("schema up to date")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info("schema migrated", log.FieldVersion, version)
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Location returns the database path.
func (r *SQLiteRepository) Location() string {
	return r.path
}

// Load returns all stored expenses in ledger order.
func (r *SQLiteRepository) Load(ctx context.Context) (core.LoadResult, error) {
	res := core.LoadResult{Existed: true}

	rows, err := r.db.QueryContext(ctx,
		`SELECT student_name, category, amount, date, note FROM expenses ORDER BY position`)
	if err != nil {
		return res, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e      core.Expense
			amount string
		)
		if err := rows.Scan(&e.StudentName, &e.Category, &amount, &e.Date, &e.Note); err != nil {
			return res, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = core.ParseAmountOrZero(amount)
		res.Expenses = append(res.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate expenses: %w", err)
	}

	r.logger.InfoContext(ctx, "expenses loaded from sqlite",
		log.FieldCount, len(res.Expenses))
	return res, nil
}

// Save replaces every stored expense with expenses, in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, student_name, category, amount, date, note) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		if _, err := stmt.ExecContext(ctx, i+1, e.StudentName, e.Category, e.Amount.String(), e.Date, e.Note); err != nil {
			return fmt.Errorf("insert expense %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.InfoContext(ctx, "expenses saved to sqlite",
		log.FieldCount, len(expenses))
	return nil
}
