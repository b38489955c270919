package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the migrations.
// It returns nil, nil when the variable is unset so callers can skip.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	if err := database.RunMigrations(dsn, "file://../../../../migrations"); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes every row from the payroll schema.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payroll_leave_coverages",
		"payroll_lines",
		"payroll_runs",
		"month_configs",
		"prepaid_entries",
		"bonus_entries",
		"leave_entries",
		"leave_year_balances",
		"leave_types",
		"overtime_entries",
		"attendance_exceptions",
		"employees",
		"positions",
		"departments",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the pool.
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
