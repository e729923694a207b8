package migrate

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Up applies all pending migrations against the pool's database.
func Up(ctx context.Context, db *database.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)

	// goose works against database/sql, so borrow a *sql.DB from the pool
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "sql"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Version returns the current migration version.
func Version(ctx context.Context, db *database.DB) (int64, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}
