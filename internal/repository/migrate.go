package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the embedded DDL. Every statement is idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, name := range files {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		for _, stmt := range strings.Split(string(body), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			var res sql.Result
			if err := d.drv.Exec(ctx, stmt, []any{}, &res); err != nil {
				d.logger.Error("repository.migrate_failed", "file", name, "error", err)
				return fmt.Errorf("migrate %s: %w", name, err)
			}
		}
		d.logger.Info("repository.migrated", "file", name)
	}
	return nil
}
