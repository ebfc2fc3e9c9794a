package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// schemas are the scripts run by Open, in order.
var schemas = []string{"docs.sql", "models.sql"}

// CreateSchemas runs the named embedded scripts (e.g. "docs.sql") on a single
// connection. Every script is idempotent.
func CreateSchemas(pool *sqlitex.Pool, names ...string) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	for _, name := range names {
		script, err := sqlFiles.ReadFile(path.Join("sql", name))
		if err != nil {
			return fmt.Errorf("failed to read embedded sql file %s: %w", name, err)
		}

		if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
			return fmt.Errorf("failed to execute script %s: %w", name, err)
		}
	}

	return nil
}
