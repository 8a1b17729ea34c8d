package database // package database sets up the MySQL connection pool

import (
	"context"      // context carries the ping timeout
	"database/sql" // sql provides the generic database handle
	_ "embed"
	"fmt"     // fmt builds the DSN string
	"strings" // strings splits the schema script
	"time"    // time configures pool lifetimes

	_ "github.com/go-sql-driver/mysql" // mysql driver registration

	"github.com/nartchai/hotel-management-api/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Open builds a DSN from the configuration, opens the pool and verifies the
// connection with a short ping. parseTime=true makes DATETIME columns scan
// into time.Time and loc=UTC keeps them timezone-stable.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// EnsureSchema applies the embedded schema. Every statement uses
// CREATE TABLE IF NOT EXISTS so repeated startups are harmless.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// splitStatements breaks the schema script on semicolons and drops comments
// and empty fragments. The schema has no stored procedures, so a plain split
// is sufficient.
func splitStatements(script string) []string {
	var out []string
	for _, chunk := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
