package migrations

import (
	"embed"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Run applies any pending versioned migrations before the server starts
// taking requests. Schema changes only ever happen here.
func Run(dsn string) {
	d, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		log.Fatalf("Failed to load migration files: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, "mysql://"+dsn)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	version, dirty, _ := m.Version()
	log.Printf("Migrations applied: version=%d dirty=%v", version, dirty)
}
