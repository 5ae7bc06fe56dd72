// Package migrations embeds the schema of the transactions table and applies
// it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Status reports the schema version before and after a run.
type Status struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

// New builds a migrator over db. The caller owns db; closing the migrator
// also closes the connection handed to the postgres driver.
func New(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

// Up applies every pending migration. No pending migration is not an error.
func Up(m *migrate.Migrate) (Status, error) {
	var status Status

	pre, err := Version(m)
	if err != nil {
		return status, err
	}
	status.PreMigrationVersion = pre

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return status, err
	}

	post, err := Version(m)
	if err != nil {
		return status, err
	}
	status.PostMigrationVersion = post

	return status, nil
}

// Down rolls back a single migration.
func Down(m *migrate.Migrate) (Status, error) {
	var status Status

	pre, err := Version(m)
	if err != nil {
		return status, err
	}
	status.PreMigrationVersion = pre

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return status, err
	}

	post, err := Version(m)
	if err != nil {
		return status, err
	}
	status.PostMigrationVersion = post

	return status, nil
}

// Version returns the applied schema version, 0 for an empty database.
func Version(m *migrate.Migrate) (uint, error) {
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return v, err
}
