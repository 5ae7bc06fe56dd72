package main

import (
	"database/sql"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/storage/migrations"
)

func main() {
	logger := logging.SetupLogging()

	app := &cli.App{
		Name:  "db_migrations",
		Usage: "apply the ledger schema to postgres",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: func(c *cli.Context) error {
					return run(logger, migrations.Up)
				},
			},
			{
				Name:  "down",
				Usage: "roll back the most recent migration",
				Action: func(c *cli.Context) error {
					return run(logger, migrations.Down)
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					return run(logger, func(m *migrate.Migrate) (migrations.Status, error) {
						v, err := migrations.Version(m)
						return migrations.Status{PreMigrationVersion: v, PostMigrationVersion: v}, err
					})
				},
			},
		},
		DefaultCommand: "up",
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("db_migrations")
	}
}

func run(logger *logrus.Logger, step func(*migrate.Migrate) (migrations.Status, error)) error {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return err
	}

	m, err := migrations.New(db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.WithFields(logrus.Fields{
				"sourceError":   srcErr,
				"databaseError": dbErr,
			}).Warn("migrate.Close")
		}
	}()

	status, err := step(m)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  status.PreMigrationVersion,
		"postMigrationVersion": status.PostMigrationVersion,
	}).Info("Migration status")
	return nil
}
