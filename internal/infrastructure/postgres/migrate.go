package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/pkg/helpers"
)

// RunMigrations applies every pending migration in dir. ErrNoChange is not an error.
func RunMigrations(dsn string, dir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return err
	}

	helpers.LogInfo(logger, "running migrations", logrus.Fields{"dir": dir})
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			helpers.LogInfo(logger, "no migrations to run", nil)
			return nil
		}
		return err
	}
	return nil
}
