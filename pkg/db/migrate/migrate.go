package migrate

import (
	"embed"
	"errors"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// schemaFile creates the tables written by the scrape command
const schemaFile = "migrations/000001_car_tables.up.sql"

// MigrateDb applies all pending migrations. ErrNoChange is not reported.
func MigrateDb(dbURI string) error {
	m, err := newMigrate(dbURI)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Version returns the current schema version. A database without any applied
// migration reports version 0.
func Version(dbURI string) (version uint, dirty bool, err error) {
	m, err := newMigrate(dbURI)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// SchemaSQL returns the statements which create the car tables.
// They are used to recreate the tables when the data is replaced.
func SchemaSQL() (string, error) {
	data, err := fs.ReadFile(migrations, schemaFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newMigrate(dbURI string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", source, toMigrateURL(dbURI))
}

// toMigrateURL switches the scheme to the one registered by the pgx driver
func toMigrateURL(dbURI string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dbURI, prefix) {
			return "pgx://" + strings.TrimPrefix(dbURI, prefix)
		}
	}
	return dbURI
}
