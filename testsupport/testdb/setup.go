//nolint:errcheck // testsetup
package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/greenhell-go/pkg/db/migrate"
	database "github.com/mpapenbr/greenhell-go/pkg/db/postgres"
	tcpg "github.com/mpapenbr/greenhell-go/testsupport/tcpostgres"
)

// InitTestDb provides an empty, migrated database for a single test.
// Each test gets its own database so packages may be tested in parallel.
// The returned connection is closed and the database dropped when the test ends.
func InitTestDb(t *testing.T) (dbURL string, conn *pgx.Conn) {
	t.Helper()
	var baseURL string
	if os.Getenv("TESTDB_URL") != "" {
		baseURL = tcpg.SetupExternalTestDb()
	} else {
		baseURL = tcpg.SetupTestDb()
	}
	ctx := context.Background()
	admin, err := database.Connect(ctx, baseURL)
	if err != nil {
		t.Fatalf("initTestDb: %v", err)
	}
	name := databaseName(t)
	if _, err = admin.Exec(ctx, "create database "+pgx.Identifier{name}.Sanitize()); err != nil {
		admin.Close(ctx)
		t.Fatalf("initTestDb: %v", err)
	}
	t.Cleanup(func() {
		admin.Exec(ctx, fmt.Sprintf("drop database if exists %s with (force)",
			pgx.Identifier{name}.Sanitize()))
		admin.Close(ctx)
	})

	if dbURL, err = withDatabase(baseURL, name); err != nil {
		t.Fatalf("initTestDb: %v", err)
	}
	if err = migrate.MigrateDb(dbURL); err != nil {
		t.Fatalf("initTestDb: %v", err)
	}
	if conn, err = database.Connect(ctx, dbURL); err != nil {
		t.Fatalf("initTestDb: %v", err)
	}
	// registered after the drop, so it runs first
	t.Cleanup(func() { conn.Close(ctx) })
	return dbURL, conn
}

func databaseName(t *testing.T) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, t.Name())
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("t_%s_%d", name, time.Now().UnixNano()%1_000_000_000)
}

func withDatabase(baseURL, name string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u.Path = "/" + name
	return u.String(), nil
}
