//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/greenhell-go/pkg/db/migrate"
)

const (
	containerName = "greenhell-test"
	image         = "postgres:15"
	dbUser        = "postgres"
	dbPassword    = "password"
	dbName        = "postgres"
)

// the container is shared by all test packages, each test creates its own
// database on it (see testsupport/testdb)
func startContainer(ctx context.Context, port nat.Port) (testcontainers.Container, error) {
	req := testcontainers.ContainerRequest{
		Name:         containerName,
		Image:        image,
		ExposedPorts: []string{string(port)},
		Env: map[string]string{
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
			"POSTGRES_DB":       dbName,
		},
		Cmd: []string{"postgres", "-c", "fsync=off"},
		WaitingFor: wait.ForAll(
			// the init phase restarts the server once
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
			wait.ForListeningPort(port),
		).WithDeadline(1 * time.Minute),
	}
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
			Reuse:            true,
		})
}

// SetupTestDb starts (or reuses) a postgres container, applies the migrations
// and returns the connection url of the test database
func SetupTestDb() string {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := startContainer(ctx, port)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbUrl := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, host, containerPort.Port(), dbName)

	if err = migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}
	return dbUrl
}

// SetupExternalTestDb uses the database given by TESTDB_URL
func SetupExternalTestDb() string {
	dbUrl := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}
	return dbUrl
}
