// Package store runs the persistence operations on a dedicated connection.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/db/postgres"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	carrepos "github.com/mpapenbr/greenhell-go/pkg/repository/car"
)

// PersistenceError reports a failed store operation.
// Nothing was changed in the store when it is returned by Replace.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store opens one connection per operation and closes it afterwards
type Store struct {
	dbURL   string
	options []postgres.ConnConfigOption
	l       *log.Logger
}

type Option func(s *Store)

func WithConnOptions(opts ...postgres.ConnConfigOption) Option {
	return func(s *Store) {
		s.options = append(s.options, opts...)
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.l = l
	}
}

func New(dbURL string, opts ...Option) *Store {
	ret := &Store{dbURL: dbURL, l: log.Default().Named("store")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Replace swaps the stored data for infos and specs
func (s *Store) Replace(ctx context.Context, infos []model.CarInfo, specs []model.CarSpecs) error {
	return s.withConn(ctx, "replace", func(conn *pgx.Conn) error {
		if err := carrepos.ReplaceTables(ctx, conn, infos, specs); err != nil {
			return err
		}
		s.l.Info("tables replaced",
			log.Int("carInfo", len(infos)),
			log.Int("carSpecs", len(specs)))
		return nil
	})
}

// LoadCars returns the joined records used by the dashboard
func (s *Store) LoadCars(ctx context.Context) ([]model.Car, error) {
	var ret []model.Car
	err := s.withConn(ctx, "load", func(conn *pgx.Conn) error {
		var err error
		ret, err = carrepos.LoadCars(ctx, conn)
		return err
	})
	return ret, err
}

func (s *Store) withConn(ctx context.Context, op string, f func(conn *pgx.Conn) error) error {
	conn, err := postgres.Connect(ctx, s.dbURL, s.options...)
	if err != nil {
		s.l.Error("could not connect to database", log.String("op", op), log.ErrorField(err))
		return &PersistenceError{Op: op, Err: err}
	}
	defer conn.Close(context.Background())

	if err := f(conn); err != nil {
		s.l.Error("database operation failed", log.String("op", op), log.ErrorField(err))
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// Replace is a shortcut for New(dbURL).Replace
func Replace(ctx context.Context, dbURL string, infos []model.CarInfo, specs []model.CarSpecs) error {
	return New(dbURL).Replace(ctx, infos, specs)
}
