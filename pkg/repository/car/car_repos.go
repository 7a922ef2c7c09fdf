// Package car stores the cleaned leaderboard entries and spec sheets.
//
// Both tables are always written as a whole: ReplaceTables drops and recreates
// them within a single transaction.
package car

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/mpapenbr/greenhell-go/pkg/db/migrate"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/normalize"
	"github.com/mpapenbr/greenhell-go/pkg/repository"
)

const (
	InfoTable  = "car_info"
	SpecsTable = "car_specs"
)

//nolint:gochecknoglobals // column order for bulk inserts
var (
	infoColumns  = []string{"car", "driver", "lap_time", "power_weight", "source_url"}
	specsColumns = append([]string{"car", "source_url", "car_type"},
		model.NumericFieldNames()...)
)

// ReplaceTables drops both tables, recreates them and inserts infos and specs
// in input order. Either all of this is visible afterwards or nothing changed.
func ReplaceTables(
	ctx context.Context,
	conn repository.Querier,
	infos []model.CarInfo,
	specs []model.CarSpecs,
) error {
	schema, err := migrate.SchemaSQL()
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		if err := DropTables(ctx, tx); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, schema); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
		if _, err := InsertInfos(ctx, tx, infos); err != nil {
			return err
		}
		if _, err := InsertSpecs(ctx, tx, specs); err != nil {
			return err
		}
		return nil
	})
}

func DropTables(ctx context.Context, conn repository.Querier) error {
	for _, table := range []string{InfoTable, SpecsTable} {
		if _, err := conn.Exec(ctx,
			fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

func InsertInfos(ctx context.Context, conn repository.Querier, infos []model.CarInfo) (
	int64, error,
) {
	rows := lo.Map(infos, func(item model.CarInfo, _ int) []any {
		return []any{
			item.Car,
			item.Driver,
			normalize.FormatDuration(item.LapTime),
			item.PowerToWeight,
			item.SourceURL,
		}
	})
	n, err := conn.CopyFrom(ctx, pgx.Identifier{InfoTable}, infoColumns,
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", InfoTable, err)
	}
	return n, nil
}

func InsertSpecs(ctx context.Context, conn repository.Querier, specs []model.CarSpecs) (
	int64, error,
) {
	rows := lo.Map(specs, func(item model.CarSpecs, _ int) []any {
		ret := []any{item.Car, item.SourceURL, item.CarType}
		for _, name := range model.NumericFieldNames() {
			v, _ := item.Numeric(name)
			ret = append(ret, v)
		}
		return ret
	})
	n, err := conn.CopyFrom(ctx, pgx.Identifier{SpecsTable}, specsColumns,
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", SpecsTable, err)
	}
	return n, nil
}

// LoadCars returns all leaderboard entries in insertion order together with
// the spec sheet of the same detail page. Entries without a spec sheet carry
// empty specs with the key of the entry.
func LoadCars(ctx context.Context, conn repository.Querier) ([]model.Car, error) {
	rows, err := conn.Query(ctx, loadCarsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]model.Car, 0)
	for rows.Next() {
		item, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// CountRows returns the number of rows in the given table
func CountRows(ctx context.Context, conn repository.Querier, table string) (int, error) {
	var ret int
	err := conn.QueryRow(ctx,
		fmt.Sprintf("select count(*) from %s", pgx.Identifier{table}.Sanitize())).
		Scan(&ret)
	return ret, err
}

//nolint:gochecknoglobals // query
var loadCarsSQL = fmt.Sprintf(`
select i.car, i.driver, i.lap_time, i.power_weight, i.source_url,
	s.car_type, %s
from %s i left join %s s on i.source_url = s.source_url
order by i.id asc`,
	"s."+strings.Join(model.NumericFieldNames(), ", s."),
	InfoTable, SpecsTable)

func scanCar(rows pgx.Rows) (model.Car, error) {
	var (
		item    model.Car
		lapTime string
	)
	numeric := make([]*float64, len(model.NumericFieldNames()))
	dest := []any{
		&item.Info.Car, &item.Info.Driver, &lapTime,
		&item.Info.PowerToWeight, &item.Info.SourceURL,
		&item.Specs.CarType,
	}
	for i := range numeric {
		dest = append(dest, &numeric[i])
	}
	if err := rows.Scan(dest...); err != nil {
		return item, err
	}
	d, err := normalize.ParseDuration(lapTime)
	if err != nil {
		return item, fmt.Errorf("car %s: %w", item.Info.Car, err)
	}
	item.Info.LapTime = d
	item.Specs.Car = item.Info.Car
	item.Specs.SourceURL = item.Info.SourceURL
	for i, name := range model.NumericFieldNames() {
		item.Specs.SetNumeric(name, numeric[i])
	}
	return item, nil
}
