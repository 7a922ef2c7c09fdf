//nolint:funlen // ok for tests
package car

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/testsupport/basedata"
	"github.com/mpapenbr/greenhell-go/testsupport/testdb"
)

func TestReplaceTables(t *testing.T) {
	_, conn := testdb.InitTestDb(t)
	ctx := context.Background()
	infos, specs := basedata.SampleCars()

	assert.NilError(t, ReplaceTables(ctx, conn, infos, specs))

	count, err := CountRows(ctx, conn, InfoTable)
	assert.NilError(t, err)
	assert.Equal(t, count, len(infos))
	count, err = CountRows(ctx, conn, SpecsTable)
	assert.NilError(t, err)
	assert.Equal(t, count, len(specs))

	cars, err := LoadCars(ctx, conn)
	assert.NilError(t, err)
	assert.Equal(t, len(cars), len(infos))
	for i := range cars {
		assert.DeepEqual(t, cars[i].Info, infos[i])
		assert.DeepEqual(t, cars[i].Specs, specs[i])
	}
}

func TestReplaceTablesIsDestructive(t *testing.T) {
	_, conn := testdb.InitTestDb(t)
	ctx := context.Background()
	infos, specs := basedata.SampleCars()

	assert.NilError(t, ReplaceTables(ctx, conn, infos, specs))
	assert.NilError(t, ReplaceTables(ctx, conn, infos, specs))

	// the second run replaces the data of the first one
	count, err := CountRows(ctx, conn, InfoTable)
	assert.NilError(t, err)
	assert.Equal(t, count, len(infos))

	assert.NilError(t, ReplaceTables(ctx, conn, infos[:1], specs[:1]))
	cars, err := LoadCars(ctx, conn)
	assert.NilError(t, err)
	assert.Equal(t, len(cars), 1)
	assert.Equal(t, cars[0].Info.Car, infos[0].Car)
}

func TestReplaceTablesRollback(t *testing.T) {
	_, conn := testdb.InitTestDb(t)
	ctx := context.Background()
	infos, specs := basedata.SampleCars()
	assert.NilError(t, ReplaceTables(ctx, conn, infos, specs))

	// duplicate detail urls violate the unique constraint of car_specs
	dup := []model.CarSpecs{specs[0], specs[0]}
	err := ReplaceTables(ctx, conn, infos[:1], dup)
	assert.ErrorContains(t, err, SpecsTable)

	count, err := CountRows(ctx, conn, InfoTable)
	assert.NilError(t, err)
	assert.Equal(t, count, len(infos), "previous data must be kept")
}

func TestLoadCarsJoinsOnSourceURL(t *testing.T) {
	_, conn := testdb.InitTestDb(t)
	ctx := context.Background()
	infos, specs := basedata.SampleCars()

	// specs in reverse order and an info without specs
	extra := model.CarInfo{
		Car: "No Specs", Driver: "X", LapTime: infos[0].LapTime,
		SourceURL: basedata.BaseURL + "/models/no-specs",
	}
	reversed := []model.CarSpecs{specs[1], specs[0]}
	assert.NilError(t, ReplaceTables(ctx, conn, append(infos, extra), reversed))

	cars, err := LoadCars(ctx, conn)
	assert.NilError(t, err)
	assert.Equal(t, len(cars), 3)
	for _, c := range cars[:2] {
		assert.Equal(t, c.Specs.SourceURL, c.Info.SourceURL)
	}
	assert.DeepEqual(t, cars[0].Specs, specs[0])
	assert.DeepEqual(t, cars[1].Specs, specs[1])
	assert.DeepEqual(t, cars[2].Specs,
		model.CarSpecs{Car: extra.Car, SourceURL: extra.SourceURL})
}
