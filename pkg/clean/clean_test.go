//nolint:funlen // ok for tests
package clean

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/testsupport/basedata"
)

func ptr[T any](v T) *T {
	return &v
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name    string
		row     model.LeaderboardRow
		want    model.CarInfo
		wantOk  bool
		wantPtw *float64
	}{
		{
			name: "regular",
			row: model.LeaderboardRow{
				Car: "Car X", Driver: "D", LapTime: "7:12.345",
				PowerWeight: "300 / 1200", DetailURL: "u",
			},
			want: model.CarInfo{
				Car: "Car X", Driver: "D", LapTime: 432345 * time.Millisecond,
				SourceURL: "u",
			},
			wantOk:  true,
			wantPtw: ptr(0.25),
		},
		{
			name:   "bare seconds",
			row:    model.LeaderboardRow{Car: "Kart", LapTime: "59.1", PowerWeight: "- / 100"},
			want:   model.CarInfo{Car: "Kart", LapTime: 59100 * time.Millisecond},
			wantOk: true,
		},
		{
			name:   "zero weight",
			row:    model.LeaderboardRow{Car: "Odd", LapTime: "7:00.000", PowerWeight: "300 / 0"},
			want:   model.CarInfo{Car: "Odd", LapTime: 7 * time.Minute},
			wantOk: true,
		},
		{name: "empty lap time", row: model.LeaderboardRow{Car: "Car X", LapTime: ""}},
		{name: "None lap time", row: model.LeaderboardRow{Car: "Car X", LapTime: "None"}},
		{name: "garbage lap time", row: model.LeaderboardRow{Car: "Car X", LapTime: "7:9x"}},
	}
	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Info(tt.row)
			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				return
			}
			if tt.wantPtw == nil {
				assert.Nil(t, got.PowerToWeight)
			} else {
				require.NotNil(t, got.PowerToWeight)
				assert.InDelta(t, *tt.wantPtw, *got.PowerToWeight, 1e-9)
			}
			got.PowerToWeight = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecs(t *testing.T) {
	values := map[string]*string{
		model.SpecTopSpeed:           ptr("312 km/h"),
		model.SpecCarType:            ptr(" Roadster "),
		model.SpecCurbWeight:         ptr("-"),
		model.SpecPower:              ptr("None"),
		model.SpecEstMaxAcceleration: ptr("1 g"),
		model.Spec0to40:              ptr("1.9 s"),
		model.Spec0to50:              ptr("nan"),
		model.Spec0to60:              ptr("fast"),
		model.Spec0to100:             ptr("3.4 s"),
	}
	got := Specs(model.SpecSheetRow{
		Link:   model.CarLink{CarName: "Car Y", DetailURL: "https://host/y"},
		Values: values,
	})

	assert.Equal(t, model.Key{Car: "Car Y", SourceURL: "https://host/y"}, got.Key())
	require.NotNil(t, got.TopSpeed)
	assert.InDelta(t, 312.0, *got.TopSpeed, 1e-9)
	require.NotNil(t, got.CarType)
	assert.Equal(t, "Roadster", *got.CarType)
	assert.Nil(t, got.CurbWeight)
	assert.Nil(t, got.Power)
	assert.Nil(t, got.EstMaxAcceleration, "decimal point required")
	require.NotNil(t, got.Accel0to40)
	assert.InDelta(t, 1.9, *got.Accel0to40, 1e-9)
	assert.Nil(t, got.Accel0to50)
	assert.Nil(t, got.Accel0to60)
	assert.Nil(t, got.Accel0to80, "missing key")
	require.NotNil(t, got.Accel0to100)
	assert.InDelta(t, 3.4, *got.Accel0to100, 1e-9)
}

func TestClean(t *testing.T) {
	specRow := model.SpecSheetRow{
		Link: model.CarLink{CarName: "Porsche 911 GT2 RS", DetailURL: "u1"},
		Values: map[string]*string{
			model.SpecEstMaxAcceleration: ptr("1.05 g"),
		},
	}
	infos, specs := Clean(basedata.SampleRows(), []model.SpecSheetRow{specRow})

	// the row without lap time is dropped, order is kept
	require.Len(t, infos, 2)
	assert.Equal(t, "Porsche 911 GT2 RS", infos[0].Car)
	assert.Equal(t, "Mercedes-AMG ONE", infos[1].Car)
	assert.Equal(t, 6*time.Minute+43300*time.Millisecond, infos[0].LapTime)
	require.NotNil(t, infos[0].PowerToWeight)
	assert.InDelta(t, 700.0/1470.0, *infos[0].PowerToWeight, 1e-9)
	assert.Nil(t, infos[1].PowerToWeight, "placeholder numerator")

	require.Len(t, specs, 1)
	require.NotNil(t, specs[0].EstMaxAcceleration)
	assert.InDelta(t, 1.05, *specs[0].EstMaxAcceleration, 1e-9)
}

func TestCleanEmpty(t *testing.T) {
	infos, specs := Clean(nil, nil)
	assert.Empty(t, infos)
	assert.Empty(t, specs)
}
