//nolint:funlen // ok for tests
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/greenhell-go/pkg/completion"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/testsupport/basedata"
)

func sampleCars() []model.Car {
	infos, specs := basedata.SampleCars()
	ret := make([]model.Car, len(infos))
	for i := range infos {
		ret[i] = model.Car{Info: infos[i], Specs: specs[i]}
	}
	return ret
}

func TestSelectCar(t *testing.T) {
	cars := sampleCars()
	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{name: "exact", query: "Mercedes-AMG ONE", want: "Mercedes-AMG ONE"},
		{name: "case insensitive", query: "mercedes-amg one", want: "Mercedes-AMG ONE"},
		{name: "typo", query: "Porsche 911 GT2RS", want: "Porsche 911 GT2 RS"},
		{name: "empty selects first", query: "", want: "Porsche 911 GT2 RS"},
		{name: "no match", query: "Trabant", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectCar(cars, tt.query)
			if tt.wantErr {
				var nmErr *NoMatchError
				assert.True(t, errors.As(err, &nmErr), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Info.Car)
		})
	}

	_, err := SelectCar(nil, "x")
	assert.ErrorIs(t, err, ErrNoCars)
}

type echoCompleter struct {
	prompt string
}

func (e *echoCompleter) Complete(_ context.Context, prompt string) (string, error) {
	e.prompt = prompt
	return "about 6:40", nil
}

func TestPredict(t *testing.T) {
	car := sampleCars()[0]
	c := &echoCompleter{}
	got, err := Predict(context.Background(), c, &car)
	require.NoError(t, err)
	assert.Equal(t, "about 6:40", got)
	assert.True(t, strings.HasPrefix(c.prompt,
		"Given the following specifications for the Porsche 911 GT2 RS: {"))
	assert.Contains(t, c.prompt, "predict the Nürburgring lap time")
	assert.NotContains(t, c.prompt, "06:43.300", "recorded lap time is excluded")

	var buf bytes.Buffer
	RenderPrediction(&buf, &car, got)
	assert.Contains(t, buf.String(), "about 6:40")
}

func TestAnalyze(t *testing.T) {
	car := sampleCars()[0]
	a := Analyze(&car)

	assert.Equal(t, "Porsche 911 GT2 RS", a.Car)
	require.Len(t, a.Curve, len(model.AccelerationSplits))
	assert.Equal(t, 40, a.Curve[0].Kph)
	assert.Equal(t, 140, a.Curve[len(a.Curve)-1].Kph)
	// 100 kph in 2.8s
	assert.InDelta(t, 100/3.6/2.8/gravity, a.Curve[4].AvgAccel, 1e-9)

	require.NotNil(t, a.PowerPerTon)
	assert.Equal(t, "476.2", a.PowerPerTon.String())
	assert.Equal(t, "85.0", a.SubScores["top speed"].StringFixed(1))
	assert.Equal(t, "89.3", a.SubScores["acceleration"].StringFixed(1))
	assert.Equal(t, "47.6", a.SubScores["power"].StringFixed(1))
	require.NotNil(t, a.Score)
	assert.True(t, a.Score.Equal(decimal.RequireFromString("74")), a.Score.String())

	var buf bytes.Buffer
	RenderAnalysis(&buf, &a)
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "performance analysis: porsche 911 gt2 rs")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "476.2")
}

func TestAnalyzeUnknownValues(t *testing.T) {
	car := model.Car{Info: model.CarInfo{Car: "Mystery"}}
	a := Analyze(&car)
	assert.Empty(t, a.Curve)
	assert.Nil(t, a.PowerPerTon)
	assert.Nil(t, a.Score)

	var buf bytes.Buffer
	RenderAnalysis(&buf, &a)
	assert.Contains(t, buf.String(), "no acceleration data")
}

func TestCompare(t *testing.T) {
	cars := sampleCars()
	c := Compare(&cars[0], &cars[1])
	assert.Equal(t, "Porsche 911 GT2 RS", c.A)
	assert.Equal(t, "Mercedes-AMG ONE", c.B)
	require.Len(t, c.Rows, 2+len(model.NumericFieldNames()))

	lap := c.Rows[0]
	require.NotNil(t, lap.Delta)
	assert.InDelta(t, 395.183-403.3, *lap.Delta, 1e-9)

	byLabel := map[string]ComparisonRow{}
	for _, r := range c.Rows {
		byLabel[r.Label] = r
	}
	assert.Nil(t, byLabel["Power / weight"].Delta, "unknown for the second car")
	require.NotNil(t, byLabel["Top speed [km/h]"].Delta)
	assert.InDelta(t, 12.0, *byLabel["Top speed [km/h]"].Delta, 1e-9)
	assert.Nil(t, byLabel["0 - 40 kph [s]"].Delta)

	var buf bytes.Buffer
	RenderComparison(&buf, &c)
	assert.Contains(t, buf.String(), "+12.00")
}

func TestFieldAverage(t *testing.T) {
	cars := sampleCars()
	avg := FieldAverage(cars)

	want := model.Car{
		Info: model.CarInfo{
			Car:           FieldAverageName,
			LapTime:       (cars[0].Info.LapTime + cars[1].Info.LapTime) / 2,
			PowerToWeight: cars[0].Info.PowerToWeight,
		},
	}
	assert.Empty(t, cmp.Diff(want.Info, avg.Info))
	require.NotNil(t, avg.Specs.TopSpeed)
	assert.InDelta(t, 346.0, *avg.Specs.TopSpeed, 1e-9)
	require.NotNil(t, avg.Specs.Accel0to40)
	assert.InDelta(t, 1.2, *avg.Specs.Accel0to40, 1e-9, "only known values count")

	empty := FieldAverage(nil)
	assert.Equal(t, FieldAverageName, empty.Info.Car)
	assert.Equal(t, time.Duration(0), empty.Info.LapTime)
}

func TestRenderCar(t *testing.T) {
	car := sampleCars()[1]
	var buf bytes.Buffer
	RenderCar(&buf, &car, []string{model.FieldAccel0to100})
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "mercedes-amg one")
	assert.Contains(t, out, "06:35.183")
	assert.Contains(t, out, "0 - 100 kph [s] *")
	assert.Contains(t, out, "estimated")
}

func TestRenderCompletion(t *testing.T) {
	var buf bytes.Buffer
	RenderCompletion(&buf, &completion.Result{
		Requested:  []string{"a", "b"},
		Unresolved: []string{"b"},
	}, nil)
	assert.Equal(t, "Estimated 1 of 2 missing values. Still unknown: b\n", buf.String())

	buf.Reset()
	RenderCompletion(&buf, &completion.Result{Requested: []string{"a"}},
		&completion.MalformedCompletionError{Err: errors.New("x")})
	assert.Contains(t, buf.String(), "Could not estimate missing values")

	buf.Reset()
	RenderCompletion(&buf, &completion.Result{}, nil)
	assert.Empty(t, buf.String())
}
