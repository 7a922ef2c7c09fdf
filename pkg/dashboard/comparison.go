package dashboard

import (
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/greenhell-go/pkg/model"
)

// FieldAverageName is used as car name of the field average
const FieldAverageName = "Field average"

// ComparisonRow is one line of a side by side comparison.
// Delta is B - A and only set if both values are known.
type ComparisonRow struct {
	Label string
	A, B  *float64
	Delta *float64
}

type Comparison struct {
	A, B string
	Rows []ComparisonRow
}

//nolint:gochecknoglobals // labels
var fieldLabels = map[string]string{
	model.FieldTopSpeed:           "Top speed [km/h]",
	model.FieldCurbWeight:         "Curb weight [kg]",
	model.FieldPower:              "Power [ps]",
	model.FieldEstMaxAcceleration: "Est. max acceleration [g]",
	model.FieldAccel0to40:         "0 - 40 kph [s]",
	model.FieldAccel0to50:         "0 - 50 kph [s]",
	model.FieldAccel0to60:         "0 - 60 kph [s]",
	model.FieldAccel0to80:         "0 - 80 kph [s]",
	model.FieldAccel0to100:        "0 - 100 kph [s]",
	model.FieldAccel0to120:        "0 - 120 kph [s]",
	model.FieldAccel0to130:        "0 - 130 kph [s]",
	model.FieldAccel0to140:        "0 - 140 kph [s]",
}

// Compare puts the figures of a and b side by side
func Compare(a, b *model.Car) Comparison {
	ret := Comparison{A: a.Info.Car, B: b.Info.Car}
	ret.Rows = append(ret.Rows,
		row("Lap time [s]", seconds(a.Info.LapTime), seconds(b.Info.LapTime)),
		row("Power / weight", a.Info.PowerToWeight, b.Info.PowerToWeight))
	for _, name := range model.NumericFieldNames() {
		va, _ := a.Specs.Numeric(name)
		vb, _ := b.Specs.Numeric(name)
		ret.Rows = append(ret.Rows, row(fieldLabels[name], va, vb))
	}
	return ret
}

// FieldAverage returns a car whose values are the averages of the known values of cars
func FieldAverage(cars []model.Car) model.Car {
	ret := model.Car{
		Info:  model.CarInfo{Car: FieldAverageName},
		Specs: model.CarSpecs{Car: FieldAverageName},
	}
	if len(cars) == 0 {
		return ret
	}
	ret.Info.LapTime = time.Duration(lo.SumBy(cars, func(c model.Car) int64 {
		return int64(c.Info.LapTime)
	}) / int64(len(cars)))
	ret.Info.PowerToWeight = average(lo.Map(cars, func(c model.Car, _ int) *float64 {
		return c.Info.PowerToWeight
	}))
	for _, name := range model.NumericFieldNames() {
		ret.Specs.SetNumeric(name, average(lo.Map(cars, func(c model.Car, _ int) *float64 {
			v, _ := c.Specs.Numeric(name)
			return v
		})))
	}
	return ret
}

func average(values []*float64) *float64 {
	known := lo.FilterMap(values, func(v *float64, _ int) (float64, bool) {
		if v == nil {
			return 0, false
		}
		return *v, true
	})
	if len(known) == 0 {
		return nil
	}
	avg := lo.Sum(known) / float64(len(known))
	return &avg
}

func row(label string, a, b *float64) ComparisonRow {
	ret := ComparisonRow{Label: label, A: a, B: b}
	if a != nil && b != nil {
		d := *b - *a
		ret.Delta = &d
	}
	return ret
}

func seconds(d time.Duration) *float64 {
	if d == 0 {
		return nil
	}
	v := d.Seconds()
	return &v
}
