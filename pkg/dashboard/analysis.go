package dashboard

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/greenhell-go/pkg/model"
)

const gravity = 9.80665 // m/s²

// reference values which map to a sub score of 100
//
//nolint:gochecknoglobals // constants
var (
	refTopSpeed    = decimal.NewFromInt(400)  // km/h
	refAccel0to100 = decimal.NewFromFloat(2.5) // s
	refPowerPerTon = decimal.NewFromInt(1000) // ps/t
	hundred        = decimal.NewFromInt(100)
)

// CurvePoint is one 0 to X kph split of the acceleration curve
type CurvePoint struct {
	Kph      int
	Seconds  float64
	AvgAccel float64 // average acceleration of the split in g
}

type Analysis struct {
	Car           string
	Curve         []CurvePoint // known splits in ascending speed
	PowerToWeight *float64     // as listed on the leaderboard
	PowerPerTon   *decimal.Decimal
	Score         *decimal.Decimal // 0..100, nil if nothing is known
	SubScores     map[string]decimal.Decimal
}

// Analyze derives the performance figures of car
func Analyze(car *model.Car) Analysis {
	specs := &car.Specs
	ret := Analysis{
		Car:           car.Info.Car,
		PowerToWeight: car.Info.PowerToWeight,
		SubScores:     map[string]decimal.Decimal{},
	}
	for _, split := range model.AccelerationSplits {
		v, _ := specs.Numeric(split.Field)
		if v == nil || *v <= 0 {
			continue
		}
		ret.Curve = append(ret.Curve, CurvePoint{
			Kph:      split.Kph,
			Seconds:  *v,
			AvgAccel: float64(split.Kph) / 3.6 / *v / gravity,
		})
	}
	if specs.Power != nil && specs.CurbWeight != nil && *specs.CurbWeight > 0 {
		ppt := decimal.NewFromFloat(*specs.Power).
			Div(decimal.NewFromFloat(*specs.CurbWeight).Div(decimal.NewFromInt(1000))).
			Round(1)
		ret.PowerPerTon = &ppt
		ret.SubScores["power"] = subScore(ppt.Div(refPowerPerTon))
	}
	if specs.TopSpeed != nil {
		ret.SubScores["top speed"] = subScore(decimal.NewFromFloat(*specs.TopSpeed).Div(refTopSpeed))
	}
	if specs.Accel0to100 != nil && *specs.Accel0to100 > 0 {
		ret.SubScores["acceleration"] = subScore(
			refAccel0to100.Div(decimal.NewFromFloat(*specs.Accel0to100)))
	}
	if len(ret.SubScores) > 0 {
		values := lo.Values(ret.SubScores)
		score := decimal.Avg(values[0], values[1:]...).Round(1)
		ret.Score = &score
	}
	return ret
}

// subScore maps a ratio to 0..100
func subScore(ratio decimal.Decimal) decimal.Decimal {
	ret := ratio.Mul(hundred)
	if ret.GreaterThan(hundred) {
		ret = hundred
	}
	if ret.IsNegative() {
		ret = decimal.Zero
	}
	return ret.Round(1)
}
