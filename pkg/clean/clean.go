// Package clean turns raw leaderboard rows and spec sheets into typed records.
package clean

import (
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/normalize"
)

// Cleaner converts scraped data. The zero value is not usable, use New.
type Cleaner struct {
	l *log.Logger
}

type Option func(c *Cleaner)

func WithLogger(l *log.Logger) Option {
	return func(c *Cleaner) {
		c.l = l
	}
}

func New(opts ...Option) *Cleaner {
	ret := &Cleaner{l: log.Default().Named("clean")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Clean is a shortcut for New().Clean
func Clean(rows []model.LeaderboardRow, specs []model.SpecSheetRow) (
	[]model.CarInfo, []model.CarSpecs,
) {
	return New().Clean(rows, specs)
}

// Clean converts rows and specs. Rows without a usable lap time are dropped,
// all other values fall back to nil. Output order follows input order.
func (c *Cleaner) Clean(rows []model.LeaderboardRow, specs []model.SpecSheetRow) (
	[]model.CarInfo, []model.CarSpecs,
) {
	infos := lo.FilterMap(rows, func(row model.LeaderboardRow, _ int) (model.CarInfo, bool) {
		info, ok := c.Info(row)
		if !ok {
			c.l.Debug("dropping leaderboard row",
				log.String("car", row.Car),
				log.String("lapTime", row.LapTime))
		}
		return info, ok
	})
	return infos, lo.Map(specs, func(s model.SpecSheetRow, _ int) model.CarSpecs {
		return Specs(s)
	})
}

// Info converts a single leaderboard row. ok is false if the lap time is not usable.
func (c *Cleaner) Info(row model.LeaderboardRow) (info model.CarInfo, ok bool) {
	if normalize.IsNullText(row.LapTime) {
		return info, false
	}
	lapTime, err := normalize.ParseDuration(row.LapTime)
	if err != nil {
		return info, false
	}
	info = model.CarInfo{
		Car:       row.Car,
		Driver:    row.Driver,
		LapTime:   lapTime,
		SourceURL: row.DetailURL,
	}
	if v, ok := normalize.ParseRatio(row.PowerWeight); ok {
		info.PowerToWeight = &v
	}
	return info, true
}

// Specs converts a single spec sheet
func Specs(row model.SpecSheetRow) model.CarSpecs {
	ret := model.CarSpecs{
		Car:       row.Link.CarName,
		SourceURL: row.Link.DetailURL,
	}
	integer := func(raw *string) (float64, bool) {
		return normalize.ExtractLeadingNumber(*raw, false)
	}
	decimal := func(raw *string) (float64, bool) {
		return normalize.ExtractDecimalNumber(*raw)
	}
	seconds := func(raw *string) (float64, bool) {
		return normalize.ParseNumber(normalize.StripUnitSuffix(*raw, "s"))
	}

	ret.TopSpeed = number(row.Value(model.SpecTopSpeed), integer)
	ret.CurbWeight = number(row.Value(model.SpecCurbWeight), integer)
	ret.Power = number(row.Value(model.SpecPower), integer)
	ret.EstMaxAcceleration = number(row.Value(model.SpecEstMaxAcceleration), decimal)
	for key, field := range model.AccelerationSpecKeys {
		ret.SetNumeric(field, number(row.Value(key), seconds))
	}
	if raw := row.Value(model.SpecCarType); raw != nil &&
		!normalize.IsNullText(*raw) && !normalize.IsPlaceholder(*raw) {
		v := strings.TrimSpace(*raw)
		ret.CarType = &v
	}
	return ret
}

func number(raw *string, conv func(*string) (float64, bool)) *float64 {
	if raw == nil || normalize.IsNullText(*raw) || normalize.IsPlaceholder(*raw) {
		return nil
	}
	v, ok := conv(raw)
	if !ok {
		return nil
	}
	return &v
}
