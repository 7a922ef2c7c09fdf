package model

import "time"

// Key identifies a car across the leaderboard and its detail page.
// The detail page URL is unique per car, the name is kept for display.
type Key struct {
	Car       string `json:"car"`
	SourceURL string `json:"sourceUrl"`
}

// CarInfo is the cleaned leaderboard entry
type CarInfo struct {
	Car           string        `json:"car"`
	Driver        string        `json:"driver"`
	LapTime       time.Duration `json:"lapTime"`
	PowerToWeight *float64      `json:"powerToWeight"` // nil if the ratio was not usable
	SourceURL     string        `json:"sourceUrl"`
}

func (c *CarInfo) Key() Key {
	return Key{Car: c.Car, SourceURL: c.SourceURL}
}

// CarSpecs is the cleaned spec sheet of a car. Nil values are unknown.
type CarSpecs struct {
	Car                string   `json:"car"`
	SourceURL          string   `json:"sourceUrl"`
	TopSpeed           *float64 `json:"top_speed"`
	CarType            *string  `json:"car_type"`
	CurbWeight         *float64 `json:"curb_weight"`
	Power              *float64 `json:"power"`
	EstMaxAcceleration *float64 `json:"est_max_acceleration"`
	Accel0to40         *float64 `json:"accel_0_40"`
	Accel0to50         *float64 `json:"accel_0_50"`
	Accel0to60         *float64 `json:"accel_0_60"`
	Accel0to80         *float64 `json:"accel_0_80"`
	Accel0to100        *float64 `json:"accel_0_100"`
	Accel0to120        *float64 `json:"accel_0_120"`
	Accel0to130        *float64 `json:"accel_0_130"`
	Accel0to140        *float64 `json:"accel_0_140"`
}

func (c *CarSpecs) Key() Key {
	return Key{Car: c.Car, SourceURL: c.SourceURL}
}

// Car combines leaderboard entry and spec sheet as loaded from the store
type Car struct {
	Info  CarInfo  `json:"info"`
	Specs CarSpecs `json:"specs"`
}
