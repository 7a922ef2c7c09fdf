// Package basedata provides sample pages and records for tests
package basedata

import (
	"time"

	"github.com/mpapenbr/greenhell-go/pkg/model"
)

const BaseURL = "https://fastestlaps.example"

// LeaderboardPage contains 3 leaderboard rows (one without lap time)
// and 2 rows with 4 cells which are not part of the leaderboard.
const LeaderboardPage = `<html><body>
<table class="table">
  <tr><th>#</th><th>Car</th><th>Driver</th><th>Time</th><th>Power / weight</th></tr>
  <tr>
    <td>1</td>
    <td><a href="/models/porsche-911-gt2-rs">Porsche 911 GT2 RS</a></td>
    <td>Lars Kern</td>
    <td>6:43.300</td>
    <td>700 / 1470</td>
  </tr>
  <tr>
    <td>2.<span class="fl-new">new</span></td>
    <td><a href="/models/mercedes-amg-one">Mercedes-AMG ONE</a></td>
    <td>Maro Engel</td>
    <td>6:35.183</td>
    <td>- / 1695</td>
  </tr>
  <tr>
    <td>3</td>
    <td><a href="/models/lotus-exige">Lotus Exige</a></td>
    <td>Unknown</td>
    <td></td>
    <td>350 / 1176</td>
  </tr>
  <tr><td>x</td><td><a href="/models/broken-a">Broken A</a></td><td>D</td><td>7:00.000</td></tr>
  <tr><td>y</td><td>Broken B</td><td>D</td><td>7:01.000</td></tr>
</table>
</body></html>`

// DetailPage is a detail page with two datasheet tables.
// "Top speed" occurs twice, the later value must win.
const DetailPage = `<html><body>
<table class="table fl-datasheet">
  <tr><td>Car type</td><td>Coupe</td></tr>
  <tr><td>Top speed</td><td>300 km/h</td></tr>
  <tr><td>Curb weight</td><td>1470 kg</td></tr>
  <tr><td>Single cell row</td></tr>
</table>
<table class="table other">
  <tr><td>Power</td><td>1 ps</td></tr>
</table>
<table class="table fl-datasheet">
  <tr><td>Power</td><td>700 ps</td></tr>
  <tr><td>Top speed</td><td>340 km/h</td></tr>
  <tr><td>Est. max acceleration</td><td>1.05 g</td></tr>
  <tr><td>0 - 100 kph</td><td>2.8 s</td></tr>
  <tr><td>0 - 140 kph</td><td>None</td></tr>
  <tr><td>Fuel consumption</td><td>11.8 l/100km</td></tr>
</table>
</body></html>`

// SampleRows corresponds to the leaderboard rows of LeaderboardPage
func SampleRows() []model.LeaderboardRow {
	return []model.LeaderboardRow{
		{
			Rank: "1", Car: "Porsche 911 GT2 RS", Driver: "Lars Kern",
			LapTime: "6:43.300", PowerWeight: "700 / 1470",
			DetailURL: BaseURL + "/models/porsche-911-gt2-rs",
		},
		{
			Rank: "2.new", Car: "Mercedes-AMG ONE", Driver: "Maro Engel",
			LapTime: "6:35.183", PowerWeight: "- / 1695",
			DetailURL: BaseURL + "/models/mercedes-amg-one",
		},
		{
			Rank: "3", Car: "Lotus Exige", Driver: "Unknown",
			LapTime: "", PowerWeight: "350 / 1176",
			DetailURL: BaseURL + "/models/lotus-exige",
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

// SampleCars returns cleaned records for store and dashboard tests
func SampleCars() ([]model.CarInfo, []model.CarSpecs) {
	infos := []model.CarInfo{
		{
			Car: "Porsche 911 GT2 RS", Driver: "Lars Kern",
			LapTime:       6*time.Minute + 43300*time.Millisecond,
			PowerToWeight: ptr(700.0 / 1470.0),
			SourceURL:     BaseURL + "/models/porsche-911-gt2-rs",
		},
		{
			Car: "Mercedes-AMG ONE", Driver: "Maro Engel",
			LapTime:   6*time.Minute + 35183*time.Millisecond,
			SourceURL: BaseURL + "/models/mercedes-amg-one",
		},
	}
	specs := []model.CarSpecs{
		{
			Car: "Porsche 911 GT2 RS", SourceURL: BaseURL + "/models/porsche-911-gt2-rs",
			TopSpeed: ptr(340.0), CarType: ptr("Coupe"), CurbWeight: ptr(1470.0),
			Power: ptr(700.0), EstMaxAcceleration: ptr(1.05),
			Accel0to40: ptr(1.2), Accel0to50: ptr(1.5), Accel0to60: ptr(1.8),
			Accel0to80: ptr(2.2), Accel0to100: ptr(2.8), Accel0to120: ptr(3.6),
			Accel0to130: ptr(4.1), Accel0to140: ptr(4.6),
		},
		{
			Car: "Mercedes-AMG ONE", SourceURL: BaseURL + "/models/mercedes-amg-one",
			TopSpeed: ptr(352.0), CarType: ptr("Coupe"), CurbWeight: ptr(1695.0),
			Power: ptr(1063.0), Accel0to100: ptr(2.9),
		},
	}
	return infos, specs
}
