package model

// labels as used in the datasheet tables of the detail pages
const (
	SpecTopSpeed           = "Top speed"
	SpecCarType            = "Car type"
	SpecCurbWeight         = "Curb weight"
	SpecPower              = "Power"
	SpecEstMaxAcceleration = "Est. max acceleration"
	Spec0to40              = "0 - 40 kph"
	Spec0to50              = "0 - 50 kph"
	Spec0to60              = "0 - 60 kph"
	Spec0to80              = "0 - 80 kph"
	Spec0to100             = "0 - 100 kph"
	Spec0to120             = "0 - 120 kph"
	Spec0to130             = "0 - 130 kph"
	Spec0to140             = "0 - 140 kph"
)

// SpecSheetKeys is the allow-list of datasheet labels we keep
func SpecSheetKeys() []string {
	return []string{
		SpecTopSpeed, SpecCarType, SpecCurbWeight, SpecPower, SpecEstMaxAcceleration,
		Spec0to40, Spec0to50, Spec0to60, Spec0to80,
		Spec0to100, Spec0to120, Spec0to130, Spec0to140,
	}
}

// AccelerationSpecKeys maps the datasheet labels of the 0 to X kph splits
// to the numeric field names
//
//nolint:gochecknoglobals // lookup table
var AccelerationSpecKeys = map[string]string{
	Spec0to40:  FieldAccel0to40,
	Spec0to50:  FieldAccel0to50,
	Spec0to60:  FieldAccel0to60,
	Spec0to80:  FieldAccel0to80,
	Spec0to100: FieldAccel0to100,
	Spec0to120: FieldAccel0to120,
	Spec0to130: FieldAccel0to130,
	Spec0to140: FieldAccel0to140,
}

// LeaderboardRow is a raw row of the lap time listing
type LeaderboardRow struct {
	Rank        string // may contain decoration, not parsed
	Car         string
	Driver      string
	LapTime     string // MM:SS.fff or SS.fff
	PowerWeight string // "<power> / <weight>" or a placeholder
	DetailURL   string // absolute url of the car anchor, empty if the cell has none
}

// CarLink points to the detail page of a car
type CarLink struct {
	CarName   string
	DetailURL string
}

// SpecSheetRow holds the raw datasheet values of one detail page.
// Every allow-list key is present, nil marks a missing entry.
type SpecSheetRow struct {
	Link   CarLink
	Values map[string]*string
}

func (s *SpecSheetRow) Value(key string) *string {
	return s.Values[key]
}
