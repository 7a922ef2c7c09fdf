package model

// names of the numeric spec fields. They are used as column names in the store
// and as keys when talking to the completion service.
const (
	FieldTopSpeed           = "top_speed"
	FieldCurbWeight         = "curb_weight"
	FieldPower              = "power"
	FieldEstMaxAcceleration = "est_max_acceleration"
	FieldAccel0to40         = "accel_0_40"
	FieldAccel0to50         = "accel_0_50"
	FieldAccel0to60         = "accel_0_60"
	FieldAccel0to80         = "accel_0_80"
	FieldAccel0to100        = "accel_0_100"
	FieldAccel0to120        = "accel_0_120"
	FieldAccel0to130        = "accel_0_130"
	FieldAccel0to140        = "accel_0_140"
)

type numericField struct {
	name  string
	field func(s *CarSpecs) **float64
}

//nolint:gochecknoglobals // lookup table
var numericFields = []numericField{
	{FieldTopSpeed, func(s *CarSpecs) **float64 { return &s.TopSpeed }},
	{FieldCurbWeight, func(s *CarSpecs) **float64 { return &s.CurbWeight }},
	{FieldPower, func(s *CarSpecs) **float64 { return &s.Power }},
	{FieldEstMaxAcceleration, func(s *CarSpecs) **float64 { return &s.EstMaxAcceleration }},
	{FieldAccel0to40, func(s *CarSpecs) **float64 { return &s.Accel0to40 }},
	{FieldAccel0to50, func(s *CarSpecs) **float64 { return &s.Accel0to50 }},
	{FieldAccel0to60, func(s *CarSpecs) **float64 { return &s.Accel0to60 }},
	{FieldAccel0to80, func(s *CarSpecs) **float64 { return &s.Accel0to80 }},
	{FieldAccel0to100, func(s *CarSpecs) **float64 { return &s.Accel0to100 }},
	{FieldAccel0to120, func(s *CarSpecs) **float64 { return &s.Accel0to120 }},
	{FieldAccel0to130, func(s *CarSpecs) **float64 { return &s.Accel0to130 }},
	{FieldAccel0to140, func(s *CarSpecs) **float64 { return &s.Accel0to140 }},
}

// NumericFieldNames returns the numeric field names in column order
func NumericFieldNames() []string {
	ret := make([]string, len(numericFields))
	for i, f := range numericFields {
		ret[i] = f.name
	}
	return ret
}

// Numeric returns the value of the named field. ok is false for unknown names.
func (c *CarSpecs) Numeric(name string) (value *float64, ok bool) {
	for _, f := range numericFields {
		if f.name == name {
			return *f.field(c), true
		}
	}
	return nil, false
}

// SetNumeric sets the named field. Returns false for unknown names.
func (c *CarSpecs) SetNumeric(name string, value *float64) bool {
	for _, f := range numericFields {
		if f.name == name {
			*f.field(c) = value
			return true
		}
	}
	return false
}

// Clone returns a copy which does not share any pointers with c
func (c *CarSpecs) Clone() CarSpecs {
	ret := CarSpecs{Car: c.Car, SourceURL: c.SourceURL}
	if c.CarType != nil {
		v := *c.CarType
		ret.CarType = &v
	}
	for _, f := range numericFields {
		if p := *f.field(c); p != nil {
			v := *p
			*f.field(&ret) = &v
		}
	}
	return ret
}

// AccelerationSplit is one 0 to X kph measurement
type AccelerationSplit struct {
	Field string
	Kph   int
}

// AccelerationSplits lists the 0 to X kph fields in ascending speed order
//
//nolint:gochecknoglobals // lookup table
var AccelerationSplits = []AccelerationSplit{
	{FieldAccel0to40, 40},
	{FieldAccel0to50, 50},
	{FieldAccel0to60, 60},
	{FieldAccel0to80, 80},
	{FieldAccel0to100, 100},
	{FieldAccel0to120, 120},
	{FieldAccel0to130, 130},
	{FieldAccel0to140, 140},
}
