//nolint:funlen // ok for tests
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/greenhell-go/pkg/model"
)

func ptr[T any](v T) *T {
	return &v
}

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func sampleSpecs() model.CarSpecs {
	return model.CarSpecs{
		Car:        "Car Y",
		SourceURL:  "https://host/y",
		CarType:    ptr("Coupe"),
		TopSpeed:   ptr(300.0),
		CurbWeight: ptr(1400.0),
		Power:      ptr(500.0),
		// acceleration values unknown
		EstMaxAcceleration: ptr(1.1),
		Accel0to100:        ptr(3.2),
	}
}

func TestMissing(t *testing.T) {
	specs := sampleSpecs()
	assert.Equal(t, []string{
		model.FieldAccel0to40, model.FieldAccel0to50, model.FieldAccel0to60,
		model.FieldAccel0to80, model.FieldAccel0to120, model.FieldAccel0to130,
		model.FieldAccel0to140,
	}, Missing(&specs))

	specs.TopSpeed = nil
	assert.Contains(t, Missing(&specs), model.FieldTopSpeed)
}

func TestBuildPrompt(t *testing.T) {
	specs := sampleSpecs()
	prompt := BuildPrompt(&specs, []string{model.FieldAccel0to40, model.FieldAccel0to60})
	assert.Contains(t, prompt, `"Car Y"`)
	assert.Contains(t, prompt, `"top_speed"`)
	assert.Contains(t, prompt, `"accel_0_60"`)
	assert.Contains(t, prompt, `"nan"`)

	// the record is embedded as JSON object
	start := strings.Index(prompt, "{")
	end := strings.Index(prompt, "}")
	require.True(t, start >= 0 && end > start)
	record, err := ParseResponse(prompt[start : end+1])
	require.NoError(t, err)
	topSpeed := Coerce(record[model.FieldTopSpeed])
	require.NotNil(t, topSpeed)
	assert.InDelta(t, 300.0, *topSpeed, 1e-9)
	assert.Contains(t, record, model.FieldAccel0to40)
	assert.Nil(t, record[model.FieldAccel0to40])
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "object", text: `{"accel_0_40": 1.9}`},
		{name: "surrounding space", text: " \n{\"accel_0_40\": 1.9}\n"},
		{name: "empty object", text: `{}`},
		{name: "prose", text: `Sure! Here you go: {"accel_0_40": 1.9}`, wantErr: true},
		{name: "array", text: `[1, 2]`, wantErr: true},
		{name: "broken", text: `{"accel_0_40": }`, wantErr: true},
		{name: "truncated value", text: `{"accel_0_40": 1.5, "accel_0_50": }`, wantErr: true},
		{name: "trailing comma", text: `{"accel_0_40": 1.5,}`, wantErr: true},
		{name: "empty", text: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.text)
			if tt.wantErr {
				var mErr *MalformedCompletionError
				assert.True(t, errors.As(err, &mErr), "err = %v", err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *float64
	}{
		{"int", int64(3), ptr(3.0)},
		{"float", 2.5, ptr(2.5)},
		{"json number", json.Number("2.5"), ptr(2.5)},
		{"invalid json number", json.Number("x"), nil},
		{"numeric string", " 2.5 ", ptr(2.5)},
		{"nan", "nan", nil},
		{"NaN upper", " NaN ", nil},
		{"text", "fast", nil},
		{"null", nil, nil},
		{"bool", true, nil},
		{"object", map[string]any{"v": 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.value))
		})
	}
}

func TestCoerceLongNumber(t *testing.T) {
	record, err := ParseResponse(`{"accel_0_40": 2.12345678901234567890}`)
	require.NoError(t, err)
	got := Coerce(record[model.FieldAccel0to40])
	require.NotNil(t, got)
	assert.InDelta(t, 2.1234567890123457, *got, 1e-12)
}

func TestMerge(t *testing.T) {
	specs := sampleSpecs()
	missing := Missing(&specs)
	values := map[string]any{
		model.FieldAccel0to40:  int64(2),
		model.FieldAccel0to50:  "2.4",
		model.FieldAccel0to60:  "nan",
		model.FieldAccel0to80:  "quick",
		model.FieldTopSpeed:    999.0, // known field, must not change
		model.FieldAccel0to100: 9.9,   // known field, must not change
		"unknown":              1.0,
	}
	got := Merge(&specs, missing, values)

	assert.Equal(t, ptr(2.0), got.Accel0to40)
	assert.Equal(t, ptr(2.4), got.Accel0to50)
	assert.Nil(t, got.Accel0to60)
	assert.Nil(t, got.Accel0to80)
	assert.Nil(t, got.Accel0to120, "absent in response")
	assert.Equal(t, ptr(300.0), got.TopSpeed)
	assert.Equal(t, ptr(3.2), got.Accel0to100)

	// the input is not modified
	assert.Nil(t, specs.Accel0to40)
}

func TestProtocolComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing missing", func(t *testing.T) {
		specs := sampleSpecs()
		for _, name := range Missing(&specs) {
			specs.SetNumeric(name, ptr(1.0))
		}
		fake := &fakeCompleter{}
		res, err := NewProtocol(fake).Complete(ctx, &specs)
		require.NoError(t, err)
		assert.Empty(t, fake.prompts, "no request expected")
		assert.Equal(t, specs, res.Specs)
	})

	t.Run("values merged", func(t *testing.T) {
		specs := sampleSpecs()
		fake := &fakeCompleter{response: `{"accel_0_40": 1.5, "accel_0_50": "2.0",
			"accel_0_60": "nan", "accel_0_80": 3, "accel_0_120": 4.4,
			"accel_0_130": 5.1, "accel_0_140": 5.9}`}
		res, err := NewProtocol(fake).Complete(ctx, &specs)
		require.NoError(t, err)
		require.Len(t, fake.prompts, 1)
		assert.True(t, strings.Contains(fake.prompts[0], model.FieldAccel0to40))
		assert.Len(t, res.Requested, 7)
		assert.Equal(t, []string{model.FieldAccel0to60}, res.Unresolved)
		assert.Equal(t, ptr(3.0), res.Specs.Accel0to80)
	})

	t.Run("malformed", func(t *testing.T) {
		specs := sampleSpecs()
		fake := &fakeCompleter{response: "I am not sure about these values."}
		res, err := NewProtocol(fake).Complete(ctx, &specs)
		var mErr *MalformedCompletionError
		require.True(t, errors.As(err, &mErr), "err = %v", err)
		assert.Equal(t, specs, res.Specs)
		assert.Len(t, res.Unresolved, 7)
	})

	t.Run("service failure", func(t *testing.T) {
		specs := sampleSpecs()
		fake := &fakeCompleter{err: errors.New("boom")}
		res, err := NewProtocol(fake).Complete(ctx, &specs)
		assert.EqualError(t, err, "boom")
		assert.Equal(t, specs, res.Specs)
	})
}
