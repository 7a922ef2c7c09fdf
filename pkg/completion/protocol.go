// Package completion fills unknown spec values with the help of a text
// completion service.
//
// The flow for a single record is Detect -> Request -> Parse -> Merge.
// Values proposed by the service are only applied to fields which were unknown
// before and the result is never written back to the store.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/samber/lo"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/normalize"
)

// MalformedCompletionError is returned if the completion is not a single JSON object
type MalformedCompletionError struct {
	Response string
	Err      error
}

func (e *MalformedCompletionError) Error() string {
	return fmt.Sprintf("the completion service did not answer with a JSON object: %v", e.Err)
}

func (e *MalformedCompletionError) Unwrap() error {
	return e.Err
}

var (
	errNoObject    = errors.New("response is not a JSON object")
	errInvalidJSON = errors.New("response is not valid JSON")
)

// Missing returns the names of the numeric fields without a value
func Missing(specs *model.CarSpecs) []string {
	return lo.Filter(model.NumericFieldNames(), func(name string, _ int) bool {
		v, _ := specs.Numeric(name)
		return v == nil
	})
}

// Record returns specs as a generic mapping. Unknown values are nil.
func Record(specs *model.CarSpecs) map[string]any {
	ret := map[string]any{"car": specs.Car}
	if specs.CarType != nil {
		ret["car_type"] = *specs.CarType
	} else {
		ret["car_type"] = nil
	}
	for _, name := range model.NumericFieldNames() {
		if v, _ := specs.Numeric(name); v != nil {
			ret[name] = *v
		} else {
			ret[name] = nil
		}
	}
	return ret
}

// BuildPrompt creates the instruction for the completion service
func BuildPrompt(specs *model.CarSpecs, missing []string) string {
	record := oj.JSON(Record(specs), &ojg.Options{Sort: true})
	keys := oj.JSON(lo.Map(missing, func(s string, _ int) any { return s }))
	return fmt.Sprintf(
		"The following JSON object describes the car %q. "+
			"Null values are unknown.\n%s\n\n"+
			"Estimate the values of these fields: %s.\n"+
			"Reply with a single flat JSON object which maps every one of these "+
			"field names to a number. Do not use \"nan\" or null. "+
			"Do not add any text, explanation or formatting before or after the JSON object.",
		specs.Car, record, keys)
}

// ParseResponse parses text as a single JSON object
func ParseResponse(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, &MalformedCompletionError{Response: text, Err: errNoObject}
	}
	// oj drops keys without a value, e.g. a truncated {"a": 1, "b": }
	if !json.Valid([]byte(trimmed)) {
		return nil, &MalformedCompletionError{Response: text, Err: errInvalidJSON}
	}
	data, err := oj.ParseString(trimmed)
	if err != nil {
		return nil, &MalformedCompletionError{Response: text, Err: err}
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &MalformedCompletionError{Response: text, Err: errNoObject}
	}
	return obj, nil
}

// Coerce converts a value of the parsed response to a number.
// The literal "nan" and anything not numeric yield nil.
func Coerce(value any) *float64 {
	var f float64
	switch v := value.(type) {
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		// oj keeps numbers with too many digits for a float64 as text
		var ok bool
		if f, ok = normalize.ParseNumber(string(v)); !ok {
			return nil
		}
	case string:
		s := strings.TrimSpace(v)
		if strings.EqualFold(s, "nan") {
			return nil
		}
		var ok bool
		if f, ok = normalize.ParseNumber(s); !ok {
			return nil
		}
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Merge returns a copy of specs where the missing fields are taken from values.
// Other fields are never changed.
func Merge(specs *model.CarSpecs, missing []string, values map[string]any) model.CarSpecs {
	ret := specs.Clone()
	for _, name := range missing {
		if current, ok := ret.Numeric(name); !ok || current != nil {
			continue
		}
		value, ok := values[name]
		if !ok {
			continue
		}
		ret.SetNumeric(name, Coerce(value))
	}
	return ret
}

// Result describes a completed record
type Result struct {
	Specs      model.CarSpecs
	Requested  []string // fields which were unknown
	Unresolved []string // fields which are still unknown
}

// Protocol runs the completion flow for single records
type Protocol struct {
	completer Completer
}

func NewProtocol(c Completer) *Protocol {
	return &Protocol{completer: c}
}

// Complete fills the unknown numeric fields of specs.
// If the service answer is malformed the returned result carries the unchanged
// record and the error is a *MalformedCompletionError.
func (p *Protocol) Complete(ctx context.Context, specs *model.CarSpecs) (Result, error) {
	l := log.GetFromContext(ctx).Named("completion")
	missing := Missing(specs)
	ret := Result{Specs: specs.Clone(), Requested: missing, Unresolved: missing}
	if len(missing) == 0 {
		return ret, nil
	}

	l.Debug("requesting missing values",
		log.String("car", specs.Car),
		log.Strings("missing", missing))
	text, err := p.completer.Complete(ctx, BuildPrompt(specs, missing))
	if err != nil {
		return ret, err
	}
	values, err := ParseResponse(text)
	if err != nil {
		l.Warn("malformed completion", log.String("car", specs.Car), log.ErrorField(err))
		return ret, err
	}
	ret.Specs = Merge(specs, missing, values)
	ret.Unresolved = Missing(&ret.Specs)
	return ret, nil
}
