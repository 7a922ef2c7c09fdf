package dashboard

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/greenhell-go/pkg/completion"
	"github.com/mpapenbr/greenhell-go/pkg/model"
)

// PredictionPrompt asks for a lap time prediction based on the car record.
// The recorded lap time is not part of the prompt.
func PredictionPrompt(car *model.Car) string {
	record := completion.Record(&car.Specs)
	record["driver"] = car.Info.Driver
	if car.Info.PowerToWeight != nil {
		record["power_weight"] = *car.Info.PowerToWeight
	} else {
		record["power_weight"] = nil
	}
	return fmt.Sprintf("Given the following specifications for the %s: %s. "+
		"Based solely on this data, predict the Nürburgring lap time and other key "+
		"performance characteristics of the car, excluding any historical lap times.",
		car.Info.Car, oj.JSON(record, &ojg.Options{Sort: true}))
}

// Predict returns the prediction text of the completion service
func Predict(ctx context.Context, c completion.Completer, car *model.Car) (string, error) {
	return c.Complete(ctx, PredictionPrompt(car))
}
