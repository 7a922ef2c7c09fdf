// Package dashboard contains the views of the show command.
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/mpapenbr/greenhell-go/pkg/model"
)

// MinSimilarity is the Jaro-Winkler similarity a car name must reach to be
// selected without an exact match.
const MinSimilarity = 0.8

var ErrNoCars = errors.New("no cars available, run the scrape command first")

// NoMatchError is returned if no car is similar enough to the requested name
type NoMatchError struct {
	Name    string
	Closest string
}

func (e *NoMatchError) Error() string {
	if e.Closest == "" {
		return fmt.Sprintf("no car matches %q", e.Name)
	}
	return fmt.Sprintf("no car matches %q (closest: %q)", e.Name, e.Closest)
}

// SelectCar returns the car named name. Names are compared case-insensitive.
// Without an exact match the most similar name is used if it is similar enough.
// An empty name selects the first car.
func SelectCar(cars []model.Car, name string) (model.Car, error) {
	if len(cars) == 0 {
		return model.Car{}, ErrNoCars
	}
	wanted := strings.ToLower(strings.TrimSpace(name))
	if wanted == "" {
		return cars[0], nil
	}
	for i := range cars {
		if strings.ToLower(cars[i].Info.Car) == wanted {
			return cars[i], nil
		}
	}
	best, bestSim := -1, 0.0
	for i := range cars {
		sim := matchr.JaroWinkler(strings.ToLower(cars[i].Info.Car), wanted, false)
		if sim > bestSim {
			best, bestSim = i, sim
		}
	}
	if best < 0 || bestSim < MinSimilarity {
		closest := ""
		if best >= 0 {
			closest = cars[best].Info.Car
		}
		return model.Car{}, &NoMatchError{Name: name, Closest: closest}
	}
	return cars[best], nil
}
