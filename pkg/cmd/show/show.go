package show

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/cmd/setup"
	"github.com/mpapenbr/greenhell-go/pkg/completion"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/dashboard"
	"github.com/mpapenbr/greenhell-go/pkg/model"
)

const (
	ViewPrediction = "prediction"
	ViewAnalysis   = "analysis"
	ViewComparison = "comparison"
)

type showOptions struct {
	car         string
	view        string
	compareWith string
	list        bool
}

func NewShowCmd() *cobra.Command {
	opts := showOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "shows prediction, performance analysis or comparison of a stored car",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains([]string{ViewPrediction, ViewAnalysis, ViewComparison},
				opts.view) {
				return fmt.Errorf("unknown view %q", opts.view)
			}
			if err := config.RequireDB(); err != nil {
				return err
			}
			if opts.list {
				return nil
			}
			return config.RequireAPIKey()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, &opts)
		},
	}
	cmd.Flags().StringVar(&opts.car, "car", "",
		"car to show (default: first leaderboard entry)")
	cmd.Flags().StringVar(&opts.view, "view", ViewPrediction,
		"view to show (prediction, analysis, comparison)")
	cmd.Flags().StringVar(&opts.compareWith, "compare-with", "",
		"second car of the comparison view (default: field average)")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list the stored cars")
	return cmd
}

//nolint:funlen // by design
func runShow(cmd *cobra.Command, opts *showOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	s, err := setup.Store(ctx)
	if err != nil {
		log.Error("database not ready", log.ErrorField(err))
		return err
	}
	cars, err := s.LoadCars(ctx)
	if err != nil {
		return err
	}
	if opts.list {
		dashboard.RenderInfos(out, lo.Map(cars, func(c model.Car, _ int) model.CarInfo {
			return c.Info
		}))
		return nil
	}
	car, err := dashboard.SelectCar(cars, opts.car)
	if err != nil {
		return err
	}

	completer := setup.Completer()
	protocol := completion.NewProtocol(completer)
	res, err := protocol.Complete(ctx, &car.Specs)
	var malformed *completion.MalformedCompletionError
	if err != nil && !errors.As(err, &malformed) {
		log.Warn("completion failed", log.ErrorField(err))
	}
	dashboard.RenderCompletion(out, &res, err)
	// the completed values are only used for this view
	car.Specs = res.Specs
	filled := lo.Without(res.Requested, res.Unresolved...)

	switch opts.view {
	case ViewPrediction:
		dashboard.RenderCar(out, &car, filled)
		prediction, err := dashboard.Predict(ctx, completer, &car)
		if err != nil {
			log.Error("prediction failed", log.ErrorField(err))
			return err
		}
		dashboard.RenderPrediction(out, &car, prediction)
	case ViewAnalysis:
		a := dashboard.Analyze(&car)
		dashboard.RenderAnalysis(out, &a)
	case ViewComparison:
		other := dashboard.FieldAverage(cars)
		if opts.compareWith != "" {
			if other, err = dashboard.SelectCar(cars, opts.compareWith); err != nil {
				return err
			}
		}
		c := dashboard.Compare(&car, &other)
		dashboard.RenderComparison(out, &c)
	}
	return nil
}
