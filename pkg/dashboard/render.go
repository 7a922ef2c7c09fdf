package dashboard

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/mpapenbr/greenhell-go/pkg/completion"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/normalize"
)

const (
	barWidth = 40
	unknown  = "-"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func formatValue(v *float64, precision int) string {
	if v == nil {
		return unknown
	}
	return fmt.Sprintf("%.*f", precision, *v)
}

// RenderCar prints the record of a car. Fields filled by the completion
// service are marked.
func RenderCar(w io.Writer, car *model.Car, completed []string) {
	t := newTable(w)
	t.SetTitle(car.Info.Car)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Driver", car.Info.Driver})
	t.AppendRow(table.Row{"Lap time", normalize.FormatDuration(car.Info.LapTime)})
	t.AppendRow(table.Row{"Power / weight", formatValue(car.Info.PowerToWeight, 3)})
	t.AppendRow(table.Row{"Car type", lo.FromPtrOr(car.Specs.CarType, unknown)})
	for _, name := range model.NumericFieldNames() {
		v, _ := car.Specs.Numeric(name)
		label := fieldLabels[name]
		if lo.Contains(completed, name) && v != nil {
			label += " *"
		}
		t.AppendRow(table.Row{label, formatValue(v, 2)})
	}
	if len(completed) > 0 {
		t.AppendFooter(table.Row{"", "* estimated"})
	}
	t.Render()
}

// RenderCompletion reports the outcome of the completion protocol
func RenderCompletion(w io.Writer, res *completion.Result, err error) {
	if len(res.Requested) == 0 {
		return
	}
	if err != nil {
		fmt.Fprintf(w, "Could not estimate missing values: %v\n", err)
		return
	}
	filled := len(res.Requested) - len(res.Unresolved)
	fmt.Fprintf(w, "Estimated %d of %d missing values.", filled, len(res.Requested))
	if len(res.Unresolved) > 0 {
		fmt.Fprintf(w, " Still unknown: %s", strings.Join(res.Unresolved, ", "))
	}
	fmt.Fprintln(w)
}

// RenderPrediction prints the prediction text below the car name
func RenderPrediction(w io.Writer, car *model.Car, prediction string) {
	fmt.Fprintln(w, text.Bold.Sprintf("Prediction for %s", car.Info.Car))
	fmt.Fprintln(w, text.WrapSoft(strings.TrimSpace(prediction), 100))
}

// RenderAnalysis prints the acceleration curve with bars and the score
func RenderAnalysis(w io.Writer, a *Analysis) {
	t := newTable(w)
	t.SetTitle("Performance analysis: " + a.Car)
	t.AppendHeader(table.Row{"Speed [kph]", "Time [s]", "Avg. accel [g]", ""})
	maxSeconds := lo.MaxBy(a.Curve, func(x, y CurvePoint) bool { return x.Seconds > y.Seconds }).Seconds
	for _, p := range a.Curve {
		t.AppendRow(table.Row{
			p.Kph,
			fmt.Sprintf("%.2f", p.Seconds),
			fmt.Sprintf("%.2f", p.AvgAccel),
			bar(p.Seconds, maxSeconds),
		})
	}
	if len(a.Curve) == 0 {
		t.AppendRow(table.Row{unknown, unknown, unknown, "no acceleration data"})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Power / weight", formatValue(a.PowerToWeight, 3), "", ""})
	ppt := unknown
	if a.PowerPerTon != nil {
		ppt = a.PowerPerTon.String()
	}
	t.AppendRow(table.Row{"Power per ton", ppt, "", ""})
	names := lo.Keys(a.SubScores)
	slices.Sort(names)
	for _, name := range names {
		t.AppendRow(table.Row{"Score " + name, a.SubScores[name].StringFixed(1), "", ""})
	}
	score := unknown
	if a.Score != nil {
		score = a.Score.StringFixed(1)
	}
	t.AppendFooter(table.Row{"Score", score, "", bar(scoreValue(a), 100)})
	t.Render()
}

// RenderComparison prints two cars side by side
func RenderComparison(w io.Writer, c *Comparison) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s vs %s", c.A, c.B))
	t.AppendHeader(table.Row{"", c.A, c.B, "Delta"})
	for _, r := range c.Rows {
		delta := unknown
		if r.Delta != nil {
			delta = fmt.Sprintf("%+.2f", *r.Delta)
		}
		t.AppendRow(table.Row{r.Label, formatValue(r.A, 2), formatValue(r.B, 2), delta})
	}
	t.Render()
}

func scoreValue(a *Analysis) float64 {
	if a.Score == nil {
		return 0
	}
	return a.Score.InexactFloat64()
}

// bar renders value relative to maxValue as a text bar
func bar(value, maxValue float64) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(value / maxValue * barWidth)
	return strings.Repeat("█", max(n, 1))
}
