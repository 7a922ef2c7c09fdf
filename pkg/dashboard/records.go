package dashboard

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/normalize"
)

// RenderRows prints raw leaderboard rows
func RenderRows(w io.Writer, rows []model.LeaderboardRow) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Car", "Driver", "Time", "Power / weight", "Detail"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Rank, r.Car, r.Driver, r.LapTime, r.PowerWeight, r.DetailURL})
	}
	t.AppendFooter(table.Row{"", len(rows)})
	t.Render()
}

// RenderSpecSheet prints the raw values of a detail page in allow-list order
func RenderSpecSheet(w io.Writer, values map[string]*string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, key := range model.SpecSheetKeys() {
		t.AppendRow(table.Row{key, lo.FromPtrOr(values[key], unknown)})
	}
	t.Render()
}

// RenderInfos prints cleaned leaderboard entries
func RenderInfos(w io.Writer, infos []model.CarInfo) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Car", "Driver", "Lap time", "Power / weight"})
	for i := range infos {
		t.AppendRow(table.Row{
			infos[i].Car,
			infos[i].Driver,
			normalize.FormatDuration(infos[i].LapTime),
			formatValue(infos[i].PowerToWeight, 3),
		})
	}
	t.AppendFooter(table.Row{"", len(infos)})
	t.Render()
}

// RenderSpecs prints cleaned spec sheets, one line per car
func RenderSpecs(w io.Writer, specs []model.CarSpecs) {
	t := newTable(w)
	header := table.Row{"Car", "Car type"}
	for _, name := range model.NumericFieldNames() {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i := range specs {
		row := table.Row{specs[i].Car, lo.FromPtrOr(specs[i].CarType, unknown)}
		for _, name := range model.NumericFieldNames() {
			v, _ := specs[i].Numeric(name)
			row = append(row, formatValue(v, 2))
		}
		t.AppendRow(row)
	}
	t.Render()
}
