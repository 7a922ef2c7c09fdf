package scrape

import (
	"iter"

	"github.com/PuerkitoBio/goquery"

	"github.com/mpapenbr/greenhell-go/pkg/model"
)

// LeaderboardColumns is the number of cells of a leaderboard row.
// Rows with another cell count are not part of the leaderboard.
const LeaderboardColumns = 5

// Rows yields the leaderboard rows of doc in document order.
func Rows(doc *goquery.Document, baseURL string) iter.Seq[model.LeaderboardRow] {
	return func(yield func(model.LeaderboardRow) bool) {
		doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			cells := tr.Find("td")
			if cells.Length() != LeaderboardColumns {
				return true
			}
			row := model.LeaderboardRow{
				Rank:        cellText(cells.Eq(0)),
				Car:         cellText(cells.Eq(1)),
				Driver:      cellText(cells.Eq(2)),
				LapTime:     cellText(cells.Eq(3)),
				PowerWeight: cellText(cells.Eq(4)),
			}
			if href, ok := cells.Eq(1).Find("a").First().Attr("href"); ok {
				row.DetailURL = joinURL(baseURL, href)
			}
			return yield(row)
		})
	}
}

// Links yields a CarLink for every table cell which contains an anchor with href.
// Only the first anchor of a cell is considered.
func Links(doc *goquery.Document, baseURL string) iter.Seq[model.CarLink] {
	return func(yield func(model.CarLink) bool) {
		doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			proceed := true
			tr.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
				anchor := td.Find("a").First()
				href, ok := anchor.Attr("href")
				if !ok {
					return true
				}
				proceed = yield(model.CarLink{
					CarName:   cellText(anchor),
					DetailURL: joinURL(baseURL, href),
				})
				return proceed
			})
			return proceed
		})
	}
}
