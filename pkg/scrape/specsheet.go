package scrape

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/model"
)

// DatasheetSelector locates the key/value tables on a detail page
const DatasheetSelector = "table.fl-datasheet"

// FailurePolicy decides what happens if a single detail page cannot be fetched
type FailurePolicy int

const (
	// AbortBatch stops at the first failed page and returns its error
	AbortBatch FailurePolicy = iota
	// SkipAndContinue logs the failed page, continues with the next one and
	// reports all failures together after the batch
	SkipAndContinue
)

func (p FailurePolicy) String() string {
	if p == SkipAndContinue {
		return "skip"
	}
	return "abort"
}

type specOptions struct {
	policy FailurePolicy
}

type SpecOption func(o *specOptions)

func WithFailurePolicy(p FailurePolicy) SpecOption {
	return func(o *specOptions) {
		o.policy = p
	}
}

// ExtractSpecSheet flattens all datasheet tables of doc into a key/value mapping
// and projects allowList onto it. Keys missing on the page are mapped to nil.
// If a key occurs more than once the last occurrence wins.
func ExtractSpecSheet(doc *goquery.Document, allowList []string) map[string]*string {
	raw := map[string]string{}
	doc.Find(DatasheetSelector).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() < 2 {
				return
			}
			raw[cellText(cells.Eq(0))] = cellText(cells.Eq(1))
		})
	})

	ret := make(map[string]*string, len(allowList))
	for _, key := range allowList {
		if v, ok := raw[key]; ok {
			ret[key] = &v
		} else {
			ret[key] = nil
		}
	}
	return ret
}

// FetchSpecs fetches the detail page of every link and extracts its spec sheet.
//
// With AbortBatch (default) the first failing page ends the batch, no rows are
// returned. With SkipAndContinue the rows of all successful pages are returned
// together with the joined *FetchError of the skipped ones.
func FetchSpecs(
	ctx context.Context,
	fetcher Fetcher,
	links []model.CarLink,
	allowList []string,
	opts ...SpecOption,
) ([]model.SpecSheetRow, error) {
	o := specOptions{policy: AbortBatch}
	for _, opt := range opts {
		opt(&o)
	}
	l := log.GetFromContext(ctx).Named("specs")

	ret := make([]model.SpecSheetRow, 0, len(links))
	var failures []error
	for i, link := range links {
		doc, err := fetcher.Fetch(ctx, link.DetailURL)
		if err != nil {
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				fetchErr = &FetchError{URL: link.DetailURL, Err: err}
			}
			if o.policy == AbortBatch {
				return nil, fetchErr
			}
			l.Warn("skipping detail page",
				log.String("car", link.CarName),
				log.ErrorField(fetchErr))
			failures = append(failures, fetchErr)
			continue
		}
		l.Debug("spec sheet extracted",
			log.String("car", link.CarName),
			log.Int("num", i+1),
			log.Int("total", len(links)))
		ret = append(ret, model.SpecSheetRow{
			Link:   link,
			Values: ExtractSpecSheet(doc, allowList),
		})
	}
	return ret, errors.Join(failures...)
}
