// Package pipeline composes the scrape, clean and persist stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/clean"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/scrape"
)

const (
	DefaultBaseURL   = "https://fastestlaps.com"
	DefaultTrackPath = "/tracks/nordschleife"
)

// Sink receives the cleaned records
type Sink interface {
	Replace(ctx context.Context, infos []model.CarInfo, specs []model.CarSpecs) error
}

// Result summarizes a pipeline run
type Result struct {
	Rows    []model.LeaderboardRow
	Links   []model.CarLink // distinct detail pages
	Infos   []model.CarInfo
	Specs   []model.CarSpecs
	Skipped error // failed detail pages when skipping is enabled
}

type Pipeline struct {
	fetcher   scrape.Fetcher
	baseURL   string
	trackPath string
	policy    scrape.FailurePolicy
	cleaner   *clean.Cleaner
	sink      Sink
	l         *log.Logger
	counters  counters
}

type counters struct {
	rows    metric.Int64Counter
	dropped metric.Int64Counter
	pages   metric.Int64Counter
	failed  metric.Int64Counter
}

type Option func(p *Pipeline)

func WithFetcher(f scrape.Fetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}

func WithSite(baseURL, trackPath string) Option {
	return func(p *Pipeline) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
		if trackPath != "" {
			p.trackPath = trackPath
		}
	}
}

func WithFailurePolicy(policy scrape.FailurePolicy) Option {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithSink sets the destination of the records. Without a sink nothing is persisted.
func WithSink(s Sink) Option {
	return func(p *Pipeline) {
		p.sink = s
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		p.l = l
	}
}

func New(opts ...Option) (*Pipeline, error) {
	ret := &Pipeline{
		baseURL:   DefaultBaseURL,
		trackPath: DefaultTrackPath,
		policy:    scrape.AbortBatch,
		l:         log.Default().Named("pipeline"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fetcher == nil {
		ret.fetcher = scrape.NewFetcher(scrape.WithLogger(ret.l))
	}
	ret.cleaner = clean.New(clean.WithLogger(ret.l))
	if err := ret.initCounters(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (p *Pipeline) initCounters() error {
	meter := otel.Meter("greenhell.pipeline")
	var err error
	if p.counters.rows, err = meter.Int64Counter("greenhell.leaderboard.rows",
		metric.WithDescription("leaderboard rows extracted")); err != nil {
		return err
	}
	if p.counters.dropped, err = meter.Int64Counter("greenhell.leaderboard.dropped",
		metric.WithDescription("leaderboard rows without usable lap time")); err != nil {
		return err
	}
	if p.counters.pages, err = meter.Int64Counter("greenhell.specs.pages",
		metric.WithDescription("detail pages extracted")); err != nil {
		return err
	}
	if p.counters.failed, err = meter.Int64Counter("greenhell.specs.failed",
		metric.WithDescription("detail pages which could not be fetched")); err != nil {
		return err
	}
	return nil
}

// LeaderboardURL is the page the run starts with
func (p *Pipeline) LeaderboardURL() string {
	return p.baseURL + p.trackPath
}

// Run executes all stages. With AbortBatch the first failing detail page ends
// the run and nothing is persisted.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = log.AddToContext(ctx, p.l)
	rows, links, err := p.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	ret := &Result{Rows: rows, Links: links}

	sheets, err := scrape.FetchSpecs(ctx, p.fetcher, links, model.SpecSheetKeys(),
		scrape.WithFailurePolicy(p.policy))
	p.counters.pages.Add(ctx, int64(len(sheets)))
	if err != nil {
		var fetchErr *scrape.FetchError
		if p.policy == scrape.AbortBatch || !errors.As(err, &fetchErr) {
			p.counters.failed.Add(ctx, 1)
			return nil, fmt.Errorf("spec sheets: %w", err)
		}
		p.counters.failed.Add(ctx, int64(len(links)-len(sheets)))
		ret.Skipped = err
	}

	ret.Infos, ret.Specs = p.cleaner.Clean(rows, sheets)
	p.counters.dropped.Add(ctx, int64(len(rows)-len(ret.Infos)))
	p.l.Info("records cleaned",
		log.Int("carInfo", len(ret.Infos)),
		log.Int("carSpecs", len(ret.Specs)),
		log.Int("dropped", len(rows)-len(ret.Infos)))

	if p.sink == nil {
		return ret, nil
	}
	if err := p.sink.Replace(ctx, ret.Infos, ret.Specs); err != nil {
		return ret, err
	}
	return ret, nil
}

// Leaderboard fetches the leaderboard page and returns its rows and the
// distinct detail page links in document order.
func (p *Pipeline) Leaderboard(ctx context.Context) (
	[]model.LeaderboardRow, []model.CarLink, error,
) {
	doc, err := p.fetcher.Fetch(ctx, p.LeaderboardURL())
	if err != nil {
		return nil, nil, fmt.Errorf("leaderboard: %w", err)
	}
	rows := slices.Collect(scrape.Rows(doc, p.baseURL))
	links := lo.UniqBy(slices.Collect(scrape.Links(doc, p.baseURL)),
		func(l model.CarLink) string { return l.DetailURL })
	p.counters.rows.Add(ctx, int64(len(rows)))
	p.l.Info("leaderboard extracted",
		log.Int("rows", len(rows)),
		log.Int("links", len(links)))
	return rows, links, nil
}
