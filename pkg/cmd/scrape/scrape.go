package scrape

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/cmd/setup"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/dashboard"
	"github.com/mpapenbr/greenhell-go/pkg/pipeline"
	"github.com/mpapenbr/greenhell-go/pkg/scrape"
)

type scrapeOptions struct {
	skipFailed bool
	dryRun     bool
}

func NewScrapeCmd() *cobra.Command {
	opts := scrapeOptions{}
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "collects leaderboard and spec sheets and replaces the stored data",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.dryRun {
				return nil
			}
			return config.RequireDB()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, &opts)
		},
	}
	cmd.Flags().BoolVar(&opts.skipFailed, "skip-failed", false,
		"continue with the next car if a detail page cannot be fetched")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"print the cleaned records instead of storing them")
	return cmd
}

func runScrape(cmd *cobra.Command, opts *scrapeOptions) error {
	ctx := cmd.Context()
	pOpts := []pipeline.Option{
		pipeline.WithSite(config.BaseURL, config.TrackPath),
		pipeline.WithFetcher(scrape.NewFetcher(scrape.WithTimeout(config.FetchTimeout))),
	}
	if opts.skipFailed {
		pOpts = append(pOpts, pipeline.WithFailurePolicy(scrape.SkipAndContinue))
	}
	if !opts.dryRun {
		s, err := setup.Store(ctx)
		if err != nil {
			log.Error("database not ready", log.ErrorField(err))
			return err
		}
		pOpts = append(pOpts, pipeline.WithSink(s))
	}

	p, err := pipeline.New(pOpts...)
	if err != nil {
		return err
	}
	log.Info("Starting scrape", log.String("url", p.LeaderboardURL()))
	res, err := p.Run(ctx)
	if err != nil {
		log.Error("scrape failed", log.ErrorField(err))
		return err
	}
	if res.Skipped != nil {
		log.Warn("some detail pages were skipped", log.ErrorField(res.Skipped))
	}
	if opts.dryRun {
		dashboard.RenderInfos(cmd.OutOrStdout(), res.Infos)
		dashboard.RenderSpecs(cmd.OutOrStdout(), res.Specs)
	}
	log.Info("Scrape finished",
		log.Int("carInfo", len(res.Infos)),
		log.Int("carSpecs", len(res.Specs)),
		log.Bool("stored", !opts.dryRun))
	return nil
}
