package check

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/dashboard"
	"github.com/mpapenbr/greenhell-go/pkg/scrape"
)

var showLinks bool

func NewCheckLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "fetches the leaderboard page and prints the extracted rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkLeaderboard(cmd.Context(), cmd)
		},
	}
	cmd.Flags().BoolVar(&showLinks, "links", false, "print the detail page links too")
	return cmd
}

func checkLeaderboard(ctx context.Context, cmd *cobra.Command) error {
	url := config.BaseURL + config.TrackPath
	f := scrape.NewFetcher(scrape.WithTimeout(config.FetchTimeout))
	doc, err := f.Fetch(ctx, url)
	if err != nil {
		log.Error("could not fetch leaderboard", log.ErrorField(err))
		return err
	}
	dashboard.RenderRows(cmd.OutOrStdout(), slices.Collect(scrape.Rows(doc, config.BaseURL)))
	if showLinks {
		for link := range scrape.Links(doc, config.BaseURL) {
			cmd.Printf("%-40s %s\n", link.CarName, link.DetailURL)
		}
	}
	return nil
}
