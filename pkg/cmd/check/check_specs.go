package check

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/clean"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/dashboard"
	"github.com/mpapenbr/greenhell-go/pkg/model"
	"github.com/mpapenbr/greenhell-go/pkg/scrape"
)

func NewCheckSpecsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "specs url",
		Short: "fetches a detail page and prints the raw and cleaned spec sheet",
		Long: "fetches a detail page and prints the raw and cleaned spec sheet.\n" +
			"The url may be relative to the site root, e.g. /models/porsche-911-gt2-rs",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkSpecs(cmd.Context(), cmd, args[0])
		},
	}
	return cmd
}

func checkSpecs(ctx context.Context, cmd *cobra.Command, arg string) error {
	url := arg
	if strings.HasPrefix(arg, "/") {
		url = strings.TrimSuffix(config.BaseURL, "/") + arg
	}
	link := model.CarLink{CarName: url, DetailURL: url}
	sheets, err := scrape.FetchSpecs(ctx,
		scrape.NewFetcher(scrape.WithTimeout(config.FetchTimeout)),
		[]model.CarLink{link},
		model.SpecSheetKeys())
	if err != nil {
		log.Error("could not fetch detail page", log.ErrorField(err))
		return err
	}
	dashboard.RenderSpecSheet(cmd.OutOrStdout(), sheets[0].Values)
	dashboard.RenderSpecs(cmd.OutOrStdout(), []model.CarSpecs{clean.Specs(sheets[0])})
	return nil
}
