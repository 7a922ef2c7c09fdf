package check

import (
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "commands to check the extraction of single pages",
	}

	cmd.AddCommand(NewCheckLeaderboardCmd())
	cmd.AddCommand(NewCheckSpecsCmd())

	return cmd
}
