/*
	Copyright 2023 Markus Papenbrock
*/

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	checkCmd "github.com/mpapenbr/greenhell-go/pkg/cmd/check"
	migrateCmd "github.com/mpapenbr/greenhell-go/pkg/cmd/migrate"
	scrapeCmd "github.com/mpapenbr/greenhell-go/pkg/cmd/scrape"
	"github.com/mpapenbr/greenhell-go/pkg/cmd/setup"
	showCmd "github.com/mpapenbr/greenhell-go/pkg/cmd/show"
	"github.com/mpapenbr/greenhell-go/pkg/completion"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/pipeline"
	"github.com/mpapenbr/greenhell-go/pkg/scrape"
	"github.com/mpapenbr/greenhell-go/version"
)

const envPrefix = "GH"

// env variables used by earlier deployments
//
//nolint:gochecknoglobals // lookup table
var legacyEnv = map[string]string{
	"db":      "MY_CAR_KEY",
	"api-key": "TOGETHER_API",
}

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "greenhell",
	Short:   "Nordschleife lap times, car specs and predictions",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup.Logging(os.Stderr)
		setup.Telemetry(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		setup.Shutdown(ctx)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag definitions
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.greenhell.yml)")

	rootCmd.PersistentFlags().StringVar(&config.DB, "db",
		"",
		"Connection string for the database")
	rootCmd.PersistentFlags().StringVar(&config.APIKey, "api-key",
		"",
		"API key for the text completion service")
	rootCmd.PersistentFlags().StringVar(&config.BaseURL, "base-url",
		pipeline.DefaultBaseURL,
		"Root url of the scraped site")
	rootCmd.PersistentFlags().StringVar(&config.TrackPath, "track-path",
		pipeline.DefaultTrackPath,
		"Path of the leaderboard page")
	rootCmd.PersistentFlags().DurationVar(&config.FetchTimeout, "fetch-timeout",
		scrape.DefaultTimeout,
		"Timeout for a single page request")
	rootCmd.PersistentFlags().StringVar(&config.CompletionURL, "completion-url",
		completion.DefaultEndpoint,
		"Endpoint of the chat completion API")
	rootCmd.PersistentFlags().StringVar(&config.CompletionModel, "completion-model",
		completion.DefaultModel,
		"Model used for completions")
	rootCmd.PersistentFlags().IntVar(&config.CompletionRetries, "completion-retries",
		0,
		"Additional attempts for failed completion requests")
	rootCmd.PersistentFlags().StringVar(&config.WaitForServices,
		"wait-for-services",
		"15s",
		"Duration to wait for other services to be ready")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"info",
		"controls the log level for sql statements (debug logs all statements)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (json, text)")
	rootCmd.PersistentFlags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	rootCmd.PersistentFlags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data")

	// add commands here
	rootCmd.AddCommand(migrateCmd.NewMigrateCmd())
	rootCmd.AddCommand(scrapeCmd.NewScrapeCmd())
	rootCmd.AddCommand(checkCmd.NewCheckCmd())
	rootCmd.AddCommand(showCmd.NewShowCmd())
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// a missing .env file is fine
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Using .env file")
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".greenhell" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".greenhell")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	for key, env := range legacyEnv {
		if err := viper.BindEnv(key,
			fmt.Sprintf("%s_%s", envPrefix, strings.ToUpper(strings.ReplaceAll(key, "-", "_"))),
			env); err != nil {
			fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", env, err)
		}
	}

	bindFlags(rootCmd.PersistentFlags(), viper.GetViper())
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		bindFlags(cmd.LocalNonPersistentFlags(), viper.GetViper())
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --fetch-timeout to GH_FETCH_TIMEOUT
		if _, legacy := legacyEnv[f.Name]; !legacy && strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := flags.Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
