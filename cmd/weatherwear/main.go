package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath    string
	noBatch       bool
	noInteractive bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "weatherwear",
	Short: "Weather-based clothing advisor",
	Long: `weatherwear looks up the current weather for a city and suggests what to wear.

Run without arguments to print advice for the configured cities and then
enter interactive mode. Set OPENAI_API_KEY (or configure a provider) to get
LLM-written advice; otherwise a fixed rule table is used.`,
	Args: cobra.NoArgs,
	RunE: runDefault,
}

var adviseCmd = &cobra.Command{
	Use:   "advise [city...]",
	Short: "Print clothing advice for each city",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdvise,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer city names sent through the enabled chat gateways",
	Long: `Starts every enabled chat gateway (telegram, discord) and replies to each
incoming message with clothing advice for the named city. Runs until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print structured pipeline events to stderr")
	rootCmd.Flags().BoolVar(&noBatch, "no-batch", false, "skip advice for the configured cities")
	rootCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "exit after batch mode")

	rootCmd.AddCommand(adviseCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
