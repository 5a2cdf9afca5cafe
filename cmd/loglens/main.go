package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "loglens",
		Short:         "Deterministic log explanation engine",
		Long:          "LogLens turns raw log lines into structured explanations using a static pattern rule base.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to configuration file")
	root.PersistentFlags().String("rules", "", "path to an extra YAML rule pack")

	root.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newIncidentCmd(),
		newTriageCmd(),
		newRulesCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "loglens", version)
		},
	}
}
