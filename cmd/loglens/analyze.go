package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/engine"
	"github.com/loglens/loglens/internal/rules"
)

func newAnalyzeCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "analyze [log line]",
		Short: "Explain log lines from an argument, a file, or stdin",
		Long: `Explain one log line given as an argument, or every line read from
--file (use "-" for stdin). Results are printed as JSON, one object per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := buildPipeline(cmd)
			if err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			lines, err := collectLines(args, file)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			for _, line := range lines {
				if err := enc.Encode(pipeline.Explain(line, source)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("file", "", `file of log lines, one per line ("-" for stdin)`)
	cmd.Flags().StringVar(&source, "source", "", "origin tag attached to results")
	return cmd
}

func newIncidentCmd() *cobra.Command {
	var incidentContext string
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "Correlate related log lines into one incident summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := buildPipeline(cmd)
			if err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			lines, err := collectLines(args, file)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(pipeline.Incident(lines, incidentContext))
		},
	}
	cmd.Flags().String("file", "", `file of log lines, one per line ("-" for stdin)`)
	cmd.Flags().StringVar(&incidentContext, "context", "", "free-text context appended to the narrative")
	return cmd
}

func newTriageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Filter a log stream down to lines worth explaining",
		Long: `Read lines from --file (or stdin) and print only the ones that trip
a rule's keyword pre-filter, prefixed with the candidate rule ids.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := buildPipeline(cmd)
			if err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			lines, err := collectLines(args, file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range lines {
				candidates := pipeline.Candidates(line)
				if len(candidates) == 0 {
					continue
				}
				ids := make([]string, 0, len(candidates))
				for _, rule := range candidates {
					ids = append(ids, rule.ID)
				}
				fmt.Fprintf(out, "[%s] %s\n", strings.Join(ids, ","), line)
			}
			return nil
		},
	}
	cmd.Flags().String("file", "-", `file of log lines, one per line ("-" for stdin)`)
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the loaded rule base",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rule := range registry.Rules() {
				fmt.Fprintf(out, "%-22s %-15s %-8s %s\n", rule.ID, rule.Category, rule.BaseSeverity, rule.Name)
			}
			fmt.Fprintf(out, "\n%d rules loaded\n", registry.Len())
			return nil
		},
	}
}

func loadRegistry(cmd *cobra.Command) (*rules.Registry, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")
	return rules.Load(rulesPath)
}

func buildPipeline(cmd *cobra.Command) (*engine.Pipeline, error) {
	registry, err := loadRegistry(cmd)
	if err != nil {
		return nil, err
	}
	return engine.NewPipeline(nil, registry), nil
}

// collectLines gathers input lines from positional args or a file, with
// "-" meaning stdin. Blank lines are skipped.
func collectLines(args []string, file string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if file == "" {
		return nil, fmt.Errorf("provide a log line argument or --file")
	}

	var reader io.Reader
	if file == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
