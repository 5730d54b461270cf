package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume document into a structured profile",
	Long: `Decode a resume (PDF, DOCX, HTML or plain text), extract identity, degrees,
experience and publications, and print the scored profile as JSON.

Configuration can be loaded from a JSON or YAML file using --config.`,
	RunE: runAnalyze,
}

var (
	analyzeInputFile  string
	analyzeOutputFile string
	analyzeDepartment string
	analyzeConfigPath string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to the resume document (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	analyzeCmd.Flags().StringVarP(&analyzeDepartment, "target-department", "d", "", "Department the candidate is considered for")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config file (JSON or YAML)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a readable summary and debug logs to stderr")

	if err := analyzeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark 'in' flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(analyzeConfigPath, analyzeVerbose)
	if err != nil {
		return err
	}

	profile, err := analyzeFile(cmd.Context(), s.newAnalyzer(), analyzeInputFile, analyzeDepartment)
	if err != nil {
		return err
	}

	if analyzeVerbose {
		printSummary(os.Stderr, s, profile)
	}

	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := schemas.ValidateProfileJSON(jsonBytes); err != nil {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	}

	if analyzeOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(analyzeOutputFile, append(jsonBytes, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Successfully analyzed resume\n")
	_, _ = fmt.Fprintf(os.Stderr, "Output: %s\n", analyzeOutputFile)
	return nil
}

// analyzeFile decodes the document at path and runs the analyzer on its text
func analyzeFile(ctx context.Context, a *pipeline.Analyzer, path, department string) (*types.ResumeProfile, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	raw, metadata, err := ingestion.ReadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	profile, err := a.Analyze(ctx, types.AnalyzeRequest{Text: raw, TargetDepartment: department})
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if profile.ExtractionQuality.Status == types.QualityEmpty {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: no text could be extracted from %s (%s, %d bytes)\n",
			metadata.Filename, metadata.Format, metadata.Bytes)
	}
	return profile, nil
}

// printSummary writes the boxed, human-readable view of a profile
func printSummary(w io.Writer, s *settings, profile *types.ResumeProfile) {
	p := observability.NewPrinter(w)
	p.PrintProfile(profile)
	p.PrintExperience(profile)
	p.PrintPublications(profile)

	in := ranking.Input{
		HasPhD:          profile.HasPhD,
		ExperienceYears: profile.TotalExperienceYears,
		DepartmentMatch: profile.DepartmentMatch,
		Publications:    profile.PublicationsTotalCount,
	}
	if profile.HighestDegree != nil {
		in.HighestDegree = *profile.HighestDegree
	}
	p.PrintScore(ranking.New(s.lex).Breakdown(in))
	p.PrintQuality(profile.ExtractionQuality)
}
