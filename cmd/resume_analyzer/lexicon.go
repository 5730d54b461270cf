package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Print the built-in lookup tables as YAML",
	Long: `Print the built-in heading, degree, experience, publication, department and
scoring tables as YAML. Edit the output and point lexicon_path at it to
override the defaults.`,
	RunE: runLexicon,
}

var (
	lexiconOutputFile string
	lexiconCheckFile  string
)

func init() {
	lexiconCmd.Flags().StringVarP(&lexiconOutputFile, "out", "o", "", "Path to output YAML file (defaults to stdout)")
	lexiconCmd.Flags().StringVar(&lexiconCheckFile, "check", "", "Validate a lexicon file instead of printing the defaults")
	rootCmd.AddCommand(lexiconCmd)
}

func runLexicon(_ *cobra.Command, _ []string) error {
	if lexiconCheckFile != "" {
		lex, err := lexicon.Load(lexiconCheckFile)
		if err != nil {
			return err
		}
		if _, err := lex.Compile(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Lexicon OK: %s\n", lexiconCheckFile)
		return nil
	}

	data, err := lexicon.Default().Marshal()
	if err != nil {
		return err
	}

	if lexiconOutputFile == "" {
		_, _ = os.Stdout.Write(data)
		return nil
	}
	if err := os.WriteFile(lexiconOutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Output: %s\n", lexiconOutputFile)
	return nil
}
