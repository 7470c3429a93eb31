package main

import (
	"fmt"
	"io"
	"os"

	"techsync/internal/config"
	"techsync/internal/domain/assessment"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Grade a code submission locally",
	Long:  "Scores a code file with the challenge evaluator and prints the score, the matched signals and the feedback. Use --file - to read from stdin. The passing score comes from MIN_PASSING_SCORE.",
	RunE:  runEvaluate,
}

var (
	evaluateFile  string
	evaluatePlain bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateFile, "file", "f", "", "Path to the code file, or - for stdin (required)")
	evaluateCmd.Flags().BoolVar(&evaluatePlain, "plain", false, "Disable colors")

	if err := evaluateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	code, err := readSource(evaluateFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	scoring, err := config.LoadScoring()
	if err != nil {
		return err
	}
	assessor, err := assessment.NewAssessor(scoring.MinPassingScore)
	if err != nil {
		return err
	}
	res := assessor.Assess(assessment.Submission{Code: code})

	_, err = fmt.Fprint(cmd.OutOrStdout(), renderReport(res, assessor.MinPassingScore(), !evaluatePlain))
	return err
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read code file %s: %w", path, err)
	}
	return string(b), nil
}
