// Package batch classifies every complaint of a CSV file
package batch

import (
	"fmt"

	"fjacquet/complaint-classifier/cmd/root"
	"fjacquet/complaint-classifier/internal/container"
	"fjacquet/complaint-classifier/internal/validation"

	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string

	// containerOptions lets tests swap the model.
	containerOptions []container.Option
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify every complaint of a CSV file",
	Long: `Classify every complaint of a CSV file and write the categories to another CSV file.

The input needs an "id,complaint" header. Rows are classified one after another;
a row that fails keeps its error in the "error" column and the batch continues.

Example:
  complaint-classifier batch -i complaints.csv -o categories.csv`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (id,complaint)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (id,complaint,category,error)")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidInputCSV(inputFile); err != nil {
		return err
	}
	if err := validation.IsValidOutputPath(inputFile, outputFile); err != nil {
		return err
	}

	c, err := root.NewContainer(cmd.Context(), containerOptions...)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to release resources")
		}
	}()

	summary, err := c.NewBatchProcessor().ProcessFile(cmd.Context(), inputFile, outputFile)
	if err != nil {
		return fmt.Errorf("batch classification failed: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Classified %d of %d complaints (%d failed), results in %s\n",
		summary.Succeeded, summary.Total, summary.Failed, outputFile)
	return nil
}
