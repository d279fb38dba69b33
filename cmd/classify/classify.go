// Package classify classifies a single complaint from the command line
package classify

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/complaint-classifier/cmd/root"
	"fjacquet/complaint-classifier/internal/classifier"
	"fjacquet/complaint-classifier/internal/classifyerror"
	"fjacquet/complaint-classifier/internal/container"

	"github.com/spf13/cobra"
)

const emptyComplaintWarning = "Please enter a complaint to classify."

var (
	text string

	// containerOptions lets tests swap the model.
	containerOptions []container.Option
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify one complaint",
	Long: `Classify one customer complaint and print its category.
The complaint is taken from --text, or read from standard input when the flag is absent.`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Complaint text (default: read from stdin)")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd.Context(), containerOptions...)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to release resources")
		}
	}()

	// The credential is checked before any input is read.
	complaint := text
	if !cmd.Flags().Changed("text") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("error reading complaint from stdin: %w", err)
		}
		complaint = trimTrailingNewline(string(data))
	}

	result, err := c.GetClassifier().Classify(cmd.Context(), classifier.ClassificationRequest{ComplaintText: complaint})
	switch {
	case errors.Is(err, classifyerror.ErrEmptyComplaint):
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), emptyComplaintWarning)
		return err
	case err != nil:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "An error occurred: %v\n", err)
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Category)
	return nil
}

// trimTrailingNewline removes one trailing "\r\n" or "\n".
func trimTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return strings.TrimSuffix(s, "\r\n")
	}
	return strings.TrimSuffix(s, "\n")
}
