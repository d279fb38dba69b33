// Package batch classifies every complaint of a CSV file and writes the
// categories back out as CSV.
package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/complaint-classifier/internal/classifier"
	"fjacquet/complaint-classifier/internal/logging"

	"github.com/gocarina/gocsv"
)

// Record is one input row.
type Record struct {
	ID        string `csv:"id"`
	Complaint string `csv:"complaint"`
}

// Result is one output row. Error is empty when the row was classified.
type Result struct {
	ID        string `csv:"id"`
	Complaint string `csv:"complaint"`
	Category  string `csv:"category"`
	Error     string `csv:"error"`
}

// Summary counts the outcome of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Processor runs complaints through a classifier one row at a time.
type Processor struct {
	service classifier.Service
	logger  logging.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(service classifier.Service, logger logging.Logger) *Processor {
	return &Processor{service: service, logger: logger}
}

// Required input columns.
const (
	columnID        = "id"
	columnComplaint = "complaint"
)

// ReadRecords parses CSV with an id,complaint header.
// A header missing either column is rejected rather than read as empty rows.
func ReadRecords(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	var records []Record
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	return records, nil
}

func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return fmt.Errorf("error parsing CSV: empty input, expected header %s,%s", columnID, columnComplaint)
	}
	if err != nil {
		return fmt.Errorf("error parsing CSV header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, name := range header {
		seen[name] = true
	}
	for _, required := range []string{columnID, columnComplaint} {
		if !seen[required] {
			return fmt.Errorf("error parsing CSV: missing %q column in header %q", required, strings.Join(header, ","))
		}
	}
	return nil
}

// WriteResults writes results as CSV with an id,complaint,category,error header.
func WriteResults(w io.Writer, results []Result) error {
	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(results, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// Process classifies records sequentially. A failed row is recorded in its
// Error column and does not stop the batch; a cancelled ctx does.
func (p *Processor) Process(ctx context.Context, records []Record) ([]Result, Summary, error) {
	results := make([]Result, 0, len(records))
	summary := Summary{Total: len(records)}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		res := Result{ID: rec.ID, Complaint: rec.Complaint}
		out, err := p.service.Classify(ctx, classifier.ClassificationRequest{ComplaintText: rec.Complaint})
		if err != nil {
			res.Error = err.Error()
			summary.Failed++
			p.logger.WithError(err).Warn("Row classification failed", logging.F("id", rec.ID))
		} else {
			res.Category = out.Category
			summary.Succeeded++
		}
		results = append(results, res)
	}

	return results, summary, nil
}

// ProcessFile reads inputFile, classifies it and writes outputFile.
func (p *Processor) ProcessFile(ctx context.Context, inputFile, outputFile string) (Summary, error) {
	log := p.logger.WithFields(
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldOutputFile, outputFile),
	)

	in, err := os.Open(inputFile) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return Summary{}, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	records, err := ReadRecords(in)
	if err != nil {
		return Summary{}, err
	}
	log.Info("Classifying complaints", logging.F(logging.FieldCount, len(records)))

	results, summary, err := p.Process(ctx, records)
	if err != nil {
		return summary, err
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0750); err != nil {
		return summary, fmt.Errorf("error creating directory: %w", err)
	}
	out, err := os.Create(outputFile) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return summary, fmt.Errorf("error creating output file: %w", err)
	}
	if err := WriteResults(out, results); err != nil {
		_ = out.Close()
		return summary, err
	}
	if err := out.Close(); err != nil {
		return summary, fmt.Errorf("error closing output file: %w", err)
	}

	log.Info("Batch classification complete",
		logging.F(logging.FieldCount, summary.Total),
		logging.F("succeeded", summary.Succeeded),
		logging.F("failed", summary.Failed))
	return summary, nil
}
