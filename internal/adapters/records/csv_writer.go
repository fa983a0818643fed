package records

import (
	"encoding/csv"
	"io"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
)

// Output column names.
const (
	ColumnText  = "text"
	ColumnLabel = "class_attribute"
)

// CSVWriter writes "text,class_attribute" rows with a header line.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
	rows        int
}

// NewCSVWriter creates a writer on w. The header is written with the first
// record, or on Flush if no record was written.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write appends one record as (text, label).
func (c *CSVWriter) Write(record domain.Record) error {
	if err := c.header(); err != nil {
		return err
	}
	if err := c.w.Write([]string{record.Text, record.Label}); err != nil {
		return err
	}
	c.rows++
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	if err := c.header(); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Rows returns the number of records written, excluding the header.
func (c *CSVWriter) Rows() int {
	return c.rows
}

func (c *CSVWriter) header() error {
	if c.wroteHeader {
		return nil
	}
	c.wroteHeader = true
	return c.w.Write([]string{ColumnText, ColumnLabel})
}
