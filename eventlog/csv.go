package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"seq", "kind", "from", "to", "amount", "timestamp"}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Seq),
			rec.Kind,
			rec.From,
			rec.To,
			rec.Amount,
			rec.Timestamp.Format(time.RFC3339Nano),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", rec.Seq, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes records to a CSV file, creating or truncating it.
func WriteCSVFile(filename string, records []Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses records from a CSV reader produced by WriteCSV.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected header with %d columns", len(header))
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		seq, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid seq %q: %w", line, row[0], err)
		}
		ts, err := time.Parse(time.RFC3339Nano, row[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp %q: %w", line, row[5], err)
		}
		records = append(records, Record{
			Seq:       seq,
			Kind:      row[1],
			From:      row[2],
			To:        row[3],
			Amount:    row[4],
			Timestamp: ts,
		})
	}
	return records, nil
}

// ReadCSVFile parses records from a CSV file.
func ReadCSVFile(filename string) ([]Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
