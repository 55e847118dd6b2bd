// Package export serializes contact records as delimited tables or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smileynet/crmclean/internal/contact"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates a format name that has no encoder.
var ErrUnknownFormat = errors.New("export: unknown format")

// Header is the column order of every tabular export.
var Header = []string{"name", "email", "phone"}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatTSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write encodes records to w in the given format, one row per record in
// order after a header row. Records that break the Record invariants are
// refused before anything is written.
func Write(w io.Writer, format Format, records []contact.Record) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("export: record %d: %w", i, err)
		}
	}

	switch format {
	case FormatCSV:
		return writeDelimited(w, ',', records)
	case FormatTSV:
		return writeDelimited(w, '\t', records)
	case FormatJSON:
		return writeJSON(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeDelimited(w io.Writer, comma rune, records []contact.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Name, r.Email, r.Phone}); err != nil {
			return fmt.Errorf("export: writing %s: %w", r.Email, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flushing: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, records []contact.Record) error {
	if records == nil {
		records = []contact.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("export: encoding json: %w", err)
	}
	return nil
}
