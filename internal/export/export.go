// Package export writes simulation results for the spksim command.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-speaker/speaker/observe"
	"github.com/cwbudde/algo-speaker/speaker/sim"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatTable   Format = "table"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatCSV, FormatJSON, FormatParquet:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options tune the tabular writers.
type Options struct {
	// Smooth adds a 1/Smooth-octave smoothed SPL column when > 0.
	Smooth int
}

// Write encodes res in the given format.
func Write(w io.Writer, res *sim.Results, format Format, opts Options) error {
	switch format {
	case FormatTable:
		return Table(w, res, opts)
	case FormatCSV:
		return CSV(w, res, opts)
	case FormatJSON:
		return JSON(w, res)
	case FormatParquet:
		return Parquet(w, res)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// column is one table column.
type column struct {
	name   string
	values []float64
	prec   int
}

func columns(res *sim.Results, opts Options) ([]column, error) {
	cols := []column{
		{"freq_hz", res.Freq, 2},
		{"Z_ohm", res.ZMag, 3},
		{"Z_deg", res.ZPhaseDeg, 1},
		{"SPL_dB", res.SPL, 2},
	}
	if opts.Smooth > 0 {
		smooth, err := observe.SmoothLevel(res.Freq, res.SPL, opts.Smooth)
		if err != nil {
			return nil, fmt.Errorf("export: smoothing SPL: %w", err)
		}
		cols = append(cols, column{fmt.Sprintf("SPL_1/%d_dB", opts.Smooth), smooth, 2})
	}
	cols = append(cols,
		column{"SPL_deg", res.SPLPhaseDeg, 1},
		column{"x_mm", res.DisplacementMM, 4},
		column{"v_m_s", res.Velocity, 4},
		column{"gd_ms", res.GroupDelayMS, 3},
	)
	for k, v := range res.PortVelocity {
		name := "port_m_s"
		if len(res.PortVelocity) > 1 {
			name = fmt.Sprintf("port%d_m_s", k+1)
		}
		cols = append(cols, column{name, v, 3})
	}
	return cols, nil
}

func cell(v float64, prec int, missing string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Table writes an aligned, human-readable table. Unreliable values print as
// "-".
func Table(w io.Writer, res *sim.Results, opts Options) error {
	cols, err := columns(res, opts)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for j, c := range cols {
		header[j] = c.name
		rule[j] = strings.Repeat("-", len(c.name))
	}
	if _, err := fmt.Fprintf(tw, "%s\t\n%s\t\n", strings.Join(header, "\t"), strings.Join(rule, "\t")); err != nil {
		return fmt.Errorf("export: writing table header: %w", err)
	}

	row := make([]string, len(cols))
	for i := range res.Freq {
		for j, c := range cols {
			row[j] = cell(c.values[i], c.prec, "-")
		}
		if _, err := fmt.Fprintf(tw, "%s\t\n", strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("export: writing table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("export: flushing table: %w", err)
	}
	return nil
}

// CSV writes one row per frequency with full precision. Unreliable values
// are empty cells.
func CSV(w io.Writer, res *sim.Results, opts Options) error {
	cols, err := columns(res, opts)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)

	row := make([]string, len(cols))
	for j, c := range cols {
		row[j] = c.name
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("export: writing csv header: %w", err)
	}
	for i := range res.Freq {
		for j, c := range cols {
			row[j] = cell(c.values[i], -1, "")
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flushing csv: %w", err)
	}
	return nil
}

// JSON writes the full Results record, indented.
func JSON(w io.Writer, res *sim.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("export: encoding json: %w", err)
	}
	return nil
}
