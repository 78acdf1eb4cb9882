package refdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"github.com/rshade/offsetcalc/internal/habitat"
)

// CSV column headers used by the biodiversity metric exports.
const (
	ColHabitat         = "Habitat"
	ColSubtype         = "Subtype"
	ColCarbonStored    = "Carbon stored (t C ha-1)"
	ColCarbonFlux      = "Carbon flux (t CO2e ha-1 y-1 )"
	ColDistinctiveness = "Distinctiveness_score"
	ColDifficulty      = "Difficulty of creation or accelerated succession"

	// ColTimeToTargetPrefix is followed by a condition label, one column per label.
	ColTimeToTargetPrefix = "Time to target condition for habitat creation - "
)

// Supported file encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingCP1252 = "cp1252"
)

// CSVSource names the two CSV files and their encodings.
type CSVSource struct {
	CarbonPath          string
	DistinctivenessPath string

	// CarbonEncoding defaults to cp1252, the encoding of the metric's carbon export.
	CarbonEncoding string

	// DistinctivenessEncoding defaults to utf-8.
	DistinctivenessEncoding string
}

// LoadCSV reads both CSV files concurrently and returns the indexed tables.
func LoadCSV(ctx context.Context, src CSVSource) (*Tables, error) {
	var (
		carbon   []habitat.CarbonRow
		distinct []habitat.DistinctivenessRow
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := readCSVFile(ctx, src.CarbonPath, defaultString(src.CarbonEncoding, EncodingCP1252), ReadCarbonCSV)
		carbon = rows
		return err
	})
	g.Go(func() error {
		rows, err := readCSVFile(
			ctx, src.DistinctivenessPath, defaultString(src.DistinctivenessEncoding, EncodingUTF8), ReadDistinctivenessCSV)
		distinct = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewTables(carbon, distinct)
}

func readCSVFile[T any](
	ctx context.Context,
	path, encoding string,
	parse func(io.Reader) ([]T, error),
) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := decodeReader(f, encoding)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	rows, err := parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// decodeReader wraps r so it yields UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingCP1252, "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// ReadCarbonCSV parses the carbon table. Columns are located by header name.
func ReadCarbonCSV(r io.Reader) ([]habitat.CarbonRow, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols, err := locate(header, ColHabitat, ColSubtype, ColCarbonStored, ColCarbonFlux)
	if err != nil {
		return nil, err
	}

	rows := make([]habitat.CarbonRow, 0, len(records))
	for i, rec := range records {
		line := i + 2
		stored, err := parseFloat(rec[cols[ColCarbonStored]], line, ColCarbonStored)
		if err != nil {
			return nil, err
		}
		flux, err := parseFloat(rec[cols[ColCarbonFlux]], line, ColCarbonFlux)
		if err != nil {
			return nil, err
		}
		rows = append(rows, habitat.CarbonRow{
			Category:       habitat.Category(strings.TrimSpace(rec[cols[ColHabitat]])),
			Subtype:        strings.TrimSpace(rec[cols[ColSubtype]]),
			StoredTonnesC:  stored,
			FluxTonnesCO2e: flux,
		})
	}
	return rows, nil
}

// ReadDistinctivenessCSV parses the distinctiveness table, including one
// time-to-target column per condition label. Blank time-to-target cells are
// left out of the row so that lookups for that condition fail.
func ReadDistinctivenessCSV(r io.Reader) ([]habitat.DistinctivenessRow, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols, err := locate(header, ColHabitat, ColSubtype, ColDistinctiveness, ColDifficulty)
	if err != nil {
		return nil, err
	}

	timeCols := make(map[habitat.Condition]int)
	for i, h := range header {
		name := strings.TrimSpace(h)
		if label, ok := strings.CutPrefix(name, strings.TrimSpace(ColTimeToTargetPrefix)); ok {
			if c, known := habitat.ParseCondition(label); known {
				timeCols[c] = i
			}
		}
	}

	rows := make([]habitat.DistinctivenessRow, 0, len(records))
	for i, rec := range records {
		line := i + 2
		score, err := parseFloat(rec[cols[ColDistinctiveness]], line, ColDistinctiveness)
		if err != nil {
			return nil, err
		}
		difficulty, err := parseFloat(rec[cols[ColDifficulty]], line, ColDifficulty)
		if err != nil {
			return nil, err
		}

		times := make(map[habitat.Condition]float64, len(timeCols))
		for label, col := range timeCols {
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				continue
			}
			v, err := parseFloat(cell, line, ColTimeToTargetPrefix+string(label))
			if err != nil {
				return nil, err
			}
			times[label] = v
		}

		rows = append(rows, habitat.DistinctivenessRow{
			Category:     habitat.Category(strings.TrimSpace(rec[cols[ColHabitat]])),
			Subtype:      strings.TrimSpace(rec[cols[ColSubtype]]),
			Score:        int(score),
			Difficulty:   difficulty,
			TimeToTarget: times,
		})
	}
	return rows, nil
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, records, nil
}

func locate(header []string, names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	for i, h := range header {
		for _, name := range names {
			if strings.TrimSpace(h) == strings.TrimSpace(name) {
				cols[name] = i
			}
		}
	}
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func parseFloat(cell string, line int, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: line %d column %q: %q", ErrMalformedValue, line, column, cell)
	}
	return v, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
