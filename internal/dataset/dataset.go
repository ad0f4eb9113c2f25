// Package dataset reads the tab separated tables the clustering commands work on.
//
// The first line holds the column names after an ignored first cell. Every
// following line holds a row name followed by the row's values.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mawngo/pcluster/internal/matrix"
)

type Table struct {
	RowNames []string
	ColNames []string
	Data     matrix.Matrix
}

// Read parses a table from r. The returned Data is always a valid matrix.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header line", matrix.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", matrix.ErrInvalidInput, err)
	}

	t := &Table{ColNames: trim(header[1:])}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", matrix.ErrInvalidInput, err)
		}

		row := make([]float64, len(record)-1)
		for i, cell := range record[1:] {
			row[i], err = strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				line, _ := cr.FieldPos(i + 1)
				return nil, fmt.Errorf("%w: line %d: %w", matrix.ErrInvalidInput, line, err)
			}
		}
		t.RowNames = append(t.RowNames, strings.TrimSpace(record[0]))
		t.Data = append(t.Data, row)
	}

	if err := t.Data.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadFile reads the table stored at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

func trim(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
