package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/AngelCh415/bookings-analysis/internal/models"
)

var (
	ErrEmptyFile = errors.New("empty file")
	ErrNotCSV    = errors.New("please upload a CSV file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SchemaError: faltan columnas o una celda no corresponde a su tipo.
type SchemaError struct {
	Missing []string
	Line    int
	Column  string
	Value   string
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required columns: " + strings.Join(e.Missing, ", ")
	}
	if e.Column != "" {
		return fmt.Sprintf("line %d: column %q: %s %q", e.Line, e.Column, e.Reason, e.Value)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseCSV sólo llena los campos crudos (los derivados son de bookings.Enrich).
// Numérico vacío = 0, texto vacío se queda vacío.
func ParseCSV(r io.Reader) (models.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, f := range models.RequiredColumns {
		if _, ok := idx[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var t models.Table
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &SchemaError{Line: line, Reason: err.Error()}
		}
		line, _ := reader.FieldPos(0)

		var o models.Opportunity
		for _, f := range models.RequiredColumns {
			raw := row[idx[f.Name]]
			if f.Type == models.FieldText {
				o.Assign(f.Name, raw, 0)
				continue
			}
			num, err := parseNumber(raw)
			if err != nil {
				return nil, &SchemaError{Line: line, Column: f.Name, Value: raw, Reason: "invalid " + f.Type.String() + " value"}
			}
			o.Assign(f.Name, "", num)
		}
		t = append(t, o)
	}
	return t, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("non-finite")
	}
	return f, nil
}
