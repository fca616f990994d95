package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
)

// SchemaKind forma detectada del CSV.
type SchemaKind string

const (
	// SchemaShaped el CSV ya viene con columnas nombradas (awb, gross_weight, ...).
	SchemaShaped SchemaKind = "shaped"
	// SchemaRaw export crudo de la hoja: se toman las columnas 3 y 7 por posición.
	SchemaRaw SchemaKind = "raw"
)

// Posiciones (base 0) del export crudo.
const (
	rawAWBIndex         = 2
	rawGrossWeightIndex = 6
)

// ParseResult filas normalizadas más metadatos del parseo.
type ParseResult struct {
	Rows entity.RowSet
	Kind SchemaKind
	// UnknownStatuses celdas de status con etiqueta no reconocida (se cargan como NO DATA).
	UnknownStatuses int
}

// Parse lee un CSV con encabezado y lo normaliza al esquema de Record.
//
// Si el encabezado contiene "awb" se leen las columnas conocidas por nombre.
// Si no, se asume export crudo y se toman las posiciones 2 y 6 como awb y gross_weight.
// Celdas numéricas vacías o inválidas quedan nulas.
func Parse(r io.Reader) (ParseResult, error) {
	// Google Sheets antepone BOM en algunos exports.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ParseResult{}, fmt.Errorf("%w: CSV vacío", domain.ErrSchemaMismatch)
	}
	if err != nil {
		return ParseResult{}, fmt.Errorf("%w: leer encabezado: %w", domain.ErrFetchFailed, err)
	}

	index, kind, err := columnIndex(header)
	if err != nil {
		return ParseResult{}, err
	}

	cols := make([]entity.Column, 0, len(index))
	for c := range index {
		cols = append(cols, c)
	}
	result := ParseResult{Kind: kind}
	result.Rows.Schema = entity.NewSchema(cols...)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		if blank(record) {
			continue
		}

		row, unknown := buildRecord(record, index)
		if unknown {
			result.UnknownStatuses++
		}
		result.Rows.Records = append(result.Rows.Records, row)
	}

	return result, nil
}

// columnIndex decide la forma del CSV y devuelve la posición de cada columna conocida.
func columnIndex(header []string) (map[entity.Column]int, SchemaKind, error) {
	index := make(map[entity.Column]int)
	for i, h := range header {
		col, ok := entity.ParseColumn(strings.ToLower(strings.TrimSpace(h)))
		if !ok {
			continue
		}
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	if _, ok := index[entity.ColumnAWB]; ok {
		return index, SchemaShaped, nil
	}

	if len(header) <= rawGrossWeightIndex {
		return nil, "", fmt.Errorf("%w: sin columna awb y solo %d columnas (se requieren %d)",
			domain.ErrSchemaMismatch, len(header), rawGrossWeightIndex+1)
	}
	return map[entity.Column]int{
		entity.ColumnAWB:         rawAWBIndex,
		entity.ColumnGrossWeight: rawGrossWeightIndex,
	}, SchemaRaw, nil
}

func buildRecord(cells []string, index map[entity.Column]int) (entity.Record, bool) {
	var rec entity.Record
	unknownStatus := false
	for col, i := range index {
		v := cell(cells, i)
		switch col {
		case entity.ColumnAWB:
			rec.AWB = v
		case entity.ColumnStatus:
			st, ok := entity.ParseStatus(strings.ToUpper(v))
			if !ok {
				st = entity.StatusNoData
				unknownStatus = v != ""
			}
			rec.Status = st
		case entity.ColumnParcelNet:
			rec.ParcelNet = parseNumber(v)
		case entity.ColumnBoxWeight:
			rec.BoxWeight = parseNumber(v)
		case entity.ColumnGrossWeight:
			rec.GrossWeight = parseNumber(v)
		case entity.ColumnCalculatedTotal:
			rec.CalculatedTotal = parseNumber(v)
		case entity.ColumnDifference:
			rec.Difference = parseNumber(v)
		case entity.ColumnDifferencePercent:
			rec.DifferencePercent = parseNumber(v)
		}
	}
	return rec, unknownStatus
}

// parseNumber convierte una celda a decimal; vacío o no numérico -> nulo.
func parseNumber(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return strings.TrimSpace(cells[i])
	}
	return ""
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
