package entity

import (
	"github.com/shopspring/decimal"
)

// Status clasificación de la discrepancia de peso de una guía (AWB).
type Status string

const (
	StatusOK      Status = "OK"
	StatusWarning Status = "WARNING"
	StatusError   Status = "ERROR"
	StatusNoData  Status = "NO DATA"
)

// Statuses lista los cuatro estados válidos en orden de severidad.
var Statuses = []Status{StatusOK, StatusWarning, StatusError, StatusNoData}

// ParseStatus reconoce una etiqueta de estado exacta (sensible a mayúsculas).
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Record una fila del reporte de pesos. Los pesos son nulables: un valor
// ausente o no numérico en el CSV queda con Valid=false.
type Record struct {
	AWB               string
	ParcelNet         decimal.NullDecimal
	BoxWeight         decimal.NullDecimal
	GrossWeight       decimal.NullDecimal // peso bruto medido
	CalculatedTotal   decimal.NullDecimal // peso esperado calculado
	Difference        decimal.NullDecimal // CalculatedTotal - GrossWeight
	DifferencePercent decimal.NullDecimal
	Status            Status
}

// Number devuelve el valor numérico de una columna de peso.
// Para awb y status (no numéricas) devuelve un NullDecimal inválido.
func (r Record) Number(c Column) decimal.NullDecimal {
	switch c {
	case ColumnParcelNet:
		return r.ParcelNet
	case ColumnBoxWeight:
		return r.BoxWeight
	case ColumnGrossWeight:
		return r.GrossWeight
	case ColumnCalculatedTotal:
		return r.CalculatedTotal
	case ColumnDifference:
		return r.Difference
	case ColumnDifferencePercent:
		return r.DifferencePercent
	default:
		return decimal.NullDecimal{}
	}
}

// Value devuelve el valor de la columna listo para serializar a JSON:
// string para awb/status, decimal o nil para pesos.
func (r Record) Value(c Column) any {
	switch c {
	case ColumnAWB:
		return r.AWB
	case ColumnStatus:
		return string(r.Status)
	}
	n := r.Number(c)
	if !n.Valid {
		return nil
	}
	return n.Decimal
}

// RowSet conjunto de filas de un ciclo de carga junto con las columnas presentes.
// La presencia de columnas se decide una vez, al cargar; no por fila.
type RowSet struct {
	Schema  Schema
	Records []Record
}

// Len número de filas.
func (rs RowSet) Len() int { return len(rs.Records) }

// Has indica si la columna está presente en el conjunto.
func (rs RowSet) Has(c Column) bool { return rs.Schema.Has(c) }

// WithRecords devuelve un RowSet con el mismo esquema y las filas indicadas.
func (rs RowSet) WithRecords(records []Record) RowSet {
	return RowSet{Schema: rs.Schema, Records: records}
}
