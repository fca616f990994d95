package entity

// Column nombre canónico de una columna del reporte.
type Column string

const (
	ColumnAWB               Column = "awb"
	ColumnParcelNet         Column = "parcel_net"
	ColumnBoxWeight         Column = "box_weight"
	ColumnGrossWeight       Column = "gross_weight"
	ColumnCalculatedTotal   Column = "calculated_total"
	ColumnDifference        Column = "difference"
	ColumnDifferencePercent Column = "difference_percent"
	ColumnStatus            Column = "status"
)

// Columns orden fijo de columnas candidatas para la tabla principal.
var Columns = []Column{
	ColumnAWB,
	ColumnParcelNet,
	ColumnBoxWeight,
	ColumnGrossWeight,
	ColumnCalculatedTotal,
	ColumnDifference,
	ColumnDifferencePercent,
	ColumnStatus,
}

// ParseColumn reconoce un nombre de columna canónico.
func ParseColumn(name string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// Schema conjunto inmutable de columnas presentes en un RowSet.
type Schema uint16

// NewSchema construye un esquema con las columnas dadas.
func NewSchema(cols ...Column) Schema {
	var s Schema
	for _, c := range cols {
		s = s.With(c)
	}
	return s
}

func columnBit(c Column) Schema {
	for i, known := range Columns {
		if known == c {
			return 1 << uint(i)
		}
	}
	return 0
}

// Has indica si la columna está presente.
func (s Schema) Has(c Column) bool {
	bit := columnBit(c)
	return bit != 0 && s&bit != 0
}

// With devuelve un esquema que además incluye c.
func (s Schema) With(c Column) Schema { return s | columnBit(c) }

// Columns devuelve las columnas presentes en el orden de Columns.
func (s Schema) Columns() []Column {
	out := make([]Column, 0, len(Columns))
	for _, c := range Columns {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
