package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrFetchFailed     = errors.New("no se pudo obtener el CSV de origen")
	ErrSchemaMismatch  = errors.New("el CSV no tiene las columnas esperadas")
	ErrInvalidFilter   = errors.New("filtro inválido")
	ErrHistoryDisabled = errors.New("historial de KPIs deshabilitado")
)
