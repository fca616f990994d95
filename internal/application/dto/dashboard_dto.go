package dto

import "time"

// DashboardRequest filtros de la tabla principal (query string).
type DashboardRequest struct {
	AWB    string `query:"awb"`    // subcadena del AWB, sensible a mayúsculas
	Status string `query:"status"` // ALL | OK | WARNING | ERROR (vacío = ALL)
}

// HistoryRequest parámetros de GET /api/dashboard/history.
type HistoryRequest struct {
	Limit int `query:"limit"`
}

// KPIDTO contadores del snapshot completo (no dependen de los filtros).
type KPIDTO struct {
	TotalAWB int `json:"total_awb"`
	OK       int `json:"ok"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
	NoData   int `json:"no_data"`
}

// TableDTO tabla proyectada: columnas presentes en orden fijo y filas como mapas.
type TableDTO struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Count   int              `json:"count"`
}

// SnapshotInfoDTO metadatos del snapshot servido.
type SnapshotInfoDTO struct {
	ID            string     `json:"id,omitempty"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
	NextRefreshAt *time.Time `json:"next_refresh_at,omitempty"`
}

// SummaryDTO respuesta de GET /api/dashboard/summary y POST /api/dashboard/refresh.
type SummaryDTO struct {
	KPIs     KPIDTO          `json:"kpis"`
	Snapshot SnapshotInfoDTO `json:"snapshot"`
	Message  string          `json:"message,omitempty"` // error de carga visible al usuario
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	KPIs     KPIDTO          `json:"kpis"`
	Filters  DashboardFilter `json:"filters"`
	Table    TableDTO        `json:"table"`
	Errors   TableDTO        `json:"errors"` // solo ERROR, sobre el conjunto completo
	Snapshot SnapshotInfoDTO `json:"snapshot"`
	Message  string          `json:"message,omitempty"`
}

// DashboardFilter filtros efectivamente aplicados.
type DashboardFilter struct {
	AWB    string `json:"awb"`
	Status string `json:"status"`
}

// SnapshotKPIDTO una entrada del historial de KPIs.
type SnapshotKPIDTO struct {
	SnapshotID string    `json:"snapshot_id"`
	LoadedAt   time.Time `json:"loaded_at"`
	KPIDTO
}
