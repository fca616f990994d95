package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SnapshotKPI conteos de un snapshot cargado correctamente.
type SnapshotKPI struct {
	SnapshotID uuid.UUID
	LoadedAt   time.Time
	Total      int
	OK         int
	Warning    int
	Error      int
	NoData     int
}

// SnapshotRepository historial de KPIs por recarga.
type SnapshotRepository interface {
	// Save agrega los KPIs de un snapshot. Guardar dos veces el mismo SnapshotID no duplica.
	Save(ctx context.Context, kpi SnapshotKPI) error
	// ListRecent devuelve hasta limit registros, del más reciente al más antiguo.
	ListRecent(ctx context.Context, limit int) ([]SnapshotKPI, error)
}
