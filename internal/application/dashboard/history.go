package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/reconciliation"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/repository"
	"github.com/jhoicas/awb-weight-dashboard/pkg/logger"
)

// historySaveTimeout tope de cada escritura del historial.
const historySaveTimeout = 5 * time.Second

// HistoryRecorder guarda los KPIs de cada recarga exitosa.
// Su método Record se registra como hook de la caché del loader.
type HistoryRecorder struct {
	repo repository.SnapshotRepository
	log  *logger.Logger
}

// NewHistoryRecorder construye el recorder.
func NewHistoryRecorder(repo repository.SnapshotRepository, log *logger.Logger) *HistoryRecorder {
	if log == nil {
		log = logger.Nop()
	}
	return &HistoryRecorder{repo: repo, log: log.Component("history")}
}

// Record calcula los KPIs del snapshot y los persiste. Un error solo se registra:
// el historial nunca bloquea el dashboard.
func (h *HistoryRecorder) Record(ctx context.Context, snap entity.Snapshot) {
	if snap.Failed() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, historySaveTimeout)
	defer cancel()

	s := Summarize(reconciliation.Enrich(snap.Rows))
	err := h.repo.Save(ctx, repository.SnapshotKPI{
		SnapshotID: snap.ID,
		LoadedAt:   snap.LoadedAt,
		Total:      s.Total,
		OK:         s.OK,
		Warning:    s.Warning,
		Error:      s.Error,
		NoData:     s.NoData,
	})
	if err != nil {
		h.log.Error().Err(err).Str("snapshot_id", snap.ID.String()).Msg("guardar KPIs del snapshot")
	}
}
