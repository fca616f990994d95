package entity

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot resultado inmutable de un ciclo de carga del CSV.
// Un snapshot fallido tiene Rows vacío y Err/Message con la causa.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time
	Rows     RowSet
	Err      error
	Message  string
}

// Failed indica si la carga terminó en error.
func (s Snapshot) Failed() bool { return s.Err != nil }

// FailedSnapshot construye el snapshot vacío que se entrega cuando falla la carga.
func FailedSnapshot(err error, at time.Time) Snapshot {
	return Snapshot{
		LoadedAt: at,
		Err:      err,
		Message:  "No se pudieron cargar los datos: " + err.Error(),
	}
}
