package clock

import "time"

// Clock fuente de tiempo inyectable (TTL de caché, marcas de carga).
type Clock interface {
	Now() time.Time
}

// RealClock devuelve la hora actual en UTC.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
