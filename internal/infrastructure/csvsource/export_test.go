package csvsource

// MaxBodyBytes expone el límite por defecto a los tests del paquete.
const MaxBodyBytes = maxBodyBytes

// SetMaxBytes reduce el límite del cuerpo para probar el corte sin servir 32 MiB.
func SetMaxBytes(l *Loader, n int64) { l.maxBytes = n }
