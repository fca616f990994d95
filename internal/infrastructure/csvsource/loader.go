// Package csvsource carga el reporte de pesos desde el export CSV remoto
// (Google Sheets) y lo mantiene en una caché con TTL.
package csvsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
	"github.com/jhoicas/awb-weight-dashboard/pkg/logger"
)

// maxBodyBytes límite de lectura del CSV remoto.
const maxBodyBytes = 32 << 20

// Loader descarga el CSV por HTTP GET y lo normaliza con Parse.
type Loader struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
	maxBytes   int64
}

// NewLoader construye el loader. timeout acota la petición completa (conexión + cuerpo).
func NewLoader(url string, timeout time.Duration, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("csvsource"),
		maxBytes:   maxBodyBytes,
	}
}

// Load descarga y parsea el CSV. Los errores van envueltos en
// domain.ErrFetchFailed o domain.ErrSchemaMismatch.
func (l *Loader) Load(ctx context.Context) (entity.RowSet, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return entity.RowSet{}, fmt.Errorf("%w: crear petición: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return entity.RowSet{}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return entity.RowSet{}, fmt.Errorf("%w: HTTP %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	if resp.ContentLength > l.maxBytes {
		return entity.RowSet{}, fmt.Errorf("%w: CSV excede %d bytes (Content-Length %d)",
			domain.ErrFetchFailed, l.maxBytes, resp.ContentLength)
	}

	result, err := Parse(&cappedReader{r: resp.Body, remaining: l.maxBytes, limit: l.maxBytes})
	if err != nil {
		return entity.RowSet{}, err
	}

	if result.UnknownStatuses > 0 {
		l.log.Warn().
			Int("rows", result.UnknownStatuses).
			Msg("etiquetas de status desconocidas cargadas como NO DATA")
	}
	l.log.Info().
		Str("schema", string(result.Kind)).
		Int("rows", result.Rows.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("CSV cargado")

	return result.Rows, nil
}

// cappedReader corta la lectura con error si el cuerpo supera limit bytes.
// Un cuerpo truncado nunca llega al parser como si estuviera completo.
type cappedReader struct {
	r         io.Reader
	remaining int64
	limit     int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		var probe [1]byte
		n, err := c.r.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("CSV excede %d bytes", c.limit)
		}
		return 0, err
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	return n, err
}
