package ingest

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AngelCh415/bookings-analysis/internal/bookings"
	"github.com/AngelCh415/bookings-analysis/internal/config"
	"github.com/AngelCh415/bookings-analysis/internal/models"
	"github.com/AngelCh415/bookings-analysis/internal/observability"
	"github.com/AngelCh415/bookings-analysis/internal/store"
)

var ErrSinkNotConfigured = errors.New("sink not configured")

type exportPayload struct {
	DatasetID  string           `json:"dataset_id"`
	Name       string           `json:"name"`
	ExportedAt time.Time        `json:"exported_at"`
	Selection  models.Selection `json:"selection"`
	bookings.Result
}

// Exporter firma el body con HMAC-SHA256 en X-Signature.
type Exporter struct {
	c   HTTPClient
	cfg config.Config
	obs *observability.Metrics
	now func() time.Time
}

func NewExporter(c HTTPClient, cfg config.Config, obs *observability.Metrics) *Exporter {
	return &Exporter{c: c, cfg: cfg, obs: obs, now: time.Now}
}

// sin filas no se envía nada
func (e *Exporter) Export(ctx context.Context, ds store.Dataset, sel models.Selection) (int, error) {
	if e.cfg.SinkURL == "" || e.cfg.SinkSecret == "" {
		return 0, ErrSinkNotConfigured
	}
	res := bookings.Evaluate(ds.Table, sel)
	if res.RowCount == 0 {
		e.obs.Exports.WithLabelValues("empty").Inc()
		return 0, nil
	}
	b, err := json.Marshal(exportPayload{
		DatasetID:  ds.ID,
		Name:       ds.Name,
		ExportedAt: e.now().UTC(),
		Selection:  sel,
		Result:     res,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal export: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.SinkURL, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", Sign(e.cfg.SinkSecret, b))
	resp, err := e.c.Do(req)
	if err != nil {
		e.obs.Exports.WithLabelValues("error").Inc()
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e.obs.Exports.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("export sink non-2xx: %d", resp.StatusCode)
	}
	e.obs.Exports.WithLabelValues("ok").Inc()
	return res.RowCount, nil
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
