package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/bookings-analysis/internal/config"
	"github.com/AngelCh415/bookings-analysis/internal/observability"
	"github.com/AngelCh415/bookings-analysis/internal/store"
)

func newTestLoader(cfg config.Config) (*Loader, *store.MemoryStore, *observability.Metrics) {
	st := store.NewMemoryStore(time.Hour, 10)
	obs := observability.NewMetrics()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := NewLoader(NewHTTPClient(time.Second), st, log, obs, cfg).WithBackoff(fastBackoff())
	return l, st, obs
}

func TestLoadReader_EnrichesAndStores(t *testing.T) {
	l, st, obs := newTestLoader(config.Defaults())

	got, err := l.LoadReader("pipeline.csv", strings.NewReader(sampleCSV), "upload")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rows)
	assert.Equal(t, "pipeline.csv", got.Name)

	ds, ok := st.Get(got.ID)
	require.True(t, ok)
	assert.Equal(t, 150.0, ds.Table[0].Bookings)
	assert.Equal(t, "H1", ds.Table[0].CloseHalf)
	assert.Equal(t, 160.0, ds.Table[1].ExpectedBookings)
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.DatasetsLoaded.WithLabelValues("upload")))
}

func TestLoadReader_RejectsNonCSVName(t *testing.T) {
	l, st, _ := newTestLoader(config.Defaults())
	_, err := l.LoadReader("pipeline.xlsx", strings.NewReader(sampleCSV), "upload")
	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Equal(t, 0, st.Len())
}

func TestLoadReader_SchemaErrorNotStored(t *testing.T) {
	l, st, obs := newTestLoader(config.Defaults())
	_, err := l.LoadReader("bad.csv", strings.NewReader("Customer,Channel\nA,B\n"), "upload")
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.SchemaRejections))
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "deals.csv")
	require.NoError(t, os.WriteFile(p, []byte(sampleCSV), 0o600))

	l, _, _ := newTestLoader(config.Defaults())
	got, err := l.LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "deals.csv", got.Name)
	assert.Equal(t, 2, got.Rows)
}

func TestLoadURL_UsesConfiguredSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	cfg := config.Defaults()
	cfg.SourceURL = srv.URL + "/exports/deals.csv?token=x"
	l, st, _ := newTestLoader(cfg)

	got, err := l.LoadURL(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "deals.csv", got.Name)
	assert.Equal(t, 1, st.Len())
}
