package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/AngelCh415/bookings-analysis/internal/bookings"
	"github.com/AngelCh415/bookings-analysis/internal/config"
	"github.com/AngelCh415/bookings-analysis/internal/observability"
	"github.com/AngelCh415/bookings-analysis/internal/store"
	"github.com/AngelCh415/bookings-analysis/internal/utils"
)

type Loaded struct {
	ID   string `json:"dataset_id"`
	Name string `json:"name"`
	Rows int    `json:"row_count"`
}

type Loader struct {
	c       HTTPClient
	st      *store.MemoryStore
	log     *slog.Logger
	obs     *observability.Metrics
	cfg     config.Config
	backoff utils.Backoff
}

func NewLoader(c HTTPClient, st *store.MemoryStore, log *slog.Logger, obs *observability.Metrics, cfg config.Config) *Loader {
	return &Loader{c: c, st: st, log: log, obs: obs, cfg: cfg, backoff: utils.NewBackoff(100*time.Millisecond, 2)}
}

func (l *Loader) WithBackoff(b utils.Backoff) *Loader {
	l.backoff = b
	return l
}

// un error de esquema rechaza el archivo completo
func (l *Loader) LoadReader(name string, r io.Reader, source string) (Loaded, error) {
	if !IsCSVName(name) {
		return Loaded{}, ErrNotCSV
	}
	raw, err := ParseCSV(r)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			l.obs.SchemaRejections.Inc()
		}
		l.log.Warn("dataset rejected", slog.String("name", name), slog.String("source", source), slog.String("err", err.Error()))
		return Loaded{}, err
	}
	t := bookings.Enrich(raw)
	id := l.st.Put(name, t)

	l.obs.DatasetsLoaded.WithLabelValues(source).Inc()
	l.obs.RowsLoaded.Observe(float64(len(t)))
	l.log.Info("dataset loaded", slog.String("dataset_id", id), slog.String("name", name), slog.String("source", source), slog.Int("rows", len(t)))
	return Loaded{ID: id, Name: name, Rows: len(t)}, nil
}

func (l *Loader) LoadFile(p string) (Loaded, error) {
	f, err := os.Open(p)
	if err != nil {
		return Loaded{}, fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()
	return l.LoadReader(filepath.Base(p), f, "file")
}

// url vacía -> cfg.SourceURL
func (l *Loader) LoadURL(ctx context.Context, url string) (Loaded, error) {
	if url == "" {
		url = l.cfg.SourceURL
	}
	data, err := fetch(ctx, l.c, l.backoff, url, l.cfg.MaxUploadBytes)
	if err != nil {
		l.log.Error("fetch failed", slog.String("url", url), slog.String("err", err.Error()))
		return Loaded{}, err
	}
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	return l.LoadReader(name, bytes.NewReader(data), "url")
}

func IsCSVName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}
