package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AngelCh415/bookings-analysis/internal/config"
	"github.com/AngelCh415/bookings-analysis/internal/ingest"
	"github.com/AngelCh415/bookings-analysis/internal/metrics"
	"github.com/AngelCh415/bookings-analysis/internal/models"
	"github.com/AngelCh415/bookings-analysis/internal/observability"
	"github.com/AngelCh415/bookings-analysis/internal/utils"
)

type Deps struct {
	Log      *slog.Logger
	Cfg      config.Config
	Loader   *ingest.Loader
	Exporter *ingest.Exporter
	Metrics  *metrics.Service
	Obs      *observability.Metrics
}

type handlers struct{ Deps }

func NewRouter(d Deps) http.Handler {
	h := handlers{d}
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))
	mux.Use(utils.Instrument(d.Obs))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", d.Obs.Handler())

	mux.Post("/upload", h.upload)
	mux.Post("/ingest/run", h.ingestURL)
	// destino de "redirect" tras /upload: opciones de filtro de la sesión
	mux.Get("/dashboard", h.filters)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/filters", h.filters)
		r.Get("/data", h.dataQuery)
		r.Post("/data", h.dataJSON)
	})
	mux.Post("/export/run", h.export)

	return mux
}

func (h handlers) upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.Cfg.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		case errors.Is(err, http.ErrMissingFile):
			writeError(w, http.StatusBadRequest, "No file provided")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	defer file.Close()

	if hdr.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	loaded, err := h.Loader.LoadReader(hdr.Filename, file, "upload")
	if err != nil {
		writeLoadError(w, err)
		return
	}
	setSession(w, loaded.ID, h.Cfg.DatasetTTL, h.Cfg.CookieSecure)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"dataset_id": loaded.ID,
		"row_count":  loaded.Rows,
		"redirect":   "/dashboard",
	})
}

func (h handlers) ingestURL(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("url")
	if src == "" && h.Cfg.SourceURL == "" {
		writeError(w, http.StatusBadRequest, "url required")
		return
	}
	loaded, err := h.Loader.LoadURL(r.Context(), src)
	if err != nil {
		var se *ingest.SchemaError
		if errors.As(err, &se) || errors.Is(err, ingest.ErrNotCSV) {
			writeLoadError(w, err)
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	setSession(w, loaded.ID, h.Cfg.DatasetTTL, h.Cfg.CookieSecure)
	writeJSON(w, http.StatusAccepted, loaded)
}

func (h handlers) filters(w http.ResponseWriter, r *http.Request) {
	f, err := h.Metrics.Filters(datasetID(r))
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"filters": f})
}

func (h handlers) dataQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.respondData(w, r, metrics.SelectionFromQuery(q), metrics.PageFromQuery(q))
}

func (h handlers) dataJSON(w http.ResponseWriter, r *http.Request) {
	sel, err := decodeSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondData(w, r, sel, metrics.PageFromQuery(r.URL.Query()))
}

func (h handlers) respondData(w http.ResponseWriter, r *http.Request, sel models.Selection, page metrics.Page) {
	res, err := h.Metrics.Query(datasetID(r), sel, page)
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h handlers) export(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Metrics.Dataset(datasetID(r))
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	sel, err := decodeSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := h.Exporter.Export(r.Context(), ds, sel)
	if err != nil {
		if errors.Is(err, ingest.ErrSinkNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exported": n})
}

// body vacío = sin filtros
func decodeSelection(r *http.Request) (models.Selection, error) {
	var body map[string][]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid filter body")
	}
	return metrics.SelectionFromMap(body), nil
}

func writeLoadError(w http.ResponseWriter, err error) {
	var se *ingest.SchemaError
	switch {
	case errors.Is(err, ingest.ErrNotCSV):
		writeError(w, http.StatusBadRequest, "Please upload a CSV file")
	case errors.Is(err, ingest.ErrEmptyFile):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &se):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func writeDatasetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metrics.ErrNoDataset):
		writeError(w, http.StatusBadRequest, "No file uploaded")
	case errors.Is(err, metrics.ErrDatasetNotFound):
		writeError(w, http.StatusBadRequest, "File not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
