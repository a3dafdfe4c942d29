package metrics

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AngelCh415/bookings-analysis/internal/bookings"
	"github.com/AngelCh415/bookings-analysis/internal/models"
	"github.com/AngelCh415/bookings-analysis/internal/observability"
	"github.com/AngelCh415/bookings-analysis/internal/store"
)

var (
	ErrNoDataset       = errors.New("no file uploaded")
	ErrDatasetNotFound = errors.New("file not found")
)

// nombres de cada dimensión en request/response del dashboard
var filterKeys = []struct {
	key string
	dim models.Dimension
}{
	{"channels", models.DimChannel},
	{"cets", models.DimCET},
	{"nam_ivs", models.DimNAMIV},
	{"segments", models.DimSegment},
	{"gtm_tactics", models.DimGTMTacticName},
	{"close_quarters", models.DimCloseQuarter},
	{"close_halves", models.DimCloseHalf},
}

type Service struct {
	st  *store.MemoryStore
	obs *observability.Metrics
}

func NewService(st *store.MemoryStore, obs *observability.Metrics) *Service {
	return &Service{st: st, obs: obs}
}

type Page struct {
	Limit  int
	Offset int
}

func (s *Service) Dataset(id string) (store.Dataset, error) {
	if id == "" {
		return store.Dataset{}, ErrNoDataset
	}
	ds, ok := s.st.Get(id)
	if !ok {
		return store.Dataset{}, ErrDatasetNotFound
	}
	return ds, nil
}

func (s *Service) Filters(id string) (map[string][]string, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return nil, err
	}
	opts := bookings.Options(ds.Table)
	out := make(map[string][]string, len(filterKeys))
	for _, fk := range filterKeys {
		out[fk.key] = opts[fk.dim]
	}
	return out, nil
}

// RowCount es siempre el total filtrado; page sólo recorta las filas.
func (s *Service) Query(id string, sel models.Selection, page Page) (bookings.Result, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return bookings.Result{}, err
	}
	start := time.Now()
	res := bookings.Evaluate(ds.Table, sel)
	s.obs.EvaluateDuration.Observe(time.Since(start).Seconds())

	if page.Limit > 0 || page.Offset > 0 {
		limit, offset := clampLimitOffset(page.Limit, page.Offset, len(res.Rows))
		res.Rows = paginate(res.Rows, limit, offset)
	}
	return res, nil
}

func SelectionFromMap(m map[string][]string) models.Selection {
	sel := models.Selection{}
	for _, fk := range filterKeys {
		if vals := m[fk.key]; len(vals) > 0 {
			sel[fk.dim] = vals
		}
	}
	return sel
}

// ?channels=Direct,Partner&close_halves=H1
func SelectionFromQuery(v url.Values) models.Selection {
	m := map[string][]string{}
	for _, fk := range filterKeys {
		for _, raw := range v[fk.key] {
			m[fk.key] = append(m[fk.key], csvList(raw)...)
		}
	}
	return SelectionFromMap(m)
}

func PageFromQuery(v url.Values) Page {
	return Page{Limit: atoiDef(v.Get("limit"), 0), Offset: atoiDef(v.Get("offset"), 0)}
}

func csvList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	} // tope sano
	if offset > n {
		offset = n
	}
	return limit, offset
}
