package bookings

import (
	"sort"

	"github.com/AngelCh415/bookings-analysis/internal/models"
)

// AND entre dimensiones, OR dentro de cada una; conserva el orden.
func Filter(t models.Table, sel models.Selection) models.Table {
	if sel.IsEmpty() {
		out := make(models.Table, len(t))
		copy(out, t)
		return out
	}
	sets := make(map[models.Dimension]map[string]struct{}, len(sel))
	for dim, allowed := range sel {
		if len(allowed) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(allowed))
		for _, v := range allowed {
			set[v] = struct{}{}
		}
		sets[dim] = set
	}

	out := make(models.Table, 0, len(t))
	for _, o := range t {
		if matches(o, sets) {
			out = append(out, o)
		}
	}
	return out
}

func matches(o models.Opportunity, sets map[models.Dimension]map[string]struct{}) bool {
	for dim, set := range sets {
		if _, ok := set[dim.Value(o)]; !ok {
			return false
		}
	}
	return true
}

// valores distintos no vacíos, ordenados
func AvailableValues(t models.Table, d models.Dimension) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, o := range t {
		v := d.Value(o)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func Options(t models.Table) map[models.Dimension][]string {
	out := make(map[models.Dimension][]string, len(models.Dimensions))
	for _, d := range models.Dimensions {
		out[d] = AvailableValues(t, d)
	}
	return out
}
