package aggregation

import (
	"sort"
	"strings"

	"burgerpos/internal/models"
)

// FilterCatalog keeps products whose name contains query (case-insensitive) and whose category
// matches. An empty category, "All" or "Todas" matches every category. The result is ordered by
// category display order, then by name.
func FilterCatalog(products []models.Product, query string, category string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	var want models.Category
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "", "all", "todas":
	default:
		c, ok := models.ParseCategory(category)
		if !ok {
			return []models.Product{}
		}
		want = c
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if want != "" && p.Category != want {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Category.Rank(), out[j].Category.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
