package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// CatalogFilter is a server-applied predicate, sent as ?filtro=.
type CatalogFilter string

const (
	FilterNone         CatalogFilter = ""
	FilterExpired      CatalogFilter = "VENCIDOS"
	FilterExpiringSoon CatalogFilter = "VENCENDO"
	FilterLowStock     CatalogFilter = "BAIXO_ESTOQUE"
	FilterOutOfStock   CatalogFilter = "SEM_ESTOQUE"
)

var catalogFilters = []CatalogFilter{FilterExpired, FilterExpiringSoon, FilterLowStock, FilterOutOfStock}

func ParseCatalogFilter(s string) (CatalogFilter, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FilterNone, true
	}
	for _, f := range catalogFilters {
		if strings.EqualFold(string(f), s) {
			return f, true
		}
	}
	return FilterNone, false
}

type CatalogMode string

const (
	CatalogModeAll    CatalogMode = "todos"
	CatalogModeFilter CatalogMode = "filtro"
	CatalogModeSearch CatalogMode = "busca"
)

// CatalogView is what the catalog page displays after filtering or searching.
type CatalogView struct {
	Mode      CatalogMode   `json:"modo"`
	Filter    CatalogFilter `json:"filtro,omitempty"`
	Term      string        `json:"busca,omitempty"`
	Products  []Product     `json:"produtos"`
	NoResults bool          `json:"semResultados"`
}

// SearchProducts matches term as a substring of name, brand or category,
// ignoring case but not accents; any one field matching is enough. An empty
// term returns every product.
func SearchProducts(products []Product, term string) []Product {
	needle := foldCase(strings.TrimSpace(term))
	if needle == "" {
		out := make([]Product, len(products))
		copy(out, products)
		return out
	}

	out := []Product{}
	for _, p := range products {
		if strings.Contains(foldCase(p.Name), needle) ||
			strings.Contains(foldCase(p.Brand), needle) ||
			strings.Contains(foldCase(string(p.Category)), needle) ||
			strings.Contains(foldCase(p.Category.Label()), needle) {
			out = append(out, p)
		}
	}
	return out
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}
