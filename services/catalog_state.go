package services

import (
	"estoque-console/models"
)

// CatalogState is the catalog page: either a categorical filter or a free-text
// search (never both), the last loaded list and the keys of mutations in flight.
// Generation increases with every new query; loads tagged with an older
// generation are discarded. Searches run over Products when it holds a current
// unfiltered list.
type CatalogState struct {
	Mode         models.CatalogMode
	Filter       models.CatalogFilter
	Term         string
	Generation   uint64
	Loading      bool
	Loaded       bool
	LoadedFilter models.CatalogFilter
	Products     []models.Product
	Visible      []models.Product
	LastError    string
	InFlight     map[string]struct{}
}

type CatalogAction interface {
	catalogAction()
}

type SelectFilter struct {
	Filter models.CatalogFilter
}

type ChangeSearch struct {
	Term string
}

type CatalogLoaded struct {
	Generation uint64
	Products   []models.Product
}

type CatalogLoadFailed struct {
	Generation uint64
	Message    string
}

// CatalogInvalidated marks the loaded list out of date after a stock change.
// Loads already in flight become stale.
type CatalogInvalidated struct{}

type MutationStarted struct {
	Key string
}

type MutationFinished struct {
	Key string
}

func (SelectFilter) catalogAction()       {}
func (ChangeSearch) catalogAction()       {}
func (CatalogLoaded) catalogAction()      {}
func (CatalogLoadFailed) catalogAction()  {}
func (CatalogInvalidated) catalogAction() {}
func (MutationStarted) catalogAction()    {}
func (MutationFinished) catalogAction()   {}

func ReduceCatalog(state CatalogState, action CatalogAction) (CatalogState, error) {
	next := state
	switch a := action.(type) {
	case SelectFilter:
		next.Generation++
		next.Loading = true
		next.LastError = ""
		next.Term = ""
		next.Filter = a.Filter
		next.Mode = models.CatalogModeFilter
		if a.Filter == models.FilterNone {
			next.Mode = models.CatalogModeAll
		}
		return next, nil

	case ChangeSearch:
		next.Generation++
		next.Loading = true
		next.LastError = ""
		next.Filter = models.FilterNone
		next.Term = a.Term
		next.Mode = models.CatalogModeSearch
		if a.Term == "" {
			next.Mode = models.CatalogModeAll
		}
		if state.HasFullList() {
			next.Loading = false
			next.Visible = models.SearchProducts(state.Products, a.Term)
		}
		return next, nil

	case CatalogLoaded:
		if a.Generation != state.Generation {
			return state, ErrStaleResult
		}
		next.Loading = false
		next.LastError = ""
		next.Loaded = true
		next.LoadedFilter = state.Filter
		next.Products = a.Products
		if state.Mode == models.CatalogModeFilter {
			next.Visible = a.Products
		} else {
			next.Visible = models.SearchProducts(a.Products, state.Term)
		}
		return next, nil

	case CatalogLoadFailed:
		if a.Generation != state.Generation {
			return state, ErrStaleResult
		}
		next.Loading = false
		next.LastError = a.Message
		return next, nil

	case CatalogInvalidated:
		next.Generation++
		next.Loaded = false
		return next, nil

	case MutationStarted:
		if _, busy := state.InFlight[a.Key]; busy {
			return state, ErrOperationInFlight
		}
		next.InFlight = copyKeys(state.InFlight)
		next.InFlight[a.Key] = struct{}{}
		return next, nil

	case MutationFinished:
		next.InFlight = copyKeys(state.InFlight)
		delete(next.InFlight, a.Key)
		return next, nil
	}
	return state, nil
}

// HasFullList reports whether Products is a current unfiltered list that a
// search can run over without fetching.
func (s CatalogState) HasFullList() bool {
	return s.Loaded && s.LoadedFilter == models.FilterNone
}

// IsBusy reports whether a mutation for key is in flight.
func (s CatalogState) IsBusy(key string) bool {
	_, busy := s.InFlight[key]
	return busy
}

func (s CatalogState) View() models.CatalogView {
	visible := s.Visible
	if visible == nil {
		visible = []models.Product{}
	}
	return models.CatalogView{
		Mode:      s.Mode,
		Filter:    s.Filter,
		Term:      s.Term,
		Products:  visible,
		NoResults: s.Mode == models.CatalogModeSearch && len(visible) == 0,
	}
}

func copyKeys(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src)+1)
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}
