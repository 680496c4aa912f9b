package services

import (
	"estoque-console/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceCatalogFilterAndSearchAreExclusive(t *testing.T) {
	state, _ := ReduceCatalog(CatalogState{}, ChangeSearch{Term: "rice"})
	assert.Equal(t, models.CatalogModeSearch, state.Mode)

	state, _ = ReduceCatalog(state, SelectFilter{Filter: models.FilterLowStock})
	assert.Equal(t, models.CatalogModeFilter, state.Mode)
	assert.Empty(t, state.Term)

	state, _ = ReduceCatalog(state, ChangeSearch{Term: "beans"})
	assert.Equal(t, models.FilterNone, state.Filter)
}

func TestReduceCatalogDropsSupersededLoads(t *testing.T) {
	first, _ := ReduceCatalog(CatalogState{}, ChangeSearch{Term: "a"})
	second, _ := ReduceCatalog(first, SelectFilter{Filter: models.FilterExpired})

	_, err := ReduceCatalog(second, CatalogLoaded{Generation: first.Generation, Products: []models.Product{{ID: 1}}})
	assert.ErrorIs(t, err, ErrStaleResult)

	loaded, err := ReduceCatalog(second, CatalogLoaded{Generation: second.Generation, Products: []models.Product{{ID: 2}}})
	require.NoError(t, err)
	assert.False(t, loaded.Loading)
	assert.Equal(t, []models.Product{{ID: 2}}, loaded.View().Products)

	_, err = ReduceCatalog(loaded, CatalogLoadFailed{Generation: first.Generation, Message: "late"})
	assert.ErrorIs(t, err, ErrStaleResult)
}

func TestReduceCatalogInFlightSet(t *testing.T) {
	state, err := ReduceCatalog(CatalogState{}, MutationStarted{Key: "product:1"})
	require.NoError(t, err)
	state, err = ReduceCatalog(state, MutationStarted{Key: "product:2"})
	require.NoError(t, err)

	_, err = ReduceCatalog(state, MutationStarted{Key: "product:1"})
	assert.ErrorIs(t, err, ErrOperationInFlight)

	after, _ := ReduceCatalog(state, MutationFinished{Key: "product:1"})
	assert.False(t, after.IsBusy("product:1"))
	assert.True(t, after.IsBusy("product:2"))
	assert.True(t, state.IsBusy("product:1"), "reducer copies the set")
}

func TestReduceCatalogSearchesLoadedListWithoutLoading(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Rice"}, {ID: 2, Name: "Beans"}}

	state, _ := ReduceCatalog(CatalogState{}, ChangeSearch{Term: ""})
	assert.True(t, state.Loading, "nothing loaded yet")
	state, err := ReduceCatalog(state, CatalogLoaded{Generation: state.Generation, Products: products})
	require.NoError(t, err)
	assert.True(t, state.HasFullList())

	state, _ = ReduceCatalog(state, ChangeSearch{Term: "bea"})
	assert.False(t, state.Loading)
	assert.Equal(t, []models.Product{{ID: 2, Name: "Beans"}}, state.View().Products)

	state, _ = ReduceCatalog(state, CatalogInvalidated{})
	assert.False(t, state.HasFullList())
	state, _ = ReduceCatalog(state, ChangeSearch{Term: "ric"})
	assert.True(t, state.Loading)

	filtered, _ := ReduceCatalog(state, SelectFilter{Filter: models.FilterLowStock})
	filtered, err = ReduceCatalog(filtered, CatalogLoaded{Generation: filtered.Generation, Products: products[:1]})
	require.NoError(t, err)
	assert.False(t, filtered.HasFullList())
}

func TestReduceCatalogInvalidationDropsLoadInFlight(t *testing.T) {
	state, _ := ReduceCatalog(CatalogState{}, ChangeSearch{Term: ""})
	invalidated, _ := ReduceCatalog(state, CatalogInvalidated{})

	_, err := ReduceCatalog(invalidated, CatalogLoaded{Generation: state.Generation})
	assert.ErrorIs(t, err, ErrStaleResult)
}
