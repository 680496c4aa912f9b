package services

import (
	"context"
	"estoque-console/models"
	"estoque-console/repositories"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFilterIsServerSideAndIgnoresTerm(t *testing.T) {
	inv := newFakeInventory(t)
	catalog := NewCatalogService(inv.deps())

	view, err := catalog.List(context.Background(), models.FilterOutOfStock, "rice")
	require.NoError(t, err)
	assert.Equal(t, models.CatalogModeFilter, view.Mode)
	assert.Empty(t, view.Term)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Soap", view.Products[0].Name)
	assert.Equal(t, []string{"SEM_ESTOQUE"}, inv.filters)
}

func TestCatalogSearch(t *testing.T) {
	inv := newFakeInventory(t)
	catalog := NewCatalogService(inv.deps())
	ctx := context.Background()

	view, err := catalog.List(ctx, models.FilterNone, "camil")
	require.NoError(t, err)
	assert.Equal(t, models.CatalogModeSearch, view.Mode)
	require.Len(t, view.Products, 1)
	assert.Equal(t, 2, view.Products[0].ID)
	assert.False(t, view.NoResults)

	view, err = catalog.List(ctx, models.FilterNone, "nothing-like-this")
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.True(t, view.NoResults)

	view, err = catalog.List(ctx, models.FilterNone, "")
	require.NoError(t, err)
	assert.Equal(t, models.CatalogModeAll, view.Mode)
	assert.Len(t, view.Products, 3)
	assert.False(t, view.NoResults)
}

func TestCatalogSearchRunsOverLoadedList(t *testing.T) {
	inv := newFakeInventory(t)
	catalog := NewCatalogService(inv.deps())
	ctx := context.Background()

	_, err := catalog.List(ctx, models.FilterNone, "")
	require.NoError(t, err)
	for _, term := range []string{"r", "ri", "ric"} {
		view, err := catalog.List(ctx, models.FilterNone, term)
		require.NoError(t, err)
		assert.Equal(t, models.CatalogModeSearch, view.Mode)
		assert.NotEmpty(t, view.Products, term)
	}
	assert.Equal(t, 1, inv.productCalls)

	view, err := catalog.List(ctx, models.FilterNone, "ric")
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Rice", view.Products[0].Name)
	assert.Equal(t, 1, inv.productCalls)

	require.NoError(t, catalog.Delete(ctx, 3))
	_, err = catalog.List(ctx, models.FilterNone, "ri")
	require.NoError(t, err)
	assert.Equal(t, 2, inv.productCalls, "a mutation refetches")

	_, err = catalog.Reload(ctx, models.FilterNone, "ri")
	require.NoError(t, err)
	assert.Equal(t, 3, inv.productCalls, "an explicit reload refetches")

	_, err = catalog.List(ctx, models.FilterOutOfStock, "")
	require.NoError(t, err)
	assert.Equal(t, 4, inv.productCalls, "a filter change refetches")

	_, err = catalog.List(ctx, models.FilterNone, "ri")
	require.NoError(t, err)
	assert.Equal(t, 5, inv.productCalls, "a filtered list is not searched")
}

func TestCatalogUsesCacheUntilInvalidated(t *testing.T) {
	inv := newFakeInventory(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	deps := inv.deps()
	deps.Cache = repositories.NewProductCache(rdb, time.Minute, nil, nil)
	catalog := NewCatalogService(deps)
	ctx := context.Background()

	_, err := catalog.List(ctx, models.FilterNone, "")
	require.NoError(t, err)
	_, err = catalog.List(ctx, models.FilterNone, "rice")
	require.NoError(t, err)
	assert.Equal(t, 1, inv.productCalls)

	catalog.Invalidate(ctx)
	_, err = catalog.List(ctx, models.FilterNone, "")
	require.NoError(t, err)
	assert.Equal(t, 2, inv.productCalls)
}

func TestCatalogCreateValidatesLocally(t *testing.T) {
	inv := newFakeInventory(t)
	catalog := NewCatalogService(inv.deps())

	_, err := catalog.Create(context.Background(), models.ProductRequest{Name: "Pen", Brand: "123", Category: "ESCRITORIO"})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Equal(t, models.ErrMsgBrandNeedsLetter, svcErr.Message)
	assert.Equal(t, 0, inv.productWrites)
}

func TestCatalogCreateSurfacesRemoteMessage(t *testing.T) {
	inv := newFakeInventory(t)
	inv.writeStatus = http.StatusConflict
	inv.writeReply = `{"message":"Produto já cadastrado"}`
	catalog := NewCatalogService(inv.deps())

	_, err := catalog.Create(context.Background(), models.ProductRequest{
		Name: "Pen", Brand: "Bic", Category: "Escritório", Price: decimal.RequireFromString("1.50"), Quantity: 3,
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindRejected, svcErr.Kind)
	assert.Equal(t, "Produto já cadastrado", svcErr.Message)
	assert.Equal(t, http.StatusConflict, svcErr.HTTPStatus())
}

func TestCatalogUpdateNormalizesCategory(t *testing.T) {
	inv := newFakeInventory(t)
	catalog := NewCatalogService(inv.deps())

	product, err := catalog.Update(context.Background(), 2, models.ProductRequest{
		Name: "Beans", Brand: "Camil", Category: "alimentício", Price: decimal.RequireFromString("8"), Quantity: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, 2, product.ID)
	assert.Equal(t, models.CategoryFood, product.Category)
}

func TestCatalogRejectsDuplicateInFlightMutation(t *testing.T) {
	inv := newFakeInventory(t)
	catalog := NewCatalogService(inv.deps())

	require.NoError(t, catalog.begin(productKey(2)))
	err := catalog.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrOperationInFlight)
	assert.Equal(t, 0, inv.productWrites)

	assert.NoError(t, catalog.Delete(context.Background(), 1), "other products are not blocked")

	catalog.finish(productKey(2))
	assert.NoError(t, catalog.Delete(context.Background(), 2))
	assert.False(t, catalog.State().IsBusy(productKey(2)))
}

func TestCatalogDeleteNotFound(t *testing.T) {
	inv := newFakeInventory(t)
	inv.writeStatus = http.StatusNotFound
	catalog := NewCatalogService(inv.deps())

	err := catalog.Delete(context.Background(), 77)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)
	assert.Equal(t, "failed to delete product", svcErr.Message)
}
