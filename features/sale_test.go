package features

import (
	"context"
	"encoding/json"
	"errors"
	"estoque-console/models"
	"estoque-console/repositories"
	"estoque-console/services"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type saleTestContext struct {
	mu           sync.Mutex
	products     []models.Product
	rejectWith   string
	orderLines   int
	orderFetches int

	server  *httptest.Server
	svc     *services.Services
	draftID string
	draft   *models.SaleDraftView
	err     error
}

func (c *saleTestContext) reset() {
	if c.server != nil {
		c.server.Close()
	}
	*c = saleTestContext{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /produtos", func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		defer c.mu.Unlock()
		json.NewEncoder(w).Encode(c.products)
	})
	mux.HandleFunc("GET /pedidos", func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.orderFetches++
		c.mu.Unlock()
		io.WriteString(w, `[]`)
	})
	mux.HandleFunc("POST /pedidos", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateOrderRequest
		json.NewDecoder(r.Body).Decode(&req)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.rejectWith != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"message":%q}`, c.rejectWith)
			return
		}
		c.orderLines += len(req.Items)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":1}`)
	})
	c.server = httptest.NewServer(mux)

	client := repositories.NewAPIClient(repositories.ClientOptions{BaseURL: c.server.URL, Timeout: 5 * time.Second})
	c.svc = services.New(services.Deps{
		Products:  repositories.NewProductRepository(client),
		Orders:    repositories.NewOrderRepository(client),
		Dashboard: repositories.NewDashboardRepository(client),
		Cache:     repositories.NewProductCache(nil, 0, nil, nil),
	}, services.Options{SaleDraftTTL: time.Minute})
}

func (c *saleTestContext) theInventoryHasProduct(id int, name, price string, stock int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, models.Product{
		ID: id, Name: name, Brand: "Marca", Category: models.CategoryFood,
		Price: decimal.RequireFromString(price), Quantity: stock,
	})
	return nil
}

func (c *saleTestContext) theInventoryRejectsOrdersWith(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejectWith = message
	return nil
}

func (c *saleTestContext) aSaleIsOpen() error {
	// Prime order history so a later refresh is observable.
	if _, err := c.svc.Orders.List(context.Background()); err != nil {
		return err
	}
	draft, err := c.svc.Sales.Open(context.Background())
	if err != nil {
		return err
	}
	c.draftID = draft.ID
	c.draft = draft
	return nil
}

func (c *saleTestContext) record(draft *models.SaleDraftView, err error) error {
	c.err = err
	if err == nil {
		c.draft = draft
	}
	return nil
}

func (c *saleTestContext) iAddOfProduct(qty, productID int) error {
	return c.record(c.svc.Sales.AddLine(c.draftID, productID, qty))
}

func (c *saleTestContext) iRemoveProduct(productID int) error {
	return c.record(c.svc.Sales.RemoveLine(c.draftID, productID))
}

func (c *saleTestContext) iCompleteTheSale() error {
	_, err := c.svc.Sales.Submit(context.Background(), c.draftID)
	c.err = err
	return nil
}

func (c *saleTestContext) theLastActionFailsWith(message string) error {
	var svcErr *services.Error
	if !errors.As(c.err, &svcErr) {
		return fmt.Errorf("expected a service error, got %v", c.err)
	}
	if svcErr.Message != message {
		return fmt.Errorf("expected message %q, got %q", message, svcErr.Message)
	}
	return nil
}

func (c *saleTestContext) current() (*models.SaleDraftView, error) {
	return c.svc.Sales.Get(c.draftID)
}

func (c *saleTestContext) theCartHasLines(n int) error {
	draft, err := c.current()
	if err != nil {
		return err
	}
	if len(draft.Lines) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(draft.Lines))
	}
	return nil
}

func (c *saleTestContext) theLineHasQuantityAndSubtotal(productID, qty int, subtotal string) error {
	draft, err := c.current()
	if err != nil {
		return err
	}
	for _, line := range draft.Lines {
		if line.ProductID != productID {
			continue
		}
		if line.Quantity != qty {
			return fmt.Errorf("expected quantity %d, got %d", qty, line.Quantity)
		}
		if !line.Subtotal.Equal(decimal.RequireFromString(subtotal)) {
			return fmt.Errorf("expected subtotal %s, got %s", subtotal, line.Subtotal)
		}
		return nil
	}
	return fmt.Errorf("no line for product %d", productID)
}

func (c *saleTestContext) theCartIsEmpty() error {
	return c.theCartHasLines(0)
}

func (c *saleTestContext) theCartTotalIs(total string) error {
	draft, err := c.current()
	if err != nil {
		return err
	}
	if !draft.Total.Equal(decimal.RequireFromString(total)) {
		return fmt.Errorf("expected total %s, got %s", total, draft.Total)
	}
	return nil
}

func (c *saleTestContext) theInventoryReceivedOrderLines(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orderLines != n {
		return fmt.Errorf("expected %d order lines, got %d", n, c.orderLines)
	}
	return nil
}

func (c *saleTestContext) theSaleIsClosed() error {
	if _, err := c.current(); !errors.Is(err, services.ErrDraftNotFound) {
		return fmt.Errorf("expected the sale to be closed, got %v", err)
	}
	return nil
}

func (c *saleTestContext) orderHistoryWasRefreshed() error {
	if _, err := c.svc.Orders.List(context.Background()); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orderFetches != 2 {
		return fmt.Errorf("expected order history to be refetched, fetched %d times", c.orderFetches)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &saleTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the inventory has product (\d+) "([^"]*)" priced ([\d.]+) with (\d+) in stock$`, tc.theInventoryHasProduct)
	ctx.Step(`^the inventory rejects orders with "([^"]*)"$`, tc.theInventoryRejectsOrdersWith)
	ctx.Step(`^a sale is open$`, tc.aSaleIsOpen)

	// When steps
	ctx.Step(`^I add (-?\d+) of product (\d+)$`, tc.iAddOfProduct)
	ctx.Step(`^I remove product (\d+)$`, tc.iRemoveProduct)
	ctx.Step(`^I complete the sale$`, tc.iCompleteTheSale)

	// Then steps
	ctx.Step(`^the last action fails with "([^"]*)"$`, tc.theLastActionFailsWith)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the line for product (\d+) has quantity (\d+) and subtotal ([\d.]+)$`, tc.theLineHasQuantityAndSubtotal)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart total is ([\d.]+)$`, tc.theCartTotalIs)
	ctx.Step(`^the inventory received (\d+) order lines$`, tc.theInventoryReceivedOrderLines)
	ctx.Step(`^the sale is closed$`, tc.theSaleIsClosed)
	ctx.Step(`^order history was refreshed$`, tc.orderHistoryWasRefreshed)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"sale.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
