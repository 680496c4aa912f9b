package services

import (
	"encoding/json"
	"estoque-console/models"
	"estoque-console/repositories"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeInventory is an in-process stand-in for the inventory REST API.
type fakeInventory struct {
	mu            sync.Mutex
	products      []models.Product
	orders        []models.Order
	stats         models.DashboardStats
	filters       []string
	productCalls  int
	orderCalls    int
	orderRequests []models.CreateOrderRequest
	productWrites int

	orderStatus int
	orderReply  string
	writeStatus int
	writeReply  string
	orderGate   chan struct{}

	server *httptest.Server
}

func newFakeInventory(t *testing.T) *fakeInventory {
	t.Helper()
	f := &fakeInventory{
		products: []models.Product{
			{ID: 1, Name: "Rice", Brand: "Tio João", Category: models.CategoryFood, Price: decimal.RequireFromString("10.00"), Quantity: 5},
			{ID: 2, Name: "Beans", Brand: "Camil", Category: models.CategoryFood, Price: decimal.RequireFromString("7.50"), Quantity: 10},
			{ID: 3, Name: "Soap", Brand: "Dove", Category: models.CategoryPersonalCare, Price: decimal.RequireFromString("3.20"), Quantity: 0},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /produtos", f.listProducts)
	mux.HandleFunc("POST /produtos", f.writeProduct)
	mux.HandleFunc("PUT /produtos/{id}", f.writeProduct)
	mux.HandleFunc("DELETE /produtos/{id}", f.writeProduct)
	mux.HandleFunc("GET /pedidos", f.listOrders)
	mux.HandleFunc("POST /pedidos", f.createOrder)
	mux.HandleFunc("GET /dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.stats)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeInventory) deps() Deps {
	client := repositories.NewAPIClient(repositories.ClientOptions{BaseURL: f.server.URL, Timeout: 5 * time.Second})
	return Deps{
		Products:  repositories.NewProductRepository(client),
		Orders:    repositories.NewOrderRepository(client),
		Dashboard: repositories.NewDashboardRepository(client),
		Cache:     repositories.NewProductCache(nil, 0, nil, nil),
	}
}

func (f *fakeInventory) listProducts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	filter := r.URL.Query().Get("filtro")
	f.filters = append(f.filters, filter)
	if filter == string(models.FilterOutOfStock) {
		out := []models.Product{}
		for _, p := range f.products {
			if p.Quantity == 0 {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	writeJSON(w, http.StatusOK, f.products)
}

func (f *fakeInventory) writeProduct(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.productWrites++
	status, reply := f.writeStatus, f.writeReply
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		io.WriteString(w, reply)
		return
	}
	if r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var req models.ProductRequest
	json.NewDecoder(r.Body).Decode(&req)
	id := 99
	if v := r.PathValue("id"); v != "" {
		id, _ = strconv.Atoi(v)
	}
	writeJSON(w, http.StatusOK, models.Product{ID: id, Name: req.Name, Brand: req.Brand, Category: models.Category(req.Category), Price: req.Price, Quantity: req.Quantity})
}

func (f *fakeInventory) listOrders(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderCalls++
	writeJSON(w, http.StatusOK, f.orders)
}

func (f *fakeInventory) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.orderRequests = append(f.orderRequests, req)
	gate := f.orderGate
	status, reply := f.orderStatus, f.orderReply
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if status != 0 {
		w.WriteHeader(status)
		io.WriteString(w, reply)
		return
	}

	f.mu.Lock()
	order := models.Order{ID: len(f.orders) + 100, PlacedAt: "2026-10-14T10:00:00"}
	for _, item := range req.Items {
		order.TotalItems += item.Quantity
		order.Items = append(order.Items, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	f.orders = append(f.orders, order)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, order)
}

func (f *fakeInventory) replyToOrders(status int, reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderStatus, f.orderReply = status, reply
}

func (f *fakeInventory) submittedOrders() []models.CreateOrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CreateOrderRequest(nil), f.orderRequests...)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
