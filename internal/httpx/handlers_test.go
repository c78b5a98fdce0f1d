package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuoctoan/shop-orders/internal/cart"
	"github.com/phuoctoan/shop-orders/internal/catalog"
	"github.com/phuoctoan/shop-orders/internal/orders"
)

type memSessions struct{ carts map[string]cart.Cart }

func (m *memSessions) Load(_ context.Context, key string) (cart.Cart, error) {
	return m.carts[key], nil
}
func (m *memSessions) Save(_ context.Context, key string, c cart.Cart) error {
	m.carts[key] = c
	return nil
}
func (m *memSessions) Delete(_ context.Context, key string) error {
	delete(m.carts, key)
	return nil
}

type memCatalog struct{ products map[int64]catalog.Product }

func (m *memCatalog) GetProduct(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

// memRepo keeps orders in memory; only what the handlers exercise is filled in.
type memRepo struct {
	nextID int64
	orders map[int64]orders.Order
	lines  map[int64][]orders.OrderLine
}

func newMemRepo() *memRepo {
	return &memRepo{orders: map[int64]orders.Order{}, lines: map[int64][]orders.OrderLine{}}
}

func (m *memRepo) CreateOrderTx(_ context.Context, o *orders.Order, lines []orders.OrderLine) error {
	m.nextID++
	o.ID = m.nextID
	m.orders[o.ID] = *o
	m.lines[o.ID] = lines
	return nil
}

func (m *memRepo) Search(_ context.Context, q orders.ListQuery) ([]orders.Order, int, error) {
	var out []orders.Order
	for _, o := range m.orders {
		if q.Status != nil && o.Status != *q.Status {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *memRepo) LineTotals(_ context.Context, ids []int64) (map[int64]int64, error) {
	totals := map[int64]int64{}
	for _, id := range ids {
		for _, l := range m.lines[id] {
			totals[id] += l.Total()
		}
	}
	return totals, nil
}

func (m *memRepo) Get(_ context.Context, id int64) (orders.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return orders.Order{}, orders.ErrOrderNotFound
	}
	return o, nil
}

func (m *memRepo) Lines(_ context.Context, orderID int64) ([]orders.DetailLine, error) {
	var out []orders.DetailLine
	for _, l := range m.lines[orderID] {
		out = append(out, orders.DetailLine{ProductID: l.ProductID, UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id int64, s orders.Status, at time.Time) error {
	o, ok := m.orders[id]
	if !ok {
		return orders.ErrOrderNotFound
	}
	o.Status = s
	o.UpdateDate = at
	m.orders[id] = o
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return orders.ErrOrderNotFound
	}
	delete(m.orders, id)
	delete(m.lines, id)
	return nil
}

func price(v int64) *int64 { return &v }

func newTestServer(t *testing.T) (http.Handler, *memRepo) {
	t.Helper()
	carts := cart.NewStore(
		&memSessions{carts: map[string]cart.Cart{}},
		&memCatalog{products: map[int64]catalog.Product{
			7: {ID: 7, Name: "Ao thun", Price: price(100000)},
		}},
	)
	repo := newMemRepo()
	svc := orders.NewService(repo, carts)

	router := NewRouter()
	(&CartHandler{Carts: carts}).Register(router)
	(&OrdersHandler{Service: svc, Name: "test"}).Register(router)
	return router, repo
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "test-session"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestCartEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/cart/items", `{"product_id":7,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items cart.Cart `json:"items"`
		Total int64     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(200000), resp.Total)

	w = do(t, h, http.MethodPost, "/cart/items", `{"product_id":999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/cart/items/7", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Items[0].Quantity)

	w = do(t, h, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodGet, "/cart", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCheckout_EmptyCart(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/checkout", `{"customer_name":"An","phone":"0900000000","address":"HN"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestCheckout_ValidationFields(t *testing.T) {
	h, _ := newTestServer(t)
	do(t, h, http.MethodPost, "/cart/items", `{"product_id":7}`)

	w := do(t, h, http.MethodPost, "/checkout", `{"email":"nope"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Fields []orders.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	got := map[string]bool{}
	for _, f := range resp.Fields {
		got[f.Field] = true
	}
	assert.True(t, got["customer_name"])
	assert.True(t, got["phone"])
	assert.True(t, got["address"])
	assert.True(t, got["email"])
}

func TestCheckout_Success(t *testing.T) {
	h, repo := newTestServer(t)
	do(t, h, http.MethodPost, "/cart/items", `{"product_id":7,"quantity":2}`)

	w := do(t, h, http.MethodPost, "/checkout", `{"customer_name":"An","phone":"0900000000","address":"HN"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var rcpt orders.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rcpt))
	assert.Regexp(t, `^OD\d{17}$`, rcpt.Code)
	assert.Equal(t, int64(200000), rcpt.Total)
	assert.Len(t, repo.orders, 1)
	assert.Len(t, repo.lines[rcpt.OrderID], 1)

	// cart emptied, a second checkout has nothing to sell
	w = do(t, h, http.MethodPost, "/checkout", `{"customer_name":"An","phone":"0900000000","address":"HN"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminOrders(t *testing.T) {
	h, repo := newTestServer(t)
	do(t, h, http.MethodPost, "/cart/items", `{"product_id":7,"quantity":2}`)
	w := do(t, h, http.MethodPost, "/checkout", `{"customer_name":"An","phone":"0900000000","address":"HN"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var rcpt orders.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rcpt))

	t.Run("list with totals", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/admin/orders/", "")
		require.Equal(t, http.StatusOK, w.Code)
		var page orders.Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, int64(200000), page.Items[0].Total)
		assert.Equal(t, 1, page.TotalRows)
	})

	t.Run("list rejects bad dates", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/admin/orders/?from=14-03-2025", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("detail", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/admin/orders/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var d orders.Detail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Equal(t, rcpt.Code, d.Order.Code)
		assert.Equal(t, int64(200000), d.Total)
	})

	t.Run("detail not found", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/admin/orders/404", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("change status", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/admin/orders/1/status", `{"status":3}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, orders.StatusCompleted, repo.orders[1].Status)

		w = do(t, h, http.MethodPost, "/admin/orders/404/status", `{"status":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, h, http.MethodPost, "/admin/orders/1/status", `{"status":9}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, h, http.MethodDelete, "/admin/orders/1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = do(t, h, http.MethodDelete, "/admin/orders/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
