package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/phuoctoan/shop-orders/internal/kafka"
	"github.com/phuoctoan/shop-orders/internal/orders"
)

type OrdersHandler struct {
	Service  *orders.Service
	Producer *kafkax.Producer
	Name     string // producer name stamped on events
}

type checkoutReq struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PostCode     string `json:"post_code"`
	Note         string `json:"note"`
}

type changeStatusReq struct {
	Status int `json:"status"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.checkout)
	r.Route("/admin/orders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.detail)
		r.Post("/{id}/status", h.changeStatus)
		r.Delete("/{id}", h.deleteOrder)
	})
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rcpt, err := h.Service.PlaceOrder(ctx, sessionKey(w, r), orders.CustomerInfo{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		PostCode:     req.PostCode,
		Note:         req.Note,
	})
	if err != nil {
		var verr *orders.ValidationError
		var perr *orders.PersistenceError
		switch {
		case errors.Is(err, orders.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
		case errors.As(err, &perr):
			log.Printf("checkout: %v", perr.Cause)
			writeError(w, http.StatusInternalServerError, "could not save the order, please try again")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.publish(r, orders.EventOrderPlaced, rcpt.Code, orders.OrderPlacedPayload{
		OrderID:      rcpt.OrderID,
		OrderCode:    rcpt.Code,
		CustomerName: req.CustomerName,
		Total:        rcpt.Total,
		Lines:        rcpt.Lines,
	})

	writeJSON(w, http.StatusCreated, rcpt)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := h.Service.List(ctx, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *OrdersHandler) detail(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	d, err := h.Service.Detail(ctx, id)
	if errors.Is(err, orders.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *OrdersHandler) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req changeStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := orders.Status(req.Status)
	err = h.Service.ChangeStatus(ctx, id, status)
	if err != nil {
		var verr *orders.ValidationError
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.publish(r, orders.EventOrderStatusChanged, strconv.FormatInt(id, 10), orders.OrderStatusChangedPayload{
		OrderID:     id,
		Status:      req.Status,
		StatusLabel: status.String(),
	})

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

func (h *OrdersHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = h.Service.DeleteOrder(ctx, id)
	if errors.Is(err, orders.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) publish(r *http.Request, eventType, correlationID string, payload any) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Name,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: correlationID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(orders.PartitionKey(correlationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func orderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parseListQuery(r *http.Request) (orders.ListQuery, error) {
	var q orders.ListQuery
	vals := r.URL.Query()

	q.Keyword = vals.Get("q")
	if s := vals.Get("status"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, errors.New("invalid status")
		}
		st := orders.Status(n)
		q.Status = &st
	}
	if s := vals.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return q, errors.New("invalid from date, want YYYY-MM-DD")
		}
		q.DateFrom = &t
	}
	if s := vals.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return q, errors.New("invalid to date, want YYYY-MM-DD")
		}
		q.DateTo = &t
	}
	if s := vals.Get("page"); s != "" {
		q.Page, _ = strconv.Atoi(s)
	}
	if s := vals.Get("page_size"); s != "" {
		q.PageSize, _ = strconv.Atoi(s)
	}
	return q, nil
}
