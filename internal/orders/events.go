package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Envelope wraps every order event published to Kafka.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order code
	Payload       json.RawMessage `json:"payload"`
}

type LineSnapshot struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type OrderPlacedPayload struct {
	OrderID      int64          `json:"order_id"`
	OrderCode    string         `json:"order_code"`
	CustomerName string         `json:"customer_name"`
	Total        int64          `json:"total"`
	Lines        []LineSnapshot `json:"lines,omitempty"`
}

type OrderStatusChangedPayload struct {
	OrderID     int64  `json:"order_id"`
	Status      int    `json:"status"`
	StatusLabel string `json:"status_label"`
}
