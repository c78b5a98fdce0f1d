package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuoctoan/shop-orders/internal/orders"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := orders.OrderPlacedPayload{
		OrderID:      101,
		OrderCode:    "OD20250314092653589",
		CustomerName: "An",
		Total:        200000,
		Lines:        []orders.LineSnapshot{{ProductID: 7, Quantity: 2, UnitPrice: 100000}},
	}
	ev := orders.Envelope{
		EventID:       "ev-1",
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Producer:      "shop-orders",
		CorrelationID: "OD20250314092653589",
		Payload:       MustMarshal(payload),
	}

	var got orders.Envelope
	require.NoError(t, Unmarshal(MustMarshal(ev), &got))
	assert.Equal(t, orders.EventOrderPlaced, got.EventType)

	p, err := UnwrapPayload[orders.OrderPlacedPayload](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, payload, p)
}

func TestUnwrapPayload_BadJSON(t *testing.T) {
	_, err := UnwrapPayload[orders.OrderPlacedPayload]([]byte("{"))
	assert.Error(t, err)
}
