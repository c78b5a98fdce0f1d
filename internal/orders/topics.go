package orders

// All order lifecycle events share one topic; consumers dispatch on the
// x-event-type header or the envelope's event_type.
const TopicOrderEvents = "shop.orders"

// Partition key = order code so every event of one order stays in order.
func PartitionKey(orderCode string) []byte { return []byte(orderCode) }
