package orders

import (
	"fmt"
	"time"
)

const codePrefix = "OD"

// NewCode derives the customer-facing order reference from the UTC clock at
// millisecond resolution: OD + yyyyMMddHHmmss + milliseconds. Two orders in
// the same millisecond would collide; the UNIQUE constraint on orders.code
// turns that into a persistence error instead of a duplicate.
func NewCode(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("%s%s%03d", codePrefix, now.Format("20060102150405"), now.Nanosecond()/1e6)
}
