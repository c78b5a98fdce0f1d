package cart

// Line is one product in a shopper's cart. UnitPrice is captured when the
// line is added and carried into the order as-is at checkout.
type Line struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (l Line) Total() int64 { return l.UnitPrice * int64(l.Quantity) }

// Cart keeps insertion order; lines are unique by product id (adds merge).
type Cart []Line

func (c Cart) Total() int64 {
	var sum int64
	for _, l := range c {
		sum += l.Total()
	}
	return sum
}

func (c Cart) find(productID int64) int {
	for i := range c {
		if c[i].ProductID == productID {
			return i
		}
	}
	return -1
}
