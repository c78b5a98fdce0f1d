package orders

import "time"

// Order is the persisted checkout header. After creation only Status and
// UpdateDate ever change. Code is the reference shown to customers; ID stays
// internal.
type Order struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address"`
	PostCode     string    `json:"post_code,omitempty"`
	Note         string    `json:"note,omitempty"`
	Language     string    `json:"language"`
	CreateDate   time.Time `json:"create_date"`
	UpdateDate   time.Time `json:"update_date"`
	Status       Status    `json:"status"`
}

// OrderLine snapshots one cart line at purchase time. UnitPrice is the price
// the shopper saw, never re-read from the catalog.
type OrderLine struct {
	OrderID   int64    `json:"order_id"`
	ProductID int64    `json:"product_id"`
	UnitPrice int64    `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Discount  *float64 `json:"discount,omitempty"`
}

func (l OrderLine) Total() int64 { return l.UnitPrice * int64(l.Quantity) }

// Receipt is what a successful checkout hands back to the caller.
type Receipt struct {
	OrderID int64          `json:"order_id"`
	Code    string         `json:"order_code"`
	Total   int64          `json:"total"`
	Lines   []LineSnapshot `json:"lines,omitempty"`
}

// CustomerInfo is the shipping/contact form submitted at checkout.
type CustomerInfo struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PostCode     string `json:"post_code"`
	Note         string `json:"note"`
}

// ListItem is one admin listing row: the order plus its aggregated total.
type ListItem struct {
	Order
	Total int64 `json:"total"`
}

// Page is a listing result with the paging state and the filters that
// produced it echoed back for UI controls.
type Page struct {
	Items     []ListItem `json:"items"`
	TotalRows int        `json:"total_rows"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	Keyword   string     `json:"keyword,omitempty"`
	Status    *Status    `json:"status,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
}

// DetailLine is an order line joined with its product name. ProductName is
// empty (and ProductID zero) when the product has since been deleted.
type DetailLine struct {
	ProductID   int64    `json:"product_id,omitempty"`
	ProductName string   `json:"product_name,omitempty"`
	UnitPrice   int64    `json:"unit_price"`
	Quantity    int      `json:"quantity"`
	Discount    *float64 `json:"discount,omitempty"`
}

func (l DetailLine) Total() int64 { return l.UnitPrice * int64(l.Quantity) }

type Detail struct {
	Order
	Lines []DetailLine `json:"lines"`
	Total int64        `json:"total"`
}
