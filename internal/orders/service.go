package orders

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/phuoctoan/shop-orders/internal/cart"
)

// Repository is the transactional datastore boundary for orders. Search is
// handed an already-normalized query (see ListQuery.Normalize).
type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order, lines []OrderLine) error
	Search(ctx context.Context, q ListQuery) ([]Order, int, error)
	LineTotals(ctx context.Context, orderIDs []int64) (map[int64]int64, error)
	Get(ctx context.Context, id int64) (Order, error)
	Lines(ctx context.Context, orderID int64) ([]DetailLine, error)
	UpdateStatus(ctx context.Context, id int64, s Status, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// CartSource is the slice of the cart store checkout needs.
type CartSource interface {
	Get(ctx context.Context, key string) (cart.Cart, error)
	Clear(ctx context.Context, key string) error
}

type Service struct {
	repo  Repository
	carts CartSource
	now   func() time.Time
}

func NewService(repo Repository, carts CartSource) *Service {
	return &Service{repo: repo, carts: carts, now: time.Now}
}

// ValidateCustomer checks the checkout form and returns nil when it passes.
// Email is optional but must parse when present.
func ValidateCustomer(info CustomerInfo) *ValidationError {
	var fields []FieldError
	if strings.TrimSpace(info.CustomerName) == "" {
		fields = append(fields, FieldError{Field: "customer_name", Message: "customer name is required"})
	}
	if strings.TrimSpace(info.Phone) == "" {
		fields = append(fields, FieldError{Field: "phone", Message: "phone is required"})
	}
	if strings.TrimSpace(info.Address) == "" {
		fields = append(fields, FieldError{Field: "address", Message: "address is required"})
	}
	if e := strings.TrimSpace(info.Email); e != "" {
		if _, err := mail.ParseAddress(e); err != nil {
			fields = append(fields, FieldError{Field: "email", Message: "email is not valid"})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// PlaceOrder turns the session's cart into a persisted order with one line
// per cart line, prices as snapshotted in the cart. On success the cart is
// cleared and the receipt carries the generated order code. A persistence
// failure leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, sessionKey string, info CustomerInfo) (Receipt, error) {
	c, err := s.carts.Get(ctx, sessionKey)
	if err != nil {
		return Receipt{}, err
	}
	if len(c) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	if verr := ValidateCustomer(info); verr != nil {
		return Receipt{}, verr
	}

	now := s.now()
	o := &Order{
		Code:         NewCode(now),
		CustomerName: info.CustomerName,
		Phone:        info.Phone,
		Email:        info.Email,
		Address:      info.Address,
		PostCode:     info.PostCode,
		Note:         info.Note,
		Language:     "vi",
		CreateDate:   now,
		UpdateDate:   now,
		Status:       StatusCreated,
	}
	lines := make([]OrderLine, 0, len(c))
	snaps := make([]LineSnapshot, 0, len(c))
	for _, l := range c {
		lines = append(lines, OrderLine{
			ProductID: l.ProductID,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
		snaps = append(snaps, LineSnapshot{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	if err := s.repo.CreateOrderTx(ctx, o, lines); err != nil {
		return Receipt{}, &PersistenceError{Cause: err}
	}

	// The order is committed at this point. A failed cart clear only means a
	// stale cart, so log and report success.
	if err := s.carts.Clear(ctx, sessionKey); err != nil {
		log.Printf("orders: clear cart after checkout %s: %v", o.Code, err)
	}
	return Receipt{OrderID: o.ID, Code: o.Code, Total: c.Total(), Lines: snaps}, nil
}

// List pages through orders matching the query, newest first, then attaches
// each listed order's total from one grouped line lookup. Totals are only
// computed for the page actually returned.
func (s *Service) List(ctx context.Context, q ListQuery) (Page, error) {
	nq := q.Normalize()
	rows, totalRows, err := s.repo.Search(ctx, nq)
	if err != nil {
		return Page{}, err
	}

	items := make([]ListItem, 0, len(rows))
	if len(rows) > 0 {
		ids := make([]int64, 0, len(rows))
		for _, o := range rows {
			ids = append(ids, o.ID)
		}
		totals, err := s.repo.LineTotals(ctx, ids)
		if err != nil {
			return Page{}, err
		}
		for _, o := range rows {
			items = append(items, ListItem{Order: o, Total: totals[o.ID]})
		}
	}

	return Page{
		Items:     items,
		TotalRows: totalRows,
		Page:      nq.Page,
		PageSize:  nq.PageSize,
		Keyword:   q.Keyword,
		Status:    q.Status,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
	}, nil
}

// Detail loads one order with its lines and the total recomputed from them.
// Lines whose product was deleted keep their snapshot but carry no name.
func (s *Service) Detail(ctx context.Context, orderID int64) (Detail, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return Detail{}, err
	}
	lines, err := s.repo.Lines(ctx, orderID)
	if err != nil {
		return Detail{}, err
	}
	var total int64
	for _, l := range lines {
		total += l.Total()
	}
	return Detail{Order: o, Lines: lines, Total: total}, nil
}

// ChangeStatus sets any valid status value and refreshes the update date.
// There is no transition graph: Completed back to Created is allowed.
func (s *Service) ChangeStatus(ctx context.Context, orderID int64, status Status) error {
	if !status.Valid() {
		return &ValidationError{Fields: []FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %d", int(status)),
		}}}
	}
	return s.repo.UpdateStatus(ctx, orderID, status, s.now())
}

// DeleteOrder hard-deletes the order and all its lines.
func (s *Service) DeleteOrder(ctx context.Context, orderID int64) error {
	return s.repo.Delete(ctx, orderID)
}
