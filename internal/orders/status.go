package orders

import "fmt"

// Status is the order lifecycle marker. The values are a closed set but
// there is deliberately no transition graph: an admin may move an order from
// any status to any other, including backwards.
type Status int

const (
	StatusCreated Status = iota
	StatusConfirmed
	StatusShipping
	StatusCompleted
	StatusCancelled
)

func (s Status) Valid() bool {
	return s >= StatusCreated && s <= StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusConfirmed:
		return "confirmed"
	case StatusShipping:
		return "shipping"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("status(%d)", int(s))
}
