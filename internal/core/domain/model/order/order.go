package order

import (
	"errors"
	"strings"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrOrderNumberIsInvalid = errs.NewValueIsInvalidError("order_number")
	ErrItemsAreRequired     = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root for one checkout.
//
// Invariants:
//   - the order number is four digits
//   - the items snapshot is never empty
//   - pricing reflects the items snapshot it was computed from
//   - stage and status only move through their transition methods
type Order struct {
	recordID  kernel.UUID
	number    string
	items     []cart.Item
	phone     kernel.Phone
	address   string
	orderType kernel.OrderType
	promoCode string

	status  Status
	stage   Stage
	pricing pricing.Breakdown
	charges *pricing.Charges

	createdAt time.Time
	savedAt   time.Time
	warning   string

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order in Received status from a cart snapshot.
//
// Example:
//
//	o, err := order.NewOrder("0427", items, phone, "12 Baker St", kernel.Delivery, time.Now(), breakdown)
//	if err != nil {
//	    return err
//	}
func NewOrder(
	number string,
	items []cart.Item,
	phone kernel.Phone,
	address string,
	orderType kernel.OrderType,
	createdAt time.Time,
	breakdown pricing.Breakdown,
) (*Order, error) {
	o := &Order{
		phone:     phone,
		address:   strings.TrimSpace(address),
		orderType: orderType,
		status:    Received,
		stage:     Pending,
		pricing:   breakdown,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a committed order from storage.
func RestoreOrder(
	recordID kernel.UUID,
	number string,
	items []cart.Item,
	phone kernel.Phone,
	address string,
	orderType kernel.OrderType,
	status Status,
	createdAt time.Time,
	savedAt time.Time,
	breakdown pricing.Breakdown,
	charges *pricing.Charges,
) (*Order, error) {
	o := &Order{
		recordID:  recordID,
		phone:     phone,
		address:   address,
		orderType: orderType,
		status:    status,
		stage:     Committed,
		pricing:   breakdown,
		createdAt: createdAt.UTC(),
		savedAt:   savedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}
	if charges != nil {
		c := *charges
		o.charges = &c
		o.promoCode = c.PromoCode
	}

	if err := errors.Join(
		recordID.Validate(),
		status.Validate(),
		o.setNumber(number),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) RecordID() kernel.UUID {
	return o.recordID
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Phone() kernel.Phone {
	return o.phone
}

func (o *Order) Address() string {
	return o.address
}

func (o *Order) OrderType() kernel.OrderType {
	return o.orderType
}

func (o *Order) PromoCode() string {
	return o.promoCode
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Stage() Stage {
	return o.stage
}

func (o *Order) Pricing() pricing.Breakdown {
	return o.pricing
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) SavedAt() time.Time {
	return o.savedAt
}

func (o *Order) Warning() string {
	return o.warning
}

func (o *Order) IsCommitted() bool {
	return o.stage == Committed
}

func (o *Order) Total() float64 {
	return o.pricing.Total
}

func (o *Order) Charges() (pricing.Charges, bool) {
	if o.charges == nil {
		return pricing.Charges{}, false
	}
	return *o.charges, true
}

// Items returns a deep copy of the snapshot.
func (o *Order) Items() []cart.Item {
	out := make([]cart.Item, 0, len(o.items))
	for _, it := range o.items {
		out = append(out, it.Clone())
	}
	return out
}

// Quantity is the number of pizzas in the snapshot.
func (o *Order) Quantity() int {
	total := 0
	for _, it := range o.items {
		total += it.Quantity
	}
	return total
}

// SetPromoCode records the promotion the caller asked for at checkout.
func (o *Order) SetPromoCode(code string) {
	o.promoCode = strings.TrimSpace(code)
}

// Reprice swaps in a fresh snapshot and its pricing. A nil or empty items
// slice keeps the current snapshot.
func (o *Order) Reprice(items []cart.Item, breakdown pricing.Breakdown) {
	if len(items) > 0 {
		_ = o.setItems(items)
	}
	o.pricing = breakdown
}

// Commit finalizes a pending order. Charges are those computed against the
// final snapshot; savedAt is the moment the commit happened.
func (o *Order) Commit(charges pricing.Charges, savedAt time.Time) error {
	next, err := o.stage.Commit()
	if err != nil {
		return err
	}
	o.stage = next
	o.charges = &charges
	o.savedAt = savedAt.UTC()
	return nil
}

// Discard abandons a pending order.
func (o *Order) Discard() error {
	next, err := o.stage.Discard()
	if err != nil {
		return err
	}
	o.stage = next
	return nil
}

// ChangeStatus moves a committed order to a new kitchen status.
func (o *Order) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if o.stage != Committed {
		return errs.NewValueIsInvalidError("stage")
	}
	o.status = status
	return nil
}

// AssignRecordID stores the durable identifier once the order is persisted.
func (o *Order) AssignRecordID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.recordID = id
	return nil
}

// SetWarning attaches a non-fatal problem, such as failed persistence.
func (o *Order) SetWarning(msg string) {
	o.warning = msg
}

func (o *Order) setNumber(number string) error {
	if !kernel.IsOrderNumber(number) {
		return ErrOrderNumberIsInvalid
	}
	o.number = number
	return nil
}

func (o *Order) setItems(items []cart.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	o.items = make([]cart.Item, 0, len(items))
	for _, it := range items {
		o.items = append(o.items, it.Clone())
	}
	return nil
}
