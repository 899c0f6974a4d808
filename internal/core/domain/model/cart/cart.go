// Package cart holds the items a caller has asked for but not yet ordered.
package cart

import (
	"fmt"
	"slices"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// MaxPizzas caps the total quantity held in one cart.
const MaxPizzas = 5

var (
	ErrCartIsEmpty       = errs.NewRejectionError("Cart is empty.")
	ErrIndexOutOfRange   = errs.NewRejectionError("Index out of range.")
	ErrNoItemSpecified   = errs.NewRejectionError("No item specified.")
	ErrQuantityIsInvalid = errs.NewValueIsInvalidError("quantity")
)

// Item is one cart line. Quantity is at least 1 once the item is in a cart.
type Item struct {
	Item         string   `json:"item"`
	Toppings     []string `json:"toppings"`
	Addons       []string `json:"addons"`
	Size         string   `json:"size"`
	Quantity     int      `json:"quantity"`
	CustomerName string   `json:"customer_name,omitempty"`
	Address      string   `json:"address,omitempty"`
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	c := i
	c.Toppings = cloneList(i.Toppings)
	c.Addons = cloneList(i.Addons)
	return c
}

// Cart is an ordered list of items.
type Cart struct {
	items []Item
}

// New builds a cart from items, copying them.
func New(items ...Item) Cart {
	c := Cart{}
	for _, it := range items {
		c.items = append(c.items, it.Clone())
	}
	return c
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalQuantity sums the quantity of every line.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// Items returns a deep copy of the lines.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Clone())
	}
	return out
}

// At returns a copy of the line at index.
func (c *Cart) At(index int) (Item, error) {
	if index < 0 || index >= len(c.items) {
		return Item{}, ErrIndexOutOfRange
	}
	return c.items[index].Clone(), nil
}

// CheckCapacity fails when adding extra pizzas would exceed MaxPizzas.
// replacing is the quantity of a line that is being rewritten in place.
func (c *Cart) CheckCapacity(extra, replacing int) error {
	current := c.TotalQuantity() - replacing
	if current+extra > MaxPizzas {
		return LimitExceeded(current)
	}
	return nil
}

// Add appends item after checking capacity.
func (c *Cart) Add(item Item) error {
	if item.Quantity < 1 {
		return ErrQuantityIsInvalid
	}
	if err := c.CheckCapacity(item.Quantity, 0); err != nil {
		return err
	}
	c.items = append(c.items, item.Clone())
	return nil
}

// Replace overwrites the line at index, enforcing capacity against the new quantity.
func (c *Cart) Replace(index int, item Item) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if item.Quantity < 1 {
		return ErrQuantityIsInvalid
	}
	if err := c.CheckCapacity(item.Quantity, c.items[index].Quantity); err != nil {
		return err
	}
	c.items[index] = item.Clone()
	return nil
}

// Remove deletes and returns the line at index.
func (c *Cart) Remove(index int) (Item, error) {
	if index < 0 || index >= len(c.items) {
		return Item{}, ErrIndexOutOfRange
	}
	removed := c.items[index]
	c.items = slices.Delete(c.items, index, index+1)
	return removed, nil
}

func (c *Cart) Clear() {
	c.items = nil
}

// LimitExceeded builds the rejection for a cart that would go over MaxPizzas.
func LimitExceeded(current int) *errs.RejectionError {
	return errs.NewRejectionErrorWithFields(
		fmt.Sprintf("Max %d pizzas per order.", MaxPizzas),
		map[string]any{"max_pizzas": MaxPizzas, "cart_pizzas": current},
	)
}

func cloneList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
