// Package pricing holds the priced views of a cart produced by the pricing
// engine. Amounts are already rounded to cents.
package pricing

import "github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"

// AddonPrice is the unit price of one add-on on a line.
type AddonPrice struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

// Line prices one cart item. UnitTotal is the item plus its add-ons;
// LineTotal multiplies it by Qty.
type Line struct {
	Index     int          `json:"index"`
	Item      string       `json:"item"`
	Size      string       `json:"size"`
	Qty       int          `json:"qty"`
	UnitPrice float64      `json:"unit_price"`
	Addons    []AddonPrice `json:"addons"`
	UnitTotal float64      `json:"unit_total"`
	LineTotal float64      `json:"line_total"`
	RawItem   cart.Item    `json:"raw_item"`
}

// Breakdown is the priced cart. Total always equals Subtotal; charges such as
// tax and delivery are reported separately in Charges.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Items    []Line  `json:"items"`
	Total    float64 `json:"total"`
}

// Empty returns a zero breakdown with a non-nil line list.
func Empty() Breakdown {
	return Breakdown{Items: []Line{}}
}

// Charges is what the customer actually pays once tax, delivery fee and any
// promotion are applied to a subtotal.
type Charges struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
	PromoCode   string  `json:"promo_code,omitempty"`
}
