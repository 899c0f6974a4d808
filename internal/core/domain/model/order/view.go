package order

import (
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
)

// View is the wire shape of an order returned to the voice agent and the
// operator API. Absent phone, address and order type are null. CreatedAt is
// Unix seconds; SavedAt is RFC 3339.
type View struct {
	OrderNumber string            `json:"order_number"`
	Items       []cart.Item       `json:"items"`
	Phone       *string           `json:"phone"`
	Address     *string           `json:"address"`
	OrderType   *string           `json:"order_type"`
	Status      string            `json:"status"`
	CreatedAt   int64             `json:"created_at"`
	Committed   bool              `json:"committed"`
	Pricing     pricing.Breakdown `json:"pricing"`
	Total       float64           `json:"total"`
	SavedAt     *string           `json:"saved_at,omitempty"`
	Charges     *pricing.Charges  `json:"charges,omitempty"`
	RecordID    string            `json:"record_id,omitempty"`
	Warning     string            `json:"warning,omitempty"`
}

func (o *Order) View() View {
	v := View{
		OrderNumber: o.number,
		Items:       o.Items(),
		Phone:       optional(o.phone.String()),
		Address:     optional(o.address),
		OrderType:   optional(o.orderType.String()),
		Status:      o.status.String(),
		CreatedAt:   o.createdAt.Unix(),
		Committed:   o.IsCommitted(),
		Pricing:     o.pricing,
		Total:       o.pricing.Total,
		Warning:     o.warning,
	}
	if !o.savedAt.IsZero() {
		v.SavedAt = optional(o.savedAt.Format(time.RFC3339))
	}
	if o.charges != nil {
		c := *o.charges
		v.Charges = &c
	}
	if !o.recordID.IsZero() {
		v.RecordID = o.recordID.String()
	}
	if v.Pricing.Items == nil {
		v.Pricing.Items = []pricing.Line{}
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
