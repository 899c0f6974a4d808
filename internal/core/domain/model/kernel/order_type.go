package kernel

import "strings"

// OrderType says how the customer receives the order.
type OrderType string

const (
	Pickup   OrderType = "pickup"
	Delivery OrderType = "delivery"
)

var orderTypeSpellings = map[string]OrderType{
	"pickup":   Pickup,
	"pick up":  Pickup,
	"pick-up":  Pickup,
	"p":        Pickup,
	"delivery": Delivery,
	"d":        Delivery,
}

// ParseOrderType accepts the spellings a speech transcript tends to produce.
// Exact spellings win; otherwise "pick" or "deliv" anywhere in the text decide.
func ParseOrderType(raw string) (OrderType, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", false
	}
	if t, ok := orderTypeSpellings[v]; ok {
		return t, true
	}
	switch {
	case strings.Contains(v, "pick"):
		return Pickup, true
	case strings.Contains(v, "deliv"):
		return Delivery, true
	}
	return "", false
}

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsZero() bool {
	return t == ""
}
