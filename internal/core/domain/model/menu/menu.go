package menu

import (
	"sort"
	"strings"
)

const (
	// DefaultSummary is spoken when the menu document carries no summary.
	DefaultSummary = "We offer a selection of pizzas."

	// FallbackSize is used when neither the caller nor the menu names a size.
	FallbackSize = "Small"

	// DefaultPriceKey holds the price of items that do not come in sizes.
	DefaultPriceKey = "default"
)

// SizePrices maps a size key to its price. A nil price means the menu lists the
// size without a price.
type SizePrices map[string]*float64

// Menu is the canonical, immutable view of one menu fetch.
type Menu struct {
	Flavors  []string
	Toppings []string
	Addons   []string
	Sizes    []string

	// Prices is keyed by item display name and by its lowercase alias.
	Prices map[string]SizePrices

	Summary string

	// Raw is the unnormalized source document.
	Raw map[string]any
}

// Empty returns the menu used when nothing could ever be fetched.
func Empty() Menu {
	return Menu{
		Flavors:  []string{},
		Toppings: []string{},
		Addons:   []string{},
		Sizes:    []string{},
		Prices:   map[string]SizePrices{},
		Summary:  DefaultSummary,
		Raw:      map[string]any{},
	}
}

// IsEmpty reports whether the menu has nothing to sell.
func (m Menu) IsEmpty() bool {
	return len(m.Flavors) == 0 && len(m.Addons) == 0 && len(m.Prices) == 0
}

// DefaultSize is the first listed size, or FallbackSize.
func (m Menu) DefaultSize() string {
	if len(m.Sizes) > 0 {
		return m.Sizes[0]
	}
	return FallbackSize
}

// ResolveSize maps size onto the menu's own spelling when it lists it
// (case-insensitively). Blank input yields DefaultSize; unknown sizes are
// returned trimmed but otherwise unchanged.
func (m Menu) ResolveSize(size string) string {
	s := strings.TrimSpace(size)
	if s == "" {
		return m.DefaultSize()
	}
	for _, listed := range m.Sizes {
		if strings.EqualFold(listed, s) {
			return listed
		}
	}
	return s
}

// PricesFor returns the size table for an item. The lowercase alias is
// consulted first, then the exact key, then a case-insensitive scan.
func (m Menu) PricesFor(item string) (SizePrices, bool) {
	name := strings.TrimSpace(item)
	if name == "" {
		return nil, false
	}
	if p, ok := m.Prices[strings.ToLower(name)]; ok && p != nil {
		return p, true
	}
	if p, ok := m.Prices[name]; ok && p != nil {
		return p, true
	}
	for key, p := range m.Prices {
		if strings.EqualFold(key, name) && p != nil {
			return p, true
		}
	}
	return nil, false
}

// PricedItems lists the display names present in Prices (lowercase aliases
// are skipped when a differently cased display key exists), sorted.
func (m Menu) PricedItems() []string {
	display := make(map[string]string, len(m.Prices))
	for key := range m.Prices {
		lower := strings.ToLower(key)
		if existing, ok := display[lower]; !ok || existing == lower {
			display[lower] = key
		}
	}
	out := make([]string, 0, len(display))
	for _, name := range display {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FirstPrice returns the first non-nil price of p, trying the menu's size
// order before the remaining keys in sorted order.
func (m Menu) FirstPrice(p SizePrices) (float64, bool) {
	for _, size := range m.Sizes {
		for _, key := range []string{size, strings.ToLower(size)} {
			if v, ok := p[key]; ok && v != nil {
				return *v, true
			}
		}
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := p[k]; v != nil {
			return *v, true
		}
	}
	return 0, false
}
