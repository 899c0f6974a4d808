package services

import (
	"strings"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

const centsPlaces = 2

// PromoKind says how a promotion's Value is applied.
type PromoKind string

const (
	PromoPercent PromoKind = "percent"
	PromoFlat    PromoKind = "flat"
)

// Promo is one entry of the promotion table.
type Promo struct {
	Kind  PromoKind `yaml:"kind"`
	Value float64   `yaml:"value"`
}

// PricingPolicy holds the adjustments applied on top of the menu subtotal.
type PricingPolicy struct {
	TaxRate     float64
	DeliveryFee float64
	Promos      map[string]Promo
}

// PricingEngine prices carts against a menu snapshot. Pricing never fails:
// anything it cannot price costs 0.
type PricingEngine struct {
	taxRate     decimal.Decimal
	deliveryFee decimal.Decimal
	promos      map[string]Promo
}

func NewPricingEngine(policy PricingPolicy) PricingEngine {
	promos := make(map[string]Promo, len(policy.Promos))
	for code, p := range policy.Promos {
		promos[strings.ToUpper(strings.TrimSpace(code))] = p
	}
	return PricingEngine{
		taxRate:     decimal.NewFromFloat(policy.TaxRate),
		deliveryFee: decimal.NewFromFloat(policy.DeliveryFee),
		promos:      promos,
	}
}

// PriceCart prices every line and sums them. Rounding to cents happens per
// line and again on the subtotal.
func (e PricingEngine) PriceCart(items []cart.Item, m menu.Menu) pricing.Breakdown {
	lines := make([]pricing.Line, 0, len(items))
	subtotal := decimal.Zero

	for i, it := range items {
		line := e.priceLine(i, it, m)
		subtotal = subtotal.Add(decimal.NewFromFloat(line.LineTotal))
		lines = append(lines, line)
	}

	total := subtotal.Round(centsPlaces).InexactFloat64()
	return pricing.Breakdown{Subtotal: total, Items: lines, Total: total}
}

func (e PricingEngine) priceLine(index int, it cart.Item, m menu.Menu) pricing.Line {
	size := it.Size
	if strings.TrimSpace(size) == "" {
		size = m.DefaultSize()
	}
	qty := it.Quantity
	if qty < 1 {
		qty = 1
	}

	unitPrice := decimal.NewFromFloat(e.UnitPrice(m, it.Item, size))
	unitTotal := unitPrice
	addons := make([]pricing.AddonPrice, 0, len(it.Addons))
	for _, name := range it.Addons {
		p := decimal.NewFromFloat(e.AddonPrice(m, name))
		unitTotal = unitTotal.Add(p)
		addons = append(addons, pricing.AddonPrice{Name: name, UnitPrice: p.Round(centsPlaces).InexactFloat64()})
	}
	unitTotal = unitTotal.Round(centsPlaces)
	lineTotal := unitTotal.Mul(decimal.NewFromInt(int64(qty))).Round(centsPlaces)

	return pricing.Line{
		Index:     index,
		Item:      it.Item,
		Size:      size,
		Qty:       qty,
		UnitPrice: unitPrice.Round(centsPlaces).InexactFloat64(),
		Addons:    addons,
		UnitTotal: unitTotal.InexactFloat64(),
		LineTotal: lineTotal.InexactFloat64(),
		RawItem:   it.Clone(),
	}
}

// UnitPrice looks the item up in the normalized price map across the size key
// candidates, then falls back to scanning the raw menu document.
func (e PricingEngine) UnitPrice(m menu.Menu, item, size string) float64 {
	if table, ok := m.PricesFor(item); ok {
		for _, key := range menu.SizeKeyCandidates(size) {
			if p, found := table[key]; found && p != nil {
				return *p
			}
		}
	}
	if p, ok := m.RawPrice(item, size); ok {
		return p
	}
	return 0
}

// AddonPrice prefers the "default" price, then any listed price, then the raw
// document.
func (e PricingEngine) AddonPrice(m menu.Menu, name string) float64 {
	if table, ok := m.PricesFor(name); ok {
		if p := table[menu.DefaultPriceKey]; p != nil {
			return *p
		}
		if p, found := m.FirstPrice(table); found {
			return p
		}
	}
	if p, ok := m.RawPrice(name, menu.DefaultPriceKey); ok {
		return p
	}
	return 0
}

// ApplyAdjustments adds tax and the delivery fee to subtotal and takes off the
// promotion. The delivery fee applies to delivery orders only; unknown promo
// codes are ignored. The total never drops below zero.
func (e PricingEngine) ApplyAdjustments(subtotal float64, orderType kernel.OrderType, promoCode string) pricing.Charges {
	sub := decimal.NewFromFloat(subtotal).Round(centsPlaces)
	tax := sub.Mul(e.taxRate).Round(centsPlaces)

	fee := decimal.Zero
	if orderType == kernel.Delivery {
		fee = e.deliveryFee.Round(centsPlaces)
	}

	code := strings.ToUpper(strings.TrimSpace(promoCode))
	discount := decimal.Zero
	applied := ""
	if promo, ok := e.promos[code]; ok && code != "" {
		applied = code
		switch promo.Kind {
		case PromoPercent:
			discount = sub.Mul(decimal.NewFromFloat(promo.Value)).Div(decimal.NewFromInt(100))
		case PromoFlat:
			discount = decimal.NewFromFloat(promo.Value)
		}
		if discount.GreaterThan(sub) {
			discount = sub
		}
		if discount.IsNegative() {
			discount = decimal.Zero
		}
		discount = discount.Round(centsPlaces)
	}

	total := sub.Add(tax).Add(fee).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return pricing.Charges{
		Subtotal:    sub.InexactFloat64(),
		Tax:         tax.InexactFloat64(),
		DeliveryFee: fee.InexactFloat64(),
		Discount:    discount.InexactFloat64(),
		Total:       total.Round(centsPlaces).InexactFloat64(),
		PromoCode:   applied,
	}
}
