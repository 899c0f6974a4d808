package queries

import (
	"context"
	"errors"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrMenuSummaryQueryIsNotConstructed = errors.New(
		"MenuSummaryQuery must be created via NewMenuSummaryQuery constructor",
	)
)

// MenuSummaryQuery reads the current menu, optionally forcing a refetch.
type MenuSummaryQuery struct {
	refresh bool

	guard guard.ConstructorGuard
}

func NewMenuSummaryQuery(refresh bool) MenuSummaryQuery {
	return MenuSummaryQuery{refresh: refresh, guard: guard.NewConstructorGuard()}
}

func (q MenuSummaryQuery) Validate() error {
	return q.guard.Validate(ErrMenuSummaryQueryIsNotConstructed)
}

func (q MenuSummaryQuery) Refresh() bool {
	return q.refresh
}

// MenuSummaryQueryResponse is the menu as the agent reads it out. Prices is
// keyed by display name only; lowercase mirror keys are left out.
type MenuSummaryQueryResponse struct {
	Summary     string
	Flavors     []string
	Toppings    []string
	Addons      []string
	Sizes       []string
	Prices      map[string]menu.SizePrices
	Description string
}

type MenuSummaryQueryHandler struct {
	menus MenuProvider
}

func NewMenuSummaryQueryHandler(menus MenuProvider) MenuSummaryQueryHandler {
	return MenuSummaryQueryHandler{menus: menus}
}

func (h MenuSummaryQueryHandler) Handle(ctx context.Context, query MenuSummaryQuery) (MenuSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return MenuSummaryQueryResponse{}, err
	}

	m := h.menus.Get(ctx, query.Refresh())

	prices := make(map[string]menu.SizePrices, len(m.Prices))
	for _, name := range m.PricedItems() {
		if p, ok := m.PricesFor(name); ok {
			prices[name] = p
		}
	}

	return MenuSummaryQueryResponse{
		Summary:     m.Summary,
		Flavors:     nonNil(m.Flavors),
		Toppings:    nonNil(m.Toppings),
		Addons:      nonNil(m.Addons),
		Sizes:       nonNil(m.Sizes),
		Prices:      prices,
		Description: m.Describe(),
	}, nil
}

// ExtractPhoneAndOrderQuery pulls a phone number and a four-digit order
// number out of a transcript fragment. It needs no handler state.
type ExtractPhoneAndOrderQuery struct {
	text string
}

func NewExtractPhoneAndOrderQuery(text string) ExtractPhoneAndOrderQuery {
	return ExtractPhoneAndOrderQuery{text: text}
}

func (q ExtractPhoneAndOrderQuery) Handle() kernel.Contact {
	return kernel.ExtractContact(q.text)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
