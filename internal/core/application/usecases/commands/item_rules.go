package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/services"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// ItemRules validates cart lines against the live menu.
type ItemRules struct {
	matcher        services.AliasMatcher
	toppingAliases services.AliasTable
	addonAliases   services.AliasTable
}

// NewItemRules builds rules over the given alias tables. Nil tables fall back
// to the built-in ones.
func NewItemRules(toppingAliases, addonAliases services.AliasTable) ItemRules {
	if toppingAliases == nil {
		toppingAliases = services.DefaultToppingAliases()
	}
	if addonAliases == nil {
		addonAliases = services.DefaultAddonAliases()
	}
	return ItemRules{
		matcher:        services.NewAliasMatcher(),
		toppingAliases: toppingAliases,
		addonAliases:   addonAliases,
	}
}

// Flavor resolves a spoken flavor to the menu's spelling: first against the
// listed flavors, then against the other priced items. Add-ons and toppings
// are priced items too, but never count as a flavor.
func (r ItemRules) Flavor(m menu.Menu, name string) (string, error) {
	if resolved, ok := r.matcher.Resolve(name, m.Flavors, nil); ok {
		return resolved, nil
	}
	if resolved, ok := r.matcher.Resolve(name, secondaryFlavors(m), nil); ok {
		return resolved, nil
	}
	return "", errs.NewRejectionError(fmt.Sprintf("'%s' is not on the menu.", strings.TrimSpace(name)))
}

// Toppings resolves every topping or rejects the first unknown one.
func (r ItemRules) Toppings(m menu.Menu, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		resolved, ok := r.matcher.Resolve(name, m.Toppings, r.toppingAliases)
		if !ok {
			return nil, errs.NewRejectionError(fmt.Sprintf("Topping '%s' not available.", strings.TrimSpace(name)))
		}
		if !slices.Contains(out, resolved) {
			out = append(out, resolved)
		}
	}
	return out, nil
}

// Addons resolves every add-on or rejects the first unknown one.
func (r ItemRules) Addons(m menu.Menu, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		resolved, ok := r.matcher.Resolve(name, m.Addons, r.addonAliases)
		if !ok {
			return nil, errs.NewRejectionError(fmt.Sprintf("Add-on '%s' not available.", strings.TrimSpace(name)))
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Size returns the menu spelling of size, or the default size when blank.
func (r ItemRules) Size(m menu.Menu, size string) string {
	if strings.TrimSpace(size) == "" {
		return m.DefaultSize()
	}
	return m.ResolveSize(size)
}

func secondaryFlavors(m menu.Menu) []string {
	excluded := make(map[string]struct{}, len(m.Toppings)+len(m.Addons))
	for _, name := range m.Toppings {
		excluded[strings.ToLower(name)] = struct{}{}
	}
	for _, name := range m.Addons {
		excluded[strings.ToLower(name)] = struct{}{}
	}

	var out []string
	for _, name := range m.PricedItems() {
		if _, skip := excluded[strings.ToLower(name)]; !skip {
			out = append(out, name)
		}
	}
	return out
}
