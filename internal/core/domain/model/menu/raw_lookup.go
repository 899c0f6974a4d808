package menu

import (
	"sort"
	"strings"
)

var rawPriceSections = []string{"Pizza", "Pizzas", "pizza", "pizzas", "Sides", "Drinks", "sides", "drinks"}

// RawPrice scans the unnormalized document for an item's price. It is the
// fallback for menus whose layout Normalize did not fully capture: the item is
// looked up by name or title in the well-known sections, then its sizes table
// is searched with SizeKeyCandidates, then a flat "price" is used.
func (m Menu) RawPrice(item, size string) (float64, bool) {
	root := m.Raw
	if inner, ok := root["menu"].(map[string]any); ok {
		root = inner
	}
	if root == nil {
		return 0, false
	}

	target := strings.TrimSpace(item)
	if target == "" {
		return 0, false
	}

	for _, section := range rawPriceSections {
		list, ok := root[section].([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			obj, isObj := entry.(map[string]any)
			if !isObj || !strings.EqualFold(entryName(obj), target) {
				continue
			}
			if sizes, hasSizes := obj["sizes"].(map[string]any); hasSizes {
				for _, key := range SizeKeyCandidates(size) {
					if v, found := sizes[key]; found {
						if p := priceOf(v); p != nil {
							return *p, true
						}
					}
				}
			}
			if p := priceOf(obj["price"]); p != nil {
				return *p, true
			}
		}
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
