package menu

import (
	"sort"
	"strconv"
	"strings"
)

// Describe renders the menu as plain text lines for the operator CLI and
// logs. Prices are listed per flavor and add-on in menu order.
func (m Menu) Describe() string {
	var sb strings.Builder
	sb.WriteString(m.Summary)
	sb.WriteByte('\n')
	writeList(&sb, "Flavors", m.Flavors)
	writeList(&sb, "Sizes", m.Sizes)
	writeList(&sb, "Toppings", m.Toppings)
	writeList(&sb, "Add-ons", m.Addons)

	items := append(append([]string{}, m.Flavors...), m.Addons...)
	if len(items) == 0 {
		return sb.String()
	}
	sb.WriteString("Prices:\n")
	for _, item := range items {
		table, ok := m.PricesFor(item)
		if !ok || len(table) == 0 {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(item)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(m.describePrices(table), ", "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m Menu) describePrices(table SizePrices) []string {
	ordered := make([]string, 0, len(table))
	used := map[string]struct{}{}
	for _, size := range m.Sizes {
		if _, ok := table[size]; ok {
			ordered = append(ordered, size)
			used[size] = struct{}{}
		}
	}
	rest := make([]string, 0, len(table))
	for key := range table {
		if _, ok := used[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	out := make([]string, 0, len(ordered))
	for _, key := range ordered {
		price := "n/a"
		if p := table[key]; p != nil {
			price = strconv.FormatFloat(*p, 'f', 2, 64)
		}
		out = append(out, key+" "+price)
	}
	return out
}

func writeList(sb *strings.Builder, label string, values []string) {
	sb.WriteString(label)
	sb.WriteString(": ")
	if len(values) == 0 {
		sb.WriteString("none")
	} else {
		sb.WriteString(strings.Join(values, ", "))
	}
	sb.WriteByte('\n')
}
