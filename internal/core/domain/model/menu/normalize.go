package menu

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const maxWrapperDepth = 3

var wrapperKeys = []string{"menu", "data", "result"}

type sectionKind int

const (
	notASection sectionKind = iota
	flavorSection
	toppingSection
	addonSection
)

func classifySection(key string) sectionKind {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "pizza", "pizzas", "flavors", "flavours":
		return flavorSection
	case "toppings":
		return toppingSection
	case "sides", "drinks", "addons", "add-ons", "extras", "beverages", "desserts":
		return addonSection
	}
	return notASection
}

// Normalize converts a fetched menu document into a Menu. Unknown keys are
// ignored and malformed entries are skipped, so any document yields a usable
// (possibly empty) menu.
func Normalize(raw map[string]any) Menu {
	m := Empty()
	if raw == nil {
		return m
	}
	m.Raw = raw

	b := newBuilder()
	doc := unwrap(raw)

	if s, ok := doc["summary"].(string); ok && strings.TrimSpace(s) != "" {
		m.Summary = strings.TrimSpace(s)
	}

	explicitSizes := false
	if sizes, ok := doc["sizes"].([]any); ok {
		for _, s := range sizes {
			if name := entryName(s); name != "" {
				b.addSize(name)
				explicitSizes = true
			}
		}
	}

	keys := sortedKeys(doc)
	for _, key := range keys {
		if key == "prices" {
			continue
		}
		kind := classifySection(key)
		if kind == notASection {
			continue
		}
		list, ok := doc[key].([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			b.addEntry(kind, entry, !explicitSizes)
		}
	}

	if prices, ok := doc["prices"].(map[string]any); ok {
		for _, name := range sortedKeys(prices) {
			b.setPrices(name, prices[name])
		}
	}

	m.Flavors = b.flavors
	m.Toppings = b.toppings
	m.Addons = b.addons
	m.Sizes = b.sizes
	m.Prices = b.prices
	return m
}

type builder struct {
	flavors, toppings, addons, sizes []string
	seen                             map[sectionKind]map[string]struct{}
	seenSizes                        map[string]struct{}
	prices                           map[string]SizePrices
}

func newBuilder() *builder {
	return &builder{
		flavors:   []string{},
		toppings:  []string{},
		addons:    []string{},
		sizes:     []string{},
		seen:      map[sectionKind]map[string]struct{}{},
		seenSizes: map[string]struct{}{},
		prices:    map[string]SizePrices{},
	}
}

func (b *builder) addName(kind sectionKind, name string) {
	set, ok := b.seen[kind]
	if !ok {
		set = map[string]struct{}{}
		b.seen[kind] = set
	}
	lower := strings.ToLower(name)
	if _, dup := set[lower]; dup {
		return
	}
	set[lower] = struct{}{}

	switch kind {
	case flavorSection:
		b.flavors = append(b.flavors, name)
	case toppingSection:
		b.toppings = append(b.toppings, name)
	case addonSection:
		b.addons = append(b.addons, name)
	case notASection:
	}
}

func (b *builder) addSize(name string) {
	lower := strings.ToLower(name)
	if _, dup := b.seenSizes[lower]; dup {
		return
	}
	b.seenSizes[lower] = struct{}{}
	b.sizes = append(b.sizes, name)
}

func (b *builder) addEntry(kind sectionKind, entry any, collectSizes bool) {
	name := entryName(entry)
	if name == "" {
		return
	}
	b.addName(kind, name)

	obj, ok := entry.(map[string]any)
	if !ok {
		return
	}
	if sizes, isMap := obj["sizes"].(map[string]any); isMap {
		for _, size := range sizesByPrice(sizes) {
			if collectSizes && kind == flavorSection {
				b.addSize(size)
			}
			b.putPrice(name, size, priceOf(sizes[size]))
		}
	}
	if v, has := obj["price"]; has {
		b.putPrice(name, DefaultPriceKey, priceOf(v))
	}
}

// setPrices reads one entry of a canonical prices table. The value is either
// a size table or a single price stored under DefaultPriceKey.
func (b *builder) setPrices(name string, v any) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if sizes, ok := v.(map[string]any); ok {
		for _, size := range sortedKeys(sizes) {
			b.putPrice(name, size, priceOf(sizes[size]))
		}
		if len(sizes) == 0 {
			b.ensureTable(name)
		}
		return
	}
	b.putPrice(name, DefaultPriceKey, priceOf(v))
}

func (b *builder) ensureTable(name string) SizePrices {
	table, ok := b.prices[name]
	if !ok {
		table = SizePrices{}
		b.prices[name] = table
	}
	if lower := strings.ToLower(name); lower != name {
		b.prices[lower] = table
	}
	return table
}

func (b *builder) putPrice(name, size string, price *float64) {
	table := b.ensureTable(name)
	if existing, ok := table[size]; ok && existing != nil && price == nil {
		return
	}
	table[size] = price
}

// sizesByPrice orders a sizes table cheapest first, so that sizes collected
// from items come out as small, medium, large. Unpriced sizes go last.
func sizesByPrice(sizes map[string]any) []string {
	keys := sortedKeys(sizes)
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := priceOf(sizes[keys[i]]), priceOf(sizes[keys[j]])
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		}
		return *pi < *pj
	})
	return keys
}

func unwrap(doc map[string]any) map[string]any {
	for range maxWrapperDepth {
		next, ok := nestedWrapper(doc)
		if !ok {
			break
		}
		doc = next
	}
	return doc
}

func nestedWrapper(doc map[string]any) (map[string]any, bool) {
	for _, key := range wrapperKeys {
		if inner, ok := doc[key].(map[string]any); ok {
			return inner, true
		}
	}
	return nil, false
}

// entryName reads a section entry's display name from a bare string or from
// the "name"/"title" field of an object.
func entryName(entry any) string {
	switch v := entry.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, key := range []string{"name", "title"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// priceOf reads a price from a number, a numeric string or an object carrying
// "price" or "cost". Anything else is a null price.
func priceOf(v any) *float64 {
	switch p := v.(type) {
	case float64:
		return &p
	case float32:
		f := float64(p)
		return &f
	case int:
		f := float64(p)
		return &f
	case int64:
		f := float64(p)
		return &f
	case uint64:
		f := float64(p)
		return &f
	case json.Number:
		if f, err := p.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			return &f
		}
	case map[string]any:
		for _, key := range []string{"price", "cost"} {
			if inner, ok := p[key]; ok {
				return priceOf(inner)
			}
		}
	}
	return nil
}
