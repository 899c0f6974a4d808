package services

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// AliasTable maps a canonical name to the variant spellings callers use for it.
type AliasTable map[string][]string

// Merge returns a new table with extra's variants added to t's.
func (t AliasTable) Merge(extra AliasTable) AliasTable {
	out := make(AliasTable, len(t)+len(extra))
	for k, v := range t {
		out[k] = slices.Clone(v)
	}
	for k, v := range extra {
		out[k] = append(out[k], v...)
	}
	return out
}

// DefaultToppingAliases covers the topping spellings seen in transcripts.
func DefaultToppingAliases() AliasTable {
	return AliasTable{
		"paneer":     {"panir"},
		"onion":      {"onions"},
		"capsicum":   {"caps", "capsicums", "bell pepper", "bell peppers"},
		"mushrooms":  {"mushroom"},
		"sweet corn": {"corn"},
		"jalapeno":   {"jalapeño", "jalapenos", "jalapeños"},
		"tomato":     {"tomatoes"},
	}
}

// DefaultAddonAliases covers the add-on spellings seen in transcripts.
func DefaultAddonAliases() AliasTable {
	return AliasTable{
		"garlic bread":    {"garlic breads", "garlic loaf"},
		"coke":            {"coca cola", "coca-cola", "cola", "coke zero"},
		"choco lava cake": {"lava cake", "chocolate lava cake", "choco lava"},
	}
}

// AliasMatcher resolves free-form names against a list of canonical names.
type AliasMatcher struct{}

func NewAliasMatcher() AliasMatcher {
	return AliasMatcher{}
}

// Resolve applies, in order: exact match on canonical names; exact match on
// an alias key or variant; substring match (either direction) on variants;
// substring match (either direction) on canonical names. Comparison is
// case-insensitive after Unicode NFC normalization. The returned name uses the
// canonical list's casing when the winning entry is on it.
func (AliasMatcher) Resolve(input string, canonical []string, aliases AliasTable) (string, bool) {
	v := fold(input)
	if v == "" {
		return "", false
	}

	for _, name := range canonical {
		if fold(name) == v {
			return name, true
		}
	}

	keys := slices.Sorted(maps.Keys(aliases))

	for _, key := range keys {
		if fold(key) == v {
			return displayName(key, aliases[key], canonical), true
		}
		for _, variant := range aliases[key] {
			if fold(variant) == v {
				return displayName(key, aliases[key], canonical), true
			}
		}
	}

	for _, key := range keys {
		for _, variant := range aliases[key] {
			fv := fold(variant)
			if fv != "" && (strings.Contains(fv, v) || strings.Contains(v, fv)) {
				return displayName(key, aliases[key], canonical), true
			}
		}
	}

	for _, name := range canonical {
		fn := fold(name)
		if fn != "" && (strings.Contains(fn, v) || strings.Contains(v, fn)) {
			return name, true
		}
	}

	return "", false
}

// displayName prefers the canonical spelling of key, then of any of its
// variants, then key itself.
func displayName(key string, variants, canonical []string) string {
	for _, candidate := range append([]string{key}, variants...) {
		fc := fold(candidate)
		for _, name := range canonical {
			if fold(name) == fc {
				return name
			}
		}
	}
	return key
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
