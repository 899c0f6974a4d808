package menusource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Shmhzr/ai-voice/internal/core/domain/services"
)

// Rules are the operator-tunable parts of ordering that do not come from the
// menu: extra alias spellings and promotion codes.
//
// Example file:
//
//	toppings:
//	  paneer: [paneer tikka]
//	addons:
//	  coke: [pepsi]
//	promos:
//	  FRIDAY: {kind: percent, value: 10}
//	  FIVEOFF: {kind: flat, value: 5}
type Rules struct {
	Toppings services.AliasTable       `yaml:"toppings"`
	Addons   services.AliasTable       `yaml:"addons"`
	Promos   map[string]services.Promo `yaml:"promos"`
}

// DefaultRules are the built-in aliases with no promotions.
func DefaultRules() Rules {
	return Rules{
		Toppings: services.DefaultToppingAliases(),
		Addons:   services.DefaultAddonAliases(),
		Promos:   map[string]services.Promo{},
	}
}

// LoadRules merges the file at path onto DefaultRules. An empty path yields
// the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, err
	}

	var file Rules
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return rules, fmt.Errorf("decode rules %s: %w", path, err)
	}

	for code, promo := range file.Promos {
		switch promo.Kind {
		case services.PromoPercent, services.PromoFlat:
		default:
			return rules, fmt.Errorf("promo %s: unknown kind %q", code, promo.Kind)
		}
		if promo.Value < 0 {
			return rules, fmt.Errorf("promo %s: value must not be negative", code)
		}
		rules.Promos[code] = promo
	}
	rules.Toppings = rules.Toppings.Merge(file.Toppings)
	rules.Addons = rules.Addons.Merge(file.Addons)
	return rules, nil
}
