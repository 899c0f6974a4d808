package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

var orderNumberPattern = regexp.MustCompile(`^\d{4}$`)

// OrderNumberGenerator issues the short numbers read back to callers.
// Numbers are not guaranteed unique across orders.
type OrderNumberGenerator interface {
	Next() string
}

// RandomOrderNumbers draws uniformly from 0000..9999.
type RandomOrderNumbers struct{}

func (RandomOrderNumbers) Next() string {
	return fmt.Sprintf("%04d", rand.IntN(10000)) //nolint:gosec // not a secret
}

// OrderNumberFunc adapts a plain function to OrderNumberGenerator.
type OrderNumberFunc func() string

func (f OrderNumberFunc) Next() string {
	return f()
}

// IsOrderNumber reports whether s looks like an issued order number.
func IsOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}
