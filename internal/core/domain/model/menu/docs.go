// Package menu models the catalog the assistant sells from.
//
// A Menu is built once per fetch by Normalize and is never mutated afterwards,
// so it can be shared between concurrent calls without locking. Normalize
// accepts the canonical shape (flavors, toppings, addons, sizes, prices) as well
// as the section-based documents menu services tend to return (Pizzas, Sides,
// Drinks lists whose items carry their own sizes and prices).
package menu
