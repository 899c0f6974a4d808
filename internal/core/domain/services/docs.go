// Package services contains the stateless domain services of the ordering
// backend: AliasMatcher turns transcribed names into menu entries and
// PricingEngine turns a cart into money.
//
// Both are pure functions of their inputs and a Menu snapshot, which is what
// lets them run outside any session lock.
package services
