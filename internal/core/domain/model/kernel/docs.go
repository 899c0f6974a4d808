// Package kernel holds the small value types shared by the ordering domain:
// record identifiers, E.164 phone numbers, spoken order numbers and the
// pickup/delivery order type.
package kernel
