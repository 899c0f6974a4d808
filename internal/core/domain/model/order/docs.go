// Package order provides the Order aggregate created when a caller checks out.
//
// An order moves through two independent state machines:
//   - Stage tracks the in-call lifecycle: Pending after checkout, then either
//     Committed (finalized, priced against the live menu, persisted) or Discarded.
//   - Status tracks kitchen progress once committed: received, preparing, ready.
//     Every status other than ready counts toward the per-phone active order limit.
//
// Orders are created only through NewOrder or RestoreOrder.
package order
