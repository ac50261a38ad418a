// Package order provides domain entities and business logic for the order
// fulfillment lifecycle. It implements the Order aggregate root with its line
// items, the append-only status ledger, and the guard matrix that gates every
// mutation.
//
// The package includes:
//   - Order: The aggregate root managing identity, assignment, scheduling,
//     delivery, cancellation and soft deletion
//   - Status: A state machine over the ledger's status vocabulary
//     (PENDIENTE, PREPARANDO, DESPACHADO, ENTREGADO, CANCELADO, DEVUELTO)
//   - Item: Line items owned by an order and replaced wholesale on update
//   - StatusHistoryEntry: One record of the append-only status ledger
//
// Key business rules:
//   - The ledger is the authoritative source of an order's current status;
//     the aggregate caches the latest entry's status and every predicate
//     reads that cache
//   - Assignment, scheduling and delivery dates are orthogonal facts that
//     the guard matrix cross-checks against the status
//   - Ledger entries are never edited or removed; corrections are new entries
//   - Orders are soft-deleted via the active flag, never physically removed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
