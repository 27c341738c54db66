// Package models defines the core domain records for splitledger.
//
// # Models
//
//   - User: a registered account; referenced by id, never mutated here
//   - Group: a named set of member user ids that expenses are split within
//   - Expense: a payment by one user, split among a set of participants
//   - Settlement: a claim that a debtor paid a creditor out-of-band,
//     requiring creditor acknowledgment before it affects balances
//
// # Design Principles
//
//  1. **Canonical ids**: every user reference is a UserID. The storage layer
//     normalizes ids at the boundary so the engine can use plain equality.
//  2. **Decimal money**: all amounts are shopspring decimals, never floats,
//     so share division and epsilon comparisons stay exact.
//  3. **Avoid circular references**: relationships use id strings instead of
//     pointers.
//  4. **Read-only for the engine**: the balance engine only ever reads these
//     records; writes happen in the storage layer.
package models
