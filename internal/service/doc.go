// Package service contains the item service's application logic.
//
// Its central piece is ItemProcessor, which re-processes every stored item
// as one batch run: it snapshots the item IDs, fans one task per ID out onto
// the shared worker pool, waits for every task to finish and returns the
// items that were processed successfully, in snapshot order.
//
// Per-item failures never fail a batch. Each task reports an explicit
// Outcome through its own single-use channel, so no result state is shared
// between tasks.
package service
