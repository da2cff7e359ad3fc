// Package model defines the engine's domain types: transactions, bucket
// aggregates and the persisted cache snapshot.
package model

import "time"

// Transaction is a single confirmed transaction as reported by the explorer
// API. Identity is the hash; records are immutable once observed and are
// consumed into aggregates rather than retained individually.
type Transaction struct {
	Hash        string
	BlockNumber uint64
	Index       uint32
	Timestamp   time.Time
	Method      string
	Fee         uint64
}

// Less reports whether t precedes other in the deterministic total order:
// ascending block number, then in-block index, then lexical hash. The hash
// tiebreak is lexical rather than temporal so the order is stable across
// chain reorganizations.
func (t Transaction) Less(other Transaction) bool {
	if t.BlockNumber != other.BlockNumber {
		return t.BlockNumber < other.BlockNumber
	}
	if t.Index != other.Index {
		return t.Index < other.Index
	}
	return t.Hash < other.Hash
}
