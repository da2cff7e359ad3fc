package engine

import (
	"slices"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// Index is a hash-keyed merge index for incoming transaction batches.
// Re-ingesting an identical batch is a no-op.
type Index struct {
	byHash map[string]model.Transaction
}

// NewIndex returns an empty merge index.
func NewIndex() *Index {
	return &Index{byHash: make(map[string]model.Transaction)}
}

// Add merges a batch into the index, keyed by hash, and returns how many
// transactions were new.
func (i *Index) Add(batch []model.Transaction) int {
	added := 0
	for _, tx := range batch {
		if _, seen := i.byHash[tx.Hash]; seen {
			continue
		}
		i.byHash[tx.Hash] = tx
		added++
	}
	return added
}

// Len reports the number of distinct transactions merged so far.
func (i *Index) Len() int {
	return len(i.byHash)
}

// Ordered returns the merged transactions in the deterministic total order:
// ascending (block number, in-block index, hash).
func (i *Index) Ordered() []model.Transaction {
	txs := make([]model.Transaction, 0, len(i.byHash))
	for _, tx := range i.byHash {
		txs = append(txs, tx)
	}
	slices.SortFunc(txs, func(a, b model.Transaction) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return txs
}
