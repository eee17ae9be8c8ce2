package engine

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/valueledger/rivulet/packages/ledger"
)

// region EntryOp //////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// OpCreate stages an Entry that does not exist in the ledger yet.
	OpCreate EntryOp = iota

	// OpModify stages an Entry that exists in the ledger and was changed.
	OpModify

	// OpDelete stages an Entry that is to be removed from the ledger.
	OpDelete
)

// EntryOp is the kind of mutation that a staged Entry is subject to on commit.
type EntryOp byte

// String returns a human-readable version of the EntryOp.
func (e EntryOp) String() string {
	return [...]string{
		"OpCreate",
		"OpModify",
		"OpDelete",
	}[e]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AffectedEntries //////////////////////////////////////////////////////////////////////////////////////////////

// AffectedEntry is a single staged mutation: the operation together with the Entry it applies to.
type AffectedEntry struct {
	Op    EntryOp
	Entry ledger.Entry
}

// String returns a human-readable version of the AffectedEntry.
func (a AffectedEntry) String() string {
	return stringify.Struct("AffectedEntry",
		stringify.StructField("op", a.Op),
		stringify.StructField("entry", a.Entry),
	)
}

// AffectedEntries is the staged mutation list that is built up while a transaction is applied. The list is committed
// to the store in order, and only if the transaction succeeds; entries staged by a failed transaction are simply
// dropped, which restores the exact pre-transaction state.
type AffectedEntries []AffectedEntry

// Stage appends a mutation to the list. Staging an Entry does not copy it: later changes to the Entry are still
// visible when the list is committed.
func (a *AffectedEntries) Stage(op EntryOp, entry ledger.Entry) {
	*a = append(*a, AffectedEntry{Op: op, Entry: entry})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
