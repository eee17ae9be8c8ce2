package engine

import (
	"github.com/valueledger/rivulet/packages/ledger"
)

// The handlers below are reserved surface: their transaction types are part of the wire protocol, but their rule sets
// are not implemented yet. Callers must be able to rely on the result codes staying stable until they are.

func (e *Engine) applyInvoice(*ledger.Transaction, *AffectedEntries) Result {
	return ResultUnknown
}

func (e *Engine) applyOffer(*ledger.Transaction, *AffectedEntries) Result {
	return ResultUnknown
}

// applyTransitSet handles a transit fee schedule update of the source account. It installs nothing: every transit
// update is rejected as invalid.
func (e *Engine) applyTransitSet(*ledger.Transaction, *AffectedEntries) Result {
	return ResultInvalid
}

func (e *Engine) applyTake(*ledger.Transaction, *AffectedEntries) Result {
	return ResultUnknown
}

func (e *Engine) applyCancel(*ledger.Transaction, *AffectedEntries) Result {
	return ResultUnknown
}

func (e *Engine) applyStore(*ledger.Transaction, *AffectedEntries) Result {
	return ResultUnknown
}

func (e *Engine) applyDelete(*ledger.Transaction, *AffectedEntries) Result {
	return ResultUnknown
}
