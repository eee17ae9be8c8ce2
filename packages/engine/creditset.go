package engine

import (
	"github.com/valueledger/rivulet/packages/ledger"
)

// applyCreditSet establishes or updates the credit limit that the source account extends to the destination account
// in one currency, and makes sure the source account's line directory lists the line.
func (e *Engine) applyCreditSet(transaction *ledger.Transaction, affected *AffectedEntries) (result Result) {
	essence := transaction.Essence()
	source := essence.Source()

	destination := essence.Destination()
	if destination.IsZero() {
		e.debugf("applyCreditSet: invalid transaction: destination account not specified")
		return ResultDestinationNeeded
	}
	if source == destination {
		e.debugf("applyCreditSet: invalid transaction: source account is the same as destination")
		return ResultDestinationIsSource
	}

	if e.accountRoot(destination) == nil {
		e.debugf("applyCreditSet: delay transaction: destination account does not exist")
		return ResultNoDestination
	}

	limitAmount := essence.LimitAmount()
	currency := limitAmount.Currency()
	sourceIsLow := source.Less(destination)
	indexedFlag := ledger.RippleStateHighIndexed
	if sourceIsLow {
		indexedFlag = ledger.RippleStateLowIndexed
	}

	var addIndex bool

	rippleState := e.rippleState(source, destination, currency)
	switch {
	case rippleState != nil:
		e.debugf("applyCreditSet: modifying credit line")

		addIndex = !rippleState.Flags().Has(indexedFlag)

		if sourceIsLow {
			rippleState.SetLowLimit(limitAmount)
		} else if !e.Options.CompatHighIDLimit {
			rippleState.SetHighLimit(limitAmount)
		}
		// In compatibility mode an update from the high side leaves the stored limit untouched: the historical
		// behavior wrote the limit into the high account id field instead of the high limit field.

		affected.Stage(OpModify, rippleState)

		if addIndex {
			rippleState.SetFlags(rippleState.Flags().Set(indexedFlag))
		}

	case limitAmount.IsZero():
		// The line does not exist, and a zero limit would create nothing worth storing.
		e.debugf("applyCreditSet: setting non-existing credit line to 0")
		return ResultNoLineNoZero

	default:
		addIndex = true
		rippleState = ledger.NewRippleState(source, destination, currency)

		e.debugf("applyCreditSet: creating credit line: %s", rippleState.Index())

		rippleState.SetFlags(indexedFlag)
		if sourceIsLow {
			rippleState.SetLowLimit(limitAmount)
		} else {
			rippleState.SetHighLimit(limitAmount)
		}

		affected.Stage(OpCreate, rippleState)
	}

	if addIndex {
		// List the line in the source account's directory, so clients can walk who the account has extended credit
		// to and who is owed by it. The returned page number is not tracked: credit line directories never shrink.
		_, result = e.dirAdd(affected, source.PaddedEntryIndex(), ledger.RippleStateEntry, rippleState.Index())

		return result
	}

	return ResultSuccess
}
