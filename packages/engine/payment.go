package engine

import (
	"github.com/valueledger/rivulet/packages/ledger"
)

// applyPayment transfers value from the source account to the destination account, optionally creating the
// destination. Only native transfers are implemented; cross-currency payments are reserved.
func (e *Engine) applyPayment(transaction *ledger.Transaction, affected *AffectedEntries, sourceRoot *ledger.AccountRoot) (result Result) {
	essence := transaction.Essence()

	destination := essence.Destination()
	if destination.IsZero() {
		e.debugf("applyPayment: invalid transaction: payment destination account not specified")
		return ResultInvalid
	}
	if destination == essence.Source() {
		e.debugf("applyPayment: invalid transaction: source account is the same as destination")
		return ResultInvalid
	}

	create := essence.Flags().Has(ledger.FlagCreateAccount)

	// The native currency is implicit; a transaction that names it explicitly is malformed.
	currency, currencySet := essence.Currency()
	if currencySet && currency.IsNative() {
		e.debugf("applyPayment: invalid transaction: native currency explicitly specified")
		return ResultExplicitNative
	}

	destinationRoot := e.accountRoot(destination)
	if destinationRoot == nil {
		if create && currencySet {
			e.debugf("applyPayment: invalid transaction: create account may only fund native currency")
			return ResultCreateNonNative
		}
		if !create {
			e.debugf("applyPayment: delay transaction: destination account does not exist")
			return ResultNoDestination
		}

		destinationRoot = ledger.NewAccountRoot(destination, 1)
		affected.Stage(OpCreate, destinationRoot)
	} else if create {
		e.debugf("applyPayment: invalid transaction: account already created")
		return ResultCreated
	} else {
		affected.Stage(OpModify, destinationRoot)
	}

	amount := essence.Amount()
	if !currencySet {
		if !amount.IsNative() {
			e.debugf("applyPayment: invalid transaction: native transfer with a tagged amount")
			return ResultInvalid
		}

		sourceBalance := sourceRoot.Balance()
		if sourceBalance.Less(amount) {
			e.debugf("applyPayment: delay transaction: insufficient funds")
			return ResultUnfunded
		}

		sourceRoot.SetBalance(sourceBalance.Sub(amount))
		destinationRoot.SetBalance(destinationRoot.Balance().Add(amount))

		return ResultSuccess
	}

	// TODO: cross-currency payments need path support through offers.
	return ResultUnknown
}
