package engine

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"

	"github.com/valueledger/rivulet/packages/ledger"
)

// region LedgerStore //////////////////////////////////////////////////////////////////////////////////////////////////

// LedgerStore is the view of the authoritative ledger store that the engine works against. Reads hand out deep
// copies; nothing the engine mutates becomes visible before it is written back.
type LedgerStore interface {
	// Lock acquires the exclusive per-ledger lock.
	Lock()

	// Unlock releases the exclusive per-ledger lock.
	Unlock()

	// AccountRoot reads the AccountRoot of the given account (nil if absent).
	AccountRoot(accountID ledger.AccountID) (*ledger.AccountRoot, error)

	// DirectoryRoot reads the DirectoryRoot at the given EntryIndex (nil if absent).
	DirectoryRoot(rootIndex ledger.EntryIndex) (*ledger.DirectoryRoot, error)

	// DirectoryNode reads the DirectoryNode at the given EntryIndex (nil if absent).
	DirectoryNode(nodeIndex ledger.EntryIndex) (*ledger.DirectoryNode, error)

	// RippleState reads the credit line between the two accounts in the given currency (nil if absent).
	RippleState(a, b ledger.AccountID, currency ledger.CurrencyID) (*ledger.RippleState, error)

	// Generator reads the GeneratorMap of the given generator id (nil if absent).
	Generator(generatorID ledger.AccountID) (*ledger.GeneratorMap, error)

	// WriteBack stores the given Entry with create or update semantics.
	WriteBack(mode ledger.WriteMode, entry ledger.Entry) error

	// DeleteEntry removes the Entry at the given EntryIndex from the account state map.
	DeleteEntry(entryIndex ledger.EntryIndex) bool

	// HasTransaction returns true if a transaction with the given id was already applied.
	HasTransaction(transactionID ledger.TransactionID) bool

	// AddTransaction appends the given raw transaction and the fee it paid to the transaction log.
	AddTransaction(transactionID ledger.TransactionID, rawTransaction []byte, feePaid int64)
}

// code contract (make sure the type implements all required methods)
var _ LedgerStore = &ledger.Ledger{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Engine ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Engine is the state-transition engine of the ledger. It validates a signed transaction against the current ledger
// state and, on success, commits the resulting set of typed entry mutations together with the transaction itself.
type Engine struct {
	Options *Options

	store LedgerStore
}

// New creates an Engine that applies transactions against the given store.
func New(store LedgerStore, options ...Option) (engine *Engine) {
	engine = &Engine{
		store: store,
	}
	engine.Configure(options...)

	return
}

// Configure modifies the configuration of the Engine.
func (e *Engine) Configure(options ...Option) {
	if e.Options == nil {
		e.Options = &Options{
			Fees:              DefaultFeeSchedule,
			CompatHighIDLimit: true,
		}
	}

	for _, option := range options {
		option(e.Options)
	}
}

// ApplyTransaction validates the given transaction against the current ledger state and, if it is valid, commits its
// mutations and appends it to the ledger's transaction log. The whole apply runs under the store's exclusive lock; on
// any non-success Result the store is left untouched.
func (e *Engine) ApplyTransaction(transaction *ledger.Transaction, params ApplyFlags) (result Result) {
	transactionID := transaction.ID()
	if transactionID.IsZero() {
		e.debugf("applyTransaction: invalid transaction id")
		return ResultInvalid
	}

	// Transactions carry their signing key, so a transaction can be checked for a proper signature without touching
	// the ledger at all. Only the claim handler checks that the key belongs to the source account; the other handlers
	// do not check which key signed.
	if !transaction.SignatureValid() {
		e.debugf("applyTransaction: invalid transaction: bad signature")
		return ResultInvalid
	}

	essence := transaction.Essence()

	cost := e.Options.Fees.Default
	switch essence.Type() {
	case ledger.TransactionTypeClaim:
		cost = 0

	case ledger.TransactionTypePayment:
		if essence.Flags().Has(ledger.FlagCreateAccount) {
			cost = e.Options.Fees.Create
		}

	case ledger.TransactionTypeInvoice, ledger.TransactionTypeOffer, ledger.TransactionTypeCreditSet, ledger.TransactionTypeTransitSet:
		// Default cost.

	case ledger.TransactionTypeInvalid:
		e.debugf("applyTransaction: invalid transaction: unusable transaction type")
		return ResultInvalid

	default:
		e.debugf("applyTransaction: invalid transaction: unknown transaction type")
		return ResultUnknown
	}

	feePaid := essence.Fee()
	if !params.Has(ApplyNoCheckFee) {
		if cost > 0 {
			if feePaid < cost {
				e.debugf("applyTransaction: insufficient fee")
				return ResultInsufficientFeePaid
			}
		} else if feePaid != 0 {
			e.debugf("applyTransaction: fee not allowed")
			return ResultInsufficientFeePaid
		}
	}

	source := essence.Source()
	if source.IsZero() {
		e.debugf("applyTransaction: bad source id")
		return ResultInvalid
	}

	e.store.Lock()
	defer e.store.Unlock()

	sourceRoot := e.accountRoot(source)
	if sourceRoot == nil {
		e.debugf("applyTransaction: delay transaction: source account does not exist: %s", source)
		return ResultNoAccount
	}

	// The fee is deducted up front so that it is not spendable during the transaction. The debited account is only
	// written back if the transaction succeeds.
	if cost > 0 {
		sourceBalance := sourceRoot.Balance()
		paid := ledger.NewNativeAmount(feePaid)
		if sourceBalance.Less(paid) {
			e.debugf("applyTransaction: delay transaction: insufficient balance: balance=%d paid=%d", sourceBalance.Value(), feePaid)
			return ResultInsufficientFeeBalance
		}
		sourceRoot.SetBalance(sourceBalance.Sub(paid))
	}

	transactionSequence := essence.Sequence()
	if cost > 0 {
		accountSequence := sourceRoot.Sequence()
		if transactionSequence != accountSequence {
			if accountSequence < transactionSequence {
				e.debugf("applyTransaction: future sequence number")
				return ResultPreSequence
			}
			if e.store.HasTransaction(transactionID) {
				e.debugf("applyTransaction: duplicate transaction")
				return ResultAlreadyApplied
			}

			e.debugf("applyTransaction: past sequence number")
			return ResultPastSequence
		}
		sourceRoot.SetSequence(transactionSequence + 1)
	} else if transactionSequence != 0 {
		e.debugf("applyTransaction: bad sequence for pre-paid transaction")
		return ResultPastSequence
	}

	affected := make(AffectedEntries, 0)
	affected.Stage(OpModify, sourceRoot)

	switch essence.Type() {
	case ledger.TransactionTypeClaim:
		result = e.applyClaim(transaction, &affected, sourceRoot)

	case ledger.TransactionTypeCreditSet:
		result = e.applyCreditSet(transaction, &affected)

	case ledger.TransactionTypeInvalid:
		e.debugf("applyTransaction: invalid type")
		result = ResultInvalid

	case ledger.TransactionTypeInvoice:
		result = e.applyInvoice(transaction, &affected)

	case ledger.TransactionTypeOffer:
		result = e.applyOffer(transaction, &affected)

	case ledger.TransactionTypePayment:
		result = e.applyPayment(transaction, &affected, sourceRoot)

	case ledger.TransactionTypeTransitSet:
		result = e.applyTransitSet(transaction, &affected)

	default:
		result = ResultUnknown
	}

	if result == ResultSuccess {
		e.commit(affected)
		e.store.AddTransaction(transactionID, transaction.Bytes(), feePaid)
	}

	return result
}

// commit applies the staged mutation list to the store, in order. A failing write-back means the engine's staged view
// and the store have diverged, which must never happen; it aborts the enclosing ledger round.
func (e *Engine) commit(affected AffectedEntries) {
	for _, affectedEntry := range affected {
		switch affectedEntry.Op {
		case OpCreate:
			if err := e.store.WriteBack(ledger.WriteModeCreate, affectedEntry.Entry); err != nil {
				panic(errors.Errorf("commit: failed to create entry %s: %w", affectedEntry.Entry.Index(), err))
			}
		case OpModify:
			if err := e.store.WriteBack(ledger.WriteModeUpdate, affectedEntry.Entry); err != nil {
				panic(errors.Errorf("commit: failed to update entry %s: %w", affectedEntry.Entry.Index(), err))
			}
		case OpDelete:
			if !e.store.DeleteEntry(affectedEntry.Entry.Index()) {
				panic(errors.Errorf("commit: failed to delete entry %s", affectedEntry.Entry.Index()))
			}
		}
	}
}

// The typed read helpers below treat store failures as fatal: the engine has no way to make progress on a ledger it
// cannot read consistently.

func (e *Engine) accountRoot(accountID ledger.AccountID) *ledger.AccountRoot {
	accountRoot, err := e.store.AccountRoot(accountID)
	if err != nil {
		panic(err)
	}

	return accountRoot
}

func (e *Engine) directoryRoot(rootIndex ledger.EntryIndex) *ledger.DirectoryRoot {
	directoryRoot, err := e.store.DirectoryRoot(rootIndex)
	if err != nil {
		panic(err)
	}

	return directoryRoot
}

func (e *Engine) directoryNode(nodeIndex ledger.EntryIndex) *ledger.DirectoryNode {
	directoryNode, err := e.store.DirectoryNode(nodeIndex)
	if err != nil {
		panic(err)
	}

	return directoryNode
}

func (e *Engine) rippleState(a, b ledger.AccountID, currency ledger.CurrencyID) *ledger.RippleState {
	rippleState, err := e.store.RippleState(a, b, currency)
	if err != nil {
		panic(err)
	}

	return rippleState
}

func (e *Engine) generator(generatorID ledger.AccountID) *ledger.GeneratorMap {
	generatorMap, err := e.store.Generator(generatorID)
	if err != nil {
		panic(err)
	}

	return generatorMap
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.Options.Log != nil {
		e.Options.Log.Debugf(format, args...)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Engine to
// configure its behavior.
type Option func(*Options)

// Options is a container for all configurable parameters of the Engine.
type Options struct {
	Fees              FeeSchedule
	Log               *logger.Logger
	CompatHighIDLimit bool
}

// Fees is an Option for the Engine that replaces the fee schedule.
func Fees(fees FeeSchedule) Option {
	return func(options *Options) {
		options.Fees = fees
	}
}

// Log is an Option for the Engine that attaches a logger for the engine's debug traces.
func Log(log *logger.Logger) Option {
	return func(options *Options) {
		options.Log = log
	}
}

// CompatHighIDLimit is an Option for the Engine that controls the historical credit-set quirk: with compatibility
// enabled (the default), updating an existing line from its high side does not store the new limit. Disabling it
// stores the limit in the high limit field.
func CompatHighIDLimit(enabled bool) Option {
	return func(options *Options) {
		options.CompatHighIDLimit = enabled
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
