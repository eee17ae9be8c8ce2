package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/syncutils"
)

// region WriteMode ////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// WriteModeUpdate writes back an Entry that already exists in the ledger.
	WriteModeUpdate WriteMode = iota

	// WriteModeCreate writes back an Entry that must not exist in the ledger yet.
	WriteModeCreate
)

// WriteMode selects the write-back semantics of Ledger.WriteBack.
type WriteMode byte

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Ledger ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Realm prefixes that separate the key spaces of the backing KVStore.
const (
	prefixEntries byte = iota
	prefixTransactions
)

// Ledger is the authoritative store of a single ledger snapshot. It holds the typed entries of the account state map
// and the log of applied transactions, both persisted in a key-value store. All reads hand out deep copies, so a
// fetched Entry can be mutated freely without touching the stored state until it is written back.
type Ledger struct {
	Options *Options

	entries      kvstore.KVStore
	transactions kvstore.KVStore
	feePool      int64
	mutex        syncutils.Mutex
}

// NewLedger creates a Ledger over the configured KVStore (an in-memory map by default).
func NewLedger(options ...Option) (ledger *Ledger) {
	ledger = &Ledger{}
	ledger.Configure(options...)

	var err error
	ledger.entries, err = ledger.Options.Store.WithRealm([]byte{prefixEntries})
	if err != nil {
		panic(err)
	}
	ledger.transactions, err = ledger.Options.Store.WithRealm([]byte{prefixTransactions})
	if err != nil {
		panic(err)
	}

	return
}

// Configure modifies the configuration of the Ledger.
func (l *Ledger) Configure(options ...Option) {
	if l.Options == nil {
		l.Options = &Options{
			Store: mapdb.NewMapDB(),
		}
	}

	for _, option := range options {
		option(l.Options)
	}
}

// Lock acquires the exclusive per-ledger lock. The transaction engine holds it for the whole duration of an apply.
func (l *Ledger) Lock() {
	l.mutex.Lock()
}

// Unlock releases the exclusive per-ledger lock.
func (l *Ledger) Unlock() {
	l.mutex.Unlock()
}

// AccountRoot reads the AccountRoot of the given account. It returns nil if the account does not exist.
func (l *Ledger) AccountRoot(accountID AccountID) (accountRoot *AccountRoot, err error) {
	entry, err := l.Entry(AccountRootIndex(accountID))
	if entry == nil || err != nil {
		return
	}

	accountRoot, typeOK := entry.(*AccountRoot)
	if !typeOK {
		err = errors.Errorf("entry at %s is a %s, not an AccountRoot", entry.Index(), entry.Type())
	}

	return
}

// DirectoryRoot reads the DirectoryRoot at the given EntryIndex. It returns nil if the directory does not exist.
func (l *Ledger) DirectoryRoot(rootIndex EntryIndex) (directoryRoot *DirectoryRoot, err error) {
	entry, err := l.Entry(rootIndex)
	if entry == nil || err != nil {
		return
	}

	directoryRoot, typeOK := entry.(*DirectoryRoot)
	if !typeOK {
		err = errors.Errorf("entry at %s is a %s, not a DirectoryRoot", entry.Index(), entry.Type())
	}

	return
}

// DirectoryNode reads the DirectoryNode at the given EntryIndex. It returns nil if the page does not exist.
func (l *Ledger) DirectoryNode(nodeIndex EntryIndex) (directoryNode *DirectoryNode, err error) {
	entry, err := l.Entry(nodeIndex)
	if entry == nil || err != nil {
		return
	}

	directoryNode, typeOK := entry.(*DirectoryNode)
	if !typeOK {
		err = errors.Errorf("entry at %s is a %s, not a DirectoryNode", entry.Index(), entry.Type())
	}

	return
}

// RippleState reads the credit line between the two given accounts in the given currency, canonicalizing the account
// order. It returns nil if no such line exists.
func (l *Ledger) RippleState(a, b AccountID, currency CurrencyID) (rippleState *RippleState, err error) {
	entry, err := l.Entry(RippleStateIndex(a, b, currency))
	if entry == nil || err != nil {
		return
	}

	rippleState, typeOK := entry.(*RippleState)
	if !typeOK {
		err = errors.Errorf("entry at %s is a %s, not a RippleState", entry.Index(), entry.Type())
	}

	return
}

// Generator reads the GeneratorMap of the given generator id. It returns nil if the generator is not registered.
func (l *Ledger) Generator(generatorID AccountID) (generatorMap *GeneratorMap, err error) {
	entry, err := l.Entry(GeneratorMapIndex(generatorID))
	if entry == nil || err != nil {
		return
	}

	generatorMap, typeOK := entry.(*GeneratorMap)
	if !typeOK {
		err = errors.Errorf("entry at %s is a %s, not a GeneratorMap", entry.Index(), entry.Type())
	}

	return
}

// Entry reads the Entry at the given EntryIndex. It returns nil if no Entry is stored there.
func (l *Ledger) Entry(entryIndex EntryIndex) (entry Entry, err error) {
	storedBytes, err := l.entries.Get(entryIndex.Bytes())
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			err = nil
			return
		}
		err = errors.Errorf("failed to read entry at %s: %w", entryIndex, err)
		return
	}

	if entry, _, err = EntryFromBytes(storedBytes); err != nil {
		err = errors.Errorf("failed to parse entry at %s: %w", entryIndex, err)
	}

	return
}

// WriteBack stores the given Entry. In WriteModeCreate the Entry must not exist yet; in WriteModeUpdate it must
// already exist. A violated mode is reported as an error and indicates that the caller's view of the ledger and the
// stored state have diverged.
func (l *Ledger) WriteBack(mode WriteMode, entry Entry) (err error) {
	entryIndex := entry.Index()
	exists, err := l.entries.Has(entryIndex.Bytes())
	if err != nil {
		return errors.Errorf("failed to probe entry at %s: %w", entryIndex, err)
	}

	switch mode {
	case WriteModeCreate:
		if exists {
			return errors.Errorf("create of entry at %s: entry already exists", entryIndex)
		}
	case WriteModeUpdate:
		if !exists {
			return errors.Errorf("update of entry at %s: entry does not exist", entryIndex)
		}
	}

	if err = l.entries.Set(entryIndex.Bytes(), entry.Bytes()); err != nil {
		err = errors.Errorf("failed to store entry at %s: %w", entryIndex, err)
	}

	return
}

// DeleteEntry removes the Entry at the given EntryIndex from the account state map. It returns false if no Entry was
// stored there.
func (l *Ledger) DeleteEntry(entryIndex EntryIndex) (deleted bool) {
	exists, err := l.entries.Has(entryIndex.Bytes())
	if err != nil || !exists {
		return false
	}

	return l.entries.Delete(entryIndex.Bytes()) == nil
}

// ForEachEntry iterates over all entries of the account state map and calls the consumer with each of them.
// Iteration stops early when the consumer returns false.
func (l *Ledger) ForEachEntry(consumer func(entry Entry) bool) (err error) {
	iterationErr := l.entries.Iterate([]byte{}, func(key kvstore.Key, value kvstore.Value) bool {
		entry, _, entryErr := EntryFromBytes(value)
		if entryErr != nil {
			err = errors.Errorf("failed to parse entry during iteration: %w", entryErr)
			return false
		}

		return consumer(entry)
	})
	if err == nil {
		err = iterationErr
	}

	return
}

// HasTransaction returns true if a transaction with the given id was already applied to the ledger.
func (l *Ledger) HasTransaction(transactionID TransactionID) (has bool) {
	has, _ = l.transactions.Has(transactionID.Bytes())

	return
}

// AddTransaction appends the given raw transaction and the fee it paid to the ledger's transaction log.
func (l *Ledger) AddTransaction(transactionID TransactionID, rawTransaction []byte, feePaid int64) {
	record := marshalutil.New().
		WriteInt64(feePaid).
		WriteUint32(uint32(len(rawTransaction))).
		WriteBytes(rawTransaction).
		Bytes()

	if err := l.transactions.Set(transactionID.Bytes(), record); err != nil {
		panic(errors.Errorf("failed to append transaction %s to the ledger: %w", transactionID, err))
	}

	l.feePool += feePaid
}

// FeePool returns the sum of all fees recorded in the transaction log.
func (l *Ledger) FeePool() int64 {
	return l.feePool
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Ledger to
// configure its behavior.
type Option func(*Options)

// Options is a container for all configurable parameters of the Ledger.
type Options struct {
	Store kvstore.KVStore
}

// Store is an Option for the Ledger that allows to specify which storage layer is supposed to be used to persist data.
func Store(store kvstore.KVStore) Option {
	return func(options *Options) {
		options.Store = store
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
