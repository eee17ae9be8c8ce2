package engine

import (
	"encoding/binary"
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/stretchr/testify/require"

	"github.com/valueledger/rivulet/packages/ledger"
)

var testFees = FeeSchedule{
	Default: 10,
	Create:  100,
}

func newTestEngine(options ...Option) (testEngine *Engine, testLedger *ledger.Ledger) {
	testLedger = ledger.NewLedger(ledger.Store(mapdb.NewMapDB()))
	testEngine = New(testLedger, append([]Option{Fees(testFees)}, options...)...)

	return
}

// wallet bundles a key pair with the account id derived from it, mirroring how accounts are addressed on the wire.
type wallet struct {
	keyPair   ed25519.KeyPair
	accountID ledger.AccountID
}

func newWallet() wallet {
	keyPair := ed25519.GenerateKeyPair()

	return wallet{
		keyPair:   keyPair,
		accountID: ledger.AccountIDFromPublicKey(keyPair.PublicKey),
	}
}

func (w wallet) sign(essence *ledger.TransactionEssence) *ledger.Transaction {
	return ledger.NewTransaction(essence, w.keyPair.PrivateKey.Sign(essence.Bytes()))
}

func seedAccount(t *testing.T, testLedger *ledger.Ledger, accountID ledger.AccountID, balance int64, sequence uint32) {
	accountRoot := ledger.NewAccountRoot(accountID, sequence)
	accountRoot.SetBalance(ledger.NewNativeAmount(balance))
	require.NoError(t, testLedger.WriteBack(ledger.WriteModeCreate, accountRoot))
}

func mustAccountRoot(t *testing.T, testLedger *ledger.Ledger, accountID ledger.AccountID) *ledger.AccountRoot {
	accountRoot, err := testLedger.AccountRoot(accountID)
	require.NoError(t, err)
	require.NotNil(t, accountRoot)

	return accountRoot
}

// snapshotEntries captures the marshaled state of every entry in the store, keyed by entry index.
func snapshotEntries(t *testing.T, testLedger *ledger.Ledger) map[ledger.EntryIndex]string {
	snapshot := make(map[ledger.EntryIndex]string)
	require.NoError(t, testLedger.ForEachEntry(func(entry ledger.Entry) bool {
		snapshot[entry.Index()] = string(entry.Bytes())

		return true
	}))

	return snapshot
}

// testEntryIndex derives a distinct EntryIndex from a counter.
func testEntryIndex(counter uint64) (entryIndex ledger.EntryIndex) {
	binary.BigEndian.PutUint64(entryIndex[:8], counter)
	entryIndex[8] = 0xfe

	return
}
