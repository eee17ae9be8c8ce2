package ledger

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRoot_Bytes(t *testing.T) {
	accountID := AccountIDFromPublicKey(ed25519.GenerateKeyPair().PublicKey)
	authorizedKey := AccountIDFromPublicKey(ed25519.GenerateKeyPair().PublicKey)

	accountRoot := NewAccountRoot(accountID, 7)
	accountRoot.SetBalance(NewNativeAmount(12345))
	accountRoot.SetAuthorizedKey(authorizedKey)

	restoredEntry, _, err := EntryFromBytes(accountRoot.Bytes())
	require.NoError(t, err)

	restored, typeOK := restoredEntry.(*AccountRoot)
	require.True(t, typeOK)
	assert.Equal(t, accountID, restored.AccountID())
	assert.Equal(t, int64(12345), restored.Balance().Value())
	assert.Equal(t, uint32(7), restored.Sequence())
	restoredAuthorizedKey, isSet := restored.AuthorizedKey()
	assert.True(t, isSet)
	assert.Equal(t, authorizedKey, restoredAuthorizedKey)
	assert.Equal(t, accountRoot.Index(), restored.Index())
}

func TestAccountRoot_Clone(t *testing.T) {
	accountRoot := NewAccountRoot(AccountID{1}, 1)
	accountRoot.SetBalance(NewNativeAmount(100))

	clone := accountRoot.Clone().(*AccountRoot)
	clone.SetBalance(NewNativeAmount(999))
	clone.SetSequence(42)

	assert.Equal(t, int64(100), accountRoot.Balance().Value())
	assert.Equal(t, uint32(1), accountRoot.Sequence())
}

func TestDirectoryNode_RemoveIndex(t *testing.T) {
	node := NewDirectoryNode(EntryIndex{1}, RippleStateEntry, 1)
	node.AppendIndex(EntryIndex{10})
	node.AppendIndex(EntryIndex{20})
	node.AppendIndex(EntryIndex{30})

	assert.False(t, node.RemoveIndex(EntryIndex{40}))
	assert.True(t, node.RemoveIndex(EntryIndex{10}))

	// Removal swaps with the last element, so order is not preserved.
	assert.ElementsMatch(t, []EntryIndex{{30}, {20}}, node.Indexes())
	assert.True(t, node.RemoveIndex(EntryIndex{20}))
	assert.True(t, node.RemoveIndex(EntryIndex{30}))
	assert.True(t, node.IsEmpty())
}

func TestDirectoryEntries_Bytes(t *testing.T) {
	base := AccountID{9}.PaddedEntryIndex()

	root := NewDirectoryRoot(base, RippleStateEntry)
	root.SetLastNode(3)
	restoredRootEntry, _, err := EntryFromBytes(root.Bytes())
	require.NoError(t, err)
	restoredRoot := restoredRootEntry.(*DirectoryRoot)
	assert.Equal(t, uint64(1), restoredRoot.FirstNode())
	assert.Equal(t, uint64(3), restoredRoot.LastNode())
	assert.Equal(t, root.Index(), restoredRoot.Index())

	node := NewDirectoryNode(base, RippleStateEntry, 3)
	node.AppendIndex(EntryIndex{1})
	node.AppendIndex(EntryIndex{2})
	restoredNodeEntry, _, err := EntryFromBytes(node.Bytes())
	require.NoError(t, err)
	restoredNode := restoredNodeEntry.(*DirectoryNode)
	assert.Equal(t, node.Indexes(), restoredNode.Indexes())
	assert.Equal(t, node.Index(), restoredNode.Index())
}

func TestRippleState_Canonicalization(t *testing.T) {
	usd := CurrencyID{'U', 'S', 'D'}
	a := AccountID{5}
	b := AccountID{3}

	rippleState := NewRippleState(a, b, usd)
	assert.True(t, rippleState.LowID().Less(rippleState.HighID()))
	assert.Equal(t, b, rippleState.LowID())
	assert.Equal(t, a, rippleState.HighID())

	// Both directions address the same entry.
	assert.Equal(t, RippleStateIndex(a, b, usd), RippleStateIndex(b, a, usd))
	assert.Equal(t, rippleState.Index(), RippleStateIndex(a, b, usd))
}

func TestRippleState_Bytes(t *testing.T) {
	usd := CurrencyID{'U', 'S', 'D'}

	rippleState := NewRippleState(AccountID{1}, AccountID{2}, usd)
	rippleState.SetLowLimit(NewAmount(500, usd))
	rippleState.SetFlags(RippleStateLowIndexed)

	restoredEntry, _, err := EntryFromBytes(rippleState.Bytes())
	require.NoError(t, err)

	restored := restoredEntry.(*RippleState)
	assert.Equal(t, rippleState.LowID(), restored.LowID())
	assert.Equal(t, rippleState.HighID(), restored.HighID())
	assert.Equal(t, usd, restored.Currency())
	assert.Equal(t, int64(500), restored.LowLimit().Value())
	assert.True(t, restored.Flags().Has(RippleStateLowIndexed))
	assert.False(t, restored.Flags().Has(RippleStateHighIndexed))
}

func TestGeneratorMap_Bytes(t *testing.T) {
	generatorID := AccountIDFromPublicKey(ed25519.GenerateKeyPair().PublicKey)
	generatorMap := NewGeneratorMap(generatorID, []byte("encrypted generator blob"))

	restoredEntry, _, err := EntryFromBytes(generatorMap.Bytes())
	require.NoError(t, err)

	restored := restoredEntry.(*GeneratorMap)
	assert.Equal(t, generatorID, restored.GeneratorID())
	assert.Equal(t, []byte("encrypted generator blob"), restored.Generator())
	assert.Equal(t, generatorMap.Index(), restored.Index())
}

func TestEntryFromBytes_UnknownType(t *testing.T) {
	_, _, err := EntryFromBytes([]byte{0xff, 0x00})
	assert.Error(t, err)
}
