package ledger

import (
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/marshalutil"
	"golang.org/x/crypto/blake2b"
)

// Domain prefixes that separate the EntryIndex spaces of the different Entry kinds. Changing a prefix rekeys every
// Entry of that kind.
var (
	accountRootIndexPrefix  = []byte("account")
	directoryIndexPrefix    = []byte("dir")
	rippleStateIndexPrefix  = []byte("line")
	generatorMapIndexPrefix = []byte("gen")
)

// AccountRootIndex derives the EntryIndex of the AccountRoot of the given account.
func AccountRootIndex(accountID AccountID) EntryIndex {
	return EntryIndex(blake2b.Sum256(byteutils.ConcatBytes(accountRootIndexPrefix, accountID.Bytes())))
}

// DirectoryRootIndex derives the EntryIndex of the DirectoryRoot of the directory that is named by the given base and
// kind.
func DirectoryRootIndex(base EntryIndex, kind EntryType) EntryIndex {
	return EntryIndex(blake2b.Sum256(byteutils.ConcatBytes(directoryIndexPrefix, base.Bytes(), []byte{byte(kind)})))
}

// DirectoryNodeIndex derives the EntryIndex of the given page of the directory that is named by the given base and
// kind.
func DirectoryNodeIndex(base EntryIndex, kind EntryType, nodeNo uint64) EntryIndex {
	return EntryIndex(blake2b.Sum256(byteutils.ConcatBytes(
		directoryIndexPrefix,
		base.Bytes(),
		[]byte{byte(kind)},
		marshalutil.New(marshalutil.Uint64Size).WriteUint64(nodeNo).Bytes(),
	)))
}

// RippleStateIndex derives the EntryIndex of the RippleState between the two given accounts in the given currency.
// The ordering of the two accounts is canonicalized, so both directions yield the same EntryIndex.
func RippleStateIndex(a, b AccountID, currency CurrencyID) EntryIndex {
	lowID, highID := SortAccountIDs(a, b)

	return EntryIndex(blake2b.Sum256(byteutils.ConcatBytes(rippleStateIndexPrefix, lowID.Bytes(), highID.Bytes(), currency.Bytes())))
}

// GeneratorMapIndex derives the EntryIndex of the GeneratorMap of the given generator.
func GeneratorMapIndex(generatorID AccountID) EntryIndex {
	return EntryIndex(blake2b.Sum256(byteutils.ConcatBytes(generatorMapIndexPrefix, generatorID.Bytes())))
}

// SortAccountIDs returns the two given AccountIDs in canonical (lexicographic) order.
func SortAccountIDs(a, b AccountID) (lowID, highID AccountID) {
	if b.Less(a) {
		return b, a
	}

	return a, b
}
