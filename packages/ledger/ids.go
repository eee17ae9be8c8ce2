package ledger

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region AccountID ////////////////////////////////////////////////////////////////////////////////////////////////////

// AccountIDLength contains the amount of bytes that a marshaled version of the AccountID contains.
const AccountIDLength = 20

// AccountID is the 160 bit identifier of an account. It doubles as the identifier of a generator (the account id of
// the generator's public key).
type AccountID [AccountIDLength]byte

// EmptyAccountID is the zero value of an AccountID and represents an unset account.
var EmptyAccountID = AccountID{}

// AccountIDFromPublicKey derives the AccountID that belongs to the given public key.
func AccountIDFromPublicKey(publicKey ed25519.PublicKey) (accountID AccountID) {
	digest := blake2b.Sum256(publicKey[:])
	copy(accountID[:], digest[:AccountIDLength])

	return
}

// AccountIDFromBytes unmarshals an AccountID from a sequence of bytes.
func AccountIDFromBytes(data []byte) (accountID AccountID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if accountID, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AccountID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AccountIDFromBase58 creates an AccountID from a base58 encoded string.
func AccountIDFromBase58(base58String string) (accountID AccountID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded AccountID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if accountID, _, err = AccountIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse AccountID from bytes: %w", err)
		return
	}

	return
}

// AccountIDFromMarshalUtil unmarshals an AccountID using a MarshalUtil (for easier unmarshalling).
func AccountIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (accountID AccountID, err error) {
	accountIDBytes, err := marshalUtil.ReadBytes(AccountIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse AccountID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(accountID[:], accountIDBytes)

	return
}

// IsZero returns true if the AccountID is unset.
func (a AccountID) IsZero() bool {
	return a == EmptyAccountID
}

// Less returns true if the AccountID sorts lexicographically before the other AccountID.
func (a AccountID) Less(other AccountID) bool {
	return bytes.Compare(a[:], other[:]) < 0
}

// PaddedEntryIndex returns the AccountID zero extended to the length of an EntryIndex. It is used as the base of the
// directories that are owned by the account.
func (a AccountID) PaddedEntryIndex() (entryIndex EntryIndex) {
	copy(entryIndex[:], a[:])

	return
}

// Bytes returns a marshaled version of the AccountID.
func (a AccountID) Bytes() []byte {
	return a[:]
}

// Base58 returns a base58 encoded version of the AccountID.
func (a AccountID) Base58() string {
	return base58.Encode(a.Bytes())
}

// String returns a human-readable version of the AccountID.
func (a AccountID) String() string {
	return "AccountID(" + a.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region CurrencyID ///////////////////////////////////////////////////////////////////////////////////////////////////

// CurrencyIDLength contains the amount of bytes that a marshaled version of the CurrencyID contains.
const CurrencyIDLength = 20

// CurrencyID is the 160 bit identifier of a currency. The zero value denotes the native currency of the ledger.
type CurrencyID [CurrencyIDLength]byte

// NativeCurrencyID is the CurrencyID of the ledger's native currency.
var NativeCurrencyID = CurrencyID{}

// CurrencyIDFromBytes unmarshals a CurrencyID from a sequence of bytes.
func CurrencyIDFromBytes(data []byte) (currencyID CurrencyID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if currencyID, err = CurrencyIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse CurrencyID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// CurrencyIDFromBase58 creates a CurrencyID from a base58 encoded string.
func CurrencyIDFromBase58(base58String string) (currencyID CurrencyID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded CurrencyID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if currencyID, _, err = CurrencyIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse CurrencyID from bytes: %w", err)
		return
	}

	return
}

// CurrencyIDFromMarshalUtil unmarshals a CurrencyID using a MarshalUtil (for easier unmarshalling).
func CurrencyIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (currencyID CurrencyID, err error) {
	currencyIDBytes, err := marshalUtil.ReadBytes(CurrencyIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse CurrencyID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(currencyID[:], currencyIDBytes)

	return
}

// IsNative returns true if the CurrencyID denotes the ledger's native currency.
func (c CurrencyID) IsNative() bool {
	return c == NativeCurrencyID
}

// Bytes returns a marshaled version of the CurrencyID.
func (c CurrencyID) Bytes() []byte {
	return c[:]
}

// Base58 returns a base58 encoded version of the CurrencyID.
func (c CurrencyID) Base58() string {
	return base58.Encode(c.Bytes())
}

// String returns a human-readable version of the CurrencyID.
func (c CurrencyID) String() string {
	if c.IsNative() {
		return "CurrencyID(Native)"
	}

	return "CurrencyID(" + c.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EntryIndex ///////////////////////////////////////////////////////////////////////////////////////////////////

// EntryIndexLength contains the amount of bytes that a marshaled version of the EntryIndex contains.
const EntryIndexLength = 32

// EntryIndex is the 256 bit key that addresses an Entry inside the ledger.
type EntryIndex [EntryIndexLength]byte

// EmptyEntryIndex is the zero value of an EntryIndex.
var EmptyEntryIndex = EntryIndex{}

// EntryIndexFromBytes unmarshals an EntryIndex from a sequence of bytes.
func EntryIndexFromBytes(data []byte) (entryIndex EntryIndex, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if entryIndex, err = EntryIndexFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse EntryIndex from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// EntryIndexFromBase58 creates an EntryIndex from a base58 encoded string.
func EntryIndexFromBase58(base58String string) (entryIndex EntryIndex, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded EntryIndex (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if entryIndex, _, err = EntryIndexFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse EntryIndex from bytes: %w", err)
		return
	}

	return
}

// EntryIndexFromMarshalUtil unmarshals an EntryIndex using a MarshalUtil (for easier unmarshalling).
func EntryIndexFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (entryIndex EntryIndex, err error) {
	entryIndexBytes, err := marshalUtil.ReadBytes(EntryIndexLength)
	if err != nil {
		err = errors.Errorf("failed to parse EntryIndex (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(entryIndex[:], entryIndexBytes)

	return
}

// IsZero returns true if the EntryIndex is unset.
func (e EntryIndex) IsZero() bool {
	return e == EmptyEntryIndex
}

// Bytes returns a marshaled version of the EntryIndex.
func (e EntryIndex) Bytes() []byte {
	return e[:]
}

// Base58 returns a base58 encoded version of the EntryIndex.
func (e EntryIndex) Base58() string {
	return base58.Encode(e.Bytes())
}

// String returns a human-readable version of the EntryIndex.
func (e EntryIndex) String() string {
	return "EntryIndex(" + e.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionID ////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionIDLength contains the amount of bytes that a marshaled version of the TransactionID contains.
const TransactionIDLength = 32

// TransactionID is the 256 bit identifier of a Transaction (the hash of its signed bytes).
type TransactionID [TransactionIDLength]byte

// EmptyTransactionID is the zero value of a TransactionID.
var EmptyTransactionID = TransactionID{}

// TransactionIDFromBytes unmarshals a TransactionID from a sequence of bytes.
func TransactionIDFromBytes(data []byte) (transactionID TransactionID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if transactionID, err = TransactionIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransactionID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionIDFromBase58 creates a TransactionID from a base58 encoded string.
func TransactionIDFromBase58(base58String string) (transactionID TransactionID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded TransactionID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if transactionID, _, err = TransactionIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse TransactionID from bytes: %w", err)
		return
	}

	return
}

// TransactionIDFromMarshalUtil unmarshals a TransactionID using a MarshalUtil (for easier unmarshalling).
func TransactionIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (transactionID TransactionID, err error) {
	transactionIDBytes, err := marshalUtil.ReadBytes(TransactionIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse TransactionID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(transactionID[:], transactionIDBytes)

	return
}

// IsZero returns true if the TransactionID is unset.
func (t TransactionID) IsZero() bool {
	return t == EmptyTransactionID
}

// Bytes returns a marshaled version of the TransactionID.
func (t TransactionID) Bytes() []byte {
	return t[:]
}

// Base58 returns a base58 encoded version of the TransactionID.
func (t TransactionID) Base58() string {
	return base58.Encode(t.Bytes())
}

// String returns a human-readable version of the TransactionID.
func (t TransactionID) String() string {
	return "TransactionID(" + t.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
