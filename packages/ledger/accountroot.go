package ledger

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region AccountRoot //////////////////////////////////////////////////////////////////////////////////////////////////

// AccountRoot is the root Entry of an account. It carries the native balance, the next expected transaction sequence
// and the optional authorized key that the account was claimed with.
type AccountRoot struct {
	accountID        AccountID
	balance          Amount
	sequence         uint32
	authorizedKeySet bool
	authorizedKey    AccountID
}

// NewAccountRoot creates an AccountRoot for the given account with the given starting sequence.
func NewAccountRoot(accountID AccountID, sequence uint32) *AccountRoot {
	return &AccountRoot{
		accountID: accountID,
		sequence:  sequence,
	}
}

// AccountRootFromBytes unmarshals an AccountRoot from a sequence of bytes.
func AccountRootFromBytes(data []byte) (accountRoot *AccountRoot, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if accountRoot, err = AccountRootFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AccountRoot from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AccountRootFromMarshalUtil unmarshals an AccountRoot using a MarshalUtil (for easier unmarshalling).
func AccountRootFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (accountRoot *AccountRoot, err error) {
	entryType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse EntryType: %w", err)
		return
	}
	if EntryType(entryType) != AccountRootEntry {
		err = errors.Errorf("invalid EntryType (%X) for AccountRoot", entryType)
		return
	}

	accountRoot = &AccountRoot{}
	if accountRoot.accountID, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse account id: %w", err)
		return
	}
	if accountRoot.balance, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse balance: %w", err)
		return
	}
	if accountRoot.sequence, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse sequence: %w", err)
		return
	}
	if accountRoot.authorizedKeySet, err = marshalUtil.ReadBool(); err != nil {
		err = errors.Errorf("failed to parse authorized key presence: %w", err)
		return
	}
	if accountRoot.authorizedKeySet {
		if accountRoot.authorizedKey, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse authorized key: %w", err)
			return
		}
	}

	return
}

// AccountID returns the id of the account that the AccountRoot belongs to.
func (a *AccountRoot) AccountID() AccountID {
	return a.accountID
}

// Balance returns the native balance of the account.
func (a *AccountRoot) Balance() Amount {
	return a.balance
}

// SetBalance updates the native balance of the account.
func (a *AccountRoot) SetBalance(balance Amount) {
	a.balance = balance
}

// Sequence returns the next expected transaction sequence of the account.
func (a *AccountRoot) Sequence() uint32 {
	return a.sequence
}

// SetSequence updates the next expected transaction sequence of the account.
func (a *AccountRoot) SetSequence(sequence uint32) {
	a.sequence = sequence
}

// IsClaimed returns true if the account carries an authorized key.
func (a *AccountRoot) IsClaimed() bool {
	return a.authorizedKeySet
}

// AuthorizedKey returns the generator id that is authorized to sign for the account and whether it is set.
func (a *AccountRoot) AuthorizedKey() (authorizedKey AccountID, isSet bool) {
	return a.authorizedKey, a.authorizedKeySet
}

// SetAuthorizedKey installs the generator id that is authorized to sign for the account.
func (a *AccountRoot) SetAuthorizedKey(authorizedKey AccountID) {
	a.authorizedKey = authorizedKey
	a.authorizedKeySet = true
}

// Type returns the EntryType of the AccountRoot.
func (a *AccountRoot) Type() EntryType {
	return AccountRootEntry
}

// Index returns the EntryIndex that addresses the AccountRoot inside the ledger.
func (a *AccountRoot) Index() EntryIndex {
	return AccountRootIndex(a.accountID)
}

// Clone creates a deep copy of the AccountRoot.
func (a *AccountRoot) Clone() Entry {
	clone := *a

	return &clone
}

// Bytes returns a marshaled version of the AccountRoot.
func (a *AccountRoot) Bytes() []byte {
	marshalUtil := marshalutil.New().
		WriteByte(byte(AccountRootEntry)).
		WriteBytes(a.accountID.Bytes()).
		WriteBytes(a.balance.Bytes()).
		WriteUint32(a.sequence).
		WriteBool(a.authorizedKeySet)
	if a.authorizedKeySet {
		marshalUtil.WriteBytes(a.authorizedKey.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human-readable version of the AccountRoot.
func (a *AccountRoot) String() string {
	return stringify.Struct("AccountRoot",
		stringify.StructField("accountID", a.accountID),
		stringify.StructField("balance", a.balance),
		stringify.StructField("sequence", strconv.FormatUint(uint64(a.sequence), 10)),
		stringify.StructField("authorizedKeySet", a.authorizedKeySet),
		stringify.StructField("authorizedKey", a.authorizedKey),
	)
}

// code contract (make sure the type implements all required methods)
var _ Entry = &AccountRoot{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
