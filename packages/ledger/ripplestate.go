package ledger

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region RippleStateFlags /////////////////////////////////////////////////////////////////////////////////////////////

const (
	// RippleStateLowIndexed is set once the low account's directory lists the line.
	RippleStateLowIndexed RippleStateFlags = 1 << 0

	// RippleStateHighIndexed is set once the high account's directory lists the line.
	RippleStateHighIndexed RippleStateFlags = 1 << 1
)

// RippleStateFlags is the bit field of flags carried by a RippleState.
type RippleStateFlags uint32

// Has returns true if all the given flags are set.
func (r RippleStateFlags) Has(flags RippleStateFlags) bool {
	return r&flags == flags
}

// Set returns the flags with the given flags added.
func (r RippleStateFlags) Set(flags RippleStateFlags) RippleStateFlags {
	return r | flags
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region RippleState //////////////////////////////////////////////////////////////////////////////////////////////////

// RippleState is a bidirectional credit line between two accounts in a single currency. The two accounts are stored in
// canonical order (low id sorts lexicographically before high id); which side a transaction submitter sits on is
// derived from that order, never stored as given.
type RippleState struct {
	lowID     AccountID
	highID    AccountID
	balance   Amount
	lowLimit  Amount
	highLimit Amount
	flags     RippleStateFlags
}

// NewRippleState creates a RippleState between the two given accounts with a zero balance in the given currency. The
// account order is canonicalized.
func NewRippleState(a, b AccountID, currency CurrencyID) *RippleState {
	lowID, highID := SortAccountIDs(a, b)

	return &RippleState{
		lowID:     lowID,
		highID:    highID,
		balance:   ZeroAmount(currency),
		lowLimit:  ZeroAmount(currency),
		highLimit: ZeroAmount(currency),
	}
}

// RippleStateFromBytes unmarshals a RippleState from a sequence of bytes.
func RippleStateFromBytes(data []byte) (rippleState *RippleState, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if rippleState, err = RippleStateFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse RippleState from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// RippleStateFromMarshalUtil unmarshals a RippleState using a MarshalUtil (for easier unmarshalling).
func RippleStateFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (rippleState *RippleState, err error) {
	entryType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse EntryType: %w", err)
		return
	}
	if EntryType(entryType) != RippleStateEntry {
		err = errors.Errorf("invalid EntryType (%X) for RippleState", entryType)
		return
	}

	rippleState = &RippleState{}
	if rippleState.lowID, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse low id: %w", err)
		return
	}
	if rippleState.highID, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse high id: %w", err)
		return
	}
	if rippleState.balance, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse balance: %w", err)
		return
	}
	if rippleState.lowLimit, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse low limit: %w", err)
		return
	}
	if rippleState.highLimit, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse high limit: %w", err)
		return
	}
	flags, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse flags: %w", err)
		return
	}
	rippleState.flags = RippleStateFlags(flags)

	return
}

// LowID returns the id of the account that sorts lexicographically lower.
func (r *RippleState) LowID() AccountID {
	return r.lowID
}

// HighID returns the id of the account that sorts lexicographically higher.
func (r *RippleState) HighID() AccountID {
	return r.highID
}

// Currency returns the currency of the credit line.
func (r *RippleState) Currency() CurrencyID {
	return r.balance.Currency()
}

// Balance returns the balance of the credit line (positive means the high account owes the low account).
func (r *RippleState) Balance() Amount {
	return r.balance
}

// SetBalance updates the balance of the credit line.
func (r *RippleState) SetBalance(balance Amount) {
	r.balance = balance
}

// LowLimit returns the credit limit extended by the low account.
func (r *RippleState) LowLimit() Amount {
	return r.lowLimit
}

// SetLowLimit updates the credit limit extended by the low account.
func (r *RippleState) SetLowLimit(lowLimit Amount) {
	r.lowLimit = lowLimit
}

// HighLimit returns the credit limit extended by the high account.
func (r *RippleState) HighLimit() Amount {
	return r.highLimit
}

// SetHighLimit updates the credit limit extended by the high account.
func (r *RippleState) SetHighLimit(highLimit Amount) {
	r.highLimit = highLimit
}

// Flags returns the flags of the credit line.
func (r *RippleState) Flags() RippleStateFlags {
	return r.flags
}

// SetFlags replaces the flags of the credit line.
func (r *RippleState) SetFlags(flags RippleStateFlags) {
	r.flags = flags
}

// Type returns the EntryType of the RippleState.
func (r *RippleState) Type() EntryType {
	return RippleStateEntry
}

// Index returns the EntryIndex that addresses the RippleState inside the ledger.
func (r *RippleState) Index() EntryIndex {
	return RippleStateIndex(r.lowID, r.highID, r.Currency())
}

// Clone creates a deep copy of the RippleState.
func (r *RippleState) Clone() Entry {
	clone := *r

	return &clone
}

// Bytes returns a marshaled version of the RippleState.
func (r *RippleState) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(RippleStateEntry)).
		WriteBytes(r.lowID.Bytes()).
		WriteBytes(r.highID.Bytes()).
		WriteBytes(r.balance.Bytes()).
		WriteBytes(r.lowLimit.Bytes()).
		WriteBytes(r.highLimit.Bytes()).
		WriteUint32(uint32(r.flags)).
		Bytes()
}

// String returns a human-readable version of the RippleState.
func (r *RippleState) String() string {
	return stringify.Struct("RippleState",
		stringify.StructField("lowID", r.lowID),
		stringify.StructField("highID", r.highID),
		stringify.StructField("balance", r.balance),
		stringify.StructField("lowLimit", r.lowLimit),
		stringify.StructField("highLimit", r.highLimit),
		stringify.StructField("flags", strconv.FormatUint(uint64(r.flags), 2)),
	)
}

// code contract (make sure the type implements all required methods)
var _ Entry = &RippleState{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
