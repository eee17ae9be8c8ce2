package ledger

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region Amount ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Amount is a signed value carrying a currency tag. Amounts are totally ordered within a currency; comparing Amounts
// of different currencies is a programmer error.
type Amount struct {
	value    int64
	currency CurrencyID
}

// NewAmount creates an Amount of the given value in the given currency.
func NewAmount(value int64, currency CurrencyID) Amount {
	return Amount{
		value:    value,
		currency: currency,
	}
}

// NewNativeAmount creates an Amount of the given value in the ledger's native currency.
func NewNativeAmount(value int64) Amount {
	return Amount{value: value}
}

// ZeroAmount creates a zero valued Amount in the given currency.
func ZeroAmount(currency CurrencyID) Amount {
	return Amount{currency: currency}
}

// AmountFromBytes unmarshals an Amount from a sequence of bytes.
func AmountFromBytes(data []byte) (amount Amount, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if amount, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Amount from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AmountFromMarshalUtil unmarshals an Amount using a MarshalUtil (for easier unmarshalling).
func AmountFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (amount Amount, err error) {
	if amount.value, err = marshalUtil.ReadInt64(); err != nil {
		err = errors.Errorf("failed to parse Amount value: %w", err)
		return
	}
	if amount.currency, err = CurrencyIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Amount currency: %w", err)
		return
	}

	return
}

// Value returns the numeric value of the Amount.
func (a Amount) Value() int64 {
	return a.value
}

// Currency returns the CurrencyID that tags the Amount.
func (a Amount) Currency() CurrencyID {
	return a.currency
}

// IsNative returns true if the Amount is denominated in the ledger's native currency.
func (a Amount) IsNative() bool {
	return a.currency.IsNative()
}

// IsZero returns true if the numeric value of the Amount is zero.
func (a Amount) IsZero() bool {
	return a.value == 0
}

// Less returns true if the Amount is smaller than the other Amount of the same currency.
func (a Amount) Less(other Amount) bool {
	a.mustMatchCurrency(other)

	return a.value < other.value
}

// Add returns the sum of the two Amounts of the same currency.
func (a Amount) Add(other Amount) Amount {
	a.mustMatchCurrency(other)

	return Amount{value: a.value + other.value, currency: a.currency}
}

// Sub returns the difference of the two Amounts of the same currency.
func (a Amount) Sub(other Amount) Amount {
	a.mustMatchCurrency(other)

	return Amount{value: a.value - other.value, currency: a.currency}
}

func (a Amount) mustMatchCurrency(other Amount) {
	if a.currency != other.currency {
		panic("cross-currency Amount arithmetic: " + a.String() + " vs " + other.String())
	}
}

// Bytes returns a marshaled version of the Amount.
func (a Amount) Bytes() []byte {
	return marshalutil.New(marshalutil.Int64Size + CurrencyIDLength).
		WriteInt64(a.value).
		WriteBytes(a.currency.Bytes()).
		Bytes()
}

// String returns a human-readable version of the Amount.
func (a Amount) String() string {
	return stringify.Struct("Amount",
		stringify.StructField("value", strconv.FormatInt(a.value, 10)),
		stringify.StructField("currency", a.currency),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
