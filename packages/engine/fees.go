package engine

// region FeeSchedule //////////////////////////////////////////////////////////////////////////////////////////////////

// FeeSchedule contains the transaction costs charged by the engine, in native units. It is handed to the engine at
// construction time instead of living in a process wide configuration.
type FeeSchedule struct {
	// Default is the cost of a regular fee-bearing transaction.
	Default int64

	// Create is the cost of a payment that creates its destination account.
	Create int64
}

// DefaultFeeSchedule is the FeeSchedule used when the engine is constructed without an explicit one.
var DefaultFeeSchedule = FeeSchedule{
	Default: 10,
	Create:  100,
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ApplyFlags ///////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// ApplyNone is the empty set of apply parameters.
	ApplyNone ApplyFlags = 0

	// ApplyNoCheckFee skips fee enforcement. It is used when replaying or validating transactions that were accepted
	// under a different fee schedule.
	ApplyNoCheckFee ApplyFlags = 1 << 0
)

// ApplyFlags is the bit set of parameters that tweak how a transaction is applied.
type ApplyFlags uint32

// Has returns true if all the given flags are set.
func (a ApplyFlags) Has(flags ApplyFlags) bool {
	return a&flags == flags
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
