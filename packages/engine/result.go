package engine

// region Result ///////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// ResultSuccess indicates that the transaction was applied and its mutations were committed.
	ResultSuccess Result = iota

	// ResultNoAccount indicates that the source account does not exist yet.
	ResultNoAccount

	// ResultNoDestination indicates that the destination account does not exist yet.
	ResultNoDestination

	// ResultNoLineNoZero indicates an attempt to set a non-existing credit line to a zero limit.
	ResultNoLineNoZero

	// ResultInsufficientFeeBalance indicates that the source account cannot cover the offered fee.
	ResultInsufficientFeeBalance

	// ResultPreSequence indicates that the transaction's sequence number lies in the future.
	ResultPreSequence

	// ResultPastSequence indicates that the transaction's sequence number was already consumed.
	ResultPastSequence

	// ResultAlreadyApplied indicates that the exact transaction is already part of the ledger.
	ResultAlreadyApplied

	// ResultNodeNotFound indicates that the addressed directory page does not exist.
	ResultNodeNotFound

	// ResultNodeNotMentioned indicates that the addressed directory page does not contain the key.
	ResultNodeNotMentioned

	// ResultNodeNoRoot indicates that the directory root of the addressed page is missing.
	ResultNodeNoRoot

	// ResultClaimed indicates that the account was already claimed.
	ResultClaimed

	// ResultCreated indicates that the account to be created already exists.
	ResultCreated

	// ResultUnfunded indicates that the source account cannot cover the transferred amount.
	ResultUnfunded

	// ResultDirectoryFull indicates that a directory ran out of page numbers.
	ResultDirectoryFull

	// ResultInvalid indicates a structurally or semantically invalid transaction.
	ResultInvalid

	// ResultUnknown indicates an unknown or not yet implemented transaction type.
	ResultUnknown

	// ResultInsufficientFeePaid indicates that the offered fee is below the required cost, or that a fee was offered
	// for a cost-free transaction.
	ResultInsufficientFeePaid

	// ResultDestinationNeeded indicates that the transaction requires a destination account.
	ResultDestinationNeeded

	// ResultDestinationIsSource indicates that source and destination accounts are the same.
	ResultDestinationIsSource

	// ResultExplicitNative indicates that the native currency was specified explicitly.
	ResultExplicitNative

	// ResultCreateNonNative indicates an account creation funded with a non-native currency.
	ResultCreateNonNative

	// ResultGeneratorInUse indicates that the claimed generator is already registered.
	ResultGeneratorInUse

	// ResultTransitWorse indicates a transit fee update that is worse than the installed ones.
	ResultTransitWorse
)

// Result is the classified outcome of applying a transaction. Results before ResultInvalid form the terminal/retry
// family; ResultInvalid and everything after it marks the transaction as malformed.
type Result int8

// IsSuccess returns true if the transaction was applied and committed.
func (r Result) IsSuccess() bool {
	return r == ResultSuccess
}

// IsMalformed returns true if the transaction can never succeed as-is and should be dropped.
func (r Result) IsMalformed() bool {
	return r >= ResultInvalid
}

// IsRetryable returns true if the transaction may succeed in a later ledger and should be queued instead of dropped.
func (r Result) IsRetryable() bool {
	switch r {
	case ResultNoAccount, ResultNoDestination, ResultInsufficientFeeBalance, ResultPreSequence, ResultUnfunded:
		return true
	default:
		return false
	}
}

// String returns a human-readable version of the Result.
func (r Result) String() string {
	return [...]string{
		"ResultSuccess",
		"ResultNoAccount",
		"ResultNoDestination",
		"ResultNoLineNoZero",
		"ResultInsufficientFeeBalance",
		"ResultPreSequence",
		"ResultPastSequence",
		"ResultAlreadyApplied",
		"ResultNodeNotFound",
		"ResultNodeNotMentioned",
		"ResultNodeNoRoot",
		"ResultClaimed",
		"ResultCreated",
		"ResultUnfunded",
		"ResultDirectoryFull",
		"ResultInvalid",
		"ResultUnknown",
		"ResultInsufficientFeePaid",
		"ResultDestinationNeeded",
		"ResultDestinationIsSource",
		"ResultExplicitNative",
		"ResultCreateNonNative",
		"ResultGeneratorInUse",
		"ResultTransitWorse",
	}[r]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
