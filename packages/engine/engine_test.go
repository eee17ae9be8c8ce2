package engine

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valueledger/rivulet/packages/ledger"
)

func TestEngine_BadSignature(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 5)
	before := snapshotEntries(t, testLedger)

	essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, 5, 10, source.keyPair.PublicKey).
		SetDestination(ledger.AccountID{2}).
		SetAmount(ledger.NewNativeAmount(100))

	forger := ed25519.GenerateKeyPair()
	transaction := ledger.NewTransaction(essence, forger.PrivateKey.Sign(essence.Bytes()))

	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(transaction, ApplyNone))
	assert.Equal(t, before, snapshotEntries(t, testLedger))
}

func TestEngine_FeeEnforcement(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	destination := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 5)
	seedAccount(t, testLedger, destination.accountID, 1000, 1)

	// Fee below cost.
	essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, 5, testFees.Default-1, source.keyPair.PublicKey).
		SetDestination(destination.accountID).
		SetAmount(ledger.NewNativeAmount(100))
	assert.Equal(t, ResultInsufficientFeePaid, testEngine.ApplyTransaction(source.sign(essence), ApplyNone))

	// The same transaction passes when fee checking is disabled, and the (insufficient) fee is still debited.
	assert.Equal(t, ResultSuccess, testEngine.ApplyTransaction(source.sign(essence), ApplyNoCheckFee))
	assert.Equal(t, int64(1000-100-(testFees.Default-1)), mustAccountRoot(t, testLedger, source.accountID).Balance().Value())

	// A fee on a cost-free transaction is not allowed.
	claimEssence := ledger.NewTransactionEssence(ledger.TransactionTypeClaim, source.accountID, 0, 5, source.keyPair.PublicKey)
	assert.Equal(t, ResultInsufficientFeePaid, testEngine.ApplyTransaction(source.sign(claimEssence), ApplyNone))
}

func TestEngine_MissingSourceAccount(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	before := snapshotEntries(t, testLedger)

	essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, 0, 10, source.keyPair.PublicKey).
		SetDestination(ledger.AccountID{2}).
		SetAmount(ledger.NewNativeAmount(100))

	result := testEngine.ApplyTransaction(source.sign(essence), ApplyNone)
	assert.Equal(t, ResultNoAccount, result)
	assert.True(t, result.IsRetryable())
	assert.Equal(t, before, snapshotEntries(t, testLedger))
}

func TestEngine_InsufficientFeeBalance(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	destination := newWallet()
	seedAccount(t, testLedger, source.accountID, 5, 0)
	seedAccount(t, testLedger, destination.accountID, 0, 1)

	essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, 0, 10, source.keyPair.PublicKey).
		SetDestination(destination.accountID).
		SetAmount(ledger.NewNativeAmount(1))

	assert.Equal(t, ResultInsufficientFeeBalance, testEngine.ApplyTransaction(source.sign(essence), ApplyNone))
}

func TestEngine_SequenceGating(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	destination := newWallet()
	seedAccount(t, testLedger, source.accountID, 10000, 5)
	seedAccount(t, testLedger, destination.accountID, 0, 1)

	newPayment := func(sequence uint32, amount int64) *ledger.Transaction {
		essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, sequence, testFees.Default, source.keyPair.PublicKey).
			SetDestination(destination.accountID).
			SetAmount(ledger.NewNativeAmount(amount))

		return source.sign(essence)
	}

	assert.Equal(t, ResultPreSequence, testEngine.ApplyTransaction(newPayment(6, 100), ApplyNone))
	assert.Equal(t, ResultPastSequence, testEngine.ApplyTransaction(newPayment(4, 100), ApplyNone))

	applied := newPayment(5, 100)
	require.Equal(t, ResultSuccess, testEngine.ApplyTransaction(applied, ApplyNone))
	assert.Equal(t, uint32(6), mustAccountRoot(t, testLedger, source.accountID).Sequence())

	// A different payment reusing the consumed sequence is past; resubmitting the identical one is a duplicate.
	assert.Equal(t, ResultPastSequence, testEngine.ApplyTransaction(newPayment(5, 101), ApplyNone))
	assert.Equal(t, ResultAlreadyApplied, testEngine.ApplyTransaction(applied, ApplyNone))
}

func TestEngine_ClaimBearsNoSequence(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 0)

	generator := ed25519.GenerateKeyPair()
	cipher := []byte("generator cipher")
	essence := ledger.NewTransactionEssence(ledger.TransactionTypeClaim, source.accountID, 1, 0, source.keyPair.PublicKey).
		SetGeneratorClaim(cipher, generator.PublicKey, generator.PrivateKey.Sign(ledger.SHA512Half(cipher)))

	assert.Equal(t, ResultPastSequence, testEngine.ApplyTransaction(source.sign(essence), ApplyNone))
}

// Scenario: empty ledger claim.
func TestEngine_Claim(t *testing.T) {
	testEngine, testLedger := newTestEngine(Log(logger.NewExampleLogger("engine")))
	source := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 0)

	generator := ed25519.GenerateKeyPair()
	generatorID := ledger.AccountIDFromPublicKey(generator.PublicKey)
	cipher := []byte("encrypted generator blob")

	essence := ledger.NewTransactionEssence(ledger.TransactionTypeClaim, source.accountID, 0, 0, source.keyPair.PublicKey).
		SetGeneratorClaim(cipher, generator.PublicKey, generator.PrivateKey.Sign(ledger.SHA512Half(cipher)))

	require.Equal(t, ResultSuccess, testEngine.ApplyTransaction(source.sign(essence), ApplyNone))

	accountRoot := mustAccountRoot(t, testLedger, source.accountID)
	authorizedKey, isSet := accountRoot.AuthorizedKey()
	assert.True(t, isSet)
	assert.Equal(t, generatorID, authorizedKey)
	assert.Equal(t, int64(1000), accountRoot.Balance().Value())

	generatorMap, err := testLedger.Generator(generatorID)
	require.NoError(t, err)
	require.NotNil(t, generatorMap)
	assert.Equal(t, cipher, generatorMap.Generator())
}

func TestEngine_ClaimRejections(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 0)

	generator := ed25519.GenerateKeyPair()
	cipher := []byte("encrypted generator blob")
	newClaim := func(w wallet, generatorKeyPair ed25519.KeyPair, cipherSignature ed25519.Signature) *ledger.Transaction {
		essence := ledger.NewTransactionEssence(ledger.TransactionTypeClaim, source.accountID, 0, 0, w.keyPair.PublicKey).
			SetGeneratorClaim(cipher, generatorKeyPair.PublicKey, cipherSignature)

		return w.sign(essence)
	}

	// The signing key must belong to the claimed account.
	stranger := newWallet()
	strangerClaim := ledger.NewTransactionEssence(ledger.TransactionTypeClaim, source.accountID, 0, 0, stranger.keyPair.PublicKey).
		SetGeneratorClaim(cipher, generator.PublicKey, generator.PrivateKey.Sign(ledger.SHA512Half(cipher)))
	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(stranger.sign(strangerClaim), ApplyNone))

	// The cipher signature must verify under the generator key.
	badCipherSignature := generator.PrivateKey.Sign([]byte("something else"))
	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(newClaim(source, generator, badCipherSignature), ApplyNone))

	// First claim succeeds.
	require.Equal(t, ResultSuccess, testEngine.ApplyTransaction(newClaim(source, generator, generator.PrivateKey.Sign(ledger.SHA512Half(cipher))), ApplyNone))

	// A second claim of the same account is rejected.
	assert.Equal(t, ResultClaimed, testEngine.ApplyTransaction(newClaim(source, ed25519.GenerateKeyPair(), generator.PrivateKey.Sign(ledger.SHA512Half(cipher))), ApplyNone))

	// Another account cannot register the same generator.
	other := newWallet()
	seedAccount(t, testLedger, other.accountID, 1000, 0)
	otherClaim := ledger.NewTransactionEssence(ledger.TransactionTypeClaim, other.accountID, 0, 0, other.keyPair.PublicKey).
		SetGeneratorClaim(cipher, generator.PublicKey, generator.PrivateKey.Sign(ledger.SHA512Half(cipher)))
	assert.Equal(t, ResultGeneratorInUse, testEngine.ApplyTransaction(other.sign(otherClaim), ApplyNone))
}

// Scenario: native payment that creates its destination.
func TestEngine_PaymentCreateDestination(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	destination := newWallet()
	seedAccount(t, testLedger, source.accountID, 10000, 5)

	essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, 5, testFees.Create, source.keyPair.PublicKey).
		SetFlags(ledger.FlagCreateAccount).
		SetDestination(destination.accountID).
		SetAmount(ledger.NewNativeAmount(500))
	transaction := source.sign(essence)

	require.Equal(t, ResultSuccess, testEngine.ApplyTransaction(transaction, ApplyNone))

	sourceRoot := mustAccountRoot(t, testLedger, source.accountID)
	assert.Equal(t, int64(9400), sourceRoot.Balance().Value())
	assert.Equal(t, uint32(6), sourceRoot.Sequence())

	destinationRoot := mustAccountRoot(t, testLedger, destination.accountID)
	assert.Equal(t, int64(500), destinationRoot.Balance().Value())
	assert.Equal(t, uint32(1), destinationRoot.Sequence())

	// The paid fee is recorded in the ledger's fee pool.
	assert.Equal(t, testFees.Create, testLedger.FeePool())
	assert.True(t, testLedger.HasTransaction(transaction.ID()))

	// Scenario: resubmitting the identical transaction is detected as a duplicate and changes nothing.
	before := snapshotEntries(t, testLedger)
	assert.Equal(t, ResultAlreadyApplied, testEngine.ApplyTransaction(transaction, ApplyNone))
	assert.Equal(t, before, snapshotEntries(t, testLedger))
}

func TestEngine_PaymentRejections(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	destination := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 0)
	usd := ledger.CurrencyID{'U', 'S', 'D'}

	newPayment := func(fee int64, configure func(*ledger.TransactionEssence)) *ledger.Transaction {
		essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, 0, fee, source.keyPair.PublicKey).
			SetDestination(destination.accountID).
			SetAmount(ledger.NewNativeAmount(100))
		configure(essence)

		return source.sign(essence)
	}

	// Missing destination.
	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(newPayment(testFees.Default, func(essence *ledger.TransactionEssence) {
		essence.SetDestination(ledger.EmptyAccountID)
	}), ApplyNone))

	// Self payment.
	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(newPayment(testFees.Default, func(essence *ledger.TransactionEssence) {
		essence.SetDestination(source.accountID)
	}), ApplyNone))

	// Explicitly specified native currency.
	assert.Equal(t, ResultExplicitNative, testEngine.ApplyTransaction(newPayment(testFees.Default, func(essence *ledger.TransactionEssence) {
		essence.SetCurrency(ledger.NativeCurrencyID)
	}), ApplyNone))

	// Creating a destination funded in a non-native currency.
	assert.Equal(t, ResultCreateNonNative, testEngine.ApplyTransaction(newPayment(testFees.Create, func(essence *ledger.TransactionEssence) {
		essence.SetFlags(ledger.FlagCreateAccount)
		essence.SetCurrency(usd)
	}), ApplyNone))

	// Missing destination account without the create flag delays the transaction.
	result := testEngine.ApplyTransaction(newPayment(testFees.Default, func(*ledger.TransactionEssence) {}), ApplyNone)
	assert.Equal(t, ResultNoDestination, result)
	assert.True(t, result.IsRetryable())

	seedAccount(t, testLedger, destination.accountID, 0, 1)

	// Creating an already existing destination.
	assert.Equal(t, ResultCreated, testEngine.ApplyTransaction(newPayment(testFees.Create, func(essence *ledger.TransactionEssence) {
		essence.SetFlags(ledger.FlagCreateAccount)
	}), ApplyNone))

	// Transfer exceeding the fee-debited balance.
	assert.Equal(t, ResultUnfunded, testEngine.ApplyTransaction(newPayment(testFees.Default, func(essence *ledger.TransactionEssence) {
		essence.SetAmount(ledger.NewNativeAmount(1000))
	}), ApplyNone))

	// Cross-currency payments are reserved.
	assert.Equal(t, ResultUnknown, testEngine.ApplyTransaction(newPayment(testFees.Default, func(essence *ledger.TransactionEssence) {
		essence.SetCurrency(usd)
		essence.SetAmount(ledger.NewAmount(100, usd))
	}), ApplyNone))

	// Nothing of the above left a trace in the account balances.
	assert.Equal(t, int64(1000), mustAccountRoot(t, testLedger, source.accountID).Balance().Value())
	assert.Equal(t, int64(0), mustAccountRoot(t, testLedger, destination.accountID).Balance().Value())
}

func TestEngine_ReservedTypes(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	seedAccount(t, testLedger, source.accountID, 1000, 0)

	newTransaction := func(txType ledger.TransactionType, sequence uint32, fee int64) *ledger.Transaction {
		return source.sign(ledger.NewTransactionEssence(txType, source.accountID, sequence, fee, source.keyPair.PublicKey))
	}

	assert.Equal(t, ResultUnknown, testEngine.ApplyTransaction(newTransaction(ledger.TransactionTypeInvoice, 0, testFees.Default), ApplyNone))
	assert.Equal(t, ResultUnknown, testEngine.ApplyTransaction(newTransaction(ledger.TransactionTypeOffer, 0, testFees.Default), ApplyNone))
	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(newTransaction(ledger.TransactionTypeTransitSet, 0, testFees.Default), ApplyNone))
	assert.Equal(t, ResultInvalid, testEngine.ApplyTransaction(newTransaction(ledger.TransactionTypeInvalid, 0, testFees.Default), ApplyNone))
	assert.Equal(t, ResultUnknown, testEngine.ApplyTransaction(newTransaction(ledger.TransactionTypeTake, 0, 0), ApplyNone))
	assert.Equal(t, ResultUnknown, testEngine.ApplyTransaction(newTransaction(ledger.TransactionType(200), 0, 0), ApplyNone))

	// The reserved handler bodies stay stable, too.
	assert.Equal(t, ResultUnknown, testEngine.applyInvoice(nil, nil))
	assert.Equal(t, ResultUnknown, testEngine.applyOffer(nil, nil))
	assert.Equal(t, ResultUnknown, testEngine.applyTake(nil, nil))
	assert.Equal(t, ResultUnknown, testEngine.applyCancel(nil, nil))
	assert.Equal(t, ResultUnknown, testEngine.applyStore(nil, nil))
	assert.Equal(t, ResultUnknown, testEngine.applyDelete(nil, nil))
	assert.Equal(t, ResultInvalid, testEngine.applyTransitSet(nil, nil))
}

func TestEngine_SequenceMonotonicity(t *testing.T) {
	testEngine, testLedger := newTestEngine()
	source := newWallet()
	destination := newWallet()
	seedAccount(t, testLedger, source.accountID, 100000, 0)
	seedAccount(t, testLedger, destination.accountID, 0, 1)

	for sequence := uint32(0); sequence < 10; sequence++ {
		essence := ledger.NewTransactionEssence(ledger.TransactionTypePayment, source.accountID, sequence, testFees.Default, source.keyPair.PublicKey).
			SetDestination(destination.accountID).
			SetAmount(ledger.NewNativeAmount(int64(sequence) + 1))

		require.Equal(t, ResultSuccess, testEngine.ApplyTransaction(source.sign(essence), ApplyNone))
		require.Equal(t, sequence+1, mustAccountRoot(t, testLedger, source.accountID).Sequence())
	}

	assert.Equal(t, 10*testFees.Default, testLedger.FeePool())
}

func TestResult_Classification(t *testing.T) {
	assert.True(t, ResultSuccess.IsSuccess())
	assert.False(t, ResultSuccess.IsMalformed())
	assert.False(t, ResultSuccess.IsRetryable())

	assert.True(t, ResultInvalid.IsMalformed())
	assert.True(t, ResultGeneratorInUse.IsMalformed())
	assert.True(t, ResultTransitWorse.IsMalformed())
	assert.False(t, ResultPastSequence.IsMalformed())

	assert.True(t, ResultNoAccount.IsRetryable())
	assert.True(t, ResultUnfunded.IsRetryable())
	assert.False(t, ResultAlreadyApplied.IsRetryable())

	assert.Equal(t, "ResultSuccess", ResultSuccess.String())
	assert.Equal(t, "ResultDirectoryFull", ResultDirectoryFull.String())
	assert.Equal(t, "ResultTransitWorse", ResultTransitWorse.String())
}
