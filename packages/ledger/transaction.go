package ledger

import (
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region TransactionType //////////////////////////////////////////////////////////////////////////////////////////////

const (
	// TransactionTypeInvalid marks a transaction with an unusable type tag.
	TransactionTypeInvalid TransactionType = iota

	// TransactionTypeClaim claims an unclaimed account by installing an authorized key.
	TransactionTypeClaim

	// TransactionTypePayment transfers value from the source account to a destination account.
	TransactionTypePayment

	// TransactionTypeCreditSet establishes or updates a credit line between two accounts.
	TransactionTypeCreditSet

	// TransactionTypeInvoice is reserved.
	TransactionTypeInvoice

	// TransactionTypeOffer is reserved.
	TransactionTypeOffer

	// TransactionTypeTransitSet is reserved.
	TransactionTypeTransitSet

	// TransactionTypeTake is reserved.
	TransactionTypeTake

	// TransactionTypeCancel is reserved.
	TransactionTypeCancel

	// TransactionTypeStore is reserved.
	TransactionTypeStore

	// TransactionTypeDelete is reserved.
	TransactionTypeDelete
)

// TransactionType is the type tag of a Transaction that selects the handler applying it.
type TransactionType byte

// String returns a human-readable version of the TransactionType.
func (t TransactionType) String() string {
	names := [...]string{
		"TransactionTypeInvalid",
		"TransactionTypeClaim",
		"TransactionTypePayment",
		"TransactionTypeCreditSet",
		"TransactionTypeInvoice",
		"TransactionTypeOffer",
		"TransactionTypeTransitSet",
		"TransactionTypeTake",
		"TransactionTypeCancel",
		"TransactionTypeStore",
		"TransactionTypeDelete",
	}
	if int(t) >= len(names) {
		return "TransactionType(" + strconv.Itoa(int(t)) + ")"
	}

	return names[t]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionFlags /////////////////////////////////////////////////////////////////////////////////////////////

// FlagCreateAccount requests that a payment creates its destination account.
const FlagCreateAccount TransactionFlags = 0x00010000

// TransactionFlags is the bit field of flags carried by a Transaction.
type TransactionFlags uint32

// Has returns true if all the given flags are set.
func (t TransactionFlags) Has(flags TransactionFlags) bool {
	return t&flags == flags
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionEssence ///////////////////////////////////////////////////////////////////////////////////////////

// TransactionEssence contains the transaction fields that are covered by the signature.
type TransactionEssence struct {
	txType           TransactionType
	flags            TransactionFlags
	source           AccountID
	sequence         uint32
	fee              int64
	signingPublicKey ed25519.PublicKey
	destination      AccountID
	amount           Amount
	currencySet      bool
	currency         CurrencyID
	limitAmount      Amount
	generatorCipher  []byte
	generatorKey     ed25519.PublicKey
	generatorSig     ed25519.Signature
}

// NewTransactionEssence creates a TransactionEssence with the mandatory fields; optional fields are added with the
// Set methods before signing.
func NewTransactionEssence(txType TransactionType, source AccountID, sequence uint32, fee int64, signingPublicKey ed25519.PublicKey) *TransactionEssence {
	return &TransactionEssence{
		txType:           txType,
		source:           source,
		sequence:         sequence,
		fee:              fee,
		signingPublicKey: signingPublicKey,
	}
}

// TransactionEssenceFromMarshalUtil unmarshals a TransactionEssence using a MarshalUtil (for easier unmarshalling).
func TransactionEssenceFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (essence *TransactionEssence, err error) {
	essence = &TransactionEssence{}

	txType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse TransactionType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	essence.txType = TransactionType(txType)
	flags, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse flags (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	essence.flags = TransactionFlags(flags)
	if essence.source, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse source: %w", err)
		return
	}
	if essence.sequence, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse sequence (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.fee, err = marshalUtil.ReadInt64(); err != nil {
		err = errors.Errorf("failed to parse fee (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.signingPublicKey, err = ed25519.ParsePublicKey(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse signing public key (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.destination, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse destination: %w", err)
		return
	}
	if essence.amount, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse amount: %w", err)
		return
	}
	if essence.currencySet, err = marshalUtil.ReadBool(); err != nil {
		err = errors.Errorf("failed to parse currency presence (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.currencySet {
		if essence.currency, err = CurrencyIDFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse currency: %w", err)
			return
		}
	}
	if essence.limitAmount, err = AmountFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse limit amount: %w", err)
		return
	}
	cipherLength, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse generator cipher length (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.generatorCipher, err = marshalUtil.ReadBytes(int(cipherLength)); err != nil {
		err = errors.Errorf("failed to parse generator cipher (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.generatorKey, err = ed25519.ParsePublicKey(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse generator public key (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.generatorSig, err = ed25519.ParseSignature(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse generator signature (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// SetFlags sets the flags of the transaction.
func (t *TransactionEssence) SetFlags(flags TransactionFlags) *TransactionEssence {
	t.flags = flags

	return t
}

// SetDestination sets the destination account of the transaction.
func (t *TransactionEssence) SetDestination(destination AccountID) *TransactionEssence {
	t.destination = destination

	return t
}

// SetAmount sets the transferred Amount of the transaction.
func (t *TransactionEssence) SetAmount(amount Amount) *TransactionEssence {
	t.amount = amount

	return t
}

// SetCurrency marks the currency field as present and sets it.
func (t *TransactionEssence) SetCurrency(currency CurrencyID) *TransactionEssence {
	t.currencySet = true
	t.currency = currency

	return t
}

// SetLimitAmount sets the credit limit Amount of the transaction.
func (t *TransactionEssence) SetLimitAmount(limitAmount Amount) *TransactionEssence {
	t.limitAmount = limitAmount

	return t
}

// SetGeneratorClaim sets the generator cipher, public key and signature used to claim an account.
func (t *TransactionEssence) SetGeneratorClaim(cipher []byte, publicKey ed25519.PublicKey, signature ed25519.Signature) *TransactionEssence {
	t.generatorCipher = cipher
	t.generatorKey = publicKey
	t.generatorSig = signature

	return t
}

// Type returns the TransactionType of the transaction.
func (t *TransactionEssence) Type() TransactionType {
	return t.txType
}

// Flags returns the flags of the transaction.
func (t *TransactionEssence) Flags() TransactionFlags {
	return t.flags
}

// Source returns the source account of the transaction.
func (t *TransactionEssence) Source() AccountID {
	return t.source
}

// Sequence returns the sequence number of the transaction.
func (t *TransactionEssence) Sequence() uint32 {
	return t.sequence
}

// Fee returns the fee offered by the transaction, in native units.
func (t *TransactionEssence) Fee() int64 {
	return t.fee
}

// SigningPublicKey returns the public key that the transaction signature is verified under.
func (t *TransactionEssence) SigningPublicKey() ed25519.PublicKey {
	return t.signingPublicKey
}

// Destination returns the destination account of the transaction (zero when absent).
func (t *TransactionEssence) Destination() AccountID {
	return t.destination
}

// Amount returns the transferred Amount of the transaction.
func (t *TransactionEssence) Amount() Amount {
	return t.amount
}

// Currency returns the explicitly specified currency of the transaction and whether the field is present.
func (t *TransactionEssence) Currency() (currency CurrencyID, isSet bool) {
	return t.currency, t.currencySet
}

// LimitAmount returns the credit limit Amount of the transaction.
func (t *TransactionEssence) LimitAmount() Amount {
	return t.limitAmount
}

// GeneratorCipher returns the encrypted generator blob of a claim.
func (t *TransactionEssence) GeneratorCipher() []byte {
	return t.generatorCipher
}

// GeneratorPublicKey returns the generator public key of a claim.
func (t *TransactionEssence) GeneratorPublicKey() ed25519.PublicKey {
	return t.generatorKey
}

// GeneratorSignature returns the generator signature of a claim.
func (t *TransactionEssence) GeneratorSignature() ed25519.Signature {
	return t.generatorSig
}

// Bytes returns a marshaled version of the TransactionEssence.
func (t *TransactionEssence) Bytes() []byte {
	marshalUtil := marshalutil.New().
		WriteByte(byte(t.txType)).
		WriteUint32(uint32(t.flags)).
		WriteBytes(t.source.Bytes()).
		WriteUint32(t.sequence).
		WriteInt64(t.fee).
		WriteBytes(t.signingPublicKey.Bytes()).
		WriteBytes(t.destination.Bytes()).
		WriteBytes(t.amount.Bytes()).
		WriteBool(t.currencySet)
	if t.currencySet {
		marshalUtil.WriteBytes(t.currency.Bytes())
	}
	marshalUtil.
		WriteBytes(t.limitAmount.Bytes()).
		WriteUint32(uint32(len(t.generatorCipher))).
		WriteBytes(t.generatorCipher).
		WriteBytes(t.generatorKey.Bytes()).
		WriteBytes(t.generatorSig.Bytes())

	return marshalUtil.Bytes()
}

// String returns a human-readable version of the TransactionEssence.
func (t *TransactionEssence) String() string {
	return stringify.Struct("TransactionEssence",
		stringify.StructField("type", t.txType),
		stringify.StructField("flags", strconv.FormatUint(uint64(t.flags), 16)),
		stringify.StructField("source", t.source),
		stringify.StructField("sequence", strconv.FormatUint(uint64(t.sequence), 10)),
		stringify.StructField("fee", strconv.FormatInt(t.fee, 10)),
		stringify.StructField("destination", t.destination),
		stringify.StructField("amount", t.amount),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// Transaction is a signed TransactionEssence. Its id is the hash of the signed bytes.
type Transaction struct {
	essence   *TransactionEssence
	signature ed25519.Signature

	id      *TransactionID
	idMutex sync.RWMutex
}

// NewTransaction creates a Transaction from the given TransactionEssence and signature.
func NewTransaction(essence *TransactionEssence, signature ed25519.Signature) *Transaction {
	return &Transaction{
		essence:   essence,
		signature: signature,
	}
}

// TransactionFromBytes unmarshals a Transaction from a sequence of bytes.
func TransactionFromBytes(data []byte) (transaction *Transaction, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if transaction, err = TransactionFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Transaction from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionFromMarshalUtil unmarshals a Transaction using a MarshalUtil (for easier unmarshalling).
func TransactionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (transaction *Transaction, err error) {
	transaction = &Transaction{}
	if transaction.essence, err = TransactionEssenceFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransactionEssence: %w", err)
		return
	}
	if transaction.signature, err = ed25519.ParseSignature(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse signature (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// ID returns the identifier of the Transaction (the hash of its signed bytes). It is computed on first use.
func (t *Transaction) ID() TransactionID {
	t.idMutex.RLock()
	if t.id != nil {
		defer t.idMutex.RUnlock()

		return *t.id
	}
	t.idMutex.RUnlock()

	t.idMutex.Lock()
	defer t.idMutex.Unlock()
	if t.id == nil {
		id := TransactionID(blake2b.Sum256(t.Bytes()))
		t.id = &id
	}

	return *t.id
}

// Essence returns the TransactionEssence of the Transaction.
func (t *Transaction) Essence() *TransactionEssence {
	return t.essence
}

// Signature returns the signature of the Transaction.
func (t *Transaction) Signature() ed25519.Signature {
	return t.signature
}

// SignatureValid returns true if the signature is valid for the essence bytes under the essence's signing public key.
func (t *Transaction) SignatureValid() bool {
	return t.essence.signingPublicKey.VerifySignature(t.essence.Bytes(), t.signature)
}

// Bytes returns a marshaled version of the Transaction.
func (t *Transaction) Bytes() []byte {
	return marshalutil.New().
		WriteBytes(t.essence.Bytes()).
		WriteBytes(t.signature.Bytes()).
		Bytes()
}

// String returns a human-readable version of the Transaction.
func (t *Transaction) String() string {
	return stringify.Struct("Transaction",
		stringify.StructField("id", base58.Encode(t.ID().Bytes())),
		stringify.StructField("essence", t.essence),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
