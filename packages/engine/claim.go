package engine

import (
	"github.com/valueledger/rivulet/packages/ledger"
)

// applyClaim claims an unclaimed account: it installs the generator id as the account's authorized key and registers
// the encrypted generator blob under that id.
func (e *Engine) applyClaim(transaction *ledger.Transaction, affected *AffectedEntries, sourceRoot *ledger.AccountRoot) (result Result) {
	essence := transaction.Essence()

	// The signing key of a claim must be the key of the claimed account itself.
	signingAccountID := ledger.AccountIDFromPublicKey(essence.SigningPublicKey())
	if signingAccountID != essence.Source() {
		e.debugf("applyClaim: signing key does not belong to the source account: %s != %s", signingAccountID, essence.Source())
		return ResultInvalid
	}

	if sourceRoot.IsClaimed() {
		e.debugf("applyClaim: source already claimed")
		return ResultClaimed
	}

	// Verify the claim is authorized for the generator's public key: the generator cipher must be signed by the key
	// it is being registered under.
	generatorCipher := essence.GeneratorCipher()
	generatorKey := essence.GeneratorPublicKey()
	if !generatorKey.VerifySignature(ledger.SHA512Half(generatorCipher), essence.GeneratorSignature()) {
		e.debugf("applyClaim: bad signature, unauthorized claim")
		return ResultInvalid
	}

	// A generator may back at most one account.
	generatorID := ledger.AccountIDFromPublicKey(generatorKey)
	if e.generator(generatorID) != nil {
		e.debugf("applyClaim: generator already in use")
		return ResultGeneratorInUse
	}

	sourceRoot.SetAuthorizedKey(generatorID)
	affected.Stage(OpCreate, ledger.NewGeneratorMap(generatorID, generatorCipher))

	return ResultSuccess
}
