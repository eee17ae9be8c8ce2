package ledger

import (
	"crypto/sha512"
)

// SHA512Half returns the first half of the SHA-512 digest of the given data. Generator cipher signatures are verified
// against this digest.
func SHA512Half(data []byte) (digest []byte) {
	fullDigest := sha512.Sum512(data)

	return fullDigest[:sha512.Size/2]
}
