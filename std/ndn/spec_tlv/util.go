package spec_tlv

import "crypto/rand"

// randomBytes returns n cryptographically random bytes, used to fill an
// Interest's Nonce field when the caller did not supply one.
func randomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}
