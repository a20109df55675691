package signer

import (
	"fmt"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// keyTypeError reports a PKCS#8 key that decoded to an unexpected Go type.
type keyTypeError struct {
	want string
}

func (e keyTypeError) Error() string {
	return fmt.Sprintf("parsed key is not a %s private key", e.want)
}

// ContextSigner wraps a Signer to override the KeyLocator it reports,
// without touching how it signs. Used when a key's on-wire locator
// differs from the name under which it was generated (e.g. a certificate
// name rather than the bare key name).
type ContextSigner struct {
	ndn.Signer
	KeyLocatorNameV enc.Name
}

func (s *ContextSigner) KeyLocatorName() enc.Name {
	return s.KeyLocatorNameV
}
