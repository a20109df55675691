package signer

import (
	"crypto/rand"
	"sync"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// DefaultCommandInterestLifetime is substituted when the caller leaves a
// command Interest's lifetime unset.
const DefaultCommandInterestLifetime = 1000 * time.Millisecond

// CommandSigner turns a bare Interest name into a signed command Interest
// a forwarder will accept for its management protocol. It is stateful: it enforces a strictly-increasing timestamp
// across calls from a single instance.
type CommandSigner struct {
	signer ndn.Signer

	mu        sync.Mutex
	lastStamp int64 // last emitted Timestamp component value, in milliseconds
}

// NewCommandSigner wraps signer to produce signed command Interests.
func NewCommandSigner(signer ndn.Signer) *CommandSigner {
	return &CommandSigner{signer: signer}
}

// MakeCommandInterest appends Timestamp and Nonce name components to name,
// signs the result with the wrapped Signer, and appends SignatureInfo and
// SignatureValue name components, producing a finished Interest ready to
// express. If lifetime is unset, it defaults to
// DefaultCommandInterestLifetime.
func (s *CommandSigner) MakeCommandInterest(name enc.Name, lifetime optional.Optional[time.Duration]) (*ndn.EncodedInterest, error) {
	stamp := s.nextTimestamp(time.Now())

	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	signedName := name.Append(
		enc.GenericComponent(minimalBigEndian(uint64(stamp))),
		enc.GenericComponent(nonce),
	)

	sigInfoWire := spec_tlv.EncodeSignatureInfo(s.signer)

	interest := &ndn.Interest{NameV: signedName}
	if _, err := spec_tlv.EncodeInterest(interest); err != nil {
		return nil, err
	}

	covered := append(enc.Wire{}, interest.SignedPortion...)
	covered = append(covered, sigInfoWire...)

	sigValue, err := s.signer.Sign(covered)
	if err != nil {
		return nil, err
	}

	finalName := signedName.Append(
		enc.GenericComponent(sigInfoWire.Join()),
		enc.GenericComponent(spec_tlv.EncodeSignatureValue(sigValue).Join()),
	)

	lt := lifetime.GetOr(DefaultCommandInterestLifetime)
	config := &ndn.InterestConfig{
		MustBeFresh: true,
		Lifetime:    optional.Some(lt),
	}
	return spec_tlv.MakeInterest(finalName, config)
}

// nextTimestamp returns now truncated to milliseconds, bumped by 1ms over
// the last call if the wall clock did not advance.
func (s *CommandSigner) nextTimestamp(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := now.UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp
	return stamp
}

// minimalBigEndian encodes v as the shortest big-endian byte sequence that
// represents it, with at least one byte (v == 0 encodes as a single zero
// byte).
func minimalBigEndian(v uint64) []byte {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return append([]byte(nil), buf[i:]...)
}
