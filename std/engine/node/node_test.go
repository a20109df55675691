package node_test

import (
	"testing"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/engine/node"
	"github.com/ndn-go/ndnclient/std/engine/transport"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	sig "github.com/ndn-go/ndnclient/std/security/signer"
	"github.com/ndn-go/ndnclient/std/types/optional"
	"github.com/stretchr/testify/require"
)

func noErr[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func newTestNode(local bool) (*node.Node, *transport.DummyTransport, *node.DummyTimer) {
	tr := transport.NewDummyTransport(local)
	timer := node.NewDummyTimer()
	signer := sig.NewCommandSigner(sig.NewSha256Signer())
	n := node.New(tr, transport.DummyConnectionInfo{}, timer, signer)
	return n, tr, timer
}

func TestExpressInterestSendsAndReceivesData(t *testing.T) {
	n, tr, _ := newTestNode(true)

	name := noErr(enc.NameFromStr("/example/data"))
	interest, err := spec_tlv.MakeInterest(name, &ndn.InterestConfig{
		MustBeFresh: true,
		Lifetime:    optional.Some(6 * time.Second),
	})
	require.NoError(t, err)

	var gotData *ndn.Data
	_, err = n.ExpressInterest(&ndn.Interest{NameV: interest.FinalName, LifetimeV: interest.Config.Lifetime},
		func(_ *ndn.Interest, data *ndn.Data) { gotData = data },
		nil, nil)
	require.NoError(t, err)

	sent := tr.SentElements()
	require.Len(t, sent, 1)

	data, err := spec_tlv.MakeData(name, &ndn.DataConfig{}, enc.Wire{[]byte("hello")}, sig.NewSha256Signer())
	require.NoError(t, err)
	require.NoError(t, tr.FeedElement(data.WireEncoding.Join()))

	require.NotNil(t, gotData)
	require.True(t, gotData.Name().Equal(name))
	require.Equal(t, []byte("hello"), gotData.Content().Join())
}

func TestExpressInterestTimesOut(t *testing.T) {
	n, tr, timer := newTestNode(true)

	name := noErr(enc.NameFromStr("/example/nothing"))
	interest, err := spec_tlv.MakeInterest(name, &ndn.InterestConfig{
		Lifetime: optional.Some(10 * time.Millisecond),
	})
	require.NoError(t, err)

	timedOut := false
	_, err = n.ExpressInterest(&ndn.Interest{NameV: interest.FinalName, LifetimeV: interest.Config.Lifetime},
		nil, func(*ndn.Interest) { timedOut = true }, nil)
	require.NoError(t, err)
	require.Len(t, tr.SentElements(), 1)

	timer.MoveForward(5 * time.Millisecond)
	require.False(t, timedOut)

	timer.MoveForward(10 * time.Millisecond)
	require.True(t, timedOut)
}

func TestExpressInterestNack(t *testing.T) {
	n, tr, _ := newTestNode(true)

	name := noErr(enc.NameFromStr("/example/norout"))
	interest, err := spec_tlv.MakeInterest(name, &ndn.InterestConfig{
		Lifetime: optional.Some(1 * time.Second),
	})
	require.NoError(t, err)

	var gotReason ndn.NackReason
	_, err = n.ExpressInterest(&ndn.Interest{NameV: interest.FinalName, LifetimeV: interest.Config.Lifetime},
		nil, nil,
		func(_ *ndn.Interest, nack *ndn.NetworkNack) { gotReason = nack.Reason })
	require.NoError(t, err)

	sent := tr.SentElements()
	require.Len(t, sent, 1)

	lp := &ndn.LpPacket{
		Fragment: enc.Wire{sent[0]},
		Nack:     &ndn.NetworkNack{Reason: ndn.NackReasonNoRoute},
	}
	lpWire := spec_tlv.EncodeLpPacket(lp)
	require.NoError(t, tr.FeedElement(lpWire.Join()))

	require.Equal(t, ndn.NackReasonNoRoute, gotReason)
}

func TestSetInterestFilterDispatchesIncomingInterest(t *testing.T) {
	n, tr, _ := newTestNode(true)

	prefix := noErr(enc.NameFromStr("/local/app"))
	hit := 0
	_, err := n.SetInterestFilter(&ndn.InterestFilter{Prefix: prefix}, func(p enc.Name, i *ndn.Interest, face ndn.Face, id uint64, f *ndn.InterestFilter) {
		hit++
		require.True(t, p.Equal(prefix))
	})
	require.NoError(t, err)

	// Any outbound call brings the transport up so onElement is wired as
	// its sink; an empty-lifetime Interest with no handlers is enough.
	_, err = n.ExpressInterest(&ndn.Interest{NameV: noErr(enc.NameFromStr("/warm/up"))}, nil, nil, nil)
	require.NoError(t, err)
	tr.SentElements()

	interest, err := spec_tlv.MakeInterest(noErr(enc.NameFromStr("/local/app/x")), &ndn.InterestConfig{})
	require.NoError(t, err)
	require.NoError(t, tr.FeedElement(interest.Wire.Join()))

	require.Equal(t, 1, hit)
}

func TestRegisterPrefixSuccessAndIncomingInterest(t *testing.T) {
	n, tr, _ := newTestNode(true)

	prefix := noErr(enc.NameFromStr("/my/app"))
	var registeredId uint64
	var gotInterest *ndn.Interest

	onInterest := func(p enc.Name, i *ndn.Interest, face ndn.Face, id uint64, f *ndn.InterestFilter) {
		gotInterest = i
	}
	onSuccess := func(name enc.Name, id uint64) { registeredId = id }
	onFailed := func(name enc.Name) { t.Fatalf("unexpected registration failure") }

	_, err := n.RegisterPrefix(prefix, onInterest, onFailed, onSuccess, ndn.DefaultForwardingFlags())
	require.NoError(t, err)

	sent := tr.SentElements()
	require.Len(t, sent, 1)

	resp := &ndn.ControlResponse{StatusCode: 200, StatusText: "OK"}
	respWire := spec_tlv.EncodeControlResponse(resp)
	respData, err := spec_tlv.MakeData(noErr(spec_tlv.DecodeInterest(enc.NewDecoder(sent[0]))).NameV,
		&ndn.DataConfig{}, respWire, sig.NewSha256Signer())
	require.NoError(t, err)
	require.NoError(t, tr.FeedElement(respData.WireEncoding.Join()))

	require.NotZero(t, registeredId)

	incoming, err := spec_tlv.MakeInterest(noErr(enc.NameFromStr("/my/app/ping")), &ndn.InterestConfig{})
	require.NoError(t, err)
	require.NoError(t, tr.FeedElement(incoming.Wire.Join()))

	require.NotNil(t, gotInterest)
	require.True(t, gotInterest.Name().Equal(noErr(enc.NameFromStr("/my/app/ping"))))

	n.RemoveRegisteredPrefix(registeredId)
	gotInterest = nil
	require.NoError(t, tr.FeedElement(incoming.Wire.Join()))
	require.Nil(t, gotInterest)
}

func TestRegisterPrefixFailureResponse(t *testing.T) {
	n, tr, _ := newTestNode(true)

	prefix := noErr(enc.NameFromStr("/my/app"))
	failed := false

	_, err := n.RegisterPrefix(prefix, nil,
		func(enc.Name) { failed = true },
		func(enc.Name, uint64) { t.Fatalf("unexpected success") },
		ndn.DefaultForwardingFlags())
	require.NoError(t, err)

	sent := tr.SentElements()
	require.Len(t, sent, 1)

	resp := &ndn.ControlResponse{StatusCode: 403, StatusText: "Forbidden"}
	respWire := spec_tlv.EncodeControlResponse(resp)
	respData, err := spec_tlv.MakeData(noErr(spec_tlv.DecodeInterest(enc.NewDecoder(sent[0]))).NameV,
		&ndn.DataConfig{}, respWire, sig.NewSha256Signer())
	require.NoError(t, err)
	require.NoError(t, tr.FeedElement(respData.WireEncoding.Join()))

	require.True(t, failed)
}

func TestRegisterPrefixCancelBeforeAck(t *testing.T) {
	n, tr, _ := newTestNode(true)

	prefix := noErr(enc.NameFromStr("/my/app"))
	succeeded := false

	id, err := n.RegisterPrefix(prefix, nil, nil,
		func(enc.Name, uint64) { succeeded = true },
		ndn.DefaultForwardingFlags())
	require.NoError(t, err)

	sent := tr.SentElements()
	require.Len(t, sent, 1)

	n.RemoveRegisteredPrefix(id)

	resp := &ndn.ControlResponse{StatusCode: 200, StatusText: "OK"}
	respWire := spec_tlv.EncodeControlResponse(resp)
	respData, err := spec_tlv.MakeData(noErr(spec_tlv.DecodeInterest(enc.NewDecoder(sent[0]))).NameV,
		&ndn.DataConfig{}, respWire, sig.NewSha256Signer())
	require.NoError(t, err)
	require.NoError(t, tr.FeedElement(respData.WireEncoding.Join()))

	require.False(t, succeeded)
}

func TestPutDataRequiresWireEncoding(t *testing.T) {
	n, _, _ := newTestNode(true)
	err := n.PutData(&ndn.Data{NameV: noErr(enc.NameFromStr("/x"))})
	require.Error(t, err)
}

func TestPutDataSendsCachedWire(t *testing.T) {
	n, tr, _ := newTestNode(true)
	data, err := spec_tlv.MakeData(noErr(enc.NameFromStr("/x")), &ndn.DataConfig{}, enc.Wire{[]byte("v")}, sig.NewSha256Signer())
	require.NoError(t, err)

	require.NoError(t, n.PutData(data))
	sent := tr.SentElements()
	require.Len(t, sent, 1)
	require.Equal(t, data.WireEncoding.Join(), sent[0])
}
