package transport_test

import (
	"testing"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/engine/transport"
	"github.com/stretchr/testify/require"
)

func TestDummyTransportSendAndFeed(t *testing.T) {
	tr := transport.NewDummyTransport(true)
	require.True(t, tr.IsLocal(transport.DummyConnectionInfo{}))
	require.False(t, tr.IsConnected())

	var received [][]byte
	require.NoError(t, tr.Connect(transport.DummyConnectionInfo{}, func(element []byte) {
		received = append(received, element)
	}, nil))
	require.True(t, tr.IsConnected())

	require.NoError(t, tr.Send(enc.Wire{enc.Buffer{0x05, 0x03, 0x01, 0x02, 0x03}}))
	sent := tr.SentElements()
	require.Len(t, sent, 1)
	require.Equal(t, enc.Buffer{0x05, 0x03, 0x01, 0x02, 0x03}, sent[0])
	require.Empty(t, tr.SentElements())

	require.NoError(t, tr.FeedElement([]byte{0x06, 0x01, 0x01}))
	require.Len(t, received, 1)
	require.Equal(t, []byte{0x06, 0x01, 0x01}, received[0])

	require.NoError(t, tr.Close())
	require.Error(t, tr.Send(enc.Wire{enc.Buffer{0x05, 0x00}}))
}

func TestElementReaderSplitsAndBuffersPartial(t *testing.T) {
	var r transport.ElementReader
	var got []enc.Buffer

	first := []byte{0x05, 0x03, 0x01, 0x02, 0x03}
	second := []byte{0x06, 0x02, 0xaa, 0xbb}

	// Feed the two elements back to back, split at an arbitrary byte
	// boundary that lands mid-element, to exercise buffering of a
	// partial trailing element.
	chunk1 := append(append([]byte{}, first...), second[:2]...)
	chunk2 := second[2:]

	err := r.Feed(chunk1, func(element []byte) {
		got = append(got, append(enc.Buffer{}, element...))
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, enc.Buffer(first), got[0])

	err = r.Feed(chunk2, func(element []byte) {
		got = append(got, append(enc.Buffer{}, element...))
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, enc.Buffer(second), got[1])
}

func TestElementReaderRejectsBadLeadingType(t *testing.T) {
	var r transport.ElementReader
	err := r.Feed([]byte{0xfd}, func([]byte) {})
	require.NoError(t, err) // not enough bytes for the length marker yet

	err = r.Feed([]byte{0x00, 0x01, 0x00}, func([]byte) {})
	require.Error(t, err)
}
