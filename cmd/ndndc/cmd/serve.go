package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	sig "github.com/ndn-go/ndnclient/std/security/signer"
	"github.com/ndn-go/ndnclient/std/types/optional"
	"github.com/spf13/cobra"
)

var cmdServe = &cobra.Command{
	Use:   "serve <prefix>",
	Short: "Register a prefix and echo received Interests as Data",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	f, err := buildFace()
	if err != nil {
		return err
	}
	defer f.Close()

	prefix, err := enc.NameFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid prefix %q: %w", args[0], err)
	}

	replySigner := sig.NewTestSigner(enc.Name{}, 32)
	onInterest := func(_ enc.Name, interest *ndn.Interest, face ndn.Face, _ uint64, _ *ndn.InterestFilter) {
		fmt.Println("<<", interest.Name().String())
		data, err := spec_tlv.MakeData(interest.Name(),
			&ndn.DataConfig{ContentType: optional.Some(ndn.ContentTypeBlob)},
			enc.Wire{[]byte("hello from ndndc")}, replySigner)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to build reply:", err)
			return
		}
		if err := face.PutData(data); err != nil {
			fmt.Fprintln(os.Stderr, "failed to send reply:", err)
		}
	}

	registered := make(chan error, 1)
	_, err = f.RegisterPrefix(prefix, onInterest,
		func(name enc.Name) { registered <- fmt.Errorf("registration failed for %s", name.String()) },
		func(name enc.Name, _ uint64) { registered <- nil },
		ndn.DefaultForwardingFlags())
	if err != nil {
		return err
	}

	go pumpUntilClosed(f)

	if err := <-registered; err != nil {
		return err
	}
	fmt.Println("registered", prefix.String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	return nil
}
