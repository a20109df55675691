package cmd

import (
	"fmt"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	"github.com/ndn-go/ndnclient/std/types/optional"
	"github.com/spf13/cobra"
)

var getLifetime time.Duration

var cmdGet = &cobra.Command{
	Use:   "get <name>",
	Short: "Express an Interest and print the resulting Data's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	cmdGet.Flags().DurationVar(&getLifetime, "lifetime", 4*time.Second, "Interest lifetime")
}

type getResult struct {
	data *ndn.Data
	nack *ndn.NetworkNack
}

func runGet(cmd *cobra.Command, args []string) error {
	f, err := buildFace()
	if err != nil {
		return err
	}
	defer f.Close()

	name, err := enc.NameFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid name %q: %w", args[0], err)
	}

	interest, err := spec_tlv.MakeInterest(name, &ndn.InterestConfig{
		MustBeFresh: true,
		Lifetime:    optional.Some(getLifetime),
	})
	if err != nil {
		return err
	}

	done := make(chan getResult, 1)
	_, err = f.ExpressInterest(
		&ndn.Interest{NameV: interest.FinalName, LifetimeV: interest.Config.Lifetime},
		func(_ *ndn.Interest, data *ndn.Data) { done <- getResult{data: data} },
		func(*ndn.Interest) { done <- getResult{} },
		func(_ *ndn.Interest, nack *ndn.NetworkNack) { done <- getResult{nack: nack} },
	)
	if err != nil {
		return err
	}

	go pumpUntilClosed(f)

	select {
	case r := <-done:
		switch {
		case r.data != nil:
			fmt.Println(string(r.data.Content().Join()))
			return nil
		case r.nack != nil:
			return fmt.Errorf("nack received, reason %d", r.nack.Reason)
		default:
			return fmt.Errorf("interest timed out")
		}
	case <-time.After(getLifetime + time.Second):
		return fmt.Errorf("interest timed out")
	}
}
