package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ndn-go/ndnclient/std/config"
	"github.com/ndn-go/ndnclient/std/face"
	"github.com/ndn-go/ndnclient/std/utils"
	"github.com/spf13/cobra"
)

var (
	transportUri string
	configFile   string
)

// Root is the ndndc command tree.
var Root = &cobra.Command{
	Use:   "ndndc",
	Short: "NDN client runtime command-line tool",
}

func init() {
	Root.PersistentFlags().StringVar(&transportUri, "transport", "",
		"forwarder transport URI, e.g. unix:///run/nfd/nfd.sock or tcp://127.0.0.1:6363")
	Root.PersistentFlags().StringVar(&configFile, "config", "", "client configuration YAML file")
	Root.AddCommand(cmdGet, cmdServe)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	go func() {
		for range sigCh {
			utils.PrintStackTrace()
		}
	}()
}

// buildFace resolves --transport/--config (in that precedence) into a
// connected-on-first-use Face, falling back to config.Default().
func buildFace() (*face.Face, error) {
	switch {
	case transportUri != "":
		return face.NewFromConfig(&config.Config{Transport: config.TransportConfig{Uri: transportUri}})
	case configFile != "":
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		return face.NewFromConfig(cfg)
	default:
		return face.NewFromConfig(config.Default())
	}
}
