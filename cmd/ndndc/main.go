// Command ndndc is a small client for exercising the Face API against a
// running NDN forwarder, grounded on cmd/ndnd and fw/cmd
// Cobra command trees.
package main

import (
	"github.com/ndn-go/ndnclient/cmd/ndndc/cmd"
)

func main() {
	cmd.Root.Execute()
}
