package cmd

import (
	"fmt"
	"os"

	"github.com/ndn-go/ndnclient/std/ndn"
)

// pumpUntilClosed drives f's I/O loop until the transport errors out (e.g.
// the forwarder closed the connection), the shape // single-threaded cooperative model expects an application to run on its
// own goroutine.
func pumpUntilClosed(f ndn.Face) {
	for {
		if err := f.ProcessEvents(); err != nil {
			fmt.Fprintln(os.Stderr, "connection closed:", err)
			return
		}
	}
}
