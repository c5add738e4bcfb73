//go:build windows

package lifecycle

import "os"

func signalSets() (background, terminate []os.Signal) {
	return nil, []os.Signal{os.Interrupt}
}
