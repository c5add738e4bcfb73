//go:build !windows

package lifecycle

import (
	"os"
	"syscall"
)

func signalSets() (background, terminate []os.Signal) {
	return []os.Signal{syscall.SIGUSR1}, []os.Signal{os.Interrupt, syscall.SIGTERM}
}
