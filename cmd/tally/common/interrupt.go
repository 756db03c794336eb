package common

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Interrupt blocks until SIGINT or SIGTERM arrives or `cancel` is closed.
func Interrupt(cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return fmt.Errorf("received signal %s", sig)
	case <-cancel:
		return errors.New("canceled")
	}
}
