package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/tally/lib/client"
	"boscoin.io/tally/lib/errors"
)

// ErrorMessage prefers the message of the coded errors, which are shared by
// the node and the client.
func ErrorMessage(err error) string {
	switch e := err.(type) {
	case *errors.Error:
		return e.Message
	case client.Error:
		if len(e.Problem.Detail) > 0 {
			return fmt.Sprintf("%s; %s", e.Problem.Title, e.Problem.Detail)
		}
		return e.Problem.Title
	default:
		return err.Error()
	}
}

// PrintFlagsError prints the message to stderr with the usage, then exits.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, ErrorMessage(err))
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n\n", ErrorMessage(err))
	}

	cmd.Help()

	os.Exit(1)
}
