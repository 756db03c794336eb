package main

import (
	"boscoin.io/tally/cmd/tally/cmd"
)

func main() {
	cmd.Execute()
}
