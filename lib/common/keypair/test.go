package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Random makes new keypair for test code
func Random() *Full {
	if kp, err := stellar.Random(); err != nil {
		panic(err)
	} else {
		return kp
	}
}
