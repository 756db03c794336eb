// Thin layer over Stellar's keypair package; candidate ids and voter ids
// are stellar public addresses.
package keypair

import (
	stellar "github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
)

type Full = stellar.Full
type KP = stellar.KP

var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature signs `networkID + hash`.
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(append(networkID, []byte(hash)...))
}

// VerifySignature verifies the signature made by `MakeSignature`.
func VerifySignature(kp KP, networkID []byte, hash string, signature []byte) error {
	return kp.Verify(append(networkID, []byte(hash)...), signature)
}

// IsValidAddress checks the address is stellar public address, not seed.
func IsValidAddress(address string) bool {
	_, err := strkey.Decode(strkey.VersionByteAccountID, address)
	return err == nil
}
