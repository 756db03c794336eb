// Package auth verifies that the origin of an operation was signed by the
// owner of the source address.
package auth

import (
	"github.com/btcsuite/btcutil/base58"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
)

var log logging.Logger = logging.New("module", "auth")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// Origin is what the caller claims: the source address, the hash of the
// signed body and the base58 encoded signature of `networkID + Hash`.
type Origin struct {
	Source    string
	Hash      string
	Signature string
}

// Caller is the authenticated account.
type Caller struct {
	Address string
}

func (c Caller) String() string {
	return c.Address
}

// Gate holds no state except the network id; it is safe for concurrent use.
type Gate struct {
	networkID []byte
}

func NewGate(networkID []byte) Gate {
	return Gate{networkID: networkID}
}

// Authenticate returns `errors.Unauthorized` unless the signature of the
// origin is verified by the source address.
func (g Gate) Authenticate(origin Origin) (Caller, error) {
	if len(origin.Source) < 1 {
		return Caller{}, unauthorized(origin, "empty source")
	}
	if len(origin.Hash) < 1 {
		return Caller{}, unauthorized(origin, "empty hash")
	}
	if len(origin.Signature) < 1 {
		return Caller{}, unauthorized(origin, "empty signature")
	}

	kp, err := keypair.Parse(origin.Source)
	if err != nil || !keypair.IsValidAddress(origin.Source) {
		return Caller{}, unauthorized(origin, "invalid source address")
	}

	signature := base58.Decode(origin.Signature)
	if len(signature) < 1 {
		return Caller{}, unauthorized(origin, "signature is not base58")
	}

	if err = keypair.VerifySignature(kp, g.networkID, origin.Hash, signature); err != nil {
		return Caller{}, unauthorized(origin, "signature verification failed")
	}

	return Caller{Address: origin.Source}, nil
}

func unauthorized(origin Origin, reason string) error {
	log.Debug("origin rejected", "source", origin.Source, "hash", origin.Hash, "reason", reason)
	return errors.Unauthorized.Clone().SetData("reason", reason)
}

// NewSignedOrigin makes the `Origin` signed by `kp`; used by the clients and
// tests.
func NewSignedOrigin(kp keypair.KP, networkID []byte, hash string) (Origin, error) {
	signature, err := keypair.MakeSignature(kp, networkID, hash)
	if err != nil {
		return Origin{}, err
	}

	return Origin{
		Source:    kp.Address(),
		Hash:      hash,
		Signature: base58.Encode(signature),
	}, nil
}
