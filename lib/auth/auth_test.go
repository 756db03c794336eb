package auth

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
)

var networkID = []byte("tally-unittest")

func TestGateAuthenticate(t *testing.T) {
	kp := keypair.Random()
	hash := common.MakeObjectHashString("body")

	origin, err := NewSignedOrigin(kp, networkID, hash)
	require.NoError(t, err)

	caller, err := NewGate(networkID).Authenticate(origin)
	require.NoError(t, err)
	require.Equal(t, kp.Address(), caller.Address)
	require.Equal(t, kp.Address(), caller.String())
}

func TestGateAuthenticateRejects(t *testing.T) {
	kp := keypair.Random()
	hash := common.MakeObjectHashString("body")
	gate := NewGate(networkID)

	valid, err := NewSignedOrigin(kp, networkID, hash)
	require.NoError(t, err)

	otherNetwork, err := NewSignedOrigin(kp, []byte("other-network"), hash)
	require.NoError(t, err)

	otherSigner, err := NewSignedOrigin(keypair.Random(), networkID, hash)
	require.NoError(t, err)

	cases := map[string]Origin{
		"empty source":     {Hash: hash, Signature: valid.Signature},
		"empty hash":       {Source: kp.Address(), Signature: valid.Signature},
		"empty signature":  {Source: kp.Address(), Hash: hash},
		"seed as source":   {Source: kp.Seed(), Hash: hash, Signature: valid.Signature},
		"invalid source":   {Source: "GABC", Hash: hash, Signature: valid.Signature},
		"not base58":       {Source: kp.Address(), Hash: hash, Signature: "0OIl"},
		"other hash":       {Source: kp.Address(), Hash: hash + "x", Signature: valid.Signature},
		"other network":    otherNetwork,
		"signed by other":  {Source: kp.Address(), Hash: hash, Signature: otherSigner.Signature},
		"random signature": {Source: kp.Address(), Hash: hash, Signature: base58.Encode([]byte("signature"))},
	}

	for name, origin := range cases {
		_, err := gate.Authenticate(origin)
		require.Error(t, err, name)
		require.True(t, errors.Is(err, errors.Unauthorized), name)
	}
}
