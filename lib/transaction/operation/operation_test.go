package operation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
)

func TestNewOperation(t *testing.T) {
	address := keypair.Random().Address()

	cases := map[OperationType]Body{
		TypeVote:                 NewVote(address),
		TypeAddCandidate:         NewAddCandidate(address, "alice"),
		TypeAddOrUpdateCandidate: NewAddOrUpdateCandidate(address, "alice"),
		TypeRemoveCandidate:      NewRemoveCandidate(address),
	}

	for expected, body := range cases {
		op, err := NewOperation(body)
		require.NoError(t, err)
		require.Equal(t, expected, op.H.Type)
		require.Equal(t, address, op.B.TargetAddress())
		require.True(t, IsValidOperationType(string(expected)))
	}

	require.False(t, IsValidOperationType("payment"))
}

func TestOperationJSON(t *testing.T) {
	op := MustNewOperation(NewAddCandidate(keypair.Random().Address(), "alice"))
	b, err := op.Serialize()
	require.NoError(t, err)

	var decoded Operation
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, op, decoded)

	err = json.Unmarshal([]byte(`{"H":{"type":"payment"},"B":{}}`), &decoded)
	require.True(t, errors.Is(err, errors.UnknownOperationType))
}

func TestIsWellFormedOperation(t *testing.T) {
	conf := common.NewTestConfig()
	address := keypair.Random().Address()

	require.NoError(t, MakeTestVote().IsWellFormed(conf))
	require.NoError(t, MustNewOperation(NewAddCandidate(address, "")).IsWellFormed(conf))
	require.NoError(t, MustNewOperation(NewRemoveCandidate(address)).IsWellFormed(conf))

	{ // bad address
		err := MustNewOperation(NewVote("GABC")).IsWellFormed(conf)
		require.True(t, errors.Is(err, errors.BadPublicAddress))

		err = MustNewOperation(NewVote(keypair.Random().Seed())).IsWellFormed(conf)
		require.True(t, errors.Is(err, errors.BadPublicAddress))
	}

	{ // header and body mismatch
		op := Operation{H: Header{Type: TypeRemoveCandidate}, B: NewVote(address)}
		require.True(t, errors.Is(op.IsWellFormed(conf), errors.InvalidOperation))

		require.True(t, errors.Is(Operation{H: Header{Type: TypeVote}}.IsWellFormed(conf), errors.InvalidOperation))
	}
}

func TestIsWellFormedCandidateName(t *testing.T) {
	conf := common.NewTestConfig()
	address := keypair.Random().Address()

	exact := strings.Repeat("a", conf.MaxNameLength)
	over := exact + "a"

	require.NoError(t, MustNewOperation(NewAddCandidate(address, exact)).IsWellFormed(conf))
	require.NoError(t, MustNewOperation(NewAddOrUpdateCandidate(address, exact)).IsWellFormed(conf))

	err := MustNewOperation(NewAddCandidate(address, over)).IsWellFormed(conf)
	require.True(t, errors.Is(err, errors.NameTooLong))

	err = MustNewOperation(NewAddOrUpdateCandidate(address, over)).IsWellFormed(conf)
	require.True(t, errors.Is(err, errors.NameTooLong))

	// multibyte name is measured in bytes
	conf.MaxNameLength = 3
	err = MustNewOperation(NewAddCandidate(address, "가나")).IsWellFormed(conf)
	require.True(t, errors.Is(err, errors.NameTooLong))
}

func TestIsWellFormedCandidateNameUTF8(t *testing.T) {
	conf := common.NewTestConfig()
	address := keypair.Random().Address()

	err := MustNewOperation(NewAddCandidate(address, "\xff\xfe")).IsWellFormed(conf)
	require.True(t, errors.Is(err, errors.InvalidCandidateName))

	err = MustNewOperation(NewAddOrUpdateCandidate(address, "a\xc3")).IsWellFormed(conf)
	require.True(t, errors.Is(err, errors.InvalidCandidateName))

	require.NoError(t, MustNewOperation(NewAddCandidate(address, "가나")).IsWellFormed(conf))
}
