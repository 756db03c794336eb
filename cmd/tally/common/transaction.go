package common

import (
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"boscoin.io/tally/lib/client"
	tallycommon "boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/transaction"
	"boscoin.io/tally/lib/transaction/operation"
)

const DefaultEndpoint = "http://127.0.0.1:12345"

// NodeFlags are shared by the commands which talk to the node.
type NodeFlags struct {
	Endpoint string
	Format   string
	NoRetry  bool
}

func NewNodeFlags() *NodeFlags {
	return &NodeFlags{
		Endpoint: tallycommon.GetENVValue("TALLY_ENDPOINT", DefaultEndpoint),
		Format:   "prettyjson",
	}
}

func (f *NodeFlags) AddFlags(c *cobra.Command) {
	c.Flags().StringVar(&f.Endpoint, "endpoint", f.Endpoint, "endpoint of the node")
	c.Flags().StringVar(&f.Format, "format", f.Format, "output format, {json, prettyjson, yaml}")
	c.Flags().BoolVar(&f.NoRetry, "no-retry", f.NoRetry, "do not retry the failed requests")
}

func (f *NodeFlags) Client(c *cobra.Command) *client.Client {
	var retry *client.RetrySetting
	if !f.NoRetry {
		rs := client.DefaultRetrySetting
		retry = &rs
	}

	cl, err := client.NewClient(f.Endpoint, retry)
	if err != nil {
		PrintFlagsError(c, "--endpoint", err)
	}

	return cl
}

// Print encodes `v` to stdout with `--format`.
func (f *NodeFlags) Print(c *cobra.Command, v interface{}) {
	encode, ok := GetEncoder(f.Format)
	if !ok {
		PrintFlagsError(c, "--format", errors.New("unknown format"))
	}

	if err := encode(v, os.Stdout); err != nil {
		PrintError(c, err)
	}
}

// SignerFlags make and sign the transaction.
type SignerFlags struct {
	NodeFlags

	SecretSeed string
	NetworkID  string
	SequenceID uint64
}

func NewSignerFlags() *SignerFlags {
	return &SignerFlags{
		NodeFlags:  *NewNodeFlags(),
		SecretSeed: tallycommon.GetENVValue("TALLY_SECRET_SEED", ""),
		NetworkID:  tallycommon.GetENVValue("TALLY_NETWORK_ID", tallycommon.DefaultNetworkID),
	}
}

func (f *SignerFlags) AddFlags(c *cobra.Command) {
	f.NodeFlags.AddFlags(c)

	c.Flags().StringVar(&f.SecretSeed, "secret-seed", f.SecretSeed, "secret seed of the transaction source")
	c.Flags().StringVar(&f.NetworkID, "network-id", f.NetworkID, "network id")
	c.Flags().Uint64Var(&f.SequenceID, "sequence-id", f.SequenceID, "sequence id of the transaction; random if not set")
}

func (f *SignerFlags) Keypair(c *cobra.Command) *keypair.Full {
	if len(f.SecretSeed) < 1 {
		PrintFlagsError(c, "--secret-seed", errors.New("--secret-seed must be given"))
	}

	kp, err := keypair.Parse(f.SecretSeed)
	if err != nil {
		PrintFlagsError(c, "--secret-seed", err)
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		PrintFlagsError(c, "--secret-seed", errors.New("public address was given, not secret seed"))
	}

	return full
}

// MakeTransaction signs the operations as one transaction.
func (f *SignerFlags) MakeTransaction(kp *keypair.Full, ops ...operation.Operation) (tx transaction.Transaction, err error) {
	if len(f.NetworkID) < 1 {
		err = errors.New("--network-id must be given")
		return
	}

	sequenceID := f.SequenceID
	if sequenceID == 0 {
		sequenceID = uint64(rand.New(rand.NewSource(time.Now().UnixNano())).Int63())
	}

	if tx, err = transaction.NewTransaction(kp.Address(), sequenceID, ops...); err != nil {
		return
	}
	tx.Sign(kp, []byte(f.NetworkID))

	return
}

// Submit sends the operations and prints the receipt.
func (f *SignerFlags) Submit(c *cobra.Command, bodies ...operation.Body) {
	kp := f.Keypair(c)

	var ops []operation.Operation
	for _, body := range bodies {
		op, err := operation.NewOperation(body)
		if err != nil {
			PrintError(c, err)
		}
		ops = append(ops, op)
	}

	tx, err := f.MakeTransaction(kp, ops...)
	if err != nil {
		PrintError(c, err)
	}

	receipt, err := f.Client(c).SubmitTransaction(tx)
	if err != nil {
		PrintError(c, err)
	}

	f.Print(c, receipt)
}
