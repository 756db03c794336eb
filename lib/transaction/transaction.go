package transaction

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/tally/lib/auth"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/transaction/operation"
)

const (
	TypeTransaction      string = "transaction"
	TransactionVersionV1 string = "1"
)

// Transaction carries the operations of one source. `H.Hash` is the hash of
// `B` and `H.Signature` is the signature of `networkID + H.Hash`.
//
// `B.SequenceID` is chosen by the source to make the hash unique; the same
// hash is applied only once.
type Transaction struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type Body struct {
	Source     string                `json:"source"`
	SequenceID uint64                `json:"sequence_id"`
	Operations []operation.Operation `json:"operations"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

func NewTransaction(source string, sequenceID uint64, ops ...operation.Operation) (tx Transaction, err error) {
	if len(ops) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}

	body := Body{
		Source:     source,
		SequenceID: sequenceID,
		Operations: ops,
	}

	tx = Transaction{
		T: TypeTransaction,
		H: Header{
			Version: TransactionVersionV1,
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}

	return
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckTransactionType,
	CheckTransactionVersion,
	CheckTransactionHash,
	CheckTransactionEmptyOperations,
	CheckTransactionOverOperationsLimit,
	CheckTransactionOperations,
}

// IsWellFormed checks the transaction without the storage. The signature is
// not checked here; see `Origin`.
func (tx Transaction) IsWellFormed(conf common.Config) (err error) {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Conf:           conf,
		Transaction:    tx,
	}

	return common.RunChecker(checker, common.DefaultDeferFunc)
}

// Origin is built from the hash of the body, not from `H.Hash`; a modified
// body can not be authenticated with the old signature.
func (tx Transaction) Origin() auth.Origin {
	return auth.Origin{
		Source:    tx.B.Source,
		Hash:      tx.B.MakeHashString(),
		Signature: tx.H.Signature,
	}
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	return json.Marshal(tx)
}

func (tx Transaction) String() string {
	encoded, _ := common.JSONMarshalIndent(tx)
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}
