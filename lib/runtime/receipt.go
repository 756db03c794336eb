package runtime

import (
	"encoding/json"
	"fmt"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/transaction"
)

// Receipt is the result of applying a transaction. The storage keeps only
// the succeeded one,
//   - 'rc-<Receipt.Hash>': `Receipt`
const ReceiptPrefixHash string = "rc-"

const (
	ReceiptStatusSucceeded = "succeeded"
	ReceiptStatusFailed    = "failed"
)

type Receipt struct {
	Hash       string         `json:"hash"`
	Source     string         `json:"source"`
	SequenceID uint64         `json:"sequence_id"`
	Status     string         `json:"status"`
	Operations int            `json:"operations"`
	Events     []event.Record `json:"events"`
	Error      *errors.Error  `json:"error,omitempty"`
	Created    string         `json:"created"`
}

func NewReceipt(tx transaction.Transaction, records []event.Record) *Receipt {
	if records == nil {
		records = []event.Record{}
	}

	return &Receipt{
		Hash:       tx.GetHash(),
		Source:     tx.Source(),
		SequenceID: tx.B.SequenceID,
		Status:     ReceiptStatusSucceeded,
		Operations: len(tx.B.Operations),
		Events:     records,
		Created:    common.NowISO8601(),
	}
}

// NewFailedReceipt keeps the coded error; the other errors are reported as
// `errors.HTTPServerError`.
func NewFailedReceipt(tx transaction.Transaction, err error) *Receipt {
	r := NewReceipt(tx, nil)
	r.Status = ReceiptStatusFailed
	if e, ok := err.(*errors.Error); ok {
		r.Error = e
	} else {
		r.Error = errors.HTTPServerError.Clone().SetData("error", err.Error())
	}

	return r
}

func (r *Receipt) IsSucceeded() bool {
	return r.Status == ReceiptStatusSucceeded
}

func (r *Receipt) String() string {
	return string(common.MustMarshalJSON(r))
}

func (r *Receipt) Serialize() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Receipt) Save(st *storage.LevelDBBackend) (err error) {
	var encoded []byte
	if encoded, err = r.Serialize(); err != nil {
		return
	}

	if err = st.New(GetReceiptKey(r.Hash), encoded); err != nil {
		if errors.Is(err, errors.StorageRecordAlreadyExists) {
			err = errors.TransactionAlreadyExists.Clone().SetData("hash", r.Hash)
		}
		return
	}

	return
}

func GetReceiptKey(hash string) string {
	return fmt.Sprintf("%s%s", ReceiptPrefixHash, hash)
}

func ExistsReceipt(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}

func GetReceipt(st *storage.LevelDBBackend, hash string) (r *Receipt, err error) {
	r = &Receipt{}
	if err = st.Get(GetReceiptKey(hash), r); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.TransactionNotFound.Clone().SetData("hash", hash)
		}
		return nil, err
	}

	return
}
