package candidate

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/storage"
)

var log logging.Logger = logging.New("module", "candidate")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// Candidate is the registry record. The storage keeps,
//   - 'cd-address-<Candidate.Address>': `Candidate`
//
// Address is unique; the iteration follows the order of address.
const CandidatePrefixAddress string = "cd-address-"

type Candidate struct {
	Address string           `json:"address"`
	Name    string           `json:"name"`
	Votes   common.VoteCount `json:"votes"`
}

func NewCandidate(address, name string) *Candidate {
	return &Candidate{
		Address: address,
		Name:    name,
	}
}

func (c *Candidate) String() string {
	return string(common.MustMarshalJSON(c))
}

func (c *Candidate) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

// IncreaseVotes adds one vote; on overflow the candidate is not changed.
func (c *Candidate) IncreaseVotes() error {
	votes, err := c.Votes.Add(1)
	if err != nil {
		return err
	}
	c.Votes = votes

	return nil
}

func (c *Candidate) Save(st *storage.LevelDBBackend) (err error) {
	if !utf8.ValidString(c.Name) {
		return errors.InvalidCandidateName.Clone().SetData("candidate", c.Address)
	}

	key := GetCandidateKey(c.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	var encoded []byte
	if encoded, err = c.Serialize(); err != nil {
		return
	}

	if exists {
		err = st.Set(key, encoded)
	} else {
		err = st.New(key, encoded)
	}
	if err != nil {
		return
	}

	log.Debug("candidate saved", "address", c.Address, "votes", c.Votes, "created", !exists)

	return
}

func GetCandidateKey(address string) string {
	return fmt.Sprintf("%s%s", CandidatePrefixAddress, address)
}

func ExistsCandidate(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetCandidateKey(address))
}

func GetCandidate(st *storage.LevelDBBackend, address string) (c *Candidate, err error) {
	c = &Candidate{}
	if err = st.Get(GetCandidateKey(address), c); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.CandidateDoesNotExist.Clone().SetData("candidate", address)
		}
		return nil, err
	}

	return
}

// RemoveCandidate deletes the candidate; `removed` is false when it did not
// exist.
func RemoveCandidate(st *storage.LevelDBBackend, address string) (removed bool, err error) {
	key := GetCandidateKey(address)

	var exists bool
	if exists, err = st.Has(key); err != nil || !exists {
		return
	}

	if err = st.Remove(key); err != nil {
		return
	}

	log.Debug("candidate removed", "address", address)

	return true, nil
}

// GetCandidates iterates candidates by address. The cursor of the options is
// the address of the last candidate of the previous page.
func GetCandidates(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Candidate, bool, []byte), func()) {
	if options != nil && len(options.Cursor()) > 0 {
		options = storage.NewDefaultListOptions(
			options.Reverse(),
			[]byte(GetCandidateKey(string(options.Cursor()))),
			options.Limit(),
		)
	}

	iterFunc, closeFunc := st.GetIterator(CandidatePrefixAddress, options)

	return (func() (*Candidate, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false, nil
			}

			var c Candidate
			common.MustUnmarshalJSON(item.Value, &c)
			return &c, true, []byte(c.Address)
		}), (func() {
			closeFunc()
		})
}
