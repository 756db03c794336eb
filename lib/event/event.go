package event

import (
	"encoding/json"
	"reflect"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
)

var log logging.Logger = logging.New("module", "event")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

type Type string

const (
	TypeVoted                   Type = "voted"
	TypeCandidateAdded          Type = "candidate-added"
	TypeCandidateRemoved        Type = "candidate-removed"
	TypeCandidateAddedOrUpdated Type = "candidate-added-or-updated"
)

func IsValidType(t Type) bool {
	_, err := newEventFromType(t)
	return err == nil
}

// Event is emitted once for each successful mutation.
type Event interface {
	EventType() Type
	// Target is the address of the candidate
	Target() string
}

type Voted struct {
	Who       string `json:"who"`
	Candidate string `json:"candidate"`
}

func (Voted) EventType() Type  { return TypeVoted }
func (e Voted) Target() string { return e.Candidate }

type CandidateAdded struct {
	Candidate string `json:"candidate"`
}

func (CandidateAdded) EventType() Type  { return TypeCandidateAdded }
func (e CandidateAdded) Target() string { return e.Candidate }

type CandidateRemoved struct {
	Candidate string `json:"candidate"`
}

func (CandidateRemoved) EventType() Type  { return TypeCandidateRemoved }
func (e CandidateRemoved) Target() string { return e.Candidate }

type CandidateAddedOrUpdated struct {
	Candidate string `json:"candidate"`
}

func (CandidateAddedOrUpdated) EventType() Type  { return TypeCandidateAddedOrUpdated }
func (e CandidateAddedOrUpdated) Target() string { return e.Candidate }

// Record is the committed event with the transaction which made it.
type Record struct {
	Type    Type   `json:"type"`
	TxHash  string `json:"tx_hash"`
	Source  string `json:"source"`
	Created string `json:"created"`
	Body    Event  `json:"body"`
}

func NewRecord(txHash, source string, e Event) Record {
	return Record{
		Type:    e.EventType(),
		TxHash:  txHash,
		Source:  source,
		Created: common.NowISO8601(),
		Body:    e,
	}
}

func (r Record) EventType() Type {
	return r.Type
}

func (r Record) Target() string {
	return r.Body.Target()
}

func (r Record) String() string {
	return string(common.MustMarshalJSON(r))
}

type envelop struct {
	Type    Type            `json:"type"`
	TxHash  string          `json:"tx_hash"`
	Source  string          `json:"source"`
	Created string          `json:"created"`
	Body    json.RawMessage `json:"body"`
}

func (r *Record) UnmarshalJSON(b []byte) (err error) {
	var oj envelop
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	var body Event
	if body, err = UnmarshalEventJSON(oj.Type, oj.Body); err != nil {
		return
	}

	r.Type = oj.Type
	r.TxHash = oj.TxHash
	r.Source = oj.Source
	r.Created = oj.Created
	r.Body = body

	return
}

func UnmarshalEventJSON(t Type, b []byte) (Event, error) {
	ei, err := newEventFromType(t)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(b, ei); err != nil {
		return nil, err
	}

	return reflect.ValueOf(ei).Elem().Interface().(Event), nil
}

func newEventFromType(t Type) (interface{}, error) {
	switch t {
	case TypeVoted:
		return &Voted{}, nil
	case TypeCandidateAdded:
		return &CandidateAdded{}, nil
	case TypeCandidateRemoved:
		return &CandidateRemoved{}, nil
	case TypeCandidateAddedOrUpdated:
		return &CandidateAddedOrUpdated{}, nil
	default:
		return nil, errors.BadRequestParameter.Clone().SetData("event-type", string(t))
	}
}
