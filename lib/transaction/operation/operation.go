package operation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
)

type OperationType string

const (
	TypeVote                 OperationType = "vote"
	TypeAddCandidate         OperationType = "add-candidate"
	TypeAddOrUpdateCandidate OperationType = "add-or-update-candidate"
	TypeRemoveCandidate      OperationType = "remove-candidate"
)

var OperationTypes = []OperationType{
	TypeVote,
	TypeAddCandidate,
	TypeAddOrUpdateCandidate,
	TypeRemoveCandidate,
}

func IsValidOperationType(oType string) bool {
	for _, t := range OperationTypes {
		if string(t) == oType {
			return true
		}
	}
	return false
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case Vote:
		t = TypeVote
	case AddCandidate:
		t = TypeAddCandidate
	case AddOrUpdateCandidate:
		t = TypeAddOrUpdateCandidate
	case RemoveCandidate:
		t = TypeRemoveCandidate
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

func MustNewOperation(opb Body) Operation {
	op, err := NewOperation(opb)
	if err != nil {
		panic(err)
	}

	return op
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that the body is self consistent; it does not look into the
	// storage.
	//
	IsWellFormed(common.Config) error
	TargetAddress() string
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	if o.B == nil {
		return errors.InvalidOperation.Clone().SetData("reason", "empty body")
	}

	var expected Operation
	if expected, err = NewOperation(o.B); err != nil {
		return
	} else if expected.H.Type != o.H.Type {
		return errors.InvalidOperation.Clone().SetData("type", string(o.H.Type))
	}

	return o.B.IsWellFormed(conf)
}

func (o Operation) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Operation) String() string {
	encoded, _ := common.JSONMarshalIndent(o)

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, err
	} else {
		// values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeVote:
		return &Vote{}, nil
	case TypeAddCandidate:
		return &AddCandidate{}, nil
	case TypeAddOrUpdateCandidate:
		return &AddOrUpdateCandidate{}, nil
	case TypeRemoveCandidate:
		return &RemoveCandidate{}, nil
	default:
		return nil, errors.UnknownOperationType.Clone().SetData("type", string(ty))
	}
}

func checkCandidateAddress(address string) error {
	if !keypair.IsValidAddress(address) {
		return errors.BadPublicAddress.Clone().SetData("candidate", address)
	}

	return nil
}

func checkCandidateName(name string, conf common.Config) error {
	if !utf8.ValidString(name) {
		return errors.InvalidCandidateName.Clone().SetData("name", fmt.Sprintf("%q", name))
	}
	if len(name) > conf.MaxNameLength {
		return errors.NameTooLong.Clone().
			SetData("length", len(name)).
			SetData("max", conf.MaxNameLength)
	}

	return nil
}
