package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// EventObserver publishes the events of the committed transactions.
var EventObserver = observable.New()

const (
	ResourceEvent   = "event"
	ConditionAll    = "*"
	ConditionType   = "type"
	ConditionTarget = "target"
	ConditionSource = "source"
	ConditionTxHash = "txhash"
)

// Subject makes the observable event name, like "event-*" or
// "event-target=GABC...".
type Subject struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewSubject(resource, condition, id string) Subject {
	return Subject{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Subject) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "=" + e.Id
	}
	return toStr
}
