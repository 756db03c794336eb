package errors

import (
	"encoding/json"
)

// Error is the coded error shared by the node, the api and the client. The
// `Code` is stable; `Data` carries the details of one occurrence.
type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) Clone() *Error {
	n := *o

	n.Data = map[string]interface{}{}
	for k, v := range o.Data {
		n.Data[k] = v
	}

	return &n
}

// Is compares only the code.
func (o *Error) Is(err error) bool {
	e, ok := err.(*Error)
	if !ok || o == nil || e == nil {
		return false
	}

	return o.Code == e.Code
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

// Is checks whether `err` is the coded error `target`.
func Is(err error, target *Error) bool {
	return target.Is(err)
}
