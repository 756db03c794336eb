package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/tally/lib/errors"
)

// ProblemTypeURLPrefix is the prefix of the `type` of the problem made from
// the coded error.
const ProblemTypeURLPrefix = "https://boscoin.io/tally/problem/"

// Problem is the RFC 7807 problem details.
type Problem struct {
	// A URI reference that identifies the problem type; "about:blank" when
	// it is only the http status.
	Type string `json:"type"`

	// A short summary of the problem type; same for every occurrence.
	Title string `json:"title"`

	Status int `json:"status,omitempty"`

	// Explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`

	// A URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`

	// The `Data` of the coded error.
	Data map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes the problem from error; the `*errors.Error` keeps
// its code in `type`.
func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return NewDetailedStatusProblem(status, err.Error())
	}

	p := Problem{
		Type:   fmt.Sprintf("%s%d", ProblemTypeURLPrefix, e.Code),
		Title:  e.Message,
		Status: status,
	}
	if len(e.Data) > 0 {
		p.Data = e.Data
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

// Code returns the code of coded error from `type`; zero if not.
func (p Problem) Code() uint {
	var code uint
	fmt.Sscanf(p.Type, ProblemTypeURLPrefix+"%d", &code)
	return code
}
