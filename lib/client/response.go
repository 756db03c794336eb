package client

import (
	"fmt"
	"strconv"
	"strings"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/event"
)

// Problem is the error response of the node.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Code is the code of `errors.Error` kept in the problem type; zero when
// the problem is only the http status.
func (p Problem) Code() uint {
	i := strings.LastIndex(p.Type, "/")
	if i < 0 {
		return 0
	}

	code, err := strconv.ParseUint(p.Type[i+1:], 10, 32)
	if err != nil {
		return 0
	}

	return uint(code)
}

type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	s := fmt.Sprintf("%d %s", e.Problem.Status, e.Problem.Title)
	if len(e.Problem.Detail) > 0 {
		s += ": " + e.Problem.Detail
	}
	return s
}

func (e Error) Code() uint {
	return e.Problem.Code()
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type NodeInfo struct {
	Version                    string `json:"version"`
	GitCommit                  string `json:"git_commit"`
	NetworkID                  string `json:"network_id"`
	MaxNameLength              int    `json:"max_name_length"`
	OpsLimit                   int    `json:"ops_limit"`
	RequireRegisteredCandidate bool   `json:"require_registered_candidate"`
	Started                    string `json:"started"`
}

type Candidate struct {
	Links struct {
		Self   Link `json:"self"`
		Events Link `json:"events"`
	} `json:"_links"`

	Address string           `json:"address"`
	Name    string           `json:"name"`
	Votes   common.VoteCount `json:"votes"`
}

type CandidatesPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Candidate `json:"records"`
	} `json:"_embedded"`
}

type Receipt struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Hash       string         `json:"hash"`
	Source     string         `json:"source"`
	SequenceID uint64         `json:"sequence_id"`
	Status     string         `json:"status"`
	Operations int            `json:"operations"`
	Events     []event.Record `json:"events"`
	Created    string         `json:"created"`
}
