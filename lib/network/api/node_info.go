package api

import (
	"net/http"
	"time"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/network/httputils"
	"boscoin.io/tally/lib/version"
)

var started = common.FormatISO8601(time.Now())

// NodeInfo shows the settings which the client needs to make the valid
// transactions.
type NodeInfo struct {
	Version                    string `json:"version"`
	GitCommit                  string `json:"git_commit"`
	NetworkID                  string `json:"network_id"`
	MaxNameLength              int    `json:"max_name_length"`
	OpsLimit                   int    `json:"ops_limit"`
	RequireRegisteredCandidate bool   `json:"require_registered_candidate"`
	Started                    string `json:"started"`
}

func NewNodeInfo(conf common.Config) NodeInfo {
	return NodeInfo{
		Version:                    version.Version,
		GitCommit:                  version.GitCommit,
		NetworkID:                  string(conf.NetworkID),
		MaxNameLength:              conf.MaxNameLength,
		OpsLimit:                   conf.OpsLimit,
		RequireRegisteredCandidate: conf.RequireRegisteredCandidate,
		Started:                    started,
	}
}

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	if err := httputils.WriteJSON(w, http.StatusOK, NewNodeInfo(api.conf)); err != nil {
		log.Error("failed to write node info", "error", err)
	}
}
