package metrics

// InitPrometheusMetrics replaces the no-op metrics; it must be called once
// before the node starts.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Voting = PromVotingMetrics()
	API = PromAPIMetrics()
}
