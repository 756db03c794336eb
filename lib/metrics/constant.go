package metrics

const (
	Namespace       = "tally"
	APISubsystem    = "api"
	VotingSubsystem = "voting"
)

const (
	TransactionStatusSucceeded = "succeeded"
	TransactionStatusFailed    = "failed"
)
