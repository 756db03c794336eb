package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLNodeInfo          = APIPrefix + APIVersionV1 + "/"
	URLCandidates        = APIPrefix + APIVersionV1 + "/candidates"
	URLCandidate         = APIPrefix + APIVersionV1 + "/candidates/{id}"
	URLTransactions      = APIPrefix + APIVersionV1 + "/transactions"
	URLTransactionByHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
	URLEvents            = APIPrefix + APIVersionV1 + "/events"
)
