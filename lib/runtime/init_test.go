package runtime

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/test"
)

func init() {
	common.SetLogging(log, logging.LvlDebug, test.LogHandler())
}
