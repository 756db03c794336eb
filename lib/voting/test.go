package voting

import (
	"boscoin.io/tally/lib/auth"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/storage"
)

// TestMakeContext makes the context signed by `kp`.
func TestMakeContext(networkID []byte, kp *keypair.Full, st *storage.LevelDBBackend) (Context, *event.Buffer) {
	origin, err := auth.NewSignedOrigin(kp, networkID, common.MakeObjectHashString(common.GenerateUUID()))
	if err != nil {
		panic(err)
	}

	buffer := event.NewBuffer()
	return Context{
		Origin:  origin,
		Storage: st,
		Events:  buffer,
	}, buffer
}
