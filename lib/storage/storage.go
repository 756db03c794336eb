package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

// IterFunc returns the next item; it returns false when there are no more
// items or the limit is reached.
type IterFunc func() (IterItem, bool)
