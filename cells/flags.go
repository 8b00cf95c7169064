package cells

// Flags is the per-cell (and per-subscription) state word.
type Flags uint8

const (
	FlagEnabled Flags = 1 << iota
	FlagDisposed
	FlagDirty
	FlagQueued
	FlagShallow
)

func (f Flags) has(bit Flags) bool {
	return f&bit != 0
}
