package state

import "fmt"

// ErrUnknownStateRoot is returned by SetStateRoot/RestoreContext when asked
// to jump to a root that was never observed by this journal (spec.md §4.3,
// §7).
type ErrUnknownStateRoot struct {
	Root string
}

func (e *ErrUnknownStateRoot) Error() string {
	return fmt.Sprintf("unknown state root %s: it was never committed by this journal", e.Root)
}

// ErrCacheMiss names a remote-state cache miss. Grounded on
// chain/state/cache: the same sentinel name. The tiers in state/cache do
// not return it; they report a miss through the boolean result of their
// Get methods.
var ErrCacheMiss = fmt.Errorf("state cache: entry not present")
