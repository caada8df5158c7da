package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SequentialGUIDs generates predictable GUIDs for tests:
// 00000000-0000-0000-0000-000000000001, ...02, and so on.
//
// Thread-safety: Next is safe for concurrent use.
type SequentialGUIDs struct {
	mu  sync.Mutex
	seq uint64
}

// Next returns the next GUID in sequence. The first call returns ...0001.
func (g *SequentialGUIDs) Next() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012x", g.seq))
}
